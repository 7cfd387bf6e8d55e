package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/190dpa/chatyni-rpg/internal/battle"
	"github.com/190dpa/chatyni-rpg/internal/constants"
	"github.com/190dpa/chatyni-rpg/internal/engine"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv(constants.EnvSessionSecret, "test-secret")
	os.Exit(m.Run())
}

func respondTo(t *testing.T, err error) (int, string) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondServiceError(c, err)

	var body map[string]string
	if jsonErr := json.Unmarshal(w.Body.Bytes(), &body); jsonErr != nil {
		t.Fatalf("invalid error body: %v", jsonErr)
	}
	return w.Code, body[constants.JSONKeyError]
}

func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{battle.ErrNoActiveBattle, http.StatusNotFound, constants.ErrNoActiveBattle},
		{battle.ErrAlreadyInBattle, http.StatusConflict, constants.ErrAlreadyInBattle},
		{battle.ErrNotYourTurn, http.StatusConflict, constants.ErrNotYourTurn},
		{battle.ErrNotInBattle, http.StatusForbidden, constants.ErrNotInBattle},
		{engine.ErrInsufficientMana, http.StatusBadRequest, constants.ErrInsufficientMana},
		{engine.ErrAbilityConsumed, http.StatusBadRequest, constants.ErrAbilityAlreadyUsed},
		{battle.ErrDungeonNotFound, http.StatusNotFound, constants.ErrDungeonNotFound},
		{battle.ErrStageUnresolved, http.StatusConflict, constants.ErrStageUnresolved},
		{battle.ErrNoWorldBoss, http.StatusNotFound, constants.ErrNoWorldBoss},
		{battle.ErrInsufficientCoins, http.StatusBadRequest, constants.ErrInsufficientCoins},
		{battle.ErrQuestAlreadyClaimed, http.StatusConflict, constants.ErrQuestAlreadyClaimed},
	}
	for _, tc := range cases {
		status, msg := respondTo(t, tc.err)
		if status != tc.status || msg != tc.message {
			t.Fatalf("%v: got %d %q, want %d %q", tc.err, status, msg, tc.status, tc.message)
		}
	}
}

func TestServiceErrorMappingUnknownErrorIsInternal(t *testing.T) {
	status, msg := respondTo(t, os.ErrClosed)
	if status != http.StatusInternalServerError || msg != constants.ErrInternal {
		t.Fatalf("got %d %q", status, msg)
	}
}

func TestAuthRequiredRejectsMissingAndBadTokens(t *testing.T) {
	router := gin.New()
	router.GET("/p", AuthRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, currentUsername(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: got status %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+"not-a-token")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: got status %d", w.Code)
	}
}

func TestAuthRequiredAcceptsCookieAndBearer(t *testing.T) {
	token, err := createSessionToken("ash", false, time.Hour)
	if err != nil {
		t.Fatalf("createSessionToken: %v", err)
	}

	router := gin.New()
	router.GET("/p", AuthRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, currentUsername(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.AddCookie(&http.Cookie{Name: constants.CookieSessionName, Value: token})
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "ash" {
		t.Fatalf("cookie auth: got %d %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "ash" {
		t.Fatalf("bearer auth: got %d %q", w.Code, w.Body.String())
	}
}

func TestExpiredSessionTokenRejected(t *testing.T) {
	token, err := createSessionToken("ash", false, -time.Minute)
	if err != nil {
		t.Fatalf("createSessionToken: %v", err)
	}
	if _, err := parseAndValidateSession(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
