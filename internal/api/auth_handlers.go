package api

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/190dpa/chatyni-rpg/internal/constants"
	"github.com/190dpa/chatyni-rpg/internal/game"
	"github.com/190dpa/chatyni-rpg/internal/logging"
	"github.com/190dpa/chatyni-rpg/internal/storage"
)

const sessionTTL = 24 * time.Hour

// AuthHandler groups registration and session handlers.
type AuthHandler struct {
	repo storage.Repository
}

func NewAuthHandler(repo storage.Repository) *AuthHandler {
	return &AuthHandler{repo: repo}
}

type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginPayload struct {
	// Login accepts a username or an email.
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Register creates a fresh level 1 profile and opens a session.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || len(req.Password) < 4 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if utf8.RuneCountInString(req.Username) > 24 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
		return
	}

	profile := game.PlayerProfile{
		Username:      req.Username,
		Email:         req.Email,
		PasswordHash:  string(hash),
		Level:         1,
		XPToNextLevel: 100,
		Coins:         100,
		Strength:      5,
		Dexterity:     5,
		Intelligence:  5,
		Defense:       5,
	}
	if err := h.repo.CreateProfile(&profile); err != nil {
		// Unique index on username and email makes duplicates a create error.
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrUsernameTaken})
		return
	}

	token, err := createSessionToken(profile.Username, profile.IsAdmin, sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
		return
	}
	setSessionCookie(c, token, sessionTTL)
	logging.Info("player registered", logging.Fields{constants.LogFieldPlayer: profile.Username})
	c.JSON(http.StatusCreated, gin.H{"token": token, "profile": profile})
}

// Login verifies credentials and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	profile, err := h.repo.GetProfileByLogin(strings.TrimSpace(req.Login))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidCredentials})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidCredentials})
		return
	}

	token, err := createSessionToken(profile.Username, profile.IsAdmin, sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
		return
	}
	setSessionCookie(c, token, sessionTTL)
	c.JSON(http.StatusOK, gin.H{"token": token, "profile": profile})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Logged out."})
}
