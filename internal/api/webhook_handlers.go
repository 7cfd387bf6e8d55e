package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/190dpa/chatyni-rpg/internal/constants"
	"github.com/190dpa/chatyni-rpg/internal/logging"
)

// WebhookHandler bridges trusted external automation (the community
// Discord bot) into the game without a player session.
type WebhookHandler struct {
	game   *GameHandler
	secret string
}

func NewWebhookHandler(game *GameHandler, secret string) *WebhookHandler {
	return &WebhookHandler{game: game, secret: secret}
}

type WebhookPayload struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Amount   int    `json:"amount"`
	BossID   string `json:"boss_id"`

	Multiplier float64 `json:"multiplier"`
	Uses       int     `json:"uses"`
}

// Handle dispatches one authenticated webhook command.
func (h *WebhookHandler) Handle(c *gin.Context) {
	if h.secret == "" ||
		subtle.ConstantTimeCompare([]byte(c.GetHeader(constants.HeaderWebhookSecret)), []byte(h.secret)) != 1 {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrWebhookUnauthorized})
		return
	}

	var req WebhookPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	logging.Info("webhook command", logging.Fields{constants.LogFieldAction: req.Action})

	svc := h.game.svc
	switch req.Action {
	case "spawn_world_boss":
		status, err := svc.SpawnWorldBoss("")
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, status)

	case "spawn_specific_boss":
		status, err := svc.SpawnWorldBoss(req.BossID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, status)

	case "donate":
		if req.Username == "" || req.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
		p, err := svc.Donate(req.Username, req.Amount)
		if err != nil {
			h.respondTargetError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": p})

	case "toggle_godmode":
		enabled, err := svc.ToggleGodMode(req.Username)
		if err != nil {
			h.respondTargetError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"god_mode": enabled})

	case "grant_luck":
		if err := svc.GrantLuck(req.Username, req.Multiplier, req.Uses); err != nil {
			h.respondTargetError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Luck granted."})

	default:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrWebhookUnknownAction})
	}
}

func (h *WebhookHandler) respondTargetError(c *gin.Context, err error) {
	// A missing target user gets the webhook wording, everything else the
	// normal mapping.
	if errMsgIsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrWebhookTargetNotFound})
		return
	}
	respondServiceError(c, err)
}
