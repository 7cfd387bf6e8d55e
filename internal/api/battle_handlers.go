package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/190dpa/chatyni-rpg/internal/battle"
	"github.com/190dpa/chatyni-rpg/internal/constants"
	"github.com/190dpa/chatyni-rpg/internal/logging"
)

type StartBattlePayload struct {
	MonsterID string `json:"monster_id"`
}

// StartBattle begins (or resumes) a solo encounter.
func (h *GameHandler) StartBattle(c *gin.Context) {
	var req StartBattlePayload
	// Body is optional; an empty one picks a random monster.
	_ = c.ShouldBindJSON(&req)

	username := currentUsername(c)
	res, err := h.svc.StartSolo(username, req.MonsterID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	logging.Info("battle started", logging.Fields{
		constants.LogFieldPlayer:  username,
		constants.LogFieldMonster: res.Monster.Name,
	})
	c.JSON(http.StatusOK, res)
}

// SubmitBattleAction resolves one solo turn.
func (h *GameHandler) SubmitBattleAction(c *gin.Context) {
	var act battle.Action
	if err := c.ShouldBindJSON(&act); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	res, err := h.svc.SubmitSoloAction(currentUsername(c), act)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// FleeBattle abandons the current solo encounter.
func (h *GameHandler) FleeBattle(c *gin.Context) {
	if err := h.svc.FleeSolo(currentUsername(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "You fled the battle."})
}

type JoinLobbyPayload struct {
	MonsterID string `json:"monster_id"`
}

// JoinBossLobby queues for a group boss fight; the fight starts when the
// lobby fills.
func (h *GameHandler) JoinBossLobby(c *gin.Context) {
	var req JoinLobbyPayload
	_ = c.ShouldBindJSON(&req)

	res, err := h.svc.JoinBossLobby(currentUsername(c), req.MonsterID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SubmitBossAction resolves one group battle turn.
func (h *GameHandler) SubmitBossAction(c *gin.Context) {
	var act battle.Action
	if err := c.ShouldBindJSON(&act); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	res, err := h.svc.SubmitGroupAction(currentUsername(c), act)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// FleeBoss leaves the lobby or the running group battle.
func (h *GameHandler) FleeBoss(c *gin.Context) {
	if err := h.svc.FleeGroup(currentUsername(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "You left the boss fight."})
}

type StartDungeonPayload struct {
	DungeonID string `json:"dungeon_id"`
}

// StartDungeon enters a dungeon at its first stage.
func (h *GameHandler) StartDungeon(c *gin.Context) {
	var req StartDungeonPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.DungeonID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	username := currentUsername(c)
	res, err := h.svc.StartDungeon(username, req.DungeonID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	logging.Info("dungeon started", logging.Fields{
		constants.LogFieldPlayer:  username,
		constants.LogFieldDungeon: req.DungeonID,
	})
	c.JSON(http.StatusOK, res)
}

// ProceedDungeon advances to the next stage after a stage victory.
func (h *GameHandler) ProceedDungeon(c *gin.Context) {
	res, err := h.svc.ProceedDungeon(currentUsername(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// LeaveDungeon abandons the run; stage rewards already granted are kept.
func (h *GameHandler) LeaveDungeon(c *gin.Context) {
	if err := h.svc.LeaveDungeon(currentUsername(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "You left the dungeon."})
}

// WorldBossStatus reports the raid singleton.
func (h *GameHandler) WorldBossStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.GetWorldBossStatus())
}

// AttackWorldBoss registers one hit on the active world boss.
func (h *GameHandler) AttackWorldBoss(c *gin.Context) {
	res, err := h.svc.AttackWorldBoss(currentUsername(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
