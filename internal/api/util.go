package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/190dpa/chatyni-rpg/internal/battle"
	"github.com/190dpa/chatyni-rpg/internal/constants"
	"github.com/190dpa/chatyni-rpg/internal/engine"
)

func errMsgIsNotFound(err error) bool {
	return errors.Is(err, battle.ErrPlayerNotFound)
}

// currentUsername reads the identity injected by AuthRequired.
func currentUsername(c *gin.Context) string {
	if v, ok := c.Get(constants.CtxUsername); ok {
		if s, _ := v.(string); s != "" {
			return s
		}
	}
	return ""
}

// respondServiceError translates service sentinels into HTTP status codes
// and the user-facing error strings from constants.
func respondServiceError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, constants.ErrInternal
	switch {
	case errors.Is(err, battle.ErrNoActiveBattle):
		status, msg = http.StatusNotFound, constants.ErrNoActiveBattle
	case errors.Is(err, battle.ErrAlreadyInBattle):
		status, msg = http.StatusConflict, constants.ErrAlreadyInBattle
	case errors.Is(err, battle.ErrAlreadyInLobby):
		status, msg = http.StatusConflict, constants.ErrAlreadyInLobby
	case errors.Is(err, battle.ErrBattleNotFound):
		status, msg = http.StatusNotFound, constants.ErrBattleNotFound
	case errors.Is(err, battle.ErrNotInBattle):
		status, msg = http.StatusForbidden, constants.ErrNotInBattle
	case errors.Is(err, battle.ErrNotYourTurn):
		status, msg = http.StatusConflict, constants.ErrNotYourTurn
	case errors.Is(err, battle.ErrPlayerDefeated):
		status, msg = http.StatusConflict, constants.ErrPlayerDefeated
	case errors.Is(err, battle.ErrUnknownAction):
		status, msg = http.StatusBadRequest, constants.ErrUnknownAction
	case errors.Is(err, battle.ErrUnknownAbility):
		status, msg = http.StatusBadRequest, constants.ErrUnknownAbility
	case errors.Is(err, engine.ErrAbilityNotKnown):
		status, msg = http.StatusBadRequest, constants.ErrAbilityNotKnown
	case errors.Is(err, engine.ErrInsufficientMana):
		status, msg = http.StatusBadRequest, constants.ErrInsufficientMana
	case errors.Is(err, engine.ErrAbilityConsumed):
		status, msg = http.StatusBadRequest, constants.ErrAbilityAlreadyUsed
	case errors.Is(err, engine.ErrItemUnavailable):
		status, msg = http.StatusBadRequest, constants.ErrItemNotOwned
	case errors.Is(err, battle.ErrDungeonNotFound):
		status, msg = http.StatusNotFound, constants.ErrDungeonNotFound
	case errors.Is(err, battle.ErrNotInDungeon):
		status, msg = http.StatusBadRequest, constants.ErrNotInDungeon
	case errors.Is(err, battle.ErrStageUnresolved):
		status, msg = http.StatusConflict, constants.ErrStageUnresolved
	case errors.Is(err, battle.ErrNoWorldBoss):
		status, msg = http.StatusNotFound, constants.ErrNoWorldBoss
	case errors.Is(err, battle.ErrPlayerNotFound):
		status, msg = http.StatusNotFound, constants.ErrPlayerNotFound
	case errors.Is(err, battle.ErrInsufficientCoins):
		status, msg = http.StatusBadRequest, constants.ErrInsufficientCoins
	case errors.Is(err, battle.ErrShopItemNotFound):
		status, msg = http.StatusNotFound, constants.ErrItemNotInStock
	case errors.Is(err, battle.ErrItemNotInStock):
		status, msg = http.StatusBadRequest, constants.ErrItemNotInStock
	case errors.Is(err, battle.ErrWeaponNotOwned):
		status, msg = http.StatusBadRequest, constants.ErrWeaponNotOwned
	case errors.Is(err, battle.ErrQuestNotComplete):
		status, msg = http.StatusBadRequest, constants.ErrQuestNotComplete
	case errors.Is(err, battle.ErrQuestAlreadyClaimed):
		status, msg = http.StatusConflict, constants.ErrQuestAlreadyClaimed
	}
	c.JSON(status, gin.H{constants.JSONKeyError: msg})
}
