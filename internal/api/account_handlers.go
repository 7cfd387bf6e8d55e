package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/190dpa/chatyni-rpg/internal/constants"
	"github.com/190dpa/chatyni-rpg/internal/game"
)

// GetProfile returns the caller's profile, assigning today's daily quest
// on the first read of the day.
func (h *GameHandler) GetProfile(c *gin.Context) {
	p, err := h.repo.GetProfileByUsername(currentUsername(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
		return
	}
	if h.svc.EnsureDailyQuest(p) {
		if err := h.repo.SaveProfile(p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"profile": p,
		"quest":   h.questFor(p),
	})
}

func (h *GameHandler) questFor(p *game.PlayerProfile) *game.QuestTemplate {
	for i := range h.cat.Quests {
		if h.cat.Quests[i].ID == p.QuestID {
			return &h.cat.Quests[i]
		}
	}
	return nil
}

// ListShop returns the fixed-price store.
func (h *GameHandler) ListShop(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.svc.ListShop()})
}

type BuyItemPayload struct {
	ItemID string `json:"item_id"`
}

// BuyShopItem purchases a fixed-price store item.
func (h *GameHandler) BuyShopItem(c *gin.Context) {
	var req BuyItemPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.ItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	p, err := h.svc.BuyShopItem(currentUsername(c), req.ItemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

// ListStock returns the rotating weapon stock.
func (h *GameHandler) ListStock(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stock": h.svc.CurrentStock()})
}

type BuyWeaponPayload struct {
	WeaponID string `json:"weapon_id"`
}

// BuyStockWeapon purchases a weapon from the current stock rotation.
func (h *GameHandler) BuyStockWeapon(c *gin.Context) {
	var req BuyWeaponPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.WeaponID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	p, err := h.svc.BuyStockWeapon(currentUsername(c), req.WeaponID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

type EquipPayload struct {
	// An empty weapon id unequips.
	WeaponID string `json:"weapon_id"`
}

// EquipWeapon equips an owned weapon or unequips the current one.
func (h *GameHandler) EquipWeapon(c *gin.Context) {
	var req EquipPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	p, err := h.svc.EquipWeapon(currentUsername(c), req.WeaponID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

// ClaimQuest collects the reward of a completed daily quest.
func (h *GameHandler) ClaimQuest(c *gin.Context) {
	reward, err := h.svc.ClaimQuest(currentUsername(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rewards": reward})
}

// RollCharacter spends coins on one hero card draw.
func (h *GameHandler) RollCharacter(c *gin.Context) {
	res, err := h.svc.RollCharacter(currentUsername(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Ranking returns the leaderboard ordered by level then xp.
func (h *GameHandler) Ranking(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	players, err := h.svc.Ranking(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ranking": players})
}
