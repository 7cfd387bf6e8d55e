package battle

import (
	"sync"
	"time"

	"github.com/190dpa/chatyni-rpg/internal/engine"
	"github.com/190dpa/chatyni-rpg/internal/game"
	"github.com/190dpa/chatyni-rpg/internal/logging"
)

// stockState is the rotating weapon stock. It rotates on a timer driven
// by the command wiring, independent of the encounter maps.
type stockState struct {
	mu        sync.Mutex
	weaponIDs []string
	expires   time.Time
}

var defaultStockSize = 3

// StockEntry is one purchasable weapon of the current rotation.
type StockEntry struct {
	Weapon    game.Weapon `json:"weapon"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// ListShop returns the fixed-price store catalog.
func (s *Service) ListShop() []game.ShopItem {
	return s.cat.ShopItems
}

// BuyShopItem purchases a fixed store item. Permanent items apply their
// bonus immediately; consumables land in the inventory.
func (s *Service) BuyShopItem(username, itemID string) (*game.PlayerProfile, error) {
	p, err := s.repo.GetProfileByUsername(username)
	if err != nil {
		return nil, ErrPlayerNotFound
	}

	var item *game.ShopItem
	for i := range s.cat.ShopItems {
		if s.cat.ShopItems[i].ID == itemID {
			item = &s.cat.ShopItems[i]
			break
		}
	}
	if item == nil {
		return nil, ErrShopItemNotFound
	}
	if p.Coins < item.Price {
		return nil, ErrInsufficientCoins
	}

	p.Coins -= item.Price
	switch item.Kind {
	case "permanent":
		if item.BonusStat == "xp" {
			engine.ApplyReward(p, item.BonusValue, 0, s.newRoller())
		} else {
			stats := p.BaseStats()
			for i := 0; i < item.BonusValue; i++ {
				stats.Bump(item.BonusStat)
			}
			p.SetBaseStats(stats)
		}
	case "consumable":
		if err := s.repo.AddItem(p.ID, item.ID, "consumable", 1); err != nil {
			return nil, err
		}
	}
	if err := s.repo.SaveProfile(p); err != nil {
		return nil, err
	}
	logging.Info("shop purchase", logging.Fields{"player": username, "item": item.ID})
	return p, nil
}

// RefreshStock rotates the weapon stock: a random draw of purchasable
// weapons. Admin-gated weapons never rotate in.
func (s *Service) RefreshStock(ttl time.Duration) {
	candidates := make([]string, 0, len(s.cat.Weapons))
	for id, w := range s.cat.Weapons {
		if w.Price <= 0 {
			continue
		}
		if w.OnHit != nil && w.OnHit.RequiresAdmin {
			continue
		}
		candidates = append(candidates, id)
	}

	roller := s.newRoller()
	picked := make([]string, 0, defaultStockSize)
	for len(picked) < defaultStockSize && len(candidates) > 0 {
		i := roller.Intn(len(candidates))
		picked = append(picked, candidates[i])
		candidates = append(candidates[:i], candidates[i+1:]...)
	}

	s.stock.mu.Lock()
	s.stock.weaponIDs = picked
	s.stock.expires = time.Now().Add(ttl)
	s.stock.mu.Unlock()

	logging.Info("weapon stock rotated", logging.Fields{"weapons": len(picked)})
	s.notifier.Broadcast("stock_refreshed", map[string]interface{}{"weapons": picked})
}

// CurrentStock lists the weapons of the current rotation.
func (s *Service) CurrentStock() []StockEntry {
	s.stock.mu.Lock()
	defer s.stock.mu.Unlock()

	out := make([]StockEntry, 0, len(s.stock.weaponIDs))
	for _, id := range s.stock.weaponIDs {
		if w, ok := s.cat.Weapon(id); ok {
			out = append(out, StockEntry{Weapon: w, ExpiresAt: s.stock.expires})
		}
	}
	return out
}

// BuyStockWeapon purchases a weapon from the current rotation.
func (s *Service) BuyStockWeapon(username, weaponID string) (*game.PlayerProfile, error) {
	s.stock.mu.Lock()
	inStock := false
	for _, id := range s.stock.weaponIDs {
		if id == weaponID {
			inStock = true
			break
		}
	}
	s.stock.mu.Unlock()
	if !inStock {
		return nil, ErrItemNotInStock
	}

	w, ok := s.cat.Weapon(weaponID)
	if !ok {
		return nil, ErrItemNotInStock
	}
	p, err := s.repo.GetProfileByUsername(username)
	if err != nil {
		return nil, ErrPlayerNotFound
	}
	if p.Coins < w.Price {
		return nil, ErrInsufficientCoins
	}

	p.Coins -= w.Price
	if err := s.repo.AddItem(p.ID, w.ID, "weapon", 1); err != nil {
		return nil, err
	}
	if err := s.repo.SaveProfile(p); err != nil {
		return nil, err
	}
	logging.Info("stock purchase", logging.Fields{"player": username, "item": w.ID})
	return p, nil
}

// EquipWeapon equips an owned weapon, or unequips with an empty id.
func (s *Service) EquipWeapon(username, weaponID string) (*game.PlayerProfile, error) {
	p, err := s.repo.GetProfileByUsername(username)
	if err != nil {
		return nil, ErrPlayerNotFound
	}
	if weaponID != "" && !s.ownsWeapon(p, weaponID) {
		return nil, ErrWeaponNotOwned
	}
	p.EquippedWeaponID = weaponID
	if err := s.repo.SaveProfile(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ClaimQuest pays out a completed daily quest once.
func (s *Service) ClaimQuest(username string) (*game.RewardDelta, error) {
	p, err := s.repo.GetProfileByUsername(username)
	if err != nil {
		return nil, ErrPlayerNotFound
	}
	q := s.questTemplate(p)
	if q == nil || !p.QuestCompleted {
		return nil, ErrQuestNotComplete
	}
	if p.QuestClaimed {
		return nil, ErrQuestAlreadyClaimed
	}

	delta := engine.ApplyReward(p, q.RewardXP, q.RewardCoins, s.newRoller())
	p.QuestClaimed = true
	if err := s.repo.SaveProfile(p); err != nil {
		return nil, err
	}
	logging.Info("quest claimed", logging.Fields{"player": username, "quest": q.ID})
	return &delta, nil
}
