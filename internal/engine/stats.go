package engine

import (
	"github.com/190dpa/chatyni-rpg/internal/game"
)

// supremeStatValue is the override every attribute takes for a supreme
// admin fielding the supreme card.
const supremeStatValue = 99999

// Player vitality formulas. Max health reads the persisted base strength,
// not the aggregated one, so equipment cannot inflate the health pool.
const (
	baseHP         = 50
	hpPerLevel     = 10
	hpPerStrength  = 2
	baseMana       = 20
	manaPerInt     = 5
)

// EffectiveStats folds base attributes, recruited-card bonuses and the
// equipped weapon's passive stats into the combat attribute set. The
// supreme override short-circuits everything.
func EffectiveStats(base game.Stats, cards []game.HeroCardTemplate, weapon *game.Weapon, supreme bool) game.Stats {
	if supreme {
		return game.Stats{
			Strength:     supremeStatValue,
			Dexterity:    supremeStatValue,
			Intelligence: supremeStatValue,
			Defense:      supremeStatValue,
		}
	}
	out := base
	for _, c := range cards {
		out = out.Add(c.Stats)
	}
	if weapon != nil {
		out = out.Add(weapon.PassiveStats)
	}
	return out
}

// IsSupreme reports whether a profile qualifies for the stat override:
// the supreme-admin flag and ownership of the supreme card, together.
func IsSupreme(p *game.PlayerProfile, cat *game.Catalog) bool {
	return p.IsSupremeAdmin && cat.SupremeCardID != "" && p.OwnsCard(cat.SupremeCardID)
}

// BuildPlayerCombatant derives the full battle-time view of a profile:
// aggregated stats, vitality pools at their maxima, the consumable slice
// of the inventory, the equipped weapon and the known ability set.
func BuildPlayerCombatant(p *game.PlayerProfile, cat *game.Catalog) *game.Combatant {
	supreme := IsSupreme(p, cat)

	var cards []game.HeroCardTemplate
	for _, id := range p.CardIDs() {
		if tpl, ok := cat.Cards[id]; ok {
			cards = append(cards, tpl)
		}
	}

	var weapon *game.Weapon
	if p.EquippedWeaponID != "" {
		if w, ok := cat.Weapon(p.EquippedWeaponID); ok {
			weapon = &w
		}
	}

	stats := EffectiveStats(p.BaseStats(), cards, weapon, supreme)
	maxHP := baseHP + p.Level*hpPerLevel + p.Strength*hpPerStrength
	maxMana := baseMana + stats.Intelligence*manaPerInt

	var items []game.ItemStack
	for _, it := range p.Items {
		if it.Kind != "consumable" || it.Quantity <= 0 {
			continue
		}
		stack := game.ItemStack{ItemID: it.ItemID, Kind: it.Kind, Quantity: it.Quantity}
		for _, shop := range cat.ShopItems {
			if shop.ID == it.ItemID {
				stack.Name = shop.Name
				stack.HealValue = shop.HealValue
				break
			}
		}
		if stack.Name == "" {
			stack.Name = it.ItemID
		}
		items = append(items, stack)
	}

	return &game.Combatant{
		Name:      p.Username,
		AvatarURL: p.AvatarURL,
		HP:        maxHP,
		MaxHP:     maxHP,
		Mana:      maxMana,
		MaxMana:   maxMana,
		Stats:     stats,
		Effects:   []game.Effect{},
		Alive:     true,
		Weapon:    weapon,
		Inventory: items,
		Abilities:    cat.AbilitiesFor(supreme, p.CardIDs()),
		Supreme:      supreme,
		SupremeAdmin: p.IsSupremeAdmin,
	}
}
