package game

// RarityTier is one band of the character roll table.
type RarityTier struct {
	Rarity string  `json:"rarity"`
	Chance float64 `json:"chance"` // percent
}

// WorldBossPayout fixes the constants of the four payout bands. The band
// shape is the contract; the numbers are deployment configuration.
type WorldBossPayout struct {
	// Rank 0 draws a random hero card from this rarity.
	TopRarity string `json:"top_rarity"`
	// Rank 1 receives this weapon, or the fallback coins when the weapon
	// is unknown or already owned.
	RunnerUpWeaponID string `json:"runner_up_weapon_id"`
	RunnerUpCoins    int    `json:"runner_up_coins"`
	ThirdXP          int    `json:"third_xp"`
	ThirdCoins       int    `json:"third_coins"`
	ParticipantXP    int    `json:"participant_xp"`
	ParticipantCoins int    `json:"participant_coins"`
}

// Catalog aggregates all immutable game data loaded from configuration.
// It is built once at startup and shared read-only afterwards.
type Catalog struct {
	Monsters   map[string]Monster
	Weapons    map[string]Weapon
	Abilities  map[string]Ability
	Cards      map[string]HeroCardTemplate
	CardsByRarity map[string][]HeroCardTemplate
	Dungeons   map[string]Dungeon
	Quests     []QuestTemplate
	ShopItems  []ShopItem
	WorldBosses map[string]WorldBossTemplate

	RollTiers []RarityTier
	// RollCost is the coin price of one character roll.
	RollCost int
	Payout   WorldBossPayout

	// DefaultWorldBossID is spawned when the admin bridge names no
	// template.
	DefaultWorldBossID string

	// SupremeCardID pairs with the supreme-admin flag to unlock the
	// stat override.
	SupremeCardID string
}

func (c *Catalog) Monster(id string) (Monster, bool) {
	m, ok := c.Monsters[id]
	return m, ok
}

func (c *Catalog) Weapon(id string) (Weapon, bool) {
	w, ok := c.Weapons[id]
	return w, ok
}

func (c *Catalog) Ability(id string) (Ability, bool) {
	a, ok := c.Abilities[id]
	return a, ok
}

func (c *Catalog) Dungeon(id string) (Dungeon, bool) {
	d, ok := c.Dungeons[id]
	return d, ok
}

// MonsterIDs returns the ids of every non-boss monster, for random solo
// encounters. Order is unspecified.
func (c *Catalog) MonsterIDs(includeBosses bool) []string {
	ids := make([]string, 0, len(c.Monsters))
	for id, m := range c.Monsters {
		if m.Boss && !includeBosses {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// AbilitiesFor resolves the ability set a player brings into battle:
// supreme admins know everything, everyone else knows the abilities of
// their recruited cards.
func (c *Catalog) AbilitiesFor(supreme bool, cardIDs []string) []Ability {
	if supreme {
		out := make([]Ability, 0, len(c.Abilities))
		for _, a := range c.Abilities {
			out = append(out, a)
		}
		return out
	}
	seen := make(map[string]struct{})
	var out []Ability
	for _, id := range cardIDs {
		card, ok := c.Cards[id]
		if !ok || card.AbilityID == "" {
			continue
		}
		if _, dup := seen[card.AbilityID]; dup {
			continue
		}
		if a, ok := c.Abilities[card.AbilityID]; ok {
			out = append(out, a)
			seen[card.AbilityID] = struct{}{}
		}
	}
	return out
}
