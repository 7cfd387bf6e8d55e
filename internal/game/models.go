package game

import "gorm.io/gorm"

// PlayerProfile stores a player's persistent identity and RPG progress.
// Battle encounters never live here; only their result deltas do.
type PlayerProfile struct {
	gorm.Model
	Username     string `json:"username" gorm:"uniqueIndex"`
	Email        string `json:"email" gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	AvatarURL    string `json:"avatar_url"`

	IsAdmin        bool `json:"is_admin"`
	IsSupremeAdmin bool `json:"is_supreme_admin"`
	GodMode        bool `json:"god_mode"`

	Level         int `json:"level"`
	XP            int `json:"xp"`
	XPToNextLevel int `json:"xp_to_next_level"`
	Coins         int `json:"coins"`

	// Base attributes as columns so the leaderboard can sort in SQL.
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Intelligence int `json:"intelligence"`
	Defense      int `json:"defense"`

	// EquippedWeaponID references the weapon catalog; stats come from
	// config, not from the database.
	EquippedWeaponID string `json:"equipped_weapon_id"`

	LuckMultiplier float64 `json:"luck_multiplier"`
	LuckUses       int     `json:"luck_uses"`

	Cards []HeroCard      `json:"cards"`
	Items []InventoryItem `json:"items"`

	// Daily quest state. QuestID references the quest pool in config.
	QuestID        string `json:"quest_id"`
	QuestProgress  int    `json:"quest_progress"`
	QuestCompleted bool   `json:"quest_completed"`
	QuestClaimed   bool   `json:"quest_claimed"`
	LastQuestDate  string `json:"last_quest_date"`
}

func (PlayerProfile) TableName() string { return "player_profiles" }

// BaseStats returns the persisted attribute columns as a Stats value.
func (p *PlayerProfile) BaseStats() Stats {
	return Stats{
		Strength:     p.Strength,
		Dexterity:    p.Dexterity,
		Intelligence: p.Intelligence,
		Defense:      p.Defense,
	}
}

// SetBaseStats writes a Stats value back to the attribute columns.
func (p *PlayerProfile) SetBaseStats(s Stats) {
	p.Strength = s.Strength
	p.Dexterity = s.Dexterity
	p.Intelligence = s.Intelligence
	p.Defense = s.Defense
}

// CardIDs lists the catalog ids of every recruited card.
func (p *PlayerProfile) CardIDs() []string {
	ids := make([]string, 0, len(p.Cards))
	for _, c := range p.Cards {
		ids = append(ids, c.CardID)
	}
	return ids
}

// OwnsCard reports whether any recruited card has the given catalog id.
func (p *PlayerProfile) OwnsCard(cardID string) bool {
	for _, c := range p.Cards {
		if c.CardID == cardID {
			return true
		}
	}
	return false
}

// HeroCard is one recruited character instance. The template (stats,
// ability) lives in the catalog; InstanceID distinguishes duplicates.
type HeroCard struct {
	gorm.Model
	PlayerProfileID uint   `json:"-"`
	CardID          string `json:"card_id"`
	InstanceID      string `json:"instance_id"`
}

func (HeroCard) TableName() string { return "hero_cards" }

// InventoryItem is one stack of an owned item. Weapons and consumables
// share the table; weapons always have quantity 1.
type InventoryItem struct {
	gorm.Model
	PlayerProfileID uint   `json:"-"`
	ItemID          string `json:"item_id"`
	Kind            string `json:"kind"` // consumable | weapon
	Quantity        int    `json:"quantity"`
}

func (InventoryItem) TableName() string { return "inventory_items" }
