package game

import "fmt"

// Monster is an immutable catalog template. Boss-tier monsters refuse
// instant-kill weapon triggers.
type Monster struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	HP       int    `json:"hp"`
	Attack   int    `json:"attack"`
	Defense  int    `json:"defense"`
	XP       int    `json:"xp"`
	Coins    int    `json:"coins"`
	ImageURL string `json:"image_url,omitempty"`
	Boss     bool   `json:"boss,omitempty"`
	Elite    bool   `json:"elite,omitempty"`
	// AreaAbilities lists special attacks; "fire_breath" enables the
	// group-battle AoE branch.
	AreaAbilities []string `json:"special_abilities,omitempty"`
}

func (m Monster) Validate() error {
	if m.ID == "" || m.Name == "" {
		return fmt.Errorf("monster missing id or name")
	}
	if m.HP <= 0 {
		return fmt.Errorf("monster %s: hp must be positive", m.ID)
	}
	return nil
}

// DungeonStage is one monster of a dungeon's ordered stage list.
type DungeonStage struct {
	Kind      string `json:"type"` // mob | boss
	MonsterID string `json:"monster_id"`
}

// Dungeon is an immutable multi-stage encounter chain with a final reward.
type Dungeon struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Stages      []DungeonStage `json:"stages"`
	FinalReward struct {
		XP    int `json:"xp"`
		Coins int `json:"coins"`
	} `json:"final_reward"`
}

// WorldBossTemplate describes a spawnable world boss. BaseRewards are the
// values shown in announcements; the tier payout is configured separately.
type WorldBossTemplate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MaxHP    int    `json:"max_hp"`
	ImageURL string `json:"image_url,omitempty"`
}

// HeroCardTemplate is a recruitable character granting passive attribute
// bonuses and, optionally, one ability.
type HeroCardTemplate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Rarity    string `json:"rarity"`
	Stats     Stats  `json:"stats"`
	AbilityID string `json:"ability_id,omitempty"`
}

// QuestTemplate is one entry of the daily-quest pool.
type QuestTemplate struct {
	ID          string `json:"id"`
	Kind        string `json:"type"` // FIGHT | EARN_COINS | GAIN_XP
	Description string `json:"description"`
	Target      int    `json:"target"`
	RewardXP    int    `json:"reward_xp"`
	RewardCoins int    `json:"reward_coins"`
}

// ShopItem is a fixed-price store entry. Permanent items apply a stat (or
// xp) bonus on purchase; consumables go to the inventory.
type ShopItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Kind        string `json:"type"` // permanent | consumable
	BonusStat   string `json:"bonus_stat,omitempty"`
	BonusValue  int    `json:"bonus_value,omitempty"`
	HealValue   int    `json:"heal_value,omitempty"`
	Description string `json:"description,omitempty"`
}
