package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/190dpa/chatyni-rpg/internal/game"
)

type rawConfig struct {
	Monsters  []game.Monster          `json:"monsters"`
	Weapons   []game.Weapon           `json:"weapons"`
	Abilities []game.Ability          `json:"abilities"`
	Cards     []game.HeroCardTemplate `json:"cards"`
	Dungeons  []game.Dungeon          `json:"dungeons"`
	Quests    []game.QuestTemplate    `json:"daily_quests"`
	ShopItems []game.ShopItem         `json:"shop_items"`

	WorldBosses []game.WorldBossTemplate `json:"world_bosses"`

	RollTiers []game.RarityTier    `json:"roll_tiers"`
	RollCost  int                  `json:"roll_cost"`
	Payout    game.WorldBossPayout `json:"world_boss_payout"`

	DefaultWorldBossID string `json:"default_world_boss"`
	SupremeCardID      string `json:"supreme_card"`
}

// LoadCatalog reads the game data file and builds the validated,
// cross-referenced catalog. Malformed entries fail the load; a server
// must not start with data the resolver cannot dispatch on.
func LoadCatalog(path string) (*game.Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if len(rc.Monsters) == 0 {
		return nil, fmt.Errorf("config file %s: 'monsters' is empty", path)
	}

	cat := &game.Catalog{
		Monsters:           make(map[string]game.Monster, len(rc.Monsters)),
		Weapons:            make(map[string]game.Weapon, len(rc.Weapons)),
		Abilities:          make(map[string]game.Ability, len(rc.Abilities)),
		Cards:              make(map[string]game.HeroCardTemplate, len(rc.Cards)),
		CardsByRarity:      make(map[string][]game.HeroCardTemplate),
		Dungeons:           make(map[string]game.Dungeon, len(rc.Dungeons)),
		Quests:             rc.Quests,
		ShopItems:          rc.ShopItems,
		WorldBosses:        make(map[string]game.WorldBossTemplate, len(rc.WorldBosses)),
		RollTiers:          rc.RollTiers,
		RollCost:           rc.RollCost,
		Payout:             rc.Payout,
		DefaultWorldBossID: rc.DefaultWorldBossID,
		SupremeCardID:      rc.SupremeCardID,
	}

	for _, m := range rc.Monsters {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		cat.Monsters[m.ID] = m
	}

	for _, a := range rc.Abilities {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		cat.Abilities[a.ID] = a
	}

	for _, w := range rc.Weapons {
		if w.ID == "" || w.Name == "" {
			return nil, fmt.Errorf("config file %s: weapon missing id or name", path)
		}
		if w.OnHit != nil {
			if err := w.OnHit.Validate(); err != nil {
				return nil, fmt.Errorf("config file %s: weapon %s: %w", path, w.ID, err)
			}
		}
		cat.Weapons[w.ID] = w
	}

	for _, c := range rc.Cards {
		if c.ID == "" || c.Rarity == "" {
			return nil, fmt.Errorf("config file %s: card missing id or rarity", path)
		}
		if c.AbilityID != "" {
			if _, ok := cat.Abilities[c.AbilityID]; !ok {
				return nil, fmt.Errorf("config file %s: card %s references unknown ability %q", path, c.ID, c.AbilityID)
			}
		}
		cat.Cards[c.ID] = c
		cat.CardsByRarity[c.Rarity] = append(cat.CardsByRarity[c.Rarity], c)
	}

	for _, d := range rc.Dungeons {
		if d.ID == "" || len(d.Stages) == 0 {
			return nil, fmt.Errorf("config file %s: dungeon missing id or stages", path)
		}
		for _, s := range d.Stages {
			if _, ok := cat.Monsters[s.MonsterID]; !ok {
				return nil, fmt.Errorf("config file %s: dungeon %s stage references unknown monster %q", path, d.ID, s.MonsterID)
			}
		}
		cat.Dungeons[d.ID] = d
	}

	for _, wb := range rc.WorldBosses {
		if wb.ID == "" || wb.MaxHP <= 0 {
			return nil, fmt.Errorf("config file %s: world boss missing id or max_hp", path)
		}
		cat.WorldBosses[wb.ID] = wb
	}
	if rc.DefaultWorldBossID != "" {
		if _, ok := cat.WorldBosses[rc.DefaultWorldBossID]; !ok {
			return nil, fmt.Errorf("config file %s: default_world_boss %q not defined", path, rc.DefaultWorldBossID)
		}
	}

	return cat, nil
}
