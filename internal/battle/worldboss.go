package battle

import (
	"sort"

	"github.com/google/uuid"

	"github.com/190dpa/chatyni-rpg/internal/engine"
	"github.com/190dpa/chatyni-rpg/internal/game"
	"github.com/190dpa/chatyni-rpg/internal/logging"
)

// WorldBossStatus is the public view of the raid singleton.
type WorldBossStatus struct {
	Active       bool   `json:"active"`
	Name         string `json:"name,omitempty"`
	HP           int    `json:"hp,omitempty"`
	MaxHP        int    `json:"max_hp,omitempty"`
	Participants int    `json:"participants,omitempty"`
}

// AttackResult reports one registered world-boss hit.
type AttackResult struct {
	Damage    int  `json:"damage"`
	BossHP    int  `json:"boss_hp"`
	BossMaxHP int  `json:"boss_max_hp"`
	Defeated  bool `json:"defeated"`
	// YourTotal is the attacker's accumulated contribution.
	YourTotal int `json:"your_total"`
}

// GetWorldBossStatus reads the raid state under the boss mutex.
func (s *Service) GetWorldBossStatus() WorldBossStatus {
	s.arena.bossMu.Lock()
	defer s.arena.bossMu.Unlock()

	wb := s.arena.worldBoss
	if wb == nil {
		return WorldBossStatus{}
	}
	return WorldBossStatus{
		Active:       true,
		Name:         wb.Name,
		HP:           wb.HP,
		MaxHP:        wb.MaxHP,
		Participants: len(wb.Contributions),
	}
}

// SpawnWorldBoss activates a raid from a catalog template. An empty id
// spawns the configured default. A raid already in progress is replaced.
func (s *Service) SpawnWorldBoss(templateID string) (WorldBossStatus, error) {
	if templateID == "" {
		templateID = s.cat.DefaultWorldBossID
	}
	tpl, ok := s.cat.WorldBosses[templateID]
	if !ok {
		return WorldBossStatus{}, ErrNoWorldBoss
	}

	s.arena.bossMu.Lock()
	s.arena.worldBoss = &WorldBossFight{
		TemplateID:    tpl.ID,
		Name:          tpl.Name,
		MaxHP:         tpl.MaxHP,
		HP:            tpl.MaxHP,
		Contributions: make(map[string]int),
	}
	status := WorldBossStatus{Active: true, Name: tpl.Name, HP: tpl.MaxHP, MaxHP: tpl.MaxHP}
	s.arena.bossMu.Unlock()

	logging.Info("world boss spawned", logging.Fields{"boss": tpl.ID})
	s.notifier.Broadcast("world_boss_spawned", status)
	return status, nil
}

// AttackWorldBoss registers one hit. The read-modify-write of the health
// pool and the contribution ledger is atomic under the boss mutex, so
// concurrent attackers never lose damage and the ledger always sums to
// the health the boss lost.
func (s *Service) AttackWorldBoss(username string) (*AttackResult, error) {
	p, err := s.repo.GetProfileByUsername(username)
	if err != nil {
		return nil, ErrPlayerNotFound
	}
	stats := engine.BuildPlayerCombatant(p, s.cat).Stats
	damage := engine.WorldBossDamage(stats)

	s.arena.bossMu.Lock()
	wb := s.arena.worldBoss
	if wb == nil || wb.HP <= 0 {
		s.arena.bossMu.Unlock()
		return nil, ErrNoWorldBoss
	}
	if damage > wb.HP {
		damage = wb.HP
	}
	wb.HP -= damage
	wb.Contributions[username] += damage
	res := &AttackResult{
		Damage:    damage,
		BossHP:    wb.HP,
		BossMaxHP: wb.MaxHP,
		Defeated:  wb.HP == 0,
		YourTotal: wb.Contributions[username],
	}
	var defeated *WorldBossFight
	if wb.HP == 0 {
		defeated = wb
		s.arena.worldBoss = nil
	}
	s.arena.bossMu.Unlock()

	if defeated != nil {
		s.payoutWorldBoss(defeated)
	}
	return res, nil
}

// payoutWorldBoss distributes the banded rewards to every contributor,
// ranked by total damage.
func (s *Service) payoutWorldBoss(wb *WorldBossFight) {
	type entry struct {
		username string
		damage   int
	}
	ranking := make([]entry, 0, len(wb.Contributions))
	for u, d := range wb.Contributions {
		ranking = append(ranking, entry{u, d})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].damage != ranking[j].damage {
			return ranking[i].damage > ranking[j].damage
		}
		return ranking[i].username < ranking[j].username
	})

	logging.Info("world boss defeated", logging.Fields{"boss": wb.TemplateID, "participants": len(ranking)})
	s.notifier.Broadcast("world_boss_defeated", map[string]interface{}{
		"boss":         wb.Name,
		"participants": len(ranking),
	})

	roller := s.newRoller()
	for rank, e := range ranking {
		p, err := s.repo.GetProfileByUsername(e.username)
		if err != nil {
			logging.Error("failed to load profile for raid payout", err, logging.Fields{"player": e.username})
			continue
		}
		delta, message := engine.PayoutForRank(s.cat, rank, s.ownsWeapon(p, s.cat.Payout.RunnerUpWeaponID), roller)

		applied := engine.ApplyReward(p, delta.XP, delta.Coins, roller)
		engine.AdvanceQuest(p, s.questTemplate(p), delta.XP, delta.Coins, 0)
		if err := s.repo.SaveProfile(p); err != nil {
			logging.Error("failed to save raid payout", err, logging.Fields{"player": e.username})
			continue
		}
		for _, cardID := range delta.CardsGranted {
			if err := s.repo.AddCard(p.ID, cardID, uuid.NewString()); err != nil {
				logging.Error("failed to grant raid card", err, logging.Fields{"player": e.username})
			}
		}
		for _, itemID := range delta.ItemsGranted {
			if err := s.repo.AddItem(p.ID, itemID, "weapon", 1); err != nil {
				logging.Error("failed to grant raid weapon", err, logging.Fields{"player": e.username})
			}
		}

		applied.CardsGranted = delta.CardsGranted
		applied.ItemsGranted = delta.ItemsGranted
		s.notifier.SendToPlayer(e.username, "world_boss_reward", map[string]interface{}{
			"rank":    rank + 1,
			"damage":  e.damage,
			"message": message,
			"rewards": applied,
		})
	}
}

func (s *Service) ownsWeapon(p *game.PlayerProfile, weaponID string) bool {
	if weaponID == "" {
		return true
	}
	if p.EquippedWeaponID == weaponID {
		return true
	}
	for _, it := range p.Items {
		if it.ItemID == weaponID && it.Kind == "weapon" {
			return true
		}
	}
	return false
}
