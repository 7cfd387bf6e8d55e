package battle

import (
	"github.com/google/uuid"

	"github.com/190dpa/chatyni-rpg/internal/engine"
	"github.com/190dpa/chatyni-rpg/internal/game"
	"github.com/190dpa/chatyni-rpg/internal/logging"
)

// Chance in percent that a boss with an area ability sweeps the whole
// party instead of striking one member.
const groupBossAoEChance = 35

// JoinBossLobby queues a player for the next group boss battle. The
// first joiner picks the boss; the battle auto-starts once the lobby
// reaches the configured headcount.
func (s *Service) JoinBossLobby(username, monsterID string) (*TurnResult, error) {
	if _, err := s.repo.GetProfileByUsername(username); err != nil {
		return nil, ErrPlayerNotFound
	}

	s.arena.mu.Lock()
	defer s.arena.mu.Unlock()

	if s.arena.soloBattle(username) != nil || s.arena.groupBattleOf(username) != nil || s.arena.dungeons[username] != nil {
		return nil, ErrAlreadyInBattle
	}
	if s.arena.inLobby(username) {
		return nil, ErrAlreadyInLobby
	}

	if len(s.arena.lobby) == 0 {
		id, err := s.pickBoss(monsterID)
		if err != nil {
			return nil, err
		}
		s.arena.lobbyBossID = id
	}
	s.arena.lobby = append(s.arena.lobby, username)
	s.notifier.Broadcast("boss_lobby_update", map[string]interface{}{
		"queued": len(s.arena.lobby),
		"needed": s.lobbySize,
	})

	if len(s.arena.lobby) < s.lobbySize {
		return &TurnResult{Turn: "waiting"}, nil
	}
	return s.startGroupBattle()
}

func (s *Service) pickBoss(monsterID string) (string, error) {
	if monsterID != "" {
		m, ok := s.cat.Monster(monsterID)
		if !ok || !m.Boss {
			return "", ErrDungeonNotFound
		}
		return m.ID, nil
	}
	for _, id := range s.cat.MonsterIDs(true) {
		if m, _ := s.cat.Monster(id); m.Boss {
			return id, nil
		}
	}
	return "", ErrDungeonNotFound
}

// startGroupBattle drains the lobby into a new battle. Caller holds the
// arena mutex.
func (s *Service) startGroupBattle() (*TurnResult, error) {
	tpl, ok := s.cat.Monster(s.arena.lobbyBossID)
	if !ok {
		s.arena.lobby = nil
		return nil, ErrDungeonNotFound
	}

	b := &GroupBattle{
		ID:       uuid.NewString(),
		Monster:  game.NewMonsterCombatant(tpl),
		resolver: engine.NewResolver(s.newRoller(), engine.NewLog()),
	}
	for _, username := range s.arena.lobby {
		p, err := s.repo.GetProfileByUsername(username)
		if err != nil {
			continue
		}
		b.Members = append(b.Members, &GroupMember{
			Username:  username,
			ProfileID: p.ID,
			Combatant: engine.BuildPlayerCombatant(p, s.cat),
		})
	}
	s.arena.lobby = nil
	s.arena.lobbyBossID = ""
	if len(b.Members) == 0 {
		return nil, ErrBattleNotFound
	}

	s.arena.groups[b.ID] = b
	logging.Info("group battle started", logging.Fields{"battle_id": b.ID, "boss": tpl.ID, "party": len(b.Members)})

	b.resolver.Log.Add("%s awakens! The party of %d steps forward.", tpl.Name, len(b.Members))
	res := s.groupSnapshot(b)
	for _, m := range b.Members {
		s.notifier.SendToPlayer(m.Username, "boss_battle_started", res)
	}
	return res, nil
}

func (s *Service) groupSnapshot(b *GroupBattle) *TurnResult {
	players := make([]*game.Combatant, 0, len(b.Members))
	for _, m := range b.Members {
		if !m.Fled {
			players = append(players, m.Combatant)
		}
	}
	return &TurnResult{
		BattleID: b.ID,
		Log:      b.resolver.Log.Lines(),
		Players:  players,
		Monster:  b.Monster,
		Turn:     b.Members[b.TurnIndex].Username,
	}
}

// SubmitGroupAction resolves one member's turn. The boss answers after
// the last living member of the round, sweeping the party when its area
// ability fires.
func (s *Service) SubmitGroupAction(username string, act Action) (*TurnResult, error) {
	s.arena.mu.Lock()
	defer s.arena.mu.Unlock()

	b := s.arena.groupBattleOf(username)
	if b == nil {
		return nil, ErrBattleNotFound
	}
	member := b.Member(username)
	if !member.Combatant.Alive {
		return nil, ErrPlayerDefeated
	}
	if b.Members[b.TurnIndex].Username != username {
		return nil, ErrNotYourTurn
	}

	var ability game.Ability
	switch act.Kind {
	case "attack", "defend":
	case "ability":
		var ok bool
		ability, ok = s.cat.Ability(act.AbilityID)
		if !ok {
			return nil, ErrUnknownAbility
		}
		if err := b.resolver.CanCast(member.Combatant, ability); err != nil {
			return nil, err
		}
	case "item":
		if err := b.resolver.CanUseItem(member.Combatant, act.ItemID); err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnknownAction
	}

	b.resolver.Log.Reset()

	// Stances expire at the start of the owner's next turn.
	member.Combatant.IsDefending = false
	member.Combatant.IsSuperDefending = false

	stunned := engine.TickEffects(member.Combatant, b.resolver.Log)
	if member.Combatant.Alive && !stunned {
		switch act.Kind {
		case "attack":
			b.resolver.Attack(member.Combatant, b.Monster)
		case "defend":
			b.resolver.Defend(member.Combatant)
		case "ability":
			b.resolver.Cast(member.Combatant, b.Monster, ability)
		case "item":
			b.resolver.UseItem(member.Combatant, act.ItemID)
			s.consumePersistentItem(username, act.ItemID)
		}
	}

	if !b.Monster.Alive {
		return s.finishGroupVictory(b)
	}
	if b.LivingMembers() == 0 {
		return s.finishGroupDefeat(b), nil
	}

	if s.advanceTurn(b) {
		s.monsterGroupTurn(b)
		if !b.Monster.Alive {
			return s.finishGroupVictory(b)
		}
		if b.LivingMembers() == 0 {
			return s.finishGroupDefeat(b), nil
		}
		// the boss may have killed the member whose turn came up
		if m := b.Members[b.TurnIndex]; m.Fled || !m.Combatant.Alive {
			s.advanceTurn(b)
		}
	}

	res := s.groupSnapshot(b)
	for _, m := range b.Members {
		if !m.Fled {
			s.notifier.SendToPlayer(m.Username, "boss_battle_update", res)
		}
	}
	return res, nil
}

// advanceTurn moves TurnIndex to the next living member and reports
// whether the order wrapped around, which ends the round.
func (s *Service) advanceTurn(b *GroupBattle) bool {
	wrapped := false
	for i := 1; i <= len(b.Members); i++ {
		idx := (b.TurnIndex + i) % len(b.Members)
		if idx <= b.TurnIndex {
			wrapped = true
		}
		m := b.Members[idx]
		if !m.Fled && m.Combatant.Alive {
			b.TurnIndex = idx
			return wrapped
		}
	}
	return wrapped
}

func (s *Service) monsterGroupTurn(b *GroupBattle) {
	if engine.TickEffects(b.Monster, b.resolver.Log) || !b.Monster.Alive {
		return
	}

	if s.bossHasAreaAbility(b.Monster) && b.resolver.R.Percent(groupBossAoEChance) {
		b.resolver.Log.Add("%s unleashes a devastating sweep across the whole party!", b.Monster.Name)
		for _, m := range b.Members {
			if !m.Fled && m.Combatant.Alive {
				b.resolver.MonsterStrike(b.Monster, m.Combatant, true)
			}
		}
		return
	}

	living := make([]*GroupMember, 0, len(b.Members))
	for _, m := range b.Members {
		if !m.Fled && m.Combatant.Alive {
			living = append(living, m)
		}
	}
	if len(living) == 0 {
		return
	}
	target := living[b.resolver.R.Intn(len(living))]
	b.resolver.MonsterStrike(b.Monster, target.Combatant, false)
}

func (s *Service) bossHasAreaAbility(m *game.Combatant) bool {
	return len(m.AreaAbilities) > 0
}

func (s *Service) finishGroupVictory(b *GroupBattle) (*TurnResult, error) {
	b.resolver.Log.Add("%s collapses! The party is victorious!", b.Monster.Name)
	res := s.groupSnapshot(b)
	res.Over = true
	res.Victory = true

	// Only members still standing at the kill share the spoils.
	for _, m := range b.Members {
		if m.Fled || !m.Combatant.Alive {
			continue
		}
		p, err := s.repo.GetProfileByUsername(m.Username)
		if err != nil {
			logging.Error("failed to load profile for group reward", err, logging.Fields{"player": m.Username})
			continue
		}
		delta, err := s.grantKill(p, b.Monster, m.Combatant.Weapon, b.resolver.R)
		if err != nil {
			logging.Error("failed to save group reward", err, logging.Fields{"player": m.Username})
			continue
		}
		s.notifier.SendToPlayer(m.Username, "boss_battle_won", map[string]interface{}{
			"rewards": delta,
			"log":     res.Log,
		})
	}

	delete(s.arena.groups, b.ID)
	logging.Info("group battle won", logging.Fields{"battle_id": b.ID, "boss": b.Monster.MonsterID})
	return res, nil
}

func (s *Service) finishGroupDefeat(b *GroupBattle) *TurnResult {
	b.resolver.Log.Add("The whole party was wiped out by %s...", b.Monster.Name)
	res := s.groupSnapshot(b)
	res.Over = true

	for _, m := range b.Members {
		if !m.Fled {
			s.notifier.SendToPlayer(m.Username, "boss_battle_lost", res)
		}
	}
	delete(s.arena.groups, b.ID)
	logging.Info("group battle lost", logging.Fields{"battle_id": b.ID, "boss": b.Monster.MonsterID})
	return res
}

// FleeGroup removes a member from the battle. The battle dissolves when
// nobody is left standing.
func (s *Service) FleeGroup(username string) error {
	s.arena.mu.Lock()
	defer s.arena.mu.Unlock()

	if s.arena.inLobby(username) {
		s.arena.removeFromLobby(username)
		return nil
	}

	b := s.arena.groupBattleOf(username)
	if b == nil {
		return ErrNoActiveBattle
	}
	b.Member(username).Fled = true
	logging.Info("player fled group battle", logging.Fields{"player": username, "battle_id": b.ID})

	if b.LivingMembers() == 0 {
		delete(s.arena.groups, b.ID)
		return nil
	}
	if m := b.Members[b.TurnIndex]; m.Fled || !m.Combatant.Alive {
		s.advanceTurn(b)
	}
	return nil
}
