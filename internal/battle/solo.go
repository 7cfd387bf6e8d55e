package battle

import (
	"github.com/190dpa/chatyni-rpg/internal/engine"
	"github.com/190dpa/chatyni-rpg/internal/game"
	"github.com/190dpa/chatyni-rpg/internal/logging"
)

// StartSolo begins a battle against a chosen or random monster. A player
// who already has a live battle gets its current snapshot back, so a
// dropped connection never orphans an encounter.
func (s *Service) StartSolo(username, monsterID string) (*TurnResult, error) {
	p, err := s.repo.GetProfileByUsername(username)
	if err != nil {
		return nil, ErrPlayerNotFound
	}

	s.arena.mu.Lock()
	defer s.arena.mu.Unlock()

	if b := s.arena.soloBattle(username); b != nil {
		return s.snapshot(b), nil
	}
	if s.arena.groupBattleOf(username) != nil || s.arena.dungeons[username] != nil {
		return nil, ErrAlreadyInBattle
	}

	roller := s.newRoller()
	if monsterID == "" {
		ids := s.cat.MonsterIDs(false)
		if len(ids) == 0 {
			return nil, ErrDungeonNotFound
		}
		monsterID = ids[roller.Intn(len(ids))]
	}
	tpl, ok := s.cat.Monster(monsterID)
	if !ok {
		return nil, ErrDungeonNotFound
	}

	b := s.buildSoloBattle(p, tpl, roller, "")
	s.arena.solo[username] = b
	logging.Info("solo battle started", logging.Fields{"player": username, "monster": tpl.ID})

	b.resolver.Log.Add("A wild %s appears!", tpl.Name)
	return s.snapshot(b), nil
}

func (s *Service) buildSoloBattle(p *game.PlayerProfile, tpl game.Monster, roller *engine.Roller, dungeonID string) *SoloBattle {
	log := engine.NewLog()
	return &SoloBattle{
		Username:  p.Username,
		Player:    engine.BuildPlayerCombatant(p, s.cat),
		Monster:   game.NewMonsterCombatant(tpl),
		DungeonID: dungeonID,
		GodMode:   p.GodMode,
		resolver:  engine.NewResolver(roller, log),
	}
}

func (s *Service) snapshot(b *SoloBattle) *TurnResult {
	res := &TurnResult{
		Log:     b.resolver.Log.Lines(),
		Player:  b.Player,
		Monster: b.Monster,
	}
	if b.DungeonID != "" {
		res.DungeonID = b.DungeonID
		if run := s.arena.dungeons[b.Username]; run != nil {
			res.Stage = run.StageIndex
			if d, ok := s.cat.Dungeon(b.DungeonID); ok {
				res.StageCount = len(d.Stages)
			}
		}
	}
	return res
}

// SubmitSoloAction resolves one full turn: validation, the player's
// effect ticks, the action, then the monster's answer. Validation happens
// before any state changes, so a rejected action leaves the battle
// untouched.
func (s *Service) SubmitSoloAction(username string, act Action) (*TurnResult, error) {
	s.arena.mu.Lock()
	defer s.arena.mu.Unlock()

	b := s.arena.soloBattle(username)
	if b == nil {
		return nil, ErrNoActiveBattle
	}
	return s.resolveSoloTurn(b, act)
}

func (s *Service) resolveSoloTurn(b *SoloBattle, act Action) (*TurnResult, error) {
	if !b.Player.Alive {
		return nil, ErrPlayerDefeated
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
		if err := b.resolver.CanCast(b.Player, ability); err != nil {
			return nil, err
		}
	case "item":
		if err := b.resolver.CanUseItem(b.Player, act.ItemID); err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnknownAction
	}

	b.resolver.Log.Reset()

	// A stance only lasts until the owner's next turn, even if nothing
	// consumed it.
	b.Player.IsDefending = false
	b.Player.IsSuperDefending = false

	stunned := engine.TickEffects(b.Player, b.resolver.Log)
	if !b.Player.Alive {
		return s.finishSoloDefeat(b), nil
	}
	if !stunned {
		switch act.Kind {
		case "attack":
			b.resolver.Attack(b.Player, b.Monster)
		case "defend":
			b.resolver.Defend(b.Player)
		case "ability":
			b.resolver.Cast(b.Player, b.Monster, ability)
		case "item":
			b.resolver.UseItem(b.Player, act.ItemID)
			s.consumePersistentItem(b.Username, act.ItemID)
		}
	}

	if !b.Monster.Alive {
		return s.finishSoloVictory(b)
	}

	monsterStunned := engine.TickEffects(b.Monster, b.resolver.Log)
	if !b.Monster.Alive {
		return s.finishSoloVictory(b)
	}
	if !monsterStunned {
		b.resolver.MonsterStrike(b.Monster, b.Player, false)
	}

	if !b.Player.Alive {
		if b.GodMode {
			b.Player.HP = 1
			b.Player.Alive = true
			b.resolver.Log.Add("%s refuses to fall!", b.Player.Name)
		} else {
			return s.finishSoloDefeat(b), nil
		}
	}
	return s.snapshot(b), nil
}

// consumePersistentItem mirrors a battle-time item use to the persistent
// inventory. A storage failure only logs; the battle copy is the truth
// for the rest of the encounter.
func (s *Service) consumePersistentItem(username, itemID string) {
	p, err := s.repo.GetProfileByUsername(username)
	if err != nil {
		logging.Error("failed to load profile for item use", err, logging.Fields{"player": username})
		return
	}
	if err := s.repo.ConsumeItem(p.ID, itemID, 1); err != nil {
		logging.Error("failed to consume inventory item", err, logging.Fields{"player": username, "item": itemID})
	}
}

func (s *Service) finishSoloDefeat(b *SoloBattle) *TurnResult {
	b.resolver.Log.Add("%s was defeated by %s...", b.Player.Name, b.Monster.Name)
	delete(s.arena.solo, b.Username)
	delete(s.arena.dungeons, b.Username)
	logging.Info("solo battle lost", logging.Fields{"player": b.Username, "monster": b.Monster.MonsterID})
	res := s.snapshot(b)
	res.Over = true
	return res
}

func (s *Service) finishSoloVictory(b *SoloBattle) (*TurnResult, error) {
	p, err := s.repo.GetProfileByUsername(b.Username)
	if err != nil {
		return nil, ErrPlayerNotFound
	}

	xp, coins := engine.KillReward(b.Monster, b.Player.Weapon)
	res := s.snapshot(b)
	res.Over = true
	res.Victory = true

	if b.DungeonID != "" {
		run := s.arena.dungeons[b.Username]
		if d, ok := s.cat.Dungeon(b.DungeonID); ok && run != nil {
			if run.StageIndex >= len(d.Stages)-1 {
				xp += d.FinalReward.XP
				coins += d.FinalReward.Coins
				res.Cleared = true
				delete(s.arena.dungeons, b.Username)
				logging.Info("dungeon cleared", logging.Fields{"player": b.Username, "dungeon": d.ID})
			} else {
				run.AwaitingProceed = true
			}
		}
	}

	delta := engine.ApplyReward(p, xp, coins, b.resolver.R)
	engine.AdvanceQuest(p, s.questTemplate(p), xp, coins, 1)
	if err := s.repo.SaveProfile(p); err != nil {
		return nil, err
	}

	b.resolver.Log.Add("%s was defeated! You earn %d XP and %d coins.", b.Monster.Name, xp, coins)
	for _, lu := range delta.LevelUps {
		b.resolver.Log.Add("LEVEL UP! %s reached level %d (+1 %s).", b.Player.Name, lu.Level, lu.Attribute)
	}
	res.Log = b.resolver.Log.Lines()
	res.Rewards = &delta

	delete(s.arena.solo, b.Username)
	logging.Info("solo battle won", logging.Fields{"player": b.Username, "monster": b.Monster.MonsterID})
	return res, nil
}

// FleeSolo abandons the current battle, and with it any dungeon progress.
func (s *Service) FleeSolo(username string) error {
	s.arena.mu.Lock()
	defer s.arena.mu.Unlock()

	if s.arena.soloBattle(username) == nil {
		return ErrNoActiveBattle
	}
	delete(s.arena.solo, username)
	delete(s.arena.dungeons, username)
	logging.Info("player fled battle", logging.Fields{"player": username})
	return nil
}
