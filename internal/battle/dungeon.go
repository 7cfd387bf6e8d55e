package battle

import (
	"github.com/190dpa/chatyni-rpg/internal/logging"
)

// StartDungeon opens a run at stage zero. The stage battle itself lives
// in the solo map, so the regular action and flee operations drive it.
func (s *Service) StartDungeon(username, dungeonID string) (*TurnResult, error) {
	p, err := s.repo.GetProfileByUsername(username)
	if err != nil {
		return nil, ErrPlayerNotFound
	}
	d, ok := s.cat.Dungeon(dungeonID)
	if !ok {
		return nil, ErrDungeonNotFound
	}

	s.arena.mu.Lock()
	defer s.arena.mu.Unlock()

	if s.arena.soloBattle(username) != nil || s.arena.groupBattleOf(username) != nil || s.arena.dungeons[username] != nil {
		return nil, ErrAlreadyInBattle
	}

	tpl, ok := s.cat.Monster(d.Stages[0].MonsterID)
	if !ok {
		return nil, ErrDungeonNotFound
	}

	s.arena.dungeons[username] = &DungeonRun{Username: username, DungeonID: d.ID, StageIndex: 0}
	b := s.buildSoloBattle(p, tpl, s.newRoller(), d.ID)
	s.arena.solo[username] = b
	logging.Info("dungeon started", logging.Fields{"player": username, "dungeon": d.ID})

	b.resolver.Log.Add("You enter %s. Stage 1: %s blocks the way!", d.Name, tpl.Name)
	return s.snapshot(b), nil
}

// ProceedDungeon advances to the next stage after the current one was
// cleared.
func (s *Service) ProceedDungeon(username string) (*TurnResult, error) {
	p, err := s.repo.GetProfileByUsername(username)
	if err != nil {
		return nil, ErrPlayerNotFound
	}

	s.arena.mu.Lock()
	defer s.arena.mu.Unlock()

	run := s.arena.dungeons[username]
	if run == nil {
		return nil, ErrNotInDungeon
	}
	if !run.AwaitingProceed {
		return nil, ErrStageUnresolved
	}
	d, ok := s.cat.Dungeon(run.DungeonID)
	if !ok {
		return nil, ErrDungeonNotFound
	}

	run.StageIndex++
	run.AwaitingProceed = false
	tpl, ok := s.cat.Monster(d.Stages[run.StageIndex].MonsterID)
	if !ok {
		return nil, ErrDungeonNotFound
	}

	b := s.buildSoloBattle(p, tpl, s.newRoller(), d.ID)
	s.arena.solo[username] = b
	logging.Info("dungeon stage started", logging.Fields{"player": username, "dungeon": d.ID, "stage": run.StageIndex})

	b.resolver.Log.Add("Stage %d: %s blocks the way!", run.StageIndex+1, tpl.Name)
	return s.snapshot(b), nil
}

// LeaveDungeon abandons the run. Stage progress is discarded; rewards
// already granted for cleared stages are kept.
func (s *Service) LeaveDungeon(username string) error {
	s.arena.mu.Lock()
	defer s.arena.mu.Unlock()

	if s.arena.dungeons[username] == nil {
		return ErrNotInDungeon
	}
	delete(s.arena.dungeons, username)
	delete(s.arena.solo, username)
	logging.Info("dungeon abandoned", logging.Fields{"player": username})
	return nil
}
