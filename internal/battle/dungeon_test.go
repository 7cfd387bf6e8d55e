package battle

import (
	"errors"
	"testing"
)

func killCurrentMonster(t *testing.T, svc *Service, username string) *TurnResult {
	t.Helper()
	var res *TurnResult
	for i := 0; i < 10; i++ {
		var err error
		res, err = svc.SubmitSoloAction(username, Action{Kind: "attack"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Over {
			return res
		}
	}
	t.Fatal("monster did not fall within 10 turns")
	return nil
}

func TestDungeon_StageChainAndFinalReward(t *testing.T) {
	repo := newMockRepo(testProfile("hero"))
	svc := newTestService(repo)

	res, err := svc.StartDungeon("hero", "goblin_cave")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.DungeonID != "goblin_cave" || res.Stage != 0 || res.StageCount != 2 {
		t.Fatalf("unexpected opening snapshot: %+v", res)
	}

	// stage 1 cleared, run waits for proceed
	res = killCurrentMonster(t, svc, "hero")
	if !res.Victory || res.Cleared {
		t.Fatalf("stage 1 must end in victory without clearing, %+v", res)
	}
	run := svc.arena.dungeons["hero"]
	if run == nil || !run.AwaitingProceed {
		t.Fatalf("expected run awaiting proceed, got %+v", run)
	}

	// acting between stages is rejected, proceeding twice too
	if _, err := svc.SubmitSoloAction("hero", Action{Kind: "attack"}); !errors.Is(err, ErrNoActiveBattle) {
		t.Fatalf("expected ErrNoActiveBattle between stages, got %v", err)
	}

	res, err = svc.ProceedDungeon("hero")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stage != 1 {
		t.Fatalf("expected stage 2 snapshot, got stage=%d", res.Stage)
	}
	if _, err := svc.ProceedDungeon("hero"); !errors.Is(err, ErrStageUnresolved) {
		t.Fatalf("expected ErrStageUnresolved mid-stage, got %v", err)
	}

	// final stage: monster reward plus the dungeon's final reward
	res = killCurrentMonster(t, svc, "hero")
	if !res.Cleared {
		t.Fatalf("expected cleared dungeon, got %+v", res)
	}
	if res.Rewards.XP != 60 || res.Rewards.Coins != 23 {
		t.Fatalf("expected 10+50 xp and 3+20 coins on the last stage, got %+v", res.Rewards)
	}

	p, _ := repo.GetProfileByUsername("hero")
	if p.XP != 70 || p.Coins != 26 {
		t.Fatalf("expected both stages persisted, xp=%d coins=%d", p.XP, p.Coins)
	}
	if svc.arena.dungeons["hero"] != nil {
		t.Fatal("cleared run must leave the arena")
	}
}

func TestDungeon_LeaveDiscardsProgress(t *testing.T) {
	repo := newMockRepo(testProfile("hero"))
	svc := newTestService(repo)

	if _, err := svc.StartDungeon("hero", "goblin_cave"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	killCurrentMonster(t, svc, "hero")

	if err := svc.LeaveDungeon("hero"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.arena.dungeons["hero"] != nil || svc.arena.soloBattle("hero") != nil {
		t.Fatal("leaving must drop the run and any stage battle")
	}

	// stage-1 rewards granted before leaving are kept
	p, _ := repo.GetProfileByUsername("hero")
	if p.XP != 10 || p.Coins != 3 {
		t.Fatalf("cleared-stage rewards must survive leaving, xp=%d coins=%d", p.XP, p.Coins)
	}

	// a fresh run restarts at stage zero
	res, err := svc.StartDungeon("hero", "goblin_cave")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stage != 0 {
		t.Fatalf("expected restart at stage 0, got %d", res.Stage)
	}
}

func TestDungeon_UnknownAndDoubleEntry(t *testing.T) {
	repo := newMockRepo(testProfile("hero"))
	svc := newTestService(repo)

	if _, err := svc.StartDungeon("hero", "nope"); !errors.Is(err, ErrDungeonNotFound) {
		t.Fatalf("expected ErrDungeonNotFound, got %v", err)
	}
	if _, err := svc.StartDungeon("hero", "goblin_cave"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.StartDungeon("hero", "goblin_cave"); !errors.Is(err, ErrAlreadyInBattle) {
		t.Fatalf("expected ErrAlreadyInBattle, got %v", err)
	}
	// a solo start mid-stage reconnects to the stage battle instead of
	// opening a second encounter
	res, err := svc.StartSolo("hero", "slime")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.DungeonID != "goblin_cave" {
		t.Fatalf("expected the dungeon stage battle back, got %+v", res)
	}
}
