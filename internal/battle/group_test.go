package battle

import (
	"errors"
	"testing"

	"github.com/190dpa/chatyni-rpg/internal/game"
)

func TestJoinBossLobby_AutoStartAtHeadcount(t *testing.T) {
	repo := newMockRepo(testProfile("hero1"), testProfile("hero2"))
	svc := newTestService(repo)

	res, err := svc.JoinBossLobby("hero1", "dragon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Turn != "waiting" {
		t.Fatalf("first joiner must wait, got %+v", res)
	}
	if _, err := svc.JoinBossLobby("hero1", ""); !errors.Is(err, ErrAlreadyInLobby) {
		t.Fatalf("expected ErrAlreadyInLobby, got %v", err)
	}

	res, err = svc.JoinBossLobby("hero2", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BattleID == "" || len(res.Players) != 2 {
		t.Fatalf("expected auto-started battle with both members, got %+v", res)
	}
	if res.Turn != "hero1" {
		t.Fatalf("first joiner acts first, turn=%s", res.Turn)
	}
	if len(svc.arena.lobby) != 0 {
		t.Fatal("lobby must drain into the battle")
	}
}

func TestJoinBossLobby_RejectsNonBoss(t *testing.T) {
	repo := newMockRepo(testProfile("hero1"))
	svc := newTestService(repo)

	if _, err := svc.JoinBossLobby("hero1", "slime"); !errors.Is(err, ErrDungeonNotFound) {
		t.Fatalf("expected rejection of non-boss monster, got %v", err)
	}
}

func TestSubmitGroupAction_TurnOrderEnforced(t *testing.T) {
	repo := newMockRepo(testProfile("hero1"), testProfile("hero2"))
	svc := newTestService(repo)

	if _, err := svc.JoinBossLobby("hero1", "dragon"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.JoinBossLobby("hero2", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.SubmitGroupAction("hero2", Action{Kind: "attack"}); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}

	b := svc.arena.groupBattleOf("hero1")
	bossHP := b.Monster.HP

	res, err := svc.SubmitGroupAction("hero1", Action{Kind: "attack"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// str 10 vs def 8: 2 damage; the boss only answers after the round
	if b.Monster.HP != bossHP-2 {
		t.Fatalf("expected 2 boss damage, hp=%d", b.Monster.HP)
	}
	if res.Turn != "hero2" {
		t.Fatalf("expected hero2's turn, got %s", res.Turn)
	}

	totalBefore := b.Members[0].Combatant.HP + b.Members[1].Combatant.HP
	res, err = svc.SubmitGroupAction("hero2", Action{Kind: "attack"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Monster.HP != bossHP-4 {
		t.Fatalf("expected 4 total boss damage, hp=%d", b.Monster.HP)
	}
	// the round wrapped, so the boss struck someone
	totalAfter := b.Members[0].Combatant.HP + b.Members[1].Combatant.HP
	if totalAfter >= totalBefore {
		t.Fatalf("boss must act after a full round, party hp %d -> %d", totalBefore, totalAfter)
	}
	if res.Turn != "hero1" {
		t.Fatalf("expected the order to wrap to hero1, got %s", res.Turn)
	}
}

func TestSubmitGroupAction_VictoryRewardsEveryMember(t *testing.T) {
	repo := newMockRepo(testProfile("hero1"), testProfile("hero2"))
	svc := newTestService(repo)

	if _, err := svc.JoinBossLobby("hero1", "dragon"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.JoinBossLobby("hero2", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := svc.arena.groupBattleOf("hero1")
	b.Monster.HP = 2 // one hit finishes it

	// hero2 went down earlier in the fight
	b.Members[1].Combatant.HP = 0
	b.Members[1].Combatant.Alive = false

	res, err := svc.SubmitGroupAction("hero1", Action{Kind: "attack"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Over || !res.Victory {
		t.Fatalf("expected victory, got %+v", res)
	}

	p1, _ := repo.GetProfileByUsername("hero1")
	// dragon pays 200 xp: level 2 at threshold 100, then 100 toward 150
	if p1.Level != 2 || p1.XP != 100 || p1.Coins != 150 {
		t.Fatalf("hero1: unexpected reward state level=%d xp=%d coins=%d", p1.Level, p1.XP, p1.Coins)
	}

	// only members standing at the kill are paid
	p2, _ := repo.GetProfileByUsername("hero2")
	if p2.Level != 1 || p2.XP != 0 || p2.Coins != 0 {
		t.Fatalf("downed hero2 must get nothing, level=%d xp=%d coins=%d", p2.Level, p2.XP, p2.Coins)
	}

	if svc.arena.groupBattleOf("hero1") != nil {
		t.Fatal("finished battle must leave the arena")
	}
}

func TestSubmitGroupAction_DefendStanceExpiresNextTurn(t *testing.T) {
	repo := newMockRepo(testProfile("hero1"), testProfile("hero2"))
	svc := newTestService(repo)

	if _, err := svc.JoinBossLobby("hero1", "dragon"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.JoinBossLobby("hero2", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := svc.arena.groupBattleOf("hero1")
	// keep the dragon from swinging so nothing consumes the stance
	b.Monster.Effects = []game.Effect{game.NewStun("Stun", 2)}

	if _, err := svc.SubmitGroupAction("hero1", Action{Kind: "defend"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.Members[0].Combatant.IsDefending {
		t.Fatal("defend must raise the stance")
	}

	if _, err := svc.SubmitGroupAction("hero2", Action{Kind: "attack"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// hero1's next turn begins: the unconsumed stance is gone
	if _, err := svc.SubmitGroupAction("hero1", Action{Kind: "attack"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Members[0].Combatant.IsDefending {
		t.Fatal("stance must expire at the start of the owner's next turn")
	}
}

func TestFleeGroup_DissolvesWhenEmpty(t *testing.T) {
	repo := newMockRepo(testProfile("hero1"), testProfile("hero2"))
	svc := newTestService(repo)

	if _, err := svc.JoinBossLobby("hero1", "dragon"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.JoinBossLobby("hero2", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := svc.arena.groupBattleOf("hero1")

	if err := svc.FleeGroup("hero1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// turn passes to the remaining member
	if b.Members[b.TurnIndex].Username != "hero2" {
		t.Fatalf("expected hero2 to hold the turn, got %s", b.Members[b.TurnIndex].Username)
	}
	if _, err := svc.SubmitGroupAction("hero1", Action{Kind: "attack"}); !errors.Is(err, ErrBattleNotFound) {
		t.Fatalf("a fled member must be out, got %v", err)
	}

	if err := svc.FleeGroup("hero2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(svc.arena.groups) != 0 {
		t.Fatal("empty battle must dissolve")
	}
}
