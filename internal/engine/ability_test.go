package engine

import (
	"errors"
	"testing"

	"github.com/190dpa/chatyni-rpg/internal/game"
)

func TestCast_MagicDamageUsesIntelligence(t *testing.T) {
	rs := newResolver()
	caster := basicPlayer()
	caster.Stats.Intelligence = 12
	target := basicMonster(100, 0, 3)
	ab := game.Ability{ID: "bolt", Name: "Destroyer Bolt", Cost: 20, Kind: game.AbilityDamage, IntMultiplier: 1.5}
	caster.Abilities = []game.Ability{ab}

	rs.Cast(caster, target, ab)

	// floor(12*1.5) - 3 = 15
	if target.HP != 85 {
		t.Fatalf("expected 15 magic damage, target at %d", target.HP)
	}
	if caster.Mana != 30 {
		t.Fatalf("expected 20 mana spent, got %d", caster.Mana)
	}
}

func TestCast_DamageSpecialIgnoresAllDefense(t *testing.T) {
	rs := newResolver()
	caster := basicPlayer()
	caster.Stats.Strength = 10
	target := basicMonster(100, 0, 50)
	ab := game.Ability{ID: "breath", Name: "Ancestral Breath", Cost: 10, Kind: game.AbilityDamageSpecial, StrMultiplier: 1.5, IgnoreDefenseFraction: 1}
	caster.Abilities = []game.Ability{ab}

	rs.Cast(caster, target, ab)

	// floor(10*1.5) with defense fully ignored
	if target.HP != 85 {
		t.Fatalf("expected 15 damage ignoring defense, target at %d", target.HP)
	}
}

func TestCast_DamageSpecialHalfDefense(t *testing.T) {
	rs := newResolver()
	caster := basicPlayer()
	caster.Stats.Strength = 10
	target := basicMonster(100, 0, 8)
	ab := game.Ability{ID: "shadow", Name: "Shadow Strike", Cost: 10, Kind: game.AbilityDamageSpecial, StrMultiplier: 1.2, IgnoreDefenseFraction: 0.5}
	caster.Abilities = []game.Ability{ab}

	rs.Cast(caster, target, ab)

	// floor(10*1.2)=12 minus floor(8*0.5)=4
	if target.HP != 92 {
		t.Fatalf("expected 8 damage against half defense, target at %d", target.HP)
	}
}

func TestCast_HealClampsAtMax(t *testing.T) {
	rs := newResolver()
	caster := basicPlayer()
	caster.HP = 90
	caster.Stats.Intelligence = 10
	ab := game.Ability{ID: "light", Name: "Purifying Light", Cost: 15, Kind: game.AbilityHeal, HealMultiplier: 2.5}
	caster.Abilities = []game.Ability{ab}

	rs.Cast(caster, nil, ab)

	if caster.HP != caster.MaxHP {
		t.Fatalf("expected heal clamped at max, hp=%d", caster.HP)
	}
}

func TestCast_GuardBuffSetsStance(t *testing.T) {
	rs := newResolver()
	caster := basicPlayer()
	ab := game.Ability{ID: "shield", Name: "Improvised Shield", Cost: 10, Kind: game.AbilityBuff, Buff: game.BuffGuard}
	caster.Abilities = []game.Ability{ab}

	rs.Cast(caster, nil, ab)

	if !caster.IsSuperDefending {
		t.Fatal("expected guard stance after buff")
	}
}

func TestCast_MultiHitStopsOnKill(t *testing.T) {
	rs := newResolver()
	caster := basicPlayer()
	caster.Stats.Strength = 10
	target := basicMonster(6, 0, 0)
	ab := game.Ability{ID: "quickshot", Name: "Quick Shot", Cost: 10, Kind: game.AbilityMultiHit, Hits: 2, HitMultiplier: 0.6}
	caster.Abilities = []game.Ability{ab}

	rs.Cast(caster, target, ab)

	// first hit floor(10*0.6)=6 kills; second must not fire
	if target.HP != 0 || target.Alive {
		t.Fatalf("expected dead target, hp=%d", target.HP)
	}
}

func TestCast_GuaranteedCrit(t *testing.T) {
	rs := newResolver()
	caster := basicPlayer()
	caster.Stats.Strength = 12
	target := basicMonster(100, 0, 4)
	ab := game.Ability{ID: "fatal", Name: "Fatal Shadow", Cost: 25, Kind: game.AbilityGuaranteedCrit}
	caster.Abilities = []game.Ability{ab}

	rs.Cast(caster, target, ab)

	// floor((12-4)*1.75) = 14
	if target.HP != 86 {
		t.Fatalf("expected 14 forced-crit damage, target at %d", target.HP)
	}
}

func TestCast_CleanseRemovesOnlyHarmful(t *testing.T) {
	rs := newResolver()
	caster := basicPlayer()
	caster.Effects = []game.Effect{
		game.NewPoison("Poison", 3, 2),
		game.NewDefenseBuff("Defensive Posture", 2, 1.75),
		game.NewStun("Stun", 1),
	}
	ab := game.Ability{ID: "rewind", Name: "Temporal Reversal", Cost: 30, Kind: game.AbilityCleanse}
	caster.Abilities = []game.Ability{ab}

	rs.Cast(caster, nil, ab)

	if len(caster.Effects) != 1 || caster.Effects[0].Kind != game.EffectDefenseBuff {
		t.Fatalf("expected only the defense buff to survive, got %+v", caster.Effects)
	}
}

func TestCast_InstantKillIsOneTime(t *testing.T) {
	rs := newResolver()
	caster := basicPlayer()
	caster.Mana = 250
	caster.MaxMana = 250
	target := basicMonster(9999, 0, 0)
	ab := game.Ability{ID: "end", Name: "End of Existence", Cost: 100, Kind: game.AbilityInstantKill, OneTimeUse: true}
	caster.Abilities = []game.Ability{ab}

	if err := rs.CanCast(caster, ab); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	rs.Cast(caster, target, ab)

	if target.Alive {
		t.Fatal("expected instant-kill ability to end the target")
	}
	if err := rs.CanCast(caster, ab); !errors.Is(err, ErrAbilityConsumed) {
		t.Fatalf("expected ErrAbilityConsumed on second cast, got %v", err)
	}
}

func TestCanCast_Validations(t *testing.T) {
	rs := newResolver()
	caster := basicPlayer()
	known := game.Ability{ID: "bolt", Name: "Destroyer Bolt", Cost: 60, Kind: game.AbilityDamage, IntMultiplier: 1.5}
	caster.Abilities = []game.Ability{known}

	if err := rs.CanCast(caster, game.Ability{ID: "other", Cost: 1}); !errors.Is(err, ErrAbilityNotKnown) {
		t.Fatalf("expected ErrAbilityNotKnown, got %v", err)
	}
	if err := rs.CanCast(caster, known); !errors.Is(err, ErrInsufficientMana) {
		t.Fatalf("expected ErrInsufficientMana with 50 mana for cost 60, got %v", err)
	}
}

func TestUseItem_ConsumesAndHeals(t *testing.T) {
	rs := newResolver()
	c := basicPlayer()
	c.HP = 40
	c.Inventory = []game.ItemStack{{ItemID: "potion", Name: "Healing Potion", Kind: "consumable", Quantity: 2, HealValue: 25}}

	if err := rs.CanUseItem(c, "potion"); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	rs.UseItem(c, "potion")

	if c.HP != 65 {
		t.Fatalf("expected 25 healed, hp=%d", c.HP)
	}
	if c.Inventory[0].Quantity != 1 {
		t.Fatalf("expected one potion left, got %d", c.Inventory[0].Quantity)
	}

	rs.UseItem(c, "potion")
	if err := rs.CanUseItem(c, "potion"); !errors.Is(err, ErrItemUnavailable) {
		t.Fatalf("expected ErrItemUnavailable on empty stack, got %v", err)
	}
}
