package game

import "fmt"

// AbilityKind enumerates the dispatch categories of the action resolver.
type AbilityKind string

const (
	AbilityDamage         AbilityKind = "damage"
	AbilityDamageSpecial  AbilityKind = "damage_special"
	AbilityHeal           AbilityKind = "heal"
	AbilityBuff           AbilityKind = "buff"
	AbilityHealOverTime   AbilityKind = "heal_over_time_buff"
	AbilityDebuff         AbilityKind = "debuff"
	AbilityMultiHit       AbilityKind = "multi_hit"
	AbilityGuaranteedCrit AbilityKind = "guaranteed_crit"
	AbilityCleanse        AbilityKind = "cleanse"
	AbilityInstantKill    AbilityKind = "instant_kill"
)

// BuffKind selects what a buff-category ability grants its caster.
type BuffKind string

const (
	BuffGuard       BuffKind = "guard"          // halves-to-quarter incoming damage once
	BuffReflect     BuffKind = "damage_reflect" // returns a fraction of damage taken
	BuffDefense     BuffKind = "defense_buff"   // multiplies defense for a few turns
)

// Ability is an immutable catalog entry. Category-specific parameters live
// on the one struct; Validate checks the set the kind requires.
type Ability struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Cost        int         `json:"cost"`
	Kind        AbilityKind `json:"type"`
	Description string      `json:"description,omitempty"`

	// Damage: magic damage = intelligence × IntMultiplier − defense,
	// optionally stunning with StunChance percent.
	IntMultiplier float64 `json:"int_multiplier,omitempty"`
	StunChance    int     `json:"stun_chance,omitempty"`

	// DamageSpecial: strength × StrMultiplier, ignoring
	// IgnoreDefenseFraction of the target's defense (1 = all of it).
	StrMultiplier         float64 `json:"str_multiplier,omitempty"`
	IgnoreDefenseFraction float64 `json:"ignore_defense_fraction,omitempty"`

	// Heal: restores intelligence × HealMultiplier.
	HealMultiplier float64 `json:"heal_multiplier,omitempty"`

	// Buff parameters.
	Buff              BuffKind `json:"buff,omitempty"`
	BuffTurns         int      `json:"buff_turns,omitempty"`
	ReflectFraction   float64  `json:"reflect_fraction,omitempty"`
	DefenseMultiplier float64  `json:"defense_multiplier,omitempty"`

	// HealOverTime / Debuff: per-tick magnitude is intelligence ×
	// TickMultiplier over EffectTurns turns. Debuffs name the effect id.
	TickMultiplier float64 `json:"tick_multiplier,omitempty"`
	EffectTurns    int     `json:"effect_turns,omitempty"`
	DebuffID       string  `json:"debuff_id,omitempty"`

	// MultiHit: Hits attacks at strength × HitMultiplier each.
	Hits          int     `json:"hits,omitempty"`
	HitMultiplier float64 `json:"hit_multiplier,omitempty"`

	// InstantKill abilities are one-time-per-encounter.
	OneTimeUse bool `json:"one_time_use,omitempty"`
}

// Validate rejects catalog entries missing required parameters.
func (a Ability) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("ability missing 'id'")
	}
	if a.Cost < 0 {
		return fmt.Errorf("ability %s: negative cost", a.ID)
	}
	switch a.Kind {
	case AbilityDamage:
		if a.IntMultiplier <= 0 {
			return fmt.Errorf("ability %s: damage kind requires 'int_multiplier'", a.ID)
		}
	case AbilityDamageSpecial:
		if a.StrMultiplier <= 0 {
			return fmt.Errorf("ability %s: damage_special kind requires 'str_multiplier'", a.ID)
		}
		if a.IgnoreDefenseFraction < 0 || a.IgnoreDefenseFraction > 1 {
			return fmt.Errorf("ability %s: ignore_defense_fraction out of [0,1]", a.ID)
		}
	case AbilityHeal:
		if a.HealMultiplier <= 0 {
			return fmt.Errorf("ability %s: heal kind requires 'heal_multiplier'", a.ID)
		}
	case AbilityBuff:
		switch a.Buff {
		case BuffGuard:
		case BuffReflect:
			if a.ReflectFraction <= 0 || a.BuffTurns <= 0 {
				return fmt.Errorf("ability %s: reflect buff requires fraction and turns", a.ID)
			}
		case BuffDefense:
			if a.DefenseMultiplier <= 1 || a.BuffTurns <= 0 {
				return fmt.Errorf("ability %s: defense buff requires multiplier > 1 and turns", a.ID)
			}
		default:
			return fmt.Errorf("ability %s: unknown buff kind %q", a.ID, a.Buff)
		}
	case AbilityHealOverTime:
		if a.TickMultiplier <= 0 || a.EffectTurns <= 0 {
			return fmt.Errorf("ability %s: heal_over_time_buff requires tick_multiplier and effect_turns", a.ID)
		}
	case AbilityDebuff:
		switch a.DebuffID {
		case string(EffectPoison):
			if a.TickMultiplier <= 0 || a.EffectTurns <= 0 {
				return fmt.Errorf("ability %s: poison debuff requires tick_multiplier and effect_turns", a.ID)
			}
		case string(EffectStun):
			if a.EffectTurns <= 0 {
				return fmt.Errorf("ability %s: stun debuff requires effect_turns", a.ID)
			}
		default:
			return fmt.Errorf("ability %s: unsupported debuff_id %q", a.ID, a.DebuffID)
		}
	case AbilityMultiHit:
		if a.Hits <= 0 || a.HitMultiplier <= 0 {
			return fmt.Errorf("ability %s: multi_hit requires hits and hit_multiplier", a.ID)
		}
	case AbilityGuaranteedCrit, AbilityCleanse:
		// no parameters
	case AbilityInstantKill:
		if !a.OneTimeUse {
			return fmt.Errorf("ability %s: instant_kill must be one_time_use", a.ID)
		}
	default:
		return fmt.Errorf("ability %s: unknown type %q", a.ID, a.Kind)
	}
	return nil
}
