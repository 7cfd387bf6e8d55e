package game

import "fmt"

// TriggerKind enumerates the secondary consequences a weapon may apply on
// a successful hit. The free-form nested objects of older catalogs are
// rejected at load time in favor of these closed kinds.
type TriggerKind string

const (
	TriggerLifesteal      TriggerKind = "lifesteal_percent"
	TriggerExtraDamage    TriggerKind = "extra_damage"
	TriggerDebuff         TriggerKind = "debuff"
	TriggerDamageModifier TriggerKind = "damage_modifier"
	TriggerExecute        TriggerKind = "execute"
	TriggerInstantKill    TriggerKind = "instant_kill"
)

// OnHitTrigger describes one weapon trigger. Only the fields for its Kind
// are read; Validate enforces that the required ones are present.
type OnHitTrigger struct {
	Kind TriggerKind `json:"type"`

	// Chance in percent for chance-gated kinds (debuff, extra_damage,
	// execute, instant_kill). Zero means always fires.
	Chance int `json:"chance,omitempty"`

	// Lifesteal: percent of final damage returned as health.
	Percent int `json:"percent,omitempty"`

	// ExtraDamage: flat bonus = attribute × multiplier.
	DamageAttribute  string  `json:"damage_attribute,omitempty"`
	DamageMultiplier float64 `json:"damage_multiplier,omitempty"`

	// Debuff: effect id (poison or stun) and its duration in turns.
	EffectID string `json:"effect_id,omitempty"`
	Duration int    `json:"duration,omitempty"`

	// DamageModifier options. A weapon may carry any combination.
	IgnoreDefensePercent int     `json:"ignore_defense_percent,omitempty"`
	BonusVsBoss          float64 `json:"bonus_vs_boss,omitempty"`
	BonusVsElite         float64 `json:"bonus_vs_elite,omitempty"`
	CleavePercent        int     `json:"cleave_percent,omitempty"`

	// Execute: kill targets below this health fraction.
	Threshold float64 `json:"threshold,omitempty"`

	// InstantKill: when true the trigger only fires for supreme admins.
	// The original had two contradictory guards for this; it is now an
	// explicit per-weapon choice.
	RequiresAdmin bool `json:"requires_admin,omitempty"`
}

// Validate rejects triggers missing the parameters their kind requires.
func (t OnHitTrigger) Validate() error {
	switch t.Kind {
	case TriggerLifesteal:
		if t.Percent <= 0 {
			return fmt.Errorf("lifesteal trigger requires a positive 'percent'")
		}
	case TriggerExtraDamage:
		if t.DamageMultiplier <= 0 {
			return fmt.Errorf("extra_damage trigger requires a positive 'damage_multiplier'")
		}
		switch t.DamageAttribute {
		case "strength", "dexterity", "intelligence":
		default:
			return fmt.Errorf("extra_damage trigger has unknown damage_attribute %q", t.DamageAttribute)
		}
	case TriggerDebuff:
		if t.EffectID != string(EffectPoison) && t.EffectID != string(EffectStun) {
			return fmt.Errorf("debuff trigger has unsupported effect_id %q", t.EffectID)
		}
		if t.Duration <= 0 {
			return fmt.Errorf("debuff trigger requires a positive 'duration'")
		}
	case TriggerDamageModifier:
		if t.IgnoreDefensePercent == 0 && t.BonusVsBoss == 0 && t.BonusVsElite == 0 && t.CleavePercent == 0 {
			return fmt.Errorf("damage_modifier trigger sets no modifier")
		}
	case TriggerExecute:
		if t.Threshold <= 0 || t.Threshold >= 1 {
			return fmt.Errorf("execute trigger requires a threshold in (0,1)")
		}
	case TriggerInstantKill:
		// chance alone is enough
	default:
		return fmt.Errorf("unknown on_hit trigger type %q", t.Kind)
	}
	return nil
}

// Weapon is an immutable catalog entry. Combatants hold a copy by value.
type Weapon struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Rarity           string        `json:"rarity"`
	Price            int           `json:"price,omitempty"`
	PassiveStats     Stats         `json:"passive_stats"`
	PassiveCritBonus int           `json:"passive_crit_chance,omitempty"`
	GoldBonusPercent int           `json:"passive_gold_bonus,omitempty"`
	OnHit            *OnHitTrigger `json:"on_hit,omitempty"`
	Description      string        `json:"description,omitempty"`
}
