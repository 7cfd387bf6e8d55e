package game

// EffectKind enumerates the timed status effects the engine knows how to
// tick. Using a dedicated type instead of plain string makes the dispatch
// in the effect engine exhaustive and self-documenting.
type EffectKind string

const (
	EffectPoison        EffectKind = "poison"
	EffectHealOverTime  EffectKind = "heal_over_time"
	EffectStun          EffectKind = "stun"
	EffectDefenseBuff   EffectKind = "defense_buff"
	EffectDamageReflect EffectKind = "damage_reflect"
)

// Effect is a timed modifier attached to a combatant. Only the fields for
// its kind are meaningful; the constructors below are the supported ways
// to build one.
type Effect struct {
	Kind  EffectKind `json:"kind"`
	Name  string     `json:"name"`
	Turns int        `json:"turns"`

	// Poison: damage per tick. HealOverTime: heal per tick.
	Damage int `json:"damage,omitempty"`
	Heal   int `json:"heal,omitempty"`

	// DefenseBuff: multiplier applied to defense while active.
	Multiplier float64 `json:"multiplier,omitempty"`

	// DamageReflect: fraction of incoming damage returned to the attacker.
	Fraction float64 `json:"fraction,omitempty"`
}

func NewPoison(name string, turns, damagePerTick int) Effect {
	return Effect{Kind: EffectPoison, Name: name, Turns: turns, Damage: damagePerTick}
}

func NewHealOverTime(name string, turns, healPerTick int) Effect {
	return Effect{Kind: EffectHealOverTime, Name: name, Turns: turns, Heal: healPerTick}
}

func NewStun(name string, turns int) Effect {
	return Effect{Kind: EffectStun, Name: name, Turns: turns}
}

func NewDefenseBuff(name string, turns int, multiplier float64) Effect {
	return Effect{Kind: EffectDefenseBuff, Name: name, Turns: turns, Multiplier: multiplier}
}

func NewDamageReflect(name string, turns int, fraction float64) Effect {
	return Effect{Kind: EffectDamageReflect, Name: name, Turns: turns, Fraction: fraction}
}

// Harmful reports whether a cleanse removes this effect. Buffs survive.
func (e Effect) Harmful() bool {
	switch e.Kind {
	case EffectPoison, EffectStun:
		return true
	default:
		return false
	}
}
