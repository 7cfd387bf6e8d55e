package engine

import (
	"github.com/190dpa/chatyni-rpg/internal/game"
)

// TickEffects applies one turn of every active effect on c, in the order
// the effects were applied, then decrements durations and drops the ones
// that expired. It reports whether c is stunned and must skip its action.
//
// Ticks run after the turn's validations but before the submitted action
// resolves, so a combatant killed by poison never acts.
func TickEffects(c *game.Combatant, log *Log) (stunned bool) {
	if len(c.Effects) == 0 {
		return false
	}
	kept := c.Effects[:0]
	for _, e := range c.Effects {
		switch e.Kind {
		case game.EffectPoison:
			c.TakeDamage(e.Damage)
			log.Add("%s takes %d damage from %s!", c.Name, e.Damage, e.Name)
		case game.EffectHealOverTime:
			restored := c.HealBy(e.Heal)
			log.Add("%s recovers %d health from %s.", c.Name, restored, e.Name)
		case game.EffectStun:
			stunned = true
			log.Add("%s is stunned and cannot act!", c.Name)
		case game.EffectDefenseBuff, game.EffectDamageReflect:
			// consulted at damage time; ticking only ages them
		}
		e.Turns--
		if e.Turns > 0 {
			kept = append(kept, e)
		} else {
			log.Add("The effect %s on %s wore off.", e.Name, c.Name)
		}
	}
	c.Effects = kept
	return stunned
}

// defenseWithBuffs returns the defense attribute after active buffs.
func defenseWithBuffs(c *game.Combatant) int {
	def := c.Stats.Defense
	if buff := c.FindEffect(game.EffectDefenseBuff); buff != nil {
		def = int(float64(def) * buff.Multiplier)
	}
	return def
}
