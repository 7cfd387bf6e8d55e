package engine

import (
	"errors"
	"math"

	"github.com/190dpa/chatyni-rpg/internal/game"
)

// Combat tuning constants. The integer formulas floor unless noted.
const (
	critMultiplier   = 1.75
	critChanceCap    = 50.0
	critChancePerDex = 0.5

	dodgeChanceCap    = 50.0
	dodgeChancePerDex = 1.5

	// Area attacks are easier to see coming but impossible to fully
	// avoid, so the dodge window halves and the damage scales down.
	aoeDodgeChanceCap       = 25.0
	aoeDodgeChancePerDex    = 0.75
	groupBossAoEDamageScale = 0.8

	superDefendFactor = 0.25

	// Poison inflicted by weapon debuff triggers ticks at half the
	// attacker's intelligence.
	weaponPoisonMultiplier = 0.5
)

// Validation errors surfaced to the API layer through the battle package.
var (
	ErrAbilityNotKnown  = errors.New("ability not learned")
	ErrInsufficientMana = errors.New("insufficient mana")
	ErrAbilityConsumed  = errors.New("one-time ability already used")
	ErrItemUnavailable  = errors.New("item not available")
)

// Resolver executes single actions against combatant state. It owns no
// state of its own beyond the randomness source and the round log, so
// one instance per encounter is enough.
type Resolver struct {
	R   *Roller
	Log *Log
}

func NewResolver(r *Roller, log *Log) *Resolver {
	return &Resolver{R: r, Log: log}
}

func attributeValue(s game.Stats, name string) int {
	switch name {
	case "strength":
		return s.Strength
	case "dexterity":
		return s.Dexterity
	case "intelligence":
		return s.Intelligence
	case "defense":
		return s.Defense
	}
	return 0
}

// Attack resolves a basic weapon attack from attacker against target,
// including crit, damage-modifier folding and post-damage weapon
// triggers. Returns the direct damage dealt.
func (rs *Resolver) Attack(attacker, target *game.Combatant) int {
	def := defenseWithBuffs(target)

	w := attacker.Weapon
	var trig *game.OnHitTrigger
	if w != nil {
		trig = w.OnHit
	}

	if trig != nil && trig.Kind == game.TriggerDamageModifier && trig.IgnoreDefensePercent > 0 {
		ignored := int(math.Floor(float64(def) * float64(trig.IgnoreDefensePercent) / 100))
		if ignored > 0 {
			def -= ignored
			rs.Log.Add("%s pierces through %d defense!", w.Name, ignored)
		}
	}

	damage := attacker.Stats.Strength - def
	if damage < 1 {
		damage = 1
	}

	if trig != nil && trig.Kind == game.TriggerDamageModifier {
		if target.Boss && trig.BonusVsBoss > 0 {
			damage = int(math.Floor(float64(damage) * trig.BonusVsBoss))
		}
		if target.Elite && trig.BonusVsElite > 0 {
			damage = int(math.Floor(float64(damage) * trig.BonusVsElite))
		}
	}

	critChance := math.Min(critChanceCap, float64(attacker.Stats.Dexterity)*critChancePerDex)
	if w != nil {
		critChance += float64(w.PassiveCritBonus)
	}
	crit := rs.R.Percent(critChance)
	if crit {
		damage = int(math.Floor(float64(damage) * critMultiplier))
	}

	target.TakeDamage(damage)
	if crit {
		rs.Log.Add("CRITICAL HIT! %s strikes %s for %d damage!", attacker.Name, target.Name, damage)
	} else {
		rs.Log.Add("%s attacks %s for %d damage.", attacker.Name, target.Name, damage)
	}

	if trig != nil {
		rs.applyOnHit(attacker, target, w, trig, damage)
	}
	return damage
}

// applyOnHit runs the post-damage branch of a weapon trigger. The
// damage-modifier kind was already folded into the base damage.
func (rs *Resolver) applyOnHit(attacker, target *game.Combatant, w *game.Weapon, trig *game.OnHitTrigger, dealt int) {
	switch trig.Kind {
	case game.TriggerLifesteal:
		healed := attacker.HealBy(int(math.Ceil(float64(dealt) * float64(trig.Percent) / 100)))
		if healed > 0 {
			rs.Log.Add("%s drains %d health with %s!", attacker.Name, healed, w.Name)
		}
	case game.TriggerDebuff:
		if trig.Chance > 0 && !rs.R.Percent(float64(trig.Chance)) {
			return
		}
		switch trig.EffectID {
		case string(game.EffectPoison):
			tick := int(math.Floor(float64(attacker.Stats.Intelligence) * weaponPoisonMultiplier))
			if tick < 1 {
				tick = 1
			}
			target.Effects = append(target.Effects, game.NewPoison("Poison", trig.Duration, tick))
			rs.Log.Add("%s is poisoned by %s!", target.Name, w.Name)
		case string(game.EffectStun):
			target.Effects = append(target.Effects, game.NewStun("Stun", trig.Duration))
			rs.Log.Add("%s is stunned by %s!", target.Name, w.Name)
		}
	case game.TriggerExtraDamage:
		if trig.Chance > 0 && !rs.R.Percent(float64(trig.Chance)) {
			return
		}
		extra := int(math.Floor(float64(attributeValue(attacker.Stats, trig.DamageAttribute)) * trig.DamageMultiplier))
		if extra < 1 {
			extra = 1
		}
		target.TakeDamage(extra)
		rs.Log.Add("%s surges with power, dealing %d extra damage!", w.Name, extra)
	case game.TriggerExecute:
		if target.Boss || !target.Alive {
			return
		}
		if trig.Chance > 0 && !rs.R.Percent(float64(trig.Chance)) {
			return
		}
		if target.HP > 0 && target.HP <= int(math.Floor(float64(target.MaxHP)*trig.Threshold)) {
			target.TakeDamage(target.HP)
			rs.Log.Add("%s executes the weakened %s!", w.Name, target.Name)
		}
	case game.TriggerInstantKill:
		if target.Boss {
			return
		}
		if trig.RequiresAdmin && !attacker.SupremeAdmin {
			return
		}
		if !rs.R.Percent(float64(trig.Chance)) {
			return
		}
		target.TakeDamage(target.HP)
		rs.Log.Add("INSTANT DEATH! %s annihilates %s!", w.Name, target.Name)
	}
}

// Defend puts the combatant in a defensive stance until its next hit.
func (rs *Resolver) Defend(c *game.Combatant) {
	c.IsDefending = true
	rs.Log.Add("%s takes a defensive stance.", c.Name)
}

// CanCast checks an ability cast without mutating any state, so the
// orchestrator can reject the turn before effects tick.
func (rs *Resolver) CanCast(caster *game.Combatant, ab game.Ability) error {
	if !caster.KnowsAbility(ab.ID) {
		return ErrAbilityNotKnown
	}
	if caster.Mana < ab.Cost {
		return ErrInsufficientMana
	}
	if ab.OneTimeUse && caster.HasUsed(ab.ID) {
		return ErrAbilityConsumed
	}
	return nil
}

// Cast resolves a validated ability. Mana is spent here; one-time
// abilities are marked used whether or not their roll succeeds.
func (rs *Resolver) Cast(caster, target *game.Combatant, ab game.Ability) {
	caster.SpendMana(ab.Cost)
	if ab.OneTimeUse {
		caster.UsedOneTimeAbilities = append(caster.UsedOneTimeAbilities, ab.ID)
	}

	stats := caster.Stats
	switch ab.Kind {
	case game.AbilityDamage:
		dmg := int(math.Floor(float64(stats.Intelligence)*ab.IntMultiplier)) - defenseWithBuffs(target)
		if dmg < 1 {
			dmg = 1
		}
		target.TakeDamage(dmg)
		rs.Log.Add("%s casts %s, hitting %s for %d damage!", caster.Name, ab.Name, target.Name, dmg)
		if ab.StunChance > 0 && target.Alive && rs.R.Percent(float64(ab.StunChance)) {
			turns := ab.EffectTurns
			if turns <= 0 {
				turns = 1
			}
			target.Effects = append(target.Effects, game.NewStun("Stun", turns))
			rs.Log.Add("%s is stunned by the blast!", target.Name)
		}
	case game.AbilityDamageSpecial:
		effDef := int(math.Floor(float64(defenseWithBuffs(target)) * (1 - ab.IgnoreDefenseFraction)))
		dmg := int(math.Floor(float64(stats.Strength)*ab.StrMultiplier)) - effDef
		if dmg < 1 {
			dmg = 1
		}
		target.TakeDamage(dmg)
		rs.Log.Add("%s uses %s on %s for %d damage!", caster.Name, ab.Name, target.Name, dmg)
	case game.AbilityHeal:
		restored := caster.HealBy(int(math.Floor(float64(stats.Intelligence) * ab.HealMultiplier)))
		rs.Log.Add("%s casts %s and recovers %d health.", caster.Name, ab.Name, restored)
	case game.AbilityBuff:
		switch ab.Buff {
		case game.BuffGuard:
			caster.IsSuperDefending = true
			rs.Log.Add("%s raises %s, bracing for the next blow!", caster.Name, ab.Name)
		case game.BuffReflect:
			caster.Effects = append(caster.Effects, game.NewDamageReflect(ab.Name, ab.BuffTurns, ab.ReflectFraction))
			rs.Log.Add("%s invokes %s. Incoming attacks will be partly reflected!", caster.Name, ab.Name)
		case game.BuffDefense:
			caster.Effects = append(caster.Effects, game.NewDefenseBuff(ab.Name, ab.BuffTurns, ab.DefenseMultiplier))
			rs.Log.Add("%s assumes %s. Defense is greatly increased!", caster.Name, ab.Name)
		}
	case game.AbilityHealOverTime:
		tick := int(math.Floor(float64(stats.Intelligence) * ab.TickMultiplier))
		if tick < 1 {
			tick = 1
		}
		caster.Effects = append(caster.Effects, game.NewHealOverTime(ab.Name, ab.EffectTurns, tick))
		rs.Log.Add("%s drinks %s and will regenerate for %d turns.", caster.Name, ab.Name, ab.EffectTurns)
	case game.AbilityDebuff:
		switch ab.DebuffID {
		case string(game.EffectPoison):
			tick := int(math.Floor(float64(stats.Intelligence) * ab.TickMultiplier))
			if tick < 1 {
				tick = 1
			}
			target.Effects = append(target.Effects, game.NewPoison(ab.Name, ab.EffectTurns, tick))
			rs.Log.Add("%s strikes with %s! %s is poisoned.", caster.Name, ab.Name, target.Name)
		case string(game.EffectStun):
			target.Effects = append(target.Effects, game.NewStun(ab.Name, ab.EffectTurns))
			rs.Log.Add("%s springs %s! %s is stunned.", caster.Name, ab.Name, target.Name)
		}
	case game.AbilityMultiHit:
		def := defenseWithBuffs(target)
		total := 0
		for i := 0; i < ab.Hits && target.Alive; i++ {
			dmg := int(math.Floor(float64(stats.Strength)*ab.HitMultiplier)) - def
			if dmg < 1 {
				dmg = 1
			}
			target.TakeDamage(dmg)
			total += dmg
		}
		rs.Log.Add("%s unleashes %s, hitting %s %d times for %d total damage!", caster.Name, ab.Name, target.Name, ab.Hits, total)
	case game.AbilityGuaranteedCrit:
		dmg := caster.Stats.Strength - defenseWithBuffs(target)
		if dmg < 1 {
			dmg = 1
		}
		dmg = int(math.Floor(float64(dmg) * critMultiplier))
		target.TakeDamage(dmg)
		rs.Log.Add("%s emerges from the shadows! %s takes a guaranteed critical of %d damage!", caster.Name, target.Name, dmg)
	case game.AbilityCleanse:
		kept := caster.Effects[:0]
		removed := 0
		for _, e := range caster.Effects {
			if e.Harmful() {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		caster.Effects = kept
		rs.Log.Add("%s rewinds time with %s, dispelling %d harmful effects.", caster.Name, ab.Name, removed)
	case game.AbilityInstantKill:
		target.TakeDamage(target.HP)
		rs.Log.Add("%s invokes %s. %s ceases to exist.", caster.Name, ab.Name, target.Name)
	}
}

// CanUseItem checks that the combatant holds at least one of the item.
func (rs *Resolver) CanUseItem(c *game.Combatant, itemID string) error {
	for i := range c.Inventory {
		if c.Inventory[i].ItemID == itemID && c.Inventory[i].Quantity > 0 {
			return nil
		}
	}
	return ErrItemUnavailable
}

// UseItem consumes one unit of a validated item from the battle-scoped
// inventory and applies its effect.
func (rs *Resolver) UseItem(c *game.Combatant, itemID string) {
	for i := range c.Inventory {
		stack := &c.Inventory[i]
		if stack.ItemID != itemID || stack.Quantity <= 0 {
			continue
		}
		stack.Quantity--
		restored := c.HealBy(stack.HealValue)
		rs.Log.Add("%s uses %s and recovers %d health.", c.Name, stack.Name, restored)
		return
	}
}

// MonsterStrike resolves a monster attack against a player, applying
// dodge, defense buffs, stances, supreme immunity and damage reflection.
// Area attacks use the reduced dodge window, scale the damage down and
// skip reflection. Returns the damage taken.
func (rs *Resolver) MonsterStrike(monster, target *game.Combatant, area bool) int {
	dodgeCap, dodgePerDex := dodgeChanceCap, dodgeChancePerDex
	if area {
		dodgeCap, dodgePerDex = aoeDodgeChanceCap, aoeDodgeChancePerDex
	}
	if rs.R.Percent(math.Min(dodgeCap, float64(target.Stats.Dexterity)*dodgePerDex)) {
		rs.Log.Add("%s dodges %s's attack!", target.Name, monster.Name)
		return 0
	}

	attack := monster.Stats.Strength
	if area {
		attack = int(math.Floor(float64(attack) * groupBossAoEDamageScale))
	}
	dmg := attack - defenseWithBuffs(target)
	if dmg < 1 {
		dmg = 1
	}

	if target.IsSuperDefending {
		dmg = int(math.Ceil(float64(dmg) * superDefendFactor))
		target.IsSuperDefending = false
		rs.Log.Add("%s's guard absorbs most of the impact!", target.Name)
	} else if target.IsDefending {
		dmg = int(math.Ceil(float64(dmg) / 2))
		target.IsDefending = false
		rs.Log.Add("%s blocks part of the blow!", target.Name)
	}

	if target.Supreme {
		rs.Log.Add("%s shrugs off the attack without a scratch.", target.Name)
		return 0
	}

	target.TakeDamage(dmg)
	rs.Log.Add("%s hits %s for %d damage!", monster.Name, target.Name, dmg)

	if !area {
		if refl := target.FindEffect(game.EffectDamageReflect); refl != nil {
			back := int(math.Ceil(float64(dmg) * refl.Fraction))
			if back > 0 {
				monster.TakeDamage(back)
				rs.Log.Add("%s reflects %d damage back at %s!", target.Name, back, monster.Name)
			}
		}
	}
	return dmg
}

// WorldBossDamage is the flat per-attack contribution formula for world
// boss raids. Never below 10 so low-level players still register.
func WorldBossDamage(s game.Stats) int {
	dmg := int(math.Floor(float64(s.Strength)*1.5 + float64(s.Dexterity)*0.5 + float64(s.Intelligence)*0.2))
	if dmg < 10 {
		dmg = 10
	}
	return dmg
}
