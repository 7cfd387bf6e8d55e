package game

// ItemStack is a quantity of one consumable, either in the persistent
// inventory or in a battle-scoped copy of it.
type ItemStack struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"` // consumable | weapon
	Quantity int    `json:"quantity"`
	// HealValue is the only implemented consumable effect.
	HealValue int `json:"heal_value,omitempty"`
}

// Combatant is the unified in-encounter representation of a player or a
// monster. Player-only fields (mana, inventory, abilities) stay zero for
// monsters; monster-only fields (XP, Coins, Boss) stay zero for players.
type Combatant struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`

	HP      int `json:"hp"`
	MaxHP   int `json:"max_hp"`
	Mana    int `json:"mana"`
	MaxMana int `json:"max_mana"`

	Stats   Stats    `json:"stats"`
	Effects []Effect `json:"effects"`

	IsDefending      bool `json:"is_defending"`
	IsSuperDefending bool `json:"is_super_defending"`
	Alive            bool `json:"alive"`

	Weapon    *Weapon     `json:"equipped_weapon,omitempty"`
	Inventory []ItemStack `json:"inventory,omitempty"`
	Abilities []Ability   `json:"abilities,omitempty"`

	UsedOneTimeAbilities []string `json:"used_one_time_abilities,omitempty"`

	// Supreme marks the privileged-account escape hatch: damage taken is
	// nullified and stats were already overridden by the aggregator.
	Supreme bool `json:"-"`
	// SupremeAdmin mirrors the account flag alone. Admin-gated weapon
	// triggers read this, not Supreme, so the gate works without the
	// supreme card.
	SupremeAdmin bool `json:"-"`

	// Monster identity, empty for players.
	MonsterID string `json:"monster_id,omitempty"`
	Boss      bool   `json:"boss,omitempty"`
	Elite     bool   `json:"elite,omitempty"`
	AreaAbilities []string `json:"area_abilities,omitempty"`
	XP        int    `json:"xp,omitempty"`
	Coins     int    `json:"coins,omitempty"`
}

// TakeDamage lowers health, clamps at zero and flips the alive flag.
func (c *Combatant) TakeDamage(amount int) {
	c.HP -= amount
	if c.HP <= 0 {
		c.HP = 0
		c.Alive = false
	}
}

// HealBy raises health clamped at the maximum. Returns the amount that
// was actually restored.
func (c *Combatant) HealBy(amount int) int {
	before := c.HP
	c.HP += amount
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
	return c.HP - before
}

// SpendMana deducts cost; it is the caller's job to have validated it.
func (c *Combatant) SpendMana(cost int) {
	c.Mana -= cost
	if c.Mana < 0 {
		c.Mana = 0
	}
}

// HasUsed reports whether a one-time ability was already consumed.
func (c *Combatant) HasUsed(abilityID string) bool {
	for _, id := range c.UsedOneTimeAbilities {
		if id == abilityID {
			return true
		}
	}
	return false
}

// FindEffect returns the first active effect of the given kind, or nil.
func (c *Combatant) FindEffect(kind EffectKind) *Effect {
	for i := range c.Effects {
		if c.Effects[i].Kind == kind {
			return &c.Effects[i]
		}
	}
	return nil
}

// KnowsAbility reports whether the combatant's ability list contains id.
func (c *Combatant) KnowsAbility(id string) bool {
	for _, a := range c.Abilities {
		if a.ID == id {
			return true
		}
	}
	return false
}

// NewMonsterCombatant instantiates a fresh combatant from a template.
func NewMonsterCombatant(m Monster) *Combatant {
	return &Combatant{
		Name:          m.Name,
		AvatarURL:     m.ImageURL,
		HP:            m.HP,
		MaxHP:         m.HP,
		Stats:         Stats{Strength: m.Attack, Defense: m.Defense},
		Effects:       []Effect{},
		Alive:         true,
		MonsterID:     m.ID,
		Boss:          m.Boss,
		Elite:         m.Elite,
		AreaAbilities: m.AreaAbilities,
		XP:            m.XP,
		Coins:         m.Coins,
	}
}
