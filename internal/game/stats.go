package game

// Stats is the four-attribute set every combat formula reads from.
type Stats struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Intelligence int `json:"intelligence"`
	Defense      int `json:"defense"`
}

// Add returns the component-wise sum of two attribute sets.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Strength:     s.Strength + o.Strength,
		Dexterity:    s.Dexterity + o.Dexterity,
		Intelligence: s.Intelligence + o.Intelligence,
		Defense:      s.Defense + o.Defense,
	}
}

// AttributeNames lists the attributes a level-up may raise, in a fixed
// order so a seeded roll picks deterministically.
var AttributeNames = []string{"strength", "dexterity", "intelligence", "defense"}

// Bump increments the named attribute by one. Unknown names are ignored.
func (s *Stats) Bump(name string) {
	switch name {
	case "strength":
		s.Strength++
	case "dexterity":
		s.Dexterity++
	case "intelligence":
		s.Intelligence++
	case "defense":
		s.Defense++
	}
}
