package game

// LevelUp records one level gained and the attribute the roll raised.
type LevelUp struct {
	Level     int    `json:"level"`
	Attribute string `json:"attribute"`
}

// RewardDelta is what a terminated encounter asks the account collaborator
// to commit. It is additive; the engine never writes profiles directly.
type RewardDelta struct {
	XP           int       `json:"xp"`
	Coins        int       `json:"coins"`
	LevelUps     []LevelUp `json:"level_ups,omitempty"`
	ItemsGranted []string  `json:"items_granted,omitempty"`
	CardsGranted []string  `json:"cards_granted,omitempty"`
}

// Empty reports whether the delta would be a no-op commit.
func (d RewardDelta) Empty() bool {
	return d.XP == 0 && d.Coins == 0 && len(d.LevelUps) == 0 &&
		len(d.ItemsGranted) == 0 && len(d.CardsGranted) == 0
}
