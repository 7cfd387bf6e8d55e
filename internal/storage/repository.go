package storage

import (
	"github.com/190dpa/chatyni-rpg/internal/game"
)

type Repository interface {
	CreateProfile(p *game.PlayerProfile) error
	// GetProfileByUsername loads a profile with its cards and items.
	GetProfileByUsername(username string) (*game.PlayerProfile, error)
	// GetProfileByLogin resolves a username or an email, for login.
	GetProfileByLogin(login string) (*game.PlayerProfile, error)
	SaveProfile(p *game.PlayerProfile) error

	AddCard(profileID uint, cardID, instanceID string) error
	// AddItem increments an existing stack or creates one.
	AddItem(profileID uint, itemID, kind string, quantity int) error
	// ConsumeItem decrements a stack, deleting it at zero.
	ConsumeItem(profileID uint, itemID string, quantity int) error

	// GetTopPlayers orders by level, then xp, for the leaderboard.
	GetTopPlayers(limit int) ([]game.PlayerProfile, error)
}
