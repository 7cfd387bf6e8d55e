package battle

import (
	"github.com/190dpa/chatyni-rpg/internal/engine"
	"github.com/190dpa/chatyni-rpg/internal/game"
	"github.com/190dpa/chatyni-rpg/internal/logging"
)

// Operations behind the secret-gated admin bridge (the chat bot's
// webhook) plus the public leaderboard.

// Donate credits coins to a player.
func (s *Service) Donate(username string, coins int) (*game.PlayerProfile, error) {
	p, err := s.repo.GetProfileByUsername(username)
	if err != nil {
		return nil, ErrPlayerNotFound
	}
	engine.ApplyReward(p, 0, coins, s.newRoller())
	if err := s.repo.SaveProfile(p); err != nil {
		return nil, err
	}
	logging.Info("donation credited", logging.Fields{"player": username, "coins": coins})
	s.notifier.SendToPlayer(username, "donation_received", map[string]interface{}{"coins": coins})
	return p, nil
}

// ToggleGodMode flips the flag and returns the new value. Only solo
// battles consult it, and only at the moment of defeat.
func (s *Service) ToggleGodMode(username string) (bool, error) {
	p, err := s.repo.GetProfileByUsername(username)
	if err != nil {
		return false, ErrPlayerNotFound
	}
	p.GodMode = !p.GodMode
	if err := s.repo.SaveProfile(p); err != nil {
		return false, err
	}
	logging.Info("god mode toggled", logging.Fields{"player": username, "enabled": p.GodMode})
	return p.GodMode, nil
}

// GrantLuck blesses a player's next rolls with a chance multiplier.
func (s *Service) GrantLuck(username string, multiplier float64, uses int) error {
	p, err := s.repo.GetProfileByUsername(username)
	if err != nil {
		return ErrPlayerNotFound
	}
	p.LuckMultiplier = multiplier
	p.LuckUses = uses
	if err := s.repo.SaveProfile(p); err != nil {
		return err
	}
	logging.Info("luck granted", logging.Fields{"player": username, "multiplier": multiplier, "uses": uses})
	s.notifier.SendToPlayer(username, "luck_granted", map[string]interface{}{
		"multiplier": multiplier,
		"uses":       uses,
	})
	return nil
}

// Ranking returns the top players by level and experience.
func (s *Service) Ranking(limit int) ([]game.PlayerProfile, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.repo.GetTopPlayers(limit)
}
