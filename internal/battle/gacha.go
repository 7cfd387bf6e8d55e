package battle

import (
	"github.com/google/uuid"

	"github.com/190dpa/chatyni-rpg/internal/game"
	"github.com/190dpa/chatyni-rpg/internal/logging"
)

// RollResult is one character roll outcome.
type RollResult struct {
	Card       game.HeroCardTemplate `json:"card"`
	Duplicate  bool                  `json:"duplicate"`
	CoinsSpent int                   `json:"coins_spent"`
	LuckUsed   bool                  `json:"luck_used"`
}

// RollCharacter draws one hero card from the rarity table. An active
// luck blessing multiplies the rare-tier chances and burns one use per
// roll. Duplicates are kept as separate instances.
func (s *Service) RollCharacter(username string) (*RollResult, error) {
	p, err := s.repo.GetProfileByUsername(username)
	if err != nil {
		return nil, ErrPlayerNotFound
	}
	if len(s.cat.RollTiers) == 0 {
		return nil, ErrShopItemNotFound
	}
	if p.Coins < s.cat.RollCost {
		return nil, ErrInsufficientCoins
	}

	luck := 1.0
	luckUsed := false
	if p.LuckMultiplier > 1 && p.LuckUses > 0 {
		luck = p.LuckMultiplier
		luckUsed = true
	}

	roller := s.newRoller()
	draw := roller.Float64() * 100

	// Tiers are listed rarest first; the last one is the fallback band.
	rarity := s.cat.RollTiers[len(s.cat.RollTiers)-1].Rarity
	acc := 0.0
	for _, tier := range s.cat.RollTiers[:len(s.cat.RollTiers)-1] {
		acc += tier.Chance * luck
		if draw < acc {
			rarity = tier.Rarity
			break
		}
	}

	pool := s.cat.CardsByRarity[rarity]
	if len(pool) == 0 {
		pool = s.cat.CardsByRarity[s.cat.RollTiers[len(s.cat.RollTiers)-1].Rarity]
	}
	if len(pool) == 0 {
		return nil, ErrShopItemNotFound
	}
	card := pool[roller.Intn(len(pool))]

	duplicate := p.OwnsCard(card.ID)
	p.Coins -= s.cat.RollCost
	if luckUsed {
		p.LuckUses--
		if p.LuckUses <= 0 {
			p.LuckMultiplier = 1
			p.LuckUses = 0
		}
	}
	if err := s.repo.SaveProfile(p); err != nil {
		return nil, err
	}
	if err := s.repo.AddCard(p.ID, card.ID, uuid.NewString()); err != nil {
		return nil, err
	}

	logging.Info("character rolled", logging.Fields{"player": username, "card": card.ID, "rarity": card.Rarity})
	return &RollResult{
		Card:       card,
		Duplicate:  duplicate,
		CoinsSpent: s.cat.RollCost,
		LuckUsed:   luckUsed,
	}, nil
}
