package engine

import (
	"fmt"
	"math"

	"github.com/190dpa/chatyni-rpg/internal/game"
)

// Each level-up raises the next threshold by half and one random
// attribute by one point.
const levelThresholdGrowth = 1.5

// KillReward computes the xp and coin payout for a slain monster. The
// slayer's weapon gold bonus inflates the coins.
func KillReward(m *game.Combatant, weapon *game.Weapon) (xp, coins int) {
	xp = m.XP
	coins = m.Coins
	if weapon != nil && weapon.GoldBonusPercent > 0 {
		coins = int(math.Floor(float64(coins) * (1 + float64(weapon.GoldBonusPercent)/100)))
	}
	return xp, coins
}

// ApplyReward credits xp and coins to a profile and resolves every
// level-up the new total pays for. Overshoot carries into the next level;
// each level gained raises one randomly drawn attribute.
func ApplyReward(p *game.PlayerProfile, xp, coins int, r *Roller) game.RewardDelta {
	delta := game.RewardDelta{XP: xp, Coins: coins}
	p.XP += xp
	p.Coins += coins
	for p.XPToNextLevel > 0 && p.XP >= p.XPToNextLevel {
		p.XP -= p.XPToNextLevel
		p.Level++
		p.XPToNextLevel = int(math.Floor(float64(p.XPToNextLevel) * levelThresholdGrowth))
		attr := game.AttributeNames[r.Intn(len(game.AttributeNames))]
		stats := p.BaseStats()
		stats.Bump(attr)
		p.SetBaseStats(stats)
		delta.LevelUps = append(delta.LevelUps, game.LevelUp{Level: p.Level, Attribute: attr})
	}
	return delta
}

// AdvanceQuest moves the profile's daily quest forward for one battle
// outcome. Completion latches; claiming is a separate, explicit step.
func AdvanceQuest(p *game.PlayerProfile, quest *game.QuestTemplate, xpGained, coinsGained, kills int) {
	if quest == nil || p.QuestID != quest.ID || p.QuestCompleted {
		return
	}
	switch quest.Kind {
	case "FIGHT":
		p.QuestProgress += kills
	case "EARN_COINS":
		p.QuestProgress += coinsGained
	case "GAIN_XP":
		p.QuestProgress += xpGained
	}
	if p.QuestProgress >= quest.Target {
		p.QuestProgress = quest.Target
		p.QuestCompleted = true
	}
}

// PayoutForRank resolves the world-boss reward band for one ranked
// participant. Rank 0 is the top damage dealer. The returned message is
// the personal line shipped with the defeat announcement.
func PayoutForRank(cat *game.Catalog, rank int, ownsRunnerUpWeapon bool, r *Roller) (game.RewardDelta, string) {
	pay := cat.Payout
	switch rank {
	case 0:
		pool := cat.CardsByRarity[pay.TopRarity]
		if len(pool) > 0 {
			card := pool[r.Intn(len(pool))]
			return game.RewardDelta{CardsGranted: []string{card.ID}},
				fmt.Sprintf("Top damage! You recruited %s (%s)!", card.Name, card.Rarity)
		}
		return game.RewardDelta{Coins: pay.RunnerUpCoins},
			fmt.Sprintf("Top damage! You earned %d coins!", pay.RunnerUpCoins)
	case 1:
		if w, ok := cat.Weapon(pay.RunnerUpWeaponID); ok && !ownsRunnerUpWeapon {
			return game.RewardDelta{ItemsGranted: []string{w.ID}},
				fmt.Sprintf("Second place! You received the weapon %s!", w.Name)
		}
		return game.RewardDelta{Coins: pay.RunnerUpCoins},
			fmt.Sprintf("Second place! You earned %d coins!", pay.RunnerUpCoins)
	case 2:
		return game.RewardDelta{XP: pay.ThirdXP, Coins: pay.ThirdCoins},
			fmt.Sprintf("Third place! You earned %d XP and %d coins!", pay.ThirdXP, pay.ThirdCoins)
	default:
		return game.RewardDelta{XP: pay.ParticipantXP, Coins: pay.ParticipantCoins},
			fmt.Sprintf("Thanks for fighting! You earned %d XP and %d coins!", pay.ParticipantXP, pay.ParticipantCoins)
	}
}
