package battle

import (
	"time"

	"github.com/190dpa/chatyni-rpg/internal/engine"
	"github.com/190dpa/chatyni-rpg/internal/game"
	"github.com/190dpa/chatyni-rpg/internal/storage"
)

// Notifier pushes out-of-band events to connected clients. The websocket
// hub implements it; tests use noopNotifier.
type Notifier interface {
	SendToPlayer(username, event string, payload interface{})
	Broadcast(event string, payload interface{})
}

type noopNotifier struct{}

func (noopNotifier) SendToPlayer(string, string, interface{}) {}
func (noopNotifier) Broadcast(string, interface{})            {}

// Action is one submitted combat action.
type Action struct {
	Kind      string `json:"action"` // attack | defend | ability | item
	AbilityID string `json:"ability_id,omitempty"`
	ItemID    string `json:"item_id,omitempty"`
}

// TurnResult is the snapshot returned after a resolved turn.
type TurnResult struct {
	BattleID string            `json:"battle_id,omitempty"`
	Log      []string          `json:"log"`
	Player   *game.Combatant   `json:"player,omitempty"`
	Players  []*game.Combatant `json:"players,omitempty"`
	Monster  *game.Combatant   `json:"monster"`
	Turn     string            `json:"turn,omitempty"`

	Over    bool              `json:"battle_over"`
	Victory bool              `json:"victory"`
	Rewards *game.RewardDelta `json:"rewards,omitempty"`

	// Dungeon progress, set for dungeon-stage battles.
	DungeonID  string `json:"dungeon_id,omitempty"`
	Stage      int    `json:"stage,omitempty"`
	StageCount int    `json:"stage_count,omitempty"`
	Cleared    bool   `json:"dungeon_cleared,omitempty"`
}

// Service orchestrates every encounter shape on top of the arena, the
// catalog and the repository.
type Service struct {
	arena    *Arena
	cat      *game.Catalog
	repo     storage.Repository
	notifier Notifier

	lobbySize int
	stock     stockState

	// newRoller is swapped for a seeded constructor in tests.
	newRoller func() *engine.Roller

	// today is swapped in tests; daily quests key off its value.
	today func() string
}

func NewService(arena *Arena, cat *game.Catalog, repo storage.Repository, notifier Notifier, lobbySize int) *Service {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if lobbySize < 2 {
		lobbySize = 2
	}
	return &Service{
		arena:     arena,
		cat:       cat,
		repo:      repo,
		notifier:  notifier,
		lobbySize: lobbySize,
		newRoller: engine.NewRandomRoller,
		today:     func() string { return time.Now().Format("2006-01-02") },
	}
}

func (s *Service) questTemplate(p *game.PlayerProfile) *game.QuestTemplate {
	if p.QuestID == "" {
		return nil
	}
	for i := range s.cat.Quests {
		if s.cat.Quests[i].ID == p.QuestID {
			return &s.cat.Quests[i]
		}
	}
	return nil
}

// grantKill commits a monster kill to the profile: xp, coins, level-ups
// and daily-quest progress, persisted in one save.
func (s *Service) grantKill(p *game.PlayerProfile, monster *game.Combatant, weapon *game.Weapon, r *engine.Roller) (game.RewardDelta, error) {
	xp, coins := engine.KillReward(monster, weapon)
	delta := engine.ApplyReward(p, xp, coins, r)
	engine.AdvanceQuest(p, s.questTemplate(p), xp, coins, 1)
	if err := s.repo.SaveProfile(p); err != nil {
		return delta, err
	}
	return delta, nil
}

// EnsureDailyQuest assigns today's quest when the stored one is stale.
// Returns true when the profile changed and needs saving.
func (s *Service) EnsureDailyQuest(p *game.PlayerProfile) bool {
	today := s.today()
	if p.LastQuestDate == today || len(s.cat.Quests) == 0 {
		return false
	}
	q := s.cat.Quests[s.newRoller().Intn(len(s.cat.Quests))]
	p.QuestID = q.ID
	p.QuestProgress = 0
	p.QuestCompleted = false
	p.QuestClaimed = false
	p.LastQuestDate = today
	return true
}
