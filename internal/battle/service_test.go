package battle

import (
	"sync"

	"github.com/190dpa/chatyni-rpg/internal/engine"
	"github.com/190dpa/chatyni-rpg/internal/game"
)

// mockRepo keeps profiles in memory. Loads hand out the live pointer, so
// a save is a no-op and assertions read persisted state directly.
type mockRepo struct {
	mu       sync.Mutex
	profiles map[string]*game.PlayerProfile
	saves    int
}

func newMockRepo(profiles ...*game.PlayerProfile) *mockRepo {
	m := &mockRepo{profiles: make(map[string]*game.PlayerProfile)}
	for i, p := range profiles {
		p.ID = uint(i + 1)
		m.profiles[p.Username] = p
	}
	return m
}

func (m *mockRepo) CreateProfile(p *game.PlayerProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uint(len(m.profiles) + 1)
	m.profiles[p.Username] = p
	return nil
}

func (m *mockRepo) GetProfileByUsername(username string) (*game.PlayerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[username]; ok {
		return p, nil
	}
	return nil, ErrPlayerNotFound
}

func (m *mockRepo) GetProfileByLogin(login string) (*game.PlayerProfile, error) {
	return m.GetProfileByUsername(login)
}

func (m *mockRepo) SaveProfile(p *game.PlayerProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	return nil
}

func (m *mockRepo) AddCard(profileID uint, cardID, instanceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.ID == profileID {
			p.Cards = append(p.Cards, game.HeroCard{PlayerProfileID: profileID, CardID: cardID, InstanceID: instanceID})
			return nil
		}
	}
	return ErrPlayerNotFound
}

func (m *mockRepo) AddItem(profileID uint, itemID, kind string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.ID != profileID {
			continue
		}
		for i := range p.Items {
			if p.Items[i].ItemID == itemID {
				p.Items[i].Quantity += quantity
				return nil
			}
		}
		p.Items = append(p.Items, game.InventoryItem{PlayerProfileID: profileID, ItemID: itemID, Kind: kind, Quantity: quantity})
		return nil
	}
	return ErrPlayerNotFound
}

func (m *mockRepo) ConsumeItem(profileID uint, itemID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.ID != profileID {
			continue
		}
		for i := range p.Items {
			if p.Items[i].ItemID == itemID {
				p.Items[i].Quantity -= quantity
				return nil
			}
		}
	}
	return nil
}

func (m *mockRepo) GetTopPlayers(limit int) ([]game.PlayerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]game.PlayerProfile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, *p)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func testCatalog() *game.Catalog {
	slime := game.Monster{ID: "slime", Name: "Slime", HP: 20, Attack: 5, Defense: 5, XP: 10, Coins: 3}
	dragon := game.Monster{ID: "dragon", Name: "Ancient Dragon", HP: 120, Attack: 18, Defense: 8, XP: 200, Coins: 150, Boss: true}

	dungeon := game.Dungeon{
		ID:   "goblin_cave",
		Name: "Goblin Cave",
		Stages: []game.DungeonStage{
			{Kind: "mob", MonsterID: "slime"},
			{Kind: "boss", MonsterID: "slime"},
		},
	}
	dungeon.FinalReward.XP = 50
	dungeon.FinalReward.Coins = 20

	return &game.Catalog{
		Monsters: map[string]game.Monster{"slime": slime, "dragon": dragon},
		Weapons:  map[string]game.Weapon{},
		Abilities: map[string]game.Ability{
			"bolt": {ID: "bolt", Name: "Destroyer Bolt", Cost: 20, Kind: game.AbilityDamage, IntMultiplier: 1.5},
		},
		Cards: map[string]game.HeroCardTemplate{
			"arthus": {ID: "arthus", Name: "Arthus", Rarity: "Lendária"},
		},
		CardsByRarity: map[string][]game.HeroCardTemplate{
			"Lendária": {{ID: "arthus", Name: "Arthus", Rarity: "Lendária"}},
		},
		Dungeons: map[string]game.Dungeon{"goblin_cave": dungeon},
		WorldBosses: map[string]game.WorldBossTemplate{
			"chatyni_devourer": {ID: "chatyni_devourer", Name: "Devourer of Worlds", MaxHP: 50},
		},
		Payout: game.WorldBossPayout{
			TopRarity:     "Lendária",
			RunnerUpCoins: 500,
			ThirdXP:       150, ThirdCoins: 250,
			ParticipantXP: 50, ParticipantCoins: 100,
		},
		DefaultWorldBossID: "chatyni_devourer",
	}
}

func testProfile(username string) *game.PlayerProfile {
	return &game.PlayerProfile{
		Username:      username,
		Level:         1,
		XPToNextLevel: 100,
		Strength:      10,
		Defense:       5,
	}
}

func newTestService(repo *mockRepo) *Service {
	svc := NewService(NewArena(), testCatalog(), repo, nil, 2)
	svc.newRoller = func() *engine.Roller { return engine.NewRoller(1) }
	return svc
}
