package battle

import (
	"sync"

	"github.com/190dpa/chatyni-rpg/internal/engine"
	"github.com/190dpa/chatyni-rpg/internal/game"
)

// SoloBattle is one player versus one monster. Dungeon stages reuse it
// with DungeonID set.
type SoloBattle struct {
	Username  string
	Player    *game.Combatant
	Monster   *game.Combatant
	DungeonID string
	GodMode   bool

	resolver *engine.Resolver
}

// GroupMember is one participant of a group boss battle.
type GroupMember struct {
	Username  string
	ProfileID uint
	Combatant *game.Combatant
	Fled      bool
}

// GroupBattle is a shared encounter against one boss; members act in
// join order and the boss answers after the last living member.
type GroupBattle struct {
	ID        string
	Members   []*GroupMember
	Monster   *game.Combatant
	TurnIndex int

	resolver *engine.Resolver
}

// Member returns the member for a username, or nil.
func (b *GroupBattle) Member(username string) *GroupMember {
	for _, m := range b.Members {
		if m.Username == username {
			return m
		}
	}
	return nil
}

// LivingMembers counts members still standing and present.
func (b *GroupBattle) LivingMembers() int {
	n := 0
	for _, m := range b.Members {
		if !m.Fled && m.Combatant.Alive {
			n++
		}
	}
	return n
}

// DungeonRun tracks a player's progress through a dungeon's stage chain.
// The current stage's battle lives in the solo map under the same
// username; between stages AwaitingProceed is set instead.
type DungeonRun struct {
	Username        string
	DungeonID       string
	StageIndex      int
	AwaitingProceed bool
}

// WorldBossFight is the single server-wide raid target. Every read and
// write of HP or the contribution ledger happens under the arena's
// dedicated world-boss mutex.
type WorldBossFight struct {
	TemplateID    string
	Name          string
	MaxHP         int
	HP            int
	Contributions map[string]int
}

// Arena is the in-memory store of every live encounter. It is injected
// into the service so tests can build isolated instances.
type Arena struct {
	mu       sync.Mutex
	solo     map[string]*SoloBattle
	groups   map[string]*GroupBattle
	dungeons map[string]*DungeonRun

	lobby []string
	// lobbyBossID is the boss the first joiner queued for.
	lobbyBossID string

	bossMu    sync.Mutex
	worldBoss *WorldBossFight
}

func NewArena() *Arena {
	return &Arena{
		solo:     make(map[string]*SoloBattle),
		groups:   make(map[string]*GroupBattle),
		dungeons: make(map[string]*DungeonRun),
	}
}

func (a *Arena) soloBattle(username string) *SoloBattle {
	return a.solo[username]
}

// groupBattleOf finds the group battle a username participates in.
func (a *Arena) groupBattleOf(username string) *GroupBattle {
	for _, b := range a.groups {
		if m := b.Member(username); m != nil && !m.Fled {
			return b
		}
	}
	return nil
}

func (a *Arena) inLobby(username string) bool {
	for _, u := range a.lobby {
		if u == username {
			return true
		}
	}
	return false
}

func (a *Arena) removeFromLobby(username string) {
	for i, u := range a.lobby {
		if u == username {
			a.lobby = append(a.lobby[:i], a.lobby[i+1:]...)
			return
		}
	}
}
