package battle

import "errors"

// Validation errors surfaced to the API layer, which maps them to HTTP
// statuses. Engine validation errors (mana, one-time abilities, items)
// pass through unchanged.
var (
	ErrAlreadyInBattle = errors.New("already in a battle")
	ErrNoActiveBattle  = errors.New("no active battle")
	ErrBattleNotFound  = errors.New("group battle not found")
	ErrNotInBattle     = errors.New("not part of this battle")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrPlayerDefeated  = errors.New("player already defeated")
	ErrUnknownAction   = errors.New("unknown action")
	ErrUnknownAbility  = errors.New("unknown ability")
	ErrAlreadyInLobby  = errors.New("already queued in lobby")
	ErrDungeonNotFound = errors.New("dungeon not found")
	ErrNotInDungeon    = errors.New("not in a dungeon")
	ErrStageUnresolved = errors.New("current stage not finished")
	ErrNoWorldBoss     = errors.New("no active world boss")
	ErrPlayerNotFound  = errors.New("player not found")

	ErrInsufficientCoins   = errors.New("insufficient coins")
	ErrShopItemNotFound    = errors.New("shop item not found")
	ErrItemNotInStock      = errors.New("item not in stock")
	ErrWeaponNotOwned      = errors.New("weapon not owned")
	ErrQuestNotComplete    = errors.New("quest not complete")
	ErrQuestAlreadyClaimed = errors.New("quest already claimed")
)
