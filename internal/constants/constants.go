package constants

// Centralized constants for env keys, routes and API error strings.
const (
	// Environment variable keys
	EnvSessionSecret = "SESSION_SECRET"
	EnvWebhookSecret = "DISCORD_WEBHOOK_SECRET"
	EnvConfigPath    = "CHATYNI_CONFIG"
	EnvDBPath        = "CHATYNI_DB"

	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"

	// HTTP
	HeaderAuthorization = "Authorization"
	HeaderWebhookSecret = "X-Webhook-Secret"
	BearerPrefix        = "Bearer "
	CookieSessionName   = "c_session"

	// Context keys set by the auth middleware
	CtxUsername = "username"
	CtxIsAdmin  = "isAdmin"

	// JSON keys
	JSONKeyError   = "error"
	JSONKeyMessage = "message"

	Version = "2.0.0"
)

// Routes used by the backend router
const (
	RouteAPIPrefix = "/api"

	RouteRegister = "/register"
	RouteLogin    = "/login"
	RouteLogout   = "/logout"
	RouteVersion  = "/version"
	RouteWS       = "/ws"

	RouteBattleStart  = "/rpg/battle/start"
	RouteBattleAction = "/rpg/battle/action"
	RouteBattleFlee   = "/rpg/battle/flee"

	RouteBossJoinLobby = "/rpg/boss/join-lobby"
	RouteBossAction    = "/rpg/boss/action"
	RouteBossFlee      = "/rpg/boss/flee"

	RouteDungeonStart   = "/rpg/dungeon/start"
	RouteDungeonProceed = "/rpg/dungeon/proceed"
	RouteDungeonLeave   = "/rpg/dungeon/leave"

	RouteWorldBossStatus = "/rpg/worldboss/status"
	RouteWorldBossAttack = "/rpg/worldboss/attack"

	RouteShop          = "/rpg/shop"
	RouteShopBuy       = "/rpg/shop/buy"
	RouteStock         = "/rpg/stock"
	RouteStockBuy      = "/rpg/stock/buy"
	RouteInventoryEquip = "/rpg/inventory/equip"
	RouteQuestClaim    = "/rpg/quest/claim"
	RouteRollCharacter = "/rpg/roll-character"
	RouteRanking       = "/rpg/ranking"
	RouteProfile       = "/rpg/profile"

	RouteDiscordWebhook = "/discord-webhook"
)

// User-facing error strings returned by the API layer.
const (
	ErrInvalidRequest        = "Invalid request."
	ErrAuthRequired          = "Authentication required."
	ErrInvalidSession        = "Invalid or expired session."
	ErrInvalidCredentials    = "Invalid username or password."
	ErrUsernameTaken         = "Username or email already registered."
	ErrNoActiveBattle        = "No active battle found or the battle is over."
	ErrAlreadyInBattle       = "You are already in a battle."
	ErrAlreadyInLobby        = "You are already queued for the boss fight."
	ErrBattleNotFound        = "Group battle not found or already finished."
	ErrNotInBattle           = "You are not part of this battle."
	ErrPlayerDefeated        = "You were defeated and cannot act."
	ErrNotYourTurn           = "It is not your turn."
	ErrUnknownAction         = "Unknown action."
	ErrUnknownAbility        = "Unknown ability."
	ErrAbilityNotKnown       = "You have not learned this ability."
	ErrInsufficientMana      = "Not enough mana."
	ErrAbilityAlreadyUsed    = "This ability was already used in this battle."
	ErrItemNotOwned          = "You do not have this item."
	ErrDungeonNotFound       = "Dungeon not found."
	ErrNotInDungeon          = "You are not in a dungeon."
	ErrStageUnresolved       = "Finish the current stage first."
	ErrNoWorldBoss           = "No world boss is active right now."
	ErrPlayerNotFound        = "Player not found."
	ErrNothingToFlee         = "No battle to flee from."
	ErrInsufficientCoins     = "Not enough coins."
	ErrItemNotInStock        = "This item is not in stock."
	ErrWeaponNotOwned        = "You do not own this weapon."
	ErrQuestNotComplete      = "Your daily quest is not complete yet."
	ErrQuestAlreadyClaimed   = "You already claimed today's quest reward."
	ErrWebhookUnauthorized   = "Access denied."
	ErrWebhookUnknownAction  = "Invalid action."
	ErrWebhookTargetNotFound = "Target user not found."
	ErrInternal              = "Internal server error."
)

// Log field keys
const (
	LogFieldAddr     = "addr"
	LogFieldPlayer   = "player"
	LogFieldBattleID = "battle_id"
	LogFieldMonster  = "monster"
	LogFieldDungeon  = "dungeon"
	LogFieldBoss     = "boss"
	LogFieldAction   = "action"
	LogFieldDamage   = "damage"
)
