package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/190dpa/chatyni-rpg/internal/api"
	"github.com/190dpa/chatyni-rpg/internal/battle"
	"github.com/190dpa/chatyni-rpg/internal/broadcast"
	"github.com/190dpa/chatyni-rpg/internal/config"
	"github.com/190dpa/chatyni-rpg/internal/constants"
	"github.com/190dpa/chatyni-rpg/internal/logging"
	"github.com/190dpa/chatyni-rpg/internal/storage"
)

func main() {
	// Optional .env for local development; real deployments set the
	// variables directly.
	_ = godotenv.Load()

	cfg, err := config.LoadServerConfig()
	if err != nil {
		logging.Fatal("Invalid server configuration", err, nil)
	}

	cat, err := config.LoadCatalog(cfg.ConfigPath)
	if err != nil {
		logging.Fatal("Missing or invalid game configuration", err, logging.Fields{"config_path": cfg.ConfigPath})
	}

	db, err := storage.OpenAndMigrate(cfg.DBPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db)

	hub := broadcast.NewHub()
	svc := battle.NewService(battle.NewArena(), cat, repo, hub, cfg.BossLobbySize)

	// Rotating weapon stock: fill now, rotate on a fixed cadence.
	stockTTL := time.Duration(cfg.StockRefreshMinutes) * time.Minute
	svc.RefreshStock(stockTTL)
	go func() {
		ticker := time.NewTicker(stockTTL)
		defer ticker.Stop()
		for range ticker.C {
			svc.RefreshStock(stockTTL)
		}
	}()

	authHandler := api.NewAuthHandler(repo)
	handler := api.NewGameHandler(svc, repo, cat)
	webhook := api.NewWebhookHandler(handler, cfg.WebhookSecret)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.POST(constants.RouteRegister, authHandler.Register)
		apiRoutes.POST(constants.RouteLogin, authHandler.Login)
		apiRoutes.POST(constants.RouteLogout, authHandler.Logout)
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteRanking, handler.Ranking)
		apiRoutes.GET(constants.RouteWorldBossStatus, handler.WorldBossStatus)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RouteProfile, handler.GetProfile)

		protected.POST(constants.RouteBattleStart, handler.StartBattle)
		protected.POST(constants.RouteBattleAction, handler.SubmitBattleAction)
		protected.POST(constants.RouteBattleFlee, handler.FleeBattle)

		protected.POST(constants.RouteBossJoinLobby, handler.JoinBossLobby)
		protected.POST(constants.RouteBossAction, handler.SubmitBossAction)
		protected.POST(constants.RouteBossFlee, handler.FleeBoss)

		protected.POST(constants.RouteDungeonStart, handler.StartDungeon)
		protected.POST(constants.RouteDungeonProceed, handler.ProceedDungeon)
		protected.POST(constants.RouteDungeonLeave, handler.LeaveDungeon)

		protected.POST(constants.RouteWorldBossAttack, handler.AttackWorldBoss)

		protected.GET(constants.RouteShop, handler.ListShop)
		protected.POST(constants.RouteShopBuy, handler.BuyShopItem)
		protected.GET(constants.RouteStock, handler.ListStock)
		protected.POST(constants.RouteStockBuy, handler.BuyStockWeapon)
		protected.POST(constants.RouteInventoryEquip, handler.EquipWeapon)
		protected.POST(constants.RouteQuestClaim, handler.ClaimQuest)
		protected.POST(constants.RouteRollCharacter, handler.RollCharacter)
	}

	router.POST(constants.RouteDiscordWebhook, webhook.Handle)
	router.GET(constants.RouteWS, api.AuthRequired(), api.WebSocket(hub))

	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: cfg.Address})
	if err := router.Run(cfg.Address); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
