package config

import (
	"github.com/caarlos0/env/v11"
)

// ServerConfig holds everything the process reads from the environment.
// Game data comes from the JSON catalog instead.
type ServerConfig struct {
	Address       string `env:"SERVER_ADDRESS" envDefault:":8080"`
	SessionSecret string `env:"SESSION_SECRET,required"`
	WebhookSecret string `env:"DISCORD_WEBHOOK_SECRET"`
	ConfigPath    string `env:"CHATYNI_CONFIG" envDefault:"chatyni_config.json"`
	DBPath        string `env:"CHATYNI_DB" envDefault:"chatyni.db"`

	// BossLobbySize is the headcount that auto-starts a group battle.
	BossLobbySize int `env:"BOSS_LOBBY_SIZE" envDefault:"2"`

	// StockSize and StockRefreshMinutes drive the rotating weapon shop.
	StockSize           int `env:"STOCK_SIZE" envDefault:"3"`
	StockRefreshMinutes int `env:"STOCK_REFRESH_MINUTES" envDefault:"30"`
}

func LoadServerConfig() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
