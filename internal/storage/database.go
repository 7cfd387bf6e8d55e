package storage

import (
	"github.com/190dpa/chatyni-rpg/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database and keeps the schema current
// via AutoMigrate. Game data (monsters, weapons, abilities) lives in the
// config catalog, not in the database, so there is nothing to seed.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&game.PlayerProfile{},
		&game.HeroCard{},
		&game.InventoryItem{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
