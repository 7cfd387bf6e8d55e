package storage

import (
	"errors"

	"github.com/190dpa/chatyni-rpg/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateProfile(p *game.PlayerProfile) error {
	return r.db.Create(p).Error
}

func (r *sqliteRepository) GetProfileByUsername(username string) (*game.PlayerProfile, error) {
	var p game.PlayerProfile
	err := r.db.Preload("Cards").Preload("Items").
		Where("username = ?", username).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) GetProfileByLogin(login string) (*game.PlayerProfile, error) {
	var p game.PlayerProfile
	err := r.db.Preload("Cards").Preload("Items").
		Where("username = ? OR email = ?", login, login).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) SaveProfile(p *game.PlayerProfile) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(p).Error
}

func (r *sqliteRepository) AddCard(profileID uint, cardID, instanceID string) error {
	return r.db.Create(&game.HeroCard{
		PlayerProfileID: profileID,
		CardID:          cardID,
		InstanceID:      instanceID,
	}).Error
}

func (r *sqliteRepository) AddItem(profileID uint, itemID, kind string, quantity int) error {
	var item game.InventoryItem
	err := r.db.Where("player_profile_id = ? AND item_id = ?", profileID, itemID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&game.InventoryItem{
			PlayerProfileID: profileID,
			ItemID:          itemID,
			Kind:            kind,
			Quantity:        quantity,
		}).Error
	}
	if err != nil {
		return err
	}
	item.Quantity += quantity
	return r.db.Save(&item).Error
}

func (r *sqliteRepository) ConsumeItem(profileID uint, itemID string, quantity int) error {
	var item game.InventoryItem
	err := r.db.Where("player_profile_id = ? AND item_id = ?", profileID, itemID).
		First(&item).Error
	if err != nil {
		return err
	}
	item.Quantity -= quantity
	if item.Quantity <= 0 {
		return r.db.Delete(&item).Error
	}
	return r.db.Save(&item).Error
}

func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.PlayerProfile, error) {
	var players []game.PlayerProfile
	err := r.db.Order("level DESC, xp DESC").Limit(limit).Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}
