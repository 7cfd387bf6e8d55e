package api

import (
	"github.com/190dpa/chatyni-rpg/internal/battle"
	"github.com/190dpa/chatyni-rpg/internal/game"
	"github.com/190dpa/chatyni-rpg/internal/storage"
)

// GameHandler groups all RPG HTTP handlers around the battle service.
type GameHandler struct {
	svc  *battle.Service
	repo storage.Repository
	cat  *game.Catalog
}

func NewGameHandler(svc *battle.Service, repo storage.Repository, cat *game.Catalog) *GameHandler {
	return &GameHandler{svc: svc, repo: repo, cat: cat}
}
