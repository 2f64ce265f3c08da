package handlers

import (
	"github.com/rogerio-castellano/designs-lookup/internal/models"
	repo "github.com/rogerio-castellano/designs-lookup/internal/repo"
)

var (
	inventoryRepo repo.InventoryRepository
	matchMode     = models.MatchExact
)

func SetInventoryRepo(r repo.InventoryRepository) {
	inventoryRepo = r
}

func SetMatchMode(m models.MatchMode) {
	matchMode = m
}
