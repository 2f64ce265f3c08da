package repo

import (
	"context"

	"github.com/rogerio-castellano/designs-lookup/internal/models"
)

// InventoryRepository returns a fresh snapshot of the inventory sheet.
type InventoryRepository interface {
	Records(ctx context.Context) ([]models.InventoryRecord, error)
}
