package repo

import (
	"context"

	"github.com/rogerio-castellano/designs-lookup/internal/models"
)

// InMemoryInventoryRepository serves a fixed set of records.
type InMemoryInventoryRepository struct {
	records []models.InventoryRecord
	err     error
}

func NewInMemoryInventoryRepository(records ...models.InventoryRecord) *InMemoryInventoryRepository {
	return &InMemoryInventoryRepository{records: records}
}

func (r *InMemoryInventoryRepository) Records(ctx context.Context) ([]models.InventoryRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]models.InventoryRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

// SetRecords replaces the stored records and clears any failure.
func (r *InMemoryInventoryRepository) SetRecords(records ...models.InventoryRecord) {
	r.records = records
	r.err = nil
}

// Fail makes every following Records call return err.
func (r *InMemoryInventoryRepository) Fail(err error) {
	r.err = err
}

func (r *InMemoryInventoryRepository) Clear() {
	r.records = nil
	r.err = nil
}
