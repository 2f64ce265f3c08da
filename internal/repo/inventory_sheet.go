package repo

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rogerio-castellano/designs-lookup/internal/models"
	"github.com/rogerio-castellano/designs-lookup/internal/sheet"
)

type SheetFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// SheetInventoryRepository downloads and parses the published sheet on every call.
type SheetInventoryRepository struct {
	fetcher SheetFetcher
}

func NewSheetInventoryRepository(f SheetFetcher) *SheetInventoryRepository {
	return &SheetInventoryRepository{fetcher: f}
}

func (r *SheetInventoryRepository) Records(ctx context.Context) ([]models.InventoryRecord, error) {
	body, err := r.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	records, err := sheet.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse sheet: %w", err)
	}
	return records, nil
}
