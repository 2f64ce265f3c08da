// Package lookup filters inventory records by gender and age band and totals
// the stock of the matching rows.
package lookup

import (
	"github.com/rogerio-castellano/designs-lookup/internal/models"
	"github.com/rogerio-castellano/designs-lookup/internal/normalize"
)

type Query struct {
	Gender string
	Age    models.AgeBand
	Design string
}

type DesignStock struct {
	Design   string `json:"design"`
	Quantity int    `json:"quantity"`
}

type Result struct {
	Matched  bool
	Quantity int
	Designs  []DesignStock
}

// Available reports whether at least one matching row has stock.
func (r Result) Available() bool {
	return r.Matched && r.Quantity > 0
}

// Match scans records in sheet order. Rows missing a gender or an age are
// skipped. In MatchExact mode the row age must reduce to the query band; in
// MatchContains mode it only has to contain it.
func Match(records []models.InventoryRecord, q Query, mode models.MatchMode) Result {
	gender := normalize.Text(q.Gender)
	design := normalize.Text(q.Design)

	var res Result
	for _, rec := range records {
		if rec.Gender == "" || rec.Age == "" {
			continue
		}
		if normalize.Text(rec.Gender) != gender {
			continue
		}
		if !ageMatches(rec.Age, q.Age, mode) {
			continue
		}
		if design != "" && normalize.Text(rec.Design) != design {
			continue
		}

		qty := normalize.Quantity(rec.Quantity)
		res.Matched = true
		res.Quantity += qty
		res.Designs = append(res.Designs, DesignStock{Design: rec.Design, Quantity: qty})
	}
	return res
}

func ageMatches(cell string, band models.AgeBand, mode models.MatchMode) bool {
	if mode == models.MatchContains {
		return normalize.AgeContains(cell, band)
	}
	return normalize.AgeKey(cell) == string(band)
}

// ParseMatchMode defaults to MatchExact for anything unrecognized.
func ParseMatchMode(s string) models.MatchMode {
	if normalize.Text(s) == string(models.MatchContains) {
		return models.MatchContains
	}
	return models.MatchExact
}
