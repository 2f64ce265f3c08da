package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rogerio-castellano/designs-lookup/internal/models"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	ErrEmptySheet     = errors.New("sheet has no header row")
	ErrMalformedSheet = errors.New("malformed sheet")
)

// Column names are matched case-insensitively.
const (
	ColumnGender   = "gender"
	ColumnAge      = "age"
	ColumnDesign   = "design"
	ColumnQuantity = "quantity"
)

var requiredColumns = []string{ColumnGender, ColumnAge, ColumnQuantity}

// Parse reads an RFC 4180 CSV export whose first row names the columns and
// returns one record per non-blank data line. Rows shorter than the header
// get "" for the missing trailing columns. Any quoting error fails the whole
// sheet, so an unterminated quote never swallows the rows after it.
func Parse(r io.Reader) ([]models.InventoryRecord, error) {
	reader := csv.NewReader(transform.NewReader(r, xunicode.BOMOverride(xunicode.UTF8.NewDecoder())))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptySheet
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedSheet, err)
	}

	index := map[string]int{}
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		headers[i] = h
		key := strings.ToLower(h)
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing %q column", ErrMalformedSheet, col)
		}
	}

	var records []models.InventoryRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedSheet, err)
		}
		if isBlank(row) {
			continue
		}

		line, _ := reader.FieldPos(0)
		fields := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				fields[h] = strings.TrimSpace(row[i])
			} else {
				fields[h] = ""
			}
		}

		records = append(records, models.InventoryRecord{
			Gender:   column(row, index, ColumnGender),
			Age:      column(row, index, ColumnAge),
			Design:   column(row, index, ColumnDesign),
			Quantity: column(row, index, ColumnQuantity),
			Fields:   fields,
			Line:     line,
		})
	}
	return records, nil
}

func column(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
