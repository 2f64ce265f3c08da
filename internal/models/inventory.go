package models

// InventoryRecord represents one data line of the inventory sheet.
type InventoryRecord struct {
	Gender   string            `json:"gender"`
	Age      string            `json:"age"`
	Design   string            `json:"design,omitempty"`
	Quantity string            `json:"quantity"`
	Fields   map[string]string `json:"-"`
	Line     int               `json:"-"`
}

// AgeBand is one of the canonical age ranges the sheet is keyed by.
type AgeBand string

const (
	AgeBand2to4 AgeBand = "2-4"
	AgeBand4to6 AgeBand = "4-6"
)

// AgeBands lists the known bands in matching order.
var AgeBands = []AgeBand{AgeBand2to4, AgeBand4to6}

type MatchMode string

const (
	MatchExact    MatchMode = "exact"
	MatchContains MatchMode = "contains"
)
