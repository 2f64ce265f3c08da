package handlers

import (
	"fmt"
	"strings"

	"github.com/rogerio-castellano/designs-lookup/internal/lookup"
)

type LookupRequest struct {
	Gender string
	Age    string
	Design string
	Format string
}

type LookupResponse struct {
	Available bool                 `json:"available"`
	Quantity  int                  `json:"quantity"`
	Gender    string               `json:"gender,omitempty"`
	Age       string               `json:"age,omitempty"`
	Designs   []lookup.DesignStock `json:"designs,omitempty"`
	Message   string               `json:"message,omitempty"`
	Errors    []ValidationError    `json:"errors,omitempty"`
}

// Text renders the response as "key: value" lines.
func (r LookupResponse) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "available: %t\n", r.Available)
	fmt.Fprintf(&sb, "quantity: %d\n", r.Quantity)
	if r.Gender != "" {
		fmt.Fprintf(&sb, "gender: %s\n", r.Gender)
	}
	if r.Age != "" {
		fmt.Fprintf(&sb, "age: %s\n", r.Age)
	}
	for _, d := range r.Designs {
		fmt.Fprintf(&sb, "design: %s (%d)\n", d.Design, d.Quantity)
	}
	if r.Message != "" {
		fmt.Fprintf(&sb, "message: %s\n", r.Message)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(&sb, "error: %s: %s\n", e.Field, e.Description)
	}
	return sb.String()
}

type HealthResponse struct {
	Status string `json:"status"`
}
