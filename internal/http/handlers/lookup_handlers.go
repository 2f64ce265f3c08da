package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/designs-lookup/internal/lookup"
	"github.com/rogerio-castellano/designs-lookup/internal/normalize"
)

const (
	msgRequired     = "gender and age are required"
	msgInvalidAge   = "Invalid age group"
	msgNotAvailable = "Not available"
	msgServerError  = "Server error"
)

// LookupHandler godoc
// @Summary Check stock for a gender and age group
// @Description Fetches the inventory sheet, matches rows by normalized gender and age band and sums their quantity.
// @Tags inventory
// @Produce json
// @Produce plain
// @Param gender query string true "Gender, e.g. Girl"
// @Param age query string true "Age group, e.g. 2-4 or 2 - 4 Years"
// @Param design query string false "Only count this design"
// @Param format query string false "Response format (json|text)"
// @Success 200 {object} LookupResponse
// @Failure 400 {object} LookupResponse "gender and age are required"
// @Failure 500 {object} LookupResponse "Server error"
// @Router /inventory [get]
func LookupHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := LookupRequest{
		Gender: strings.TrimSpace(q.Get("gender")),
		Age:    strings.TrimSpace(q.Get("age")),
		Design: strings.TrimSpace(q.Get("design")),
		Format: strings.ToLower(strings.TrimSpace(q.Get("format"))),
	}

	if errs := validateLookup(req); len(errs) > 0 {
		respond(w, req, http.StatusBadRequest, LookupResponse{Message: msgRequired, Errors: errs})
		return
	}

	band, ok := normalize.Age(req.Age)
	if !ok {
		respond(w, req, http.StatusOK, LookupResponse{Gender: req.Gender, Age: req.Age, Message: msgInvalidAge})
		return
	}

	records, err := inventoryRepo.Records(r.Context())
	if err != nil {
		log.Printf("❌ Inventory lookup failed (gender=%q age=%q): %v", req.Gender, req.Age, err)
		respond(w, req, http.StatusInternalServerError, LookupResponse{Message: msgServerError})
		return
	}

	res := lookup.Match(records, lookup.Query{Gender: req.Gender, Age: band, Design: req.Design}, matchMode)
	if !res.Matched {
		respond(w, req, http.StatusOK, LookupResponse{Gender: req.Gender, Age: req.Age, Message: msgNotAvailable})
		return
	}

	respond(w, req, http.StatusOK, LookupResponse{
		Available: res.Available(),
		Quantity:  res.Quantity,
		Gender:    req.Gender,
		Age:       req.Age,
		Designs:   res.Designs,
	})
}

func respond(w http.ResponseWriter, req LookupRequest, status int, resp LookupResponse) {
	var err error
	if req.Format == "text" {
		w.Header().Set("Cache-Control", "no-store")
		err = writeText(w, status, resp.Text())
	} else {
		err = writeJSON(w, status, resp, noStore)
	}
	if err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"}); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
