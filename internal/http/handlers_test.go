package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	api "github.com/rogerio-castellano/designs-lookup/internal/http"
	"github.com/rogerio-castellano/designs-lookup/internal/http/ban"
	handler "github.com/rogerio-castellano/designs-lookup/internal/http/handlers"
	rl "github.com/rogerio-castellano/designs-lookup/internal/http/rate_limiter"
	"github.com/rogerio-castellano/designs-lookup/internal/models"
	"github.com/rogerio-castellano/designs-lookup/internal/repo"
	"github.com/rogerio-castellano/designs-lookup/internal/sheet"
)

const scenarioCSV = "Gender,Age,Design,Quantity\nGirl,2-4 years,Floral,15\nBoy,4-6 years,Robot,8\n"

// sheetServer serves csv the way the spreadsheet export does and counts hits.
type sheetServer struct {
	mu     sync.Mutex
	csv    string
	status int
	hits   int
}

func (s *sheetServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits++
	if s.status != 0 {
		w.WriteHeader(s.status)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Write([]byte(s.csv))
}

func (s *sheetServer) set(csv string, status int) {
	s.mu.Lock()
	s.csv, s.status = csv, status
	s.mu.Unlock()
}

func (s *sheetServer) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits
}

func setupSheet(t *testing.T, csv string) *sheetServer {
	t.Helper()
	upstream := &sheetServer{csv: csv}
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	handler.SetInventoryRepo(repo.NewSheetInventoryRepository(sheet.NewFetcher(srv.URL, time.Second, 0)))
	handler.SetMatchMode(models.MatchExact)
	return upstream
}

func lookup(r http.Handler, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/inventory?"+query, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.LookupResponse {
	t.Helper()
	var resp handler.LookupResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestLookupHandler(t *testing.T) {
	r := api.NewRouter()

	t.Run("Available", func(t *testing.T) {
		setupSheet(t, scenarioCSV)

		w := lookup(r, "gender=Girl&age=2-4")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %q", ct)
		}

		resp := decode(t, w)
		if !resp.Available || resp.Quantity != 15 {
			t.Errorf("expected available with 15, got %+v", resp)
		}
		if len(resp.Designs) != 1 || resp.Designs[0].Design != "Floral" {
			t.Errorf("expected Floral design, got %v", resp.Designs)
		}
		if resp.Gender != "Girl" || resp.Age != "2-4" {
			t.Errorf("expected query to be echoed, got gender=%q age=%q", resp.Gender, resp.Age)
		}
	})

	t.Run("Not available", func(t *testing.T) {
		setupSheet(t, scenarioCSV)

		w := lookup(r, "gender=Boy&age=2-4")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		resp := decode(t, w)
		if resp.Available || resp.Quantity != 0 {
			t.Errorf("expected unavailable with 0, got %+v", resp)
		}
		if resp.Message != "Not available" {
			t.Errorf("expected Not available message, got %q", resp.Message)
		}
	})

	t.Run("Equivalent spellings give the same answer", func(t *testing.T) {
		setupSheet(t, scenarioCSV)

		for _, age := range []string{"2-4", "2-4+Years", "2+%E2%80%93+4+YEARS", "2%C2%A0-%C2%A04"} {
			w := lookup(r, "gender=+GIRL+&age="+age)
			resp := decode(t, w)
			if !resp.Available || resp.Quantity != 15 {
				t.Errorf("age %q: expected available with 15, got %+v", age, resp)
			}
		}
	})

	t.Run("Missing age", func(t *testing.T) {
		upstream := setupSheet(t, scenarioCSV)

		w := lookup(r, "gender=Girl")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		resp := decode(t, w)
		if resp.Message != "gender and age are required" {
			t.Errorf("unexpected message %q", resp.Message)
		}
		if len(resp.Errors) != 1 || resp.Errors[0].Field != "age" {
			t.Errorf("expected one age error, got %v", resp.Errors)
		}
		if upstream.Hits() != 0 {
			t.Errorf("expected no upstream fetch, got %d", upstream.Hits())
		}
	})

	t.Run("Missing both parameters regardless of sheet state", func(t *testing.T) {
		upstream := setupSheet(t, scenarioCSV)
		upstream.set("", http.StatusInternalServerError)

		w := lookup(r, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if resp := decode(t, w); len(resp.Errors) != 2 {
			t.Errorf("expected two errors, got %v", resp.Errors)
		}
	})

	t.Run("Invalid age group", func(t *testing.T) {
		upstream := setupSheet(t, scenarioCSV)

		w := lookup(r, "gender=Girl&age=teen")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		resp := decode(t, w)
		if resp.Available || resp.Message != "Invalid age group" {
			t.Errorf("expected invalid age group, got %+v", resp)
		}
		if upstream.Hits() != 0 {
			t.Errorf("expected no upstream fetch, got %d", upstream.Hits())
		}
	})

	t.Run("Upstream failure hides detail", func(t *testing.T) {
		upstream := setupSheet(t, scenarioCSV)
		upstream.set("", http.StatusBadGateway)

		w := lookup(r, "gender=Girl&age=2-4")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		resp := decode(t, w)
		if resp.Message != "Server error" {
			t.Errorf("expected generic message, got %q", resp.Message)
		}
		if strings.Contains(w.Body.String(), "502") {
			t.Errorf("upstream status leaked: %s", w.Body.String())
		}
	})

	t.Run("Empty sheet is a server error", func(t *testing.T) {
		setupSheet(t, "")

		w := lookup(r, "gender=Girl&age=2-4")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})

	t.Run("Broken quoting is a server error", func(t *testing.T) {
		setupSheet(t, "Gender,Age,Design,Quantity\nGirl,2-4,\"Red,5\nBoy,4-6,Robot,8\nBoy,4-6,Car,3\n")

		w := lookup(r, "gender=Boy&age=4-6")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if resp := decode(t, w); resp.Message != "Server error" {
			t.Errorf("expected generic message, got %q", resp.Message)
		}
	})

	t.Run("Every request fetches the sheet", func(t *testing.T) {
		upstream := setupSheet(t, scenarioCSV)

		first := decode(t, lookup(r, "gender=Girl&age=2-4"))
		upstream.set("Gender,Age,Design,Quantity\nGirl,2-4 years,Floral,4\n", 0)
		second := decode(t, lookup(r, "gender=Girl&age=2-4"))

		if first.Quantity != 15 || second.Quantity != 4 {
			t.Errorf("expected 15 then 4, got %d then %d", first.Quantity, second.Quantity)
		}
		if upstream.Hits() != 2 {
			t.Errorf("expected 2 fetches, got %d", upstream.Hits())
		}
	})

	t.Run("Design filter and quoted designs", func(t *testing.T) {
		setupSheet(t, "Gender,Age,Design,Quantity\nGirl,2-4 years,\"Red, Blue\",\"1,200 pcs\"\nGirl,2-4 years,Floral,3\n")

		resp := decode(t, lookup(r, "gender=Girl&age=2-4&design=red,+blue"))
		if resp.Quantity != 1200 {
			t.Errorf("expected 1200, got %+v", resp)
		}
		if len(resp.Designs) != 1 || resp.Designs[0].Design != "Red, Blue" {
			t.Errorf("expected Red, Blue design, got %v", resp.Designs)
		}
	})

	t.Run("Text format", func(t *testing.T) {
		setupSheet(t, scenarioCSV)

		w := lookup(r, "gender=Girl&age=2-4&format=text")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
			t.Errorf("expected text/plain, got %q", ct)
		}
		body := w.Body.String()
		if !strings.Contains(body, "available: true") || !strings.Contains(body, "quantity: 15") {
			t.Errorf("unexpected body %q", body)
		}
	})

	t.Run("Root path serves lookups", func(t *testing.T) {
		setupSheet(t, scenarioCSV)

		req := httptest.NewRequest(http.MethodGet, "/?gender=Boy&age=4+to+6", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		resp := decode(t, w)
		if !resp.Available || resp.Quantity != 8 {
			t.Errorf("expected available with 8, got %+v", resp)
		}
	})
}

func TestLookupHandler_MatchModes(t *testing.T) {
	r := api.NewRouter()
	inventory := repo.NewInMemoryInventoryRepository(
		models.InventoryRecord{Gender: "Girl", Age: "2-4 years", Design: "Floral", Quantity: "5"},
		models.InventoryRecord{Gender: "Girl", Age: "Kids 2-4 / 4-6", Design: "Bundle", Quantity: "2"},
	)
	handler.SetInventoryRepo(inventory)
	t.Cleanup(func() { handler.SetMatchMode(models.MatchExact) })

	handler.SetMatchMode(models.MatchExact)
	if resp := decode(t, lookup(r, "gender=Girl&age=2-4")); resp.Quantity != 5 {
		t.Errorf("exact: expected 5, got %d", resp.Quantity)
	}

	handler.SetMatchMode(models.MatchContains)
	if resp := decode(t, lookup(r, "gender=Girl&age=2-4")); resp.Quantity != 7 {
		t.Errorf("contains: expected 7, got %d", resp.Quantity)
	}

	inventory.Fail(errors.New("boom"))
	if w := lookup(r, "gender=Girl&age=2-4"); w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 on repository failure, got %d", w.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	r := api.NewRouter()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil || resp.Status != "ok" {
		t.Errorf("unexpected health response %+v (%v)", resp, err)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	handler.SetInventoryRepo(repo.NewInMemoryInventoryRepository(
		models.InventoryRecord{Gender: "Girl", Age: "2-4", Quantity: "1"},
	))
	limiter := rl.New(0.001, 2, time.Minute)
	banner := ban.NewBanner(ban.NewMemoryStore(), 2, time.Minute, time.Hour)
	r := api.NewRouter(api.WithRateLimit(limiter, banner))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/inventory?gender=Girl&age=2-4", nil)
		req.RemoteAddr = ip + ":40000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	codes := []int{send("10.0.0.1"), send("10.0.0.1"), send("10.0.0.1"), send("10.0.0.1"), send("10.0.0.1")}
	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusForbidden}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("request %d: expected %d, got %d", i+1, want[i], codes[i])
		}
	}

	if code := send("10.0.0.2"); code != http.StatusOK {
		t.Errorf("expected another client to pass, got %d", code)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.1:40000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected health to bypass the limiter, got %d", w.Code)
	}
}

func TestSwaggerDoc(t *testing.T) {
	r := api.NewRouter()
	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/inventory") {
		t.Errorf("expected /inventory in swagger doc, got %s", w.Body.String())
	}
}

func TestRateLimitMiddleware_ForwardedHeaders(t *testing.T) {
	handler.SetInventoryRepo(repo.NewInMemoryInventoryRepository(
		models.InventoryRecord{Gender: "Girl", Age: "2-4", Quantity: "1"},
	))

	send := func(r http.Handler, remote, forwarded string) int {
		req := httptest.NewRequest(http.MethodGet, "/inventory?gender=Girl&age=2-4", nil)
		req.RemoteAddr = remote
		if forwarded != "" {
			req.Header.Set("X-Forwarded-For", forwarded)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("Direct clients cannot frame another address", func(t *testing.T) {
		limiter := rl.New(0.001, 1, time.Minute)
		banner := ban.NewBanner(ban.NewMemoryStore(), 2, time.Minute, time.Hour)
		r := api.NewRouter(api.WithRateLimit(limiter, banner))

		for i := 0; i < 4; i++ {
			send(r, "6.6.6.6:40000", "1.2.3.4")
		}
		if banned, _ := banner.IsBanned(context.Background(), "1.2.3.4"); banned {
			t.Error("forwarded address must not be banned for someone else's traffic")
		}
		if banned, _ := banner.IsBanned(context.Background(), "6.6.6.6"); !banned {
			t.Error("expected the sending address to be banned")
		}
		if code := send(r, "1.2.3.4:40000", ""); code != http.StatusOK {
			t.Errorf("expected the framed address to pass, got %d", code)
		}
	})

	t.Run("Rotating the header does not reset the bucket", func(t *testing.T) {
		limiter := rl.New(0.001, 1, time.Minute)
		r := api.NewRouter(api.WithRateLimit(limiter, nil))

		limited := 0
		for i := 0; i < 5; i++ {
			if send(r, "6.6.6.6:40000", fmt.Sprintf("9.9.9.%d", i)) == http.StatusTooManyRequests {
				limited++
			}
		}
		if limited != 4 {
			t.Errorf("expected 4 rejected requests, got %d", limited)
		}
	})

	t.Run("Trusted proxy forwards the client address", func(t *testing.T) {
		trusted, err := api.ParseTrustedProxies([]string{"10.0.0.0/8"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		limiter := rl.New(0.001, 1, time.Minute)
		r := api.NewRouter(api.WithTrustedProxies(trusted), api.WithRateLimit(limiter, nil))

		if code := send(r, "10.0.0.9:40000", "6.6.6.6, 1.2.3.4"); code != http.StatusOK {
			t.Fatalf("expected first client to pass, got %d", code)
		}
		if code := send(r, "10.0.0.9:40000", "5.6.7.8"); code != http.StatusOK {
			t.Errorf("expected a different forwarded client to have its own bucket, got %d", code)
		}
		if code := send(r, "10.0.0.9:40000", "7.7.7.7, 1.2.3.4"); code != http.StatusTooManyRequests {
			t.Errorf("expected 1.2.3.4 to be limited regardless of spoofed left hops, got %d", code)
		}
	})
}
