package ban

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
)

type BanLogEntry struct {
	Target  string    `json:"target"`
	Route   string    `json:"route"`
	Strikes int64     `json:"strikes"`
	Time    time.Time `json:"time"`
}

// Banner turns repeated rate-limit rejections into temporary bans.
type Banner struct {
	store    Store
	strikes  int64
	window   time.Duration
	duration time.Duration
}

// NewBanner bans a target once it collects strikes rejections inside window.
// A non-positive strikes value disables banning.
func NewBanner(store Store, strikes int, window, duration time.Duration) *Banner {
	return &Banner{
		store:    store,
		strikes:  int64(strikes),
		window:   window,
		duration: duration,
	}
}

// Strike records one rejection for target and reports whether it is now banned.
func (b *Banner) Strike(ctx context.Context, target, route string) (bool, error) {
	if b.strikes <= 0 {
		return false, nil
	}

	n, err := b.store.AddStrike(ctx, target, b.window)
	if err != nil {
		return false, err
	}
	if n < b.strikes {
		return false, nil
	}

	if err := b.store.Ban(ctx, target, b.duration); err != nil {
		return false, fmt.Errorf("ban %s: %w", target, err)
	}
	if err := b.store.ResetStrikes(ctx, target); err != nil {
		log.Printf("Failed to reset strikes for %s: %v", target, err)
	}

	log.Printf("🚫 Banned %s for %s after %d strikes on %s", target, b.duration, n, route)
	if err := b.store.LogBan(ctx, BanLogEntry{Target: target, Route: route, Strikes: n, Time: time.Now()}); err != nil {
		log.Printf("Failed to log ban event: %v", err)
	}
	return true, nil
}

func (b *Banner) IsBanned(ctx context.Context, target string) (bool, error) {
	if b.strikes <= 0 {
		return false, nil
	}
	return b.store.IsBanned(ctx, target)
}

type Summary struct {
	Total    int
	ByRoute  map[string]int
	ByTarget map[string]int
	Entries  []BanLogEntry
}

// Summarize drains the ban log and aggregates it by route and target.
func (b *Banner) Summarize(ctx context.Context) (Summary, error) {
	entries, err := b.store.DrainBanLog(ctx)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Total:    len(entries),
		ByRoute:  make(map[string]int),
		ByTarget: make(map[string]int),
		Entries:  entries,
	}
	for _, e := range entries {
		s.ByRoute[e.Route]++
		s.ByTarget[e.Target]++
	}
	return s, nil
}

func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "total bans: %d", s.Total)
	for _, route := range sortedKeys(s.ByRoute) {
		fmt.Fprintf(&sb, "; route %s: %d", route, s.ByRoute[route])
	}
	for _, target := range sortedKeys(s.ByTarget) {
		fmt.Fprintf(&sb, "; target %s: %d", target, s.ByTarget[target])
	}
	return sb.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StartDailyBanSummary logs the day's bans every evening at 23:59 until ctx ends.
func (b *Banner) StartDailyBanSummary(ctx context.Context) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(24 * time.Hour)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}

		s, err := b.Summarize(ctx)
		if err != nil {
			log.Printf("❌ Failed to build daily ban summary: %v", err)
			continue
		}
		if s.Total > 0 {
			log.Printf("📊 Daily ban summary: %s", s)
		}
	}
}
