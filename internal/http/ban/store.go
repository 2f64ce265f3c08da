package ban

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/designs-lookup/internal/redissvc"
)

// Store keeps strike counters, active bans and the ban log.
type Store interface {
	AddStrike(ctx context.Context, target string, window time.Duration) (int64, error)
	ResetStrikes(ctx context.Context, target string) error
	Ban(ctx context.Context, target string, d time.Duration) error
	IsBanned(ctx context.Context, target string) (bool, error)
	LogBan(ctx context.Context, entry BanLogEntry) error
	DrainBanLog(ctx context.Context) ([]BanLogEntry, error)
}

const (
	DailyBanLogKey = "ratelimit:banlog:daily"
	strikesPrefix  = "ratelimit:strikes:"
	banPrefix      = "ratelimit:ban:"
)

// RedisStore shares ban state between every instance behind the same Redis.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rs *redissvc.RedisService) *RedisStore {
	return &RedisStore{rdb: rs.Rdb()}
}

func (s *RedisStore) AddStrike(ctx context.Context, target string, window time.Duration) (int64, error) {
	key := strikesPrefix + target
	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("add strike: %w", err)
	}
	if n == 1 {
		if err := s.rdb.Expire(ctx, key, window).Err(); err != nil {
			return n, fmt.Errorf("expire strikes: %w", err)
		}
	}
	return n, nil
}

func (s *RedisStore) ResetStrikes(ctx context.Context, target string) error {
	return s.rdb.Del(ctx, strikesPrefix+target).Err()
}

func (s *RedisStore) Ban(ctx context.Context, target string, d time.Duration) error {
	return s.rdb.Set(ctx, banPrefix+target, time.Now().Add(d).Format(time.RFC3339), d).Err()
}

func (s *RedisStore) IsBanned(ctx context.Context, target string) (bool, error) {
	n, err := s.rdb.Exists(ctx, banPrefix+target).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) LogBan(ctx context.Context, entry BanLogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.rdb.RPush(ctx, DailyBanLogKey, data).Err()
}

func (s *RedisStore) DrainBanLog(ctx context.Context) ([]BanLogEntry, error) {
	var lrange *redis.StringSliceCmd
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		lrange = p.LRange(ctx, DailyBanLogKey, 0, -1)
		p.Del(ctx, DailyBanLogKey)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("drain ban log: %w", err)
	}

	var entries []BanLogEntry
	for _, item := range lrange.Val() {
		var entry BanLogEntry
		if err := json.Unmarshal([]byte(item), &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

type strikeCounter struct {
	count   int64
	expires time.Time
}

// MemoryStore is a single-process Store used when no Redis is configured.
type MemoryStore struct {
	mu      sync.Mutex
	now     func() time.Time
	strikes map[string]*strikeCounter
	bans    map[string]time.Time
	log     []BanLogEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:     time.Now,
		strikes: make(map[string]*strikeCounter),
		bans:    make(map[string]time.Time),
	}
}

func (s *MemoryStore) AddStrike(ctx context.Context, target string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c, ok := s.strikes[target]
	if !ok || !now.Before(c.expires) {
		c = &strikeCounter{expires: now.Add(window)}
		s.strikes[target] = c
	}
	c.count++
	return c.count, nil
}

func (s *MemoryStore) ResetStrikes(ctx context.Context, target string) error {
	s.mu.Lock()
	delete(s.strikes, target)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Ban(ctx context.Context, target string, d time.Duration) error {
	s.mu.Lock()
	s.bans[target] = s.now().Add(d)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) IsBanned(ctx context.Context, target string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.bans[target]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.bans, target)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) LogBan(ctx context.Context, entry BanLogEntry) error {
	s.mu.Lock()
	s.log = append(s.log, entry)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) DrainBanLog(ctx context.Context) ([]BanLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.log
	s.log = nil
	return entries, nil
}
