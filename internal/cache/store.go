package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/julnac/salon-manager/backend/internal/availability"
	"github.com/julnac/salon-manager/backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const versionKey = "availability:catalog:version"

// Store puts redis in front of the catalog lookups of an availability.Store: services,
// qualified staff and work schedules. Bookings are always read from the wrapped store, so a
// cached entry can never hide a booking. Every catalog mutation must call Invalidate, which
// bumps a version that is part of each key; older entries are never read again and expire.
//
// A nil client or a ttl <= 0 turns Store into a plain pass-through, and redis failures fall
// back to the wrapped store.
type Store struct {
	next      availability.Store
	client    *redis.Client
	ttl       time.Duration
	opTimeout time.Duration
	logger    *slog.Logger
}

var _ availability.Store = (*Store)(nil)

func NewStore(next availability.Store, client *redis.Client, ttl, opTimeout time.Duration, logger *slog.Logger) *Store {
	if opTimeout <= 0 {
		opTimeout = time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		next:      next,
		client:    client,
		ttl:       ttl,
		opTimeout: opTimeout,
		logger:    logger,
	}
}

func (s *Store) enabled() bool {
	return s != nil && s.client != nil && s.ttl > 0
}

// idList is independent of the order and repetition of ids.
func idList(ids []int64) string {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	parts := make([]string, 0, len(sorted))
	for _, id := range sorted {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

func servicesKey(version int64, ids []int64) string {
	return fmt.Sprintf("availability:v%d:services:%s", version, idList(ids))
}

func qualifiedKey(version int64, ids []int64) string {
	return fmt.Sprintf("availability:v%d:qualified:%s", version, idList(ids))
}

func scheduleKey(version int64, staffID int64, day time.Weekday) string {
	return fmt.Sprintf("availability:v%d:schedule:%d:%d", version, staffID, domain.ISODay(day))
}

// cached reads key into dst. On a miss it calls load, stores its result and copies it into dst.
func cached[T any](ctx context.Context, s *Store, key func(version int64) string, dst *T, load func() (T, error)) error {
	if !s.enabled() {
		v, err := load()
		*dst = v
		return err
	}

	rctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	version, err := s.client.Get(rctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Warn("catalog cache unavailable", "error", err)
		v, err := load()
		*dst = v
		return err
	}
	k := key(version)

	data, err := s.client.Get(rctx, k).Bytes()
	switch {
	case err == nil:
		if err := json.Unmarshal(data, dst); err == nil {
			s.logger.Debug("catalog cache hit", "key", k)
			return nil
		}
		s.logger.Warn("dropping malformed catalog cache entry", "key", k)
	case !errors.Is(err, redis.Nil):
		s.logger.Warn("failed to read catalog cache", "key", k, "error", err)
	}

	v, err := load()
	if err != nil {
		return err
	}
	*dst = v

	data, err = json.Marshal(v)
	if err != nil {
		s.logger.Warn("failed to encode catalog cache entry", "key", k, "error", err)
		return nil
	}
	wctx, wcancel := context.WithTimeout(ctx, s.opTimeout)
	defer wcancel()

	if err := s.client.Set(wctx, k, data, s.ttl).Err(); err != nil {
		s.logger.Warn("failed to write catalog cache", "key", k, "error", err)
	}
	return nil
}

func (s *Store) ResolveServices(ctx context.Context, ids []int64) ([]*domain.ServiceOffer, error) {
	var services []*domain.ServiceOffer
	err := cached(ctx, s, func(v int64) string { return servicesKey(v, ids) }, &services, func() ([]*domain.ServiceOffer, error) {
		return s.next.ResolveServices(ctx, ids)
	})
	return services, err
}

func (s *Store) FindStaffQualifiedForAll(ctx context.Context, ids []int64) ([]*domain.Staff, error) {
	var staff []*domain.Staff
	err := cached(ctx, s, func(v int64) string { return qualifiedKey(v, ids) }, &staff, func() ([]*domain.Staff, error) {
		return s.next.FindStaffQualifiedForAll(ctx, ids)
	})
	return staff, err
}

// scheduleEntry keeps a missing schedule cacheable.
type scheduleEntry struct {
	Schedule *domain.WorkSchedule `json:"schedule"`
	Found    bool                 `json:"found"`
}

func (s *Store) GetWorkSchedule(ctx context.Context, staffID int64, day time.Weekday) (*domain.WorkSchedule, bool, error) {
	var entry scheduleEntry
	err := cached(ctx, s, func(v int64) string { return scheduleKey(v, staffID, day) }, &entry, func() (scheduleEntry, error) {
		ws, found, err := s.next.GetWorkSchedule(ctx, staffID, day)
		return scheduleEntry{Schedule: ws, Found: found}, err
	})
	if err != nil {
		return nil, false, err
	}
	return entry.Schedule, entry.Found, nil
}

// GetActiveBookings is never cached.
func (s *Store) GetActiveBookings(ctx context.Context, staffID int64, date time.Time) ([]*domain.Booking, error) {
	return s.next.GetActiveBookings(ctx, staffID, date)
}

// Invalidate makes every cached catalog entry unreachable. It is a no-op on a nil or disabled Store.
func (s *Store) Invalidate(ctx context.Context) {
	if !s.enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.client.Incr(ctx, versionKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate catalog cache", "error", err)
	}
}
