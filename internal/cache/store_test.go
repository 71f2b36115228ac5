package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/julnac/salon-manager/backend/internal/availability"
	"github.com/julnac/salon-manager/backend/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return monday.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func newSnapshot() *availability.Snapshot {
	return &availability.Snapshot{
		Services: []*domain.ServiceOffer{
			{ID: 1, Name: "Haircut", DurationMinutes: 30},
			{ID: 2, Name: "Beard trim", DurationMinutes: 20},
		},
		Staff: []*domain.Staff{
			{ID: 1, FirstName: "Anna", LastName: "Nowak", Email: "anna@salon.local"},
			{ID: 2, FirstName: "Marek", LastName: "Kowalski", Email: "marek@salon.local"},
		},
		Qualifications: []domain.Qualification{
			{StaffID: 1, ServiceID: 1},
			{StaffID: 1, ServiceID: 2},
			{StaffID: 2, ServiceID: 1},
		},
		Schedules: []*domain.WorkSchedule{
			{ID: 1, StaffID: 1, DayOfWeek: 1, StartTime: "09:00:00", EndTime: "12:00:00", IsWorkingDay: true},
		},
	}
}

func newTestStore(t *testing.T, next availability.Store) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewStore(next, client, 30*time.Second, time.Second, nil), mr
}

func TestStoreServesCatalogFromCache(t *testing.T) {
	ctx := context.Background()
	snap := newSnapshot()
	store, _ := newTestStore(t, snap)

	services, err := store.ResolveServices(ctx, []int64{1})
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, int32(30), services[0].DurationMinutes)

	snap.Services[0].DurationMinutes = 45

	services, err = store.ResolveServices(ctx, []int64{1})
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, int32(30), services[0].DurationMinutes, "second read must come from redis")

	store.Invalidate(ctx)

	services, err = store.ResolveServices(ctx, []int64{1})
	require.NoError(t, err)
	assert.Equal(t, int32(45), services[0].DurationMinutes)
}

func TestStoreCachesQualifiedStaff(t *testing.T) {
	ctx := context.Background()
	snap := newSnapshot()
	store, _ := newTestStore(t, snap)

	staff, err := store.FindStaffQualifiedForAll(ctx, []int64{2, 1})
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, "Anna", staff[0].FirstName)

	snap.Qualifications = append(snap.Qualifications, domain.Qualification{StaffID: 2, ServiceID: 2})

	// same set in another order hits the same entry
	staff, err = store.FindStaffQualifiedForAll(ctx, []int64{1, 2, 2})
	require.NoError(t, err)
	assert.Len(t, staff, 1)

	store.Invalidate(ctx)

	staff, err = store.FindStaffQualifiedForAll(ctx, []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, staff, 2)
	assert.Equal(t, int64(1), staff[0].ID)
	assert.Equal(t, int64(2), staff[1].ID)
}

func TestStoreCachesMissingSchedule(t *testing.T) {
	ctx := context.Background()
	snap := newSnapshot()
	store, _ := newTestStore(t, snap)

	ws, found, err := store.GetWorkSchedule(ctx, 2, time.Monday)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, ws)

	snap.Schedules = append(snap.Schedules, &domain.WorkSchedule{ID: 2, StaffID: 2, DayOfWeek: 1, StartTime: "10:00:00", EndTime: "14:00:00", IsWorkingDay: true})

	_, found, err = store.GetWorkSchedule(ctx, 2, time.Monday)
	require.NoError(t, err)
	assert.False(t, found)

	store.Invalidate(ctx)

	ws, found, err = store.GetWorkSchedule(ctx, 2, time.Monday)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "10:00:00", ws.StartTime)
	assert.True(t, ws.IsWorkingDay)
}

func TestStoreNeverCachesBookings(t *testing.T) {
	ctx := context.Background()
	snap := newSnapshot()
	store, mr := newTestStore(t, snap)

	bookings, err := store.GetActiveBookings(ctx, 1, monday)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	snap.Bookings = append(snap.Bookings, &domain.Booking{ID: 1, StaffID: 1, StartTime: at(9, 0), EndTime: at(10, 0), Status: domain.BookingStatusPending})

	bookings, err = store.GetActiveBookings(ctx, 1, monday)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.Empty(t, mr.Keys())
}

func TestStoreKeys(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, newSnapshot())

	_, err := store.ResolveServices(ctx, []int64{2, 1, 2})
	require.NoError(t, err)
	_, _, err = store.GetWorkSchedule(ctx, 1, time.Sunday)
	require.NoError(t, err)

	assert.Equal(t, []string{"availability:v0:schedule:1:7", "availability:v0:services:1,2"}, mr.Keys())
	assert.Equal(t, 30*time.Second, mr.TTL("availability:v0:services:1,2"))

	store.Invalidate(ctx)
	store.Invalidate(ctx)

	_, err = store.ResolveServices(ctx, []int64{1, 2})
	require.NoError(t, err)
	assert.True(t, mr.Exists("availability:v2:services:1,2"))

	mr.FastForward(31 * time.Second)
	assert.False(t, mr.Exists("availability:v0:services:1,2"))
	assert.False(t, mr.Exists("availability:v2:services:1,2"))
}

func TestStoreDropsMalformedEntries(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, newSnapshot())

	require.NoError(t, mr.Set("availability:v0:services:1", "{not json"))

	services, err := store.ResolveServices(ctx, []int64{1})
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Haircut", services[0].Name)
}

func TestStoreFallsBackWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, newSnapshot())
	mr.Close()

	services, err := store.ResolveServices(ctx, []int64{1, 2})
	require.NoError(t, err)
	assert.Len(t, services, 2)

	_, found, err := store.GetWorkSchedule(ctx, 1, time.Monday)
	require.NoError(t, err)
	assert.True(t, found)

	store.Invalidate(ctx)
}

func TestStoreDisabled(t *testing.T) {
	ctx := context.Background()

	tests := map[string]struct {
		client *redis.Client
		ttl    time.Duration
	}{
		"nil client": {nil, time.Minute},
		"zero ttl":   {redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			snap := newSnapshot()
			store := NewStore(snap, tt.client, tt.ttl, time.Second, nil)
			assert.False(t, store.enabled())

			_, err := store.ResolveServices(ctx, []int64{1})
			require.NoError(t, err)

			snap.Services[0].Name = "Fade"
			services, err := store.ResolveServices(ctx, []int64{1})
			require.NoError(t, err)
			assert.Equal(t, "Fade", services[0].Name)

			// must not touch redis
			store.Invalidate(ctx)
		})
	}

	var store *Store
	assert.False(t, store.enabled())
	store.Invalidate(ctx)
}

func TestStorePropagatesErrors(t *testing.T) {
	store, _ := newTestStore(t, newSnapshot())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ResolveServices(ctx, []int64{1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStoreKeepsFinderResultsFresh(t *testing.T) {
	ctx := context.Background()
	snap := newSnapshot()
	store, _ := newTestStore(t, snap)

	finder, err := availability.NewFinder(store, availability.Options{
		SlotGranularityMinutes: 30,
		Now:                    func() time.Time { return at(8, 0) },
	})
	require.NoError(t, err)

	result, err := finder.FindAvailableSlots(ctx, monday, []int64{1})
	require.NoError(t, err)
	require.Len(t, result.Staff, 1)
	assert.Equal(t, []time.Time{at(9, 0), at(9, 30), at(10, 0), at(10, 30), at(11, 0), at(11, 30)}, result.Staff[0].Slots)

	// a booking made after the first query shows up while the catalog is still cached
	snap.Bookings = append(snap.Bookings, &domain.Booking{ID: 7, StaffID: 1, StartTime: at(10, 0), EndTime: at(11, 0), Status: domain.BookingStatusConfirmedByClient})

	result, err = finder.FindAvailableSlots(ctx, monday, []int64{1})
	require.NoError(t, err)
	require.Len(t, result.Staff, 1)
	assert.Equal(t, []time.Time{at(9, 0), at(9, 30), at(11, 0), at(11, 30)}, result.Staff[0].Slots)
}
