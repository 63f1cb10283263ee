package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/cadence/internal/report"
)

// fakeHashStore is an in-memory stand-in for a redis server.
type fakeHashStore struct {
	hashes  map[string]map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newFakeHashStore() *fakeHashStore {
	return &fakeHashStore{hashes: map[string]map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeHashStore) HGet(_ context.Context, key, field string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.hashes[key][field]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeHashStore) HSet(_ context.Context, key string, values ...any) *redis.IntCmd {
	h, ok := f.hashes[key]
	if !ok {
		h = map[string]string{}
		f.hashes[key] = h
	}
	for i := 0; i+1 < len(values); i += 2 {
		var val string
		switch v := values[i+1].(type) {
		case []byte:
			val = string(v)
		case string:
			val = v
		}
		h[values[i].(string)] = val
	}
	return redis.NewIntResult(int64(len(values)/2), nil)
}

func (f *fakeHashStore) Expire(_ context.Context, key string, d time.Duration) *redis.BoolCmd {
	f.ttls[key] = d
	return redis.NewBoolResult(true, nil)
}

func (f *fakeHashStore) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.hashes, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

var (
	monday  = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
)

func sampleView() *report.GeneralReportView {
	return &report.GeneralReportView{ProjectID: "p1", ProjectName: "Clinic", OverallProgress: 45, HasReports: true}
}

func TestRedis_RoundTripByDay(t *testing.T) {
	store := newFakeHashStore()
	c := &Redis{store: store, ttl: time.Minute}
	ctx := context.Background()

	_, ok, err := c.GetGeneral(ctx, "p1", monday)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetGeneral(ctx, sampleView(), monday))
	assert.Equal(t, time.Minute, store.ttls[projectKey("p1")])

	got, ok, err := c.GetGeneral(ctx, "p1", monday.Add(5*time.Hour))
	require.NoError(t, err)
	require.True(t, ok, "same calendar day hits")
	assert.Equal(t, 45, got.OverallProgress)
	assert.Equal(t, "Clinic", got.ProjectName)

	_, ok, err = c.GetGeneral(ctx, "p1", tuesday)
	require.NoError(t, err)
	assert.False(t, ok, "a new day is a miss")
}

func TestRedis_InvalidateDropsAllDays(t *testing.T) {
	store := newFakeHashStore()
	c := &Redis{store: store}
	ctx := context.Background()

	require.NoError(t, c.SetGeneral(ctx, sampleView(), monday))
	require.NoError(t, c.SetGeneral(ctx, sampleView(), tuesday))
	require.NoError(t, c.Invalidate(ctx, "p1"))

	_, ok, err := c.GetGeneral(ctx, "p1", monday)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, store.ttls, "no ttl configured")
}

func TestRedis_ErrorSurfaces(t *testing.T) {
	store := newFakeHashStore()
	store.failGet = errors.New("connection refused")
	c := &Redis{store: store}

	_, ok, err := c.GetGeneral(context.Background(), "p1", monday)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestMemory(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	require.NoError(t, c.SetGeneral(ctx, sampleView(), monday))
	got, ok, err := c.GetGeneral(ctx, "p1", monday)
	require.NoError(t, err)
	require.True(t, ok)
	got.OverallProgress = 0

	again, _, _ := c.GetGeneral(ctx, "p1", monday)
	assert.Equal(t, 45, again.OverallProgress, "callers get a copy")

	require.NoError(t, c.Invalidate(ctx, "p1"))
	_, ok, _ = c.GetGeneral(ctx, "p1", monday)
	assert.False(t, ok)
}
