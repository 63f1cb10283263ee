package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/report"
)

const keyPrefix = "cadence:report:general:"

// hashStore is the subset of redis.Cmdable the cache relies on.
type hashStore interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Redis keeps one hash per project with a field per calendar day.
type Redis struct {
	store hashStore
	ttl   time.Duration
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient opens a client; it does not dial until first use.
func NewRedisClient(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

func NewRedis(client redis.Cmdable, ttl time.Duration) *Redis {
	return &Redis{store: client, ttl: ttl}
}

func projectKey(projectID string) string {
	return keyPrefix + projectID
}

func (r *Redis) GetGeneral(ctx context.Context, projectID string, day time.Time) (*report.GeneralReportView, bool, error) {
	raw, err := r.store.HGet(ctx, projectKey(projectID), domain.FormatDate(day)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cached report: %w", err)
	}
	var view report.GeneralReportView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		return nil, false, fmt.Errorf("decoding cached report: %w", err)
	}
	return &view, true, nil
}

func (r *Redis) SetGeneral(ctx context.Context, view *report.GeneralReportView, day time.Time) error {
	body, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("encoding report for cache: %w", err)
	}
	key := projectKey(view.ProjectID)
	if err := r.store.HSet(ctx, key, domain.FormatDate(day), body).Err(); err != nil {
		return fmt.Errorf("writing cached report: %w", err)
	}
	if r.ttl > 0 {
		if err := r.store.Expire(ctx, key, r.ttl).Err(); err != nil {
			return fmt.Errorf("setting cache ttl: %w", err)
		}
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context, projectID string) error {
	if err := r.store.Del(ctx, projectKey(projectID)).Err(); err != nil {
		return fmt.Errorf("invalidating cached reports: %w", err)
	}
	return nil
}
