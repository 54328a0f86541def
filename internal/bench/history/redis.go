package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/runner"
)

const defaultPrefix = "kbbench:history:"

// Point is one observation of a metric. Members embed the run id so equal
// values from different runs stay distinct in the sorted set.
type Point struct {
	RunID       string    `json:"run_id"`
	Timestamp   time.Time `json:"timestamp"`
	Value       float64   `json:"value"`
	Scale       string    `json:"scale"`
	Concurrency int       `json:"concurrency"`
}

// RedisStore keeps one sorted set per adapter and metric, scored by
// timestamp in milliseconds.
type RedisStore struct {
	client    *redis.Client
	prefix    string
	retention time.Duration
}

type Option func(*RedisStore)

// WithRetention drops points older than d on every write. Zero keeps everything.
func WithRetention(d time.Duration) Option {
	return func(s *RedisStore) { s.retention = d }
}

func WithPrefix(prefix string) Option {
	return func(s *RedisStore) { s.prefix = prefix }
}

func NewRedisStore(ctx context.Context, url string, opts ...Option) (*RedisStore, error) {
	ropts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(ropts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	s := &RedisStore{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *RedisStore) seriesKey(adapter, metric string) string {
	return s.prefix + adapter + ":" + metric
}

func (s *RedisStore) adaptersKey() string {
	return s.prefix + "adapters"
}

// Record appends every outcome's metrics in one pipeline.
func (s *RedisStore) Record(ctx context.Context, outcomes []runner.Outcome) error {
	if len(outcomes) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	touched := make(map[string]bool)

	for _, o := range outcomes {
		if o.Result == nil {
			continue
		}
		adapter := o.Result.AdapterName
		ts := o.Result.Timestamp
		pipe.SAdd(ctx, s.adaptersKey(), adapter)

		for metric, value := range Extract(o) {
			member, err := json.Marshal(Point{
				RunID:       o.RunID.String(),
				Timestamp:   ts,
				Value:       value,
				Scale:       o.Result.Scale,
				Concurrency: o.Result.Concurrency,
			})
			if err != nil {
				return fmt.Errorf("encode point: %w", err)
			}

			key := s.seriesKey(adapter, metric)
			pipe.ZAdd(ctx, key, redis.Z{Score: float64(ts.UnixMilli()), Member: string(member)})
			touched[key] = true
		}
	}

	if s.retention > 0 {
		cutoff := strconv.FormatInt(time.Now().Add(-s.retention).UnixMilli(), 10)
		for key := range touched {
			pipe.ZRemRangeByScore(ctx, key, "-inf", "("+cutoff)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	slog.Debug("history recorded", "outcomes", len(outcomes), "series", len(touched))
	return nil
}

// Series returns the points of one adapter metric since the given time, oldest first.
func (s *RedisStore) Series(ctx context.Context, adapter, metric string, since time.Time) ([]Point, error) {
	members, err := s.client.ZRangeByScore(ctx, s.seriesKey(adapter, metric), &redis.ZRangeBy{
		Min: strconv.FormatInt(since.UnixMilli(), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	points := make([]Point, 0, len(members))
	for _, m := range members {
		var p Point
		if err := json.Unmarshal([]byte(m), &p); err != nil {
			slog.Warn("skipping malformed history point", "adapter", adapter, "metric", metric, "error", err)
			continue
		}
		points = append(points, p)
	}
	return points, nil
}

func (s *RedisStore) Adapters(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.adaptersKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("listing adapters: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Healthy lets the store back the API health endpoint.
func (s *RedisStore) Healthy(ctx context.Context) bool {
	return s.Ping(ctx) == nil
}
