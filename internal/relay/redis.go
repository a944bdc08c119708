package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dempa-dev/dempa/internal/record"
	"github.com/dempa-dev/dempa/shared/logger"
)

// RedisRelay persists records in Redis: one JSON blob per record plus a
// per-kind sorted set scored by claimed timestamp, so queries can return the
// newest revisions first without scanning.
type RedisRelay struct {
	client *redis.Client
	url    string
}

func NewRedisRelay(redisURL string) (*RedisRelay, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisRelay{client: client, url: redisURL}, nil
}

// NewRedisRelayWithClient wraps an existing client (tests).
func NewRedisRelayWithClient(client *redis.Client) *RedisRelay {
	return &RedisRelay{client: client, url: "redis://client"}
}

func kindKey(kind int) string {
	return "dempa:kind:" + strconv.Itoa(kind)
}

func recordKey(id string) string {
	return "dempa:record:" + id
}

func (r *RedisRelay) Submit(ctx context.Context, rec record.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, recordKey(rec.ID), data, 0)
	pipe.ZAdd(ctx, kindKey(rec.Kind), redis.Z{Score: float64(rec.CreatedAt), Member: rec.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("submit record: %w", err)
	}
	return nil
}

func (r *RedisRelay) Query(ctx context.Context, f Filter) ([]record.Record, error) {
	stop := int64(-1)
	if f.Limit > 0 {
		stop = int64(f.Limit) - 1
	}

	ids, err := r.client.ZRevRange(ctx, kindKey(f.Kind), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("query kind %d: %w", f.Kind, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = recordKey(id)
	}

	blobs, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	out := make([]record.Record, 0, len(blobs))
	for _, blob := range blobs {
		s, ok := blob.(string)
		if !ok {
			continue // record blob expired or missing, skip
		}
		var rec record.Record
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			logger.Log.Warn("skipping unparseable relay record", "err", err)
			continue
		}
		if matches(rec, f) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *RedisRelay) URL() string { return r.url }

func (r *RedisRelay) Close() error {
	return r.client.Close()
}
