package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dnazarov/avatar-twin-engine/internal/envdata"
)

// RedisStore implements envdata.Store on a Redis sorted set per location,
// scored by snapshot timestamp. It lets multiple instances of the service
// share fetched data.
type RedisStore struct {
	client *redis.Client

	maxHistory int
	maxAge     time.Duration
}

// NewRedisStore creates a RedisStore with the same retention semantics as
// MemoryStore.
func NewRedisStore(client *redis.Client, maxHistory int, maxAge time.Duration) *RedisStore {
	return &RedisStore{
		client:     client,
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

func snapshotKey(loc envdata.Location) string {
	return "snapshots:" + loc.Key()
}

// SaveSnapshot stores the snapshot and trims the set per retention settings.
func (s *RedisStore) SaveSnapshot(ctx context.Context, loc envdata.Location, snapshot envdata.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	key := snapshotKey(loc)
	score := float64(snapshot.Timestamp.Unix())

	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: score, Member: payload})
	if s.maxHistory > 0 {
		pipe.ZRemRangeByRank(ctx, key, 0, int64(-(s.maxHistory + 1)))
	}
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge).Unix()
		pipe.ZRemRangeByScore(ctx, key, "-inf", "("+strconv.FormatInt(cutoff, 10))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save snapshot to redis: %w", err)
	}
	return nil
}

// GetLatest returns the most recent snapshot for a location.
func (s *RedisStore) GetLatest(ctx context.Context, loc envdata.Location) (envdata.Snapshot, error) {
	members, err := s.client.ZRevRange(ctx, snapshotKey(loc), 0, 0).Result()
	if err != nil {
		return envdata.Snapshot{}, fmt.Errorf("read latest snapshot from redis: %w", err)
	}
	if len(members) == 0 {
		return envdata.Snapshot{}, ErrNotFound
	}

	var snapshot envdata.Snapshot
	if err := json.Unmarshal([]byte(members[0]), &snapshot); err != nil {
		return envdata.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snapshot, nil
}

// GetRange returns all snapshots between from and to (inclusive).
func (s *RedisStore) GetRange(ctx context.Context, loc envdata.Location, from, to time.Time) ([]envdata.Snapshot, error) {
	members, err := s.client.ZRangeByScore(ctx, snapshotKey(loc), &redis.ZRangeBy{
		Min: strconv.FormatInt(from.Unix(), 10),
		Max: strconv.FormatInt(to.Unix(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("read snapshot range from redis: %w", err)
	}
	if len(members) == 0 {
		return nil, ErrNotFound
	}

	snapshots := make([]envdata.Snapshot, 0, len(members))
	for _, m := range members {
		var snapshot envdata.Snapshot
		if err := json.Unmarshal([]byte(m), &snapshot); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}
