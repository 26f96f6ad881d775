package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each pattern in a hash at wireworld:{namespace}:pattern:{id},
// with an index set of IDs and an event channel announcing new patterns.
// It is safe for concurrent use.
type RedisStore struct {
	rdb       *redis.Client
	namespace string
	now       func() time.Time
}

// NewRedisStore connects lazily to the server described by opts.
func NewRedisStore(opts *redis.Options, namespace string) (*RedisStore, error) {
	if namespace == "" {
		return nil, fmt.Errorf("namespace cannot be empty")
	}
	return &RedisStore{rdb: redis.NewClient(opts), namespace: namespace, now: time.Now}, nil
}

// PatternKey returns the hash key for id.
func PatternKey(namespace, id string) string {
	return fmt.Sprintf("wireworld:%s:pattern:%s", namespace, id)
}

// IndexKey returns the set key listing every pattern ID.
func IndexKey(namespace string) string {
	return fmt.Sprintf("wireworld:%s:patterns", namespace)
}

// EventsChannel returns the channel new records are published on.
func EventsChannel(namespace string) string {
	return fmt.Sprintf("wireworld:%s:pattern_events", namespace)
}

// Ping verifies Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Put(ctx context.Context, name, text string) (*Record, error) {
	rec, err := NewRecord(name, text, s.now())
	if err != nil {
		return nil, err
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, PatternKey(s.namespace, rec.ID), recordToHash(rec))
		pipe.SAdd(ctx, IndexKey(s.namespace), rec.ID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write pattern to Redis: %w", err)
	}

	event, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pattern event: %w", err)
	}
	// The record is stored at this point; a failed event is only logged.
	if err := s.rdb.Publish(ctx, EventsChannel(s.namespace), event).Err(); err != nil {
		log.Printf("failed to publish pattern event for %s: %v", rec.ID, err)
	}
	return rec, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	hash, err := s.rdb.HGetAll(ctx, PatternKey(s.namespace, id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern from Redis: %w", err)
	}
	// HGetAll returns an empty map for missing keys
	if len(hash) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return hashToRecord(hash)
}

func (s *RedisStore) List(ctx context.Context) ([]*Record, error) {
	ids, err := s.rdb.SMembers(ctx, IndexKey(s.namespace)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}
	recs := make([]*Record, 0, len(ids))
	for _, id := range ids {
		rec, err := s.Get(ctx, id)
		if IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	sortRecords(recs)
	return recs, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	var del *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, PatternKey(s.namespace, id))
		pipe.SRem(ctx, IndexKey(s.namespace), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete pattern: %w", err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func recordToHash(r *Record) map[string]interface{} {
	return map[string]interface{}{
		"id":            r.ID,
		"name":          r.Name,
		"width":         r.Width,
		"height":        r.Height,
		"pattern":       r.Pattern,
		"created_at_ms": r.CreatedAtMs,
	}
}

func hashToRecord(hash map[string]string) (*Record, error) {
	width, err := strconv.Atoi(hash["width"])
	if err != nil {
		return nil, fmt.Errorf("invalid width field: %w", err)
	}
	height, err := strconv.Atoi(hash["height"])
	if err != nil {
		return nil, fmt.Errorf("invalid height field: %w", err)
	}
	createdAtMs, _ := strconv.ParseInt(hash["created_at_ms"], 10, 64)
	return &Record{
		ID:          hash["id"],
		Name:        hash["name"],
		Width:       width,
		Height:      height,
		Pattern:     hash["pattern"],
		CreatedAtMs: createdAtMs,
	}, nil
}
