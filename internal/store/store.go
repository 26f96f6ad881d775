// Package store persists named MCell patterns on disk or in Redis.
package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"wireworld/internal/config"
	"wireworld/pkg/mcell"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrNotFound is returned when no pattern has the requested ID.
	ErrNotFound = errors.New("pattern not found")
	// ErrInvalidID is returned for IDs that are not UUIDs.
	ErrInvalidID = errors.New("invalid pattern ID: must be a valid UUID")
	// ErrInvalidRecord is returned when a pattern cannot be stored as given.
	ErrInvalidRecord = errors.New("invalid pattern record")
)

// Record is one stored pattern.
type Record struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Pattern     string `json:"pattern"`
	CreatedAtMs int64  `json:"created_at_ms"`
}

// Store saves and retrieves pattern records.
type Store interface {
	Put(ctx context.Context, name, text string) (*Record, error)
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewRecord validates text as an MCell pattern and wraps it in a record with
// a fresh ID.
func NewRecord(name, text string, now time.Time) (*Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: pattern name cannot be empty", ErrInvalidRecord)
	}
	p, err := mcell.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pattern: %w", ErrInvalidRecord, err)
	}
	return &Record{
		ID:          uuid.NewString(),
		Name:        name,
		Width:       p.Width,
		Height:      p.Height,
		Pattern:     text,
		CreatedAtMs: now.UnixMilli(),
	}, nil
}

// ValidateID checks that id is a UUID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// IsNotFound reports whether err means the pattern does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Open builds the store selected by cfg.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "file":
		return NewFileStore(cfg.Dir)
	case "redis":
		return NewRedisStore(&redis.Options{Addr: cfg.RedisAddr}, cfg.Namespace)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func sortRecords(recs []*Record) {
	slices.SortFunc(recs, func(a, b *Record) int {
		if c := cmp.Compare(a.CreatedAtMs, b.CreatedAtMs); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
