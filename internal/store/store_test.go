package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"wireworld/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	patternA = "#MCell 4.00\n#GAME Wireworld\n#BOARD 3x1\n#L HTC$"
	patternB = "#MCell 4.00\n#GAME Wireworld\n#BOARD 2x2\n#L C$.C$"
)

// steppingClock returns successive milliseconds from a fixed epoch.
func steppingClock() func() time.Time {
	t := time.UnixMilli(1_700_000_000_000)
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}

func backends(t *testing.T) map[string]Store {
	t.Helper()

	fs, err := NewFileStore(filepath.Join(t.TempDir(), "patterns"))
	require.NoError(t, err)
	fs.now = steppingClock()

	mr := miniredis.RunT(t)
	rs, err := NewRedisStore(&redis.Options{Addr: mr.Addr()}, "test")
	require.NoError(t, err)
	rs.now = steppingClock()
	t.Cleanup(func() { rs.Close() })

	return map[string]Store{"file": fs, "redis": rs}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			a, err := s.Put(ctx, "oscillator", patternA)
			require.NoError(t, err)
			assert.Equal(t, 3, a.Width)
			assert.Equal(t, 1, a.Height)
			require.NoError(t, ValidateID(a.ID))

			b, err := s.Put(ctx, "  diode ", patternB)
			require.NoError(t, err)
			assert.Equal(t, "diode", b.Name)

			got, err := s.Get(ctx, a.ID)
			require.NoError(t, err)
			assert.Equal(t, a, got)

			list, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, a.ID, list[0].ID)
			assert.Equal(t, b.ID, list[1].ID)

			require.NoError(t, s.Delete(ctx, a.ID))
			_, err = s.Get(ctx, a.ID)
			assert.True(t, IsNotFound(err))
			assert.ErrorIs(t, s.Delete(ctx, a.ID), ErrNotFound)

			list, err = s.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, b.ID, list[0].ID)
		})
	}
}

func TestStoreRejects(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Put(ctx, "broken", "#BOARD 2x1\n#L 3C$")
			assert.ErrorContains(t, err, "invalid pattern")
			assert.ErrorIs(t, err, ErrInvalidRecord)

			_, err = s.Put(ctx, " ", patternA)
			assert.ErrorContains(t, err, "name cannot be empty")
			assert.ErrorIs(t, err, ErrInvalidRecord)

			_, err = s.Get(ctx, "../../etc/passwd")
			assert.ErrorIs(t, err, ErrInvalidID)

			_, err = s.Get(ctx, "550e8400-e29b-41d4-a716-446655440000")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestFileStoreSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))

	_, err = s.Put(context.Background(), "a", patternA)
	require.NoError(t, err)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRedisStoreKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(&redis.Options{Addr: mr.Addr()}, "lab")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Ping(context.Background()))
	rec, err := s.Put(context.Background(), "a", patternA)
	require.NoError(t, err)

	assert.True(t, mr.Exists(PatternKey("lab", rec.ID)))
	assert.Equal(t, patternA, mr.HGet(PatternKey("lab", rec.ID), "pattern"))
	members, err := mr.Members(IndexKey("lab"))
	require.NoError(t, err)
	assert.Equal(t, []string{rec.ID}, members)

	_, err = NewRedisStore(&redis.Options{Addr: mr.Addr()}, "")
	assert.Error(t, err)
}

// refusePublish fails every PUBLISH and passes other commands through.
type refusePublish struct{}

func (refusePublish) DialHook(next redis.DialHook) redis.DialHook { return next }

func (refusePublish) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if cmd.Name() == "publish" {
			return errors.New("publish refused")
		}
		return next(ctx, cmd)
	}
}

func (refusePublish) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestRedisStorePutSurvivesPublishFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(&redis.Options{Addr: mr.Addr()}, "lab")
	require.NoError(t, err)
	defer s.Close()
	s.rdb.AddHook(refusePublish{})

	rec, err := s.Put(context.Background(), "a", patternA)
	require.NoError(t, err)

	got, err := s.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, patternA, got.Pattern)
}

func TestOpen(t *testing.T) {
	s, err := Open(config.StoreConfig{Backend: "file", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	mr := miniredis.RunT(t)
	s, err = Open(config.StoreConfig{Backend: "redis", RedisAddr: mr.Addr(), Namespace: "x"})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(config.StoreConfig{Backend: "s3"})
	assert.Error(t, err)
}
