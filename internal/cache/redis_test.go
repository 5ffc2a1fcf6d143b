package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockCmdable struct {
	values  map[string]string
	ttls    map[string]time.Duration
	getErr  error
	deleted []string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	val, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (m *mockCmdable) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.values[key] = string(v)
	case string:
		m.values[key] = v
	}
	m.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.values, key)
		m.deleted = append(m.deleted, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

type snapshot struct {
	Names []string `json:"names"`
}

func TestSnapshotCache_StoreAndLoad(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	c := &SnapshotCache{store: mock, ttl: 10 * time.Minute}

	var empty snapshot
	hit, err := c.Load(ctx, &empty)
	if err != nil || hit {
		t.Fatalf("expected miss, got hit=%v err=%v", hit, err)
	}

	if err := c.Store(ctx, snapshot{Names: []string{"Casa Funerară Lumina"}}); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if mock.ttls["fd:directory:snapshot"] != 10*time.Minute {
		t.Fatalf("unexpected ttl: %v", mock.ttls)
	}

	var got snapshot
	hit, err = c.Load(ctx, &got)
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if len(got.Names) != 1 || got.Names[0] != "Casa Funerară Lumina" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}

	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if len(mock.deleted) != 1 {
		t.Fatalf("expected key deletion")
	}
}

func TestSnapshotCache_Errors(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	mock.getErr = errors.New("connection refused")
	c := &SnapshotCache{store: mock}

	var dest snapshot
	if _, err := c.Load(ctx, &dest); err == nil {
		t.Fatalf("expected get error")
	}

	mock.getErr = nil
	mock.values[snapshotKey()] = "{not json"
	if _, err := c.Load(ctx, &dest); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestSnapshotCache_NilIsDisabled(t *testing.T) {
	var c *SnapshotCache
	var dest snapshot
	if hit, err := c.Load(context.Background(), &dest); hit || err != nil {
		t.Fatalf("nil cache should miss silently")
	}
	if err := c.Store(context.Background(), dest); err != nil {
		t.Fatalf("nil cache should ignore stores: %v", err)
	}
}

func TestNew_RequiresURL(t *testing.T) {
	if _, err := New(context.Background(), "", time.Minute); err == nil {
		t.Fatalf("expected error for empty url")
	}
	if _, err := New(context.Background(), "://bad", time.Minute); err == nil {
		t.Fatalf("expected error for malformed url")
	}
}
