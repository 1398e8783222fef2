package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestMemoryOTPStore_Basics(t *testing.T) {
	store := NewMemoryOTPStore()

	if err := store.Set("a@x.com", "123456", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	code, ok, err := store.Get("a@x.com")
	if err != nil || !ok || code != "123456" {
		t.Fatalf("expected stored code, got code=%q ok=%v err=%v", code, ok, err)
	}

	// Set sobreescribe la entrada anterior.
	if err := store.Set("a@x.com", "654321", time.Minute); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	code, ok, _ = store.Get("a@x.com")
	if !ok || code != "654321" {
		t.Fatalf("expected overwritten code, got %q", code)
	}

	if err := store.Remove("a@x.com"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := store.Get("a@x.com"); ok {
		t.Fatalf("expected entry removed")
	}
}

func TestMemoryOTPStore_Expiry(t *testing.T) {
	store := NewMemoryOTPStore()

	if err := store.Set("a@x.com", "123456", 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(25 * time.Millisecond)

	if _, ok, _ := store.Get("a@x.com"); ok {
		t.Fatalf("expected expired entry to be absent")
	}
}

func TestMemoryOTPStore_MissingKey(t *testing.T) {
	store := NewMemoryOTPStore()

	code, ok, err := store.Get("nobody@x.com")
	if err != nil || ok || code != "" {
		t.Fatalf("expected absent entry, got code=%q ok=%v err=%v", code, ok, err)
	}
	if err := store.Remove("nobody@x.com"); err != nil {
		t.Fatalf("remove of missing key must be a no-op, got %v", err)
	}
}

type mockRedisKV struct {
	lastSetKey string
	lastSetVal interface{}
	lastSetTTL time.Duration
	lastGetKey string
	lastDel    []string

	getVal string
	getErr error
	setErr error
	delErr error
}

func (m *mockRedisKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.lastSetKey = key
	m.lastSetVal = value
	m.lastSetTTL = expiration
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedisKV) Get(ctx context.Context, key string) *redis.StringCmd {
	m.lastGetKey = key
	cmd := redis.NewStringCmd(ctx)
	if m.getErr != nil {
		cmd.SetErr(m.getErr)
		return cmd
	}
	cmd.SetVal(m.getVal)
	return cmd
}

func (m *mockRedisKV) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.lastDel = keys
	cmd := redis.NewIntCmd(ctx)
	if m.delErr != nil {
		cmd.SetErr(m.delErr)
		return cmd
	}
	cmd.SetVal(1)
	return cmd
}

func TestRedisOTPStore_SetUsesPrefixAndTTL(t *testing.T) {
	kv := &mockRedisKV{}
	store := newRedisOTPStore(kv)

	if err := store.Set("a@x.com", "123456", 10*time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if kv.lastSetKey != "otp:a@x.com" {
		t.Fatalf("unexpected key %q", kv.lastSetKey)
	}
	if kv.lastSetVal != "123456" || kv.lastSetTTL != 10*time.Minute {
		t.Fatalf("unexpected value/ttl: %v %v", kv.lastSetVal, kv.lastSetTTL)
	}
}

func TestRedisOTPStore_GetMapsNilToAbsent(t *testing.T) {
	kv := &mockRedisKV{getErr: redis.Nil}
	store := newRedisOTPStore(kv)

	code, ok, err := store.Get("a@x.com")
	if err != nil || ok || code != "" {
		t.Fatalf("expected absent entry, got code=%q ok=%v err=%v", code, ok, err)
	}

	kv.getErr = errors.New("connection refused")
	if _, _, err := store.Get("a@x.com"); err == nil {
		t.Fatalf("expected transport error to propagate")
	}
}

func TestRedisOTPStore_Remove(t *testing.T) {
	kv := &mockRedisKV{}
	store := newRedisOTPStore(kv)

	if err := store.Remove("a@x.com"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(kv.lastDel) != 1 || kv.lastDel[0] != "otp:a@x.com" {
		t.Fatalf("unexpected del keys %v", kv.lastDel)
	}
}
