package redis

import (
	"context"
	"testing"
	"time"
)

func TestMacroCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewMacroCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "F073.UFF.PRE.Z.D:2026-08-01", "39383.07", time.Hour); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "F073.UFF.PRE.Z.D:2026-08-01")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if val != "39383.07" {
		t.Fatalf("expected 39383.07, got %s", val)
	}
}

func TestMacroCacheMiss(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewMacroCache(client)

	if _, err := cache.Get(context.Background(), "missing"); err == nil {
		t.Fatal("expected error on cache miss")
	}
}

func TestMacroCacheZeroTTLPersists(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewMacroCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "F073.UTR.PRE.Z.M:2026-08-01", "68647", 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(24 * time.Hour)

	val, err := cache.Get(ctx, "F073.UTR.PRE.Z.M:2026-08-01")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if val != "68647" {
		t.Fatalf("expected value to survive, got %s", val)
	}
}
