package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestPlanKey(t *testing.T) {
	k1 := PlanKey("venuehash", PlanKeyOpts{RosterHash: "r1"})
	k2 := PlanKey("venuehash", PlanKeyOpts{RosterHash: "r1"})
	if k1 != k2 {
		t.Error("PlanKey should be deterministic")
	}

	// Different options produce different keys
	k3 := PlanKey("venuehash", PlanKeyOpts{RosterHash: "r2"})
	if k1 == k3 {
		t.Error("Different roster hashes should produce different keys")
	}
	k4 := PlanKey("venuehash", PlanKeyOpts{RosterHash: "r1", Seed: 42})
	if k1 == k4 {
		t.Error("Different seeds should produce different keys")
	}

	// Different venues produce different keys
	k5 := PlanKey("otherhash", PlanKeyOpts{RosterHash: "r1"})
	if k1 == k5 {
		t.Error("Different venue hashes should produce different keys")
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "key")
	if err != nil || hit {
		t.Fatalf("expected clean miss, got hit=%v err=%v", hit, err)
	}

	// Set then Get
	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if string(data) != "value" {
		t.Errorf("Get = %q, want %q", data, "value")
	}

	// Expired entries are treated as a miss
	if err := c.Set(ctx, "expired", []byte("old"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "expired"); hit {
		t.Error("expired entry should be a miss")
	}

	// Delete
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("deleted entry should be a miss")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestScopedCache(t *testing.T) {
	ctx := context.Background()
	backend, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	a := Scoped(backend, "a:")
	b := Scoped(backend, "b:")

	if err := a.Set(ctx, "key", []byte("from-a"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Same key in another scope is a miss
	if _, hit, _ := b.Get(ctx, "key"); hit {
		t.Error("scopes should be isolated")
	}

	data, hit, _ := a.Get(ctx, "key")
	if !hit || string(data) != "from-a" {
		t.Errorf("scoped Get = %q hit=%v", data, hit)
	}

	// The underlying key carries the prefix
	if _, hit, _ := backend.Get(ctx, "a:key"); !hit {
		t.Error("scoped Set should write prefixed key to the backend")
	}
}
