package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Runs against a real server when GRIDTABLE_TEST_REDIS is set, e.g.
// GRIDTABLE_TEST_REDIS=localhost:6379.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("GRIDTABLE_TEST_REDIS")
	if addr == "" {
		t.Skip("GRIDTABLE_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := DialRedisCache(ctx, addr)
	if err != nil {
		t.Fatalf("DialRedisCache: %v", err)
	}
	defer c.Close()

	key := "test:" + Hash([]byte(t.Name()))
	if err := c.Set(ctx, key, []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if data, hit, err := c.Get(ctx, key); err != nil || !hit || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.DeletePrefix(ctx, "test:"); err != nil {
		t.Fatalf("DeletePrefix: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry survived DeletePrefix")
	}
}
