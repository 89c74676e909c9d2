package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "dune_tours/internal/adapters/redis"
	"dune_tours/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetDel(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	in := domain.Activity{
		ID:     "quad-tour",
		Title:  domain.LocalizedText{"en": "Quad tour", "fr": "Balade en quad"},
		Prices: domain.PriceRecord{"USD": 45},
	}
	if err := c.Set(ctx, "activity:quad-tour", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("activity:quad-tour"); ttl != 60*time.Second {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	var out domain.Activity
	ok, err := c.Get(ctx, "activity:quad-tour", &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if out.Title["fr"] != "Balade en quad" || out.Prices["USD"] != 45 {
		t.Fatalf("unexpected round trip: %+v", out)
	}

	if err := c.Del(ctx, "activity:quad-tour"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, err = c.Get(ctx, "activity:quad-tour", &out)
	if err != nil || ok {
		t.Fatalf("expected miss after del, ok=%v err=%v", ok, err)
	}
}

func TestCache_ExpiresAndCorruptEntry(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", map[string]int{"a": 1}, 5); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(6 * time.Second)
	var m map[string]int
	if ok, _ := c.Get(ctx, "k", &m); ok {
		t.Fatalf("expected expiry")
	}

	if err := mr.Set("bad", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	ok, err := c.Get(ctx, "bad", &m)
	if ok || err == nil {
		t.Fatalf("expected decode error on corrupt entry, ok=%v err=%v", ok, err)
	}
}
