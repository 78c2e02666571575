package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryGetMiss(t *testing.T) {
	m := NewMemory()
	_, ok, err := m.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}
}

func TestMemorySetGetRoundTrip(t *testing.T) {
	m := NewMemory()
	if err := m.Set(context.Background(), "k", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := m.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || string(got) != "payload" {
		t.Fatalf("expected hit with payload, got ok=%v val=%q", ok, got)
	}
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()
	now := time.Now()
	m.now = func() time.Time { return now }
	if err := m.Set(context.Background(), "k", []byte("v"), time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	now = now.Add(2 * time.Second)
	_, ok, err := m.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestMemoryReturnsCopy(t *testing.T) {
	m := NewMemory()
	src := []byte("abc")
	if err := m.Set(context.Background(), "k", src, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	src[0] = 'z'
	got, _, _ := m.Get(context.Background(), "k")
	if string(got) != "abc" {
		t.Fatalf("cached value aliased caller buffer: %q", got)
	}
	got[0] = 'z'
	again, _, _ := m.Get(context.Background(), "k")
	if string(again) != "abc" {
		t.Fatalf("returned value aliased cache buffer: %q", again)
	}
}
