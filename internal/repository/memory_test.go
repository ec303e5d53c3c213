package repository

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryKV_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	if _, ok, err := kv.Get(ctx, KeyCart); err != nil || ok {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, KeyCart, "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := kv.Get(ctx, KeyCart)
	if err != nil || !ok || v != "[]" {
		t.Fatalf("get: %q %v %v", v, ok, err)
	}
	if err := kv.Remove(ctx, KeyCart); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, KeyCart); ok {
		t.Fatalf("expected key removed")
	}
	// removing an absent key is not an error
	if err := kv.Remove(ctx, KeyCart); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
}

func TestMemoryKV_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	kv := NewMemoryKV()
	if err := kv.Set(ctx, "k", "v"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(kv.Keys()) != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestLoadJSON_MalformedAndAbsent(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	var v []int
	found, err := LoadJSON(ctx, kv, KeyOrders, &v)
	if err != nil || found {
		t.Fatalf("absent: found=%v err=%v", found, err)
	}

	_ = kv.Set(ctx, KeyOrders, "{not json")
	found, err = LoadJSON(ctx, kv, KeyOrders, &v)
	if found || !errors.Is(err, ErrMalformed) {
		t.Fatalf("malformed: found=%v err=%v", found, err)
	}

	if err := SaveJSON(ctx, kv, KeyOrders, []int{1, 2}); err != nil {
		t.Fatal(err)
	}
	found, err = LoadJSON(ctx, kv, KeyOrders, &v)
	if err != nil || !found || len(v) != 2 {
		t.Fatalf("roundtrip: %v %v %v", v, found, err)
	}
}

func TestFlags(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	if on, err := LoadFlag(ctx, kv, KeyPriorityDelivery); err != nil || on {
		t.Fatalf("absent flag should be false")
	}
	if err := SaveFlag(ctx, kv, KeyPriorityDelivery, true); err != nil {
		t.Fatal(err)
	}
	raw, _, _ := kv.Get(ctx, KeyPriorityDelivery)
	if raw != "true" {
		t.Fatalf("flag stored as %q", raw)
	}
	_ = kv.Set(ctx, KeyPriorityDelivery, "yes")
	if on, _ := LoadFlag(ctx, kv, KeyPriorityDelivery); on {
		t.Fatalf("only the literal true counts")
	}
}
