package glint

import "testing"

func TestArenaZeroHandleInvalid(t *testing.T) {
	var a arena[int]
	if _, ok := a.lookup(0); ok {
		t.Error("zero handle resolved")
	}
	h := a.insert(7)
	if h == 0 {
		t.Error("insert returned the invalid sentinel")
	}
}

func TestArenaLookupAndRemove(t *testing.T) {
	var a arena[string]
	h := a.insert("quad")
	if v, ok := a.lookup(h); !ok || *v != "quad" {
		t.Fatalf("lookup = %v, %v", v, ok)
	}
	if a.len() != 1 {
		t.Fatalf("len = %d", a.len())
	}
	if v, ok := a.remove(h); !ok || v != "quad" {
		t.Fatalf("remove = %q, %v", v, ok)
	}
	if a.len() != 0 {
		t.Fatalf("len after remove = %d", a.len())
	}
}

func TestArenaStaleHandleDetected(t *testing.T) {
	var a arena[int]
	h := a.insert(1)
	a.remove(h)

	// The slot is reused, but the old handle must stay dead.
	h2 := a.insert(2)
	if _, ok := a.lookup(h); ok {
		t.Error("stale handle resolved after slot reuse")
	}
	if v, ok := a.lookup(h2); !ok || *v != 2 {
		t.Error("fresh handle failed to resolve")
	}
	if uint32(h) != uint32(h2) {
		t.Fatal("expected slot reuse in this scenario")
	}
}

func TestArenaDoubleRemoveIsNoop(t *testing.T) {
	var a arena[int]
	h := a.insert(1)
	a.remove(h)
	if _, ok := a.remove(h); ok {
		t.Error("double remove succeeded")
	}
	if a.len() != 0 {
		t.Errorf("len = %d", a.len())
	}
}

func TestArenaInsertAfterDrain(t *testing.T) {
	var a arena[int]
	a.insert(1)
	a.drain(func(int) {})

	// The reserved slot 0 was drained away too; the next insert must not
	// land there, or its handle would be the invalid sentinel.
	h := a.insert(42)
	if h == 0 {
		t.Fatal("insert after drain returned the invalid sentinel")
	}
	if v, ok := a.lookup(h); !ok || *v != 42 {
		t.Fatalf("lookup after drain = %v, %v", v, ok)
	}
}

func TestArenaDrain(t *testing.T) {
	var a arena[int]
	a.insert(1)
	h := a.insert(2)
	a.insert(3)
	a.remove(h)

	var sum int
	a.drain(func(v int) { sum += v })
	if sum != 4 {
		t.Errorf("drained sum = %d, want 4", sum)
	}
	if a.len() != 0 {
		t.Errorf("len after drain = %d", a.len())
	}
}
