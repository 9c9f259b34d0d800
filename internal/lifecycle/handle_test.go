package lifecycle

import (
	"errors"
	"testing"

	simerrors "lifeworld/internal/errors"
)

func TestHandle_NHandlesReleasedMakesPending(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		reg := NewRegistry[string]()
		obj := reg.Register("shared")

		handles := make([]*Handle[string], n)
		for i := range handles {
			h, err := Bind(obj)
			if err != nil {
				t.Fatalf("Bind: %v", err)
			}
			handles[i] = h
		}
		if obj.Refs() != int64(n) {
			t.Fatalf("n=%d: refs = %d", n, obj.Refs())
		}

		for i, h := range handles {
			if err := h.Release(); err != nil {
				t.Fatalf("Release: %v", err)
			}
			if i < n-1 && !reg.IsLive(obj) {
				t.Fatalf("n=%d: object left live set after %d releases", n, i+1)
			}
		}

		if reg.IsLive(obj) || !reg.IsPending(obj) {
			t.Fatalf("n=%d: object should be pending and not live", n)
		}
	}
}

func TestHandle_EmptyDereference(t *testing.T) {
	h := NewHandle[int]()
	if _, err := h.Get(); !errors.Is(err, simerrors.ErrNilHandle) {
		t.Fatalf("Get on empty handle: err = %v, want nil handle", err)
	}
	if err := h.Update(func(*int) {}); !errors.Is(err, simerrors.ErrNilHandle) {
		t.Fatalf("Update on empty handle: err = %v, want nil handle", err)
	}
	if h.Valid() {
		t.Fatal("Empty handle should not be valid")
	}
	if err := h.Release(); err != nil {
		t.Fatalf("Release of empty handle: %v", err)
	}

	var nilHandle *Handle[int]
	if _, err := nilHandle.Get(); !errors.Is(err, simerrors.ErrNilHandle) {
		t.Fatalf("Get on nil handle: err = %v", err)
	}
}

func TestHandle_SelfAssignmentKeepsObjectLive(t *testing.T) {
	reg := NewRegistry[string]()
	obj := reg.Register("self")
	h, _ := Bind(obj)

	if err := h.Assign(h); err != nil {
		t.Fatalf("Assign to self: %v", err)
	}
	if err := h.Set(obj); err != nil {
		t.Fatalf("Set same object: %v", err)
	}
	if !reg.IsLive(obj) || obj.Refs() != 1 {
		t.Fatalf("live=%v refs=%d, want live with 1 ref", reg.IsLive(obj), obj.Refs())
	}
	if reg.Pending() != 0 {
		t.Fatal("Self assignment must not park the object in pending")
	}
}

func TestHandle_RebindMovesCounts(t *testing.T) {
	reg := NewRegistry[string]()
	a := reg.Register("a")
	b := reg.Register("b")

	h, _ := Bind(a)
	if err := h.Set(b); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !reg.IsPending(a) {
		t.Fatal("Old referent should be pending after rebind")
	}
	if b.Refs() != 1 || !h.Refers(b) {
		t.Fatalf("new referent refs = %d", b.Refs())
	}

	other, _ := Bind(b)
	empty := NewHandle[string]()
	if err := other.Assign(empty); err != nil {
		t.Fatalf("Assign empty: %v", err)
	}
	if other.Object() != nil {
		t.Fatal("Assigning an empty handle should empty the target")
	}
	if b.Refs() != 1 {
		t.Fatalf("refs = %d after dropping second handle, want 1", b.Refs())
	}

	if err := h.Set(nil); err != nil {
		t.Fatalf("Set(nil): %v", err)
	}
	if !reg.IsPending(b) {
		t.Fatal("Clearing the last handle should make the object pending")
	}
}

func TestHandle_RebindAcrossRegistries(t *testing.T) {
	r1 := NewRegistry[int]()
	r2 := NewRegistry[int]()
	a := r1.Register(1)
	b := r2.Register(2)

	h, _ := Bind(a)
	if err := h.Set(b); err != nil {
		t.Fatalf("Set across registries: %v", err)
	}
	if !r1.IsPending(a) || !r2.IsLive(b) {
		t.Fatal("Each registry should track its own object")
	}
	if v, err := h.Get(); err != nil || v != 2 {
		t.Fatalf("Get = %d, %v", v, err)
	}
}

func TestHandle_BindRejectsPendingAndForeign(t *testing.T) {
	reg := NewRegistry[int]()
	obj := reg.Register(1)
	h, _ := Bind(obj)
	_ = h.Release()

	if _, err := Bind(obj); !errors.Is(err, simerrors.ErrUseAfterReclaim) {
		t.Fatalf("Bind pending object: err = %v", err)
	}
	if _, err := Bind(&Object[int]{}); !errors.Is(err, simerrors.ErrForeignObject) {
		t.Fatalf("Bind unregistered object: err = %v", err)
	}
}

func TestHandle_UpdateAndEquality(t *testing.T) {
	reg := NewRegistry[int]()
	obj := reg.Register(10)
	h, _ := Bind(obj)
	c, _ := h.Clone()

	if err := h.Update(func(v *int) { *v += 5 }); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if v, _ := c.Get(); v != 15 {
		t.Fatalf("clone sees %d, want 15", v)
	}
	if !h.Equal(c) || !h.Refers(obj) {
		t.Fatal("Clone should equal the original and refer to the same object")
	}
	if h.Equal(NewHandle[int]()) {
		t.Fatal("Bound handle should not equal an empty handle")
	}
	if !NewHandle[int]().Equal(NewHandle[int]()) {
		t.Fatal("Two empty handles should be equal")
	}
}
