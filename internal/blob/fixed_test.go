package blob

import (
	"errors"
	"testing"

	simerrors "lifeworld/internal/errors"
)

func TestFixedBoundsChecked(t *testing.T) {
	buf, err := NewFixed[int](3)
	if err != nil {
		t.Fatalf("NewFixed: %v", err)
	}
	if buf.Len() != 3 {
		t.Fatalf("Len = %d, want 3", buf.Len())
	}

	if err := buf.Set(2, 9); err != nil {
		t.Fatalf("Set in range: %v", err)
	}
	if v, err := buf.At(2); err != nil || v != 9 {
		t.Fatalf("At(2) = %d, %v; want 9, nil", v, err)
	}

	for _, idx := range []int{-1, 3, 100} {
		if _, err := buf.At(idx); !errors.Is(err, simerrors.ErrOutOfBounds) {
			t.Errorf("At(%d) err = %v, want out of bounds", idx, err)
		}
		if err := buf.Set(idx, 1); !errors.Is(err, simerrors.ErrOutOfBounds) {
			t.Errorf("Set(%d) err = %v, want out of bounds", idx, err)
		}
	}
}

func TestNewFixedRejectsNegativeCapacity(t *testing.T) {
	if _, err := NewFixed[string](-1); !errors.Is(err, simerrors.ErrAllocation) {
		t.Fatalf("err = %v, want allocation error", err)
	}
	empty, err := NewFixed[string](0)
	if err != nil {
		t.Fatalf("zero capacity should be allowed: %v", err)
	}
	if _, err := empty.At(0); err == nil {
		t.Fatal("At(0) on empty buffer should fail")
	}
}
