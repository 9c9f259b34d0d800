// Package blob provides bounds-checked fixed-capacity storage.
package blob

import (
	simerrors "lifeworld/internal/errors"
)

// Fixed is a fixed-capacity buffer that rejects access outside its extent.
type Fixed[T any] struct {
	data []T
}

// NewFixed allocates a buffer holding n zero values.
func NewFixed[T any](n int) (*Fixed[T], error) {
	if n < 0 {
		return nil, simerrors.Allocation("blob.new", "negative capacity %d", n)
	}
	return &Fixed[T]{data: make([]T, n)}, nil
}

// Len returns the capacity of the buffer.
func (f *Fixed[T]) Len() int { return len(f.data) }

// At returns the element at index i.
func (f *Fixed[T]) At(i int) (T, error) {
	if i < 0 || i >= len(f.data) {
		var zero T
		return zero, simerrors.OutOfBounds("blob.at", i, len(f.data))
	}
	return f.data[i], nil
}

// Set stores v at index i.
func (f *Fixed[T]) Set(i int, v T) error {
	if i < 0 || i >= len(f.data) {
		return simerrors.OutOfBounds("blob.set", i, len(f.data))
	}
	f.data[i] = v
	return nil
}
