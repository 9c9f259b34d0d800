package lifecycle

import (
	"reflect"

	simerrors "lifeworld/internal/errors"
)

// Handle is a counted reference to a managed object. The zero value and
// NewHandle both produce an empty handle.
type Handle[T any] struct {
	obj *Object[T]
}

// NewHandle returns an empty handle.
func NewHandle[T any]() *Handle[T] {
	return &Handle[T]{}
}

// Bind returns a handle that holds one reference to o.
func Bind[T any](o *Object[T]) (*Handle[T], error) {
	h := NewHandle[T]()
	if err := h.rebind("handle.bind", o); err != nil {
		return nil, err
	}
	return h, nil
}

// Set rebinds the handle to o. A nil o empties the handle.
func (h *Handle[T]) Set(o *Object[T]) error {
	if h == nil {
		return simerrors.NilHandle("handle.set", typeName[T]())
	}
	return h.rebind("handle.set", o)
}

// Assign rebinds the handle to the referent of src.
func (h *Handle[T]) Assign(src *Handle[T]) error {
	if h == nil {
		return simerrors.NilHandle("handle.assign", typeName[T]())
	}
	var o *Object[T]
	if src != nil {
		o = src.obj
	}
	return h.rebind("handle.assign", o)
}

// Clone returns a new handle to the same referent.
func (h *Handle[T]) Clone() (*Handle[T], error) {
	c := NewHandle[T]()
	if h == nil || h.obj == nil {
		return c, nil
	}
	if err := c.rebind("handle.clone", h.obj); err != nil {
		return nil, err
	}
	return c, nil
}

// Release drops the handle's reference and leaves it empty. Releasing an
// empty handle does nothing.
func (h *Handle[T]) Release() error {
	if h == nil || h.obj == nil {
		return nil
	}
	old := h.obj
	h.obj = nil
	return old.reg.release("handle.release", old)
}

// rebind retains o before releasing the current referent. When both live
// in the same registry the pair runs under a single lock.
func (h *Handle[T]) rebind(op string, o *Object[T]) error {
	old := h.obj

	if o == nil {
		h.obj = nil
		if old == nil {
			return nil
		}
		return old.reg.release(op, old)
	}
	if o.reg == nil {
		return simerrors.ForeignObject(op)
	}

	if old != nil && old.reg == o.reg {
		r := o.reg
		r.mu.Lock()
		if err := r.retainLocked(op, o); err != nil {
			r.mu.Unlock()
			return err
		}
		h.obj = o
		ev, err := r.releaseLocked(op, old)
		r.mu.Unlock()

		if ev != nil {
			r.notify(*ev)
		}
		return err
	}

	o.reg.mu.Lock()
	err := o.reg.retainLocked(op, o)
	o.reg.mu.Unlock()
	if err != nil {
		return err
	}
	h.obj = o
	if old == nil {
		return nil
	}
	return old.reg.release(op, old)
}

// Get dereferences the handle.
func (h *Handle[T]) Get() (T, error) {
	var zero T
	if h == nil || h.obj == nil {
		return zero, simerrors.NilHandle("handle.get", typeName[T]())
	}
	o := h.obj
	o.reg.mu.Lock()
	defer o.reg.mu.Unlock()
	if o.state != StateLive {
		return zero, simerrors.UseAfterReclaim("handle.get", uint64(o.id))
	}
	return o.value, nil
}

// Update calls fn with a pointer to the referent's value. fn runs under
// the registry lock and must not call back into the registry.
func (h *Handle[T]) Update(fn func(*T)) error {
	if h == nil || h.obj == nil {
		return simerrors.NilHandle("handle.update", typeName[T]())
	}
	o := h.obj
	o.reg.mu.Lock()
	defer o.reg.mu.Unlock()
	if o.state != StateLive {
		return simerrors.UseAfterReclaim("handle.update", uint64(o.id))
	}
	fn(&o.value)
	return nil
}

// Valid reports whether the handle refers to a live object.
func (h *Handle[T]) Valid() bool {
	if h == nil || h.obj == nil {
		return false
	}
	return h.obj.State() == StateLive
}

// Equal reports whether both handles refer to the same object. Two empty
// handles are equal.
func (h *Handle[T]) Equal(other *Handle[T]) bool {
	return h.Object() == other.Object()
}

// Refers reports whether the handle refers to o.
func (h *Handle[T]) Refers(o *Object[T]) bool {
	return h.Object() == o
}

// Object returns the referent, or nil for an empty handle.
func (h *Handle[T]) Object() *Object[T] {
	if h == nil {
		return nil
	}
	return h.obj
}

func (r *Registry[T]) release(op string, o *Object[T]) error {
	r.mu.Lock()
	ev, err := r.releaseLocked(op, o)
	r.mu.Unlock()

	if ev != nil {
		r.notify(*ev)
	}
	return err
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
