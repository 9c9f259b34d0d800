package lifecycle

import (
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	simerrors "lifeworld/internal/errors"
)

// Object is a value under lifetime tracking. Objects are created by
// Registry.Register and belong to exactly one registry.
type Object[T any] struct {
	value T
	reg   *Registry[T]
	id    ID
	refs  int64
	state State
}

// ID returns the registry-assigned identifier.
func (o *Object[T]) ID() ID { return o.id }

// Refs returns the current reference count.
func (o *Object[T]) Refs() int64 {
	o.reg.mu.Lock()
	defer o.reg.mu.Unlock()
	return o.refs
}

// State returns the current lifecycle state.
func (o *Object[T]) State() State {
	o.reg.mu.Lock()
	defer o.reg.mu.Unlock()
	return o.state
}

type options struct {
	logger    *zap.Logger
	observers []Observer
}

// Option configures a Registry.
type Option func(*options)

// WithLogger sets the logger used for leak diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithObserver subscribes an observer at construction time.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}

// Registry tracks live and pending objects of one value type.
type Registry[T any] struct {
	live      map[ID]*Object[T]
	logger    *zap.Logger
	pending   []*Object[T]
	observers []Observer
	mu        sync.Mutex
	obsMu     sync.RWMutex
	nextID    ID
	reclaimed uint64
	leaked    uint64
}

// NewRegistry creates an empty registry.
func NewRegistry[T any](opts ...Option) *Registry[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return &Registry[T]{
		live:      make(map[ID]*Object[T]),
		logger:    o.logger,
		observers: o.observers,
	}
}

// Register places value in the live set with a reference count of zero.
// The first bound handle takes the count to one.
func (r *Registry[T]) Register(value T) *Object[T] {
	r.mu.Lock()
	r.nextID++
	obj := &Object[T]{
		value: value,
		reg:   r,
		id:    r.nextID,
		state: StateLive,
	}
	r.live[obj.id] = obj
	r.mu.Unlock()

	r.notify(Event{Type: EventRegistered, ID: obj.id, Value: value})
	return obj
}

// Release drops one reference. When the count reaches zero the object
// moves from live to pending.
func (r *Registry[T]) Release(o *Object[T]) error {
	return r.release("registry.release", o)
}

// releaseLocked must be called with r.mu held. It returns the pending event
// to deliver once the lock is dropped.
func (r *Registry[T]) releaseLocked(op string, o *Object[T]) (*Event, error) {
	if err := r.checkOwned(op, o); err != nil {
		return nil, err
	}
	switch o.state {
	case StateReclaimed:
		return nil, simerrors.UseAfterReclaim(op, uint64(o.id))
	case StatePending:
		return nil, simerrors.DoubleRelease(op, uint64(o.id))
	}
	if o.refs <= 0 {
		return nil, simerrors.DoubleRelease(op, uint64(o.id))
	}

	o.refs--
	if o.refs > 0 {
		return nil, nil
	}

	delete(r.live, o.id)
	o.state = StatePending
	r.pending = append(r.pending, o)
	return &Event{Type: EventPending, ID: o.id, Value: o.value}, nil
}

// retainLocked must be called with r.mu held.
func (r *Registry[T]) retainLocked(op string, o *Object[T]) error {
	if err := r.checkOwned(op, o); err != nil {
		return err
	}
	if o.state != StateLive {
		return simerrors.UseAfterReclaim(op, uint64(o.id))
	}
	o.refs++
	return nil
}

func (r *Registry[T]) checkOwned(op string, o *Object[T]) error {
	if o == nil || o.reg != r {
		return simerrors.ForeignObject(op)
	}
	return nil
}

// ReclaimPending destroys every pending object in the order they became
// pending and returns how many were destroyed. Reclaim runs outside the
// registry lock, so a value may release handles it holds; objects made
// pending that way are destroyed by the same call.
func (r *Registry[T]) ReclaimPending() int {
	n := 0
	for {
		r.mu.Lock()
		batch := r.takePendingLocked()
		r.mu.Unlock()

		if len(batch) == 0 {
			return n
		}
		n += len(batch)
		for _, o := range batch {
			r.finalize(o, Event{Type: EventReclaimed, ID: o.id, Value: o.value})
		}
	}
}

func (r *Registry[T]) takePendingLocked() []*Object[T] {
	if len(r.pending) == 0 {
		return nil
	}
	batch := r.pending
	r.pending = nil
	for _, o := range batch {
		r.destroyLocked(o)
	}
	return batch
}

// ReclaimAll reclaims pending objects and then forcibly destroys every live
// object. With emitDiagnostics set, each forced destruction is logged at
// warn level and reported to observers as EventLeaked. Intended for process
// shutdown only.
func (r *Registry[T]) ReclaimAll(emitDiagnostics bool) int {
	n := r.ReclaimPending()

	r.mu.Lock()
	ids := make([]ID, 0, len(r.live))
	for id := range r.live {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	batch := make([]*Object[T], 0, len(ids))
	events := make([]Event, 0, len(ids))
	for _, id := range ids {
		o := r.live[id]
		ev := Event{Type: EventReclaimed, ID: o.id, Refs: o.refs, Value: o.value}
		delete(r.live, id)
		r.destroyLocked(o)
		if emitDiagnostics {
			r.leaked++
			ev.Type = EventLeaked
		}
		batch = append(batch, o)
		events = append(events, ev)
	}
	r.mu.Unlock()

	for i, o := range batch {
		if emitDiagnostics {
			r.logLeak(o, events[i].Refs)
		}
		r.finalize(o, events[i])
	}
	return n + len(batch) + r.ReclaimPending()
}

// destroyLocked marks o reclaimed. The value's Reclaim hook runs later in
// finalize, once the lock is released.
func (r *Registry[T]) destroyLocked(o *Object[T]) {
	o.state = StateReclaimed
	o.refs = 0
	r.reclaimed++
}

func (r *Registry[T]) finalize(o *Object[T], ev Event) {
	if rc, ok := any(o.value).(Reclaimer); ok {
		rc.Reclaim()
	}
	r.notify(ev)
}

func (r *Registry[T]) logLeak(o *Object[T], refs int64) {
	fields := []zap.Field{
		zap.Uint64("object_id", uint64(o.id)),
		zap.Int64("refs", refs),
		zap.String("type", fmt.Sprintf("%T", o.value)),
	}
	if s, ok := any(o.value).(Sizer); ok {
		fields = append(fields, zap.Uint64("bytes", uint64(s.Size())))
	}
	r.logger.Warn("reclaiming live object at shutdown", fields...)
}

// Live returns the number of live objects.
func (r *Registry[T]) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Pending returns the number of objects awaiting reclamation.
func (r *Registry[T]) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// IsLive reports whether o is in this registry's live set.
func (r *Registry[T]) IsLive(o *Object[T]) bool {
	if o == nil || o.reg != r {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return o.state == StateLive
}

// IsPending reports whether o is in this registry's pending set.
func (r *Registry[T]) IsPending(o *Object[T]) bool {
	if o == nil || o.reg != r {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return o.state == StatePending
}

// Stats returns a snapshot of the registry counters.
func (r *Registry[T]) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		Registered: uint64(r.nextID),
		Reclaimed:  r.reclaimed,
		Leaked:     r.leaked,
		Live:       len(r.live),
		Pending:    len(r.pending),
	}
}

// Subscribe adds an observer for lifecycle events.
func (r *Registry[T]) Subscribe(o Observer) {
	if o == nil {
		return
	}
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

func (r *Registry[T]) notify(e Event) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnObjectEvent(e)
	}
}
