package lifecycle

// ID identifies an object within its registry. IDs start at 1 and are
// never reused.
type ID uint64

// State is the lifecycle state of a managed object.
type State uint8

const (
	StateLive State = iota
	StatePending
	StateReclaimed
)

func (s State) String() string {
	switch s {
	case StateLive:
		return "live"
	case StatePending:
		return "pending"
	case StateReclaimed:
		return "reclaimed"
	default:
		return "unknown"
	}
}

// EventType identifies a lifecycle transition.
type EventType uint8

const (
	EventRegistered EventType = iota
	EventPending
	EventReclaimed
	EventLeaked
)

func (t EventType) String() string {
	switch t {
	case EventRegistered:
		return "registered"
	case EventPending:
		return "pending"
	case EventReclaimed:
		return "reclaimed"
	case EventLeaked:
		return "leaked"
	default:
		return "unknown"
	}
}

// Event describes a lifecycle transition of one object.
type Event struct {
	Value any
	ID    ID
	Refs  int64
	Type  EventType
}

// Observer receives lifecycle events. Events are delivered after the
// registry lock is released, in the order the transitions happened.
type Observer interface {
	OnObjectEvent(Event)
}

// Reclaimer is optionally implemented by managed values that need cleanup
// when the registry destroys them. Reclaim is called without the registry
// lock held and may release handles the value owns.
type Reclaimer interface {
	Reclaim()
}

// Sizer is optionally implemented by managed values that can report their
// footprint in bytes for leak diagnostics.
type Sizer interface {
	Size() uintptr
}

// Stats is a point-in-time view of registry counters.
type Stats struct {
	Registered uint64
	Reclaimed  uint64
	Leaked     uint64
	Live       int
	Pending    int
}
