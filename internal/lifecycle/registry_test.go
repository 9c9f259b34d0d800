package lifecycle

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	simerrors "lifeworld/internal/errors"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnObjectEvent(e Event) {
	o.events = append(o.events, e)
}

type widget struct {
	name      string
	reclaimed bool
}

func (w *widget) Reclaim()      { w.reclaimed = true }
func (w *widget) Size() uintptr { return 24 }

func TestRegistry_RegisterStartsLiveWithZeroRefs(t *testing.T) {
	reg := NewRegistry[string]()
	obj := reg.Register("a")

	if obj.ID() != 1 {
		t.Fatalf("Expected first ID 1, got %d", obj.ID())
	}
	if obj.Refs() != 0 {
		t.Fatalf("Expected 0 refs, got %d", obj.Refs())
	}
	if !reg.IsLive(obj) || reg.IsPending(obj) {
		t.Fatal("Registered object should be live and not pending")
	}
	if reg.Live() != 1 || reg.Pending() != 0 {
		t.Fatalf("live=%d pending=%d, want 1/0", reg.Live(), reg.Pending())
	}
}

func TestRegistry_ReleaseMovesToPendingAtZero(t *testing.T) {
	reg := NewRegistry[string]()
	obj := reg.Register("a")

	h1, err := Bind(obj)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	h2, err := h1.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}

	if err := reg.Release(obj); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if !reg.IsLive(obj) {
		t.Fatal("Object with one remaining ref should stay live")
	}

	if err := reg.Release(obj); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if reg.IsLive(obj) || !reg.IsPending(obj) {
		t.Fatal("Object should be pending once the count reaches zero")
	}

	// The handles still point at the object but the registry forbids reuse.
	if _, err := h1.Get(); !errors.Is(err, simerrors.ErrUseAfterReclaim) {
		t.Fatalf("Get on pending referent: err = %v", err)
	}
	_ = h2
}

func TestRegistry_ReleaseErrors(t *testing.T) {
	reg := NewRegistry[int]()
	other := NewRegistry[int]()
	obj := reg.Register(1)

	if err := reg.Release(obj); !errors.Is(err, simerrors.ErrDoubleRelease) {
		t.Fatalf("Release with zero refs: err = %v, want double release", err)
	}
	if err := other.Release(obj); !errors.Is(err, simerrors.ErrForeignObject) {
		t.Fatalf("Release on other registry: err = %v, want foreign object", err)
	}
	if err := reg.Release(nil); !errors.Is(err, simerrors.ErrForeignObject) {
		t.Fatalf("Release(nil): err = %v, want foreign object", err)
	}

	h, _ := Bind(obj)
	if err := h.Release(); err != nil {
		t.Fatalf("Release handle: %v", err)
	}
	if err := reg.Release(obj); !errors.Is(err, simerrors.ErrDoubleRelease) {
		t.Fatalf("Release of pending object: err = %v, want double release", err)
	}

	reg.ReclaimPending()
	if err := reg.Release(obj); !errors.Is(err, simerrors.ErrUseAfterReclaim) {
		t.Fatalf("Release of reclaimed object: err = %v, want use after reclaim", err)
	}
}

func TestRegistry_ReclaimPending(t *testing.T) {
	reg := NewRegistry[*widget]()
	obs := &testObserver{}
	reg.Subscribe(obs)

	a := &widget{name: "a"}
	b := &widget{name: "b"}
	oa := reg.Register(a)
	ob := reg.Register(b)

	ha, _ := Bind(oa)
	hb, _ := Bind(ob)
	_ = hb.Release()
	_ = ha.Release()

	if n := reg.ReclaimPending(); n != 2 {
		t.Fatalf("ReclaimPending = %d, want 2", n)
	}
	if !a.reclaimed || !b.reclaimed {
		t.Fatal("Reclaim should be called on every destroyed value")
	}
	if reg.Pending() != 0 {
		t.Fatalf("pending = %d after reclaim", reg.Pending())
	}
	if oa.State() != StateReclaimed {
		t.Fatalf("state = %v, want reclaimed", oa.State())
	}

	// Reclaimed in the order they became pending.
	var reclaimed []ID
	for _, e := range obs.events {
		if e.Type == EventReclaimed {
			reclaimed = append(reclaimed, e.ID)
		}
	}
	if len(reclaimed) != 2 || reclaimed[0] != ob.ID() || reclaimed[1] != oa.ID() {
		t.Fatalf("reclaim order = %v, want [%d %d]", reclaimed, ob.ID(), oa.ID())
	}

	if n := reg.ReclaimPending(); n != 0 {
		t.Fatalf("second ReclaimPending = %d, want 0", n)
	}
}

func TestRegistry_ReclaimAllEmitsDiagnostics(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	obs := &testObserver{}
	reg := NewRegistry[*widget](WithLogger(zap.New(core)), WithObserver(obs))

	pending := reg.Register(&widget{name: "pending"})
	hp, _ := Bind(pending)
	_ = hp.Release()

	first := reg.Register(&widget{name: "first"})
	second := reg.Register(&widget{name: "second"})
	h1, _ := Bind(first)
	h2, _ := Bind(second)
	h3, _ := h2.Clone()

	if n := reg.ReclaimAll(true); n != 3 {
		t.Fatalf("ReclaimAll = %d, want 3", n)
	}
	if reg.Live() != 0 || reg.Pending() != 0 {
		t.Fatal("Registry should be empty after ReclaimAll")
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 leak warnings, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["object_id"] != uint64(first.ID()) {
		t.Errorf("first warning object_id = %v, want %d", fields["object_id"], first.ID())
	}
	if fields["refs"] != int64(1) {
		t.Errorf("first warning refs = %v, want 1", fields["refs"])
	}
	if fields["type"] != "*lifecycle.widget" {
		t.Errorf("type = %v", fields["type"])
	}
	if fields["bytes"] != uint64(24) {
		t.Errorf("bytes = %v, want 24", fields["bytes"])
	}
	if got := entries[1].ContextMap()["refs"]; got != int64(2) {
		t.Errorf("second warning refs = %v, want 2", got)
	}

	stats := reg.Stats()
	if stats.Registered != 3 || stats.Reclaimed != 3 || stats.Leaked != 2 {
		t.Fatalf("stats = %+v", stats)
	}

	var leaked int
	for _, e := range obs.events {
		if e.Type == EventLeaked {
			leaked++
		}
	}
	if leaked != 2 {
		t.Fatalf("Expected 2 leaked events, got %d", leaked)
	}

	for _, h := range []*Handle[*widget]{h1, h2, h3} {
		if h.Valid() {
			t.Fatal("Handles should be invalid after forced teardown")
		}
		if _, err := h.Get(); !errors.Is(err, simerrors.ErrUseAfterReclaim) {
			t.Fatalf("Get after teardown: err = %v", err)
		}
	}
}

func TestRegistry_ReclaimAllSilent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	reg := NewRegistry[int](WithLogger(zap.New(core)))
	h, _ := Bind(reg.Register(7))

	if n := reg.ReclaimAll(false); n != 1 {
		t.Fatalf("ReclaimAll = %d, want 1", n)
	}
	if logs.Len() != 0 {
		t.Fatalf("Expected no log output, got %d entries", logs.Len())
	}
	if reg.Stats().Leaked != 0 {
		t.Fatal("Silent teardown should not count leaks")
	}
	if h.Valid() {
		t.Fatal("Handle should be invalid after teardown")
	}
}

func TestRegistry_ObserverSeesTransitions(t *testing.T) {
	obs := &testObserver{}
	reg := NewRegistry[string](WithObserver(obs))

	h, _ := Bind(reg.Register("x"))
	_ = h.Release()
	reg.ReclaimPending()

	want := []EventType{EventRegistered, EventPending, EventReclaimed}
	if len(obs.events) != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), len(obs.events))
	}
	for i, typ := range want {
		if obs.events[i].Type != typ {
			t.Fatalf("event %d = %v, want %v", i, obs.events[i].Type, typ)
		}
	}
}

// holder owns a handle to another managed value and drops it on reclaim.
type holder struct {
	child     *Handle[*holder]
	reclaimed bool
}

func (h *holder) Reclaim() {
	h.reclaimed = true
	if h.child != nil {
		_ = h.child.Release()
	}
}

func newParentChild(t *testing.T, reg *Registry[*holder]) (*holder, *holder, *Handle[*holder]) {
	t.Helper()
	child := &holder{}
	ch, err := Bind(reg.Register(child))
	if err != nil {
		t.Fatalf("Bind child: %v", err)
	}
	parent := &holder{child: ch}
	ph, err := Bind(reg.Register(parent))
	if err != nil {
		t.Fatalf("Bind parent: %v", err)
	}
	return parent, child, ph
}

func within(t *testing.T, what string, fn func() int) int {
	t.Helper()
	done := make(chan int, 1)
	go func() { done <- fn() }()
	select {
	case n := <-done:
		return n
	case <-time.After(2 * time.Second):
		t.Fatalf("%s did not return", what)
		return 0
	}
}

func TestRegistry_ReclaimReleasesOwnedHandles(t *testing.T) {
	reg := NewRegistry[*holder]()
	parent, child, ph := newParentChild(t, reg)
	if err := ph.Release(); err != nil {
		t.Fatalf("Release parent: %v", err)
	}

	if n := within(t, "ReclaimPending", reg.ReclaimPending); n != 2 {
		t.Fatalf("ReclaimPending = %d, want parent and child", n)
	}
	if !parent.reclaimed || !child.reclaimed {
		t.Fatal("Both parent and child should be reclaimed in one pass")
	}
	if reg.Live() != 0 || reg.Pending() != 0 {
		t.Fatalf("live=%d pending=%d, want empty registry", reg.Live(), reg.Pending())
	}
}

func TestRegistry_ReclaimAllWithOwnedHandles(t *testing.T) {
	reg := NewRegistry[*holder]()
	parent, child, _ := newParentChild(t, reg)

	n := within(t, "ReclaimAll", func() int { return reg.ReclaimAll(false) })
	if n != 2 {
		t.Fatalf("ReclaimAll = %d, want 2", n)
	}
	if !parent.reclaimed || !child.reclaimed {
		t.Fatal("ReclaimAll should reclaim both values")
	}
	if stats := reg.Stats(); stats.Reclaimed != 2 || stats.Live != 0 || stats.Pending != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestRegistry_ConcurrentBindRelease(t *testing.T) {
	tests := []struct {
		name    string
		objects int
		workers int
		rounds  int
	}{
		{name: "single object", objects: 1, workers: 8, rounds: 200},
		{name: "many objects", objects: 16, workers: 8, rounds: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry[int]()
			objs := make([]*Object[int], tt.objects)
			anchors := make([]*Handle[int], tt.objects)
			for i := range objs {
				objs[i] = reg.Register(i)
				h, err := Bind(objs[i])
				if err != nil {
					t.Fatalf("Bind: %v", err)
				}
				anchors[i] = h
			}

			var wg sync.WaitGroup
			errs := make(chan error, tt.workers)
			for w := 0; w < tt.workers; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					for i := 0; i < tt.rounds; i++ {
						h, err := Bind(objs[(w+i)%len(objs)])
						if err != nil {
							errs <- err
							return
						}
						c, err := h.Clone()
						if err != nil {
							errs <- err
							return
						}
						tmp, err := Bind(reg.Register(-1))
						if err != nil {
							errs <- err
							return
						}
						for _, rel := range []*Handle[int]{h, c, tmp} {
							if err := rel.Release(); err != nil {
								errs <- err
								return
							}
						}
						reg.ReclaimPending()
					}
				}(w)
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				t.Fatalf("worker: %v", err)
			}

			reg.ReclaimPending()
			if got := reg.Live() + reg.Pending(); got != tt.objects {
				t.Fatalf("live+pending = %d, want %d", got, tt.objects)
			}
			for i, o := range objs {
				if o.Refs() != 1 {
					t.Fatalf("object %d refs = %d, want 1", i, o.Refs())
				}
			}
			stats := reg.Stats()
			transient := uint64(tt.workers * tt.rounds)
			if stats.Registered != uint64(tt.objects)+transient || stats.Reclaimed != transient {
				t.Fatalf("stats = %+v", stats)
			}
			for _, h := range anchors {
				_ = h.Release()
			}
			if reg.Pending() != tt.objects {
				t.Fatalf("pending = %d after releasing anchors", reg.Pending())
			}
		})
	}
}
