// Package lifecycle provides count-driven lifetime tracking for managed
// values.
//
// A Registry owns two disjoint sets of objects: live and pending. Objects
// enter the live set when registered and move to pending the moment their
// reference count drops from one to zero. Nothing is destroyed at that
// instant; destruction happens only on an explicit reclamation pass.
//
//	reg := lifecycle.NewRegistry[*Thing]()
//	obj := reg.Register(thing)
//
//	h, _ := lifecycle.Bind(obj) // refs = 1
//	c, _ := h.Clone()           // refs = 2
//	_ = h.Release()             // refs = 1
//	_ = c.Release()             // refs = 0, obj is now pending
//
//	reg.ReclaimPending() // obj is destroyed
//
// # Handles
//
// Handle is the counted reference. Go has no destructors or copy
// constructors, so the lifecycle is explicit: Bind or Set acquires, Clone
// copies, Assign copy-assigns and Release drops. Rebinding a handle retains
// the new referent before releasing the old one, so assigning a handle to
// itself never parks the object in pending.
//
// # Shutdown
//
// ReclaimAll destroys pending objects and then every live object regardless
// of outstanding references. It is meant for process exit only; any handle
// still bound afterwards reports ErrUseAfterReclaim.
//
// # Concurrency
//
// Every registry operation runs as one critical section under the registry
// mutex. A single Handle is not safe for concurrent rebinding.
package lifecycle
