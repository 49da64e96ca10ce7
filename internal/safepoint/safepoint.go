// Package safepoint is a goroutine-native reimplementation of the
// runtime's stop-the-world protocol. Generated C code calls the
// equivalent rt_safepoint_* ABI; this package lets the same protocol
// be unit-tested in Go, with goroutines standing in for native mutator
// threads.
//
// The state and transitions mirror the C runtime exactly: a mutex
// guards threadCount/parkedCount/epoch, two condition variables play
// the role of pthread_cond_t allParked/gcDone, and requested is the
// atomic flag mutators poll without taking the lock.
package safepoint

import (
	"sync"
	"sync/atomic"
)

// Safepoint coordinates one stop-the-world cycle among any number of
// registered goroutines, exactly as arena_safepoint.c coordinates
// native threads.
type Safepoint struct {
	requested atomic.Bool

	mu          sync.Mutex
	allParked   *sync.Cond
	gcDone      *sync.Cond
	threadCount int
	parkedCount int
	epoch       int
}

// New returns an initialized Safepoint, equivalent to calling
// rt_safepoint_init.
func New() *Safepoint {
	sp := &Safepoint{}
	sp.allParked = sync.NewCond(&sp.mu)
	sp.gcDone = sync.NewCond(&sp.mu)
	return sp
}

// Register records one more mutator goroutine, mirroring
// rt_safepoint_thread_register. Each registered goroutine must later
// call Deregister exactly once.
func (sp *Safepoint) Register() {
	sp.mu.Lock()
	sp.threadCount++
	sp.mu.Unlock()
}

// Deregister removes a previously registered goroutine. If a
// stop-the-world is in progress it may unblock the requester, since
// one fewer thread now needs to reach a safepoint.
func (sp *Safepoint) Deregister() {
	sp.mu.Lock()
	sp.threadCount--
	if sp.requested.Load() {
		sp.allParked.Signal()
	}
	sp.mu.Unlock()
}

// ThreadCount reports the number of currently registered goroutines.
func (sp *Safepoint) ThreadCount() int {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.threadCount
}

// Poll is the cheap fast path generated code calls at call sites, back
// edges, and allocations: if no stop-the-world has been requested it
// returns immediately, otherwise it parks.
func (sp *Safepoint) Poll() {
	if !sp.requested.Load() {
		return
	}
	sp.Park()
}

// Park blocks the calling goroutine until the current GC epoch
// advances, signaling the requester once the last expected mutator has
// parked. It waits only while a stop-the-world is requested; called
// with no request pending, it returns immediately.
func (sp *Safepoint) Park() {
	sp.mu.Lock()
	sp.parkedCount++
	if sp.parkedCount >= sp.threadCount-1 {
		sp.allParked.Signal()
	}
	myEpoch := sp.epoch
	for sp.epoch == myEpoch && sp.requested.Load() {
		sp.gcDone.Wait()
	}
	sp.parkedCount--
	sp.mu.Unlock()
}

// RequestSTW sets the safepoint flag and blocks until every other
// registered goroutine has parked. excludeSelf should be true when the
// caller is itself a registered mutator (it cannot park on itself), and
// false when called from an unregistered coordinator goroutine.
func (sp *Safepoint) RequestSTW(excludeSelf bool) {
	sp.mu.Lock()
	sp.requested.Store(true)
	exclude := 0
	if excludeSelf {
		exclude = 1
	}
	for sp.parkedCount < sp.threadCount-exclude {
		sp.allParked.Wait()
	}
	sp.mu.Unlock()
}

// ReleaseSTW advances the epoch, clears the flag, and wakes every
// parked goroutine.
func (sp *Safepoint) ReleaseSTW() {
	sp.mu.Lock()
	sp.epoch++
	sp.requested.Store(false)
	sp.gcDone.Broadcast()
	sp.mu.Unlock()
}

// Epoch reports the current GC epoch, monotonically increasing.
func (sp *Safepoint) Epoch() int {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.epoch
}

// EnterNative brackets a blocking native call: the calling goroutine is
// treated as parked from the collector's perspective for the duration,
// so a concurrent RequestSTW does not wait on it.
func (sp *Safepoint) EnterNative() {
	sp.mu.Lock()
	sp.parkedCount++
	if sp.requested.Load() && sp.parkedCount >= sp.threadCount-1 {
		sp.allParked.Signal()
	}
	sp.mu.Unlock()
}

// LeaveNative ends a native-call bracket. If a stop-the-world is in
// progress, the goroutine re-parks and waits for the epoch to advance
// before resuming managed code, matching the C implementation's
// re-park on return from native code.
func (sp *Safepoint) LeaveNative() {
	sp.mu.Lock()
	sp.parkedCount--
	if sp.requested.Load() {
		sp.parkedCount++
		myEpoch := sp.epoch
		for sp.epoch == myEpoch && sp.requested.Load() {
			sp.gcDone.Wait()
		}
		sp.parkedCount--
	}
	sp.mu.Unlock()
}
