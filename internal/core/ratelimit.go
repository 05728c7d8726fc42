package core

import "sync"

// slidingWindow counts admissions within a trailing window of fixed width.
type slidingWindow struct {
	stamps []int64
}

// admit prunes stamps at least width seconds old, then takes a slot if one is free.
func (w *slidingWindow) admit(now, width int64, limit int) bool {
	w.prune(now, width)
	if len(w.stamps) >= limit {
		return false
	}
	w.stamps = append(w.stamps, now)
	return true
}

func (w *slidingWindow) prune(now, width int64) {
	kept := w.stamps[:0]
	for _, ts := range w.stamps {
		if now-ts < width {
			kept = append(kept, ts)
		}
	}
	w.stamps = kept
}

// RateLimiter enforces the global and per-room admission windows.
// Rejection is a normal outcome, not an error.
type RateLimiter struct {
	clock Clock

	globalWidth int64
	globalLimit int
	roomWidth   int64
	roomLimit   int

	globalMu sync.Mutex
	global   slidingWindow

	roomsMu sync.Mutex
	rooms   map[string]*slidingWindow
}

// NewRateLimiter builds a limiter with the window sizes from limits.
func NewRateLimiter(clock Clock, limits Limits) *RateLimiter {
	limits = limits.withDefaults()
	if clock == nil {
		clock = SystemClock{}
	}
	return &RateLimiter{
		clock:       clock,
		globalWidth: seconds(limits.GlobalWindow),
		globalLimit: limits.GlobalLimit,
		roomWidth:   seconds(limits.RoomWindow),
		roomLimit:   limits.RoomLimit,
		rooms:       make(map[string]*slidingWindow),
	}
}

// TryAdmitGlobal takes one slot from the process-wide window.
func (r *RateLimiter) TryAdmitGlobal() bool {
	now := r.clock.Now()

	r.globalMu.Lock()
	defer r.globalMu.Unlock()
	return r.global.admit(now, r.globalWidth, r.globalLimit)
}

// TryAdmitRoom takes one slot from the window of roomID, creating it on first use.
func (r *RateLimiter) TryAdmitRoom(roomID string) bool {
	now := r.clock.Now()

	r.roomsMu.Lock()
	defer r.roomsMu.Unlock()
	w, ok := r.rooms[roomID]
	if !ok {
		w = &slidingWindow{}
		r.rooms[roomID] = w
	}
	return w.admit(now, r.roomWidth, r.roomLimit)
}

// Compact forgets room windows whose every stamp has aged out. Returns how many were dropped.
func (r *RateLimiter) Compact() int {
	now := r.clock.Now()

	r.roomsMu.Lock()
	defer r.roomsMu.Unlock()
	dropped := 0
	for id, w := range r.rooms {
		w.prune(now, r.roomWidth)
		if len(w.stamps) == 0 {
			delete(r.rooms, id)
			dropped++
		}
	}
	return dropped
}

// TrackedRooms reports how many room windows are currently held.
func (r *RateLimiter) TrackedRooms() int {
	r.roomsMu.Lock()
	defer r.roomsMu.Unlock()
	return len(r.rooms)
}
