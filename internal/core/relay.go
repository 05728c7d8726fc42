package core

import "fmt"

// Classifier reports whether a payload looks client-side encrypted.
type Classifier func(message string) bool

// Relay runs the admission pipeline for a send and exposes the read path.
type Relay struct {
	store    *Store
	limiter  *RateLimiter
	clock    Clock
	classify Classifier
	minRoom  int
}

// NewRelay wires a relay over shared store and limiter handles.
func NewRelay(store *Store, limiter *RateLimiter, clock Clock, classify Classifier, limits Limits) *Relay {
	limits = limits.withDefaults()
	if clock == nil {
		clock = SystemClock{}
	}
	if classify == nil {
		classify = func(string) bool { return true }
	}
	return &Relay{
		store:    store,
		limiter:  limiter,
		clock:    clock,
		classify: classify,
		minRoom:  limits.MinRoomIDLength,
	}
}

// Send admits content into roomID or returns a *CoreError explaining why not.
// The global slot is consumed even when a later check rejects the send.
func (r *Relay) Send(roomID, content string) error {
	if !r.limiter.TryAdmitGlobal() {
		return coreError(ErrCodeRateLimited, "Too many messages sent globally. Try again later.")
	}
	if !r.limiter.TryAdmitRoom(roomID) {
		return coreError(ErrCodeRateLimited, fmt.Sprintf("Too many messages sent to room %s. Try again later.", roomID))
	}
	if len(roomID) < r.minRoom {
		return coreError(ErrCodeInvalidInput, fmt.Sprintf("Room ID must be at least %d characters.", r.minRoom))
	}
	if !r.store.ValidateAndReserve(roomID, len(content)) {
		return coreError(ErrCodeInvalidInput, "Invalid message (too long or storage full).")
	}
	if !r.classify(content) {
		return coreError(ErrCodePolicyRejected, "Message is not encrypted. Please encrypt before sending.")
	}

	r.store.Append(roomID, []byte(content), r.clock.Now())
	return nil
}

// Messages returns a copy of the room's current messages.
func (r *Relay) Messages(roomID string) []Message {
	return r.store.Snapshot(roomID)
}

// Room returns a copy of the room's messages and whether the room is known.
func (r *Relay) Room(roomID string) ([]Message, bool) {
	return r.store.Lookup(roomID)
}

// Revision changes whenever the room's contents change.
func (r *Relay) Revision(roomID string) uint64 {
	return r.store.Revision(roomID)
}

// Stats exposes store counters.
func (r *Relay) Stats() Stats {
	return r.store.Stats()
}
