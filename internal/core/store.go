package core

import (
	"slices"
	"sync"
)

// Stats is a point-in-time count of what the store holds.
type Stats struct {
	Rooms    int `json:"rooms"`
	Messages int `json:"messages"`
}

// Store keeps the recent messages of every room in memory.
// A single mutex covers the whole room map.
type Store struct {
	maxMessageBytes int
	capacity        int

	mu    sync.Mutex
	rooms map[string][]Message
	revs  map[string]uint64
}

// NewStore builds an empty store bounded by limits.
func NewStore(limits Limits) *Store {
	limits = limits.withDefaults()
	return &Store{
		maxMessageBytes: limits.MaxMessageBytes,
		capacity:        limits.RoomCapacity,
		rooms:           make(map[string][]Message),
		revs:            make(map[string]uint64),
	}
}

// ValidateAndReserve rejects oversize content without touching the store.
// Otherwise it makes room for one more message in roomID, evicting the oldest if full.
func (s *Store) ValidateAndReserve(roomID string, contentLength int) bool {
	if contentLength > s.maxMessageBytes {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.rooms[roomID]
	for len(msgs) >= s.capacity {
		msgs = s.removeAt(msgs, 0)
		s.revs[roomID]++
	}
	s.rooms[roomID] = msgs
	return true
}

// Append adds a message to roomID. The store takes ownership of content.
// Callers reserve space with ValidateAndReserve first.
func (s *Store) Append(roomID string, content []byte, timestamp int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.rooms[roomID]
	// A concurrent sender may have used the slot reserved for this one.
	for len(msgs) >= s.capacity {
		msgs = s.removeAt(msgs, 0)
	}
	s.rooms[roomID] = append(msgs, Message{Content: content, Timestamp: timestamp})
	s.revs[roomID]++
}

// Snapshot returns a copy of the messages in roomID, oldest first.
func (s *Store) Snapshot(roomID string) []Message {
	msgs, _ := s.Lookup(roomID)
	return msgs
}

// Lookup is Snapshot that also reports whether roomID has ever held a message slot.
// Rooms emptied by expiry or EraseAll still count as known.
func (s *Store) Lookup(roomID string) ([]Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs, ok := s.rooms[roomID]
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		out[i] = Message{Content: slices.Clone(m.Content), Timestamp: m.Timestamp}
	}
	return out, ok
}

// Len returns the number of messages currently held for roomID.
func (s *Store) Len(roomID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms[roomID])
}

// ExpireOne removes, per room, the first message older than expiry seconds.
func (s *Store) ExpireOne(now, expiry int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, msgs := range s.rooms {
		i := slices.IndexFunc(msgs, func(m Message) bool {
			return now-m.Timestamp > expiry
		})
		if i < 0 {
			continue
		}
		s.rooms[id] = s.removeAt(msgs, i)
		s.revs[id]++
		removed++
	}
	return removed
}

// EraseAll zeroes and drops every message. Room keys are kept.
func (s *Store) EraseAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	erased := 0
	for id, msgs := range s.rooms {
		for i := range msgs {
			wipe(&msgs[i])
		}
		erased += len(msgs)
		clear(msgs)
		s.rooms[id] = msgs[:0]
		if len(msgs) > 0 {
			s.revs[id]++
		}
	}
	return erased
}

// Revision changes whenever the contents of roomID change.
func (s *Store) Revision(roomID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revs[roomID]
}

// Stats counts rooms and messages.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{Rooms: len(s.rooms)}
	for _, msgs := range s.rooms {
		st.Messages += len(msgs)
	}
	return st
}

// removeAt wipes msgs[i] and deletes it. Caller holds s.mu.
func (s *Store) removeAt(msgs []Message, i int) []Message {
	wipe(&msgs[i])
	return slices.Delete(msgs, i, i+1)
}
