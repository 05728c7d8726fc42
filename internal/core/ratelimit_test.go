package core

import (
	"testing"
	"time"
)

func TestGlobalWindowRejectsPastLimit(t *testing.T) {
	clock := NewManualClock(testStart)
	rl := NewRateLimiter(clock, testLimits())

	for i := 0; i < DefaultGlobalLimit; i++ {
		if !rl.TryAdmitGlobal() {
			t.Fatalf("attempt %d rejected", i+1)
		}
	}
	for i := 0; i < 5; i++ {
		if rl.TryAdmitGlobal() {
			t.Fatalf("attempt %d admitted past the limit", DefaultGlobalLimit+i+1)
		}
	}

	clock.Advance(59 * time.Second)
	if rl.TryAdmitGlobal() {
		t.Fatalf("admitted before the window elapsed")
	}

	clock.Advance(time.Second)
	if !rl.TryAdmitGlobal() {
		t.Fatalf("expected admission once the window elapsed")
	}
}

func TestRejectionDoesNotConsumeSlot(t *testing.T) {
	clock := NewManualClock(testStart)
	limits := testLimits()
	limits.GlobalLimit = 2
	rl := NewRateLimiter(clock, limits)

	rl.TryAdmitGlobal()
	clock.Advance(30 * time.Second)
	rl.TryAdmitGlobal()
	for i := 0; i < 10; i++ {
		rl.TryAdmitGlobal()
	}

	// Only the first stamp ages out; rejected attempts left no trace.
	clock.Advance(30 * time.Second)
	if !rl.TryAdmitGlobal() {
		t.Fatalf("expected a slot freed by the first stamp")
	}
	if rl.TryAdmitGlobal() {
		t.Fatalf("expected the window to be full again")
	}
}

func TestRoomWindowsAreIndependent(t *testing.T) {
	clock := NewManualClock(testStart)
	rl := NewRateLimiter(clock, testLimits())

	for i := 0; i < DefaultRoomLimit; i++ {
		if !rl.TryAdmitRoom("roomAAAAA") {
			t.Fatalf("attempt %d rejected", i+1)
		}
	}
	if rl.TryAdmitRoom("roomAAAAA") {
		t.Fatalf("attempt %d admitted", DefaultRoomLimit+1)
	}
	if !rl.TryAdmitRoom("roomBBBBB") {
		t.Fatalf("exhausting one room must not affect another")
	}
}

func TestRoomKeysAreByteExact(t *testing.T) {
	clock := NewManualClock(testStart)
	limits := testLimits()
	limits.RoomLimit = 1
	rl := NewRateLimiter(clock, limits)

	if !rl.TryAdmitRoom("Lobby-room") {
		t.Fatalf("first admission rejected")
	}
	if !rl.TryAdmitRoom("lobby-room") {
		t.Fatalf("room ids must not be case folded")
	}
	if !rl.TryAdmitRoom("Lobby-room ") {
		t.Fatalf("room ids must not be trimmed")
	}
}

func TestCompactDropsIdleRooms(t *testing.T) {
	clock := NewManualClock(testStart)
	rl := NewRateLimiter(clock, testLimits())

	rl.TryAdmitRoom("room-old-1")
	clock.Advance(30 * time.Second)
	rl.TryAdmitRoom("room-new-1")
	clock.Advance(31 * time.Second)

	if dropped := rl.Compact(); dropped != 1 {
		t.Fatalf("expected 1 dropped window, got %d", dropped)
	}
	if got := rl.TrackedRooms(); got != 1 {
		t.Fatalf("expected 1 tracked room, got %d", got)
	}
}
