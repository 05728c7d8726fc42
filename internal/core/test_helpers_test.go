package core

import (
	"bytes"
	"testing"
)

const testStart int64 = 1_700_000_000

func testLimits() Limits {
	return DefaultLimits()
}

func mustAllZero(t *testing.T, b []byte) {
	t.Helper()

	if len(b) == 0 {
		t.Fatalf("expected non-empty buffer")
	}
	if !bytes.Equal(b, make([]byte, len(b))) {
		t.Fatalf("expected wiped buffer, got %q", b)
	}
}

func fillRoom(t *testing.T, s *Store, room string, n int, ts int64) [][]byte {
	t.Helper()

	bufs := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		buf := []byte("payload-" + string(rune('a'+i%26)))
		if !s.ValidateAndReserve(room, len(buf)) {
			t.Fatalf("reserve %d rejected", i)
		}
		s.Append(room, buf, ts)
		bufs = append(bufs, buf)
	}
	return bufs
}
