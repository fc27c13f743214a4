package bookings

import (
	"regexp"
	"testing"
)

var roomIDRe = regexp.MustCompile(`^lily-[0-9a-f]{12}$`)

func TestNewRoomIDShape(t *testing.T) {
	t.Parallel()
	for i := 0; i < 20; i++ {
		id := NewRoomID()
		if !roomIDRe.MatchString(id) {
			t.Fatalf("NewRoomID() = %q, want match for %s", id, roomIDRe)
		}
	}
}

func TestNewRoomIDUnique(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewRoomID()
		if seen[id] {
			t.Fatalf("duplicate room id %q after %d draws", id, i)
		}
		seen[id] = true
	}
}
