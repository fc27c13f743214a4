package bookings

import (
	"crypto/rand"
	"encoding/hex"
)

// NewRoomID generates an opaque video room identifier of the form
// "lily-" + 12 hex characters. Uniqueness is probabilistic and backed by
// a unique index on the column; collisions are not retried.
func NewRoomID() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic("room id entropy: " + err.Error())
	}
	return "lily-" + hex.EncodeToString(buf)
}
