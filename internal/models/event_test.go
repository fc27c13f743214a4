package models

import "testing"

func TestSpotsRemaining(t *testing.T) {
	t.Parallel()
	unlimited := Event{MaxSpots: 0, SpotsTaken: 12}
	if got := unlimited.SpotsRemaining(); got != nil {
		t.Errorf("unlimited event: SpotsRemaining() = %v, want nil", *got)
	}

	partial := Event{MaxSpots: 10, SpotsTaken: 4}
	if got := partial.SpotsRemaining(); got == nil || *got != 6 {
		t.Errorf("partial event: SpotsRemaining() = %v, want 6", got)
	}

	overbooked := Event{MaxSpots: 10, SpotsTaken: 14}
	if got := overbooked.SpotsRemaining(); got == nil || *got != 0 {
		t.Errorf("overbooked event: SpotsRemaining() = %v, want 0", got)
	}
}
