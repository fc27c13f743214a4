package models

import "testing"

func TestBookingStatusTerminal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{BookingPending, false},
		{BookingConfirmed, false},
		{BookingCompleted, true},
		{BookingCancelled, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestValidSessionType(t *testing.T) {
	t.Parallel()
	for _, valid := range []string{"standard", "intensive", "discovery"} {
		if !ValidSessionType(valid) {
			t.Errorf("ValidSessionType(%q) = false, want true", valid)
		}
	}
	for _, invalid := range []string{"", "STANDARD", "marathon"} {
		if ValidSessionType(invalid) {
			t.Errorf("ValidSessionType(%q) = true, want false", invalid)
		}
	}
}
