package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJobEnvelopeRoundTrip(t *testing.T) {
	t.Parallel()
	bookingID := uuid.New()
	payload, err := json.Marshal(EmailPayload{
		EmailType:      "booking_confirmation",
		BookingID:      &bookingID,
		RecipientEmail: "client@example.com",
		Subject:        "Your session is confirmed",
		BodyHTML:       "<p>See you soon.</p>",
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	raw, err := json.Marshal(Job{
		ID:        uuid.New().String(),
		Type:      JobTypeEmail,
		Payload:   payload,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("marshal job: %v", err)
	}

	var job Job
	if err := json.Unmarshal(raw, &job); err != nil {
		t.Fatalf("unmarshal job: %v", err)
	}
	if job.Type != JobTypeEmail {
		t.Errorf("Type = %q, want %q", job.Type, JobTypeEmail)
	}
	if job.Attempt != 0 {
		t.Errorf("Attempt = %d, want 0", job.Attempt)
	}

	var got EmailPayload
	if err := json.Unmarshal(job.Payload, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if got.RecipientEmail != "client@example.com" {
		t.Errorf("RecipientEmail = %q", got.RecipientEmail)
	}
	if got.BookingID == nil || *got.BookingID != bookingID {
		t.Errorf("BookingID = %v, want %v", got.BookingID, bookingID)
	}
}

func TestEmailPayloadOmitsNilBookingID(t *testing.T) {
	t.Parallel()
	raw, err := json.Marshal(EmailPayload{EmailType: "contact_notification"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["booking_id"]; ok {
		t.Error("booking_id present for nil BookingID, want omitted")
	}
}
