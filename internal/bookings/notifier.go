package bookings

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/calm-lily/backend/internal/emaillogs"
	"github.com/calm-lily/backend/internal/models"
	"github.com/calm-lily/backend/pkg/mailer"
	"github.com/calm-lily/backend/pkg/queue"
)

// Notifier sends booking-related email. The admin notification for a new
// booking goes through the job queue and never fails the request that
// triggered it; the client confirmation is sent synchronously.
type Notifier struct {
	queue      *queue.Queue
	mailer     *mailer.Mailer
	emailLogs  *emaillogs.Repository
	adminEmail string
	logger     *zap.Logger
}

// NewNotifier creates a booking notifier.
func NewNotifier(q *queue.Queue, m *mailer.Mailer, el *emaillogs.Repository, adminEmail string, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{queue: q, mailer: m, emailLogs: el, adminEmail: adminEmail, logger: logger}
}

// NotifyAdminNewBooking enqueues the "new booking needs confirmation" email.
// Enqueue failures are logged and swallowed.
func (n *Notifier) NotifyAdminNewBooking(ctx context.Context, b *models.Booking, client *models.User) {
	when := "TBC"
	if b.Slot != nil {
		when = fmt.Sprintf("%s %s-%s", b.Slot.Date.Format("02/01/2006"), b.Slot.StartTime, b.Slot.EndTime)
	}
	body := fmt.Sprintf(
		`<p>A new booking has been submitted and requires your confirmation.</p>
		<p><strong>Client:</strong> %s (%s)<br>
		<strong>Type:</strong> %s<br>
		<strong>When:</strong> %s</p>`,
		client.FullName(), client.Email, b.SessionType, when)
	if b.Notes != "" {
		body += fmt.Sprintf("<p><strong>Notes:</strong> %s</p>", b.Notes)
	}
	body += "<p>Please log in to the admin dashboard to confirm or manage this booking.</p>"

	bookingID := b.ID
	err := n.queue.EnqueueEmail(ctx, queue.EmailPayload{
		EmailType:      "admin_new_booking",
		BookingID:      &bookingID,
		RecipientEmail: n.adminEmail,
		Subject:        "New booking from " + client.FullName(),
		BodyHTML:       mailer.WrapHTML("New booking requires confirmation", body),
	})
	if err != nil {
		n.logger.Error("enqueue admin booking notification failed",
			zap.Error(err), zap.String("booking_id", b.ID.String()))
	}
}

// SendConfirmation sends the booking confirmation email to the client and
// records the attempt. A provider failure is logged and recorded but does
// not undo the confirmation.
func (n *Notifier) SendConfirmation(ctx context.Context, b *models.Booking, client *models.User) {
	when := "to be confirmed separately"
	if b.Slot != nil {
		when = fmt.Sprintf("%s at %s", b.Slot.Date.Format("Monday 2 January 2006"), b.Slot.StartTime)
	}
	body := fmt.Sprintf(
		`<p>Dear %s,</p>
		<p>Your %s session is confirmed for %s.</p>
		<p>If the session is online, your secure video link will be available from
		your dashboard shortly before the start time.</p>
		<p>Warm wishes,<br>Lily</p>`,
		client.FirstName, b.SessionType, when)

	subject := "Your session with Lily is confirmed"
	sendErr := n.mailer.Send(ctx, client.Email, subject, mailer.WrapHTML("Session confirmed", body))

	bookingID := b.ID
	status, errMsg := "sent", ""
	if sendErr != nil {
		status, errMsg = "failed", sendErr.Error()
		n.logger.Error("confirmation email failed",
			zap.Error(sendErr), zap.String("booking_id", b.ID.String()))
	}
	if err := n.emailLogs.Insert(ctx, emaillogs.Entry{
		EmailType: "booking_confirmation",
		Recipient: client.Email,
		Subject:   subject,
		Status:    status,
		Error:     errMsg,
		BookingID: &bookingID,
	}); err != nil {
		n.logger.Error("record email log failed", zap.Error(err))
	}
}

// RecordConfirmationFailure writes a failed email log entry when the
// confirmation could not even be attempted, so the missed send shows up in
// the admin email audit.
func (n *Notifier) RecordConfirmationFailure(ctx context.Context, b *models.Booking, cause error) {
	bookingID := b.ID
	if err := n.emailLogs.Insert(ctx, emaillogs.Entry{
		EmailType: "booking_confirmation",
		Subject:   "Your session with Lily is confirmed",
		Status:    "failed",
		Error:     "client lookup failed: " + cause.Error(),
		BookingID: &bookingID,
	}); err != nil {
		n.logger.Error("record email log failed", zap.Error(err))
	}
}
