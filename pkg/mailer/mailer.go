package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Config holds mailer settings.
type Config struct {
	APIKey        string
	APIURL        string // Resend-compatible endpoint
	FromAddress   string
	FromName      string
	TestMode      bool   // redirect everything to TestRecipient
	TestRecipient string
}

// Mailer sends transactional email through the Resend HTTP API.
type Mailer struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// New creates a mailer. A zero API key produces a mailer that logs and drops mail.
func New(cfg Config, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers one HTML email. In test mode the recipient is replaced with
// the configured test recipient and the subject is prefixed.
func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.cfg.APIKey == "" {
		m.logger.Info("email skipped: no API key configured",
			zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	if m.cfg.TestMode {
		if m.cfg.TestRecipient == "" {
			m.logger.Info("email suppressed in test mode",
				zap.String("to", to), zap.String("subject", subject))
			return nil
		}
		subject = "[TEST to:" + to + "] " + subject
		to = m.cfg.TestRecipient
	}

	body, err := json.Marshal(sendRequest{
		From:    fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.FromAddress),
		To:      []string{to},
		Subject: subject,
		HTML:    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email provider status: %d", resp.StatusCode)
	}

	m.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// WrapHTML wraps body content in the site email shell.
func WrapHTML(title, body string) string {
	return `<div style="max-width:600px;margin:0 auto;font-family:Georgia,serif;">` +
		`<div style="background:#f5f1eb;padding:24px;text-align:center;">` +
		`<h1 style="color:#5a6b5d;font-size:22px;margin:0;">` + title + `</h1>` +
		`</div><div style="padding:24px;background:#ffffff;">` + body + `</div>` +
		`<div style="padding:16px;text-align:center;color:#999;font-size:12px;">` +
		`Calm Lily &middot; Balham, South West London</div></div>`
}
