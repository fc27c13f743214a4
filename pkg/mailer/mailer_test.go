package mailer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendWithoutAPIKey(t *testing.T) {
	t.Parallel()
	m := New(Config{}, nil)
	if err := m.Send(context.Background(), "client@example.com", "hi", "<p>hi</p>"); err != nil {
		t.Errorf("Send without API key = %v, want nil", err)
	}
}

func TestSendTestModeRedirect(t *testing.T) {
	t.Parallel()
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("unmarshal request: %v", err)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer key-123" {
			t.Errorf("Authorization = %q", auth)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := New(Config{
		APIKey:        "key-123",
		APIURL:        srv.URL,
		FromAddress:   "hello@calmlily.com",
		FromName:      "Calm Lily",
		TestMode:      true,
		TestRecipient: "dev@calmlily.com",
	}, nil)

	if err := m.Send(context.Background(), "client@example.com", "Your booking", "<p>body</p>"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(got.To) != 1 || got.To[0] != "dev@calmlily.com" {
		t.Errorf("To = %v, want redirect to test recipient", got.To)
	}
	if want := "[TEST to:client@example.com] Your booking"; got.Subject != want {
		t.Errorf("Subject = %q, want %q", got.Subject, want)
	}
	if got.From != "Calm Lily <hello@calmlily.com>" {
		t.Errorf("From = %q", got.From)
	}
}

func TestSendTestModeWithoutRecipientSuppresses(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request sent despite suppression")
	}))
	defer srv.Close()

	m := New(Config{APIKey: "key-123", APIURL: srv.URL, TestMode: true}, nil)
	if err := m.Send(context.Background(), "client@example.com", "hi", "<p>hi</p>"); err != nil {
		t.Errorf("Send = %v, want nil", err)
	}
}

func TestSendProviderError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	m := New(Config{APIKey: "key-123", APIURL: srv.URL}, nil)
	err := m.Send(context.Background(), "client@example.com", "hi", "<p>hi</p>")
	if err == nil || !strings.Contains(err.Error(), "422") {
		t.Errorf("Send = %v, want provider status error", err)
	}
}

func TestWrapHTML(t *testing.T) {
	t.Parallel()
	out := WrapHTML("Booking confirmed", "<p>See you soon.</p>")
	if !strings.Contains(out, "Booking confirmed") {
		t.Error("title missing from wrapped HTML")
	}
	if !strings.Contains(out, "<p>See you soon.</p>") {
		t.Error("body missing from wrapped HTML")
	}
	if !strings.Contains(out, "Calm Lily") {
		t.Error("footer missing from wrapped HTML")
	}
}
