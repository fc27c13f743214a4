package ai

import (
	"strings"
	"testing"
)

func TestAnonKey(t *testing.T) {
	t.Parallel()
	key := AnonKey("203.0.113.7", "Mozilla/5.0")
	if !strings.HasPrefix(key, "anon:") {
		t.Fatalf("key = %q, want anon: prefix", key)
	}
	if got := len(strings.TrimPrefix(key, "anon:")); got != 16 {
		t.Errorf("hash length = %d, want 16", got)
	}
	for _, r := range strings.TrimPrefix(key, "anon:") {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Errorf("non-hex rune %q in key %q", r, key)
		}
	}
}

func TestAnonKeyStable(t *testing.T) {
	t.Parallel()
	a := AnonKey("203.0.113.7", "Mozilla/5.0")
	b := AnonKey("203.0.113.7", "Mozilla/5.0")
	if a != b {
		t.Errorf("same caller produced different keys: %q vs %q", a, b)
	}
}

func TestAnonKeyDistinguishesCallers(t *testing.T) {
	t.Parallel()
	base := AnonKey("203.0.113.7", "Mozilla/5.0")
	if got := AnonKey("203.0.113.8", "Mozilla/5.0"); got == base {
		t.Error("different IPs produced the same key")
	}
	if got := AnonKey("203.0.113.7", "curl/8.0"); got == base {
		t.Error("different user agents produced the same key")
	}
}

func TestUserKey(t *testing.T) {
	t.Parallel()
	if got := UserKey("4b2f8a10-0000-0000-0000-000000000000"); got != "user:4b2f8a10-0000-0000-0000-000000000000" {
		t.Errorf("UserKey = %q", got)
	}
}
