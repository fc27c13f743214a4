package settings

import (
	"sync"
	"testing"

	"github.com/calm-lily/backend/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Features.Blog = true
	cfg.Features.Events = true
	cfg.Features.Booking = true
	cfg.Features.LeadMagnet = true
	cfg.AI.Enabled = false
	cfg.Email.AdminAddress = "lily@calmlily.com"
	cfg.Server.SiteURL = "https://calmlily.com"
	return cfg
}

func TestNewStoreSeedsFromConfig(t *testing.T) {
	t.Parallel()
	store := NewStore(testConfig())

	got := store.Snapshot()
	if !got.BlogEnabled || !got.EventsEnabled || !got.BookingEnabled || !got.LeadMagnetEnabled {
		t.Errorf("feature flags = %+v, want all enabled", got)
	}
	if got.AIEnabled {
		t.Error("AIEnabled = true, want false")
	}
	if got.AdminEmail != "lily@calmlily.com" {
		t.Errorf("AdminEmail = %q", got.AdminEmail)
	}
	if got.SiteURL != "https://calmlily.com" {
		t.Errorf("SiteURL = %q", got.SiteURL)
	}
}

func TestUpdatePartial(t *testing.T) {
	t.Parallel()
	store := NewStore(testConfig())

	off := false
	email := "new-admin@calmlily.com"
	got := store.Update(UpdateParams{BlogEnabled: &off, AdminEmail: &email})

	if got.BlogEnabled {
		t.Error("BlogEnabled = true, want false")
	}
	if got.AdminEmail != email {
		t.Errorf("AdminEmail = %q, want %q", got.AdminEmail, email)
	}
	if !got.EventsEnabled {
		t.Error("EventsEnabled flipped by unrelated update")
	}
	if got.SiteURL != "https://calmlily.com" {
		t.Errorf("SiteURL = %q, want unchanged", got.SiteURL)
	}
}

func TestPublicOmitsAdminFields(t *testing.T) {
	t.Parallel()
	store := NewStore(testConfig())

	got := store.Public()
	if !got.BlogEnabled || !got.BookingEnabled {
		t.Errorf("public flags = %+v", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()
	store := NewStore(testConfig())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		on := i%2 == 0
		go func(v bool) {
			defer wg.Done()
			store.Update(UpdateParams{BetaMode: &v})
		}(on)
		go func() {
			defer wg.Done()
			_ = store.Snapshot()
			_ = store.Public()
		}()
	}
	wg.Wait()
}
