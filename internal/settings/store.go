package settings

import (
	"sync"

	"github.com/calm-lily/backend/config"
)

// Settings is the mutable runtime configuration snapshot.
type Settings struct {
	BetaMode          bool   `json:"beta_mode"`
	BlogEnabled       bool   `json:"blog_enabled"`
	EventsEnabled     bool   `json:"events_enabled"`
	BookingEnabled    bool   `json:"booking_enabled"`
	LeadMagnetEnabled bool   `json:"lead_magnet_enabled"`
	AIEnabled         bool   `json:"ai_enabled"`
	AdminEmail        string `json:"admin_email"`
	SiteURL           string `json:"site_url"`
}

// PublicSettings is the unauthenticated subset: feature flags only.
type PublicSettings struct {
	BetaMode          bool `json:"beta_mode"`
	BlogEnabled       bool `json:"blog_enabled"`
	EventsEnabled     bool `json:"events_enabled"`
	BookingEnabled    bool `json:"booking_enabled"`
	LeadMagnetEnabled bool `json:"lead_magnet_enabled"`
	AIEnabled         bool `json:"ai_enabled"`
}

// Store holds runtime settings seeded from env config. Admin updates mutate
// the live store only; a restart re-seeds from the environment.
type Store struct {
	mu   sync.RWMutex
	data Settings
}

// NewStore seeds a store from the loaded configuration.
func NewStore(cfg *config.Config) *Store {
	return &Store{data: Settings{
		BetaMode:          cfg.Features.BetaMode,
		BlogEnabled:       cfg.Features.Blog,
		EventsEnabled:     cfg.Features.Events,
		BookingEnabled:    cfg.Features.Booking,
		LeadMagnetEnabled: cfg.Features.LeadMagnet,
		AIEnabled:         cfg.AI.Enabled,
		AdminEmail:        cfg.Email.AdminAddress,
		SiteURL:           cfg.Server.SiteURL,
	}}
}

// Snapshot returns a copy of the current settings.
func (s *Store) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Public returns the unauthenticated view.
func (s *Store) Public() PublicSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return PublicSettings{
		BetaMode:          s.data.BetaMode,
		BlogEnabled:       s.data.BlogEnabled,
		EventsEnabled:     s.data.EventsEnabled,
		BookingEnabled:    s.data.BookingEnabled,
		LeadMagnetEnabled: s.data.LeadMagnetEnabled,
		AIEnabled:         s.data.AIEnabled,
	}
}

// UpdateParams carries partial settings updates; nil fields are left
// untouched.
type UpdateParams struct {
	BetaMode          *bool   `json:"beta_mode"`
	BlogEnabled       *bool   `json:"blog_enabled"`
	EventsEnabled     *bool   `json:"events_enabled"`
	BookingEnabled    *bool   `json:"booking_enabled"`
	LeadMagnetEnabled *bool   `json:"lead_magnet_enabled"`
	AIEnabled         *bool   `json:"ai_enabled"`
	AdminEmail        *string `json:"admin_email"`
}

// Update applies the set fields and returns the new snapshot.
func (s *Store) Update(p UpdateParams) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.BetaMode != nil {
		s.data.BetaMode = *p.BetaMode
	}
	if p.BlogEnabled != nil {
		s.data.BlogEnabled = *p.BlogEnabled
	}
	if p.EventsEnabled != nil {
		s.data.EventsEnabled = *p.EventsEnabled
	}
	if p.BookingEnabled != nil {
		s.data.BookingEnabled = *p.BookingEnabled
	}
	if p.LeadMagnetEnabled != nil {
		s.data.LeadMagnetEnabled = *p.LeadMagnetEnabled
	}
	if p.AIEnabled != nil {
		s.data.AIEnabled = *p.AIEnabled
	}
	if p.AdminEmail != nil {
		s.data.AdminEmail = *p.AdminEmail
	}
	return s.data
}
