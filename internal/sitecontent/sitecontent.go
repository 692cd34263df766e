// Package sitecontent holds the mutable site configuration: hero copy,
// contact details, theme, and the ordered homepage section list. It lives
// only in process memory; edits are lost on restart, which is the intended
// lifecycle (the store is re-seeded from fixtures at boot).
package sitecontent

import (
	"sync"
)

// Direction of a section move in the homepage builder.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Section is one homepage block: its identity, display label, and whether it
// is currently rendered. Hidden sections stay in the list so they can be
// re-enabled later.
type Section struct {
	ID      string `yaml:"id"`
	Label   string `yaml:"label"`
	Visible bool   `yaml:"visible"`
}

// SocialLinks on the site footer and contact page.
type SocialLinks struct {
	Instagram string `yaml:"instagram"`
	Facebook  string `yaml:"facebook"`
	YouTube   string `yaml:"youtube"`
}

// Content is the full site configuration aggregate.
type Content struct {
	HeroTitle    string      `yaml:"hero_title"`
	HeroSubtitle string      `yaml:"hero_subtitle"`
	ContactPhone string      `yaml:"contact_phone"`
	ContactEmail string      `yaml:"contact_email"`
	Address      string      `yaml:"address"`
	WhatsApp     string      `yaml:"whatsapp"` // number used for wa.me handoff
	LogoURL      string      `yaml:"logo_url"`
	Theme        string      `yaml:"theme"`
	Social       SocialLinks `yaml:"social"`
	Sections     []Section   `yaml:"sections"`
}

// Update carries the settings-form fields. Nil pointers mean "leave as is"
// so the handler can submit partial edits (shallow merge).
type Update struct {
	HeroTitle    *string
	HeroSubtitle *string
	ContactPhone *string
	ContactEmail *string
	Address      *string
	WhatsApp     *string
	LogoURL      *string
	Theme        *string
	Social       *SocialLinks
}

// Store guards the aggregate with a mutex; handlers run on arbitrary
// goroutines so unlike the original single-threaded app this needs locking.
type Store struct {
	mu      sync.RWMutex
	content Content
}

// NewStore seeds the store with the initial content.
func NewStore(seed Content) *Store {
	s := &Store{content: seed}
	// Defensive copy so the caller's slice cannot alias ours.
	s.content.Sections = append([]Section(nil), seed.Sections...)
	return s
}

// Get returns a snapshot of the current content. The section slice is
// copied; callers may not mutate the store through it.
func (s *Store) Get() Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.content
	c.Sections = append([]Section(nil), s.content.Sections...)
	return c
}

// VisibleSections returns the sections to render, in order.
func (s *Store) VisibleSections() []Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Section
	for _, sec := range s.content.Sections {
		if sec.Visible {
			out = append(out, sec)
		}
	}
	return out
}

// Apply shallow-merges the update into the content.
func (s *Store) Apply(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.HeroTitle != nil {
		s.content.HeroTitle = *u.HeroTitle
	}
	if u.HeroSubtitle != nil {
		s.content.HeroSubtitle = *u.HeroSubtitle
	}
	if u.ContactPhone != nil {
		s.content.ContactPhone = *u.ContactPhone
	}
	if u.ContactEmail != nil {
		s.content.ContactEmail = *u.ContactEmail
	}
	if u.Address != nil {
		s.content.Address = *u.Address
	}
	if u.WhatsApp != nil {
		s.content.WhatsApp = *u.WhatsApp
	}
	if u.LogoURL != nil {
		s.content.LogoURL = *u.LogoURL
	}
	if u.Theme != nil {
		s.content.Theme = *u.Theme
	}
	if u.Social != nil {
		s.content.Social = *u.Social
	}
}

// MoveSection swaps the section at index with its neighbour in the given
// direction. Out-of-range indices and boundary moves are no-ops.
func (s *Store) MoveSection(index int, dir Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.content.Sections) {
		return
	}
	target := index - 1
	if dir == Down {
		target = index + 1
	}
	if target < 0 || target >= len(s.content.Sections) {
		return
	}
	secs := s.content.Sections
	secs[index], secs[target] = secs[target], secs[index]
}

// ToggleSection flips the visibility flag of the section at index.
// Out-of-range indices are a no-op.
func (s *Store) ToggleSection(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.content.Sections) {
		return
	}
	s.content.Sections[index].Visible = !s.content.Sections[index].Visible
}
