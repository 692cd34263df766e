package store

import (
	"fmt"

	"github.com/abinitio185/revrom/internal/seed"
)

// Seed inserts the fixture dataset. It runs once at boot against a fresh
// in-memory database, so it assumes empty tables.
func (s *Store) Seed(f *seed.Fixtures) error {
	for i := range f.Tours {
		if err := s.CreateTour(&f.Tours[i]); err != nil {
			return fmt.Errorf("seed tour %q: %w", f.Tours[i].Title, err)
		}
	}
	for i := range f.Departures {
		if err := s.CreateDeparture(&f.Departures[i]); err != nil {
			return fmt.Errorf("seed departure %s: %w", f.Departures[i].ID, err)
		}
	}
	for i := range f.BlogPosts {
		if err := s.CreateBlogPost(&f.BlogPosts[i]); err != nil {
			return fmt.Errorf("seed blog post %q: %w", f.BlogPosts[i].Title, err)
		}
	}
	for i := range f.Gallery {
		if err := s.AddGalleryPhoto(&f.Gallery[i]); err != nil {
			return fmt.Errorf("seed gallery photo %s: %w", f.Gallery[i].ID, err)
		}
	}
	for i := range f.Instagram {
		if err := s.AddInstagramPost(&f.Instagram[i]); err != nil {
			return fmt.Errorf("seed instagram post %s: %w", f.Instagram[i].ID, err)
		}
	}
	for i := range f.GoogleReviews {
		if err := s.AddGoogleReview(&f.GoogleReviews[i]); err != nil {
			return fmt.Errorf("seed google review %s: %w", f.GoogleReviews[i].ID, err)
		}
	}
	for i := range f.Pages {
		if err := s.CreateCustomPage(&f.Pages[i]); err != nil {
			return fmt.Errorf("seed page %q: %w", f.Pages[i].Slug, err)
		}
	}
	return nil
}
