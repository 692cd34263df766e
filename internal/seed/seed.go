// Package seed holds the fixture data every boot starts from. Fixtures live
// in an embedded YAML file so content edits don't require touching Go code;
// nothing the site mutates at runtime is ever written back.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/abinitio185/revrom/internal/models"
	"github.com/abinitio185/revrom/internal/sitecontent"
)

//go:embed seed.yaml
var seedYAML []byte

// Fixtures is the full startup dataset.
type Fixtures struct {
	Tours         []models.Tour          `yaml:"tours"`
	Departures    []models.Departure     `yaml:"departures"`
	BlogPosts     []models.BlogPost      `yaml:"blog_posts"`
	Gallery       []models.GalleryPhoto  `yaml:"gallery"`
	Instagram     []models.InstagramPost `yaml:"instagram"`
	GoogleReviews []models.GoogleReview  `yaml:"google_reviews"`
	Pages         []models.CustomPage    `yaml:"pages"`
	Site          sitecontent.Content    `yaml:"site"`
}

// Load parses the embedded fixtures.
func Load() (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(seedYAML, &f); err != nil {
		return nil, fmt.Errorf("seed: parse fixtures: %w", err)
	}
	return &f, nil
}
