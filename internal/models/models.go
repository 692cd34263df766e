package models

import (
	"time"
)

// Difficulty levels a tour can be graded at. These are the only values the
// admin forms offer and the catalog filter matches against.
const (
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
	DifficultyExpert       = "Expert"
)

// Departure statuses. Editors set these independently of the slot count.
const (
	DepartureAvailable = "Available"
	DepartureLimited   = "Limited"
	DepartureSoldOut   = "Sold Out"
)

// Lead statuses for itinerary queries in the admin console.
const (
	LeadNew       = "New"
	LeadContacted = "Contacted"
	LeadClosed    = "Closed"
)

// ItineraryDay is a single day of a tour's day-by-day plan.
// Day numbers start at 1 and are assumed contiguous.
type ItineraryDay struct {
	Day         int    `json:"day" yaml:"day"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Review is a rider review attached to a tour. Rating is 1-5.
type Review struct {
	Name    string    `json:"name" yaml:"name"`
	Rating  int       `json:"rating" yaml:"rating"`
	Comment string    `json:"comment" yaml:"comment"`
	Date    time.Time `json:"date" yaml:"date"`
}

// Tour is a sellable multi-day motorcycle itinerary.
type Tour struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	Destination string         `json:"destination" yaml:"destination"`
	Route       string         `json:"route" yaml:"route"`
	ShortDesc   string         `json:"short_desc" yaml:"short_desc"`
	LongDesc    string         `json:"long_desc" yaml:"long_desc"`
	Duration    int            `json:"duration" yaml:"duration"` // days
	Price       float64        `json:"price" yaml:"price"`
	Difficulty  string         `json:"difficulty" yaml:"difficulty"`
	ImageURL    string         `json:"image_url" yaml:"image_url"`
	Itinerary   []ItineraryDay `json:"itinerary" yaml:"itinerary"`
	Inclusions  []string       `json:"inclusions" yaml:"inclusions"`
	Exclusions  []string       `json:"exclusions" yaml:"exclusions"`
	Activities  []string       `json:"activities" yaml:"activities"`
	Reviews     []Review       `json:"reviews" yaml:"reviews"`
	CreatedAt   time.Time      `json:"created_at" yaml:"-"`
}

// Departure is a dated, capacity-limited instance of a Tour.
// TourID is a lookup reference only; deleting a tour orphans its departures.
type Departure struct {
	ID        string    `json:"id" yaml:"id"`
	TourID    string    `json:"tour_id" yaml:"tour_id"`
	TourTitle string    `json:"tour_title" yaml:"-"` // joined for display
	StartDate time.Time `json:"start_date" yaml:"start_date"`
	EndDate   time.Time `json:"end_date" yaml:"end_date"`
	Slots     int       `json:"slots" yaml:"slots"`
	Status    string    `json:"status" yaml:"status"`
}

// BlogPost body is markdown; it is rendered and sanitized at display time.
type BlogPost struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Excerpt     string    `json:"excerpt" yaml:"excerpt"`
	Body        string    `json:"body" yaml:"body"`
	ImageURL    string    `json:"image_url" yaml:"image_url"`
	Author      string    `json:"author" yaml:"author"`
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`
}

// GalleryPhoto is a ride photo shown on the gallery page.
type GalleryPhoto struct {
	ID       string `json:"id" yaml:"id"`
	Caption  string `json:"caption" yaml:"caption"`
	ImageURL string `json:"image_url" yaml:"image_url"`
}

// InstagramPost mirrors an embedded Instagram item on the homepage.
type InstagramPost struct {
	ID        string `json:"id" yaml:"id"`
	ImageURL  string `json:"image_url" yaml:"image_url"`
	Caption   string `json:"caption" yaml:"caption"`
	Permalink string `json:"permalink" yaml:"permalink"`
}

// GoogleReview is a testimonial imported by hand from Google reviews.
type GoogleReview struct {
	ID     string    `json:"id" yaml:"id"`
	Author string    `json:"author" yaml:"author"`
	Rating int       `json:"rating" yaml:"rating"`
	Text   string    `json:"text" yaml:"text"`
	Date   time.Time `json:"date" yaml:"date"`
}

// ItineraryQuery is a lead captured by the custom-itinerary form.
// Generated holds the AI-produced itinerary text shown to the visitor.
type ItineraryQuery struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Preferences string    `json:"preferences"`
	Generated   string    `json:"generated"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// CustomPage is an editor-authored standalone page served at /p/{slug}.
type CustomPage struct {
	ID      string `json:"id" yaml:"id"`
	Slug    string `json:"slug" yaml:"slug"`
	Title   string `json:"title" yaml:"title"`
	Body    string `json:"body" yaml:"body"` // markdown
	Visible bool   `json:"visible" yaml:"visible"`
}

// User is an admin console account. Password holds a bcrypt hash.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
