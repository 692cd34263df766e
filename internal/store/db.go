package store

import (
	"database/sql"
	"errors"
	"log/slog"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a lookup matches no row. Handlers map it to
// a flash message plus a redirect (public detail pages redirect home).
var ErrNotFound = errors.New("not found")

type Store struct {
	DB *sql.DB
}

// NewStore opens the SQLite database. The site runs on ":memory:" in normal
// operation: every collection is seeded at boot and discarded on shutdown,
// which is the intended lifecycle for this mock-data-backed site.
func NewStore(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}

	// An in-memory SQLite database exists per connection; a second
	// connection would see its own empty schema.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS tours (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		destination TEXT NOT NULL,
		route TEXT,
		short_desc TEXT,
		long_desc TEXT,
		duration INTEGER NOT NULL,
		price REAL,
		difficulty TEXT NOT NULL,
		image_url TEXT,
		itinerary TEXT,
		inclusions TEXT,
		exclusions TEXT,
		activities TEXT,
		reviews TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS departures (
		id TEXT PRIMARY KEY,
		tour_id TEXT NOT NULL,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		slots INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'Available'
	);

	CREATE TABLE IF NOT EXISTS blog_posts (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		excerpt TEXT,
		body TEXT,
		image_url TEXT,
		author TEXT,
		published_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS gallery_photos (
		id TEXT PRIMARY KEY,
		caption TEXT,
		image_url TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS instagram_posts (
		id TEXT PRIMARY KEY,
		image_url TEXT NOT NULL,
		caption TEXT,
		permalink TEXT
	);

	CREATE TABLE IF NOT EXISTS google_reviews (
		id TEXT PRIMARY KEY,
		author TEXT NOT NULL,
		rating INTEGER NOT NULL,
		review_text TEXT,
		review_date DATETIME
	);

	CREATE TABLE IF NOT EXISTS itinerary_queries (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		preferences TEXT,
		generated TEXT,
		status TEXT NOT NULL DEFAULT 'New',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS custom_pages (
		id TEXT PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		body TEXT,
		visible INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);
	`
	_, err := s.DB.Exec(query)
	if err != nil {
		slog.Error("Error creating schema", "error", err)
		return err
	}
	return nil
}
