package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/abinitio185/revrom/internal/models"
)

// Tour list fields (itinerary, inclusions, reviews, ...) are stored as JSON
// text columns. marshalJSON/unmarshalJSON below keep the scan code flat.

func (s *Store) CreateTour(tour *models.Tour) error {
	if tour.ID == "" {
		tour.ID = uuid.New().String()
	}
	cols, err := tourJSONColumns(tour)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO tours (id, title, destination, route, short_desc, long_desc, duration, price, difficulty, image_url, itinerary, inclusions, exclusions, activities, reviews, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	_, err = s.DB.Exec(query, tour.ID, tour.Title, tour.Destination, tour.Route, tour.ShortDesc, tour.LongDesc,
		tour.Duration, tour.Price, tour.Difficulty, tour.ImageURL,
		cols.itinerary, cols.inclusions, cols.exclusions, cols.activities, cols.reviews)
	return err
}

func (s *Store) GetAllTours() ([]models.Tour, error) {
	query := tourSelect + ` ORDER BY created_at ASC, title ASC`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tours []models.Tour
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, err
		}
		tours = append(tours, t)
	}
	return tours, rows.Err()
}

func (s *Store) GetTourByID(id string) (*models.Tour, error) {
	row := s.DB.QueryRow(tourSelect+` WHERE id = ?`, id)
	t, err := scanTour(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) UpdateTour(tour *models.Tour) error {
	cols, err := tourJSONColumns(tour)
	if err != nil {
		return err
	}
	query := `
		UPDATE tours
		SET title = ?, destination = ?, route = ?, short_desc = ?, long_desc = ?, duration = ?, price = ?, difficulty = ?, image_url = ?, itinerary = ?, inclusions = ?, exclusions = ?, activities = ?, reviews = ?
		WHERE id = ?
	`
	res, err := s.DB.Exec(query, tour.Title, tour.Destination, tour.Route, tour.ShortDesc, tour.LongDesc,
		tour.Duration, tour.Price, tour.Difficulty, tour.ImageURL,
		cols.itinerary, cols.inclusions, cols.exclusions, cols.activities, cols.reviews, tour.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTour(id string) error {
	_, err := s.DB.Exec(`DELETE FROM tours WHERE id = ?`, id)
	if err != nil {
		return err
	}
	// Departures reference tours by id only; drop the orphans too.
	_, err = s.DB.Exec(`DELETE FROM departures WHERE tour_id = ?`, id)
	return err
}

const tourSelect = `SELECT id, title, destination, COALESCE(route, ''), COALESCE(short_desc, ''), COALESCE(long_desc, ''), duration, COALESCE(price, 0), difficulty, COALESCE(image_url, ''), COALESCE(itinerary, '[]'), COALESCE(inclusions, '[]'), COALESCE(exclusions, '[]'), COALESCE(activities, '[]'), COALESCE(reviews, '[]'), created_at FROM tours`

type scanner interface {
	Scan(dest ...any) error
}

func scanTour(row scanner) (models.Tour, error) {
	var t models.Tour
	var itinerary, inclusions, exclusions, activities, reviews string
	err := row.Scan(&t.ID, &t.Title, &t.Destination, &t.Route, &t.ShortDesc, &t.LongDesc,
		&t.Duration, &t.Price, &t.Difficulty, &t.ImageURL,
		&itinerary, &inclusions, &exclusions, &activities, &reviews, &t.CreatedAt)
	if err != nil {
		return models.Tour{}, err
	}
	for name, pair := range map[string]struct {
		raw  string
		dest any
	}{
		"itinerary":  {itinerary, &t.Itinerary},
		"inclusions": {inclusions, &t.Inclusions},
		"exclusions": {exclusions, &t.Exclusions},
		"activities": {activities, &t.Activities},
		"reviews":    {reviews, &t.Reviews},
	} {
		if err := json.Unmarshal([]byte(pair.raw), pair.dest); err != nil {
			return models.Tour{}, fmt.Errorf("tour %s: bad %s column: %w", t.ID, name, err)
		}
	}
	return t, nil
}

type tourColumns struct {
	itinerary, inclusions, exclusions, activities, reviews string
}

func tourJSONColumns(t *models.Tour) (tourColumns, error) {
	var c tourColumns
	for _, pair := range []struct {
		src  any
		dest *string
	}{
		{t.Itinerary, &c.itinerary},
		{t.Inclusions, &c.inclusions},
		{t.Exclusions, &c.exclusions},
		{t.Activities, &c.activities},
		{t.Reviews, &c.reviews},
	} {
		b, err := json.Marshal(pair.src)
		if err != nil {
			return c, err
		}
		*pair.dest = string(b)
	}
	return c, nil
}
