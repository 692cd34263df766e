package store

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/abinitio185/revrom/internal/models"
)

func (s *Store) CreateDeparture(d *models.Departure) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	query := `INSERT INTO departures (id, tour_id, start_date, end_date, slots, status) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.DB.Exec(query, d.ID, d.TourID, d.StartDate, d.EndDate, d.Slots, d.Status)
	return err
}

// GetAllDepartures lists every departure with its tour title joined in,
// soonest first. Departures whose tour has been deleted are dropped by the
// join rather than rendered with a blank title.
func (s *Store) GetAllDepartures() ([]models.Departure, error) {
	query := `
		SELECT d.id, d.tour_id, t.title, d.start_date, d.end_date, d.slots, d.status
		FROM departures d
		JOIN tours t ON d.tour_id = t.id
		ORDER BY d.start_date ASC
	`
	return s.queryDepartures(query)
}

func (s *Store) GetDeparturesByTour(tourID string) ([]models.Departure, error) {
	query := `
		SELECT d.id, d.tour_id, t.title, d.start_date, d.end_date, d.slots, d.status
		FROM departures d
		JOIN tours t ON d.tour_id = t.id
		WHERE d.tour_id = ?
		ORDER BY d.start_date ASC
	`
	return s.queryDepartures(query, tourID)
}

func (s *Store) GetDepartureByID(id string) (*models.Departure, error) {
	query := `
		SELECT d.id, d.tour_id, t.title, d.start_date, d.end_date, d.slots, d.status
		FROM departures d
		JOIN tours t ON d.tour_id = t.id
		WHERE d.id = ?
	`
	var d models.Departure
	err := s.DB.QueryRow(query, id).Scan(&d.ID, &d.TourID, &d.TourTitle, &d.StartDate, &d.EndDate, &d.Slots, &d.Status)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateDeparture sets dates, slots, and status. Status is whatever the
// editor chose; it is deliberately not derived from the slot count.
func (s *Store) UpdateDeparture(d *models.Departure) error {
	query := `UPDATE departures SET start_date = ?, end_date = ?, slots = ?, status = ? WHERE id = ?`
	res, err := s.DB.Exec(query, d.StartDate, d.EndDate, d.Slots, d.Status, d.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteDeparture(id string) error {
	_, err := s.DB.Exec(`DELETE FROM departures WHERE id = ?`, id)
	return err
}

func (s *Store) queryDepartures(query string, args ...any) ([]models.Departure, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departures []models.Departure
	for rows.Next() {
		var d models.Departure
		if err := rows.Scan(&d.ID, &d.TourID, &d.TourTitle, &d.StartDate, &d.EndDate, &d.Slots, &d.Status); err != nil {
			return nil, err
		}
		departures = append(departures, d)
	}
	return departures, rows.Err()
}
