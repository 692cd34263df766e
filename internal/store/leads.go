package store

import (
	"github.com/google/uuid"

	"github.com/abinitio185/revrom/internal/models"
)

func (s *Store) CreateItineraryQuery(q *models.ItineraryQuery) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.Status == "" {
		q.Status = models.LeadNew
	}
	query := `
		INSERT INTO itinerary_queries (id, name, email, phone, preferences, generated, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	_, err := s.DB.Exec(query, q.ID, q.Name, q.Email, q.Phone, q.Preferences, q.Generated, q.Status)
	return err
}

// GetItineraryQueries lists leads newest first, paged for the admin Leads tab.
func (s *Store) GetItineraryQueries(limit, offset int) ([]models.ItineraryQuery, error) {
	query := `
		SELECT id, name, email, COALESCE(phone, ''), COALESCE(preferences, ''), COALESCE(generated, ''), status, created_at
		FROM itinerary_queries
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := s.DB.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []models.ItineraryQuery
	for rows.Next() {
		var q models.ItineraryQuery
		if err := rows.Scan(&q.ID, &q.Name, &q.Email, &q.Phone, &q.Preferences, &q.Generated, &q.Status, &q.CreatedAt); err != nil {
			return nil, err
		}
		leads = append(leads, q)
	}
	return leads, rows.Err()
}

func (s *Store) GetTotalItineraryQueriesCount() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM itinerary_queries`).Scan(&count)
	return count, err
}

func (s *Store) UpdateItineraryQueryStatus(id, status string) error {
	res, err := s.DB.Exec(`UPDATE itinerary_queries SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
