package store

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/abinitio185/revrom/internal/models"
)

func (s *Store) CreateCustomPage(p *models.CustomPage) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `INSERT INTO custom_pages (id, slug, title, body, visible) VALUES (?, ?, ?, ?, ?)`
	_, err := s.DB.Exec(query, p.ID, p.Slug, p.Title, p.Body, p.Visible)
	return err
}

func (s *Store) GetAllCustomPages() ([]models.CustomPage, error) {
	rows, err := s.DB.Query(`SELECT id, slug, title, COALESCE(body, ''), visible FROM custom_pages ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []models.CustomPage
	for rows.Next() {
		var p models.CustomPage
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.Visible); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// GetVisibleCustomPages lists the pages that should appear in site navigation.
func (s *Store) GetVisibleCustomPages() ([]models.CustomPage, error) {
	rows, err := s.DB.Query(`SELECT id, slug, title, COALESCE(body, ''), visible FROM custom_pages WHERE visible = 1 ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []models.CustomPage
	for rows.Next() {
		var p models.CustomPage
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.Visible); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// GetCustomPageBySlug serves /p/{slug}. Hidden pages are not found.
func (s *Store) GetCustomPageBySlug(slug string) (*models.CustomPage, error) {
	query := `SELECT id, slug, title, COALESCE(body, ''), visible FROM custom_pages WHERE slug = ? AND visible = 1`
	var p models.CustomPage
	err := s.DB.QueryRow(query, slug).Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.Visible)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) GetCustomPageByID(id string) (*models.CustomPage, error) {
	query := `SELECT id, slug, title, COALESCE(body, ''), visible FROM custom_pages WHERE id = ?`
	var p models.CustomPage
	err := s.DB.QueryRow(query, id).Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.Visible)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdateCustomPage(p *models.CustomPage) error {
	query := `UPDATE custom_pages SET slug = ?, title = ?, body = ?, visible = ? WHERE id = ?`
	res, err := s.DB.Exec(query, p.Slug, p.Title, p.Body, p.Visible, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCustomPage(id string) error {
	_, err := s.DB.Exec(`DELETE FROM custom_pages WHERE id = ?`, id)
	return err
}
