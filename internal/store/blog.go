package store

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/abinitio185/revrom/internal/models"
)

func (s *Store) CreateBlogPost(p *models.BlogPost) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `INSERT INTO blog_posts (id, title, excerpt, body, image_url, author, published_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.DB.Exec(query, p.ID, p.Title, p.Excerpt, p.Body, p.ImageURL, p.Author, p.PublishedAt)
	return err
}

func (s *Store) GetAllBlogPosts() ([]models.BlogPost, error) {
	query := `SELECT id, title, COALESCE(excerpt, ''), COALESCE(body, ''), COALESCE(image_url, ''), COALESCE(author, ''), published_at FROM blog_posts ORDER BY published_at DESC`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.BlogPost
	for rows.Next() {
		var p models.BlogPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Body, &p.ImageURL, &p.Author, &p.PublishedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *Store) GetBlogPostByID(id string) (*models.BlogPost, error) {
	query := `SELECT id, title, COALESCE(excerpt, ''), COALESCE(body, ''), COALESCE(image_url, ''), COALESCE(author, ''), published_at FROM blog_posts WHERE id = ?`
	var p models.BlogPost
	err := s.DB.QueryRow(query, id).Scan(&p.ID, &p.Title, &p.Excerpt, &p.Body, &p.ImageURL, &p.Author, &p.PublishedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdateBlogPost(p *models.BlogPost) error {
	query := `UPDATE blog_posts SET title = ?, excerpt = ?, body = ?, image_url = ?, author = ? WHERE id = ?`
	res, err := s.DB.Exec(query, p.Title, p.Excerpt, p.Body, p.ImageURL, p.Author, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateBlogPostImage(id, imageURL string) error {
	_, err := s.DB.Exec(`UPDATE blog_posts SET image_url = ? WHERE id = ?`, imageURL, id)
	return err
}

func (s *Store) DeleteBlogPost(id string) error {
	_, err := s.DB.Exec(`DELETE FROM blog_posts WHERE id = ?`, id)
	return err
}
