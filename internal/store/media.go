package store

import (
	"github.com/google/uuid"

	"github.com/abinitio185/revrom/internal/models"
)

// Gallery photos, Instagram embeds, and imported Google reviews share the
// same add/list/delete shape; the admin Media tab manages all three.

func (s *Store) AddGalleryPhoto(p *models.GalleryPhoto) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := s.DB.Exec(`INSERT INTO gallery_photos (id, caption, image_url) VALUES (?, ?, ?)`, p.ID, p.Caption, p.ImageURL)
	return err
}

func (s *Store) GetAllGalleryPhotos() ([]models.GalleryPhoto, error) {
	rows, err := s.DB.Query(`SELECT id, COALESCE(caption, ''), image_url FROM gallery_photos ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.GalleryPhoto
	for rows.Next() {
		var p models.GalleryPhoto
		if err := rows.Scan(&p.ID, &p.Caption, &p.ImageURL); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (s *Store) DeleteGalleryPhoto(id string) error {
	_, err := s.DB.Exec(`DELETE FROM gallery_photos WHERE id = ?`, id)
	return err
}

func (s *Store) AddInstagramPost(p *models.InstagramPost) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := s.DB.Exec(`INSERT INTO instagram_posts (id, image_url, caption, permalink) VALUES (?, ?, ?, ?)`,
		p.ID, p.ImageURL, p.Caption, p.Permalink)
	return err
}

func (s *Store) GetAllInstagramPosts() ([]models.InstagramPost, error) {
	rows, err := s.DB.Query(`SELECT id, image_url, COALESCE(caption, ''), COALESCE(permalink, '') FROM instagram_posts ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.InstagramPost
	for rows.Next() {
		var p models.InstagramPost
		if err := rows.Scan(&p.ID, &p.ImageURL, &p.Caption, &p.Permalink); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *Store) DeleteInstagramPost(id string) error {
	_, err := s.DB.Exec(`DELETE FROM instagram_posts WHERE id = ?`, id)
	return err
}

func (s *Store) AddGoogleReview(r *models.GoogleReview) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	_, err := s.DB.Exec(`INSERT INTO google_reviews (id, author, rating, review_text, review_date) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Author, r.Rating, r.Text, r.Date)
	return err
}

func (s *Store) GetAllGoogleReviews() ([]models.GoogleReview, error) {
	rows, err := s.DB.Query(`SELECT id, author, rating, COALESCE(review_text, ''), review_date FROM google_reviews ORDER BY review_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.GoogleReview
	for rows.Next() {
		var r models.GoogleReview
		if err := rows.Scan(&r.ID, &r.Author, &r.Rating, &r.Text, &r.Date); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *Store) DeleteGoogleReview(id string) error {
	_, err := s.DB.Exec(`DELETE FROM google_reviews WHERE id = ?`, id)
	return err
}
