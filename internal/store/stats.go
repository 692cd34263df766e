package store

import "database/sql"

// DashboardStats backs the admin landing page.
type DashboardStats struct {
	TotalTours        int
	TotalDepartures   int
	TotalBlogPosts    int
	TotalGalleryItems int
	TotalLeads        int
	LeadsByStatus     map[string]int
	ToursByDifficulty []DifficultyCount
}

type DifficultyCount struct {
	Difficulty string
	Count      int
}

func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		LeadsByStatus: make(map[string]int),
	}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM tours", &stats.TotalTours},
		{"SELECT COUNT(*) FROM departures", &stats.TotalDepartures},
		{"SELECT COUNT(*) FROM blog_posts", &stats.TotalBlogPosts},
		{"SELECT COUNT(*) FROM gallery_photos", &stats.TotalGalleryItems},
		{"SELECT COUNT(*) FROM itinerary_queries", &stats.TotalLeads},
	}
	for _, c := range counts {
		if err := s.DB.QueryRow(c.query).Scan(c.dest); err != nil && err != sql.ErrNoRows {
			return nil, err
		}
	}

	rows, err := s.DB.Query("SELECT status, COUNT(*) FROM itinerary_queries GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.LeadsByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	diffRows, err := s.DB.Query(`
		SELECT difficulty, COUNT(*) as tour_count
		FROM tours
		GROUP BY difficulty
		ORDER BY tour_count DESC
	`)
	if err != nil {
		return nil, err
	}
	defer diffRows.Close()
	for diffRows.Next() {
		var dc DifficultyCount
		if err := diffRows.Scan(&dc.Difficulty, &dc.Count); err != nil {
			return nil, err
		}
		stats.ToursByDifficulty = append(stats.ToursByDifficulty, dc)
	}

	return stats, diffRows.Err()
}
