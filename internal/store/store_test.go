package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abinitio185/revrom/internal/models"
	"github.com/abinitio185/revrom/internal/seed"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.InitSchema())
	return s
}

func testTour() *models.Tour {
	return &models.Tour{
		Title:       "Spiti Circuit",
		Destination: "Spiti, India",
		Route:       "Shimla - Kaza - Manali",
		ShortDesc:   "High villages and higher passes.",
		Duration:    8,
		Price:       72000,
		Difficulty:  models.DifficultyAdvanced,
		Itinerary: []models.ItineraryDay{
			{Day: 1, Title: "Arrive Shimla", Description: "Briefing and bike handover."},
			{Day: 2, Title: "Shimla to Sarahan", Description: "Old Hindustan-Tibet road."},
		},
		Inclusions: []string{"Bike", "Fuel"},
		Exclusions: []string{"Flights"},
		Activities: []string{"Riding"},
		Reviews: []models.Review{
			{Name: "Dev", Rating: 5, Comment: "Great", Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestTourCRUD(t *testing.T) {
	s := newTestStore(t)

	tour := testTour()
	require.NoError(t, s.CreateTour(tour))
	require.NotEmpty(t, tour.ID, "CreateTour assigns an id")

	got, err := s.GetTourByID(tour.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spiti Circuit", got.Title)
	assert.Len(t, got.Itinerary, 2)
	assert.Equal(t, []string{"Bike", "Fuel"}, got.Inclusions)
	require.Len(t, got.Reviews, 1)
	assert.Equal(t, 5, got.Reviews[0].Rating)

	got.Title = "Spiti Circuit (reversed)"
	got.Itinerary = append(got.Itinerary, models.ItineraryDay{Day: 3, Title: "Sarahan to Kalpa"})
	require.NoError(t, s.UpdateTour(got))

	updated, err := s.GetTourByID(tour.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spiti Circuit (reversed)", updated.Title)
	assert.Len(t, updated.Itinerary, 3)

	require.NoError(t, s.DeleteTour(tour.ID))
	_, err = s.GetTourByID(tour.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateTour_Missing(t *testing.T) {
	s := newTestStore(t)
	tour := testTour()
	tour.ID = "no-such-tour"
	assert.ErrorIs(t, s.UpdateTour(tour), ErrNotFound)
}

func TestDepartures_JoinAndOrphanCleanup(t *testing.T) {
	s := newTestStore(t)

	tour := testTour()
	require.NoError(t, s.CreateTour(tour))

	dep := &models.Departure{
		TourID:    tour.ID,
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC),
		Slots:     6,
		Status:    models.DepartureAvailable,
	}
	require.NoError(t, s.CreateDeparture(dep))

	all, err := s.GetAllDepartures()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Spiti Circuit", all[0].TourTitle, "tour title is joined in")

	dep.Slots = 0
	dep.Status = models.DepartureSoldOut
	require.NoError(t, s.UpdateDeparture(dep))
	got, err := s.GetDepartureByID(dep.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DepartureSoldOut, got.Status)

	// Deleting the tour takes its departures with it.
	require.NoError(t, s.DeleteTour(tour.ID))
	all, err = s.GetAllDepartures()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLeads_PagingAndStatus(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.CreateItineraryQuery(&models.ItineraryQuery{
			Name:        "Lead",
			Email:       "lead@example.com",
			Preferences: "10 days, no camping",
		}))
	}

	leads, err := s.GetItineraryQueries(2, 0)
	require.NoError(t, err)
	assert.Len(t, leads, 2)
	assert.Equal(t, models.LeadNew, leads[0].Status, "status defaults to New")

	total, err := s.GetTotalItineraryQueriesCount()
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	require.NoError(t, s.UpdateItineraryQueryStatus(leads[0].ID, models.LeadContacted))
	assert.ErrorIs(t, s.UpdateItineraryQueryStatus("missing", models.LeadClosed), ErrNotFound)
}

func TestCustomPages_VisibilityGatesSlugLookup(t *testing.T) {
	s := newTestStore(t)

	page := &models.CustomPage{Slug: "faq", Title: "FAQ", Body: "## Questions", Visible: true}
	require.NoError(t, s.CreateCustomPage(page))

	got, err := s.GetCustomPageBySlug("faq")
	require.NoError(t, err)
	assert.Equal(t, "FAQ", got.Title)

	got.Visible = false
	require.NoError(t, s.UpdateCustomPage(got))
	_, err = s.GetCustomPageBySlug("faq")
	assert.ErrorIs(t, err, ErrNotFound, "hidden pages are not served")

	// Still reachable by id for the admin editor.
	_, err = s.GetCustomPageByID(page.ID)
	assert.NoError(t, err)
}

func TestSeedAndStats(t *testing.T) {
	s := newTestStore(t)

	fixtures, err := seed.Load()
	require.NoError(t, err)
	require.NoError(t, s.Seed(fixtures))

	tours, err := s.GetAllTours()
	require.NoError(t, err)
	assert.Len(t, tours, 3)

	stats, err := s.GetDashboardStats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalTours)
	assert.Equal(t, len(fixtures.Departures), stats.TotalDepartures)
	assert.NotEmpty(t, stats.ToursByDifficulty)
}

func TestUsers(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateUser("juliette", "hashed"))

	u, err := s.GetUserByUsername("juliette")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "hashed", u.Password)

	missing, err := s.GetUserByUsername("nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
