package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abinitio185/revrom/internal/ai"
	"github.com/abinitio185/revrom/internal/models"
	"github.com/abinitio185/revrom/internal/seed"
	"github.com/abinitio185/revrom/internal/sitecontent"
	"github.com/abinitio185/revrom/internal/store"
)

type testEnv struct {
	store     *store.Store
	site      *sitecontent.Store
	sessions  *sessions.CookieStore
	templates *TemplateCache
	ai        *ai.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := store.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.InitSchema())

	fixtures, err := seed.Load()
	require.NoError(t, err)
	require.NoError(t, db.Seed(fixtures))

	templates := NewTemplateCache()
	require.NoError(t, templates.Load("../../templates"))

	return &testEnv{
		store:     db,
		site:      sitecontent.NewStore(fixtures.Site),
		sessions:  sessions.NewCookieStore([]byte("test-session-key-32-bytes-long!!")),
		templates: templates,
		// The dead base URL guarantees the client cannot reach a network;
		// with no API key it must answer from fallbacks anyway.
		ai: ai.NewClient("http://127.0.0.1:1", ""),
	}
}

func (e *testEnv) home() *HomeHandler {
	return &HomeHandler{Store: e.store, Site: e.site, Templates: e.templates, SessionStore: e.sessions, AI: e.ai}
}

func (e *testEnv) booking() *BookingHandler {
	return &BookingHandler{Store: e.store, Site: e.site, Templates: e.templates, SessionStore: e.sessions, AI: e.ai}
}

func (e *testEnv) admin() *AdminHandler {
	return &AdminHandler{Store: e.store, Site: e.site, Templates: e.templates, SessionStore: e.sessions, AI: e.ai}
}

func TestIndex_RendersSeededTours(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	env.home().Index(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Manali to Leh Grand Traverse")
	assert.Contains(t, body, "Nubra Valley Explorer")
	assert.Contains(t, body, "Zanskar Frontier Ride")
}

func TestIndex_DestinationDeepLink(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/?destination="+url.QueryEscape("Ladakh, India"), nil)
	rec := httptest.NewRecorder()
	env.home().Index(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nubra Valley Explorer")
	assert.Contains(t, rec.Body.String(), "Clear filters")
}

func TestIndex_NoMatchesShowsClearAffordance(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/?q=coastline", nil)
	rec := httptest.NewRecorder()
	env.home().Index(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "No tours match")
	assert.NotContains(t, body, "Nubra Valley Explorer")
}

func TestIndex_DurationFilter(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/?duration=1-7", nil)
	rec := httptest.NewRecorder()
	env.home().Index(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Nubra Valley Explorer")
	assert.NotContains(t, body, "Manali to Leh Grand Traverse")
	assert.NotContains(t, body, "Zanskar Frontier Ride")
}

func TestIndex_SoldOutDepartureNotBookable(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	env.home().Index(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "status-sold-out")
	assert.NotContains(t, body, "departure=dep-nubra-jun")
	assert.Contains(t, body, "departure=dep-nubra-aug")
}

func TestIndex_PageLinksKeepFilters(t *testing.T) {
	env := newTestEnv(t)

	// Enough short tours to push the 1-7 day bucket past one page.
	for i := 0; i < 12; i++ {
		require.NoError(t, env.store.CreateTour(&models.Tour{
			Title:       fmt.Sprintf("Weekend Loop %d", i),
			Destination: "Ladakh, India",
			Duration:    5,
			Difficulty:  models.DifficultyIntermediate,
		}))
	}

	req := httptest.NewRequest(http.MethodGet, "/?duration=1-7", nil)
	rec := httptest.NewRecorder()
	env.home().Index(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "duration=1-7&amp;page=2")
	assert.NotContains(t, body, `href="?page=2"`)
}

func TestTourDetail_UnknownIDRedirectsHome(t *testing.T) {
	env := newTestEnv(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/tours/{id}", env.home().TourDetail)

	req := httptest.NewRequest(http.MethodGet, "/tours/no-such-tour", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestTourDetail_RendersItineraryAndDepartures(t *testing.T) {
	env := newTestEnv(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/tours/{id}", env.home().TourDetail)

	req := httptest.NewRequest(http.MethodGet, "/tours/tour-nubra", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Nubra Valley Explorer")
	assert.Contains(t, body, "Day 1")
	assert.Contains(t, body, "wa.me")
}

func TestTourDetail_SoldOutDepartureNotBookable(t *testing.T) {
	env := newTestEnv(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/tours/{id}", env.home().TourDetail)

	req := httptest.NewRequest(http.MethodGet, "/tours/tour-nubra", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Sold Out")
	assert.NotContains(t, body, "departure=dep-nubra-jun")
	assert.Contains(t, body, "departure=dep-nubra-aug")
}

func TestBookingForm_OmitsSoldOutDepartures(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/book?tour=tour-nubra", nil)
	rec := httptest.NewRecorder()
	env.booking().Form(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "2 Aug 2026")    // the open departure is offered
	assert.NotContains(t, body, "7 Jun 2026") // the sold-out one is not
}

func TestBookingSubmit_ValidLeadsToWhatsApp(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{
		"tour_id": {"tour-nubra"},
		"name":    {"Asha Rao"},
		"email":   {"asha@example.com"},
		"terms":   {"on"},
	}
	req := httptest.NewRequest(http.MethodPost, "/book", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.booking().Submit(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "wa.me")
}

func TestBookingSubmit_InvalidEmailRerendersInline(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{
		"tour_id": {"tour-nubra"},
		"name":    {"Asha Rao"},
		"email":   {"not-an-email"},
		"terms":   {"on"},
	}
	req := httptest.NewRequest(http.MethodPost, "/book", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.booking().Submit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "valid email")
	assert.Contains(t, body, "Asha Rao") // field values survive the re-render
}

func TestBookingSubmit_TermsRequired(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{
		"tour_id": {"tour-nubra"},
		"name":    {"Asha Rao"},
		"email":   {"asha@example.com"},
	}
	req := httptest.NewRequest(http.MethodPost, "/book", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.booking().Submit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestItinerarySubmit_SavesLeadEvenWhenGenerationFails(t *testing.T) {
	env := newTestEnv(t)
	// A configured client pointed at a dead address forces a generation error.
	broken := &BookingHandler{
		Store: env.store, Site: env.site, Templates: env.templates,
		SessionStore: env.sessions, AI: ai.NewClient("http://127.0.0.1:1", "key"),
	}

	form := url.Values{
		"name":        {"Asha Rao"},
		"email":       {"asha@example.com"},
		"preferences": {"10 days, high passes, small group"},
	}
	req := httptest.NewRequest(http.MethodPost, "/itinerary", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	broken.ItinerarySubmit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Retry")

	count, err := env.store.GetTotalItineraryQueriesCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestItinerarySubmit_UnconfiguredClientUsesFallback(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{
		"name":        {"Asha Rao"},
		"email":       {"asha@example.com"},
		"preferences": {"a week around Leh"},
	}
	req := httptest.NewRequest(http.MethodPost, "/itinerary", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.booking().ItinerarySubmit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your draft itinerary")
}

func TestAuthMiddleware_RedirectsAnonymousToLogin(t *testing.T) {
	env := newTestEnv(t)

	called := false
	protected := env.admin().AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	protected(rec, req)

	assert.False(t, called)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestLoginPost_WrongPasswordRedirectsBack(t *testing.T) {
	env := newTestEnv(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, env.store.CreateUser("admin", string(hash)))

	form := url.Values{"username": {"admin"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.admin().LoginPost(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestLoginPost_SuccessRedirectsToAdmin(t *testing.T) {
	env := newTestEnv(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, env.store.CreateUser("admin", string(hash)))

	form := url.Values{"username": {"admin"}, "password": {"correct horse"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.admin().LoginPost(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}

func TestBuilder_MoveAndToggleSections(t *testing.T) {
	env := newTestEnv(t)
	admin := env.admin()

	before := env.site.Get().Sections
	require.GreaterOrEqual(t, len(before), 2)

	form := url.Values{"index": {"0"}, "direction": {"down"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/builder/move", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	admin.MoveSection(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	after := env.site.Get().Sections
	assert.Equal(t, before[0].ID, after[1].ID)
	assert.Equal(t, before[1].ID, after[0].ID)

	form = url.Values{"index": {"0"}}
	req = httptest.NewRequest(http.MethodPost, "/admin/builder/toggle", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	admin.ToggleSection(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.NotEqual(t, after[0].Visible, env.site.Get().Sections[0].Visible)
}

func TestHiddenSectionSkippedOnHomepage(t *testing.T) {
	env := newTestEnv(t)

	// Hide every section except the tours grid.
	sections := env.site.Get().Sections
	for i, sec := range sections {
		if sec.ID != "tours" && sec.Visible {
			env.site.ToggleSection(i)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	env.home().Index(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Nubra Valley Explorer")
	assert.NotContains(t, body, "class=\"hero\"")
}

func TestGenerateBlogImage_FailureAppliesPlaceholder(t *testing.T) {
	env := newTestEnv(t)
	admin := &AdminHandler{
		Store: env.store, Site: env.site, Templates: env.templates,
		SessionStore: env.sessions, AI: ai.NewClient("http://127.0.0.1:1", "key"),
	}

	posts, err := env.store.GetAllBlogPosts()
	require.NoError(t, err)
	require.NotEmpty(t, posts)

	form := url.Values{"id": {posts[0].ID}}
	req := httptest.NewRequest(http.MethodPost, "/admin/content/posts/generate-image", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	admin.GenerateBlogImage(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)

	updated, err := env.store.GetBlogPostByID(posts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, ai.FallbackBlogImage, updated.ImageURL)
}

func TestUpdateLeadStatus_RejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{"id": {"lead-1"}, "status": {"archived"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/leads/status", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.admin().UpdateLeadStatus(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/leads", rec.Header().Get("Location"))
}
