package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/abinitio185/revrom/internal/ai"
	"github.com/abinitio185/revrom/internal/catalog"
	"github.com/abinitio185/revrom/internal/models"
	"github.com/abinitio185/revrom/internal/sitecontent"
	"github.com/abinitio185/revrom/internal/store"
	"github.com/abinitio185/revrom/internal/whatsapp"
)

const toursPerPage = 9

// HomeHandler serves every public page: the composed homepage, tour
// details, blog, gallery, and editor-authored custom pages.
type HomeHandler struct {
	Store        *store.Store
	Site         *sitecontent.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	AI           *ai.Client
}

// Index renders the homepage: hero plus the visible sections in their
// builder order, with the tour catalog filtered and paginated from query
// params. Navigation destination links deep-link here as /?destination=X,
// which preselects that filter for the single rendered page.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	tours, err := h.Store.GetAllTours()
	if err != nil {
		http.Error(w, "Error fetching tours", http.StatusInternalServerError)
		return
	}

	criteria := catalog.Criteria{
		Search:      r.URL.Query().Get("q"),
		Destination: r.URL.Query().Get("destination"),
		Duration:    r.URL.Query().Get("duration"),
		Difficulty:  r.URL.Query().Get("difficulty"),
	}
	filtered := catalog.FilterTours(tours, criteria)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	paged := catalog.Paginate(filtered, page, toursPerPage).WithQuery(r.URL.Query())

	departures, err := h.Store.GetAllDepartures()
	if err != nil {
		http.Error(w, "Error fetching departures", http.StatusInternalServerError)
		return
	}
	posts, err := h.Store.GetAllBlogPosts()
	if err != nil {
		http.Error(w, "Error fetching posts", http.StatusInternalServerError)
		return
	}
	photos, _ := h.Store.GetAllGalleryPhotos()
	instagram, _ := h.Store.GetAllInstagramPosts()
	googleReviews, _ := h.Store.GetAllGoogleReviews()

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, "public-session")
	data := map[string]interface{}{
		"Site":          h.Site.Get(),
		"Sections":      h.Site.VisibleSections(),
		"Tours":         paged,
		"Criteria":      criteria,
		"Filtered":      !criteria.IsZero(),
		"Destinations":  catalog.Destinations(tours),
		"Durations":     catalog.DurationBuckets(),
		"Difficulties":  []string{models.DifficultyIntermediate, models.DifficultyAdvanced, models.DifficultyExpert},
		"Departures":    departures,
		"Posts":         posts,
		"Photos":        photos,
		"Instagram":     instagram,
		"GoogleReviews": googleReviews,
		"Flashes":       GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// TourDetail serves /tours/{id}. A stale or hand-edited id redirects home
// instead of rendering an empty page.
func (h *HomeHandler) TourDetail(w http.ResponseWriter, r *http.Request) {
	tour, ok := h.lookupTour(w, r, r.PathValue("id"))
	if !ok {
		return
	}

	departures, err := h.Store.GetDeparturesByTour(tour.ID)
	if err != nil {
		http.Error(w, "Error fetching departures", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("tour.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	site := h.Site.Get()
	session, _ := h.SessionStore.Get(r, "public-session")
	data := map[string]interface{}{
		"Site":         site,
		"Tour":         tour,
		"Departures":   departures,
		"WhatsAppLink": whatsapp.Link(site.WhatsApp, whatsapp.BookingMessage(tour.Title, "", "")),
		"CsrfField":    csrf.TemplateField(r),
		"Flashes":      GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// PackingList handles POST /tours/{id}/packing-list: it asks the AI gateway
// for a packing list and re-renders the tour page with the result. A failed
// call degrades to fixed fallback text; this action never errors out.
func (h *HomeHandler) PackingList(w http.ResponseWriter, r *http.Request) {
	tour, ok := h.lookupTour(w, r, r.PathValue("id"))
	if !ok {
		return
	}

	list, err := h.AI.GeneratePackingList(r.Context(), *tour)
	if err != nil {
		slog.Error("Packing list generation failed", "tour", tour.ID, "error", err)
		list = "We couldn't put a packing list together just now. Please try again in a few minutes."
	}

	departures, _ := h.Store.GetDeparturesByTour(tour.ID)

	tmpl := h.Templates.Get("tour.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	site := h.Site.Get()
	session, _ := h.SessionStore.Get(r, "public-session")
	data := map[string]interface{}{
		"Site":         site,
		"Tour":         tour,
		"Departures":   departures,
		"PackingList":  list,
		"WhatsAppLink": whatsapp.Link(site.WhatsApp, whatsapp.BookingMessage(tour.Title, "", "")),
		"CsrfField":    csrf.TemplateField(r),
		"Flashes":      GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *HomeHandler) Blog(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Store.GetAllBlogPosts()
	if err != nil {
		http.Error(w, "Error fetching posts", http.StatusInternalServerError)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	paged := catalog.Paginate(posts, page, 6).WithQuery(r.URL.Query())

	tmpl := h.Templates.Get("blog.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"Site":  h.Site.Get(),
		"Posts": paged,
	})
}

func (h *HomeHandler) BlogPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.Store.GetBlogPostByID(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		h.redirectHome(w, r, "That post is no longer available.")
		return
	}
	if err != nil {
		http.Error(w, "Error fetching post", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("blog_post.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"Site": h.Site.Get(),
		"Post": post,
	})
}

func (h *HomeHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	photos, err := h.Store.GetAllGalleryPhotos()
	if err != nil {
		http.Error(w, "Error fetching gallery", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("gallery.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"Site":   h.Site.Get(),
		"Photos": photos,
	})
}

// CustomPage serves /p/{slug} for editor-authored pages.
func (h *HomeHandler) CustomPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.Store.GetCustomPageBySlug(r.PathValue("slug"))
	if errors.Is(err, store.ErrNotFound) {
		h.redirectHome(w, r, "")
		return
	}
	if err != nil {
		http.Error(w, "Error fetching page", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("page.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"Site": h.Site.Get(),
		"Page": page,
	})
}

func (h *HomeHandler) Contact(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("contact.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	site := h.Site.Get()
	tmpl.Execute(w, map[string]interface{}{
		"Site":         site,
		"WhatsAppLink": whatsapp.Link(site.WhatsApp, "Hi! I have a question about your tours."),
	})
}

// lookupTour fetches a tour or redirects home with a flash. The bool result
// is false when a response has already been written.
func (h *HomeHandler) lookupTour(w http.ResponseWriter, r *http.Request, id string) (*models.Tour, bool) {
	tour, err := h.Store.GetTourByID(id)
	if errors.Is(err, store.ErrNotFound) {
		h.redirectHome(w, r, "That tour is no longer available.")
		return nil, false
	}
	if err != nil {
		http.Error(w, "Error fetching tour", http.StatusInternalServerError)
		return nil, false
	}
	return tour, true
}

func (h *HomeHandler) redirectHome(w http.ResponseWriter, r *http.Request, message string) {
	if message != "" {
		session, _ := h.SessionStore.Get(r, "public-session")
		session.AddFlash(FlashMessage{Type: "error", Message: message})
		session.Save(r, w)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
