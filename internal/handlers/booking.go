package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/abinitio185/revrom/internal/ai"
	"github.com/abinitio185/revrom/internal/models"
	"github.com/abinitio185/revrom/internal/sitecontent"
	"github.com/abinitio185/revrom/internal/store"
	"github.com/abinitio185/revrom/internal/whatsapp"
)

// BookingHandler owns the two lead-capture flows: the booking form that
// hands off to WhatsApp, and the custom-itinerary form that calls the AI
// gateway and records the enquiry as a lead.
type BookingHandler struct {
	Store        *store.Store
	Site         *sitecontent.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	AI           *ai.Client
}

// Form renders the booking form for /book?tour={id}&departure={id}.
func (h *BookingHandler) Form(w http.ResponseWriter, r *http.Request) {
	tour, err := h.Store.GetTourByID(r.URL.Query().Get("tour"))
	if errors.Is(err, store.ErrNotFound) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		http.Error(w, "Error fetching tour", http.StatusInternalServerError)
		return
	}

	departures, err := h.Store.GetDeparturesByTour(tour.ID)
	if err != nil {
		http.Error(w, "Error fetching departures", http.StatusInternalServerError)
		return
	}

	h.renderForm(w, r, tour, departures, nil, nil)
}

// Submit validates the booking form and, when valid, redirects straight to
// the prefilled WhatsApp conversation. Validation failures re-render the
// form with inline per-field errors; nothing leaves the site until the form
// is clean.
func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	tour, err := h.Store.GetTourByID(r.FormValue("tour_id"))
	if errors.Is(err, store.ErrNotFound) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		http.Error(w, "Error fetching tour", http.StatusInternalServerError)
		return
	}

	name := r.FormValue("name")
	email := r.FormValue("email")
	departureDate := r.FormValue("departure")
	terms := r.FormValue("terms")

	fieldErrors := make(map[string]string)
	if name == "" {
		fieldErrors["name"] = "Your name is required."
	}
	if email == "" {
		fieldErrors["email"] = "Email address is required."
	} else if !isValidEmail(email) {
		fieldErrors["email"] = "Please enter a valid email address."
	}
	if terms != "on" {
		fieldErrors["terms"] = "Please accept the booking terms."
	}

	if len(fieldErrors) > 0 {
		departures, _ := h.Store.GetDeparturesByTour(tour.ID)
		h.renderForm(w, r, tour, departures, fieldErrors, r.Form)
		return
	}

	site := h.Site.Get()
	link := whatsapp.Link(site.WhatsApp, whatsapp.BookingMessage(tour.Title, departureDate, name))
	http.Redirect(w, r, link, http.StatusSeeOther)
}

func (h *BookingHandler) renderForm(w http.ResponseWriter, r *http.Request, tour *models.Tour, departures []models.Departure, fieldErrors map[string]string, values map[string][]string) {
	tmpl := h.Templates.Get("book.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"Site":       h.Site.Get(),
		"Tour":       tour,
		"Departures": departures,
		"Errors":     fieldErrors,
		"Values":     values,
		"CsrfField":  csrf.TemplateField(r),
	})
}

// ItineraryForm renders the custom-itinerary request page.
func (h *BookingHandler) ItineraryForm(w http.ResponseWriter, r *http.Request) {
	h.renderItinerary(w, r, "", "", nil, nil)
}

// ItinerarySubmit validates contact details, asks the AI gateway to draft an
// itinerary, and records the enquiry as a lead. Generation failure is the
// one AI path surfaced to the visitor: the error message renders with a
// retry button and the lead is still captured.
func (h *BookingHandler) ItinerarySubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	email := r.FormValue("email")
	phone := r.FormValue("phone")
	preferences := r.FormValue("preferences")

	fieldErrors := make(map[string]string)
	if name == "" {
		fieldErrors["name"] = "Your name is required."
	}
	if email == "" {
		fieldErrors["email"] = "Email address is required."
	} else if !isValidEmail(email) {
		fieldErrors["email"] = "Please enter a valid email address."
	}
	if preferences == "" {
		fieldErrors["preferences"] = "Tell us a little about the ride you want."
	}
	if len(fieldErrors) > 0 {
		h.renderItinerary(w, r, "", "", fieldErrors, r.Form)
		return
	}

	examples, err := h.Store.GetAllTours()
	if err != nil {
		http.Error(w, "Error fetching tours", http.StatusInternalServerError)
		return
	}
	if len(examples) > 3 {
		examples = examples[:3]
	}

	generated, genErr := h.AI.GenerateCustomItinerary(r.Context(), preferences, examples)

	lead := &models.ItineraryQuery{
		Name:        name,
		Email:       email,
		Phone:       phone,
		Preferences: preferences,
		Generated:   generated,
	}
	if err := h.Store.CreateItineraryQuery(lead); err != nil {
		http.Error(w, "Error saving your enquiry", http.StatusInternalServerError)
		return
	}

	if genErr != nil {
		h.renderItinerary(w, r, "", genErr.Error(), nil, r.Form)
		return
	}
	h.renderItinerary(w, r, generated, "", nil, r.Form)
}

func (h *BookingHandler) renderItinerary(w http.ResponseWriter, r *http.Request, generated, genError string, fieldErrors map[string]string, values map[string][]string) {
	tmpl := h.Templates.Get("itinerary.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"Site":       h.Site.Get(),
		"Generated":  generated,
		"GenError":   genError,
		"Errors":     fieldErrors,
		"Values":     values,
		"CsrfField":  csrf.TemplateField(r),
	})
}

// Basic email validation regex
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
