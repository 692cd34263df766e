package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"

	"github.com/abinitio185/revrom/internal/models"
	"github.com/abinitio185/revrom/internal/store"
)

// ListTours renders the admin Tours tab: every tour plus every departure.
func (h *AdminHandler) ListTours(w http.ResponseWriter, r *http.Request) {
	tours, err := h.Store.GetAllTours()
	if err != nil {
		http.Error(w, "Error fetching tours", http.StatusInternalServerError)
		return
	}
	departures, err := h.Store.GetAllDepartures()
	if err != nil {
		http.Error(w, "Error fetching departures", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_tours.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Site":         h.Site.Get(),
		"Tours":        tours,
		"Departures":   departures,
		"Difficulties": []string{models.DifficultyIntermediate, models.DifficultyAdvanced, models.DifficultyExpert},
		"Statuses":     []string{models.DepartureAvailable, models.DepartureLimited, models.DepartureSoldOut},
		"CsrfField":    csrf.TemplateField(r),
		"Flashes":      GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// TourForm renders the add/edit form. With ?id= it edits, otherwise adds.
func (h *AdminHandler) TourForm(w http.ResponseWriter, r *http.Request) {
	var tour *models.Tour
	if id := r.URL.Query().Get("id"); id != "" {
		var err error
		tour, err = h.Store.GetTourByID(id)
		if errors.Is(err, store.ErrNotFound) {
			http.Redirect(w, r, "/admin/tours", http.StatusSeeOther)
			return
		}
		if err != nil {
			http.Error(w, "Error fetching tour", http.StatusInternalServerError)
			return
		}
	}

	tmpl := h.Templates.Get("admin_tour_form.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Site":         h.Site.Get(),
		"Tour":         tour,
		"Difficulties": []string{models.DifficultyIntermediate, models.DifficultyAdvanced, models.DifficultyExpert},
		"CsrfField":    csrf.TemplateField(r),
		"Flashes":      GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// SaveTour handles both create and update; an empty id means create.
func (h *AdminHandler) SaveTour(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/tours", http.StatusSeeOther)
		return
	}

	duration, _ := strconv.Atoi(r.FormValue("duration"))
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)

	tour := models.Tour{
		ID:          r.FormValue("id"),
		Title:       r.FormValue("title"),
		Destination: r.FormValue("destination"),
		Route:       r.FormValue("route"),
		ShortDesc:   r.FormValue("short_desc"),
		LongDesc:    r.FormValue("long_desc"),
		Duration:    duration,
		Price:       price,
		Difficulty:  r.FormValue("difficulty"),
		ImageURL:    r.FormValue("image_url"),
		Itinerary:   parseItinerary(r.FormValue("itinerary")),
		Inclusions:  splitLines(r.FormValue("inclusions")),
		Exclusions:  splitLines(r.FormValue("exclusions")),
		Activities:  splitLines(r.FormValue("activities")),
	}

	if msg := validateTour(&tour); msg != "" {
		session.AddFlash(FlashMessage{Type: "error", Message: msg})
		http.Redirect(w, r, "/admin/tours/new", http.StatusSeeOther)
		return
	}

	// Optional image upload overrides the URL field.
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imageURL, err := saveUploadedImage(file, header, 800)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Image upload failed: " + err.Error()})
			http.Redirect(w, r, "/admin/tours", http.StatusSeeOther)
			return
		}
		tour.ImageURL = imageURL
	}

	if tour.ID == "" {
		if err := h.Store.CreateTour(&tour); err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error saving tour."})
			http.Redirect(w, r, "/admin/tours", http.StatusSeeOther)
			return
		}
		session.AddFlash(FlashMessage{Type: "success", Message: "Tour added!"})
	} else {
		existing, err := h.Store.GetTourByID(tour.ID)
		if err == nil {
			// Reviews are not editable through this form; keep them.
			tour.Reviews = existing.Reviews
			if tour.ImageURL == "" {
				tour.ImageURL = existing.ImageURL
			}
		}
		if err := h.Store.UpdateTour(&tour); err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error updating tour."})
			http.Redirect(w, r, "/admin/tours", http.StatusSeeOther)
			return
		}
		session.AddFlash(FlashMessage{Type: "success", Message: "Tour updated!"})
	}
	http.Redirect(w, r, "/admin/tours", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteTour(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := h.Store.DeleteTour(r.FormValue("id")); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting tour."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Tour deleted (and its departures)."})
	}
	http.Redirect(w, r, "/admin/tours", http.StatusSeeOther)
}

// SaveDeparture creates or updates a departure from the Tours tab.
func (h *AdminHandler) SaveDeparture(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	start, errStart := time.Parse("2006-01-02", r.FormValue("start_date"))
	end, errEnd := time.Parse("2006-01-02", r.FormValue("end_date"))
	slots, _ := strconv.Atoi(r.FormValue("slots"))
	status := r.FormValue("status")

	if errStart != nil || errEnd != nil || end.Before(start) {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid departure dates."})
		http.Redirect(w, r, "/admin/tours", http.StatusSeeOther)
		return
	}
	if status != models.DepartureAvailable && status != models.DepartureLimited && status != models.DepartureSoldOut {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid departure status."})
		http.Redirect(w, r, "/admin/tours", http.StatusSeeOther)
		return
	}

	dep := models.Departure{
		ID:        r.FormValue("id"),
		TourID:    r.FormValue("tour_id"),
		StartDate: start,
		EndDate:   end,
		Slots:     slots,
		Status:    status,
	}

	var err error
	if dep.ID == "" {
		if _, lookupErr := h.Store.GetTourByID(dep.TourID); lookupErr != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Unknown tour for departure."})
			http.Redirect(w, r, "/admin/tours", http.StatusSeeOther)
			return
		}
		err = h.Store.CreateDeparture(&dep)
	} else {
		err = h.Store.UpdateDeparture(&dep)
	}
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving departure."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Departure saved!"})
	}
	http.Redirect(w, r, "/admin/tours", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteDeparture(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := h.Store.DeleteDeparture(r.FormValue("id")); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting departure."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Departure deleted."})
	}
	http.Redirect(w, r, "/admin/tours", http.StatusSeeOther)
}

func validateTour(t *models.Tour) string {
	switch {
	case t.Title == "":
		return "Title is required."
	case t.Destination == "":
		return "Destination is required."
	case t.Duration <= 0:
		return "Duration must be at least one day."
	case t.Price < 0:
		return "Price cannot be negative."
	case t.Difficulty != models.DifficultyIntermediate &&
		t.Difficulty != models.DifficultyAdvanced &&
		t.Difficulty != models.DifficultyExpert:
		return "Invalid difficulty selected."
	}
	return ""
}

// splitLines turns a textarea value into a trimmed, non-empty string list.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// parseItinerary reads one itinerary day per textarea line, formatted as
// "Title | Description". Day numbers are assigned top to bottom.
func parseItinerary(s string) []models.ItineraryDay {
	var days []models.ItineraryDay
	for _, line := range splitLines(s) {
		title, desc, _ := strings.Cut(line, "|")
		days = append(days, models.ItineraryDay{
			Day:         len(days) + 1,
			Title:       strings.TrimSpace(title),
			Description: strings.TrimSpace(desc),
		})
	}
	return days
}
