package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"github.com/abinitio185/revrom/internal/models"
)

const leadsPerPage = 20

// ListLeads renders the admin Leads tab: itinerary queries, newest first.
func (h *AdminHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	total, err := h.Store.GetTotalItineraryQueriesCount()
	if err != nil {
		http.Error(w, "Error counting leads", http.StatusInternalServerError)
		return
	}
	totalPages := (total + leadsPerPage - 1) / leadsPerPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	leads, err := h.Store.GetItineraryQueries(leadsPerPage, (page-1)*leadsPerPage)
	if err != nil {
		http.Error(w, "Error fetching leads", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_leads.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Site":        h.Site.Get(),
		"Leads":       leads,
		"CurrentPage": page,
		"TotalPages":  totalPages,
		"Statuses":    []string{models.LeadNew, models.LeadContacted, models.LeadClosed},
		"CsrfField":   csrf.TemplateField(r),
		"Flashes":     GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// UpdateLeadStatus moves a lead through new -> contacted -> closed.
func (h *AdminHandler) UpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	status := r.FormValue("status")
	if status != models.LeadNew && status != models.LeadContacted && status != models.LeadClosed {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid lead status."})
		http.Redirect(w, r, "/admin/leads", http.StatusSeeOther)
		return
	}
	if err := h.Store.UpdateItineraryQueryStatus(r.FormValue("id"), status); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating lead."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Lead updated."})
	}
	http.Redirect(w, r, "/admin/leads", http.StatusSeeOther)
}
