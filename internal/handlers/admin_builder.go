package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"github.com/abinitio185/revrom/internal/sitecontent"
)

// Builder renders the admin Builder tab: the ordered homepage sections
// with move and show/hide controls.
func (h *AdminHandler) Builder(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("admin_builder.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Site":      h.Site.Get(),
		"Sections":  h.Site.Get().Sections,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// MoveSection shifts a section one position up or down. Moves past either
// end are ignored rather than reported.
func (h *AdminHandler) MoveSection(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		http.Redirect(w, r, "/admin/builder", http.StatusSeeOther)
		return
	}
	dir := sitecontent.Down
	if r.FormValue("direction") == "up" {
		dir = sitecontent.Up
	}
	h.Site.MoveSection(index, dir)
	http.Redirect(w, r, "/admin/builder", http.StatusSeeOther)
}

// ToggleSection flips a section between shown and hidden on the homepage.
func (h *AdminHandler) ToggleSection(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		http.Redirect(w, r, "/admin/builder", http.StatusSeeOther)
		return
	}
	h.Site.ToggleSection(index)
	http.Redirect(w, r, "/admin/builder", http.StatusSeeOther)
}
