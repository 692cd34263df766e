package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/abinitio185/revrom/internal/ai"
	"github.com/abinitio185/revrom/internal/sitecontent"
	"github.com/abinitio185/revrom/internal/store"
)

// Themes the settings form offers.
var themes = []string{"slate", "sand", "midnight"}

// AdminHandler backs the whole admin console: login, dashboard, and the
// Tours / Content / Media / Leads / Builder / Settings tabs.
type AdminHandler struct {
	Store        *store.Store
	Site         *sitecontent.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
	AI           *ai.Client
}

func (h *AdminHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Site":      h.Site.Get(),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.Store.GetUserByUsername(username)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Internal Server Error"})
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if user == nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid username or password"})
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid username or password"})
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session.Values["authenticated"] = true
	session.Values["user_id"] = user.ID
	session.Options.Path = "/"
	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome, " + user.Username + "!"})

	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	slog.Info("Login successful, redirecting to /admin", "user_id", user.ID)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	session.Values["authenticated"] = false
	session.Options.MaxAge = -1 // Expire immediately
	session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// AuthMiddleware redirects unauthenticated visitors to /login.
func (h *AdminHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.SessionStore.Get(r, "admin-session")
		if auth, ok := session.Values["authenticated"].(bool); !ok || !auth {
			slog.Info("Unauthenticated admin request, redirecting to /login", "path", r.URL.Path)
			session.AddFlash(FlashMessage{Type: "error", Message: "You must be logged in to access this page."})
			session.Save(r, w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.GetDashboardStats()
	if err != nil {
		http.Error(w, "Error fetching stats", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Site":    h.Site.Get(),
		"Stats":   stats,
		"Flashes": GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Settings renders the site settings form: hero copy, contact details,
// social links, theme, and logo.
func (h *AdminHandler) Settings(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("admin_settings.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Site":      h.Site.Get(),
		"Themes":    themes,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// UpdateSettings applies the settings form as a shallow merge. The optional
// logo upload goes through the shared resize pipeline.
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
		return
	}

	field := func(name string) *string {
		v := r.FormValue(name)
		return &v
	}
	update := sitecontent.Update{
		HeroTitle:    field("hero_title"),
		HeroSubtitle: field("hero_subtitle"),
		ContactPhone: field("contact_phone"),
		ContactEmail: field("contact_email"),
		Address:      field("address"),
		WhatsApp:     field("whatsapp"),
		Social: &sitecontent.SocialLinks{
			Instagram: r.FormValue("instagram"),
			Facebook:  r.FormValue("facebook"),
			YouTube:   r.FormValue("youtube"),
		},
	}

	theme := r.FormValue("theme")
	for _, t := range themes {
		if theme == t {
			update.Theme = &theme
			break
		}
	}

	if file, header, err := r.FormFile("logo"); err == nil {
		defer file.Close()
		logoURL, err := saveUploadedImage(file, header, 400)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Logo upload failed: " + err.Error()})
			http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
			return
		}
		update.LogoURL = &logoURL
	}

	h.Site.Apply(update)

	session.AddFlash(FlashMessage{Type: "success", Message: "Settings updated!"})
	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}
