package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/abinitio185/revrom/internal/ai"
	"github.com/abinitio185/revrom/internal/config"
	"github.com/abinitio185/revrom/internal/handlers"
	"github.com/abinitio185/revrom/internal/seed"
	"github.com/abinitio185/revrom/internal/sitecontent"
	"github.com/abinitio185/revrom/internal/store"
)

func main() {
	// Configure slog as early as possible in main.
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// TextHandler for console readability; JSONHandler would suit production.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB. The default DSN is :memory:, so the catalog resets to the
	// seed fixtures on every restart.
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	if err := db.InitSchema(); err != nil {
		slog.Error("Failed to create schema", "error", err)
		os.Exit(1)
	}

	fixtures, err := seed.Load()
	if err != nil {
		slog.Error("Failed to load seed fixtures", "error", err)
		os.Exit(1)
	}
	if err := db.Seed(fixtures); err != nil {
		slog.Error("Failed to seed database", "error", err)
		os.Exit(1)
	}
	if err := seedAdminUser(db, cfg.AdminPassword); err != nil {
		slog.Error("Failed to seed admin user", "error", err)
		os.Exit(1)
	}

	// Editable site content lives in process memory, never in the DB.
	site := sitecontent.NewStore(fixtures.Site)

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	aiClient := ai.NewClient(cfg.AIBaseURL, cfg.AIAPIKey)

	// 5. Setup Handlers
	homeHandler := &handlers.HomeHandler{
		Store:        db,
		Site:         site,
		Templates:    templates,
		SessionStore: sessionStore,
		AI:           aiClient,
	}
	bookingHandler := &handlers.BookingHandler{
		Store:        db,
		Site:         site,
		Templates:    templates,
		SessionStore: sessionStore,
		AI:           aiClient,
	}
	adminHandler := &handlers.AdminHandler{
		Store:        db,
		Site:         site,
		SessionStore: sessionStore,
		Templates:    templates,
		AI:           aiClient,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate Limiter for public form posts
	rateLimiter := handlers.NewRateLimiter(1 * time.Minute)

	// Public Routes
	mux.HandleFunc("/", homeHandler.Index)
	mux.HandleFunc("/tours/{id}", homeHandler.TourDetail)
	mux.HandleFunc("POST /tours/{id}/packing-list", rateLimiter.Middleware(homeHandler.PackingList))
	mux.HandleFunc("/blog", homeHandler.Blog)
	mux.HandleFunc("/blog/{id}", homeHandler.BlogPost)
	mux.HandleFunc("/gallery", homeHandler.Gallery)
	mux.HandleFunc("/p/{slug}", homeHandler.CustomPage)
	mux.HandleFunc("/contact", homeHandler.Contact)

	mux.HandleFunc("/book", bookingHandler.Form)
	mux.HandleFunc("POST /book", rateLimiter.Middleware(bookingHandler.Submit))
	mux.HandleFunc("/itinerary", bookingHandler.ItineraryForm)
	mux.HandleFunc("POST /itinerary", rateLimiter.Middleware(bookingHandler.ItinerarySubmit))

	mux.HandleFunc("/login", adminHandler.LoginGet)
	mux.HandleFunc("POST /login", adminHandler.LoginPost)
	mux.HandleFunc("/logout", adminHandler.Logout)

	// Protected Routes
	mux.HandleFunc("/admin", adminHandler.AuthMiddleware(adminHandler.Dashboard))

	mux.HandleFunc("/admin/tours", adminHandler.AuthMiddleware(adminHandler.ListTours))
	mux.HandleFunc("/admin/tours/new", adminHandler.AuthMiddleware(adminHandler.TourForm))
	mux.HandleFunc("POST /admin/tours", adminHandler.AuthMiddleware(adminHandler.SaveTour))
	mux.HandleFunc("POST /admin/tours/delete", adminHandler.AuthMiddleware(adminHandler.DeleteTour))
	mux.HandleFunc("POST /admin/departures", adminHandler.AuthMiddleware(adminHandler.SaveDeparture))
	mux.HandleFunc("POST /admin/departures/delete", adminHandler.AuthMiddleware(adminHandler.DeleteDeparture))

	mux.HandleFunc("/admin/content", adminHandler.AuthMiddleware(adminHandler.ListContent))
	mux.HandleFunc("/admin/content/posts/new", adminHandler.AuthMiddleware(adminHandler.BlogPostForm))
	mux.HandleFunc("POST /admin/content/posts", adminHandler.AuthMiddleware(adminHandler.SaveBlogPost))
	mux.HandleFunc("POST /admin/content/posts/delete", adminHandler.AuthMiddleware(adminHandler.DeleteBlogPost))
	mux.HandleFunc("POST /admin/content/posts/generate-image", adminHandler.AuthMiddleware(adminHandler.GenerateBlogImage))
	mux.HandleFunc("/admin/content/pages/new", adminHandler.AuthMiddleware(adminHandler.CustomPageForm))
	mux.HandleFunc("POST /admin/content/pages", adminHandler.AuthMiddleware(adminHandler.SaveCustomPage))
	mux.HandleFunc("POST /admin/content/pages/delete", adminHandler.AuthMiddleware(adminHandler.DeleteCustomPage))

	mux.HandleFunc("/admin/media", adminHandler.AuthMiddleware(adminHandler.ListMedia))
	mux.HandleFunc("POST /admin/media/gallery", adminHandler.AuthMiddleware(adminHandler.AddGalleryPhoto))
	mux.HandleFunc("POST /admin/media/gallery/delete", adminHandler.AuthMiddleware(adminHandler.DeleteGalleryPhoto))
	mux.HandleFunc("POST /admin/media/instagram", adminHandler.AuthMiddleware(adminHandler.AddInstagramPost))
	mux.HandleFunc("POST /admin/media/instagram/delete", adminHandler.AuthMiddleware(adminHandler.DeleteInstagramPost))
	mux.HandleFunc("POST /admin/media/reviews", adminHandler.AuthMiddleware(adminHandler.AddGoogleReview))
	mux.HandleFunc("POST /admin/media/reviews/delete", adminHandler.AuthMiddleware(adminHandler.DeleteGoogleReview))

	mux.HandleFunc("/admin/leads", adminHandler.AuthMiddleware(adminHandler.ListLeads))
	mux.HandleFunc("POST /admin/leads/status", adminHandler.AuthMiddleware(adminHandler.UpdateLeadStatus))

	mux.HandleFunc("/admin/builder", adminHandler.AuthMiddleware(adminHandler.Builder))
	mux.HandleFunc("POST /admin/builder/move", adminHandler.AuthMiddleware(adminHandler.MoveSection))
	mux.HandleFunc("POST /admin/builder/toggle", adminHandler.AuthMiddleware(adminHandler.ToggleSection))

	mux.HandleFunc("/admin/settings", adminHandler.AuthMiddleware(adminHandler.Settings))
	mux.HandleFunc("POST /admin/settings", adminHandler.AuthMiddleware(adminHandler.UpdateSettings))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}

// seedAdminUser creates the "admin" account when ADMIN_PASSWORD is set.
// With the in-memory database this runs on every boot.
func seedAdminUser(db *store.Store, password string) error {
	if password == "" {
		slog.Warn("ADMIN_PASSWORD not set; the admin console has no login")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.CreateUser("admin", string(hash))
}
