package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/csrf"

	"github.com/abinitio185/revrom/internal/models"
)

// ListMedia renders the admin Media tab: gallery photos, Instagram posts
// and Google reviews.
func (h *AdminHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	photos, err := h.Store.GetAllGalleryPhotos()
	if err != nil {
		http.Error(w, "Error fetching gallery", http.StatusInternalServerError)
		return
	}
	instagram, err := h.Store.GetAllInstagramPosts()
	if err != nil {
		http.Error(w, "Error fetching Instagram posts", http.StatusInternalServerError)
		return
	}
	reviews, err := h.Store.GetAllGoogleReviews()
	if err != nil {
		http.Error(w, "Error fetching reviews", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_media.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Site":      h.Site.Get(),
		"Photos":    photos,
		"Instagram": instagram,
		"Reviews":   reviews,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// AddGalleryPhoto accepts either an uploaded file or an image URL.
func (h *AdminHandler) AddGalleryPhoto(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
		return
	}

	photo := models.GalleryPhoto{
		Caption:  r.FormValue("caption"),
		ImageURL: r.FormValue("image_url"),
	}
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imageURL, err := saveUploadedImage(file, header, 800)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Image upload failed: " + err.Error()})
			http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
			return
		}
		photo.ImageURL = imageURL
	}
	if photo.ImageURL == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Provide an image file or URL."})
		http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
		return
	}

	if err := h.Store.AddGalleryPhoto(&photo); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving photo."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Photo added!"})
	}
	http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteGalleryPhoto(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := h.Store.DeleteGalleryPhoto(r.FormValue("id")); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting photo."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Photo deleted."})
	}
	http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
}

func (h *AdminHandler) AddInstagramPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	post := models.InstagramPost{
		ImageURL:  r.FormValue("image_url"),
		Caption:   r.FormValue("caption"),
		Permalink: r.FormValue("permalink"),
	}
	if post.ImageURL == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Image URL is required."})
		http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
		return
	}
	if err := h.Store.AddInstagramPost(&post); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving post."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Instagram post added!"})
	}
	http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteInstagramPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := h.Store.DeleteInstagramPost(r.FormValue("id")); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting post."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Instagram post deleted."})
	}
	http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
}

func (h *AdminHandler) AddGoogleReview(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	rating, _ := strconv.Atoi(r.FormValue("rating"))
	review := models.GoogleReview{
		Author: r.FormValue("author"),
		Rating: rating,
		Text:   r.FormValue("text"),
		Date:   time.Now(),
	}
	if review.Author == "" || rating < 1 || rating > 5 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Author and a 1-5 rating are required."})
		http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
		return
	}
	if err := h.Store.AddGoogleReview(&review); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving review."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Review added!"})
	}
	http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteGoogleReview(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := h.Store.DeleteGoogleReview(r.FormValue("id")); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting review."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Review deleted."})
	}
	http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
}
