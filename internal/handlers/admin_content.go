package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/csrf"

	"github.com/abinitio185/revrom/internal/ai"
	"github.com/abinitio185/revrom/internal/models"
	"github.com/abinitio185/revrom/internal/store"
)

// ListContent renders the admin Content tab: blog posts and custom pages.
func (h *AdminHandler) ListContent(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Store.GetAllBlogPosts()
	if err != nil {
		http.Error(w, "Error fetching blog posts", http.StatusInternalServerError)
		return
	}
	pages, err := h.Store.GetAllCustomPages()
	if err != nil {
		http.Error(w, "Error fetching pages", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_content.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Site":      h.Site.Get(),
		"Posts":     posts,
		"Pages":     pages,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// BlogPostForm renders the add/edit form. With ?id= it edits.
func (h *AdminHandler) BlogPostForm(w http.ResponseWriter, r *http.Request) {
	var post *models.BlogPost
	if id := r.URL.Query().Get("id"); id != "" {
		var err error
		post, err = h.Store.GetBlogPostByID(id)
		if errors.Is(err, store.ErrNotFound) {
			http.Redirect(w, r, "/admin/content", http.StatusSeeOther)
			return
		}
		if err != nil {
			http.Error(w, "Error fetching post", http.StatusInternalServerError)
			return
		}
	}

	tmpl := h.Templates.Get("admin_post_form.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"Site":      h.Site.Get(),
		"Post":      post,
		"CsrfField": csrf.TemplateField(r),
	})
}

func (h *AdminHandler) SaveBlogPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	post := models.BlogPost{
		ID:       r.FormValue("id"),
		Title:    r.FormValue("title"),
		Author:   r.FormValue("author"),
		Excerpt:  r.FormValue("excerpt"),
		Body:     r.FormValue("body"),
		ImageURL: r.FormValue("image_url"),
	}
	if post.Title == "" || post.Body == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Title and body are required."})
		http.Redirect(w, r, "/admin/content", http.StatusSeeOther)
		return
	}

	var err error
	if post.ID == "" {
		post.PublishedAt = time.Now()
		err = h.Store.CreateBlogPost(&post)
	} else {
		err = h.Store.UpdateBlogPost(&post)
	}
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving post."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Post saved!"})
	}
	http.Redirect(w, r, "/admin/content", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := h.Store.DeleteBlogPost(r.FormValue("id")); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting post."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Post deleted."})
	}
	http.Redirect(w, r, "/admin/content", http.StatusSeeOther)
}

// GenerateBlogImage asks the AI gateway for a header image based on the
// post title. On failure the post gets the stock placeholder instead, so
// the action always leaves the post with a usable image.
func (h *AdminHandler) GenerateBlogImage(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	post, err := h.Store.GetBlogPostByID(r.FormValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		session.AddFlash(FlashMessage{Type: "error", Message: "Post not found."})
		http.Redirect(w, r, "/admin/content", http.StatusSeeOther)
		return
	}
	if err != nil {
		http.Error(w, "Error fetching post", http.StatusInternalServerError)
		return
	}

	imageURL, genErr := h.AI.GenerateBlogImage(r.Context(), post.Title, post.Excerpt)
	if genErr != nil {
		imageURL = ai.FallbackBlogImage
	}
	if err := h.Store.UpdateBlogPostImage(post.ID, imageURL); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving image."})
		http.Redirect(w, r, "/admin/content", http.StatusSeeOther)
		return
	}
	if genErr != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Image generation failed; placeholder applied."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Image generated!"})
	}
	http.Redirect(w, r, "/admin/content", http.StatusSeeOther)
}

// CustomPageForm renders the add/edit form. With ?id= it edits.
func (h *AdminHandler) CustomPageForm(w http.ResponseWriter, r *http.Request) {
	var page *models.CustomPage
	if id := r.URL.Query().Get("id"); id != "" {
		var err error
		page, err = h.Store.GetCustomPageByID(id)
		if errors.Is(err, store.ErrNotFound) {
			http.Redirect(w, r, "/admin/content", http.StatusSeeOther)
			return
		}
		if err != nil {
			http.Error(w, "Error fetching page", http.StatusInternalServerError)
			return
		}
	}

	tmpl := h.Templates.Get("admin_page_form.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"Site":      h.Site.Get(),
		"Page":      page,
		"CsrfField": csrf.TemplateField(r),
	})
}

func (h *AdminHandler) SaveCustomPage(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	page := models.CustomPage{
		ID:      r.FormValue("id"),
		Slug:    r.FormValue("slug"),
		Title:   r.FormValue("title"),
		Body:    r.FormValue("body"),
		Visible: r.FormValue("visible") == "on",
	}
	if page.Slug == "" || page.Title == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Slug and title are required."})
		http.Redirect(w, r, "/admin/content", http.StatusSeeOther)
		return
	}

	var err error
	if page.ID == "" {
		err = h.Store.CreateCustomPage(&page)
	} else {
		err = h.Store.UpdateCustomPage(&page)
	}
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving page."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Page saved!"})
	}
	http.Redirect(w, r, "/admin/content", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteCustomPage(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := h.Store.DeleteCustomPage(r.FormValue("id")); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting page."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Page deleted."})
	}
	http.Redirect(w, r, "/admin/content", http.StatusSeeOther)
}
