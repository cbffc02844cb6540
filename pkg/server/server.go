package server

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mizutamari/keepsake/pkg/model"
	"github.com/mizutamari/keepsake/pkg/usecase/page"
	"github.com/mizutamari/keepsake/pkg/utils/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Handler renders saved pages as themed HTML
type Handler struct {
	pages *page.UseCase
}

// NewRouter creates a chi router for the read-only render views:
// GET / lists saved pages, GET /pages/{id} renders one page.
func NewRouter(pages *page.UseCase) chi.Router {
	h := &Handler{pages: pages}

	r := chi.NewRouter()
	r.Get("/", h.Index)
	r.Get("/pages/{id}", h.Render)
	return r
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	pages, err := h.pages.List(r.Context())
	if err != nil {
		logging.From(r.Context()).Error("failed to list pages", "error", err)
		http.Error(w, "failed to load pages", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, "index.html", map[string]any{
		"Pages": pages,
	}); err != nil {
		logging.From(r.Context()).Error("failed to render index", "error", err)
	}
}

func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	id := model.PageID(chi.URLParam(r, "id"))

	p, err := h.pages.Show(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrPageNotFound) {
			http.NotFound(w, r)
			return
		}
		logging.From(r.Context()).Error("failed to load page", "page_id", id, "error", err)
		http.Error(w, "failed to load page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, "page.html", map[string]any{
		"Page":  p,
		"Theme": themeFor(p.Design.VisualStyle),
	}); err != nil {
		logging.From(r.Context()).Error("failed to render page", "page_id", id, "error", err)
	}
}
