package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
)

// HandleLatestNews serves GET /api/news/latest?limit=N. A missing or
// non-positive limit falls back to the service default.
func (h *Handler) HandleLatestNews(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "limit must be an integer"})
			return
		}
		limit = parsed
	}

	items, err := h.facade.LatestNews(r.Context(), limit)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: items})
}

// HandleAllNews serves GET /api/news
func (h *Handler) HandleAllNews(w http.ResponseWriter, r *http.Request) {
	items, err := h.facade.AllNews(r.Context())
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: items})
}

// HandleNewsByCategory serves GET /api/news/category/{category}
func (h *Handler) HandleNewsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	items, err := h.facade.NewsByCategory(r.Context(), category)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: items})
}
