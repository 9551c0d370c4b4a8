package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

// HandleTodaysPicks serves GET /api/picks/today
func (h *Handler) HandleTodaysPicks(w http.ResponseWriter, r *http.Request) {
	picks, err := h.facade.TodaysPicks(r.Context(), premiumCaller(r))
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: picks})
}

// HandlePicksByDate serves GET /api/picks?date=YYYY-MM-DD
func (h *Handler) HandlePicksByDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "date query parameter is required"})
		return
	}

	picks, err := h.facade.PicksByDate(r.Context(), date, premiumCaller(r))
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: picks})
}

// HandleProfile serves GET /api/me for authenticated subscribers.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "missing or invalid token"})
		return
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "token carries no user id"})
		return
	}

	user, err := h.facade.Profile(r.Context(), int64(userID))
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: user})
}

// HandleGameDetail serves GET /api/games/{id}
func (h *Handler) HandleGameDetail(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "game id must be an integer"})
		return
	}

	pick, err := h.facade.GameDetail(r.Context(), gameID, premiumCaller(r))
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: pick})
}
