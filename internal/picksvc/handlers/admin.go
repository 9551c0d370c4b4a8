package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	"github.com/shopspring/decimal"

	"github.com/courtside/picks-services/internal/picksvc/models"
)

// RequireAdmin gates the write surface behind an admin claim on top of a
// verified token.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "missing or invalid token"})
			return
		}
		if admin, _ := claims["admin"].(bool); !admin {
			h.CreateResponse(w, Response{Code: http.StatusForbidden, Error: "admin capability required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HandleCreateGame serves POST /api/admin/games
func (h *Handler) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Sport    string    `json:"sport"`
		StartsAt time.Time `json:"starts_at"`
		HomeTeam string    `json:"home_team"`
		AwayTeam string    `json:"away_team"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "malformed game payload"})
		return
	}

	game, err := h.facade.CreateGame(r.Context(), models.Game{
		Sport:    payload.Sport,
		StartsAt: payload.StartsAt,
		HomeTeam: payload.HomeTeam,
		AwayTeam: payload.AwayTeam,
		Status:   models.GameScheduled,
	})
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusCreated, Data: game})
}

// HandleCreatePrediction serves POST /api/admin/predictions
func (h *Handler) HandleCreatePrediction(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		GameID     int64   `json:"game_id"`
		PickType   string  `json:"pick_type"`
		PickedTeam string  `json:"picked_team"`
		Line       float64 `json:"line"`
		Confidence float64 `json:"confidence"`
		Rationale  string  `json:"rationale"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "malformed prediction payload"})
		return
	}

	pred, err := h.facade.CreatePrediction(r.Context(), models.Prediction{
		GameID:     payload.GameID,
		PickType:   models.PickType(payload.PickType),
		PickedTeam: payload.PickedTeam,
		Line:       payload.Line,
		Confidence: payload.Confidence,
		Rationale:  payload.Rationale,
	})
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusCreated, Data: pred})
}

// HandlePublishNews serves POST /api/admin/news
func (h *Handler) HandlePublishNews(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title       string    `json:"title"`
		Excerpt     string    `json:"excerpt"`
		Body        string    `json:"body"`
		Category    string    `json:"category"`
		Impact      string    `json:"impact"`
		ImageURL    string    `json:"image_url"`
		PublishedAt time.Time `json:"published_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "malformed news payload"})
		return
	}

	if payload.PublishedAt.IsZero() {
		payload.PublishedAt = time.Now().UTC()
	}

	news, err := h.facade.PublishNews(r.Context(), models.News{
		Title:       payload.Title,
		Excerpt:     payload.Excerpt,
		Body:        payload.Body,
		Category:    models.NewsCategory(payload.Category),
		Impact:      models.ImpactLevel(payload.Impact),
		ImageURL:    payload.ImageURL,
		PublishedAt: payload.PublishedAt,
	})
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusCreated, Data: news})
}

// HandleRegisterUser serves POST /api/admin/users
func (h *Handler) HandleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name      string          `json:"name"`
		Email     string          `json:"email"`
		Premium   bool            `json:"premium"`
		PlanPrice decimal.Decimal `json:"plan_price"`
		Status    string          `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "malformed user payload"})
		return
	}

	user, err := h.facade.RegisterUser(r.Context(), models.User{
		Name:      payload.Name,
		Email:     payload.Email,
		Premium:   payload.Premium,
		PlanPrice: payload.PlanPrice,
		Status:    payload.Status,
	})
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusCreated, Data: user})
}

// HandleSettleGame serves POST /api/admin/games/{id}/settle
func (h *Handler) HandleSettleGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "game id must be an integer"})
		return
	}

	var payload struct {
		HomeScore int `json:"home_score"`
		AwayScore int `json:"away_score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "malformed settlement payload"})
		return
	}

	game, err := h.facade.SettleGame(r.Context(), gameID, payload.HomeScore, payload.AwayScore)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK, Data: game})
}

// HandleAdvanceGame serves POST /api/admin/games/{id}/status
func (h *Handler) HandleAdvanceGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "game id must be an integer"})
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "malformed status payload"})
		return
	}

	if err := h.facade.AdvanceGame(r.Context(), gameID, models.GameStatus(payload.Status)); err != nil {
		h.RespondError(w, err)
		return
	}

	h.CreateResponse(w, Response{Code: http.StatusOK})
}
