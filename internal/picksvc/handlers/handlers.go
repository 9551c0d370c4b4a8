package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/jwtauth"

	"github.com/courtside/picks-services/internal/picksvc/apperr"
	"github.com/courtside/picks-services/internal/picksvc/models"
)

// PicksFacade is the client access seam the handlers render.
type PicksFacade interface {
	TodaysPicks(ctx context.Context, premium bool) ([]models.GamePick, error)
	PicksByDate(ctx context.Context, date string, premium bool) ([]models.GamePick, error)
	GameDetail(ctx context.Context, gameID int64, premium bool) (*models.GamePick, error)
	LatestNews(ctx context.Context, limit int) ([]models.News, error)
	AllNews(ctx context.Context) ([]models.News, error)
	NewsByCategory(ctx context.Context, category string) ([]models.News, error)
	AnalyticsSummary(ctx context.Context) (*models.PerformanceReport, error)
	AnalyticsPerformance(ctx context.Context, start, end string) (*models.PerformanceReport, error)
	CreateGame(ctx context.Context, game models.Game) (*models.Game, error)
	CreatePrediction(ctx context.Context, pred models.Prediction) (*models.Prediction, error)
	PublishNews(ctx context.Context, news models.News) (*models.News, error)
	AdvanceGame(ctx context.Context, gameID int64, next models.GameStatus) error
	SettleGame(ctx context.Context, gameID int64, homeScore, awayScore int) (*models.Game, error)
	Profile(ctx context.Context, userID int64) (*models.User, error)
	RegisterUser(ctx context.Context, user models.User) (*models.User, error)
}

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	facade    PicksFacade
}

func NewHandler(facade PicksFacade) *Handler {
	return &Handler{facade: facade}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

// RespondError maps the error taxonomy onto stable status codes so
// presentation can render not-found, invalid, conflict and outage states
// distinctly.
func (h *Handler) RespondError(w http.ResponseWriter, err error) {
	h.CreateResponse(w, Response{
		Code:  StatusForError(err),
		Error: err.Error(),
	})
}

func StatusForError(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// premiumCaller reads the premium capability off the verified token, if
// one was presented. Anonymous callers simply get the free view.
func premiumCaller(r *http.Request) bool {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return false
	}
	premium, _ := claims["premium"].(bool)
	return premium
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "picks service is running at port " + os.Getenv("PICKS_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	json.NewEncoder(w).Encode(rsp)
}
