package service

import (
	"context"
	"time"

	"github.com/courtside/picks-services/internal/picksvc/apperr"
	"github.com/courtside/picks-services/internal/picksvc/models"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// GameStore defines what the game service needs from the store layer.
type GameStore interface {
	CreateGame(ctx context.Context, game models.Game) (*models.Game, error)
	GetGameByID(ctx context.Context, gameID int64) (*models.Game, error)
	ListPicks(ctx context.Context, from, to time.Time) ([]models.GamePick, error)
	UpdateGameStatus(ctx context.Context, gameID int64, next models.GameStatus) error
	SettleGame(ctx context.Context, gameID int64, homeScore, awayScore int) (*models.Game, error)
}

// PredictionStore defines what the game service needs for pick lookups.
type PredictionStore interface {
	CreatePrediction(ctx context.Context, pred models.Prediction) (*models.Prediction, error)
	GetPredictionByGameID(ctx context.Context, gameID int64) (*models.Prediction, error)
}

type GameService struct {
	gameStore GameStore
	predStore PredictionStore
	zone      *time.Location
	clock     func() time.Time
}

func NewGameService(gameStore GameStore, predStore PredictionStore, zone *time.Location) *GameService {
	return &GameService{
		gameStore: gameStore,
		predStore: predStore,
		zone:      zone,
		clock:     time.Now,
	}
}

// Today returns the current calendar date in the reporting zone.
func (s *GameService) Today() string {
	return s.clock().In(s.zone).Format(DateLayout)
}

// TodaysPicks lists today's games with their predictions. "Today" is the
// calendar day in the reporting zone, never the caller's clock.
func (s *GameService) TodaysPicks(ctx context.Context) ([]models.GamePick, error) {
	return s.PicksByDate(ctx, s.Today())
}

// PicksByDate lists games scheduled on the given calendar date. An empty
// day is an empty slice, not an error.
func (s *GameService) PicksByDate(ctx context.Context, date string) ([]models.GamePick, error) {
	from, to, err := dayBounds(date, s.zone)
	if err != nil {
		return nil, err
	}
	return s.gameStore.ListPicks(ctx, from, to)
}

func (s *GameService) GameDetail(ctx context.Context, gameID int64) (*models.GamePick, error) {
	game, err := s.gameStore.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	pred, err := s.predStore.GetPredictionByGameID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return &models.GamePick{Game: *game, Prediction: pred}, nil
}

func (s *GameService) CreateGame(ctx context.Context, game models.Game) (*models.Game, error) {
	return s.gameStore.CreateGame(ctx, game)
}

func (s *GameService) CreatePrediction(ctx context.Context, pred models.Prediction) (*models.Prediction, error) {
	return s.predStore.CreatePrediction(ctx, pred)
}

func (s *GameService) AdvanceGame(ctx context.Context, gameID int64, next models.GameStatus) error {
	return s.gameStore.UpdateGameStatus(ctx, gameID, next)
}

func (s *GameService) SettleGame(ctx context.Context, gameID int64, homeScore, awayScore int) (*models.Game, error) {
	return s.gameStore.SettleGame(ctx, gameID, homeScore, awayScore)
}

// dayBounds converts a calendar date into the [midnight, next midnight)
// window in the reporting zone.
func dayBounds(date string, zone *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, zone)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("malformed date %q, want YYYY-MM-DD", date)
	}
	return day, day.AddDate(0, 0, 1), nil
}
