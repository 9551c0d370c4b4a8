package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/courtside/picks-services/internal/picksvc/apperr"
	"github.com/courtside/picks-services/internal/picksvc/models"
)

type fakeGameStore struct {
	picks    []models.GamePick
	games    map[int64]*models.Game
	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeGameStore) CreateGame(ctx context.Context, game models.Game) (*models.Game, error) {
	game.ID = int64(len(f.games) + 1)
	if f.games == nil {
		f.games = map[int64]*models.Game{}
	}
	f.games[game.ID] = &game
	return &game, nil
}

func (f *fakeGameStore) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	game, ok := f.games[gameID]
	if !ok {
		return nil, apperr.NotFound("game %d", gameID)
	}
	return game, nil
}

func (f *fakeGameStore) ListPicks(ctx context.Context, from, to time.Time) ([]models.GamePick, error) {
	f.lastFrom, f.lastTo = from, to

	picks := []models.GamePick{}
	for _, p := range f.picks {
		if !p.Game.StartsAt.Before(from) && p.Game.StartsAt.Before(to) {
			picks = append(picks, p)
		}
	}
	return picks, nil
}

func (f *fakeGameStore) UpdateGameStatus(ctx context.Context, gameID int64, next models.GameStatus) error {
	return nil
}

// SettleGame mirrors the store contract: the first settlement wins, a
// repeat with the same score is a no-op, a different score is a Conflict.
func (f *fakeGameStore) SettleGame(ctx context.Context, gameID int64, homeScore, awayScore int) (*models.Game, error) {
	game, ok := f.games[gameID]
	if !ok {
		return nil, apperr.NotFound("game %d", gameID)
	}

	if game.Status == models.GameFinal {
		if game.HomeScore != nil && game.AwayScore != nil &&
			*game.HomeScore == homeScore && *game.AwayScore == awayScore {
			return game, nil
		}
		return nil, apperr.Conflict("game %d already settled with a different outcome", gameID)
	}

	game.Status = models.GameFinal
	game.HomeScore = &homeScore
	game.AwayScore = &awayScore
	return game, nil
}

type fakePredStore struct {
	preds map[int64]*models.Prediction
}

func (f *fakePredStore) CreatePrediction(ctx context.Context, pred models.Prediction) (*models.Prediction, error) {
	return &pred, nil
}

func (f *fakePredStore) GetPredictionByGameID(ctx context.Context, gameID int64) (*models.Prediction, error) {
	return f.preds[gameID], nil
}

func newTestGameService(t *testing.T, games *fakeGameStore, preds *fakePredStore) *GameService {
	t.Helper()
	zone, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load zone: %v", err)
	}
	return NewGameService(games, preds, zone)
}

func TestGameService_PicksByDate_Bounds(t *testing.T) {
	games := &fakeGameStore{}
	svc := newTestGameService(t, games, &fakePredStore{})

	if _, err := svc.PicksByDate(context.Background(), "2026-03-14"); err != nil {
		t.Fatalf("PicksByDate failed: %v", err)
	}

	wantFrom := time.Date(2026, 3, 14, 0, 0, 0, 0, svc.zone)
	if !games.lastFrom.Equal(wantFrom) {
		t.Errorf("from = %v, want %v", games.lastFrom, wantFrom)
	}
	wantTo := time.Date(2026, 3, 15, 0, 0, 0, 0, svc.zone)
	if !games.lastTo.Equal(wantTo) {
		t.Errorf("to = %v, want %v", games.lastTo, wantTo)
	}
}

func TestGameService_PicksByDate_MalformedDate(t *testing.T) {
	svc := newTestGameService(t, &fakeGameStore{}, &fakePredStore{})

	for _, date := range []string{"03/14/2026", "2026-13-01", "tomorrow", ""} {
		_, err := svc.PicksByDate(context.Background(), date)
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("date %q: expected Validation kind, got %v", date, err)
		}
	}
}

func TestGameService_PicksByDate_EmptyDay(t *testing.T) {
	svc := newTestGameService(t, &fakeGameStore{}, &fakePredStore{})

	picks, err := svc.PicksByDate(context.Background(), "2026-07-04")
	if err != nil {
		t.Fatalf("empty day errored: %v", err)
	}
	if len(picks) != 0 {
		t.Errorf("expected empty slice, got %d picks", len(picks))
	}
}

// Today's picks must match the by-date listing for today's reporting-zone
// date no matter what wall clock instant the request lands on.
func TestGameService_TodaysPicks_MatchesReportingZoneDate(t *testing.T) {
	zone, _ := time.LoadLocation("America/New_York")
	// 03:30 UTC on March 15 is still March 14 in New York.
	instant := time.Date(2026, 3, 15, 3, 30, 0, 0, time.UTC)

	games := &fakeGameStore{
		picks: []models.GamePick{
			{Game: models.Game{ID: 7, StartsAt: time.Date(2026, 3, 14, 19, 0, 0, 0, zone), Status: models.GameScheduled}},
		},
	}
	svc := newTestGameService(t, games, &fakePredStore{})
	svc.clock = func() time.Time { return instant }

	if got := svc.Today(); got != "2026-03-14" {
		t.Fatalf("Today() = %q, want 2026-03-14", got)
	}

	todays, err := svc.TodaysPicks(context.Background())
	if err != nil {
		t.Fatalf("TodaysPicks failed: %v", err)
	}

	byDate, err := svc.PicksByDate(context.Background(), "2026-03-14")
	if err != nil {
		t.Fatalf("PicksByDate failed: %v", err)
	}

	if len(todays) != len(byDate) || len(todays) != 1 {
		t.Fatalf("todays=%d byDate=%d, want both 1", len(todays), len(byDate))
	}
	if todays[0].Game.ID != byDate[0].Game.ID {
		t.Errorf("listings disagree: %d vs %d", todays[0].Game.ID, byDate[0].Game.ID)
	}
}

func TestGameService_GameDetail(t *testing.T) {
	games := &fakeGameStore{games: map[int64]*models.Game{
		3: {ID: 3, HomeTeam: "Boston Celtics", AwayTeam: "Miami Heat", Status: models.GameScheduled},
	}}
	preds := &fakePredStore{preds: map[int64]*models.Prediction{
		3: {ID: 9, GameID: 3, PickType: models.PickWinner, PickedTeam: "Boston Celtics", Confidence: 81},
	}}
	svc := newTestGameService(t, games, preds)

	pick, err := svc.GameDetail(context.Background(), 3)
	if err != nil {
		t.Fatalf("GameDetail failed: %v", err)
	}
	if pick.Prediction == nil || pick.Prediction.ID != 9 {
		t.Errorf("expected joined prediction 9, got %+v", pick.Prediction)
	}

	_, err = svc.GameDetail(context.Background(), 404)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected NotFound kind, got %v", err)
	}
}

func TestGameService_SettleGame_IdempotentRepeat(t *testing.T) {
	games := &fakeGameStore{games: map[int64]*models.Game{
		7: {ID: 7, HomeTeam: "Boston Celtics", AwayTeam: "Miami Heat", Status: models.GameInProgress},
	}}
	svc := newTestGameService(t, games, &fakePredStore{})

	settled, err := svc.SettleGame(context.Background(), 7, 110, 104)
	if err != nil {
		t.Fatalf("SettleGame failed: %v", err)
	}
	if settled.Status != models.GameFinal || *settled.HomeScore != 110 || *settled.AwayScore != 104 {
		t.Fatalf("settled game = %+v, want final 110-104", settled)
	}

	again, err := svc.SettleGame(context.Background(), 7, 110, 104)
	if err != nil {
		t.Fatalf("repeat settlement with same score errored: %v", err)
	}
	if *again.HomeScore != 110 || *again.AwayScore != 104 {
		t.Errorf("repeat settlement changed stored score to %d-%d", *again.HomeScore, *again.AwayScore)
	}
}

// Two writers racing to settle the same game with different scores: the
// first wins, the second gets a Conflict and the stored outcome stands.
func TestGameService_SettleGame_ConflictingOutcome(t *testing.T) {
	games := &fakeGameStore{games: map[int64]*models.Game{
		7: {ID: 7, HomeTeam: "Boston Celtics", AwayTeam: "Miami Heat", Status: models.GameInProgress},
	}}
	svc := newTestGameService(t, games, &fakePredStore{})

	if _, err := svc.SettleGame(context.Background(), 7, 110, 104); err != nil {
		t.Fatalf("first settlement failed: %v", err)
	}

	_, err := svc.SettleGame(context.Background(), 7, 99, 104)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected Conflict kind, got %v", err)
	}

	stored, err := svc.GameDetail(context.Background(), 7)
	if err != nil {
		t.Fatalf("GameDetail failed: %v", err)
	}
	if *stored.Game.HomeScore != 110 || *stored.Game.AwayScore != 104 {
		t.Errorf("losing writer changed stored score to %d-%d", *stored.Game.HomeScore, *stored.Game.AwayScore)
	}
}

func TestGameService_GameDetail_NoPrediction(t *testing.T) {
	games := &fakeGameStore{games: map[int64]*models.Game{
		5: {ID: 5, Status: models.GameScheduled},
	}}
	svc := newTestGameService(t, games, &fakePredStore{})

	pick, err := svc.GameDetail(context.Background(), 5)
	if err != nil {
		t.Fatalf("GameDetail failed: %v", err)
	}
	if pick.Prediction != nil {
		t.Errorf("expected nil prediction, got %+v", pick.Prediction)
	}
}
