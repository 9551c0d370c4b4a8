package facade

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/courtside/picks-services/internal/comm"
	"github.com/courtside/picks-services/internal/picksvc/apperr"
	"github.com/courtside/picks-services/internal/picksvc/models"
	"github.com/courtside/picks-services/internal/picksvc/service"
)

// GameQueries is the query-layer surface the facade wraps.
type GameQueries interface {
	Today() string
	TodaysPicks(ctx context.Context) ([]models.GamePick, error)
	PicksByDate(ctx context.Context, date string) ([]models.GamePick, error)
	GameDetail(ctx context.Context, gameID int64) (*models.GamePick, error)
	CreateGame(ctx context.Context, game models.Game) (*models.Game, error)
	CreatePrediction(ctx context.Context, pred models.Prediction) (*models.Prediction, error)
	AdvanceGame(ctx context.Context, gameID int64, next models.GameStatus) error
	SettleGame(ctx context.Context, gameID int64, homeScore, awayScore int) (*models.Game, error)
}

type NewsQueries interface {
	LatestNews(ctx context.Context, limit int) ([]models.News, error)
	AllNews(ctx context.Context) ([]models.News, error)
	NewsByCategory(ctx context.Context, category string) ([]models.News, error)
	PublishNews(ctx context.Context, news models.News) (*models.News, error)
}

type AnalyticsQueries interface {
	Summary(ctx context.Context) (*models.PerformanceReport, error)
	Performance(ctx context.Context, start, end string) (*models.PerformanceReport, error)
}

type UserQueries interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	RegisterUser(ctx context.Context, user models.User) (*models.User, error)
}

// EventPublisher announces successful writes.
type EventPublisher interface {
	PublishGameSettled(game *models.Game)
	PublishPredictionCreated(pred *models.Prediction, game *models.Game)
	PublishNewsPublished(news *models.News)
}

// Facade is the single seam presentation code talks to: typed operations,
// the stable error taxonomy, the premium capability filter, and a request
// shaped cache invalidated by mutation events.
type Facade struct {
	games     GameQueries
	news      NewsQueries
	analytics AnalyticsQueries
	users     UserQueries
	publisher EventPublisher
	cache     *Cache
	zone      *time.Location
}

func New(games GameQueries, news NewsQueries, analytics AnalyticsQueries, users UserQueries, publisher EventPublisher, cache *Cache, zone *time.Location) *Facade {
	return &Facade{
		games:     games,
		news:      news,
		analytics: analytics,
		users:     users,
		publisher: publisher,
		cache:     cache,
		zone:      zone,
	}
}

const (
	picksKeyPrefix     = "picks:"
	newsKeyPrefix      = "news:"
	analyticsKeyPrefix = "analytics:"
)

func picksKey(date string) string { return picksKeyPrefix + date }

// TodaysPicks returns today's slate. The premium capability controls
// whether prediction rationale text is included.
func (f *Facade) TodaysPicks(ctx context.Context, premium bool) ([]models.GamePick, error) {
	return f.PicksByDate(ctx, f.games.Today(), premium)
}

func (f *Facade) PicksByDate(ctx context.Context, date string, premium bool) ([]models.GamePick, error) {
	key := picksKey(date)
	if v, ok := f.cache.Get(key); ok {
		return redactPicks(v.([]models.GamePick), premium), nil
	}

	picks, err := f.games.PicksByDate(ctx, date)
	if err != nil {
		return nil, mapErr(err)
	}

	f.cache.Set(key, picks)
	return redactPicks(picks, premium), nil
}

func (f *Facade) GameDetail(ctx context.Context, gameID int64, premium bool) (*models.GamePick, error) {
	pick, err := f.games.GameDetail(ctx, gameID)
	if err != nil {
		return nil, mapErr(err)
	}

	redacted := redactPicks([]models.GamePick{*pick}, premium)
	return &redacted[0], nil
}

func (f *Facade) LatestNews(ctx context.Context, limit int) ([]models.News, error) {
	if limit <= 0 {
		limit = service.DefaultNewsLimit
	}
	key := newsKeyPrefix + "latest:" + strconv.Itoa(limit)
	if v, ok := f.cache.Get(key); ok {
		return v.([]models.News), nil
	}

	items, err := f.news.LatestNews(ctx, limit)
	if err != nil {
		return nil, mapErr(err)
	}

	f.cache.Set(key, items)
	return items, nil
}

func (f *Facade) AllNews(ctx context.Context) ([]models.News, error) {
	key := newsKeyPrefix + "all"
	if v, ok := f.cache.Get(key); ok {
		return v.([]models.News), nil
	}

	items, err := f.news.AllNews(ctx)
	if err != nil {
		return nil, mapErr(err)
	}

	f.cache.Set(key, items)
	return items, nil
}

func (f *Facade) NewsByCategory(ctx context.Context, category string) ([]models.News, error) {
	key := newsKeyPrefix + "category:" + category
	if v, ok := f.cache.Get(key); ok {
		return v.([]models.News), nil
	}

	items, err := f.news.NewsByCategory(ctx, category)
	if err != nil {
		return nil, mapErr(err)
	}

	f.cache.Set(key, items)
	return items, nil
}

func (f *Facade) AnalyticsSummary(ctx context.Context) (*models.PerformanceReport, error) {
	key := analyticsKeyPrefix + "summary:" + f.games.Today()
	if v, ok := f.cache.Get(key); ok {
		return v.(*models.PerformanceReport), nil
	}

	report, err := f.analytics.Summary(ctx)
	if err != nil {
		return nil, mapErr(err)
	}

	f.cache.Set(key, report)
	return report, nil
}

func (f *Facade) AnalyticsPerformance(ctx context.Context, start, end string) (*models.PerformanceReport, error) {
	key := analyticsKeyPrefix + start + ":" + end
	if v, ok := f.cache.Get(key); ok {
		return v.(*models.PerformanceReport), nil
	}

	report, err := f.analytics.Performance(ctx, start, end)
	if err != nil {
		return nil, mapErr(err)
	}

	f.cache.Set(key, report)
	return report, nil
}

func (f *Facade) Profile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := f.users.GetUser(ctx, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	return user, nil
}

func (f *Facade) RegisterUser(ctx context.Context, user models.User) (*models.User, error) {
	created, err := f.users.RegisterUser(ctx, user)
	if err != nil {
		return nil, mapErr(err)
	}
	return created, nil
}

func (f *Facade) CreateGame(ctx context.Context, game models.Game) (*models.Game, error) {
	created, err := f.games.CreateGame(ctx, game)
	if err != nil {
		return nil, mapErr(err)
	}

	f.cache.Invalidate(picksKey(created.StartsAt.In(f.zone).Format("2006-01-02")))
	return created, nil
}

func (f *Facade) CreatePrediction(ctx context.Context, pred models.Prediction) (*models.Prediction, error) {
	created, err := f.games.CreatePrediction(ctx, pred)
	if err != nil {
		return nil, mapErr(err)
	}

	pick, err := f.games.GameDetail(ctx, created.GameID)
	if err != nil {
		// The write stands; the date listing may serve stale until the TTL.
		log.Errorf("Error loading game %d after prediction create, skipping invalidation: %s", created.GameID, err)
		return created, nil
	}

	f.cache.Invalidate(picksKey(pick.Game.StartsAt.In(f.zone).Format("2006-01-02")))
	if f.publisher != nil {
		f.publisher.PublishPredictionCreated(created, &pick.Game)
	}

	return created, nil
}

func (f *Facade) AdvanceGame(ctx context.Context, gameID int64, next models.GameStatus) error {
	if err := f.games.AdvanceGame(ctx, gameID, next); err != nil {
		return mapErr(err)
	}
	f.cache.InvalidatePrefix(picksKeyPrefix)
	return nil
}

func (f *Facade) SettleGame(ctx context.Context, gameID int64, homeScore, awayScore int) (*models.Game, error) {
	game, err := f.games.SettleGame(ctx, gameID, homeScore, awayScore)
	if err != nil {
		return nil, mapErr(err)
	}

	f.invalidateForSettlement(game.StartsAt)
	if f.publisher != nil {
		f.publisher.PublishGameSettled(game)
	}

	return game, nil
}

func (f *Facade) PublishNews(ctx context.Context, news models.News) (*models.News, error) {
	created, err := f.news.PublishNews(ctx, news)
	if err != nil {
		return nil, mapErr(err)
	}

	f.cache.InvalidatePrefix(newsKeyPrefix)
	if f.publisher != nil {
		f.publisher.PublishNewsPublished(created)
	}

	return created, nil
}

// SubscribeInvalidation keeps this instance's cache coherent with writes
// performed by other instances.
func (f *Facade) SubscribeInvalidation(conn *nats.Conn) ([]*nats.Subscription, error) {
	subSettled, err := conn.Subscribe(comm.SubjectGameSettled, func(msg *nats.Msg) {
		ev := comm.GameSettled{}
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			log.Errorf("Error decoding %s event: %s", comm.SubjectGameSettled, err)
			return
		}
		f.HandleGameSettled(ev)
	})
	if err != nil {
		return nil, err
	}

	subPred, err := conn.Subscribe(comm.SubjectPredictionCreated, func(msg *nats.Msg) {
		ev := comm.PredictionCreated{}
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			log.Errorf("Error decoding %s event: %s", comm.SubjectPredictionCreated, err)
			return
		}
		f.HandlePredictionCreated(ev)
	})
	if err != nil {
		return nil, err
	}

	subNews, err := conn.Subscribe(comm.SubjectNewsPublished, func(msg *nats.Msg) {
		f.HandleNewsPublished()
	})
	if err != nil {
		return nil, err
	}

	return []*nats.Subscription{subSettled, subPred, subNews}, nil
}

func (f *Facade) invalidateForSettlement(startsAt time.Time) {
	f.cache.InvalidatePrefix(analyticsKeyPrefix)
	f.cache.Invalidate(picksKey(startsAt.In(f.zone).Format("2006-01-02")))
}

// HandleGameSettled drops every cached analytics report plus the settled
// game's date listing. Stale accuracy after a settlement is a correctness
// defect, not a freshness nicety.
func (f *Facade) HandleGameSettled(ev comm.GameSettled) {
	f.cache.InvalidatePrefix(analyticsKeyPrefix)
	f.cache.Invalidate(picksKey(ev.StartsAt.In(f.zone).Format("2006-01-02")))
}

func (f *Facade) HandlePredictionCreated(ev comm.PredictionCreated) {
	f.cache.Invalidate(picksKey(ev.StartsAt.In(f.zone).Format("2006-01-02")))
}

func (f *Facade) HandleNewsPublished() {
	f.cache.InvalidatePrefix(newsKeyPrefix)
}

// redactPicks strips premium-only fields for callers without the premium
// capability. Cached entries always hold the unfiltered rows.
func redactPicks(picks []models.GamePick, premium bool) []models.GamePick {
	if premium {
		return picks
	}

	out := make([]models.GamePick, len(picks))
	for i, p := range picks {
		out[i] = p
		if p.Prediction != nil {
			cp := *p.Prediction
			cp.Rationale = ""
			out[i].Prediction = &cp
		}
	}
	return out
}

// mapErr folds unknown failures into the Unavailable kind so callers only
// ever see the four-error taxonomy.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperr.ErrNotFound) ||
		errors.Is(err, apperr.ErrValidation) ||
		errors.Is(err, apperr.ErrConflict) ||
		errors.Is(err, apperr.ErrUnavailable) {
		return err
	}
	return apperr.Unavailable("%s", err)
}
