package service

import (
	"context"
	"sort"
	"time"

	"github.com/courtside/picks-services/internal/picksvc/apperr"
	"github.com/courtside/picks-services/internal/picksvc/models"
)

// SummaryWindowDays is the trailing window the aggregate snapshot covers.
const SummaryWindowDays = 30

const bucketWidth = 10.0

// SettledPickSource streams final games joined with their predictions.
type SettledPickSource interface {
	ForEachSettledPick(ctx context.Context, from, to time.Time, fn func(models.SettledPick) error) error
}

type AnalyticsService struct {
	source SettledPickSource
	zone   *time.Location
	cmp    OutcomeComparator
	clock  func() time.Time
}

func NewAnalyticsService(source SettledPickSource, zone *time.Location, cmp OutcomeComparator) *AnalyticsService {
	return &AnalyticsService{
		source: source,
		zone:   zone,
		cmp:    cmp,
		clock:  time.Now,
	}
}

// Summary reports the trailing thirty days ending today in the reporting
// zone. This is the headline number the site shows on every page.
func (s *AnalyticsService) Summary(ctx context.Context) (*models.PerformanceReport, error) {
	end := s.clock().In(s.zone)
	start := end.AddDate(0, 0, -(SummaryWindowDays - 1))
	return s.Performance(ctx, start.Format(DateLayout), end.Format(DateLayout))
}

// Performance aggregates settled picks over the inclusive [start, end]
// date range in one streaming pass: overall hit rate, accuracy per
// confidence decile, and a weekly trend series. Accuracy stays nil when
// nothing settled in range, which is not the same claim as 0%.
func (s *AnalyticsService) Performance(ctx context.Context, start, end string) (*models.PerformanceReport, error) {
	from, _, err := dayBounds(start, s.zone)
	if err != nil {
		return nil, err
	}
	endDay, to, err := dayBounds(end, s.zone)
	if err != nil {
		return nil, err
	}
	if from.After(endDay) {
		return nil, apperr.Validation("start %s is after end %s", start, end)
	}

	type bucketAcc struct {
		evaluated int
		correct   int
	}
	var (
		evaluated int
		correct   int
		buckets   [int(models.ConfidenceMax / bucketWidth)]bucketAcc
		weeks     = map[time.Time]*bucketAcc{}
	)

	err = s.source.ForEachSettledPick(ctx, from, to, func(sp models.SettledPick) error {
		hit := s.cmp.Correct(sp.Prediction, sp.Game)

		evaluated++
		if hit {
			correct++
		}

		b := bucketIndex(sp.Prediction.Confidence)
		buckets[b].evaluated++
		if hit {
			buckets[b].correct++
		}

		wk := weekStart(sp.Game.StartsAt.In(s.zone))
		acc, ok := weeks[wk]
		if !ok {
			acc = &bucketAcc{}
			weeks[wk] = acc
		}
		acc.evaluated++
		if hit {
			acc.correct++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	report := &models.PerformanceReport{
		Start:     start,
		End:       end,
		Evaluated: evaluated,
		Correct:   correct,
		Accuracy:  ratio(correct, evaluated),
	}

	for i, b := range buckets {
		if b.evaluated == 0 {
			continue
		}
		report.Buckets = append(report.Buckets, models.ConfidenceBucket{
			Low:       float64(i) * bucketWidth,
			High:      float64(i+1) * bucketWidth,
			Evaluated: b.evaluated,
			Correct:   b.correct,
			Accuracy:  ratio(b.correct, b.evaluated),
		})
	}

	for wk, acc := range weeks {
		report.Trend = append(report.Trend, models.TrendPoint{
			WeekStart: wk,
			Evaluated: acc.evaluated,
			Correct:   acc.correct,
			Accuracy:  ratio(acc.correct, acc.evaluated),
		})
	}
	sort.Slice(report.Trend, func(i, j int) bool {
		return report.Trend[i].WeekStart.Before(report.Trend[j].WeekStart)
	})

	return report, nil
}

// ratio returns nil for an empty sample so "no data" never reads as 0%.
func ratio(correct, evaluated int) *float64 {
	if evaluated == 0 {
		return nil
	}
	r := float64(correct) / float64(evaluated)
	return &r
}

func bucketIndex(confidence float64) int {
	i := int(confidence / bucketWidth)
	if i >= int(models.ConfidenceMax/bucketWidth) {
		i = int(models.ConfidenceMax/bucketWidth) - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// weekStart truncates to the Monday of t's week in t's location.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}
