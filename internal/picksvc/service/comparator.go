package service

import "github.com/courtside/picks-services/internal/picksvc/models"

// OutcomeComparator decides whether a prediction hit once its game is
// final. Different bet types compare differently, so the rule is injected
// into the aggregator rather than hard-coded.
type OutcomeComparator interface {
	Correct(pred models.Prediction, game models.Game) bool
}

// WinnerComparator scores a pick as correct when the picked team won
// outright. Ties score as incorrect.
type WinnerComparator struct{}

func (WinnerComparator) Correct(pred models.Prediction, game models.Game) bool {
	winner, ok := game.Winner()
	return ok && winner == pred.PickedTeam
}

// SpreadComparator scores against the line. The line is stored from the
// home side's perspective, so the home side covers when margin + line is
// positive. Pushes score as incorrect.
type SpreadComparator struct{}

func (SpreadComparator) Correct(pred models.Prediction, game models.Game) bool {
	margin, ok := game.Margin()
	if !ok {
		return false
	}

	adjusted := float64(margin) + pred.Line
	switch pred.PickedTeam {
	case game.HomeTeam:
		return adjusted > 0
	case game.AwayTeam:
		return adjusted < 0
	}
	return false
}

// PickTypeComparator dispatches to a comparator per pick type. Unknown
// pick types score as incorrect.
type PickTypeComparator map[models.PickType]OutcomeComparator

func (m PickTypeComparator) Correct(pred models.Prediction, game models.Game) bool {
	cmp, ok := m[pred.PickType]
	return ok && cmp.Correct(pred, game)
}

// DefaultComparator covers the two pick types the site publishes.
func DefaultComparator() OutcomeComparator {
	return PickTypeComparator{
		models.PickWinner: WinnerComparator{},
		models.PickSpread: SpreadComparator{},
	}
}
