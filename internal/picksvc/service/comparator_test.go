package service

import (
	"testing"

	"github.com/courtside/picks-services/internal/picksvc/models"
)

func finalGame(homeScore, awayScore int) models.Game {
	return models.Game{
		HomeTeam:  "Boston Celtics",
		AwayTeam:  "Miami Heat",
		Status:    models.GameFinal,
		HomeScore: &homeScore,
		AwayScore: &awayScore,
	}
}

func TestWinnerComparator(t *testing.T) {
	cmp := WinnerComparator{}
	game := finalGame(110, 104)

	if !cmp.Correct(models.Prediction{PickedTeam: "Boston Celtics"}, game) {
		t.Error("picked winner scored incorrect")
	}
	if cmp.Correct(models.Prediction{PickedTeam: "Miami Heat"}, game) {
		t.Error("picked loser scored correct")
	}

	tie := finalGame(100, 100)
	if cmp.Correct(models.Prediction{PickedTeam: "Boston Celtics"}, tie) {
		t.Error("tie scored correct for a winner pick")
	}

	live := game
	live.Status = models.GameInProgress
	if cmp.Correct(models.Prediction{PickedTeam: "Boston Celtics"}, live) {
		t.Error("non-final game scored correct")
	}
}

func TestSpreadComparator(t *testing.T) {
	cmp := SpreadComparator{}
	// Home wins by 6 against a -4.5 home line: home covers.
	game := finalGame(110, 104)

	homePick := models.Prediction{PickedTeam: "Boston Celtics", Line: -4.5}
	if !cmp.Correct(homePick, game) {
		t.Error("home cover scored incorrect")
	}

	awayPick := models.Prediction{PickedTeam: "Miami Heat", Line: -4.5}
	if cmp.Correct(awayPick, game) {
		t.Error("failed away cover scored correct")
	}

	// Home wins by 6 against a -7.5 line: away side covers.
	steepLine := models.Prediction{PickedTeam: "Miami Heat", Line: -7.5}
	if !cmp.Correct(steepLine, game) {
		t.Error("away cover against steep line scored incorrect")
	}

	// Push on a whole-number line scores incorrect for both sides.
	pushGame := finalGame(110, 104)
	for _, team := range []string{"Boston Celtics", "Miami Heat"} {
		if cmp.Correct(models.Prediction{PickedTeam: team, Line: -6}, pushGame) {
			t.Errorf("push scored correct for %s", team)
		}
	}
}

func TestPickTypeComparator_Dispatch(t *testing.T) {
	cmp := DefaultComparator()
	game := finalGame(110, 104)

	winner := models.Prediction{PickType: models.PickWinner, PickedTeam: "Boston Celtics"}
	if !cmp.Correct(winner, game) {
		t.Error("winner pick not dispatched")
	}

	spread := models.Prediction{PickType: models.PickSpread, PickedTeam: "Miami Heat", Line: -7.5}
	if !cmp.Correct(spread, game) {
		t.Error("spread pick not dispatched")
	}

	unknown := models.Prediction{PickType: models.PickType("parlay"), PickedTeam: "Boston Celtics"}
	if cmp.Correct(unknown, game) {
		t.Error("unknown pick type scored correct")
	}
}
