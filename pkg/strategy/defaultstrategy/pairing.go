// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package defaultstrategy

import (
	"gonum.org/v1/gonum/stat/combin"

	"github.com/AccelByte/extend-battle-tournament/pkg/envelope"
	"github.com/AccelByte/extend-battle-tournament/pkg/models"
)

// bracketRound shuffles ids and pairs them in order. The odd one out gets a bye.
func (b base) bracketRound(scope *envelope.Scope, ids []string) (pairings []models.Pairing, bye string) {
	order := b.shuffled(ids)
	if len(order)%2 == 1 {
		bye = order[len(order)-1]
		order = order[:len(order)-1]
		scope.Log.WithField("trackID", bye).WithField("mode", string(b.mode)).Info("track receives a bye")
	}

	pairings = make([]models.Pairing, 0, len(order)/2)
	for i := 0; i+1 < len(order); i += 2 {
		pairings = append(pairings, models.Pairing{TrackAID: order[i], TrackBID: order[i+1]})
	}

	return pairings, bye
}

// roundRobinFixtures returns every unordered pair of ids once.
func roundRobinFixtures(ids []string) []models.Pairing {
	if len(ids) < 2 {
		return []models.Pairing{}
	}
	combinations := combin.Combinations(len(ids), 2)
	fixtures := make([]models.Pairing, 0, len(combinations))
	for _, c := range combinations {
		fixtures = append(fixtures, models.Pairing{TrackAID: ids[c[0]], TrackBID: ids[c[1]]})
	}
	return fixtures
}

func (b base) shuffleFixtures(fixtures []models.Pairing) {
	b.shuffler.Shuffle(len(fixtures), func(i, j int) {
		fixtures[i], fixtures[j] = fixtures[j], fixtures[i]
	})
}

// pendingIndex returns the first uncompleted pairing whose tracks are both eligible, or -1.
func pendingIndex(pairings []models.Pairing, eligible map[string]bool) int {
	for i, p := range pairings {
		if !p.Completed && eligible[p.TrackAID] && eligible[p.TrackBID] {
			return i
		}
	}
	return -1
}

// pendingMatch returns the first uncompleted pairing between a and b, or -1.
func pendingMatch(pairings []models.Pairing, a, b string) int {
	for i, p := range pairings {
		if !p.Completed && p.Matches(a, b) {
			return i
		}
	}
	return -1
}

// claimFixture completes the fixture at cursor for the battle pair. A battle played out of
// order pulls its fixture forward to the cursor. It returns false when no pending fixture
// from cursor on matches the pair.
func claimFixture(fixtures []models.Pairing, cursor int, winnerID, loserID, battleID string) (claimed, reordered bool) {
	if cursor < 0 || cursor >= len(fixtures) {
		return false, false
	}
	j := pendingMatch(fixtures[cursor:], winnerID, loserID)
	if j < 0 {
		return false, false
	}
	j += cursor
	if j != cursor {
		fixtures[cursor], fixtures[j] = fixtures[j], fixtures[cursor]
	}
	fixtures[cursor].Complete(winnerID, battleID)
	return true, j != cursor
}

// recordResult applies one result to standings.
func recordResult(standings []models.Standing, winnerID, loserID string, pointsPerWin int, trackOpponents bool) bool {
	wi := models.StandingIndex(standings, winnerID)
	li := models.StandingIndex(standings, loserID)
	if wi < 0 || li < 0 {
		return false
	}

	standings[wi].Played++
	standings[wi].Won++
	standings[wi].Points += pointsPerWin

	standings[li].Played++
	standings[li].Lost++

	if trackOpponents {
		standings[wi].Opponents = append(standings[wi].Opponents, loserID)
		standings[li].Opponents = append(standings[li].Opponents, winnerID)
	}

	return true
}

func countPending(pairings []models.Pairing) int {
	n := 0
	for _, p := range pairings {
		if !p.Completed {
			n++
		}
	}
	return n
}
