// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package defaultstrategy

import (
	"fmt"
	"time"

	"github.com/AccelByte/extend-battle-tournament/pkg/constants"
	"github.com/AccelByte/extend-battle-tournament/pkg/envelope"
	"github.com/AccelByte/extend-battle-tournament/pkg/mathutil"
	"github.com/AccelByte/extend-battle-tournament/pkg/models"
	"github.com/AccelByte/extend-battle-tournament/pkg/strategy"
)

// roundRobin plays every pair once. Fixtures are shuffled once and then consumed in order,
// whatever the standings look like.
type roundRobin struct {
	base
}

func newRoundRobin(b base) *roundRobin {
	b.mode = models.ModeRoundRobin
	return &roundRobin{base: b}
}

func (r *roundRobin) Name() string {
	return "Round Robin"
}

func (r *roundRobin) Description() string {
	return "All tracks face each other exactly once. Track with most wins becomes champion."
}

func (r *roundRobin) Config() strategy.Config {
	return strategy.Config{
		RequireMinimumTracks: 3,
		AllowSkipping:        false,
		SupportsPausing:      true,
		SupportsResuming:     true,
	}
}

func (r *roundRobin) ValidateTracks(tracks []models.Track) bool {
	return len(tracks) >= r.Config().RequireMinimumTracks
}

func (r *roundRobin) InitializeTournament(scope *envelope.Scope, tracks []models.Track, _ models.ModeParameters) models.Progress {
	defer r.observe(constants.InitializeTournamentFunction, time.Now())

	return newProgress(tracks, 1, mathutil.Pairs(len(tracks)))
}

func (r *roundRobin) data(scope *envelope.Scope, tournament *models.Tournament) *models.RoundRobinData {
	if tournament.StrategyData.RoundRobin == nil {
		ids := models.TrackIDs(tournament.Tracks)
		fixtures := roundRobinFixtures(ids)
		r.shuffleFixtures(fixtures)
		tournament.StrategyData.RoundRobin = &models.RoundRobinData{
			Fixtures:  fixtures,
			Standings: models.NewStandings(ids),
		}
		scope.Log.WithField("tournamentID", tournament.ID).WithField("fixtures", len(fixtures)).Debug("round robin fixtures generated")
	}
	return tournament.StrategyData.RoundRobin
}

func (r *roundRobin) GetStrategyData(scope *envelope.Scope, tournament *models.Tournament) interface{} {
	return r.data(scope, tournament)
}

func (r *roundRobin) UpdateStrategyData(tournament *models.Tournament, data interface{}) error {
	d, ok := data.(*models.RoundRobinData)
	if !ok {
		return fmt.Errorf("%w: want *models.RoundRobinData, got %T", models.ErrStrategyDataType, data)
	}
	tournament.StrategyData.RoundRobin = d
	return nil
}

func (r *roundRobin) UpdateProgress(scope *envelope.Scope, tournament *models.Tournament, battle models.Battle) models.Progress {
	defer r.observe(constants.UpdateProgressFunction, time.Now())

	progress := tournament.Progress.Clone()
	if !battle.HasWinner() {
		return progress
	}

	winnerID, loserID, ok := battle.Result()
	if !ok {
		r.violation(scope, tournament, battle, constants.ReasonWinnerNotInBattle)
		return progress
	}

	data := r.data(scope, tournament)
	claimed, reordered := claimFixture(data.Fixtures, data.CurrentFixtureIndex, winnerID, loserID, battle.ID)
	if !claimed {
		r.violation(scope, tournament, battle, constants.ReasonUnexpectedPairing)
		return progress
	}
	if reordered {
		scope.Log.WithFields(r.battleFields(tournament, battle)).Debug("fixture played out of order, moved to cursor")
	}

	recordResult(data.Standings, winnerID, loserID, constants.PointsPerWinRoundRobin, false)
	data.CurrentFixtureIndex++

	total := len(data.Fixtures)
	progress.BattlesCompleted++
	progress.BattlesRemaining = mathutil.Max(0, total-data.CurrentFixtureIndex)
	progress.ProgressPercentage = mathutil.Percentage(data.CurrentFixtureIndex, total)

	r.applied(scope, tournament, battle)
	return progress
}

func (r *roundRobin) GetNextMatchup(scope *envelope.Scope, tournament *models.Tournament) *models.Matchup {
	defer r.observe(constants.GetNextMatchupFunction, time.Now())

	data := r.data(scope, tournament)
	if data.CurrentFixtureIndex >= len(data.Fixtures) {
		return nil
	}

	fixture := data.Fixtures[data.CurrentFixtureIndex]
	trackA, okA := tournament.TrackByID(fixture.TrackAID)
	trackB, okB := tournament.TrackByID(fixture.TrackBID)
	if !okA || !okB {
		scope.Log.WithField("tournamentID", tournament.ID).WithField("fixture", fixture).Warn("fixture references unknown track")
		r.metrics.AddInvariantViolation(string(r.mode), constants.ReasonUnknownTrack)
		return nil
	}

	return &models.Matchup{
		TrackA: trackA,
		TrackB: trackB,
		Round:  tournament.Progress.CurrentRound,
		Metadata: map[string]interface{}{
			models.MetadataBattleType:    constants.BattleTypeRoundRobin,
			models.MetadataFixtureIndex:  data.CurrentFixtureIndex,
			models.MetadataTotalFixtures: len(data.Fixtures),
		},
	}
}

func (r *roundRobin) IsCompleted(scope *envelope.Scope, tournament *models.Tournament) bool {
	data := r.data(scope, tournament)
	return data.CurrentFixtureIndex >= len(data.Fixtures)
}

func (r *roundRobin) CompleteTournament(scope *envelope.Scope, tournament *models.Tournament) *models.Tournament {
	var champion *models.Track
	if ranked := models.RankStandings(r.data(scope, tournament).Standings); len(ranked) > 0 {
		champion = r.championByID(tournament, ranked[0].TrackID)
	}
	return r.complete(tournament, champion)
}

func (r *roundRobin) CanStartBattle(scope *envelope.Scope, tournament *models.Tournament) bool {
	return r.canStart(tournament) && !r.IsCompleted(scope, tournament)
}
