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

// elimination is a single elimination bracket. Each round the remaining tracks are shuffled
// and paired; losing once removes a track.
type elimination struct {
	base
}

func newElimination(b base) *elimination {
	b.mode = models.ModeElimination
	return &elimination{base: b}
}

func (e *elimination) Name() string {
	return "Single Elimination"
}

func (e *elimination) Description() string {
	return "Classic tournament bracket where losing a battle eliminates the track"
}

func (e *elimination) Config() strategy.Config {
	return strategy.Config{
		RequireMinimumTracks: 2,
		AllowSkipping:        true,
		SupportsPausing:      true,
		SupportsResuming:     true,
	}
}

func (e *elimination) ValidateTracks(tracks []models.Track) bool {
	return len(tracks) >= e.Config().RequireMinimumTracks
}

func (e *elimination) InitializeTournament(scope *envelope.Scope, tracks []models.Track, _ models.ModeParameters) models.Progress {
	defer e.observe(constants.InitializeTournamentFunction, time.Now())

	totalRounds := mathutil.Max(1, mathutil.CeilLog2(len(tracks)))
	return newProgress(tracks, totalRounds, mathutil.Max(0, len(tracks)-1))
}

// data returns the bracket, building the first round from the remaining tracks when missing.
func (e *elimination) data(scope *envelope.Scope, tournament *models.Tournament) *models.EliminationData {
	if tournament.StrategyData.Elimination == nil {
		pairings, bye := e.bracketRound(scope, models.TrackIDs(tournament.Progress.RemainingTracks))
		data := &models.EliminationData{
			Round:    mathutil.Max(1, tournament.Progress.CurrentRound),
			Matchups: pairings,
		}
		if bye != "" {
			data.Byes = append(data.Byes, bye)
		}
		tournament.StrategyData.Elimination = data
	}
	return tournament.StrategyData.Elimination
}

func (e *elimination) GetStrategyData(scope *envelope.Scope, tournament *models.Tournament) interface{} {
	return e.data(scope, tournament)
}

func (e *elimination) UpdateStrategyData(tournament *models.Tournament, data interface{}) error {
	d, ok := data.(*models.EliminationData)
	if !ok {
		return fmt.Errorf("%w: want *models.EliminationData, got %T", models.ErrStrategyDataType, data)
	}
	tournament.StrategyData.Elimination = d
	return nil
}

// nextRound regenerates the bracket from remaining once the current round has no playable pairing.
func (e *elimination) nextRound(scope *envelope.Scope, data *models.EliminationData, remaining []models.Track) {
	if len(remaining) < 2 || pendingIndex(data.Matchups, trackSet(remaining)) >= 0 {
		return
	}

	pairings, bye := e.bracketRound(scope, models.TrackIDs(remaining))
	data.Round++
	data.Matchups = pairings
	if bye != "" {
		data.Byes = append(data.Byes, bye)
	}
	scope.Log.WithField("round", data.Round).WithField("matchups", len(pairings)).Debug("elimination round generated")
}

func (e *elimination) UpdateProgress(scope *envelope.Scope, tournament *models.Tournament, battle models.Battle) models.Progress {
	defer e.observe(constants.UpdateProgressFunction, time.Now())

	progress := tournament.Progress.Clone()
	if !battle.HasWinner() {
		return progress
	}

	winnerID, loserID, ok := battle.Result()
	if !ok {
		e.violation(scope, tournament, battle, constants.ReasonWinnerNotInBattle)
		return progress
	}
	if !trackSet(progress.RemainingTracks)[winnerID] {
		e.violation(scope, tournament, battle, constants.ReasonWinnerNotRemaining)
		return progress
	}
	loser, found := models.FindTrack(progress.RemainingTracks, loserID)
	if !found {
		e.violation(scope, tournament, battle, constants.ReasonLoserNotRemaining)
		return progress
	}

	data := e.data(scope, tournament)

	eliminate(&progress, loser)
	left := len(progress.RemainingTracks)
	progress.BattlesCompleted++
	progress.BattlesRemaining = mathutil.Max(0, left-1)
	progress.CurrentRound = eliminationRound(progress.TotalRounds, left)
	progress.ProgressPercentage = mathutil.Percentage(progress.BattlesCompleted, progress.BattlesCompleted+progress.BattlesRemaining)

	if i := pendingMatch(data.Matchups, winnerID, loserID); i >= 0 {
		data.Matchups[i].Complete(winnerID, battle.ID)
	} else {
		scope.Log.WithFields(e.battleFields(tournament, battle)).Warn("battle was not scheduled in the current bracket round")
		e.metrics.AddInvariantViolation(string(e.mode), constants.ReasonUnexpectedPairing)
	}
	e.nextRound(scope, data, progress.RemainingTracks)

	e.applied(scope, tournament, battle)
	return progress
}

// eliminationRound derives the round number from how many tracks are left.
func eliminationRound(totalRounds, remaining int) int {
	if remaining <= 1 {
		return totalRounds
	}
	return mathutil.Clamp(totalRounds-mathutil.CeilLog2(remaining)+1, 1, totalRounds)
}

func (e *elimination) GetNextMatchup(scope *envelope.Scope, tournament *models.Tournament) *models.Matchup {
	defer e.observe(constants.GetNextMatchupFunction, time.Now())

	remaining := tournament.Progress.RemainingTracks
	if len(remaining) < 2 {
		return nil
	}

	data := e.data(scope, tournament)
	i := pendingIndex(data.Matchups, trackSet(remaining))
	if i < 0 {
		scope.Log.WithField("tournamentID", tournament.ID).WithField("round", data.Round).
			Warn("bracket round exhausted with tracks remaining, regenerating")
		e.metrics.AddInvariantViolation(string(e.mode), constants.ReasonBracketExhausted)
		e.nextRound(scope, data, remaining)
		if i = pendingIndex(data.Matchups, trackSet(remaining)); i < 0 {
			return nil
		}
	}

	pairing := data.Matchups[i]
	trackA, _ := models.FindTrack(remaining, pairing.TrackAID)
	trackB, _ := models.FindTrack(remaining, pairing.TrackBID)

	return &models.Matchup{
		TrackA: trackA,
		TrackB: trackB,
		Round:  data.Round,
		Metadata: map[string]interface{}{
			models.MetadataBattleType:      constants.BattleTypeElimination,
			models.MetadataMatchupIndex:    i,
			models.MetadataTotalMatchups:   len(data.Matchups),
			models.MetadataRemainingTracks: len(remaining),
		},
	}
}

func (e *elimination) IsCompleted(scope *envelope.Scope, tournament *models.Tournament) bool {
	return len(tournament.Progress.RemainingTracks) <= 1
}

func (e *elimination) CompleteTournament(scope *envelope.Scope, tournament *models.Tournament) *models.Tournament {
	var champion *models.Track
	if remaining := tournament.Progress.RemainingTracks; len(remaining) == 1 {
		champion = &remaining[0]
	}
	return e.complete(tournament, champion)
}

func (e *elimination) CanStartBattle(scope *envelope.Scope, tournament *models.Tournament) bool {
	return e.canStart(tournament) && len(tournament.Progress.RemainingTracks) >= 2
}
