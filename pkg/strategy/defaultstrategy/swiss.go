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

// swiss plays a fixed number of rounds. Each round is paired from the live standings so
// tracks with similar records meet; nobody is eliminated.
type swiss struct {
	base
}

func newSwiss(b base) *swiss {
	b.mode = models.ModeSwiss
	return &swiss{base: b}
}

func (s *swiss) Name() string {
	return "Swiss System"
}

func (s *swiss) Description() string {
	return "Tracks are paired based on similar performance. No elimination, best record after fixed rounds wins."
}

func (s *swiss) Config() strategy.Config {
	return strategy.Config{
		RequireMinimumTracks: 4,
		AllowSkipping:        false,
		SupportsPausing:      true,
		SupportsResuming:     true,
	}
}

func (s *swiss) ValidateTracks(tracks []models.Track) bool {
	return len(tracks) >= s.Config().RequireMinimumTracks
}

func swissRounds(n int) int {
	return mathutil.Max(constants.MinSwissRounds, mathutil.CeilLog2(n)+1)
}

func (s *swiss) InitializeTournament(scope *envelope.Scope, tracks []models.Track, _ models.ModeParameters) models.Progress {
	defer s.observe(constants.InitializeTournamentFunction, time.Now())

	rounds := swissRounds(len(tracks))
	return newProgress(tracks, rounds, rounds*(len(tracks)/2))
}

func (s *swiss) data(scope *envelope.Scope, tournament *models.Tournament) *models.SwissData {
	if tournament.StrategyData.Swiss == nil {
		data := &models.SwissData{
			Standings:    models.NewStandings(models.TrackIDs(tournament.Tracks)),
			CurrentRound: 1,
			TotalRounds:  swissRounds(len(tournament.Tracks)),
		}
		data.Rounds = append(data.Rounds, s.pairRound(scope, data, 1))
		tournament.StrategyData.Swiss = data
	}
	return tournament.StrategyData.Swiss
}

func (s *swiss) GetStrategyData(scope *envelope.Scope, tournament *models.Tournament) interface{} {
	return s.data(scope, tournament)
}

func (s *swiss) UpdateStrategyData(tournament *models.Tournament, data interface{}) error {
	d, ok := data.(*models.SwissData)
	if !ok {
		return fmt.Errorf("%w: want *models.SwissData, got %T", models.ErrStrategyDataType, data)
	}
	tournament.StrategyData.Swiss = d
	return nil
}

// pairRound greedily pairs tracks down the ranking, preferring opponents not met before and
// falling back to the nearest unpaired track. A leftover track gets a bye worth one win.
func (s *swiss) pairRound(scope *envelope.Scope, data *models.SwissData, number int) models.SwissRound {
	ranked := models.RankStandings(data.Standings)
	paired := make(map[string]bool, len(ranked))
	round := models.SwissRound{Number: number, Pairings: []models.Pairing{}}

	for i, standing := range ranked {
		if paired[standing.TrackID] {
			continue
		}

		opponent := ""
		for _, candidate := range ranked[i+1:] {
			if !paired[candidate.TrackID] && !standing.HasPlayed(candidate.TrackID) {
				opponent = candidate.TrackID
				break
			}
		}
		if opponent == "" {
			for _, candidate := range ranked[i+1:] {
				if !paired[candidate.TrackID] {
					opponent = candidate.TrackID
					scope.Log.WithField("trackA", standing.TrackID).WithField("trackB", opponent).Debug("swiss rematch, no new opponent available")
					break
				}
			}
		}

		paired[standing.TrackID] = true
		if opponent == "" {
			round.ByeTrackID = standing.TrackID
			continue
		}
		paired[opponent] = true
		round.Pairings = append(round.Pairings, models.Pairing{TrackAID: standing.TrackID, TrackBID: opponent})
	}

	if round.ByeTrackID != "" {
		if i := models.StandingIndex(data.Standings, round.ByeTrackID); i >= 0 {
			data.Standings[i].Points += constants.PointsPerSwissBye
			data.Standings[i].Won++
			data.Standings[i].Played++
		}
		scope.Log.WithField("trackID", round.ByeTrackID).WithField("round", number).Info("track receives a bye")
	}

	return round
}

func (s *swiss) UpdateProgress(scope *envelope.Scope, tournament *models.Tournament, battle models.Battle) models.Progress {
	defer s.observe(constants.UpdateProgressFunction, time.Now())

	progress := tournament.Progress.Clone()
	if !battle.HasWinner() {
		return progress
	}

	winnerID, loserID, ok := battle.Result()
	if !ok {
		s.violation(scope, tournament, battle, constants.ReasonWinnerNotInBattle)
		return progress
	}

	data := s.data(scope, tournament)
	round := data.Round()
	if round == nil {
		s.violation(scope, tournament, battle, constants.ReasonUnexpectedPairing)
		return progress
	}
	claimed, reordered := claimFixture(round.Pairings, data.CurrentPairingIndex, winnerID, loserID, battle.ID)
	if !claimed {
		s.violation(scope, tournament, battle, constants.ReasonUnexpectedPairing)
		return progress
	}
	if reordered {
		scope.Log.WithFields(s.battleFields(tournament, battle)).Debug("pairing played out of order, moved to cursor")
	}

	recordResult(data.Standings, winnerID, loserID, constants.PointsPerWinSwiss, true)
	data.CurrentPairingIndex++

	if data.CurrentPairingIndex >= len(round.Pairings) {
		round.Completed = true
		data.CurrentRound++
		data.CurrentPairingIndex = 0
		if data.CurrentRound <= data.TotalRounds {
			data.Rounds = append(data.Rounds, s.pairRound(scope, data, data.CurrentRound))
		}
	}

	progress.BattlesCompleted++
	progress.CurrentRound = mathutil.Min(data.CurrentRound, data.TotalRounds)
	progress.BattlesRemaining = s.battlesRemaining(data, len(tournament.Tracks))
	progress.ProgressPercentage = mathutil.Percentage(progress.BattlesCompleted, progress.BattlesCompleted+progress.BattlesRemaining)

	s.applied(scope, tournament, battle)
	return progress
}

func (s *swiss) battlesRemaining(data *models.SwissData, n int) int {
	if data.CurrentRound > data.TotalRounds {
		return 0
	}
	inRound := 0
	if round := data.Round(); round != nil {
		inRound = countPending(round.Pairings)
	}
	return inRound + (data.TotalRounds-data.CurrentRound)*(n/2)
}

func (s *swiss) GetNextMatchup(scope *envelope.Scope, tournament *models.Tournament) *models.Matchup {
	defer s.observe(constants.GetNextMatchupFunction, time.Now())

	data := s.data(scope, tournament)
	round := data.Round()
	if round == nil || data.CurrentPairingIndex >= len(round.Pairings) {
		return nil
	}

	pairing := round.Pairings[data.CurrentPairingIndex]
	trackA, okA := tournament.TrackByID(pairing.TrackAID)
	trackB, okB := tournament.TrackByID(pairing.TrackBID)
	if !okA || !okB {
		scope.Log.WithField("tournamentID", tournament.ID).WithField("pairing", pairing).Warn("pairing references unknown track")
		s.metrics.AddInvariantViolation(string(s.mode), constants.ReasonUnknownTrack)
		return nil
	}

	return &models.Matchup{
		TrackA: trackA,
		TrackB: trackB,
		Round:  data.CurrentRound,
		Metadata: map[string]interface{}{
			models.MetadataBattleType:    constants.BattleTypeSwiss,
			models.MetadataPairingIndex:  data.CurrentPairingIndex,
			models.MetadataTotalPairings: len(round.Pairings),
		},
	}
}

func (s *swiss) IsCompleted(scope *envelope.Scope, tournament *models.Tournament) bool {
	data := s.data(scope, tournament)
	return data.CurrentRound > data.TotalRounds
}

func (s *swiss) CompleteTournament(scope *envelope.Scope, tournament *models.Tournament) *models.Tournament {
	var champion *models.Track
	if ranked := models.RankStandings(s.data(scope, tournament).Standings); len(ranked) > 0 {
		champion = s.championByID(tournament, ranked[0].TrackID)
	}
	return s.complete(tournament, champion)
}

func (s *swiss) CanStartBattle(scope *envelope.Scope, tournament *models.Tournament) bool {
	return s.canStart(tournament) && !s.IsCompleted(scope, tournament)
}
