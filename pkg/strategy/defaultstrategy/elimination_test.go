// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package defaultstrategy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-battle-tournament/pkg/constants"
	"github.com/AccelByte/extend-battle-tournament/pkg/models"
	"github.com/AccelByte/extend-battle-tournament/pkg/testsetup"
)

func TestElimination_InitializeTournament(t *testing.T) {
	scope := testsetup.NewTestScope()
	s := newTestStrategy(scope, models.ModeElimination)

	tests := []struct {
		name        string
		tracks      int
		wantRounds  int
		wantBattles int
	}{
		{name: "two tracks", tracks: 2, wantRounds: 1, wantBattles: 1},
		{name: "four tracks", tracks: 4, wantRounds: 2, wantBattles: 3},
		{name: "five tracks", tracks: 5, wantRounds: 3, wantBattles: 4},
		{name: "sixteen tracks", tracks: 16, wantRounds: 4, wantBattles: 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracks := testsetup.Tracks(tt.tracks)
			progress := s.InitializeTournament(scope, tracks, models.ModeParameters{})

			assert.Equal(t, tt.tracks, progress.TotalTracks)
			assert.Equal(t, tt.wantRounds, progress.TotalRounds)
			assert.Equal(t, 1, progress.CurrentRound)
			assert.Equal(t, tt.wantBattles, progress.BattlesRemaining)
			assert.Equal(t, tracks, progress.RemainingTracks)
			assert.Empty(t, progress.EliminatedTracks)
			assert.Zero(t, progress.ProgressPercentage)

			progress.RemainingTracks[0].ID = "changed"
			assert.Equal(t, "t1", tracks[0].ID, "input tracks must not be shared")
		})
	}
}

func TestElimination_FourTrackScenario(t *testing.T) {
	scope := testsetup.NewTestScope()
	s := newTestStrategy(scope, models.ModeElimination)
	tracks := testsetup.Tracks(4)
	tournament := newTournament(scope, s, tracks, models.ModeParameters{})

	first := s.GetNextMatchup(scope, tournament)
	require.NotNil(t, first)
	assert.Equal(t, "t1", first.TrackA.ID)
	assert.Equal(t, "t2", first.TrackB.ID)
	assert.Equal(t, 1, first.Round)
	assert.Equal(t, constants.BattleTypeElimination, first.Metadata[models.MetadataBattleType])

	play(scope, s, tournament, testsetup.BattleFor("b1", first, "t1"))
	assert.Equal(t, 1, tournament.Progress.CurrentRound)
	assert.Equal(t, 2, tournament.Progress.BattlesRemaining)
	assert.InDelta(t, 33.33, tournament.Progress.ProgressPercentage, 0.01)

	second := s.GetNextMatchup(scope, tournament)
	require.NotNil(t, second)
	assert.True(t, second.SamePair("t3", "t4"))
	play(scope, s, tournament, testsetup.BattleFor("b2", second, "t3"))
	assert.Equal(t, 2, tournament.Progress.CurrentRound)

	final := s.GetNextMatchup(scope, tournament)
	require.NotNil(t, final)
	assert.True(t, final.SamePair("t1", "t3"))
	assert.Equal(t, 2, final.Round)
	play(scope, s, tournament, testsetup.BattleFor("b3", final, "t1"))

	require.True(t, s.IsCompleted(scope, tournament))
	assert.Nil(t, s.GetNextMatchup(scope, tournament))
	assert.Len(t, tournament.Progress.RemainingTracks, 1)
	assert.Len(t, tournament.Progress.EliminatedTracks, 3)
	assertPartition(t, tracks, tournament.Progress)

	completed := s.CompleteTournament(scope, tournament)
	assert.Equal(t, models.StatusCompleted, completed.Status)
	require.NotNil(t, completed.Champion)
	assert.Equal(t, "t1", completed.Champion.ID)
	assert.Equal(t, float64(100), completed.Progress.ProgressPercentage)
	assert.Zero(t, completed.Progress.BattlesRemaining)
	assert.Equal(t, fixedNow, *completed.CompletedAt)
	assert.Equal(t, models.StatusActive, tournament.Status, "input tournament must not change")
}

func TestElimination_TerminatesAfterNMinusOneBattles(t *testing.T) {
	for _, n := range []int{2, 3, 5, 7, 8, 9, 13, 16} {
		t.Run(fmt.Sprintf("%d tracks", n), func(t *testing.T) {
			scope := testsetup.NewTestScope()
			s := newTestStrategy(scope, models.ModeElimination, WithShuffler(testsetup.SeededShuffle(int64(n))))
			tracks := testsetup.Tracks(n)
			tournament := newTournament(scope, s, tracks, models.ModeParameters{})

			for !s.IsCompleted(scope, tournament) {
				matchup := s.GetNextMatchup(scope, tournament)
				require.NotNil(t, matchup)
				battle := testsetup.BattleFor(fmt.Sprintf("b%d", tournament.Progress.BattlesCompleted), matchup, matchup.TrackB.ID)
				play(scope, s, tournament, battle)
				assertPartition(t, tracks, tournament.Progress)
				assert.Equal(t, len(tournament.Progress.RemainingTracks)-1, tournament.Progress.BattlesRemaining)
				assert.LessOrEqual(t, tournament.Progress.CurrentRound, tournament.Progress.TotalRounds)
			}

			assert.Equal(t, n-1, tournament.Progress.BattlesCompleted)
			assert.Equal(t, float64(100), tournament.Progress.ProgressPercentage)
		})
	}
}

func TestElimination_OddCountGivesBye(t *testing.T) {
	scope := testsetup.NewTestScope()
	s := newTestStrategy(scope, models.ModeElimination)
	tournament := newTournament(scope, s, testsetup.Tracks(3), models.ModeParameters{})

	data := s.GetStrategyData(scope, tournament).(*models.EliminationData)
	require.Len(t, data.Matchups, 1)
	assert.Equal(t, []string{"t3"}, data.Byes)

	matchup := s.GetNextMatchup(scope, tournament)
	play(scope, s, tournament, testsetup.BattleFor("b1", matchup, "t1"))

	assert.Equal(t, 2, data.Round)
	next := s.GetNextMatchup(scope, tournament)
	require.NotNil(t, next)
	assert.True(t, next.SamePair("t1", "t3"))
}

func TestElimination_NullWinnerIsNoOp(t *testing.T) {
	scope := testsetup.NewTestScope()
	s := newTestStrategy(scope, models.ModeElimination)
	tournament := newTournament(scope, s, testsetup.Tracks(4), models.ModeParameters{})
	before := tournament.Progress.Clone()

	matchup := s.GetNextMatchup(scope, tournament)
	progress := s.UpdateProgress(scope, tournament, testsetup.BattleFor("b1", matchup, ""))

	assert.Equal(t, before, progress)
}

func TestElimination_InvariantViolationsLeaveProgressUnchanged(t *testing.T) {
	tracks := testsetup.Tracks(4)
	tests := []struct {
		name   string
		battle models.Battle
		reason string
	}{
		{
			name:   "winner not part of the battle",
			battle: testsetup.BattleBetween("b1", tracks[0], tracks[1], "t4"),
			reason: constants.ReasonWinnerNotInBattle,
		},
		{
			name:   "winner already eliminated",
			battle: testsetup.BattleBetween("b1", tracks[1], tracks[2], "t2"),
			reason: constants.ReasonWinnerNotRemaining,
		},
		{
			name:   "loser already eliminated",
			battle: testsetup.BattleBetween("b1", tracks[1], tracks[2], "t3"),
			reason: constants.ReasonLoserNotRemaining,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := testsetup.NewTestScope()
			recorder := testsetup.NewRecordingMetrics()
			s := newTestStrategy(scope, models.ModeElimination, WithMetrics(recorder))
			tournament := newTournament(scope, s, tracks, models.ModeParameters{})
			play(scope, s, tournament, testsetup.BattleBetween("b0", tracks[0], tracks[1], "t1"))
			before := tournament.Progress.Clone()

			progress := s.UpdateProgress(scope, tournament, tt.battle)

			assert.Equal(t, before, progress)
			assert.Equal(t, 1, recorder.ViolationCount(tt.reason))
		})
	}
}

func TestElimination_StrategyDataIsMemoized(t *testing.T) {
	scope := testsetup.NewTestScope()
	s := newTestStrategy(scope, models.ModeElimination, WithShuffler(testsetup.SeededShuffle(7)))
	tournament := newTournament(scope, s, testsetup.Tracks(8), models.ModeParameters{})

	first := s.GetStrategyData(scope, tournament)
	second := s.GetStrategyData(scope, tournament)

	assert.Same(t, first, second)
}

func TestElimination_RegeneratesExhaustedBracket(t *testing.T) {
	scope := testsetup.NewTestScope()
	recorder := testsetup.NewRecordingMetrics()
	s := newTestStrategy(scope, models.ModeElimination, WithMetrics(recorder))
	tournament := newTournament(scope, s, testsetup.Tracks(4), models.ModeParameters{})

	data := s.GetStrategyData(scope, tournament).(*models.EliminationData)
	data.Matchups = nil

	matchup := s.GetNextMatchup(scope, tournament)

	require.NotNil(t, matchup)
	assert.Equal(t, 2, data.Round)
	assert.Equal(t, 1, recorder.ViolationCount(constants.ReasonBracketExhausted))
}

func TestElimination_LegacyTournamentWithoutStrategyData(t *testing.T) {
	scope := testsetup.NewTestScope()
	s := newTestStrategy(scope, models.ModeElimination)
	tracks := testsetup.Tracks(4)
	tournament := &models.Tournament{
		ID:     "legacy",
		Status: models.StatusActive,
		Tracks: tracks,
		Progress: models.Progress{
			TotalTracks:      4,
			RemainingTracks:  []models.Track{tracks[0], tracks[2], tracks[3]},
			EliminatedTracks: []models.Track{tracks[1]},
			CurrentRound:     1,
			TotalRounds:      2,
			BattlesCompleted: 1,
			BattlesRemaining: 2,
		},
	}

	completed, battles := runToCompletion(t, scope, s, tournament, pickA)

	assert.Equal(t, 2, battles)
	assert.Equal(t, 3, completed.Progress.BattlesCompleted)
	assertPartition(t, tracks, completed.Progress)
}

func TestElimination_UpdateStrategyDataRejectsOtherModes(t *testing.T) {
	scope := testsetup.NewTestScope()
	s := newTestStrategy(scope, models.ModeElimination)
	tournament := newTournament(scope, s, testsetup.Tracks(4), models.ModeParameters{})

	err := s.UpdateStrategyData(tournament, &models.SwissData{})
	assert.ErrorIs(t, err, models.ErrStrategyDataType)

	replacement := &models.EliminationData{Round: 5}
	require.NoError(t, s.UpdateStrategyData(tournament, replacement))
	assert.Same(t, replacement, s.GetStrategyData(scope, tournament))
}

func TestElimination_CanStartBattle(t *testing.T) {
	scope := testsetup.NewTestScope()
	s := newTestStrategy(scope, models.ModeElimination)
	tournament := newTournament(scope, s, testsetup.Tracks(2), models.ModeParameters{})

	assert.True(t, s.CanStartBattle(scope, tournament))

	tournament.Status = models.StatusPaused
	assert.False(t, s.CanStartBattle(scope, tournament))

	tournament.Status = models.StatusActive
	play(scope, s, tournament, testsetup.BattleFor("b1", s.GetNextMatchup(scope, tournament), "t2"))
	assert.False(t, s.CanStartBattle(scope, tournament))
}
