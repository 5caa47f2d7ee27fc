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

func TestSwissRounds(t *testing.T) {
	tests := []struct {
		tracks int
		want   int
	}{
		{tracks: 4, want: 3},
		{tracks: 5, want: 4},
		{tracks: 8, want: 4},
		{tracks: 9, want: 5},
		{tracks: 16, want: 5},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d tracks", tt.tracks), func(t *testing.T) {
			assert.Equal(t, tt.want, swissRounds(tt.tracks))
		})
	}
}

func TestSwiss_FourTrackPairings(t *testing.T) {
	scope := testsetup.NewTestScope()
	s := newTestStrategy(scope, models.ModeSwiss)
	tracks := testsetup.Tracks(4)
	tournament := newTournament(scope, s, tracks, models.ModeParameters{})

	assert.Equal(t, 3, tournament.Progress.TotalRounds)
	assert.Equal(t, 6, tournament.Progress.BattlesRemaining)

	completed, battles := runToCompletion(t, scope, s, tournament, pickSeed(tracks))
	assert.Equal(t, 6, battles)

	data := s.GetStrategyData(scope, tournament).(*models.SwissData)
	require.Len(t, data.Rounds, 3)

	want := [][]string{
		{pairKey("t1", "t2"), pairKey("t3", "t4")},
		{pairKey("t1", "t3"), pairKey("t2", "t4")},
		{pairKey("t1", "t4"), pairKey("t2", "t3")},
	}
	seen := map[string]bool{}
	for i, round := range data.Rounds {
		assert.True(t, round.Completed, "round %d", round.Number)
		assert.Empty(t, round.ByeTrackID)
		got := []string{}
		for _, p := range round.Pairings {
			key := pairKey(p.TrackAID, p.TrackBID)
			assert.False(t, seen[key], "rematch %s", key)
			seen[key] = true
			got = append(got, key)
		}
		assert.Equal(t, want[i], got, "round %d", round.Number)
	}

	require.NotNil(t, completed.Champion)
	assert.Equal(t, "t1", completed.Champion.ID)
	assert.Len(t, completed.Progress.RemainingTracks, 4)
	assert.Equal(t, 3, completed.Progress.CurrentRound)
	assert.Equal(t, float64(100), completed.Progress.ProgressPercentage)
}

func TestSwiss_OddCountGivesByeWorthAWin(t *testing.T) {
	scope := testsetup.NewTestScope()
	s := newTestStrategy(scope, models.ModeSwiss)
	tournament := newTournament(scope, s, testsetup.Tracks(5), models.ModeParameters{})

	data := s.GetStrategyData(scope, tournament).(*models.SwissData)
	round := data.Round()
	require.NotNil(t, round)
	assert.Equal(t, "t5", round.ByeTrackID)
	assert.Len(t, round.Pairings, 2)

	bye := data.Standings[models.StandingIndex(data.Standings, "t5")]
	assert.Equal(t, constants.PointsPerSwissBye, bye.Points)
	assert.Equal(t, 1, bye.Won)
	assert.Equal(t, 1, bye.Played)
	assert.Empty(t, bye.Opponents)
}

func TestSwiss_TerminatesAfterRoundsTimesHalf(t *testing.T) {
	for _, n := range []int{4, 5, 6, 7, 8, 11} {
		t.Run(fmt.Sprintf("%d tracks", n), func(t *testing.T) {
			scope := testsetup.NewTestScope()
			s := newTestStrategy(scope, models.ModeSwiss, WithShuffler(testsetup.SeededShuffle(int64(n))))
			tracks := testsetup.Tracks(n)
			tournament := newTournament(scope, s, tracks, models.ModeParameters{})
			want := swissRounds(n) * (n / 2)
			assert.Equal(t, want, tournament.Progress.BattlesRemaining)

			completed, battles := runToCompletion(t, scope, s, tournament, pickA)

			assert.Equal(t, want, battles)
			assert.Zero(t, completed.Progress.BattlesRemaining)
			assertPartition(t, tracks, completed.Progress)
		})
	}
}

func TestSwiss_BattlesRemainingCountsDown(t *testing.T) {
	scope := testsetup.NewTestScope()
	s := newTestStrategy(scope, models.ModeSwiss)
	tracks := testsetup.Tracks(6)
	tournament := newTournament(scope, s, tracks, models.ModeParameters{})

	remaining := tournament.Progress.BattlesRemaining
	for !s.IsCompleted(scope, tournament) {
		matchup := s.GetNextMatchup(scope, tournament)
		require.NotNil(t, matchup)
		assert.Equal(t, constants.BattleTypeSwiss, matchup.Metadata[models.MetadataBattleType])
		play(scope, s, tournament, testsetup.BattleFor("b", matchup, matchup.TrackA.ID))
		assert.Equal(t, remaining-1, tournament.Progress.BattlesRemaining)
		remaining = tournament.Progress.BattlesRemaining
	}
	assert.Zero(t, remaining)
}

func TestSwiss_OutOfOrderAndUnexpectedPairings(t *testing.T) {
	scope := testsetup.NewTestScope()
	recorder := testsetup.NewRecordingMetrics()
	s := newTestStrategy(scope, models.ModeSwiss, WithMetrics(recorder))
	tracks := testsetup.Tracks(4)
	tournament := newTournament(scope, s, tracks, models.ModeParameters{})

	play(scope, s, tournament, testsetup.BattleBetween("b1", tracks[3], tracks[2], "t4"))
	data := s.GetStrategyData(scope, tournament).(*models.SwissData)
	assert.Equal(t, 1, data.CurrentPairingIndex)
	assert.True(t, data.Round().Pairings[0].Matches("t3", "t4"))

	before := tournament.Progress.Clone()
	progress := s.UpdateProgress(scope, tournament, testsetup.BattleBetween("b2", tracks[0], tracks[2], "t1"))
	assert.Equal(t, before, progress)
	assert.Equal(t, 1, recorder.ViolationCount(constants.ReasonUnexpectedPairing))

	next := s.GetNextMatchup(scope, tournament)
	require.NotNil(t, next)
	assert.True(t, next.SamePair("t1", "t2"))
}

func TestSwiss_CompletedTournamentIgnoresBattles(t *testing.T) {
	scope := testsetup.NewTestScope()
	recorder := testsetup.NewRecordingMetrics()
	s := newTestStrategy(scope, models.ModeSwiss, WithMetrics(recorder))
	tracks := testsetup.Tracks(4)
	tournament := newTournament(scope, s, tracks, models.ModeParameters{})
	runToCompletion(t, scope, s, tournament, pickA)
	before := tournament.Progress.Clone()

	progress := s.UpdateProgress(scope, tournament, testsetup.BattleBetween("late", tracks[0], tracks[1], "t1"))

	assert.Equal(t, before, progress)
	assert.Nil(t, s.GetNextMatchup(scope, tournament))
	assert.False(t, s.CanStartBattle(scope, tournament))
	assert.Equal(t, 1, recorder.ViolationCount(constants.ReasonUnexpectedPairing))
}
