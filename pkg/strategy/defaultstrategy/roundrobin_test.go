// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package defaultstrategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-battle-tournament/pkg/constants"
	"github.com/AccelByte/extend-battle-tournament/pkg/models"
	"github.com/AccelByte/extend-battle-tournament/pkg/testsetup"
)

func TestRoundRobin_FixturesCoverEveryPairOnce(t *testing.T) {
	scope := testsetup.NewTestScope()
	s := newTestStrategy(scope, models.ModeRoundRobin, WithShuffler(testsetup.SeededShuffle(3)))
	tournament := newTournament(scope, s, testsetup.Tracks(6), models.ModeParameters{})

	data := s.GetStrategyData(scope, tournament).(*models.RoundRobinData)
	require.Len(t, data.Fixtures, 15)
	assert.Equal(t, 15, tournament.Progress.BattlesRemaining)

	seen := map[string]bool{}
	for _, f := range data.Fixtures {
		require.NotEqual(t, f.TrackAID, f.TrackBID)
		key := pairKey(f.TrackAID, f.TrackBID)
		assert.False(t, seen[key], "fixture %s repeated", key)
		seen[key] = true
	}
}

func TestRoundRobin_FourTrackScenario(t *testing.T) {
	scope := testsetup.NewTestScope()
	recorder := testsetup.NewRecordingMetrics()
	s := newTestStrategy(scope, models.ModeRoundRobin, WithMetrics(recorder))
	tracks := testsetup.Tracks(4)
	tournament := newTournament(scope, s, tracks, models.ModeParameters{})

	assert.Equal(t, 1, tournament.Progress.TotalRounds)
	assert.Equal(t, 6, tournament.Progress.BattlesRemaining)

	completed, battles := runToCompletion(t, scope, s, tournament, pickSeed(tracks))

	assert.Equal(t, 6, battles)
	assert.Equal(t, 6, recorder.Applied[string(models.ModeRoundRobin)])
	assert.Len(t, completed.Progress.RemainingTracks, 4, "round robin eliminates nobody")
	assert.Empty(t, completed.Progress.EliminatedTracks)
	require.NotNil(t, completed.Champion)
	assert.Equal(t, "t1", completed.Champion.ID)

	data := s.GetStrategyData(scope, tournament).(*models.RoundRobinData)
	played := 0
	for _, standing := range data.Standings {
		assert.Equal(t, 3, standing.Played)
		played += standing.Played
	}
	assert.Equal(t, 12, played)

	ranked := models.RankStandings(data.Standings)
	assert.Equal(t, "t1", ranked[0].TrackID)
	assert.Equal(t, 3*constants.PointsPerWinRoundRobin, ranked[0].Points)
	assert.Equal(t, "t4", ranked[3].TrackID)
	assert.Zero(t, ranked[3].Points)
}

func TestRoundRobin_CyclicTieGoesToFirstSeed(t *testing.T) {
	scope := testsetup.NewTestScope()
	s := newTestStrategy(scope, models.ModeRoundRobin, WithShuffler(testsetup.ReverseShuffle{}))
	tournament := newTournament(scope, s, testsetup.Tracks(3), models.ModeParameters{})

	winners := map[string]string{
		pairKey("t1", "t2"): "t1",
		pairKey("t2", "t3"): "t2",
		pairKey("t1", "t3"): "t3",
	}
	completed, _ := runToCompletion(t, scope, s, tournament, func(m *models.Matchup) string {
		return winners[pairKey(m.TrackA.ID, m.TrackB.ID)]
	})

	require.NotNil(t, completed.Champion)
	assert.Equal(t, "t1", completed.Champion.ID)
}

func TestRoundRobin_OutOfOrderFixtureIsPulledForward(t *testing.T) {
	scope := testsetup.NewTestScope()
	s := newTestStrategy(scope, models.ModeRoundRobin)
	tracks := testsetup.Tracks(4)
	tournament := newTournament(scope, s, tracks, models.ModeParameters{})

	first := s.GetNextMatchup(scope, tournament)
	require.NotNil(t, first)
	require.False(t, first.SamePair("t3", "t4"))

	play(scope, s, tournament, testsetup.BattleBetween("b0", tracks[2], tracks[3], "t4"))
	assert.Equal(t, 1, tournament.Progress.BattlesCompleted)
	assert.Equal(t, 5, tournament.Progress.BattlesRemaining)

	data := s.GetStrategyData(scope, tournament).(*models.RoundRobinData)
	assert.Equal(t, 1, data.CurrentFixtureIndex)
	assert.True(t, data.Fixtures[0].Matches("t3", "t4"))
	assert.Equal(t, "t4", data.Fixtures[0].WinnerID)

	next := s.GetNextMatchup(scope, tournament)
	require.NotNil(t, next)
	assert.False(t, next.SamePair("t3", "t4"))

	_, battles := runToCompletion(t, scope, s, tournament, pickA)
	assert.Equal(t, 5, battles)

	seen := map[string]bool{}
	for _, f := range data.Fixtures {
		assert.True(t, f.Completed)
		seen[pairKey(f.TrackAID, f.TrackBID)] = true
	}
	assert.Len(t, seen, 6)
}

func TestRoundRobin_InvariantViolationsLeaveProgressUnchanged(t *testing.T) {
	tracks := testsetup.Tracks(4)
	tests := []struct {
		name   string
		battle models.Battle
		reason string
	}{
		{
			name:   "winner not part of the battle",
			battle: testsetup.BattleBetween("b1", tracks[2], tracks[3], "t1"),
			reason: constants.ReasonWinnerNotInBattle,
		},
		{
			name:   "pair already played",
			battle: testsetup.BattleBetween("b1", tracks[0], tracks[1], "t2"),
			reason: constants.ReasonUnexpectedPairing,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := testsetup.NewTestScope()
			recorder := testsetup.NewRecordingMetrics()
			s := newTestStrategy(scope, models.ModeRoundRobin, WithMetrics(recorder))
			tournament := newTournament(scope, s, tracks, models.ModeParameters{})
			play(scope, s, tournament, testsetup.BattleBetween("b0", tracks[0], tracks[1], "t1"))
			before := tournament.Progress.Clone()

			progress := s.UpdateProgress(scope, tournament, tt.battle)

			assert.Equal(t, before, progress)
			assert.Equal(t, 1, recorder.ViolationCount(tt.reason))
		})
	}
}

func TestRoundRobin_NullWinnerIsNoOp(t *testing.T) {
	scope := testsetup.NewTestScope()
	s := newTestStrategy(scope, models.ModeRoundRobin)
	tournament := newTournament(scope, s, testsetup.Tracks(3), models.ModeParameters{})
	before := tournament.Progress.Clone()

	progress := s.UpdateProgress(scope, tournament, testsetup.BattleFor("b1", s.GetNextMatchup(scope, tournament), ""))

	assert.Equal(t, before, progress)
	assert.Zero(t, s.GetStrategyData(scope, tournament).(*models.RoundRobinData).CurrentFixtureIndex)
}

func TestRoundRobin_ProgressPercentage(t *testing.T) {
	scope := testsetup.NewTestScope()
	s := newTestStrategy(scope, models.ModeRoundRobin)
	tournament := newTournament(scope, s, testsetup.Tracks(3), models.ModeParameters{})

	matchup := s.GetNextMatchup(scope, tournament)
	assert.Equal(t, constants.BattleTypeRoundRobin, matchup.Metadata[models.MetadataBattleType])
	assert.Equal(t, 0, matchup.Metadata[models.MetadataFixtureIndex])
	assert.Equal(t, 3, matchup.Metadata[models.MetadataTotalFixtures])

	play(scope, s, tournament, testsetup.BattleFor("b1", matchup, matchup.TrackA.ID))
	assert.InDelta(t, 33.33, tournament.Progress.ProgressPercentage, 0.01)
	assert.Equal(t, 2, tournament.Progress.BattlesRemaining)
}
