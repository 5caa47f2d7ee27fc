// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package defaultstrategy

import (
	"fmt"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-battle-tournament/pkg/config"
	"github.com/AccelByte/extend-battle-tournament/pkg/envelope"
	"github.com/AccelByte/extend-battle-tournament/pkg/models"
	"github.com/AccelByte/extend-battle-tournament/pkg/strategy"
	"github.com/AccelByte/extend-battle-tournament/pkg/testsetup"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestFactory(opts ...Option) *Factory {
	defaults := []Option{
		WithShuffler(testsetup.NoShuffle{}),
		WithMetrics(testsetup.NewMetrics()),
		WithClock(func() time.Time { return fixedNow }),
	}
	return NewFactory(config.Default(), append(defaults, opts...)...)
}

func newTestStrategy(scope *envelope.Scope, mode models.Mode, opts ...Option) strategy.TournamentStrategy {
	return newTestFactory(opts...).Get(scope, mode)
}

// newTournament creates an active tournament the way the orchestrator does, strategy data included.
func newTournament(scope *envelope.Scope, s strategy.TournamentStrategy, tracks []models.Track, params models.ModeParameters) *models.Tournament {
	tournament := &models.Tournament{
		ID:         "tournament",
		Name:       "Test",
		Status:     models.StatusActive,
		Mode:       s.Mode(),
		ModeConfig: models.ModeConfig{Mode: s.Mode(), Parameters: params},
		Tracks:     tracks,
		CreatedAt:  fixedNow,
		Progress:   s.InitializeTournament(scope, tracks, params),
	}
	s.GetStrategyData(scope, tournament)
	return tournament
}

func play(scope *envelope.Scope, s strategy.TournamentStrategy, tournament *models.Tournament, battle models.Battle) {
	tournament.Battles = append(tournament.Battles, battle)
	tournament.Progress = s.UpdateProgress(scope, tournament, battle)
}

func pickA(m *models.Matchup) string {
	return m.TrackA.ID
}

// pickSeed makes the track that comes first in tracks win.
func pickSeed(tracks []models.Track) func(m *models.Matchup) string {
	position := map[string]int{}
	for i, t := range tracks {
		position[t.ID] = i
	}
	return func(m *models.Matchup) string {
		if position[m.TrackA.ID] < position[m.TrackB.ID] {
			return m.TrackA.ID
		}
		return m.TrackB.ID
	}
}

// runToCompletion plays matchups until the strategy reports completion and returns the
// completed tournament and the number of battles played.
func runToCompletion(t *testing.T, scope *envelope.Scope, s strategy.TournamentStrategy, tournament *models.Tournament, pick func(m *models.Matchup) string) (*models.Tournament, int) {
	t.Helper()
	for i := 0; i < 10000; i++ {
		if s.IsCompleted(scope, tournament) {
			return s.CompleteTournament(scope, tournament), i
		}
		matchup := s.GetNextMatchup(scope, tournament)
		require.NotNil(t, matchup, "no matchup before completion: %s", spew.Sdump(tournament.StrategyData))
		require.NotEqual(t, matchup.TrackA.ID, matchup.TrackB.ID)

		before := tournament.Progress.BattlesCompleted
		play(scope, s, tournament, testsetup.BattleFor(fmt.Sprintf("b%d", i), matchup, pick(matchup)))
		require.Equal(t, before+1, tournament.Progress.BattlesCompleted, "battle %d was not counted", i)
	}
	t.Fatal("tournament did not complete")
	return nil, 0
}

// assertPartition checks that remaining and eliminated split the original tracks exactly.
func assertPartition(t *testing.T, original []models.Track, progress models.Progress) {
	t.Helper()
	seen := map[string]int{}
	for _, track := range progress.RemainingTracks {
		seen[track.ID]++
	}
	for _, track := range progress.EliminatedTracks {
		seen[track.ID]++
	}
	require.Len(t, seen, len(original), spew.Sdump(progress))
	for _, track := range original {
		assert.Equal(t, 1, seen[track.ID], "track %s", track.ID)
	}
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}
