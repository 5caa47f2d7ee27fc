// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package defaultstrategy provides the built-in implementations of the TournamentStrategy interface:
// single elimination, round robin, swiss, groups with playoffs, and deathmatch.
package defaultstrategy

import (
	"math/rand"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-battle-tournament/pkg/config"
	"github.com/AccelByte/extend-battle-tournament/pkg/envelope"
	"github.com/AccelByte/extend-battle-tournament/pkg/metrics"
	"github.com/AccelByte/extend-battle-tournament/pkg/models"
	"github.com/AccelByte/extend-battle-tournament/pkg/strategy"
)

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

type options struct {
	shuffler strategy.Shuffler
	metrics  metrics.TournamentMetrics
	now      func() time.Time
}

// Option customizes the strategies built by NewFactory.
type Option func(*options)

// WithShuffler sets the source of randomness for brackets, fixtures and deathmatch pairing.
func WithShuffler(shuffler strategy.Shuffler) Option {
	return func(o *options) {
		o.shuffler = shuffler
	}
}

func WithMetrics(m metrics.TournamentMetrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithClock sets the time source used for completedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{
		shuffler: globalShuffler{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = metrics.NewMetrics(prometheus.NewRegistry())
	}
	return o
}

// base carries what every strategy shares. It holds no tournament state.
type base struct {
	options
	mode models.Mode
	cfg  *config.Config
}

func (b base) Mode() models.Mode {
	return b.mode
}

func (b base) shuffled(ids []string) []string {
	order := slices.Clone(ids)
	b.shuffler.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

func (b base) observe(function string, start time.Time) {
	b.metrics.AddStrategyElapsedTimeMs(string(b.mode), function, time.Since(start))
}

func (b base) battleFields(tournament *models.Tournament, battle models.Battle) logrus.Fields {
	return logrus.Fields{
		"tournamentID": tournament.ID,
		"mode":         string(b.mode),
		"battleID":     battle.ID,
		"trackA":       battle.TrackA.ID,
		"trackB":       battle.TrackB.ID,
		"winner":       battle.Winner,
	}
}

// violation records a battle that does not fit the tournament state.
func (b base) violation(scope *envelope.Scope, tournament *models.Tournament, battle models.Battle, reason string) {
	scope.Log.WithFields(b.battleFields(tournament, battle)).WithField("reason", reason).
		Warn("battle does not fit tournament state, progress left unchanged")
	b.metrics.AddInvariantViolation(string(b.mode), reason)
}

func (b base) applied(scope *envelope.Scope, tournament *models.Tournament, battle models.Battle) {
	scope.Log.WithFields(b.battleFields(tournament, battle)).Debug("battle applied")
	b.metrics.AddBattleApplied(string(b.mode))
}

// complete returns a completed copy of tournament. The input is not modified.
func (b base) complete(tournament *models.Tournament, champion *models.Track) *models.Tournament {
	completed := *tournament
	completed.Progress = tournament.Progress.Clone()
	completed.Status = models.StatusCompleted
	now := b.now()
	completed.CompletedAt = &now
	if champion != nil {
		c := *champion
		completed.Champion = &c
	}
	completed.Progress.ProgressPercentage = 100
	completed.Progress.BattlesRemaining = 0
	return &completed
}

func (b base) canStart(tournament *models.Tournament) bool {
	return tournament != nil && tournament.Status == models.StatusActive
}

func (b base) championByID(tournament *models.Tournament, id string) *models.Track {
	if track, ok := tournament.TrackByID(id); ok {
		return &track
	}
	return nil
}

// newProgress is the starting progress shared by all modes.
func newProgress(tracks []models.Track, totalRounds, totalBattles int) models.Progress {
	return models.Progress{
		TotalTracks:        len(tracks),
		RemainingTracks:    slices.Clone(tracks),
		EliminatedTracks:   []models.Track{},
		CurrentRound:       1,
		TotalRounds:        totalRounds,
		BattlesCompleted:   0,
		BattlesRemaining:   totalBattles,
		ProgressPercentage: 0,
	}
}

func trackSet(tracks []models.Track) map[string]bool {
	set := make(map[string]bool, len(tracks))
	for _, t := range tracks {
		set[t.ID] = true
	}
	return set
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// eliminate moves the loser from remaining to eliminated by id.
func eliminate(progress *models.Progress, loser models.Track) {
	remaining := make([]models.Track, 0, len(progress.RemainingTracks))
	for _, t := range progress.RemainingTracks {
		if t.ID != loser.ID {
			remaining = append(remaining, t)
		}
	}
	progress.RemainingTracks = remaining
	progress.EliminatedTracks = append(progress.EliminatedTracks, loser)
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
