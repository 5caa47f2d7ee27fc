// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package orchestrator

import (
	"fmt"
	"time"

	"github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-battle-tournament/pkg/models"
)

// Stats summarizes how a tournament has been played so far.
type Stats struct {
	TotalDuration        time.Duration `json:"totalDuration"`
	AverageBattleTime    time.Duration `json:"avgBattleTime"`
	BattlesPerDay        float64       `json:"battlesPerDay"`
	CompletionPercentage float64       `json:"completionPercentage"`
	BattlesCompleted     int           `json:"battlesCompleted"`
	TracksEliminated     int           `json:"tracksEliminated"`
	TracksRemaining      int           `json:"tracksRemaining"`
}

// ComputeStats measures a running tournament up to now and a completed one up to its completion.
func ComputeStats(tournament models.Tournament, now time.Time) Stats {
	end := now
	if tournament.CompletedAt != nil {
		end = *tournament.CompletedAt
	}
	stats := Stats{
		TotalDuration:        end.Sub(tournament.CreatedAt),
		CompletionPercentage: tournament.Progress.ProgressPercentage,
		BattlesCompleted:     len(tournament.Battles),
		TracksEliminated:     len(tournament.Progress.EliminatedTracks),
		TracksRemaining:      len(tournament.Progress.RemainingTracks),
	}
	if battles := len(tournament.Battles); battles > 0 {
		stats.AverageBattleTime = stats.TotalDuration / time.Duration(battles)
		if days := stats.TotalDuration.Hours() / 24; days > 0 {
			stats.BattlesPerDay = float64(battles) / days
		}
	}
	return stats
}

// Stats returns the statistics of the tournament with the given id.
func (o *Orchestrator) Stats(tournamentID string) (Stats, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	tournament := o.findLocked(tournamentID)
	if tournament == nil {
		return Stats{}, fmt.Errorf("%w: %s", models.ErrTournamentNotFound, tournamentID)
	}
	return ComputeStats(*tournament, o.now()), nil
}

// Tournament returns a copy of the tournament with the given id.
func (o *Orchestrator) Tournament(tournamentID string) (*models.Tournament, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	tournament := o.findLocked(tournamentID)
	if tournament == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrTournamentNotFound, tournamentID)
	}
	return copyOf(tournament), nil
}

// Tournaments returns copies of every tournament in creation order.
func (o *Orchestrator) Tournaments() []models.Tournament {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.copiesLocked(func(*models.Tournament) bool { return true })
}

// ActiveTournament returns a copy of the active tournament, or nil when none is set.
// The active tournament may be paused.
func (o *Orchestrator) ActiveTournament() *models.Tournament {
	o.mu.Lock()
	defer o.mu.Unlock()

	if tournament := o.activeLocked(); tournament != nil {
		return copyOf(tournament)
	}
	return nil
}

// ActiveTournaments returns copies of the tournaments in active status.
func (o *Orchestrator) ActiveTournaments() []models.Tournament {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.copiesLocked(func(t *models.Tournament) bool { return t.Status == models.StatusActive })
}

func (o *Orchestrator) CompletedTournaments() []models.Tournament {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.copiesLocked(func(t *models.Tournament) bool { return t.Status == models.StatusCompleted })
}

func (o *Orchestrator) copiesLocked(keep func(*models.Tournament) bool) []models.Tournament {
	return pie.Map(pie.Filter(o.tournaments, keep), func(t *models.Tournament) models.Tournament {
		return t.Copy()
	})
}
