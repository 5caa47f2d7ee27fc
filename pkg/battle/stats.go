// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package battle

import (
	"time"

	"github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-battle-tournament/pkg/mathutil"
	"github.com/AccelByte/extend-battle-tournament/pkg/models"
)

const (
	baseScore          = 1000
	winBonus           = 50
	lossPenalty        = 25
	participationBonus = 10
)

// TrackStats is a track's record across every battle of the session.
type TrackStats struct {
	TrackID      string       `json:"trackId"`
	Track        models.Track `json:"track"`
	Wins         int          `json:"wins"`
	Losses       int          `json:"losses"`
	TotalBattles int          `json:"totalBattles"`
	// WinRate is a percentage.
	WinRate      float64   `json:"winRate"`
	LastBattleAt time.Time `json:"lastBattleAt"`
}

func (t *TrackStats) record(won bool, at time.Time) {
	if won {
		t.Wins++
	} else {
		t.Losses++
	}
	t.TotalBattles = t.Wins + t.Losses
	t.WinRate = float64(t.Wins) / float64(t.TotalBattles) * 100
	t.LastBattleAt = at
}

// Score rates a track: 1000 + 50 per win - 25 per loss + 10 per battle, never below zero.
func (t TrackStats) Score() int {
	return mathutil.Max(0, baseScore+winBonus*t.Wins-lossPenalty*t.Losses+participationBonus*t.TotalBattles)
}

type LeaderboardEntry struct {
	Rank  int          `json:"rank"`
	Track models.Track `json:"track"`
	Stats TrackStats   `json:"stats"`
	Score int          `json:"score"`
}

// Summary describes the session as a whole.
type Summary struct {
	Tracks                int           `json:"tracks"`
	TotalBattles          int           `json:"totalBattles"`
	TotalVotes            int           `json:"totalVotes"`
	AverageBattleDuration time.Duration `json:"averageBattleDuration"`
}

// Stats returns the record of a track that has been available or has battled.
func (s *Session) Stats(trackID string) (TrackStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, ok := s.stats[trackID]
	if !ok {
		return TrackStats{}, false
	}
	return *stats, true
}

// Leaderboard ranks every known track by score. Equal scores keep the order in which
// the tracks first appeared.
func (s *Session) Leaderboard() []LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]LeaderboardEntry, 0, len(s.order))
	for _, id := range s.order {
		stats := *s.stats[id]
		entries = append(entries, LeaderboardEntry{Track: stats.Track, Stats: stats, Score: stats.Score()})
	}
	entries = pie.SortStableUsing(entries, func(a, b LeaderboardEntry) bool { return a.Score > b.Score })
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := Summary{Tracks: len(s.tracks), TotalBattles: len(s.history)}
	var total time.Duration
	for _, b := range s.history {
		summary.TotalVotes += len(b.Votes)
		if b.CompletedAt != nil {
			total += b.CompletedAt.Sub(b.CreatedAt)
		}
	}
	if summary.TotalBattles > 0 {
		summary.AverageBattleDuration = total / time.Duration(summary.TotalBattles)
	}
	return summary
}
