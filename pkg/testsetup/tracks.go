// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-battle-tournament/pkg/models"
)

// Tracks builds n tracks with ids t1..tn. Every other track has a preview url.
func Tracks(n int) []models.Track {
	tracks := make([]models.Track, 0, n)
	for i := 1; i <= n; i++ {
		track := models.Track{
			ID:      fmt.Sprintf("t%d", i),
			Name:    fmt.Sprintf("Track %d", i),
			Artists: []models.Artist{{ID: fmt.Sprintf("a%d", i), Name: fmt.Sprintf("Artist %d", i)}},
		}
		if i%2 == 1 {
			track.PreviewURL = fmt.Sprintf("https://p.example/%d.mp3", i)
		}
		tracks = append(tracks, track)
	}
	return tracks
}

// BattleFor builds a completed battle between the matchup tracks won by winnerID.
func BattleFor(id string, matchup *models.Matchup, winnerID string) models.Battle {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return models.Battle{
		ID:          id,
		TrackA:      matchup.TrackA,
		TrackB:      matchup.TrackB,
		Winner:      winnerID,
		CreatedAt:   now,
		CompletedAt: &now,
	}
}

// BattleBetween builds a completed battle between a and b won by winnerID.
func BattleBetween(id string, a, b models.Track, winnerID string) models.Battle {
	return BattleFor(id, &models.Matchup{TrackA: a, TrackB: b}, winnerID)
}

// StubTrackSource serves fixed playlists.
type StubTrackSource struct {
	Playlists map[string][]models.Track
	Err       error
}

func (s StubTrackSource) Tracks(ctx context.Context, playlistID string) ([]models.Track, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Playlists[playlistID], nil
}
