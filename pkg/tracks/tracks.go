// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package tracks is the track supply boundary of the engine: where tournaments get their
// competitors from, and the checks those competitors must pass.
package tracks

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-battle-tournament/pkg/models"
)

var ErrPlaylistNotFound = errors.New("playlist not found")

// Source returns the tracks of a playlist.
type Source interface {
	Tracks(ctx context.Context, playlistID string) ([]models.Track, error)
}

// StaticSource serves playlists held in memory, keyed by playlist id.
type StaticSource map[string][]models.Track

func (s StaticSource) Tracks(ctx context.Context, playlistID string) ([]models.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracks, ok := s[playlistID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlaylistNotFound, playlistID)
	}
	return slices.Clone(tracks), nil
}

// ValidateUnique checks every track has a non-empty id used only once.
func ValidateUnique(tracks []models.Track) error {
	seen := make(map[string]struct{}, len(tracks))
	for i, t := range tracks {
		if t.ID == "" {
			return fmt.Errorf("%w: track at position %d has no id", models.ErrDuplicateTrackID, i)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: %s", models.ErrDuplicateTrackID, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

func WithPreview(tracks []models.Track) []models.Track {
	return pie.Filter(tracks, func(t models.Track) bool { return t.HasPreview() })
}

func WithoutPreview(tracks []models.Track) []models.Track {
	return pie.Filter(tracks, func(t models.Track) bool { return !t.HasPreview() })
}
