// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package storage persists orchestrator snapshots. Every backend keeps exactly one
// snapshot under a configured key; saving replaces it.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mitchellh/copystructure"
	"github.com/rotisserie/eris"

	"github.com/AccelByte/extend-battle-tournament/pkg/models"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is the persisted orchestrator state.
type Snapshot struct {
	Tournaments        []models.Tournament `bson:"tournaments"          json:"tournaments"`
	ActiveTournamentID string              `bson:"active_tournament_id" json:"activeTournamentId,omitempty"`
	Timestamp          time.Time           `bson:"timestamp"            json:"timestamp"`
}

// Clone deep copies the snapshot, strategy data included.
func (s *Snapshot) Clone() (*Snapshot, error) {
	copied, err := copystructure.Copy(*s)
	if err != nil {
		return nil, eris.Wrap(err, "copy snapshot")
	}
	snapshot, ok := copied.(Snapshot)
	if !ok {
		return nil, eris.Errorf("copy snapshot: unexpected type %T", copied)
	}
	return &snapshot, nil
}

// Expired reports whether the snapshot is older than maxAge at now.
func (s *Snapshot) Expired(now time.Time, maxAge time.Duration) bool {
	return now.Sub(s.Timestamp) > maxAge
}

// Store is a snapshot backend. Load returns ErrSnapshotNotFound when nothing was saved.
type Store interface {
	Save(ctx context.Context, snapshot *Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
	Clear(ctx context.Context) error
}
