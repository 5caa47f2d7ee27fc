// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-battle-tournament/pkg/models"
	"github.com/AccelByte/extend-battle-tournament/pkg/storage/codec"
	"github.com/AccelByte/extend-battle-tournament/pkg/testsetup"
)

var snapshotTime = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

func sampleSnapshot() *Snapshot {
	tracks := testsetup.Tracks(4)
	return &Snapshot{
		Tournaments: []models.Tournament{
			{
				ID:         "t-active",
				Name:       "Active",
				PlaylistID: "p1",
				Status:     models.StatusActive,
				Mode:       models.ModeRoundRobin,
				ModeConfig: models.ModeConfig{Mode: models.ModeRoundRobin},
				Tracks:     tracks,
				CreatedAt:  snapshotTime,
				Progress: models.Progress{
					TotalTracks:      4,
					RemainingTracks:  tracks,
					EliminatedTracks: []models.Track{},
					CurrentRound:     1,
					TotalRounds:      1,
					BattlesRemaining: 6,
				},
				StrategyData: models.StrategyData{
					RoundRobin: &models.RoundRobinData{
						Fixtures:            []models.Pairing{{TrackAID: "t1", TrackBID: "t2"}},
						Standings:           models.NewStandings(models.TrackIDs(tracks)),
						CurrentFixtureIndex: 0,
					},
				},
			},
			{
				ID:        "t-legacy",
				Name:      "Legacy",
				Status:    models.StatusPaused,
				Tracks:    tracks[:2],
				CreatedAt: snapshotTime.Add(-time.Hour),
			},
		},
		ActiveTournamentID: "t-active",
		Timestamp:          snapshotTime,
	}
}

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, ErrSnapshotNotFound)
	require.NoError(t, store.Clear(ctx), "clearing an empty store")

	want := sampleSnapshot()
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.ActiveTournamentID, got.ActiveTournamentID)
	assert.True(t, want.Timestamp.Equal(got.Timestamp))
	require.Len(t, got.Tournaments, 2)
	assert.Equal(t, "t-active", got.Tournaments[0].ID)
	assert.Equal(t, models.ModeRoundRobin, got.Tournaments[0].Mode)
	require.NotNil(t, got.Tournaments[0].StrategyData.RoundRobin)
	assert.Equal(t, want.Tournaments[0].StrategyData.RoundRobin.Fixtures, got.Tournaments[0].StrategyData.RoundRobin.Fixtures)
	assert.Equal(t, want.Tournaments[0].StrategyData.RoundRobin.Standings, got.Tournaments[0].StrategyData.RoundRobin.Standings)
	assert.Equal(t, models.TrackIDs(want.Tournaments[0].Tracks), models.TrackIDs(got.Tournaments[0].Tracks))
	assert.Empty(t, got.Tournaments[1].Mode)
	assert.False(t, got.Tournaments[1].StrategyData.Has(models.ModeElimination))

	replacement := sampleSnapshot()
	replacement.Tournaments = replacement.Tournaments[:1]
	replacement.ActiveTournamentID = ""
	require.NoError(t, store.Save(ctx, replacement))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Tournaments, 1)
	assert.Empty(t, got.ActiveTournamentID)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_IsolatesCallers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	snapshot := sampleSnapshot()
	require.NoError(t, store.Save(ctx, snapshot))

	snapshot.Tournaments[0].StrategyData.RoundRobin.CurrentFixtureIndex = 5
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, loaded.Tournaments[0].StrategyData.RoundRobin.CurrentFixtureIndex)

	loaded.Tournaments[0].Name = "changed"
	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Active", again.Tournaments[0].Name)
}

func TestFileStore(t *testing.T) {
	for _, c := range []codec.Codec{codec.JSON, codec.CBOR, codec.Zstd(codec.CBOR)} {
		t.Run(c.Name(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "snapshot.bin")
			exerciseStore(t, NewFileStore(path, c))

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Empty(t, entries, "temporary files must not be left behind")
		})
	}
}

func TestFileStore_CorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path, nil).Load(context.Background())

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSnapshotNotFound)
}

func TestRedisStore(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "tournament_data", codec.Zstd(codec.JSON))
	exerciseStore(t, store)

	require.NoError(t, store.Save(context.Background(), sampleSnapshot()))
	assert.True(t, s.Exists("tournament_data"))
}

func TestBoltStore(t *testing.T) {
	store, err := NewBoltStore(filepath.Join(t.TempDir(), "snapshots.db"), "tournament_data", codec.JSON)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	store, err := ConnectMongoStore(ctx, uri, "battle_tournament_test", "snapshot_"+t.Name())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Clear(context.Background())
		_ = store.Close(context.Background())
	})
	require.NoError(t, store.Clear(ctx))

	exerciseStore(t, store)
}

func TestSnapshot_Expired(t *testing.T) {
	snapshot := sampleSnapshot()

	assert.False(t, snapshot.Expired(snapshotTime.Add(24*time.Hour), 30*24*time.Hour))
	assert.True(t, snapshot.Expired(snapshotTime.Add(31*24*time.Hour), 30*24*time.Hour))
}
