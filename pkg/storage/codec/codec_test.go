// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package codec

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-battle-tournament/pkg/models"
	"github.com/AccelByte/extend-battle-tournament/pkg/testsetup"
)

func sampleTournament() models.Tournament {
	tracks := testsetup.Tracks(4)
	created := time.Date(2025, 2, 3, 4, 5, 6, 789000000, time.UTC)
	return models.Tournament{
		ID:         "tid",
		Name:       "Friday",
		PlaylistID: "p1",
		Status:     models.StatusActive,
		Mode:       models.ModeDeathmatch,
		ModeConfig: models.ModeConfig{Mode: models.ModeDeathmatch, Parameters: models.ModeParameters{TargetScore: 3}},
		Tracks:     tracks,
		Battles:    []models.Battle{testsetup.BattleBetween("b1", tracks[0], tracks[1], "t1")},
		CreatedAt:  created,
		Progress: models.Progress{
			TotalTracks:      4,
			RemainingTracks:  tracks,
			EliminatedTracks: []models.Track{},
			CurrentRound:     1,
			TotalRounds:      1,
			BattlesCompleted: 1,
			BattlesRemaining: 49,
		},
		StrategyData: models.StrategyData{
			Deathmatch: &models.DeathmatchData{
				Scores:       map[string]int{"t1": 1, "t2": 0, "t3": 0, "t4": 0},
				TargetScore:  3,
				TotalBattles: 1,
				MaxBattles:   50,
				Leaderboard:  []models.ScoreEntry{{TrackID: "t1", Score: 1}},
				LastPairing:  &models.Pairing{TrackAID: "t1", TrackBID: "t2", Completed: true, WinnerID: "t1", BattleID: "b1"},
			},
		},
	}
}

func TestCodecs_PreserveTournamentState(t *testing.T) {
	codecs := []Codec{JSON, CBOR, Zstd(JSON), Zstd(CBOR)}
	for _, c := range codecs {
		t.Run(c.Name(), func(t *testing.T) {
			want := sampleTournament()

			bz, err := c.Marshal(want)
			require.NoError(t, err)

			var got models.Tournament
			require.NoError(t, c.Unmarshal(bz, &got))

			assert.Equal(t, want.ID, got.ID)
			assert.Equal(t, want.Mode, got.Mode)
			assert.Equal(t, want.ModeConfig, got.ModeConfig)
			assert.Equal(t, want.Tracks, got.Tracks)
			assert.Equal(t, want.Progress.BattlesRemaining, got.Progress.BattlesRemaining)
			assert.Equal(t, models.TrackIDs(want.Progress.RemainingTracks), models.TrackIDs(got.Progress.RemainingTracks))
			assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "createdAt %s != %s", want.CreatedAt, got.CreatedAt)
			require.Len(t, got.Battles, 1)
			assert.Equal(t, "t1", got.Battles[0].Winner)
			require.NotNil(t, got.StrategyData.Deathmatch)
			assert.Equal(t, want.StrategyData.Deathmatch, got.StrategyData.Deathmatch)
			assert.Nil(t, got.StrategyData.Elimination)
		})
	}
}

func TestCBOR_IsDeterministic(t *testing.T) {
	first, err := CBOR.Marshal(sampleTournament())
	require.NoError(t, err)
	second, err := CBOR.Marshal(sampleTournament())
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second))
}

func TestZstd_CompressesRepetitiveSnapshots(t *testing.T) {
	tournaments := make([]models.Tournament, 20)
	for i := range tournaments {
		tournaments[i] = sampleTournament()
	}

	raw, err := JSON.Marshal(tournaments)
	require.NoError(t, err)
	compressed, err := Zstd(JSON).Marshal(tournaments)
	require.NoError(t, err)

	assert.Less(t, len(compressed), len(raw))
	assert.Error(t, Zstd(JSON).Unmarshal(raw, &tournaments), "plain json is not a zstd frame")
}

func TestByName(t *testing.T) {
	tests := []struct {
		format   string
		compress bool
		want     string
		wantErr  bool
	}{
		{format: "", want: "json"},
		{format: "JSON", want: "json"},
		{format: "cbor", want: "cbor"},
		{format: "cbor", compress: true, want: "cbor+zstd"},
		{format: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.format+tt.want, func(t *testing.T) {
			c, err := ByName(tt.format, tt.compress)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Name())
		})
	}
}
