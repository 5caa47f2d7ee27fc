// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-battle-tournament/pkg/config"
)

func TestOpen(t *testing.T) {
	redisServer := miniredis.RunT(t)

	tests := []struct {
		name     string
		backend  string
		format   string
		compress bool
		wantType Store
	}{
		{name: "default is memory", backend: "", format: "json", wantType: &MemoryStore{}},
		{name: "file with compressed cbor", backend: BackendFile, format: "cbor", compress: true, wantType: &FileStore{}},
		{name: "redis", backend: BackendRedis, format: "json", wantType: &RedisStore{}},
		{name: "bolt", backend: "BOLT", format: "json", wantType: &BoltStore{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.SnapshotBackend = tt.backend
			cfg.SnapshotFormat = tt.format
			cfg.SnapshotCompress = tt.compress
			cfg.SnapshotPath = filepath.Join(t.TempDir(), "snapshot")
			cfg.RedisAddr = redisServer.Addr()

			store, closeStore, err := Open(context.Background(), cfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = closeStore(context.Background()) })

			assert.IsType(t, tt.wantType, store)
			exerciseStore(t, store)
		})
	}
}

func TestOpen_Rejects(t *testing.T) {
	cfg := config.Default()
	cfg.SnapshotBackend = "tape"
	_, _, err := Open(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown snapshot backend")

	cfg = config.Default()
	cfg.SnapshotFormat = "xml"
	_, _, err = Open(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown snapshot format")
}
