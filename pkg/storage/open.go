// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/AccelByte/extend-battle-tournament/pkg/config"
	"github.com/AccelByte/extend-battle-tournament/pkg/storage/codec"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendBolt   = "bolt"
	BackendMongo  = "mongo"
)

// CloseFunc releases what a store holds open.
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error {
	return nil
}

// Open builds the store selected by cfg.SnapshotBackend with the codec selected by
// cfg.SnapshotFormat and cfg.SnapshotCompress. The mongo store ignores the codec.
func Open(ctx context.Context, cfg *config.Config) (Store, CloseFunc, error) {
	c, err := codec.ByName(cfg.SnapshotFormat, cfg.SnapshotCompress)
	if err != nil {
		return nil, nil, err
	}

	switch strings.ToLower(cfg.SnapshotBackend) {
	case "", BackendMemory:
		return NewMemoryStore(), noopClose, nil
	case BackendFile:
		return NewFileStore(cfg.SnapshotPath, c), noopClose, nil
	case BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return NewRedisStore(client, cfg.SnapshotKey, c), func(context.Context) error { return client.Close() }, nil
	case BackendBolt:
		store, err := NewBoltStore(cfg.SnapshotPath, cfg.SnapshotKey, c)
		if err != nil {
			return nil, nil, err
		}
		return store, func(context.Context) error { return store.Close() }, nil
	case BackendMongo:
		store, err := ConnectMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.SnapshotKey)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
	}
}
