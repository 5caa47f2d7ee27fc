// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"github.com/AccelByte/extend-battle-tournament/pkg/storage/codec"
)

// RedisStore keeps the encoded snapshot in a single redis string key.
type RedisStore struct {
	client redis.Cmdable
	key    string
	codec  codec.Codec
}

func NewRedisStore(client redis.Cmdable, key string, c codec.Codec) *RedisStore {
	if c == nil {
		c = codec.JSON
	}
	return &RedisStore{client: client, key: key, codec: c}
}

func (r *RedisStore) Save(ctx context.Context, snapshot *Snapshot) error {
	bz, err := r.codec.Marshal(snapshot)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, bz, 0).Err(); err != nil {
		return eris.Wrapf(err, "redis set %s", r.key)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context) (*Snapshot, error) {
	bz, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "redis get %s", r.key)
	}

	snapshot := &Snapshot{}
	if err := r.codec.Unmarshal(bz, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return eris.Wrapf(err, "redis del %s", r.key)
	}
	return nil
}
