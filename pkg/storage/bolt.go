// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package storage

import (
	"context"
	"errors"

	"github.com/asdine/storm"
	"github.com/rotisserie/eris"

	"github.com/AccelByte/extend-battle-tournament/pkg/storage/codec"
)

const boltBucket = "snapshots"

// BoltStore keeps the snapshot in a bolt file through storm's key/value API.
type BoltStore struct {
	db  *storm.DB
	key string
}

// NewBoltStore opens (or creates) the bolt file at path. The codec doubles as storm's codec.
func NewBoltStore(path, key string, c codec.Codec) (*BoltStore, error) {
	if c == nil {
		c = codec.JSON
	}
	db, err := storm.Open(path, storm.Codec(c))
	if err != nil {
		return nil, eris.Wrapf(err, "open bolt store %s", path)
	}
	return &BoltStore{db: db, key: key}, nil
}

func (b *BoltStore) Save(ctx context.Context, snapshot *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.db.Set(boltBucket, b.key, snapshot); err != nil {
		return eris.Wrapf(err, "bolt set %s", b.key)
	}
	return nil
}

func (b *BoltStore) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshot := &Snapshot{}
	err := b.db.Get(boltBucket, b.key, snapshot)
	if errors.Is(err, storm.ErrNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "bolt get %s", b.key)
	}
	return snapshot, nil
}

func (b *BoltStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := b.db.Delete(boltBucket, b.key)
	if err != nil && !errors.Is(err, storm.ErrNotFound) {
		return eris.Wrapf(err, "bolt delete %s", b.key)
	}
	return nil
}

func (b *BoltStore) Close() error {
	return b.db.Close()
}
