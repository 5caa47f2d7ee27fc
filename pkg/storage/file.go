// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/AccelByte/extend-battle-tournament/pkg/storage/codec"
)

// FileStore writes the snapshot to a single file. Writes go through a temporary file
// and a rename so a crash never leaves a half-written snapshot behind.
type FileStore struct {
	path  string
	codec codec.Codec
}

func NewFileStore(path string, c codec.Codec) *FileStore {
	if c == nil {
		c = codec.JSON
	}
	return &FileStore{path: path, codec: c}
}

func (f *FileStore) Save(ctx context.Context, snapshot *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	bz, err := f.codec.Marshal(snapshot)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "create snapshot dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return eris.Wrap(err, "create temporary snapshot")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(bz); err != nil {
		tmp.Close()
		return eris.Wrap(err, "write snapshot")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "close snapshot")
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return eris.Wrapf(err, "replace snapshot %s", f.path)
	}
	return nil
}

func (f *FileStore) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bz, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "read snapshot %s", f.path)
	}

	snapshot := &Snapshot{}
	if err := f.codec.Unmarshal(bz, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (f *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return eris.Wrapf(err, "remove snapshot %s", f.path)
	}
	return nil
}
