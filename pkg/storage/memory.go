// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps a deep copy of the last snapshot in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	snapshot *Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, snapshot *Snapshot) error {
	copied, err := snapshot.Clone()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = copied
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.snapshot == nil {
		return nil, ErrSnapshotNotFound
	}
	return m.snapshot.Clone()
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = nil
	return nil
}
