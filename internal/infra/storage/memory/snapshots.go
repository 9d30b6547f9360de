package memory

import (
	"context"
	"sync"

	"roomfinder/internal/app/snapshots"
)

// SnapshotStore keeps snapshot blobs in memory. State does not survive a
// restart; it exists for tests and for running without a database.
type SnapshotStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{blobs: make(map[string][]byte)}
}

func (s *SnapshotStore) Save(ctx context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), blob...)
	return nil
}

func (s *SnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, snapshots.ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

var _ snapshots.Store = (*SnapshotStore)(nil)
