// Package snapshots persists the whole in-memory application state as opaque
// key-value blobs, mirroring the per-browser storage of the site it backs.
package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"roomfinder/internal/domain/messaging"
	domainuser "roomfinder/internal/domain/user"
)

// ErrNotFound is returned by stores when a key has never been written.
var ErrNotFound = errors.New("snapshots: not found")

const (
	KeyMessaging = "rf_messaging"
	KeyUsers     = "rf_users"
)

// Store is the key-value persistence contract. Blobs are opaque to the store.
type Store interface {
	Save(ctx context.Context, key string, blob []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}

// Manager serializes and restores the conversation store and the user
// directory against a Store.
type Manager struct {
	Store     Store
	Messaging *messaging.Store
	Users     domainuser.Repository
	Logger    *slog.Logger
}

// Save writes the full state under the well-known keys.
func (m *Manager) Save(ctx context.Context) error {
	if m.Store == nil {
		return errors.New("snapshots: store required")
	}
	if m.Messaging != nil {
		blob, err := json.Marshal(m.Messaging.Snapshot())
		if err != nil {
			return fmt.Errorf("snapshots: encode messaging: %w", err)
		}
		if err := m.Store.Save(ctx, KeyMessaging, blob); err != nil {
			return fmt.Errorf("snapshots: save messaging: %w", err)
		}
	}
	if m.Users != nil {
		users, err := m.Users.List(ctx)
		if err != nil {
			return fmt.Errorf("snapshots: list users: %w", err)
		}
		blob, err := json.Marshal(users)
		if err != nil {
			return fmt.Errorf("snapshots: encode users: %w", err)
		}
		if err := m.Store.Save(ctx, KeyUsers, blob); err != nil {
			return fmt.Errorf("snapshots: save users: %w", err)
		}
	}
	return nil
}

// Restore replaces in-memory state with the stored snapshots. Missing keys are
// not an error: first boots keep their fixture-seeded state.
func (m *Manager) Restore(ctx context.Context) error {
	if m.Store == nil {
		return errors.New("snapshots: store required")
	}
	if m.Messaging != nil {
		blob, err := m.Store.Load(ctx, KeyMessaging)
		switch {
		case errors.Is(err, ErrNotFound):
		case err != nil:
			return fmt.Errorf("snapshots: load messaging: %w", err)
		default:
			var snapshot messaging.Snapshot
			if err := json.Unmarshal(blob, &snapshot); err != nil {
				return fmt.Errorf("snapshots: decode messaging: %w", err)
			}
			if err := m.Messaging.Restore(snapshot); err != nil {
				return fmt.Errorf("snapshots: restore messaging: %w", err)
			}
		}
	}
	if m.Users != nil {
		blob, err := m.Store.Load(ctx, KeyUsers)
		switch {
		case errors.Is(err, ErrNotFound):
		case err != nil:
			return fmt.Errorf("snapshots: load users: %w", err)
		default:
			var users []*domainuser.User
			if err := json.Unmarshal(blob, &users); err != nil {
				return fmt.Errorf("snapshots: decode users: %w", err)
			}
			if err := m.Users.ReplaceAll(ctx, users); err != nil {
				return fmt.Errorf("snapshots: restore users: %w", err)
			}
		}
	}
	return nil
}

// RunPeriodic saves on the given interval until the context is cancelled, then
// performs a final flush.
func (m *Manager) RunPeriodic(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := m.Save(flushCtx); err != nil && m.Logger != nil {
				m.Logger.Error("final snapshot flush failed", "error", err)
			}
			cancel()
			return
		case <-ticker.C:
			if err := m.Save(ctx); err != nil && m.Logger != nil {
				m.Logger.Warn("periodic snapshot failed", "error", err)
			}
		}
	}
}
