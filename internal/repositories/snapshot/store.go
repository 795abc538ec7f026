package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Store owns the authoritative in-memory state and its on-disk snapshot. All
// reads and writes from every repository go through it, behind one lock.
//
// Mutations follow a clone-mutate-persist-swap protocol: the mutation runs
// against a clone of the live state, the clone is written to disk, and only
// then does the clone become the live state. The file write is the commit
// point; if it fails the live state is untouched and the caller sees the
// error, so memory never runs ahead of disk.
type Store struct {
	path   string
	seed   bool
	logger *slog.Logger

	mu    sync.RWMutex
	state *State
}

// New creates a Store persisting to the given snapshot path. When seedDemoData
// is set and no snapshot file exists yet, Load installs illustrative example data.
func New(path string, seedDemoData bool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		seed:   seedDemoData,
		logger: logger,
		state:  newEmptyState(),
	}
}

// Load restores all collections from the snapshot file if present. A missing
// file is not an error: the store starts from seed data or empty.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read snapshot %s: %w", s.path, err)
		}
		if !s.seed {
			s.logger.Info("No snapshot found, starting empty", slog.String("path", s.path))
			s.state = newEmptyState()
			return nil
		}
		seeded, err := seedState(time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to build seed data: %w", err)
		}
		if err := s.persist(seeded); err != nil {
			return err
		}
		s.state = seeded
		s.logger.Info("No snapshot found, seeded example data", slog.String("path", s.path))
		return nil
	}

	st := newEmptyState()
	if err := json.Unmarshal(raw, st); err != nil {
		return fmt.Errorf("failed to parse snapshot %s: %w", s.path, err)
	}
	st.normalize()
	s.state = st
	s.logger.Info("Snapshot loaded",
		slog.String("path", s.path),
		slog.Int("accounts", len(st.Accounts)),
		slog.Int("keys", len(st.PaymentKeys)),
		slog.Int("transactions", len(st.Transactions)),
		slog.Int("requests", len(st.PaymentRequests)),
	)
	return nil
}

// View runs fn against the live state under the read lock. fn must not retain
// or mutate the state.
func (s *Store) View(ctx context.Context, fn func(st *State) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// Update runs fn against a clone of the state as one critical section and
// commits the clone by persisting it and swapping it in. Any error, from fn or
// from the snapshot write, leaves the live state unchanged.
func (s *Store) Update(ctx context.Context, fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.persist(next); err != nil {
		return err
	}
	s.state = next
	return nil
}

// persist serializes the given state and atomically replaces the snapshot file
// via a temp file and rename, so a crash mid-write never corrupts the snapshot.
func (s *Store) persist(st *State) error {
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot %s: %w", s.path, err)
	}
	return nil
}
