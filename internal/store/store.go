// Package store holds the transient caches of the recap service.
// Nothing here is written to disk.
package store

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const defaultGenreTTL = 24 * time.Hour

// Store wraps an in-memory Badger database used for per-book caches.
type Store struct {
	db       *badger.DB
	logger   *slog.Logger
	genreTTL time.Duration
}

// New opens an in-memory store. Entries expire after genreTTL.
func New(logger *slog.Logger, genreTTL time.Duration) (*Store, error) {
	if genreTTL <= 0 {
		genreTTL = defaultGenreTTL
	}

	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil // Disable Badger's internal logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("In-memory cache opened", "genre_ttl", genreTTL.String())
	}

	return &Store{
		db:       db,
		logger:   logger,
		genreTTL: genreTTL,
	}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing in-memory cache")
	}
	return s.db.Close()
}
