package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const genrePrefix = "genres:book:"

// CachedGenres wraps a book's cleaned genre list with cache info.
type CachedGenres struct {
	Genres    []string  `json:"genres"`
	FetchedAt time.Time `json:"fetched_at"`
}

func genreKey(bookID string) []byte {
	return []byte(genrePrefix + bookID)
}

// GetCachedGenres retrieves a book's cached genres.
// Returns nil, nil if not found or expired.
func (s *Store) GetCachedGenres(ctx context.Context, bookID string) (*CachedGenres, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var cached CachedGenres
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(genreKey(bookID))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cached)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached genres: %w", err)
	}

	if cached.Genres == nil {
		cached.Genres = []string{}
	}
	return &cached, nil
}

// SetCachedGenres stores a book's genres. The entry expires on its own.
func (s *Store) SetCachedGenres(ctx context.Context, bookID string, genres []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(CachedGenres{
		Genres:    genres,
		FetchedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshal cached genres: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(genreKey(bookID), data).WithTTL(s.genreTTL))
	})
}

// CountCachedGenres returns the number of live genre entries.
func (s *Store) CountCachedGenres() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(genrePrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count cached genres: %w", err)
	}
	return count, nil
}
