package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/listenupapp/shelfwrapped/internal/domain"
	domainerrors "github.com/listenupapp/shelfwrapped/internal/errors"
	"github.com/listenupapp/shelfwrapped/internal/goodreads"
	"github.com/listenupapp/shelfwrapped/internal/normalize"
	"github.com/listenupapp/shelfwrapped/internal/store"
	"github.com/listenupapp/shelfwrapped/internal/validation"
)

// Supported recap years.
const (
	MinYear = 2000
	MaxYear = 2099
)

// WrappedOptions tweaks a single recap request.
type WrappedOptions struct {
	// Refresh drops any cached recap and rebuilds it.
	Refresh bool
}

// WrappedService builds yearly reading recaps.
type WrappedService struct {
	client   *goodreads.Client
	enricher *Enricher
	cache    *store.RecapCache
	logger   *slog.Logger
	now      func() time.Time
}

// NewWrappedService creates a new wrapped service. cache may be nil.
func NewWrappedService(client *goodreads.Client, enricher *Enricher, cache *store.RecapCache, logger *slog.Logger) *WrappedService {
	return &WrappedService{
		client:   client,
		enricher: enricher,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

// Wrapped returns the recap of profileID's reading in year.
//
// Only a read shelf that cannot be fetched at all is an error. A shelf that
// fails part way is used as far as it got, and the to-read shelf is optional.
// A profile that read nothing in year gets an empty recap.
func (s *WrappedService) Wrapped(ctx context.Context, profileID string, year int, opts WrappedOptions) (*domain.StatsBundle, error) {
	if !validation.ValidProfileID(profileID) {
		return nil, domainerrors.Validationf("invalid profile id %q", profileID)
	}
	if year < MinYear || year > MaxYear {
		return nil, domainerrors.Validationf("year must be between %d and %d", MinYear, MaxYear)
	}

	if s.cache != nil {
		if opts.Refresh {
			s.cache.Remove(profileID, year)
		} else if bundle, ok := s.cache.Get(profileID, year); ok {
			s.logger.Debug("recap served from cache", "profile_id", profileID, "year", year)
			return bundle, nil
		}
	}

	log := s.logger.With("profile_id", profileID, "year", year)
	start := s.now()

	readPager := s.client.Shelf(profileID, goodreads.ShelfRead, s.pageLogger(log))
	readItems, readErr := goodreads.DrainShelf(ctx, readPager)
	if readErr != nil {
		if readPager.Pages() == 0 {
			return nil, classifyShelfError(ctx, profileID, readErr)
		}
		log.Warn("read shelf incomplete, continuing with partial data",
			"pages", readPager.Pages(),
			"items", len(readItems),
			"error", readErr,
		)
	}

	readShelf := normalize.Books(readItems)
	yearBooks := ReadInYear(readShelf, year)
	enriched := s.enricher.Enrich(ctx, yearBooks)

	toReadPager := s.client.Shelf(profileID, goodreads.ShelfToRead, s.pageLogger(log))
	toReadItems, toReadErr := goodreads.DrainShelf(ctx, toReadPager)
	if toReadErr != nil {
		log.Warn("to-read shelf incomplete",
			"pages", toReadPager.Pages(),
			"items", len(toReadItems),
			"error", toReadErr,
		)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bundle := Aggregate(AggregateInput{
		ProfileID:   profileID,
		Year:        year,
		ReadShelf:   readShelf,
		YearBooks:   enriched,
		ToRead:      normalize.Books(toReadItems),
		SourceURL:   s.client.ShelfURL(profileID, goodreads.ShelfRead),
		GeneratedAt: s.now().UTC(),
	})

	log.Info("recap built",
		"total_books", bundle.TotalBooks,
		"year_books", bundle.YearBooks,
		"to_read_added", bundle.ToReadAddedCount,
		"elapsed", s.now().Sub(start).String(),
	)

	// Partial recaps are returned but not remembered, so a retry can do better.
	if s.cache != nil && readErr == nil && toReadErr == nil {
		s.cache.Add(bundle)
	}
	return bundle, nil
}

// pageLogger reports shelf pagination progress at debug level.
func (s *WrappedService) pageLogger(log *slog.Logger) goodreads.PageObserver {
	return func(ev goodreads.PageEvent) {
		if ev.Err != nil {
			log.Debug("shelf page failed", "shelf", ev.Shelf, "page", ev.Page, "error", ev.Err)
			return
		}
		log.Debug("shelf page fetched",
			"shelf", ev.Shelf,
			"page", ev.Page,
			"items", ev.Items,
			"last", ev.Last,
			"duration", ev.Duration.String(),
		)
	}
}

func classifyShelfError(ctx context.Context, profileID string, err error) error {
	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, goodreads.ErrNotFound):
		return domainerrors.NotFoundf("reading profile %s not found", profileID).WithCause(err)
	default:
		return domainerrors.Upstream("reading profile unavailable").WithCause(err)
	}
}
