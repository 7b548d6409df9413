package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/listenupapp/shelfwrapped/internal/domain"
	"github.com/listenupapp/shelfwrapped/internal/store"
)

const (
	defaultEnrichWorkers = 6
	defaultEnrichStagger = 100 * time.Millisecond
)

// GenreFetcher loads the cleaned genre tags of one book.
type GenreFetcher interface {
	FetchGenres(ctx context.Context, bookID string) ([]string, error)
}

// GenreCache remembers genre lists between requests.
type GenreCache interface {
	GetCachedGenres(ctx context.Context, bookID string) (*store.CachedGenres, error)
	SetCachedGenres(ctx context.Context, bookID string, genres []string) error
}

// ReviewScorer scores review text.
type ReviewScorer interface {
	Score(text string) domain.SentimentResult
}

// EnricherConfig configures an Enricher. Zero values fall back to defaults
// and a negative Stagger turns staggering off.
type EnricherConfig struct {
	Workers int
	Stagger time.Duration
}

// Enricher attaches genres and sentiment to books. Genre lookups run on a
// fixed number of workers, and the i-th lookup of a batch starts no earlier
// than i*Stagger after the batch began.
type Enricher struct {
	genres  GenreFetcher
	cache   GenreCache
	scorer  ReviewScorer
	workers int
	stagger time.Duration
	logger  *slog.Logger
}

// NewEnricher creates an enricher. cache may be nil.
func NewEnricher(genres GenreFetcher, cache GenreCache, scorer ReviewScorer, cfg EnricherConfig, logger *slog.Logger) *Enricher {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultEnrichWorkers
	}
	if cfg.Stagger == 0 {
		cfg.Stagger = defaultEnrichStagger
	}
	return &Enricher{
		genres:  genres,
		cache:   cache,
		scorer:  scorer,
		workers: cfg.Workers,
		stagger: cfg.Stagger,
		logger:  logger,
	}
}

type enrichJob struct {
	index int // position in the input
	slot  int // position among books that need a genre lookup
}

// Enrich returns enriched copies of books in the same order. Lookup and
// scoring failures degrade to empty genres and neutral sentiment. Each job
// writes only its own result slot.
func (e *Enricher) Enrich(ctx context.Context, books []domain.Book) []domain.Book {
	out := make([]domain.Book, len(books))
	if len(books) == 0 {
		return out
	}

	start := time.Now()
	jobs := make(chan enrichJob, len(books))
	slot := 0
	for i, b := range books {
		job := enrichJob{index: i, slot: -1}
		if b.HasSourceID() {
			job.slot = slot
			slot++
		}
		jobs <- job
	}
	close(jobs)

	workers := min(e.workers, len(books))
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				out[job.index] = e.enrichOne(ctx, books[job.index], start, job.slot)
			}
		}()
	}
	wg.Wait()

	e.logger.Debug("enrichment finished",
		"books", len(books),
		"lookups", slot,
		"elapsed", time.Since(start).String(),
	)
	return out
}

func (e *Enricher) enrichOne(ctx context.Context, b domain.Book, batchStart time.Time, slot int) domain.Book {
	genres := []string{}
	if slot >= 0 {
		genres = e.lookupGenres(ctx, b.SourceID, batchStart.Add(time.Duration(slot)*e.stagger))
	}
	b = b.WithGenres(genres)

	if e.scorer != nil {
		b = b.WithSentiment(e.scorer.Score(b.ReviewText))
	} else {
		b = b.WithSentiment(domain.NeutralSentiment(b.ReviewText))
	}
	return b
}

func (e *Enricher) lookupGenres(ctx context.Context, bookID string, notBefore time.Time) []string {
	if e.cache != nil {
		cached, err := e.cache.GetCachedGenres(ctx, bookID)
		if err != nil {
			e.logger.Debug("genre cache read failed", "book_id", bookID, "error", err)
		} else if cached != nil {
			return cached.Genres
		}
	}

	if err := sleepUntil(ctx, notBefore); err != nil {
		return []string{}
	}

	genres, err := e.genres.FetchGenres(ctx, bookID)
	if err != nil {
		e.logger.Debug("genre lookup failed", "book_id", bookID, "error", err)
		return []string{}
	}
	if genres == nil {
		genres = []string{}
	}

	if e.cache != nil {
		if err := e.cache.SetCachedGenres(ctx, bookID, genres); err != nil {
			e.logger.Debug("genre cache write failed", "book_id", bookID, "error", err)
		}
	}
	return genres
}

// sleepUntil waits for t or until ctx is done.
func sleepUntil(ctx context.Context, t time.Time) error {
	d := time.Until(t)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
