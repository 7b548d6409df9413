package service

import (
	"slices"
	"time"
	"unicode/utf8"

	"github.com/listenupapp/shelfwrapped/internal/domain"
	"github.com/listenupapp/shelfwrapped/internal/normalize"
)

const (
	topRatedLimit = 5
	topGenreLimit = 10

	// Reviews must be longer than this to compete for the sentiment extremes.
	minExtremeReviewLen = 20
)

// AggregateInput is everything the aggregator folds into a bundle.
type AggregateInput struct {
	ProfileID string
	Year      int

	// ReadShelf is every book on the read shelf, in feed order.
	ReadShelf []domain.Book
	// YearBooks are the enriched books read in Year, in feed order.
	YearBooks []domain.Book
	// ToRead is every book on the to-read shelf.
	ToRead []domain.Book

	SourceURL   string
	GeneratedAt time.Time
}

// ReadInYear returns the books whose read date falls in year, keeping order.
func ReadInYear(books []domain.Book, year int) []domain.Book {
	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if normalize.InYear(b.DateRead, year) {
			out = append(out, b)
		}
	}
	return out
}

// Aggregate builds the recap. It is a pure function of its input.
func Aggregate(in AggregateInput) *domain.StatsBundle {
	books := in.YearBooks

	bundle := &domain.StatsBundle{
		ProfileID:   in.ProfileID,
		Year:        in.Year,
		TotalBooks:  len(in.ReadShelf),
		YearBooks:   len(books),
		Books:       cloneBooks(books),
		SourceURL:   in.SourceURL,
		GeneratedAt: in.GeneratedAt,
	}

	bundle.AverageRating, bundle.TopRatedBooks = ratingStats(books)
	bundle.AveragePages, bundle.LongestBook, bundle.ShortestBook = pageStats(books)
	bundle.GenreCounts, bundle.TopGenres = genreStats(books)
	bundle.MonthlyGenres, bundle.MonthlyTotals = monthlyStats(books)
	readingTimeStats(bundle, books)
	bundle.DependabilityRatio, bundle.ReadAndAddedCount, bundle.ToReadAddedCount = dependability(in.ReadShelf, in.ToRead, in.Year)
	disparityStats(bundle, books)
	sentimentStats(bundle, books)

	return bundle
}

func cloneBooks(books []domain.Book) []domain.Book {
	if books == nil {
		return []domain.Book{}
	}
	return slices.Clone(books)
}

func bookRef(b domain.Book) *domain.Book {
	return &b
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ratingStats returns the mean user rating and the top rated books. The sort
// is stable so equally rated books keep feed order.
func ratingStats(books []domain.Book) (float64, []domain.Book) {
	var sum float64
	rated := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if b.UserRating == nil {
			continue
		}
		sum += float64(*b.UserRating)
		rated = append(rated, b)
	}
	avg := mean(sum, len(rated))

	slices.SortStableFunc(rated, func(a, b domain.Book) int {
		return *b.UserRating - *a.UserRating
	})
	if len(rated) > topRatedLimit {
		rated = rated[:topRatedLimit]
	}
	return avg, slices.Clip(rated)
}

func pageStats(books []domain.Book) (avg float64, longest, shortest *domain.Book) {
	var sum float64
	n := 0
	for _, b := range books {
		if b.NumPages == nil {
			continue
		}
		sum += float64(*b.NumPages)
		n++
		if longest == nil || *b.NumPages > *longest.NumPages {
			longest = bookRef(b)
		}
		if shortest == nil || *b.NumPages < *shortest.NumPages {
			shortest = bookRef(b)
		}
	}
	return mean(sum, n), longest, shortest
}

// genreStats tallies genres and keeps the top ranks.
func genreStats(books []domain.Book) (map[string]int, []domain.GenreRank) {
	counts, ranks := rankGenres(books)
	if len(ranks) > topGenreLimit {
		ranks = ranks[:topGenreLimit]
	}
	return counts, ranks
}

// rankGenres tallies every genre occurrence. Percentages are shares of all
// occurrences, so a book with three genres adds three to the denominator.
// Equal counts keep first-seen order.
func rankGenres(books []domain.Book) (map[string]int, []domain.GenreRank) {
	counts := make(map[string]int)
	var order []string
	total := 0
	for _, b := range books {
		for _, g := range b.Genres {
			if _, seen := counts[g]; !seen {
				order = append(order, g)
			}
			counts[g]++
			total++
		}
	}

	ranks := make([]domain.GenreRank, 0, len(order))
	for _, g := range order {
		ranks = append(ranks, domain.GenreRank{
			Genre:      g,
			Count:      counts[g],
			Percentage: float64(counts[g]) / float64(total) * 100,
		})
	}
	slices.SortStableFunc(ranks, func(a, b domain.GenreRank) int {
		return b.Count - a.Count
	})
	return counts, ranks
}

// monthlyStats buckets books by the month named in their read date. Months
// with no books are absent rather than zero.
func monthlyStats(books []domain.Book) (map[string]map[string]int, map[string]int) {
	genres := make(map[string]map[string]int)
	totals := make(map[string]int)
	for _, b := range books {
		month, ok := normalize.MonthOf(b.DateRead)
		if !ok {
			continue
		}
		totals[month]++
		bucket, ok := genres[month]
		if !ok {
			bucket = make(map[string]int)
			genres[month] = bucket
		}
		for _, g := range b.Genres {
			bucket[g]++
		}
	}
	return genres, totals
}

// readingTimeStats measures days from shelving to finishing.
func readingTimeStats(bundle *domain.StatsBundle, books []domain.Book) {
	var sum float64
	n := 0
	for _, b := range books {
		days, ok := normalize.DaysBetween(b.DateAdded, b.DateRead)
		if !ok {
			continue
		}
		sum += float64(days)
		n++
		if bundle.FastestRead == nil || days < bundle.FastestReadDays {
			bundle.FastestRead, bundle.FastestReadDays = bookRef(b), days
		}
		if bundle.SlowestRead == nil || days > bundle.SlowestReadDays {
			bundle.SlowestRead, bundle.SlowestReadDays = bookRef(b), days
		}
	}
	bundle.AverageReadingDays = mean(sum, n)
}

// dependability is the share of books shelved this year that were also read
// this year: R / (R + U), where R counts read-shelf books read and added in
// year and U counts to-read books added in year that were never read.
func dependability(readShelf, toRead []domain.Book, year int) (ratio float64, readAndAdded, toReadAdded int) {
	onReadShelf := make(map[string]struct{}, len(readShelf))
	for _, b := range readShelf {
		onReadShelf[identity(b)] = struct{}{}
		if normalize.InYear(b.DateRead, year) && normalize.InYear(b.DateAdded, year) {
			readAndAdded++
		}
	}

	for _, b := range toRead {
		if !normalize.InYear(b.DateAdded, year) {
			continue
		}
		if _, read := normalize.ExtractYear(b.DateRead); read {
			continue
		}
		if _, dup := onReadShelf[identity(b)]; dup {
			continue
		}
		toReadAdded++
	}

	if denom := readAndAdded + toReadAdded; denom > 0 {
		ratio = float64(readAndAdded) / float64(denom)
	}
	return ratio, readAndAdded, toReadAdded
}

// identity matches the same book across shelves.
func identity(b domain.Book) string {
	if b.SourceID != "" {
		return "id:" + b.SourceID
	}
	return "ta:" + b.Title + "\x00" + b.Author
}

// disparityStats finds the books rated furthest below (hater) and above (fan)
// the community average. Only strictly positive gaps count; the first book at
// the maximum wins.
func disparityStats(bundle *domain.StatsBundle, books []domain.Book) {
	for _, b := range books {
		gap, ok := b.RatingDisparity()
		if !ok {
			continue
		}
		if gap > bundle.HaterDisparity {
			bundle.HaterMoment, bundle.HaterDisparity = bookRef(b), gap
		}
		if -gap > bundle.FanDisparity {
			bundle.FanMoment, bundle.FanDisparity = bookRef(b), -gap
		}
	}
}

// sentimentStats picks the lowest and highest comparative scores among
// reviews long enough to mean something. Ties keep the first review.
func sentimentStats(bundle *domain.StatsBundle, books []domain.Book) {
	for _, b := range books {
		if !b.HasReview() || utf8.RuneCountInString(b.ReviewText) <= minExtremeReviewLen {
			continue
		}
		bundle.ReviewCount++
		c := b.Sentiment.Comparative
		if bundle.MostScathingReview == nil || c < bundle.MostScathingReview.Sentiment.Comparative {
			bundle.MostScathingReview = bookRef(b)
		}
		if bundle.MostPositiveReview == nil || c > bundle.MostPositiveReview.Sentiment.Comparative {
			bundle.MostPositiveReview = bookRef(b)
		}
	}
}
