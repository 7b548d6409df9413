// Package normalize turns raw shelf feed entries into canonical books.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/listenupapp/shelfwrapped/internal/domain"
	"github.com/listenupapp/shelfwrapped/internal/goodreads"
)

var (
	sourceIDPattern = regexp.MustCompile(`/book/show/(\d+)`)
	digitsPattern   = regexp.MustCompile(`^\d+$`)
)

// Book maps one feed item to a Book. Unparsable numbers become absent rather
// than zero, and the review is reduced to plain text. Genres start empty and
// sentiment starts neutral; enrichment replaces both.
func Book(item goodreads.FeedItem) domain.Book {
	review := StripHTML(item.UserReview)

	b := domain.Book{
		Title:          strings.TrimSpace(item.Title),
		Author:         strings.TrimSpace(item.AuthorName),
		UserRating:     parseRating(item.UserRating),
		AvgRating:      parseFloat(item.AverageRating),
		DateRead:       strings.TrimSpace(item.UserReadAt),
		DateAdded:      strings.TrimSpace(item.UserDateAdded),
		NumPages:       parsePositiveInt(item.NumPages),
		CoverImageURL:  strings.TrimSpace(item.BookImageURL),
		AuthorImageURL: strings.TrimSpace(item.AuthorImageURL),
		ReviewText:     review,
		SourceID:       SourceID(item),
	}
	return b.WithGenres(nil).WithSentiment(domain.NeutralSentiment(review))
}

// Books maps a page of items, keeping feed order.
func Books(items []goodreads.FeedItem) []domain.Book {
	books := make([]domain.Book, 0, len(items))
	for _, it := range items {
		books = append(books, Book(it))
	}
	return books
}

// SourceID returns the upstream book id. Shelf feeds carry it in book_id; their
// link and guid point at the review, so a /book/show/ permalink is only a
// fallback for items built from other sources. Empty means the book cannot be
// enriched.
func SourceID(item goodreads.FeedItem) string {
	if id := strings.TrimSpace(item.BookID); digitsPattern.MatchString(id) {
		return id
	}
	for _, s := range []string{item.Link, item.GUID} {
		if m := sourceIDPattern.FindStringSubmatch(s); m != nil {
			return m[1]
		}
	}
	return ""
}

// parseRating accepts integers 0-5; 0 is a rating, not a missing value.
func parseRating(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 || v > 5 {
		return nil
	}
	return &v
}

func parseFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parsePositiveInt(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}
