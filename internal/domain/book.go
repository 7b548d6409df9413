// Package domain contains the core entities of the reading recap pipeline.
package domain

import "slices"

// Book is one shelf entry normalized from the upstream feed.
//
// Optional numeric fields are pointers: nil means "absent", which is different
// from zero (a 0-star rating is valid data). A Book is treated as immutable once
// built; WithGenres and WithSentiment return modified copies.
type Book struct {
	Title          string          `json:"title"`
	Author         string          `json:"author"`
	UserRating     *int            `json:"user_rating"`
	AvgRating      *float64        `json:"avg_rating"`
	DateRead       string          `json:"date_read,omitempty"`
	DateAdded      string          `json:"date_added,omitempty"`
	NumPages       *int            `json:"num_pages"`
	CoverImageURL  string          `json:"cover_image_url,omitempty"`
	AuthorImageURL string          `json:"author_image_url,omitempty"`
	ReviewText     string          `json:"review_text,omitempty"`
	SourceID       string          `json:"source_id,omitempty"`
	Genres         []string        `json:"genres"`
	Sentiment      SentimentResult `json:"sentiment"`
}

// HasSourceID reports whether the book can be enriched from its detail page.
func (b Book) HasSourceID() bool {
	return b.SourceID != ""
}

// HasReview reports whether the book carries any review text.
func (b Book) HasReview() bool {
	return b.ReviewText != ""
}

// WithGenres returns a copy of b carrying its own copy of genres.
func (b Book) WithGenres(genres []string) Book {
	if genres == nil {
		b.Genres = []string{}
		return b
	}
	b.Genres = slices.Clone(genres)
	return b
}

// WithSentiment returns a copy of b with the sentiment record attached.
func (b Book) WithSentiment(s SentimentResult) Book {
	b.Sentiment = s.normalized()
	return b
}

// RatingDisparity returns avgRating - userRating, and false if either is absent.
func (b Book) RatingDisparity() (float64, bool) {
	if b.UserRating == nil || b.AvgRating == nil {
		return 0, false
	}
	return *b.AvgRating - float64(*b.UserRating), true
}

// IntPtr and FloatPtr build optional fields in literals and tests.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }
