package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/shelfwrapped/internal/domain"
	"github.com/listenupapp/shelfwrapped/internal/goodreads"
)

func TestBook_FullItem(t *testing.T) {
	item := goodreads.FeedItem{
		Title:         "  Dune ",
		AuthorName:    "Frank Herbert",
		UserRating:    "5",
		AverageRating: "4.27",
		UserReadAt:    "Mon, 15 Jan 2024 00:00:00 -0800",
		UserDateAdded: "Tue, 02 Jan 2024 10:00:00 -0800",
		NumPages:      "658",
		BookImageURL:  "https://images.example.com/dune.jpg",
		UserReview:    "Spice <b>must</b> flow.",
		Link:          "https://www.goodreads.com/book/show/44767458-dune?utm_source=rss",
	}

	b := Book(item)

	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, "Frank Herbert", b.Author)
	require.NotNil(t, b.UserRating)
	assert.Equal(t, 5, *b.UserRating)
	require.NotNil(t, b.AvgRating)
	assert.InDelta(t, 4.27, *b.AvgRating, 1e-9)
	require.NotNil(t, b.NumPages)
	assert.Equal(t, 658, *b.NumPages)
	assert.Equal(t, "Spice must flow.", b.ReviewText)
	assert.Equal(t, "44767458", b.SourceID)
	assert.Equal(t, "https://images.example.com/dune.jpg", b.CoverImageURL)
	assert.NotNil(t, b.Genres)
	assert.Empty(t, b.Genres)
	assert.Equal(t, domain.NeutralSentiment("Spice must flow."), b.Sentiment)
}

func TestBook_DefensiveNumbers(t *testing.T) {
	tests := []struct {
		name       string
		item       goodreads.FeedItem
		wantRating *int
		wantAvg    *float64
		wantPages  *int
	}{
		{
			name:       "zero rating is kept",
			item:       goodreads.FeedItem{UserRating: "0", AverageRating: "0.00", NumPages: "120"},
			wantRating: domain.IntPtr(0),
			wantAvg:    domain.FloatPtr(0),
			wantPages:  domain.IntPtr(120),
		},
		{
			name: "garbage becomes absent",
			item: goodreads.FeedItem{UserRating: "five", AverageRating: "n/a", NumPages: "lots"},
		},
		{
			name: "empty becomes absent",
			item: goodreads.FeedItem{},
		},
		{
			name: "out of range rating",
			item: goodreads.FeedItem{UserRating: "7", AverageRating: "NaN", NumPages: "0"},
		},
		{
			name:       "surrounding whitespace",
			item:       goodreads.FeedItem{UserRating: " 3 ", AverageRating: " 3.5\n", NumPages: " 42 "},
			wantRating: domain.IntPtr(3),
			wantAvg:    domain.FloatPtr(3.5),
			wantPages:  domain.IntPtr(42),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Book(tt.item)
			assert.Equal(t, tt.wantRating, b.UserRating)
			assert.Equal(t, tt.wantAvg, b.AvgRating)
			assert.Equal(t, tt.wantPages, b.NumPages)
		})
	}
}

func TestSourceID(t *testing.T) {
	tests := []struct {
		name string
		item goodreads.FeedItem
		want string
	}{
		{name: "from link", item: goodreads.FeedItem{Link: "https://www.goodreads.com/book/show/5907.The_Hobbit"}, want: "5907"},
		{name: "from guid", item: goodreads.FeedItem{Link: "https://example.com/x", GUID: "https://www.goodreads.com/book/show/11"}, want: "11"},
		{name: "from book id", item: goodreads.FeedItem{Link: "https://www.goodreads.com/review/show/123", BookID: "77"}, want: "77"},
		{name: "book id wins over link", item: goodreads.FeedItem{Link: "https://www.goodreads.com/book/show/5907", BookID: "77"}, want: "77"},
		{name: "review permalink only", item: goodreads.FeedItem{Link: "https://www.goodreads.com/review/show/123", GUID: "https://www.goodreads.com/review/show/123"}, want: ""},
		{name: "non-numeric book id", item: goodreads.FeedItem{BookID: "abc"}, want: ""},
		{name: "non-numeric book id falls back to link", item: goodreads.FeedItem{BookID: "abc", Link: "https://www.goodreads.com/book/show/9"}, want: "9"},
		{name: "nothing", item: goodreads.FeedItem{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SourceID(tt.item))
		})
	}
}

func TestBook_NoSourceIDStillABook(t *testing.T) {
	b := Book(goodreads.FeedItem{Title: "Zine", UserRating: "4"})

	assert.False(t, b.HasSourceID())
	assert.Equal(t, "Zine", b.Title)
	require.NotNil(t, b.UserRating)
}

func TestBooks_KeepsOrder(t *testing.T) {
	books := Books([]goodreads.FeedItem{{Title: "B"}, {Title: "A"}, {Title: "C"}})

	require.Len(t, books, 3)
	assert.Equal(t, "B", books[0].Title)
	assert.Equal(t, "A", books[1].Title)
	assert.Equal(t, "C", books[2].Title)
}
