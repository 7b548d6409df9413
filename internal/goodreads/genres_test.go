package goodreads

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/shelfwrapped/internal/genre"
	"github.com/listenupapp/shelfwrapped/internal/goodreads/goodreadstest"
)

func TestGenres_CleansTags(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(goodreadstest.GenrePageHTML("Fantasy", "to-read", "Fantasy")))
	})

	tags, err := client.FetchGenres(context.Background(), "5907")
	require.NoError(t, err)

	assert.Equal(t, "/book/show/5907", gotPath)
	assert.Equal(t, []string{"fantasy", "fantasy"}, tags)
}

func TestGenres_NoStopwordSurvives(t *testing.T) {
	raw := append(genre.Stoplist(), "Science Fiction", "Kindle Unlimited", "Owned Books")
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(goodreadstest.GenrePageHTML(raw...)))
	})

	tags, err := client.FetchGenres(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, []string{"science fiction"}, tags)
	for _, tag := range tags {
		assert.False(t, genre.IsStopword(tag))
	}
}

func TestGenres_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "no payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html><body><h1>Book</h1></body></html>`))
			},
			wantErr: ErrNoGenreData,
		},
		{
			name: "payload without genres",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html><body><script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":{"apolloState":{"ROOT_QUERY":{"__typename":"Query"}}}}}</script></body></html>`))
			},
			wantErr: ErrNoGenreData,
		},
		{
			name: "broken payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html><body><script id="__NEXT_DATA__" type="application/json">{"props":</script></body></html>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler)

			tags, err := client.FetchGenres(context.Background(), "1")
			assert.Nil(t, tags)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestGenres_EmptyBookID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.FetchGenres(context.Background(), "")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestExtractGenres_FirstHolderInKeyOrder(t *testing.T) {
	page := []byte(`<html><body><script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":{"apolloState":{
		"Book:b":{"bookGenres":[{"genre":{"name":"Horror"}}]},
		"Book:a":{"bookGenres":[{"genre":{"name":"Romance"}},{"genre":{"name":""}}]}
	}}}}</script></body></html>`)

	names, err := extractGenres(page)
	require.NoError(t, err)
	assert.Equal(t, []string{"Romance"}, names)
}
