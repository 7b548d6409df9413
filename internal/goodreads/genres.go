package goodreads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/listenupapp/shelfwrapped/internal/genre"
)

// nextData is the slice of the embedded page payload we care about.
type nextData struct {
	Props struct {
		PageProps struct {
			ApolloState map[string]json.RawMessage `json:"apolloState"`
		} `json:"pageProps"`
	} `json:"props"`
}

type genreHolder struct {
	BookGenres []struct {
		Genre struct {
			Name string `json:"name"`
		} `json:"genre"`
	} `json:"bookGenres"`
}

// FetchGenres fetches a book's detail page and returns its cleaned genre tags
// in page order. Callers treat a failure as an empty list.
func (c *Client) FetchGenres(ctx context.Context, bookID string) ([]string, error) {
	if bookID == "" {
		return nil, genresError(bookID, ErrBadRequest)
	}

	body, err := c.doRequest(ctx, "/book/show/"+url.PathEscape(bookID), nil)
	if err != nil {
		return nil, genresError(bookID, err)
	}

	raw, err := extractGenres(body)
	if err != nil {
		return nil, genresError(bookID, err)
	}
	return genre.Clean(raw), nil
}

// extractGenres locates the __NEXT_DATA__ payload and returns the raw genre
// names of the first object carrying a bookGenres list. Keys are visited in
// sorted order so the choice is stable.
func extractGenres(page []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	payload := strings.TrimSpace(doc.Find("script#__NEXT_DATA__").First().Text())
	if payload == "" {
		return nil, ErrNoGenreData
	}

	var data nextData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	state := data.Props.PageProps.ApolloState
	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		var holder genreHolder
		// Entries that are not objects (ROOT_QUERY refs, scalars) just fail to decode.
		if err := json.Unmarshal(state[k], &holder); err != nil || holder.BookGenres == nil {
			continue
		}
		names := make([]string, 0, len(holder.BookGenres))
		for _, bg := range holder.BookGenres {
			if bg.Genre.Name != "" {
				names = append(names, bg.Genre.Name)
			}
		}
		return names, nil
	}
	return nil, ErrNoGenreData
}
