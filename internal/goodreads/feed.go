package goodreads

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
)

// Well-known shelf names.
const (
	ShelfRead   = "read"
	ShelfToRead = "to-read"
)

// numPagesPattern pulls num_pages out of the nested <book> element, which the
// feed parser keeps as raw inner XML.
var numPagesPattern = regexp.MustCompile(`<num_pages>\s*([^<]*?)\s*</num_pages>`)

// FeedItem is one raw shelf entry. Values are kept exactly as given upstream;
// interpretation happens in the normalizer.
type FeedItem struct {
	Title          string
	AuthorName     string
	UserRating     string
	AverageRating  string
	UserReadAt     string
	UserDateAdded  string
	NumPages       string
	BookImageURL   string
	AuthorImageURL string
	UserReview     string
	Link           string
	GUID           string
	BookID         string
}

// fetchPage requests one page of a shelf feed and parses it.
func (c *Client) fetchPage(ctx context.Context, profileID, shelf string, page int) ([]FeedItem, error) {
	query := url.Values{
		"shelf": {shelf},
		"page":  {strconv.Itoa(page)},
	}
	body, err := c.doRequest(ctx, "/review/list_rss/"+url.PathEscape(profileID), query)
	if err != nil {
		return nil, err
	}
	return parseFeed(body)
}

// parseFeed decodes an RSS shelf page into items.
func parseFeed(body []byte) ([]FeedItem, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}

	items := make([]FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		items = append(items, toFeedItem(it))
	}
	return items, nil
}

func toFeedItem(it *gofeed.Item) FeedItem {
	custom := it.Custom
	if custom == nil {
		custom = map[string]string{}
	}

	item := FeedItem{
		Title:          strings.TrimSpace(it.Title),
		AuthorName:     strings.TrimSpace(custom["author_name"]),
		UserRating:     custom["user_rating"],
		AverageRating:  custom["average_rating"],
		UserReadAt:     custom["user_read_at"],
		UserDateAdded:  custom["user_date_added"],
		NumPages:       custom["num_pages"],
		BookImageURL:   firstNonEmpty(custom["book_large_image_url"], custom["book_medium_image_url"], custom["book_image_url"], custom["book_small_image_url"]),
		AuthorImageURL: custom["author_image_url"],
		UserReview:     custom["user_review"],
		Link:           strings.TrimSpace(it.Link),
		GUID:           strings.TrimSpace(it.GUID),
		BookID:         strings.TrimSpace(custom["book_id"]),
	}

	if item.AuthorName == "" && it.Author != nil {
		item.AuthorName = strings.TrimSpace(it.Author.Name)
	}
	if item.NumPages == "" {
		if m := numPagesPattern.FindStringSubmatch(custom["book"]); m != nil {
			item.NumPages = m[1]
		}
	}
	if item.BookImageURL == "" && it.Image != nil {
		item.BookImageURL = it.Image.URL
	}

	return item
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
