// Package goodreadstest renders upstream fixtures for tests.
package goodreadstest

import (
	"fmt"
	"strings"
)

// FeedEntry is a compact description of one item for FeedXML.
type FeedEntry struct {
	BookID     string
	Title      string
	Author     string
	UserRating string
	AvgRating  string
	ReadAt     string
	DateAdded  string
	NumPages   string
	Review     string
}

// FeedXML renders entries as a shelf RSS page in the upstream layout.
func FeedXML(entries ...FeedEntry) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Shelf</title>
<link>https://www.goodreads.com/review/list_rss/1</link>
`)
	for _, e := range entries {
		fmt.Fprintf(&b, `<item>
<guid><![CDATA[https://www.goodreads.com/review/show/9%[1]s?utm_medium=api&utm_source=rss]]></guid>
<title><![CDATA[%[2]s]]></title>
<link><![CDATA[https://www.goodreads.com/review/show/9%[1]s?utm_medium=api&utm_source=rss]]></link>
<book_id>%[1]s</book_id>
<book_large_image_url><![CDATA[https://images.example.com/books/%[1]s.jpg]]></book_large_image_url>
<book id="%[1]s"><num_pages>%[3]s</num_pages></book>
<author_name>%[4]s</author_name>
<user_rating>%[5]s</user_rating>
<average_rating>%[6]s</average_rating>
<user_read_at>%[7]s</user_read_at>
<user_date_added><![CDATA[%[8]s]]></user_date_added>
<user_review><![CDATA[%[9]s]]></user_review>
</item>
`, e.BookID, e.Title, e.NumPages, e.Author, e.UserRating, e.AvgRating, e.ReadAt, e.DateAdded, e.Review)
	}
	b.WriteString("</channel>\n</rss>\n")
	return b.String()
}

// NumberedEntries returns n entries with book ids starting at first.
func NumberedEntries(first, n int) []FeedEntry {
	entries := make([]FeedEntry, n)
	for i := range entries {
		id := first + i
		entries[i] = FeedEntry{
			BookID:     fmt.Sprint(id),
			Title:      fmt.Sprintf("Book %d", id),
			Author:     "Author",
			UserRating: "4",
			AvgRating:  "3.90",
			ReadAt:     "Mon, 15 Jan 2024 00:00:00 -0800",
			DateAdded:  "Tue, 02 Jan 2024 10:00:00 -0800",
			NumPages:   "300",
		}
	}
	return entries
}

// GenrePageHTML renders a detail page embedding the given genre names.
func GenrePageHTML(genres ...string) string {
	var parts []string
	for _, g := range genres {
		parts = append(parts, fmt.Sprintf(`{"__typename":"BookGenre","genre":{"__typename":"Genre","name":%q}}`, g))
	}
	return fmt.Sprintf(`<!DOCTYPE html><html><head><title>Book</title></head><body>
<div id="__next"></div>
<script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":{"apolloState":{"ROOT_QUERY":{"__typename":"Query"},"Book:kca://book/1":{"__typename":"Book","title":"Book","bookGenres":[%s]},"Work:kca://work/1":{"__typename":"Work"}}}}}</script>
</body></html>`, strings.Join(parts, ","))
}
