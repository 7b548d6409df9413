// Package genre cleans raw genre tags scraped from book detail pages.
package genre

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// stopwords are tags that describe a format, a shelf, or nothing in particular.
// Entries are compared after Normalize.
var stopwords = []string{
	// Formats.
	"audiobook", "audiobooks", "audible", "ebook", "ebooks", "e-book",
	"kindle", "kindle-unlimited", "paperback", "hardcover",

	// Shelf management.
	"to-read", "tbr", "currently-reading", "read", "re-read", "reread",
	"dnf", "did-not-finish", "wishlist", "wish-list", "favorites",
	"favourites", "default", "owned", "owned-books", "books-i-own",
	"my-library", "library", "book-club", "abandoned", "on-hold",

	// Generic descriptors.
	"novels", "novel", "books", "series", "unfinished", "adult", "storytime",
}

var stoplist = func() map[string]struct{} {
	m := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		m[w] = struct{}{}
	}
	return m
}()

// Normalize lower-cases a tag, trims it, and applies Unicode NFC so visually
// identical tags tally together.
func Normalize(tag string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(tag)))
}

// IsStopword reports whether a normalized tag is a non-genre label.
// Space- and hyphen-separated spellings are treated alike ("to read" == "to-read").
func IsStopword(tag string) bool {
	if _, ok := stoplist[tag]; ok {
		return true
	}
	_, ok := stoplist[strings.ReplaceAll(tag, " ", "-")]
	return ok
}

// Clean normalizes each tag and drops empty ones and stoplist entries.
// Order and duplicates are preserved; tallying is the caller's job.
func Clean(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		n := Normalize(t)
		if n == "" || IsStopword(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Stoplist returns a copy of the stoplist entries.
func Stoplist() []string {
	return slices.Clone(stopwords)
}
