package goodreads

import (
	"errors"
	"fmt"
)

// Sentinel errors for upstream operations.
var (
	ErrNotFound    = errors.New("goodreads: not found")
	ErrRateLimited = errors.New("goodreads: rate limited by server")
	ErrBadRequest  = errors.New("goodreads: bad request")
	ErrServer      = errors.New("goodreads: server error")
	ErrInvalidFeed = errors.New("goodreads: invalid feed")
	ErrNoGenreData = errors.New("goodreads: no genre data in page")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op      string // Operation: "shelf", "genres"
	Profile string
	Shelf   string
	Page    int
	BookID  string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.BookID != "":
		return fmt.Sprintf("goodreads %s [book %s]: %v", e.Op, e.BookID, e.Err)
	case e.Page > 0:
		return fmt.Sprintf("goodreads %s [%s/%s page %d]: %v", e.Op, e.Profile, e.Shelf, e.Page, e.Err)
	default:
		return fmt.Sprintf("goodreads %s [%s/%s]: %v", e.Op, e.Profile, e.Shelf, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func shelfError(profile, shelf string, page int, err error) error {
	return &Error{Op: "shelf", Profile: profile, Shelf: shelf, Page: page, Err: err}
}

func genresError(bookID string, err error) error {
	return &Error{Op: "genres", BookID: bookID, Err: err}
}
