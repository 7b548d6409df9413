package goodreads

import (
	"context"
	"time"
)

// PageEvent describes the outcome of one page request.
type PageEvent struct {
	Profile  string
	Shelf    string
	Page     int
	Items    int
	Last     bool
	Duration time.Duration
	Err      error
}

// PageObserver is notified after every page request, including the final
// empty or failed one. It must not block.
type PageObserver func(PageEvent)

// Pager walks a shelf feed one page at a time. It is lazy, finite and cannot
// be restarted. A Pager is not safe for concurrent use.
//
//	p := client.Shelf("12345", goodreads.ShelfRead, nil)
//	for p.Next(ctx) {
//		items := p.Page()
//	}
//	if err := p.Err(); err != nil { ... }
type Pager struct {
	client   *Client
	profile  string
	shelf    string
	observer PageObserver

	next  int
	pages int
	page  []FeedItem
	err   error
	done  bool
}

// Shelf returns a pager over the given profile's shelf, starting at page 1.
func (c *Client) Shelf(profileID, shelf string, observer PageObserver) *Pager {
	return &Pager{
		client:   c,
		profile:  profileID,
		shelf:    shelf,
		observer: observer,
		next:     1,
	}
}

// Next fetches the next page. It returns false once the shelf is exhausted or
// a request failed; Err tells the two apart.
func (p *Pager) Next(ctx context.Context) bool {
	p.page = nil
	if p.done {
		return false
	}

	if p.next > 1 && p.client.pageDelay > 0 {
		timer := time.NewTimer(p.client.pageDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			p.fail(shelfError(p.profile, p.shelf, p.next, ctx.Err()), 0)
			return false
		case <-timer.C:
		}
	}

	start := time.Now()
	items, err := p.client.fetchPage(ctx, p.profile, p.shelf, p.next)
	elapsed := time.Since(start)
	if err != nil {
		p.fail(shelfError(p.profile, p.shelf, p.next, err), elapsed)
		return false
	}

	if len(items) == 0 {
		p.done = true
		p.notify(PageEvent{Page: p.next, Last: true, Duration: elapsed})
		return false
	}

	// A short page is the last one; skip the trailing empty request.
	last := len(items) < p.client.pageSize
	p.notify(PageEvent{Page: p.next, Items: len(items), Last: last, Duration: elapsed})

	p.page = items
	p.pages++
	p.next++
	p.done = last
	return true
}

// Page returns the items of the current page.
func (p *Pager) Page() []FeedItem {
	return p.page
}

// Err returns the error that ended pagination, if any. Items from pages
// before the failure remain valid.
func (p *Pager) Err() error {
	return p.err
}

// Pages returns the number of non-empty pages fetched successfully.
func (p *Pager) Pages() int {
	return p.pages
}

func (p *Pager) fail(err error, elapsed time.Duration) {
	p.err = err
	p.done = true
	p.notify(PageEvent{Page: p.next, Last: true, Duration: elapsed, Err: err})
}

func (p *Pager) notify(ev PageEvent) {
	if p.observer == nil {
		return
	}
	ev.Profile = p.profile
	ev.Shelf = p.shelf
	p.observer(ev)
}

// DrainShelf collects every item the pager yields. On failure it returns the
// items gathered so far together with the error.
func DrainShelf(ctx context.Context, p *Pager) ([]FeedItem, error) {
	var items []FeedItem
	for p.Next(ctx) {
		items = append(items, p.Page()...)
	}
	return items, p.Err()
}
