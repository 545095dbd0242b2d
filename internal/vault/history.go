package vault

import (
	"context"

	"github.com/keyfold/keyfold/internal/remote"
)

// HistoryPageSize is the number of revisions returned per page.
const HistoryPageSize = 10

// HistoryPager lazily walks a path's revision history, newest first, one
// page at a time. The full history is never materialized eagerly.
type HistoryPager struct {
	remote *remote.Client
	path   string
	page   int
	done   bool
}

// Next fetches the next page of revisions. A short or empty page marks the
// pager as exhausted; subsequent calls return nil without touching the
// remote.
func (p *HistoryPager) Next(ctx context.Context) ([]remote.Revision, error) {
	if p.done {
		return nil, nil
	}

	p.page++
	revisions, err := p.remote.ListRevisions(ctx, p.path, p.page, HistoryPageSize)
	if err != nil {
		return nil, err
	}

	if len(revisions) < HistoryPageSize {
		p.done = true
	}
	return revisions, nil
}

// Done reports whether the history has been exhausted.
func (p *HistoryPager) Done() bool {
	return p.done
}

// Reset restarts the pager from the newest revision.
func (p *HistoryPager) Reset() {
	p.page = 0
	p.done = false
}
