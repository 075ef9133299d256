package game

import (
	"context"
	"fmt"

	"github.com/jakopako/clickr/internal/config"
)

// PageReader gives read access to the elements of the game page.
type PageReader interface {
	Text(ctx context.Context, sel string) (string, error)
	OuterHTML(ctx context.Context, sel string) (string, error)
}

// Reader extracts the game state from the page.
type Reader struct {
	page PageReader
	sel  *config.Selectors
}

func NewReader(page PageReader, sel *config.Selectors) *Reader {
	return &Reader{page: page, sel: sel}
}

// Counter reads and parses the cookie counter.
func (r *Reader) Counter(ctx context.Context) (int64, error) {
	text, err := r.page.Text(ctx, r.sel.Counter)
	if err != nil {
		return 0, fmt.Errorf("failed to read counter: %w", err)
	}
	return ParseCount(text)
}

// Items returns the interactable items of the store in page order. Items
// that could not be parsed are left out and reported in the error.
func (r *Reader) Items(ctx context.Context) ([]Item, error) {
	html, err := r.page.OuterHTML(ctx, r.sel.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}
	return ParseItems(html, r.sel.Item, r.sel.ItemName, r.sel.ItemPrice)
}
