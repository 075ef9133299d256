package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Item is a purchasable element of the store.
type Item struct {
	ID   string
	Name string
	Cost int64
}

// Affordable returns true if counter is at least the item's cost.
func (i Item) Affordable(counter int64) bool {
	return counter >= i.Cost
}

// Selector returns the css selector that matches the item on the page.
func (i Item) Selector() string {
	return "#" + i.ID
}

// ParseItems extracts the items matching itemSel from an html snapshot of
// the store. Items whose name, id or cost cannot be extracted are skipped
// and reported in the returned error, the remaining ones are returned in
// page order.
func ParseItems(html, itemSel, nameSel, priceSel string) ([]Item, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	items := []Item{}
	var errs []error
	doc.Find(itemSel).Each(func(i int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		if id == "" {
			errs = append(errs, fmt.Errorf("item nr %d has no id", i))
			return
		}
		name := strings.TrimSpace(s.Find(nameSel).First().Text())
		if name == "" {
			// fall back to the first line of the item's text
			name, _, _ = strings.Cut(strings.TrimSpace(s.Text()), "\n")
			name = strings.TrimSpace(name)
		}
		costText := strings.TrimSpace(s.Find(priceSel).First().Text())
		cost, err := ParseCount(costText)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w of item %s: %q", ErrInvalidCost, id, costText))
			return
		}
		items = append(items, Item{ID: id, Name: name, Cost: cost})
	})
	return items, errors.Join(errs...)
}

// AffordableItems filters items to those affordable with counter.
func AffordableItems(items []Item, counter int64) []Item {
	affordable := []Item{}
	for _, i := range items {
		if i.Affordable(counter) {
			affordable = append(affordable, i)
		}
	}
	return affordable
}

// Choose returns the most expensive affordable item that is not in the
// purchase history. If two items cost the same the one further down the
// store wins.
func Choose(items []Item, counter int64, h *History) (Item, bool) {
	var best Item
	found := false
	for _, i := range AffordableItems(items, counter) {
		if h.Contains(i.Name) {
			continue
		}
		if !found || i.Cost >= best.Cost {
			best = i
			found = true
		}
	}
	return best, found
}
