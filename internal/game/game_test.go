package game

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jakopako/clickr/internal/config"
)

const storeHTML = `
<div id="products" class="storeSection">
	<div class="product unlocked enabled" id="product0">
		<div class="icon off"></div>
		<div class="content">
			<div class="lockedTitle">???</div>
			<div class="title productName" id="productName0">Cursor</div>
			<span class="price" id="productPrice0">15</span>
			<div class="title owned" id="productOwned0">3</div>
		</div>
	</div>
	<div class="product unlocked enabled" id="product1">
		<div class="content">
			<div class="title productName" id="productName1">Grandma</div>
			<span class="price" id="productPrice1">100</span>
		</div>
	</div>
	<div class="product unlocked enabled" id="product2">
		<div class="content">
			<div class="title productName" id="productName2">Farm</div>
			<span class="price" id="productPrice2">1,100</span>
		</div>
	</div>
	<div class="product unlocked disabled" id="product3">
		<div class="content">
			<div class="title productName" id="productName3">Mine</div>
			<span class="price" id="productPrice3">12,000</span>
		</div>
	</div>
	<div class="product locked disabled toggledOff" id="product4">
		<div class="content">
			<div class="title productName" id="productName4">???</div>
			<span class="price" id="productPrice4">130,000</span>
		</div>
	</div>
</div>`

func testSelectors() *config.Selectors {
	return &config.Selectors{
		Counter:   "#cookies",
		Store:     "#products",
		Item:      ".product.unlocked.enabled",
		ItemName:  ".productName",
		ItemPrice: ".price",
		Bulk1:     "#storeBulk1",
		Bulk10:    "#storeBulk10",
		Bulk100:   "#storeBulk100",
		BulkMax:   "#storeBulkMax",
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"1,234", 1234, false},
		{"0", 0, false},
		{"15", 15, false},
		{"1,234 cookies", 1234, false},
		{"1,234 cookies\nper second: 12.5", 1234, false},
		{"  42 cookies ", 42, false},
		{"12.7 cookies", 12, false},
		{"1.5 million", 1500000, false},
		{"1.234 million cookies", 1234000, false},
		{"3 billion", 3000000000, false},
		{"2.25 Trillion", 2250000000000, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-5", 0, true},
		{"1.2x", 0, true},
		{"99 quintillion", 0, true},
		{"9.5 quintillion", 0, true},
		{"9.9 quintillion cookies", 0, true},
		{"9.2 quintillion", 9200000000000000000, false},
		{"1.5 sextillion cookies", 0, true},
		{"2 septillion", 0, true},
		{"2 Decillion", 0, true},
	}

	for _, tt := range tests {
		result, err := ParseCount(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidCount) {
				t.Errorf("ParseCount(%q) error = %v; want %v", tt.input, err, ErrInvalidCount)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCount(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("ParseCount(%q) = %d; want %d", tt.input, result, tt.expected)
		}
	}
}

func TestAffordable(t *testing.T) {
	tests := []struct {
		counter  int64
		cost     int64
		expected bool
	}{
		{500, 499, true},
		{500, 500, true},
		{500, 501, false},
		{0, 0, true},
	}

	for _, tt := range tests {
		i := Item{Name: "Grandma", Cost: tt.cost}
		if result := i.Affordable(tt.counter); result != tt.expected {
			t.Errorf("Item{Cost: %d}.Affordable(%d) = %t; want %t", tt.cost, tt.counter, result, tt.expected)
		}
	}
}

func TestParseItems(t *testing.T) {
	sel := testSelectors()
	items, err := ParseItems(storeHTML, sel.Item, sel.ItemName, sel.ItemPrice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []Item{
		{ID: "product0", Name: "Cursor", Cost: 15},
		{ID: "product1", Name: "Grandma", Cost: 100},
		{ID: "product2", Name: "Farm", Cost: 1100},
	}
	if diff := cmp.Diff(expected, items); diff != "" {
		t.Errorf("ParseItems mismatch (-want +got):\n%s", diff)
	}
}

func TestParseItemsSkipsBrokenItems(t *testing.T) {
	html := `<div id="products">
		<div class="product unlocked enabled" id="product0"><div class="productName">Cursor</div><span class="price">15</span></div>
		<div class="product unlocked enabled" id="product1"><div class="productName">Grandma</div><span class="price">?</span></div>
		<div class="product unlocked enabled"><div class="productName">Farm</div><span class="price">1,100</span></div>
		<div class="product unlocked enabled" id="product3">Mine
			<span class="price">12,000</span></div>
	</div>`
	sel := testSelectors()
	items, err := ParseItems(html, sel.Item, sel.ItemName, sel.ItemPrice)
	if !errors.Is(err, ErrInvalidCost) {
		t.Errorf("expected %v, got %v", ErrInvalidCost, err)
	}
	expected := []Item{
		{ID: "product0", Name: "Cursor", Cost: 15},
		{ID: "product3", Name: "Mine", Cost: 12000},
	}
	if diff := cmp.Diff(expected, items); diff != "" {
		t.Errorf("ParseItems mismatch (-want +got):\n%s", diff)
	}
}

func TestChoose(t *testing.T) {
	items := []Item{
		{ID: "product0", Name: "Cursor", Cost: 15},
		{ID: "product1", Name: "Grandma", Cost: 100},
		{ID: "product2", Name: "Farm", Cost: 1100},
	}

	tests := []struct {
		name     string
		counter  int64
		bought   []string
		expected string
		found    bool
	}{
		{name: "most expensive affordable", counter: 500, expected: "Grandma", found: true},
		{name: "all affordable", counter: 5000, expected: "Farm", found: true},
		{name: "skip purchased", counter: 5000, bought: []string{"Farm"}, expected: "Grandma", found: true},
		{name: "nothing affordable", counter: 10},
		{name: "all purchased", counter: 120, bought: []string{"Cursor", "Grandma"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(len(items))
			for _, b := range tt.bought {
				h.Add(b)
			}
			item, found := Choose(items, tt.counter, h)
			if found != tt.found {
				t.Fatalf("Choose found = %t; want %t", found, tt.found)
			}
			if found && item.Name != tt.expected {
				t.Errorf("Choose = %s; want %s", item.Name, tt.expected)
			}
		})
	}
}

func TestChooseTieTakesLast(t *testing.T) {
	items := []Item{
		{ID: "product0", Name: "A", Cost: 10},
		{ID: "product1", Name: "B", Cost: 10},
	}
	item, found := Choose(items, 10, NewHistory(2))
	if !found || item.ID != "product1" {
		t.Errorf("Choose = %v, %t; want product1", item, found)
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory(2)
	if !h.Add("Cursor") {
		t.Fatal("expected Cursor to be added")
	}
	if h.Add("Cursor") {
		t.Error("expected duplicate to be rejected")
	}
	if !h.Add("Grandma") {
		t.Fatal("expected Grandma to be added")
	}
	if !h.Full() {
		t.Error("expected history to be full")
	}
	if h.Add("Farm") {
		t.Error("expected add beyond limit to be rejected")
	}
	if diff := cmp.Diff([]string{"Cursor", "Grandma"}, h.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	h.Clear()
	if h.Len() != 0 || h.Contains("Cursor") {
		t.Errorf("expected empty history after Clear, got %v", h.Names())
	}
	if NewHistory(0).limit != 1 {
		t.Error("expected limit to be at least 1")
	}
}

func TestNormalizeBulk(t *testing.T) {
	sel := testSelectors()
	tests := []struct {
		input    int
		expected BulkAmount
		selector string
		str      string
	}{
		{1, Bulk1, "#storeBulk1", "1"},
		{10, Bulk10, "#storeBulk10", "10"},
		{100, Bulk100, "#storeBulk100", "100"},
		{0, BulkMax, "#storeBulkMax", "max"},
		{5, Bulk1, "#storeBulk1", "1"},
		{-1, Bulk1, "#storeBulk1", "1"},
	}

	for _, tt := range tests {
		b := NormalizeBulk(tt.input)
		if b != tt.expected {
			t.Errorf("NormalizeBulk(%d) = %v; want %v", tt.input, b, tt.expected)
		}
		if s := b.Selector(sel); s != tt.selector {
			t.Errorf("BulkAmount(%d).Selector() = %s; want %s", b, s, tt.selector)
		}
		if s := b.String(); s != tt.str {
			t.Errorf("BulkAmount(%d).String() = %s; want %s", b, s, tt.str)
		}
	}
}

type fakePage struct {
	texts map[string]string
	html  map[string]string
}

func (p *fakePage) Text(ctx context.Context, sel string) (string, error) {
	if t, ok := p.texts[sel]; ok {
		return t, nil
	}
	return "", errors.New("not found")
}

func (p *fakePage) OuterHTML(ctx context.Context, sel string) (string, error) {
	if h, ok := p.html[sel]; ok {
		return h, nil
	}
	return "", errors.New("not found")
}

func TestReader(t *testing.T) {
	page := &fakePage{
		texts: map[string]string{"#cookies": "1,234 cookies\nper second : 3.1"},
		html:  map[string]string{"#products": storeHTML},
	}
	r := NewReader(page, testSelectors())

	c, err := r.Counter(context.Background())
	if err != nil || c != 1234 {
		t.Errorf("Counter() = %d, %v; want 1234", c, err)
	}
	items, err := r.Items(context.Background())
	if err != nil || len(items) != 3 {
		t.Errorf("Items() = %v, %v; want 3 items", items, err)
	}

	empty := NewReader(&fakePage{}, testSelectors())
	if _, err := empty.Counter(context.Background()); err == nil {
		t.Error("expected error for missing counter")
	}
	if _, err := empty.Items(context.Background()); err == nil {
		t.Error("expected error for missing store")
	}
}
