package game

import (
	"strconv"

	"github.com/jakopako/clickr/internal/config"
)

// BulkAmount is the multiplier applied to purchase actions.
type BulkAmount int

const (
	BulkMax BulkAmount = 0
	Bulk1   BulkAmount = 1
	Bulk10  BulkAmount = 10
	Bulk100 BulkAmount = 100
)

// NormalizeBulk maps amount to a bulk amount. Unknown amounts map to Bulk1.
func NormalizeBulk(amount int) BulkAmount {
	switch b := BulkAmount(amount); b {
	case BulkMax, Bulk1, Bulk10, Bulk100:
		return b
	default:
		return Bulk1
	}
}

// Selector returns the css selector of the store button for b.
func (b BulkAmount) Selector(s *config.Selectors) string {
	switch b {
	case BulkMax:
		return s.BulkMax
	case Bulk10:
		return s.Bulk10
	case Bulk100:
		return s.Bulk100
	default:
		return s.Bulk1
	}
}

func (b BulkAmount) String() string {
	if b == BulkMax {
		return "max"
	}
	return strconv.Itoa(int(b))
}

// Transaction is the mode of the store.
type Transaction int

const (
	Buy Transaction = iota
	Sell
)

func (t Transaction) String() string {
	if t == Sell {
		return "sell"
	}
	return "buy"
}
