// Package game reads the state of the cookie clicker page and decides
// which item to purchase next.
package game

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidCount is returned if a counter text cannot be parsed.
	ErrInvalidCount = errors.New("invalid count")
	// ErrInvalidCost is returned if the cost of an item cannot be parsed.
	ErrInvalidCost = errors.New("invalid cost")
)

// large numbers are displayed as eg. "1.234 million"
var suffixes = map[string]int64{
	"million":     1e6,
	"billion":     1e9,
	"trillion":    1e12,
	"quadrillion": 1e15,
	"quintillion": 1e18,
}

// ParseCount parses a number as displayed by the game, eg. "1,234",
// "1,234 cookies" or "1.5 million cookies". Only the leading number (and
// its suffix word, if any) is taken into account.
func ParseCount(text string) (int64, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: empty text", ErrInvalidCount)
	}
	number := strings.ReplaceAll(fields[0], ",", "")

	multiplier := int64(1)
	if len(fields) > 1 {
		word := strings.ToLower(fields[1])
		if m, ok := suffixes[word]; ok {
			multiplier = m
		} else if strings.HasSuffix(word, "illion") {
			// sextillion and up do not fit into an int64
			return 0, fmt.Errorf("%w: %q overflows", ErrInvalidCount, text)
		}
	}

	intPart, fracPart, hasFrac := strings.Cut(number, ".")
	if intPart == "" || strings.ContainsAny(intPart, "+-") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCount, text)
	}
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCount, text)
	}
	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidCount, text)
	}
	n *= multiplier

	if !hasFrac || multiplier == 1 {
		if hasFrac && strings.Trim(fracPart, "0123456789") != "" {
			return 0, fmt.Errorf("%w: %q", ErrInvalidCount, text)
		}
		// fractions of single cookies are dropped
		return n, nil
	}

	// the fraction is applied digit by digit to avoid float rounding
	scale := multiplier
	for _, r := range fracPart {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidCount, text)
		}
		scale /= 10
		d := int64(r-'0') * scale
		if n > math.MaxInt64-d {
			return 0, fmt.Errorf("%w: %q overflows", ErrInvalidCount, text)
		}
		n += d
	}
	return n, nil
}
