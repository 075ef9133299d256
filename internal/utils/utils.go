package utils

import "fmt"

// ShortenString cuts s to l bytes and appends "..." if it is longer.
// A length of 0 means no limit.
func ShortenString(s string, l int) string {
	if len(s) > l && l != 0 {
		return fmt.Sprintf("%s...", s[:l])
	}
	return s
}
