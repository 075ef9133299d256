// Package types defines shared types used across the application.
package types

import "time"

// Interaction represents a simple user interaction with a webpage that is
// run once after the page has loaded, eg. to dismiss a consent dialog.
type Interaction struct {
	Type     string `yaml:"type,omitempty"`
	Selector string `yaml:"selector,omitempty"`
	Count    int    `yaml:"count,omitempty"`
	Delay    int    `yaml:"delay,omitempty"`
}

// RunStatus represents the status of a bot run.
type RunStatus struct {
	Name           string    `json:"name"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	NrClicks       int       `json:"nrClicks"`
	NrPurchases    int       `json:"nrPurchases"`
	NrErrors       int       `json:"nrErrors"`
	FinalCount     int64     `json:"finalCount"`
	BulkAmount     int       `json:"bulkAmount"`
	PurchasedItems []string  `json:"purchasedItems"`
}

const (
	InteractionTypeClick = "click"
	InteractionTypeWait  = "wait"
)
