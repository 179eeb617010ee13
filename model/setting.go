package model

import "time"

// Setting represents a platform-wide configuration entry.
type Setting struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
