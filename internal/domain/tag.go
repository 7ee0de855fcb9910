package domain

// Tag is a budget category with an optional spending limit and a running
// balance.
type Tag struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Limit       *float64 `json:"limit"`
	Balance     float64  `json:"balance"`
	UserID      string   `json:"user_id"`
}
