package dto

// AccountCreateRequest is the body for POST /api/v1/accounts.
// starting_money is required for normal accounts and ignored for ad-hoc ones.
type AccountCreateRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   *string  `json:"description"`
	StartingMoney *float64 `json:"starting_money"`
	IsAdhoc       bool     `json:"is_adhoc"`
}

// TagCreateRequest is the body for POST /api/v1/tags.
type TagCreateRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   *string  `json:"description"`
	Limit         *float64 `json:"limit"`
	StartingMoney *float64 `json:"starting_money"`
}

// CreatedResponse returns the id of a freshly created row.
type CreatedResponse struct {
	ID int64 `json:"id"`
}
