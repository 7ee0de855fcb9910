package domain

// Account is a money container. Ad-hoc accounts track no balances or
// description; normal accounts always carry both money columns.
type Account struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Description    *string  `json:"description"`
	AvailableMoney *float64 `json:"available_money"`
	TotalMoney     *float64 `json:"total_money"`
	UserID         string   `json:"user_id"`
	IsAdhoc        bool     `json:"is_adhoc"`
}

// AccountType filters account listings.
type AccountType string

const (
	AccountAny    AccountType = "any"
	AccountAdhoc  AccountType = "adhoc"
	AccountNormal AccountType = "normal"
)

// ParseAccountType maps the query value to an AccountType. Empty and the
// "*"/"all" aliases mean any.
func ParseAccountType(s string) (AccountType, bool) {
	switch s {
	case "", "any", "*", "all":
		return AccountAny, true
	case "adhoc":
		return AccountAdhoc, true
	case "normal":
		return AccountNormal, true
	}
	return AccountAny, false
}
