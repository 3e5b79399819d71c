package bank

// Account is the single entity of the service. The id is assigned by the
// caller; only the balance is mutable through the API (via transfers).
// Metadata fields are nullable free-form text and are not interpreted.
type Account struct {
	ID          int64   `json:"id"`
	Owner       string  `json:"owner"`
	Balance     float64 `json:"balance"`
	Currency    *string `json:"currency"`
	Status      *string `json:"status"`
	CreatedAt   *string `json:"createdAt"`
	AccountType *string `json:"accountType"`
}

// clone returns an independent copy. Pointer fields are duplicated so a
// caller holding a snapshot cannot reach registry state through them.
func (a Account) clone() Account {
	cp := a
	cp.Currency = cloneString(a.Currency)
	cp.Status = cloneString(a.Status)
	cp.CreatedAt = cloneString(a.CreatedAt)
	cp.AccountType = cloneString(a.AccountType)
	return cp
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}

	v := *s

	return &v
}
