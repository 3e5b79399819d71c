package bank

import (
	"strings"
	"sync"
)

// Registry owns every account for the lifetime of the process. All state is
// behind a single reader/writer lock: lookups and aggregations take the read
// side, add/delete/transfer take the write side. Every value handed out is a
// snapshot copy.
type Registry struct {
	mu       sync.RWMutex
	accounts map[int64]*Account
}

func NewRegistry() *Registry {
	return &Registry{
		accounts: make(map[int64]*Account),
	}
}

// Add inserts an account, failing with ErrAccountAlreadyExists when the id
// is taken. Balances are stored as given; negative or zero values are not
// interpreted here.
func (r *Registry) Add(account Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.ID]; exists {
		return ErrAccountAlreadyExists
	}

	cp := account.clone()
	r.accounts[account.ID] = &cp

	return nil
}

func (r *Registry) ByID(id int64) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]

	if !ok {
		return Account{}, ErrAccountNotFound
	}

	return account.clone(), nil
}

// ByOwner matches owners under simple case folding. An empty result is a
// valid outcome, not an error.
func (r *Registry) ByOwner(owner string) []Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Account, 0)

	for _, account := range r.accounts {
		if strings.EqualFold(account.Owner, owner) {
			matched = append(matched, account.clone())
		}
	}

	return matched
}

// WithBalanceGreaterThan returns accounts with balance strictly above the
// threshold; equality does not match.
func (r *Registry) WithBalanceGreaterThan(threshold float64) []Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Account, 0)

	for _, account := range r.accounts {
		if account.Balance > threshold {
			matched = append(matched, account.clone())
		}
	}

	return matched
}

func (r *Registry) TotalBalance() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total float64

	for _, account := range r.accounts {
		total += account.Balance
	}

	return total
}

// Delete removes the account and reports whether it existed. Deleting a
// missing id is not an error.
func (r *Registry) Delete(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return false
	}

	delete(r.accounts, id)

	return true
}

// All returns a snapshot of every account. Order is unspecified.
func (r *Registry) All() []Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]Account, 0, len(r.accounts))

	for _, account := range r.accounts {
		all = append(all, account.clone())
	}

	return all
}

// Transfer debits fromID and credits toID by amount. Preconditions are
// checked in order: from exists, to exists, from has sufficient balance.
// The checks and both mutations happen inside one critical section, so no
// concurrent reader can observe a half-applied transfer and a failed
// transfer leaves every balance untouched.
func (r *Registry) Transfer(fromID, toID int64, amount float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	from, ok := r.accounts[fromID]

	if !ok {
		return false
	}

	to, ok := r.accounts[toID]

	if !ok {
		return false
	}

	if from.Balance < amount {
		return false
	}

	from.Balance -= amount
	to.Balance += amount

	return true
}
