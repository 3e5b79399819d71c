package bank

import (
	"fmt"
	"log/slog"
)

// Service we can split methods into separate interfaces if needed but keeping it simple for now.
type Service interface {
	Accounts() []Account
	Account(id int64) (Account, error)
	AccountsByOwner(owner string) []Account
	AccountsWithBalanceGreaterThan(threshold float64) []Account
	TotalBalance() float64
	AddAccount(account Account) error
	Transfer(request TransferRequest) bool
	DeleteAccount(id int64) bool
	Seed(accounts []Account) error
}

type service struct {
	logger       *slog.Logger
	registry     *Registry
	idProvider   IDProvider
	timeProvider TimeProvider
}

func New(logger *slog.Logger, registry *Registry, idProvider IDProvider, timeProvider TimeProvider) Service {
	return &service{
		logger:       logger,
		registry:     registry,
		idProvider:   idProvider,
		timeProvider: timeProvider,
	}
}

func (s *service) Accounts() []Account {
	return s.registry.All()
}

func (s *service) Account(id int64) (Account, error) {
	return s.registry.ByID(id)
}

func (s *service) AccountsByOwner(owner string) []Account {
	return s.registry.ByOwner(owner)
}

func (s *service) AccountsWithBalanceGreaterThan(threshold float64) []Account {
	return s.registry.WithBalanceGreaterThan(threshold)
}

func (s *service) TotalBalance() float64 {
	return s.registry.TotalBalance()
}

func (s *service) AddAccount(account Account) error {
	err := s.registry.Add(account)

	if err != nil {
		return err
	}

	s.logger.Info("account added", "accountID", account.ID, "owner", account.Owner)

	return nil
}

// Transfer rejects negative amounts outright; the source balance check in
// the registry would otherwise let a negative transfer credit the sender.
// Every attempt gets a trace id so debit and credit can be correlated in
// the logs.
func (s *service) Transfer(request TransferRequest) bool {
	transferID := s.idProvider.NextID()

	if request.Amount < 0 {
		s.logger.Warn("transfer rejected",
			"transferID", transferID,
			"fromID", request.FromID,
			"toID", request.ToID,
			"reason", "negative amount",
		)
		return false
	}

	ok := s.registry.Transfer(request.FromID, request.ToID, request.Amount)

	if !ok {
		s.logger.Info("transfer failed",
			"transferID", transferID,
			"fromID", request.FromID,
			"toID", request.ToID,
		)
		return false
	}

	s.logger.Info("transfer successful",
		"transferID", transferID,
		"fromID", request.FromID,
		"toID", request.ToID,
		"txTime", s.timeProvider.NowUTC(),
	)

	return true
}

func (s *service) DeleteAccount(id int64) bool {
	removed := s.registry.Delete(id)

	if removed {
		s.logger.Info("account deleted", "accountID", id)
	}

	return removed
}

// Seed inserts the given accounts into an empty-ish registry. It is the
// hook used by tests and by the optional dev seed file; normal startup
// never calls it.
func (s *service) Seed(accounts []Account) error {
	for _, account := range accounts {
		err := s.registry.Add(account)

		if err != nil {
			return fmt.Errorf("seed account %d failed: %w", account.ID, err)
		}
	}

	return nil
}
