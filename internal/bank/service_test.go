package bank_test

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/Zmiter88/MiniBank-v1/internal/bank"
	"github.com/google/uuid"
)

func setupService(t *testing.T) bank.Service {
	t.Helper()

	idProvider, err := bank.NewIDProvider(0)

	if err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return bank.New(logger, bank.NewRegistry(), idProvider, bank.NewTimeProvider())
}

func seedAliceAndBob(t *testing.T, service bank.Service) {
	t.Helper()

	err := service.Seed([]bank.Account{
		{ID: 1, Owner: "Alice", Balance: 1000},
		{ID: 2, Owner: "Bob", Balance: 500},
	})

	if err != nil {
		t.Fatal(err)
	}
}

func TestServiceTransferPolicy(t *testing.T) {
	testCases := []struct {
		name       string
		request    bank.TransferRequest
		expectedOK bool
	}{
		{
			name:       "valid transfer",
			request:    bank.TransferRequest{FromID: 1, ToID: 2, Amount: 500},
			expectedOK: true,
		},
		{
			name:       "insufficient balance",
			request:    bank.TransferRequest{FromID: 1, ToID: 2, Amount: 5000},
			expectedOK: false,
		},
		{
			name:       "negative amount is rejected even with sufficient balance",
			request:    bank.TransferRequest{FromID: 1, ToID: 2, Amount: -10},
			expectedOK: false,
		},
		{
			name:       "zero amount succeeds",
			request:    bank.TransferRequest{FromID: 1, ToID: 2, Amount: 0},
			expectedOK: true,
		},
		{
			name:       "self transfer succeeds",
			request:    bank.TransferRequest{FromID: 1, ToID: 1, Amount: 100},
			expectedOK: true,
		},
		{
			name:       "unknown sender",
			request:    bank.TransferRequest{FromID: 99, ToID: 2, Amount: 10},
			expectedOK: false,
		},
		{
			name:       "unknown receiver",
			request:    bank.TransferRequest{FromID: 1, ToID: 99, Amount: 10},
			expectedOK: false,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			service := setupService(t)

			seedAliceAndBob(t, service)

			totalBefore := service.TotalBalance()

			ok := service.Transfer(testCase.request)

			if ok != testCase.expectedOK {
				t.Fatalf("expected ok=%v, got %v", testCase.expectedOK, ok)
			}

			if !ok {
				// a failed transfer must leave every balance bit-identical
				alice, err := service.Account(1)

				if err != nil {
					t.Fatal(err)
				}

				bob, err := service.Account(2)

				if err != nil {
					t.Fatal(err)
				}

				if alice.Balance != 1000 || bob.Balance != 500 {
					t.Fatalf("failed transfer changed balances: alice=%v bob=%v", alice.Balance, bob.Balance)
				}
			}

			if total := service.TotalBalance(); total != totalBefore {
				t.Fatalf("total balance changed: %v -> %v", totalBefore, total)
			}
		})
	}
}

func TestServiceTransferMovesExactAmount(t *testing.T) {
	service := setupService(t)

	seedAliceAndBob(t, service)

	if !service.Transfer(bank.TransferRequest{FromID: 1, ToID: 2, Amount: 500}) {
		t.Fatal("expected transfer to succeed")
	}

	alice, err := service.Account(1)

	if err != nil {
		t.Fatal(err)
	}

	bob, err := service.Account(2)

	if err != nil {
		t.Fatal(err)
	}

	if alice.Balance != 500 {
		t.Fatalf("expected sender balance 500, got %v", alice.Balance)
	}

	if bob.Balance != 1000 {
		t.Fatalf("expected receiver balance 1000, got %v", bob.Balance)
	}

	if total := service.TotalBalance(); total != 1500 {
		t.Fatalf("expected total 1500, got %v", total)
	}
}

func TestServiceSeed(t *testing.T) {
	service := setupService(t)

	owner := "owner_" + uuid.NewString()

	err := service.Seed([]bank.Account{
		{ID: 1, Owner: owner, Balance: 100},
		{ID: 2, Owner: owner, Balance: 200},
	})

	if err != nil {
		t.Fatal(err)
	}

	if got := len(service.AccountsByOwner(owner)); got != 2 {
		t.Fatalf("expected 2 seeded accounts, got %d", got)
	}

	err = service.Seed([]bank.Account{{ID: 1, Owner: owner, Balance: 1}})

	if !errors.Is(err, bank.ErrAccountAlreadyExists) {
		t.Fatalf("expected %v, got %v", bank.ErrAccountAlreadyExists, err)
	}
}

func TestServiceAddDeleteLifecycle(t *testing.T) {
	service := setupService(t)

	account := bank.Account{ID: 7, Owner: "Charlie", Balance: 2000}

	if err := service.AddAccount(account); err != nil {
		t.Fatal(err)
	}

	got, err := service.Account(7)

	if err != nil {
		t.Fatal(err)
	}

	if got.Owner != "Charlie" || got.Balance != 2000 {
		t.Fatalf("unexpected account: %+v", got)
	}

	if !service.DeleteAccount(7) {
		t.Fatal("expected delete to report true")
	}

	if _, err := service.Account(7); !errors.Is(err, bank.ErrAccountNotFound) {
		t.Fatalf("expected %v, got %v", bank.ErrAccountNotFound, err)
	}

	if service.DeleteAccount(7) {
		t.Fatal("expected second delete to report false")
	}
}

func TestServiceConcurrentTransfersPreserveTotal(t *testing.T) {
	service := setupService(t)

	seedAliceAndBob(t, service)

	const workers = 8
	const transfersPerWorker = 200

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func(w int) {
			defer wg.Done()

			for i := 0; i < transfersPerWorker; i++ {
				if w%2 == 0 {
					service.Transfer(bank.TransferRequest{FromID: 1, ToID: 2, Amount: 10})
				} else {
					service.Transfer(bank.TransferRequest{FromID: 2, ToID: 1, Amount: 10})
				}
			}
		}(w)
	}

	wg.Wait()

	if total := service.TotalBalance(); total != 1500 {
		t.Fatalf("expected total 1500 after concurrent transfers, got %v", total)
	}

	alice, err := service.Account(1)

	if err != nil {
		t.Fatal(err)
	}

	bob, err := service.Account(2)

	if err != nil {
		t.Fatal(err)
	}

	if alice.Balance < 0 || bob.Balance < 0 {
		t.Fatalf("sufficient-funds check was bypassed: alice=%v bob=%v", alice.Balance, bob.Balance)
	}
}
