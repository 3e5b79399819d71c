package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// API maps the fixed REST surface onto the service. Response bodies for the
// account and transfer endpoints are contractual plain text and must not be
// reworded.
type API struct {
	logger       *slog.Logger
	service      Service
	timeProvider TimeProvider
	startedAt    time.Time
}

func NewAPI(logger *slog.Logger, service Service, timeProvider TimeProvider) *API {
	return &API{
		logger:       logger,
		service:      service,
		timeProvider: timeProvider,
		startedAt:    timeProvider.NowUTC(),
	}
}

func (a *API) RegisterRoutes(router chi.Router) {
	router.Route("/accounts", func(r chi.Router) {
		r.Get("/", a.listAccounts)
		r.Post("/", a.addAccount)
		r.Get("/totalBalance", a.totalBalance)
		r.Post("/transfer", a.transfer)
		r.Get("/owner/{owner}", a.accountsByOwner)
		r.Get("/balance/greater/{amount}", a.accountsWithBalanceGreaterThan)
		r.Get("/{id}", a.getAccount)
		r.Delete("/{id}", a.deleteAccount)
	})
	router.Get("/health", a.health)
}

func (a *API) listAccounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, a.service.Accounts())
}

func (a *API) getAccount(w http.ResponseWriter, r *http.Request) {
	id, err := parseAccountID(r)

	if err != nil {
		http.Error(w, "invalid account ID", http.StatusBadRequest)
		return
	}

	account, err := a.service.Account(id)

	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			writeText(w, 404, fmt.Sprintf("Account with ID %d not found", id))
			return
		}

		a.logger.Error("get account failed", "error", err)
		http.Error(w, "unknown error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, 200, account)
}

func (a *API) accountsByOwner(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")

	writeJSON(w, 200, a.service.AccountsByOwner(owner))
}

func (a *API) accountsWithBalanceGreaterThan(w http.ResponseWriter, r *http.Request) {
	amountStr := chi.URLParam(r, "amount")

	amount, err := strconv.ParseFloat(amountStr, 64)

	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}

	writeJSON(w, 200, a.service.AccountsWithBalanceGreaterThan(amount))
}

func (a *API) totalBalance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, a.service.TotalBalance())
}

func (a *API) addAccount(w http.ResponseWriter, r *http.Request) {
	var account Account
	err := json.NewDecoder(r.Body).Decode(&account)

	if err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	err = a.service.AddAccount(account)

	if err != nil {
		if errors.Is(err, ErrAccountAlreadyExists) {
			writeText(w, 400, fmt.Sprintf("Account with ID %d already exists", account.ID))
			return
		}

		a.logger.Error("add account failed", "error", err)
		http.Error(w, "unknown error", http.StatusInternalServerError)
		return
	}

	writeText(w, 200, "Account added")
}

func (a *API) transfer(w http.ResponseWriter, r *http.Request) {
	var request TransferRequest
	err := json.NewDecoder(r.Body).Decode(&request)

	if err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if a.service.Transfer(request) {
		writeText(w, 200, "Transfer successful")
		return
	}

	writeText(w, 200, "Transfer failed")
}

func (a *API) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := parseAccountID(r)

	if err != nil {
		http.Error(w, "invalid account ID", http.StatusBadRequest)
		return
	}

	if a.service.DeleteAccount(id) {
		writeText(w, 200, "Account deleted")
		return
	}

	writeText(w, 200, "Account not found")
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]string{
		"status": "ok",
		"uptime": a.timeProvider.NowUTC().Sub(a.startedAt).String(),
	})
}

func parseAccountID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)

	_, _ = w.Write([]byte(body))
}
