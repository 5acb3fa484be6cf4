package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"meusaldo/internal/domain/account"
)

// AccountHandler exposes account CRUD.
type AccountHandler struct {
	service *account.Service
	log     zerolog.Logger
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(service *account.Service, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{service: service, log: log}
}

type CreateAccountRequest struct {
	Name           string  `json:"name"`
	InitialBalance float64 `json:"initialBalance"`
	Type           string  `json:"type"`
}

type UpdateAccountRequest struct {
	Name           *string  `json:"name,omitempty"`
	InitialBalance *float64 `json:"initialBalance,omitempty"`
	Type           *string  `json:"type,omitempty"`
}

// HandleAccounts serves GET (list) and POST (create) on /api/accounts.
func (h *AccountHandler) HandleAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		accounts, err := h.service.ListAccounts(r.Context(), userID)
		if err != nil {
			h.log.Error().Err(err).Str("user_id", userID).Msg("failed to list accounts")
			http.Error(w, "Failed to list accounts", http.StatusInternalServerError)
			return
		}
		if accounts == nil {
			accounts = []account.Account{}
		}
		writeJSON(w, http.StatusOK, accounts)

	case http.MethodPost:
		var req CreateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		acc, err := h.service.CreateAccount(r.Context(), userID, account.CreateParams{
			Name:           req.Name,
			InitialBalance: req.InitialBalance,
			Type:           req.Type,
		})
		if err != nil {
			if errors.Is(err, account.ErrInvalidAccountType) || errors.Is(err, account.ErrEmptyName) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			h.log.Error().Err(err).Str("user_id", userID).Msg("failed to create account")
			http.Error(w, "Failed to create account", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, acc)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleAccountByID serves GET, PUT and DELETE on /api/accounts/{id}.
func (h *AccountHandler) HandleAccountByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Account ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		acc, err := h.service.GetAccount(r.Context(), userID, id)
		if err != nil {
			if errors.Is(err, account.ErrAccountNotFound) {
				http.Error(w, "Account not found", http.StatusNotFound)
				return
			}
			h.log.Error().Err(err).Str("user_id", userID).Str("account_id", id).Msg("failed to get account")
			http.Error(w, "Failed to get account", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, acc)

	case http.MethodPut:
		var req UpdateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		acc, err := h.service.UpdateAccount(r.Context(), userID, id, account.UpdateParams{
			Name:           req.Name,
			InitialBalance: req.InitialBalance,
			Type:           req.Type,
		})
		if err != nil {
			switch {
			case errors.Is(err, account.ErrAccountNotFound):
				http.Error(w, "Account not found", http.StatusNotFound)
			case errors.Is(err, account.ErrInvalidAccountType):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				h.log.Error().Err(err).Str("user_id", userID).Str("account_id", id).Msg("failed to update account")
				http.Error(w, "Failed to update account", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusOK, acc)

	case http.MethodDelete:
		if err := h.service.DeleteAccount(r.Context(), userID, id); err != nil {
			if errors.Is(err, account.ErrAccountNotFound) {
				http.Error(w, "Account not found", http.StatusNotFound)
				return
			}
			h.log.Error().Err(err).Str("user_id", userID).Str("account_id", id).Msg("failed to delete account")
			http.Error(w, "Failed to delete account", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
