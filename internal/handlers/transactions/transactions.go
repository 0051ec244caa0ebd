package transactions

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/presaleadmin/internal/chain"
	"github.com/GlebRadaev/presaleadmin/internal/domain"
	"github.com/GlebRadaev/presaleadmin/internal/dto"
	"github.com/GlebRadaev/presaleadmin/internal/service/transactionservice"
	"github.com/GlebRadaev/presaleadmin/pkg/auth"
	"github.com/GlebRadaev/presaleadmin/pkg/utils"
	"github.com/GlebRadaev/presaleadmin/pkg/validate"
)

//go:generate mockgen -source=transactions.go -destination=mock_transactions.go -package=transactions
type Service interface {
	List(ctx context.Context, filter transactionservice.Filter) ([]transactionservice.TransactionView, error)
	Transfer(ctx context.Context, transactionID, operator string) (*domain.TokenTransfer, error)
	TransferPending(ctx context.Context, ids []string, operator string) ([]transactionservice.BatchResult, error)
	Transfers(ctx context.Context, limit int) ([]domain.TokenTransfer, error)
}

type TransactionHandler struct {
	transactionService Service
}

func New(transactionService Service) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// GetTransactions godoc
//
//	@Summary		List transactions
//	@Description	Transactions with their owner's email, newest first
//	@Tags			Transactions
//	@Produce		json
//	@Security		BearerAuth
//	@Param			status	query		string	false	"Status"	Enums(pending, completed, failed)
//	@Param			type	query		string	false	"Type"		Enums(buy, withdraw)
//	@Param			search	query		string	false	"Substring of id, user email or tx hash"
//	@Success		200		{array}		dto.TransactionResponseDTO
//	@Failure		401		{object}	utils.Response	"Unauthorized"
//	@Failure		502		{object}	utils.Response	"Can't load data from backend"
//	@Router			/api/admin/transactions [get]
func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	views, err := h.transactionService.List(r.Context(), transactionservice.Filter{
		Status: query.Get("status"),
		Type:   query.Get("type"),
		Search: query.Get("search"),
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Can't load data from backend")
		return
	}

	response := make([]dto.TransactionResponseDTO, 0, len(views))
	for _, v := range views {
		response = append(response, dto.NewTransactionResponse(v.Transaction, v.UserEmail))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Transfer godoc
//
//	@Summary		Send tokens for a transaction
//	@Description	Transfer the purchased tokens of a pending buy transaction to the user's wallet
//	@Tags			Transactions
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Transaction ID"
//	@Success		200	{object}	dto.TransferResponseDTO
//	@Failure		401	{object}	utils.Response				"Unauthorized"
//	@Failure		404	{object}	utils.Response				"Transaction or user not found"
//	@Failure		409	{object}	utils.Response				"Transaction can't be transferred"
//	@Failure		422	{object}	utils.Response				"User has no valid wallet"
//	@Failure		502	{object}	dto.TransferSyncErrorDTO	"Tokens sent but backend update failed, or transfer outcome unknown"
//	@Failure		503	{object}	utils.Response				"Wallet unavailable"
//	@Router			/api/admin/transactions/{id}/transfer [post]
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	transfer, err := h.transactionService.Transfer(r.Context(), id, operatorFrom(r))
	if err != nil {
		if transfer != nil && (errors.Is(err, transactionservice.ErrBackendSync) || errors.Is(err, chain.ErrTransferUnconfirmed)) {
			utils.RespondWithJSON(w, http.StatusBadGateway, dto.TransferSyncErrorDTO{
				Message:  err.Error(),
				Transfer: dto.NewTransferResponse(*transfer),
			})
			return
		}
		utils.RespondWithError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewTransferResponse(*transfer))
}

// TransferBatch godoc
//
//	@Summary		Send tokens for several transactions
//	@Description	Transfer tokens for the given transactions, or for every pending buy when ids is empty
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		dto.TransferBatchRequestDTO	false	"Transaction IDs"
//	@Success		200		{array}		dto.BatchResultDTO
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		401		{object}	utils.Response				"Unauthorized"
//	@Failure		422		{object}	utils.ValidationResponse	"Validation failed"
//	@Failure		502		{object}	utils.Response				"Can't load data from backend"
//	@Router			/api/admin/transactions/transfer [post]
func (h *TransactionHandler) TransferBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferBatchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields := validate.Struct(req); fields != nil {
		utils.RespondWithValidationError(w, fields)
		return
	}

	results, err := h.transactionService.TransferPending(r.Context(), req.IDs, operatorFrom(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Can't load data from backend")
		return
	}

	response := make([]dto.BatchResultDTO, 0, len(results))
	for _, res := range results {
		item := dto.BatchResultDTO{
			TransactionID: res.TransactionID,
			Success:       res.Err == nil,
		}
		if res.Err != nil {
			item.Error = res.Err.Error()
		}
		if res.Transfer != nil {
			transfer := dto.NewTransferResponse(*res.Transfer)
			item.Transfer = &transfer
		}
		response = append(response, item)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetTransfers godoc
//
//	@Summary		Transfer audit log
//	@Description	Token transfers made from the dashboard, newest first
//	@Tags			Transactions
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query		int	false	"Max records (default 50, max 500)"
//	@Success		200		{array}		dto.TransferResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid limit"
//	@Failure		401		{object}	utils.Response	"Unauthorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/transfers [get]
func (h *TransactionHandler) GetTransfers(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	transfers, err := h.transactionService.Transfers(r.Context(), limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.TransferResponseDTO, 0, len(transfers))
	for _, t := range transfers {
		response = append(response, dto.NewTransferResponse(t))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func operatorFrom(r *http.Request) string {
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		return claims.Email
	}
	return ""
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, transactionservice.ErrTransactionNotFound),
		errors.Is(err, transactionservice.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, transactionservice.ErrNotBuy),
		errors.Is(err, transactionservice.ErrNotPending),
		errors.Is(err, transactionservice.ErrTransferInProgress),
		errors.Is(err, transactionservice.ErrAlreadyTransferred):
		return http.StatusConflict
	case errors.Is(err, transactionservice.ErrNoWallet),
		errors.Is(err, chain.ErrInvalidAddress),
		errors.Is(err, chain.ErrInvalidAmount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, chain.ErrWalletDisabled),
		errors.Is(err, chain.ErrInsufficientTokenBalance),
		errors.Is(err, chain.ErrInsufficientGas):
		return http.StatusServiceUnavailable
	case errors.Is(err, chain.ErrTransferReverted),
		errors.Is(err, chain.ErrBroadcastFailed),
		errors.Is(err, chain.ErrTransferUnconfirmed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
