package transactions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/presaleadmin/internal/chain"
	"github.com/GlebRadaev/presaleadmin/internal/domain"
	"github.com/GlebRadaev/presaleadmin/internal/dto"
	"github.com/GlebRadaev/presaleadmin/internal/service/transactionservice"
	"github.com/GlebRadaev/presaleadmin/pkg/auth"
	"github.com/GlebRadaev/presaleadmin/pkg/utils"
)

func NewMock(t *testing.T) (*TransactionHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func authorized(r *http.Request) *http.Request {
	claims := &auth.Claims{UserID: "a1", Email: "admin@example.com", Role: domain.RoleAdmin}
	return r.WithContext(context.WithValue(r.Context(), auth.ClaimsKey, claims))
}

func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

var transfer = domain.TokenTransfer{
	ID:             "2f1d8c9e-7a55-4f3e-9b1a-0c2d3e4f5a6b",
	TransactionID:  "t1",
	UserID:         "u1",
	ReceiptAddress: "0x52e4cfa1bd6a7c3e7d4f9e8b0c1a2b3c4d5e9a1f",
	AmountToken:    "100",
	TxHash:         "0xabc",
	BlockTimestamp: 1706193000,
	Operator:       "admin@example.com",
	CreatedAt:      time.Date(2024, time.January, 25, 14, 30, 0, 0, time.UTC),
}

func TestGetTransactionsHandler(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Filtered list", func(t *testing.T) {
		service.EXPECT().
			List(gomock.Any(), transactionservice.Filter{Status: "pending", Type: "buy", Search: "jane"}).
			Return([]transactionservice.TransactionView{{
				Transaction: domain.Transaction{
					ID: "t1", Type: domain.TransactionTypeBuy, UserID: "u1", Status: domain.TransactionStatusPending,
					Amount: 120000, Currency: "usd", AmountToken: "6000000", TokenPriceUSD: "0.0002",
				},
				UserEmail: "jane@example.com",
				AmountUSD: 1200,
			}}, nil)

		req := httptest.NewRequest("GET", "/api/admin/transactions?status=pending&type=buy&search=jane", nil)
		rr := httptest.NewRecorder()

		handler.GetTransactions(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp []dto.TransactionResponseDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "jane@example.com", resp[0].UserEmail)
		assert.Equal(t, "$1,200", resp[0].AmountFiat)
		assert.InDelta(t, 1200, resp[0].AmountUSD, 1e-9)
	})

	t.Run("Backend failure", func(t *testing.T) {
		service.EXPECT().List(gomock.Any(), transactionservice.Filter{}).Return(nil, errors.New("backend down"))

		req := httptest.NewRequest("GET", "/api/admin/transactions", nil)
		rr := httptest.NewRecorder()

		handler.GetTransactions(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})
}

func TestTransferHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful transfer",
			prepareMock: func() {
				service.EXPECT().Transfer(gomock.Any(), "t1", "admin@example.com").Return(&transfer, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Unknown transaction",
			prepareMock: func() {
				service.EXPECT().Transfer(gomock.Any(), "t1", "admin@example.com").Return(nil, transactionservice.ErrTransactionNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "transaction not found",
		},
		{
			name: "Not pending",
			prepareMock: func() {
				service.EXPECT().Transfer(gomock.Any(), "t1", "admin@example.com").Return(nil, transactionservice.ErrNotPending)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "transaction is not pending",
		},
		{
			name: "Already in flight",
			prepareMock: func() {
				service.EXPECT().Transfer(gomock.Any(), "t1", "admin@example.com").Return(nil, transactionservice.ErrTransferInProgress)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "transfer already in progress",
		},
		{
			name: "No wallet",
			prepareMock: func() {
				service.EXPECT().Transfer(gomock.Any(), "t1", "admin@example.com").Return(nil, transactionservice.ErrNoWallet)
			},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "user has no valid wallet address",
		},
		{
			name: "Wallet disabled",
			prepareMock: func() {
				service.EXPECT().Transfer(gomock.Any(), "t1", "admin@example.com").Return(nil, chain.ErrWalletDisabled)
			},
			expectedCode:  http.StatusServiceUnavailable,
			expectedError: "on-chain transfers are not configured",
		},
		{
			name: "Reverted",
			prepareMock: func() {
				service.EXPECT().Transfer(gomock.Any(), "t1", "admin@example.com").
					Return(nil, fmt.Errorf("%w: 0xabc", chain.ErrTransferReverted))
			},
			expectedCode:  http.StatusBadGateway,
			expectedError: "transfer reverted: 0xabc",
		},
		{
			name: "Unexpected error",
			prepareMock: func() {
				service.EXPECT().Transfer(gomock.Any(), "t1", "admin@example.com").Return(nil, errors.New("boom"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authorized(withID(httptest.NewRequest("POST", "/api/admin/transactions/t1/transfer", nil), "t1"))
			rr := httptest.NewRecorder()

			handler.Transfer(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Message)
				return
			}

			var resp dto.TransferResponseDTO
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "0xabc", resp.TxHash)
			assert.Equal(t, "admin@example.com", resp.Operator)
		})
	}
}

func TestTransferHandlerBackendSync(t *testing.T) {
	handler, service := NewMock(t)
	syncErr := fmt.Errorf("%w: 0xabc: timeout", transactionservice.ErrBackendSync)
	service.EXPECT().Transfer(gomock.Any(), "t1", "admin@example.com").Return(&transfer, syncErr)

	req := authorized(withID(httptest.NewRequest("POST", "/api/admin/transactions/t1/transfer", nil), "t1"))
	rr := httptest.NewRecorder()

	handler.Transfer(rr, req)

	require.Equal(t, http.StatusBadGateway, rr.Code)
	var resp dto.TransferSyncErrorDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, syncErr.Error(), resp.Message)
	assert.Equal(t, "0xabc", resp.Transfer.TxHash)
}

func TestTransferHandlerUnconfirmed(t *testing.T) {
	handler, service := NewMock(t)
	pending := transfer
	pending.Status = domain.TransferStatusSent
	unconfirmed := fmt.Errorf("%w: waiting for 0xabc: %w", chain.ErrTransferUnconfirmed, context.DeadlineExceeded)
	service.EXPECT().Transfer(gomock.Any(), "t1", "admin@example.com").Return(&pending, unconfirmed)

	req := authorized(withID(httptest.NewRequest("POST", "/api/admin/transactions/t1/transfer", nil), "t1"))
	rr := httptest.NewRecorder()

	handler.Transfer(rr, req)

	require.Equal(t, http.StatusBadGateway, rr.Code)
	var resp dto.TransferSyncErrorDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, unconfirmed.Error(), resp.Message)
	assert.Equal(t, domain.TransferStatusSent, resp.Transfer.Status)
	assert.Equal(t, "0xabc", resp.Transfer.TxHash)
}

func TestStatusForChainOutcome(t *testing.T) {
	assert.Equal(t, http.StatusBadGateway, statusFor(fmt.Errorf("%w: nonce too low", chain.ErrBroadcastFailed)))
	assert.Equal(t, http.StatusBadGateway, statusFor(chain.ErrTransferUnconfirmed))
	assert.Equal(t, http.StatusInternalServerError, statusFor(transactionservice.ErrRecordTransfer))
}

func TestTransferBatchHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         io.Reader
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "Selected transactions",
			body: bytes.NewReader([]byte(`{"ids":["t1","t2"]}`)),
			prepareMock: func() {
				service.EXPECT().
					TransferPending(gomock.Any(), []string{"t1", "t2"}, "admin@example.com").
					Return([]transactionservice.BatchResult{
						{TransactionID: "t1", Transfer: &transfer},
						{TransactionID: "t2", Err: transactionservice.ErrNotPending},
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name: "Empty body transfers every pending buy",
			body: http.NoBody,
			prepareMock: func() {
				service.EXPECT().
					TransferPending(gomock.Any(), gomock.Nil(), "admin@example.com").
					Return([]transactionservice.BatchResult{}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  0,
		},
		{
			name: "Snapshot unavailable",
			body: http.NoBody,
			prepareMock: func() {
				service.EXPECT().
					TransferPending(gomock.Any(), gomock.Nil(), "admin@example.com").
					Return(nil, errors.New("backend down"))
			},
			expectedCode: http.StatusBadGateway,
		},
		{
			name:         "Invalid request body",
			body:         bytes.NewReader([]byte(`{invalid`)),
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Blank id",
			body:         bytes.NewReader([]byte(`{"ids":["t1",""]}`)),
			prepareMock:  func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authorized(httptest.NewRequest("POST", "/api/admin/transactions/transfer", tt.body))
			rr := httptest.NewRecorder()

			handler.TransferBatch(rr, req)

			require.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode != http.StatusOK {
				return
			}

			var resp []dto.BatchResultDTO
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			require.Len(t, resp, tt.expectedLen)
			if tt.expectedLen == 2 {
				assert.True(t, resp[0].Success)
				require.NotNil(t, resp[0].Transfer)
				assert.Equal(t, "0xabc", resp[0].Transfer.TxHash)
				assert.False(t, resp[1].Success)
				assert.Equal(t, "transaction is not pending", resp[1].Error)
				assert.Nil(t, resp[1].Transfer)
			}
		})
	}
}

func TestGetTransfersHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		url          string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Default limit",
			url:  "/api/admin/transfers",
			prepareMock: func() {
				service.EXPECT().Transfers(gomock.Any(), 0).Return([]domain.TokenTransfer{transfer}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Explicit limit",
			url:  "/api/admin/transfers?limit=10",
			prepareMock: func() {
				service.EXPECT().Transfers(gomock.Any(), 10).Return([]domain.TokenTransfer{}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid limit",
			url:          "/api/admin/transfers?limit=ten",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Repository failure",
			url:  "/api/admin/transfers",
			prepareMock: func() {
				service.EXPECT().Transfers(gomock.Any(), 0).Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("GET", tt.url, nil)
			rr := httptest.NewRecorder()

			handler.GetTransfers(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
