package dto

import (
	"time"

	"github.com/GlebRadaev/presaleadmin/internal/domain"
	"github.com/GlebRadaev/presaleadmin/internal/stats"
)

type TransactionResponseDTO struct {
	ID            string    `json:"id" example:"65a1f0"`
	Type          string    `json:"type" example:"buy"`
	UserID        string    `json:"user_id" example:"64f1c0a2b3"`
	UserEmail     string    `json:"user_email,omitempty" example:"jane@example.com"`
	Status        string    `json:"status" example:"pending"`
	Amount        int64     `json:"amount" example:"120000"`
	Currency      string    `json:"currency" example:"usd"`
	AmountFiat    string    `json:"amount_fiat" example:"$1,200"`
	AmountToken   string    `json:"amount_token" example:"6000000"`
	TokenPriceUSD string    `json:"token_price_usd" example:"0.0002"`
	AmountUSD     float64   `json:"amount_usd" example:"1200"`
	TxHash        string    `json:"tx_hash,omitempty"`
	TxHashShort   string    `json:"tx_hash_short" example:"0x9f3a...7c21"`
	Timestamp     int64     `json:"timestamp,omitempty"`
	Date          string    `json:"date" example:"2024-01-25 14:30"`
	CreatedAt     time.Time `json:"created_at" example:"2024-01-25T14:30:00Z"`
}

type TransferBatchRequestDTO struct {
	IDs []string `json:"ids" validate:"max=100,dive,required"`
}

type TransferResponseDTO struct {
	ID             string    `json:"id" example:"2f1d8c9e-7a55-4f3e-9b1a-0c2d3e4f5a6b"`
	TransactionID  string    `json:"transaction_id" example:"65a1f0"`
	UserID         string    `json:"user_id" example:"64f1c0a2b3"`
	ReceiptAddress string    `json:"receipt_address" example:"0x52e4cfa1bd6a7c3e7d4f9e8b0c1a2b3c4d5e9a1f"`
	AmountToken    string    `json:"amount_token" example:"6000000"`
	TxHash         string    `json:"tx_hash"`
	BlockTimestamp int64     `json:"block_timestamp" example:"1706193000"`
	Status         string    `json:"status" enums:"sent,confirmed" example:"confirmed"`
	Operator       string    `json:"operator" example:"admin@example.com"`
	CreatedAt      time.Time `json:"created_at" example:"2024-01-25T14:30:00Z"`
}

// TransferSyncErrorDTO is returned when tokens may have left the wallet but the
// backend did not accept the update, or the chain outcome is still unknown.
type TransferSyncErrorDTO struct {
	Message  string              `json:"message"`
	Transfer TransferResponseDTO `json:"transfer"`
}

type BatchResultDTO struct {
	TransactionID string               `json:"transaction_id"`
	Success       bool                 `json:"success"`
	Error         string               `json:"error,omitempty"`
	Transfer      *TransferResponseDTO `json:"transfer,omitempty"`
}

// NewTransactionResponse renders a transaction for the dashboard tables.
func NewTransactionResponse(tx domain.Transaction, userEmail string) TransactionResponseDTO {
	amountUSD := stats.TransactionValueUSD(tx)
	return TransactionResponseDTO{
		ID:            tx.ID,
		Type:          tx.Type,
		UserID:        tx.UserID,
		UserEmail:     userEmail,
		Status:        tx.Status,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		AmountFiat:    FormatFiat(tx.Amount, tx.Currency),
		AmountToken:   tx.AmountToken,
		TokenPriceUSD: tx.TokenPriceUSD,
		AmountUSD:     amountUSD,
		TxHash:        tx.TxHash,
		TxHashShort:   Truncate(tx.TxHash),
		Timestamp:     tx.Timestamp,
		Date:          FormatDate(tx.CreatedAt),
		CreatedAt:     tx.CreatedAt,
	}
}

func NewTransferResponse(t domain.TokenTransfer) TransferResponseDTO {
	return TransferResponseDTO{
		ID:             t.ID,
		TransactionID:  t.TransactionID,
		UserID:         t.UserID,
		ReceiptAddress: t.ReceiptAddress,
		AmountToken:    t.AmountToken,
		TxHash:         t.TxHash,
		BlockTimestamp: t.BlockTimestamp,
		Status:         t.Status,
		Operator:       t.Operator,
		CreatedAt:      t.CreatedAt,
	}
}
