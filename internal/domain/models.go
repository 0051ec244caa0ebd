package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	KYCPending  = "pending"
	KYCVerified = "verified"
	KYCRejected = "rejected"
)

const (
	TransactionTypeBuy      = "buy"
	TransactionTypeWithdraw = "withdraw"
)

const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// User is a presale account as served by the backend. Balance is a decimal
// token amount kept as a string.
type User struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"emailVerified"`
	ReferralCode  string    `json:"referralCode"`
	ReferredBy    string    `json:"referredBy"`
	WalletType    string    `json:"walletType"`
	Balance       string    `json:"balance"`
	WalletAddress string    `json:"walletAddress"`
	IsCryptoUser  bool      `json:"isCryptoUser"`
	KYCStatus     string    `json:"kycStatus"`
	SignedOption  string    `json:"signedOption"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Transaction is a token purchase or withdrawal. Amount is in fiat minor units,
// AmountToken and TokenPriceUSD are decimal strings.
type Transaction struct {
	ID            string    `json:"_id"`
	Type          string    `json:"type"`
	UserID        string    `json:"userId"`
	Status        string    `json:"status"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	AmountToken   string    `json:"amountToken"`
	TokenPriceUSD string    `json:"tokenPriceUSD"`
	TxHash        string    `json:"txHash,omitempty"`
	Timestamp     int64     `json:"timestamp,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TransferReceipt is what the chain returns once a token transfer is mined.
type TransferReceipt struct {
	Hash      string
	Timestamp int64
}

// Audit record states. A sent record is written before broadcasting and
// blocks any further transfer for the same transaction.
const (
	TransferStatusSent      = "sent"
	TransferStatusConfirmed = "confirmed"
)

// TokenTransfer is an audit record of a transfer triggered by an operator.
type TokenTransfer struct {
	ID             string    `db:"id"`
	TransactionID  string    `db:"transaction_id"`
	UserID         string    `db:"user_id"`
	ReceiptAddress string    `db:"receipt_address"`
	AmountToken    string    `db:"amount_token"`
	TxHash         string    `db:"tx_hash"`
	BlockTimestamp int64     `db:"block_timestamp"`
	Status         string    `db:"status"`
	Operator       string    `db:"operator"`
	CreatedAt      time.Time `db:"created_at"`
}

// Operator is the authenticated dashboard user.
type Operator struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
