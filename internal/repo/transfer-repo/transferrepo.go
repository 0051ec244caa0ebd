package transferrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/GlebRadaev/presaleadmin/internal/domain"
	"github.com/GlebRadaev/presaleadmin/internal/pg"
)

const uniqueViolation = "23505"

var (
	ErrAlreadyRecorded = errors.New("transfer already recorded for transaction")
	ErrNotRecorded     = errors.New("no pending transfer recorded for transaction")
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) Save(ctx context.Context, transfer *domain.TokenTransfer) (*domain.TokenTransfer, error) {
	query := `
		INSERT INTO token_transfers (id, transaction_id, user_id, receipt_address, amount_token, tx_hash, block_timestamp, status, operator)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	saved := *transfer
	saved.ID = uuid.NewString()
	if saved.Status == "" {
		saved.Status = domain.TransferStatusSent
	}

	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query, saved.ID, saved.TransactionID, saved.UserID, saved.ReceiptAddress,
			saved.AmountToken, saved.TxHash, saved.BlockTimestamp, saved.Status, saved.Operator)
		return row.Scan(&saved.CreatedAt)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrAlreadyRecorded
		}
		zap.L().Error("can't save token transfer", zap.Error(err))
		return nil, err
	}
	return &saved, nil
}

func (r *Repository) FindByTransactionID(ctx context.Context, transactionID string) (*domain.TokenTransfer, error) {
	query := `
		SELECT id, transaction_id, user_id, receipt_address, amount_token, tx_hash, block_timestamp, status, operator, created_at
		FROM token_transfers
		WHERE transaction_id = $1
	`
	var t domain.TokenTransfer
	err := r.db.QueryRow(ctx, query, transactionID).Scan(&t.ID, &t.TransactionID, &t.UserID, &t.ReceiptAddress,
		&t.AmountToken, &t.TxHash, &t.BlockTimestamp, &t.Status, &t.Operator, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find token transfer", zap.Error(err))
		return nil, err
	}
	return &t, nil
}

func (r *Repository) List(ctx context.Context, limit int) ([]domain.TokenTransfer, error) {
	query := `
		SELECT id, transaction_id, user_id, receipt_address, amount_token, tx_hash, block_timestamp, status, operator, created_at
		FROM token_transfers
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		zap.L().Error("failed to fetch token transfers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	transfers := []domain.TokenTransfer{}
	for rows.Next() {
		var t domain.TokenTransfer
		err := rows.Scan(&t.ID, &t.TransactionID, &t.UserID, &t.ReceiptAddress,
			&t.AmountToken, &t.TxHash, &t.BlockTimestamp, &t.Status, &t.Operator, &t.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan token transfer row", zap.Error(err))
			return nil, err
		}
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}

// Confirm marks a sent transfer as mined at blockTimestamp.
func (r *Repository) Confirm(ctx context.Context, transactionID string, blockTimestamp int64) error {
	query := `
		UPDATE token_transfers
		SET status = $2, block_timestamp = $3
		WHERE transaction_id = $1 AND status = $4
	`
	tag, err := r.db.Exec(ctx, query, transactionID, domain.TransferStatusConfirmed, blockTimestamp, domain.TransferStatusSent)
	if err != nil {
		zap.L().Error("can't confirm token transfer", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotRecorded
	}
	return nil
}

// Release drops a sent record whose transaction never moved tokens, so the
// transfer can be retried.
func (r *Repository) Release(ctx context.Context, transactionID string) error {
	query := `
		DELETE FROM token_transfers
		WHERE transaction_id = $1 AND status = $2
	`
	tag, err := r.db.Exec(ctx, query, transactionID, domain.TransferStatusSent)
	if err != nil {
		zap.L().Error("can't release token transfer", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotRecorded
	}
	return nil
}
