package transactionservice

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/presaleadmin/internal/backend"
	"github.com/GlebRadaev/presaleadmin/internal/chain"
	"github.com/GlebRadaev/presaleadmin/internal/config"
	"github.com/GlebRadaev/presaleadmin/internal/domain"
	"github.com/GlebRadaev/presaleadmin/internal/metrics"
	transferrepo "github.com/GlebRadaev/presaleadmin/internal/repo/transfer-repo"
	"github.com/GlebRadaev/presaleadmin/internal/stats"
	"github.com/GlebRadaev/presaleadmin/pkg/validate"
)

const (
	DefaultTransfersLimit = 50
	MaxTransfersLimit     = 500
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUserNotFound        = errors.New("transaction owner not found")
	ErrNotBuy              = errors.New("only buy transactions can be transferred")
	ErrNotPending          = errors.New("transaction is not pending")
	ErrNoWallet            = errors.New("user has no valid wallet address")
	ErrTransferInProgress  = errors.New("transfer already in progress")
	ErrAlreadyTransferred  = errors.New("tokens already transferred for transaction")
	ErrBackendSync         = errors.New("tokens sent but backend update failed")
	ErrRecordTransfer      = errors.New("can't record transfer before broadcast")
)

//go:generate mockgen -source=transactionservice.go -destination=mock_transactionservice.go -package=transactionservice
type Store interface {
	EnsureLoaded(ctx context.Context) error
	Snapshot() ([]domain.User, []domain.Transaction)
	FindTransaction(id string) (domain.Transaction, error)
	FindUser(id string) (domain.User, error)
	UpdateTransactionByID(id string, patch domain.TransactionPatch) (domain.Transaction, error)
	UpdateUserByID(id string, patch domain.UserPatch) (domain.User, error)
}

type Backend interface {
	TransferTokensToUser(ctx context.Context, req backend.TransferRequest) error
}

type Wallet interface {
	Transfer(ctx context.Context, to, amountToken string, record chain.RecordFunc) (*domain.TransferReceipt, error)
}

type TransferRepo interface {
	Save(ctx context.Context, transfer *domain.TokenTransfer) (*domain.TokenTransfer, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*domain.TokenTransfer, error)
	List(ctx context.Context, limit int) ([]domain.TokenTransfer, error)
	Confirm(ctx context.Context, transactionID string, blockTimestamp int64) error
	Release(ctx context.Context, transactionID string) error
}

type Filter struct {
	Status string
	Type   string
	Search string
}

// TransactionView is a transaction joined with its owner's email.
type TransactionView struct {
	Transaction domain.Transaction
	UserEmail   string
	AmountUSD   float64
}

type BatchResult struct {
	TransactionID string
	Transfer      *domain.TokenTransfer
	Err           error
}

type Service struct {
	store        Store
	backend      Backend
	wallet       Wallet
	transferRepo TransferRepo
	workerPool   WorkerPoolI

	inFlight sync.Map
}

func New(cfg *config.Config, store Store, backend Backend, wallet Wallet, transferRepo TransferRepo) *Service {
	return &Service{
		store:        store,
		backend:      backend,
		wallet:       wallet,
		transferRepo: transferRepo,
		workerPool:   NewWorkerPool(cfg.TransferWorkers),
	}
}

// Close stops the transfer workers.
func (s *Service) Close() {
	s.workerPool.Close()
}

func (s *Service) List(ctx context.Context, filter Filter) ([]TransactionView, error) {
	if err := s.store.EnsureLoaded(ctx); err != nil {
		zap.L().Error("can't load snapshot: ", zap.Error(err))
		return nil, err
	}
	users, txs := s.store.Snapshot()

	emails := make(map[string]string, len(users))
	for _, u := range users {
		emails[u.ID] = u.Email
	}

	views := make([]TransactionView, 0, len(txs))
	for _, tx := range txs {
		email := emails[tx.UserID]
		if !filter.matches(tx, email) {
			continue
		}
		if email == "" {
			email = stats.UnknownUserEmail
		}
		views = append(views, TransactionView{
			Transaction: tx,
			UserEmail:   email,
			AmountUSD:   stats.TransactionValueUSD(tx),
		})
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Transaction.CreatedAt.After(views[j].Transaction.CreatedAt)
	})
	return views, nil
}

// Transfer sends the purchased tokens of a pending buy transaction to its
// owner's wallet, then records the result in the backend and the snapshot.
//
// The audit record is written with the signed hash before the transaction is
// broadcast, so once anything may have been paid a retry stops at
// ErrAlreadyTransferred. The record is released only when the chain shows no
// tokens moved. Work after the guards is detached from ctx cancellation.
func (s *Service) Transfer(ctx context.Context, transactionID, operator string) (*domain.TokenTransfer, error) {
	if err := s.store.EnsureLoaded(ctx); err != nil {
		return nil, err
	}
	tx, err := s.store.FindTransaction(transactionID)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	if tx.Type != domain.TransactionTypeBuy {
		return nil, ErrNotBuy
	}
	if tx.Status != domain.TransactionStatusPending {
		return nil, ErrNotPending
	}
	user, err := s.store.FindUser(tx.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !validate.IsWalletAddress(user.WalletAddress) {
		return nil, ErrNoWallet
	}

	if _, loaded := s.inFlight.LoadOrStore(transactionID, struct{}{}); loaded {
		return nil, ErrTransferInProgress
	}
	defer s.inFlight.Delete(transactionID)

	existing, err := s.transferRepo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyTransferred
	}

	ctx = context.WithoutCancel(ctx)

	transfer := &domain.TokenTransfer{
		TransactionID:  transactionID,
		UserID:         user.ID,
		ReceiptAddress: user.WalletAddress,
		AmountToken:    tx.AmountToken,
		Status:         domain.TransferStatusSent,
		Operator:       operator,
	}
	recorded := false
	receipt, err := s.wallet.Transfer(ctx, user.WalletAddress, tx.AmountToken, func(hash string) error {
		transfer.TxHash = hash
		saved, err := s.transferRepo.Save(ctx, transfer)
		if err != nil {
			if errors.Is(err, transferrepo.ErrAlreadyRecorded) {
				return ErrAlreadyTransferred
			}
			return fmt.Errorf("%w: %v", ErrRecordTransfer, err)
		}
		transfer = saved
		recorded = true
		return nil
	})
	if err != nil {
		metrics.RecordTransfer(metrics.ResultError)
		return s.transferFailed(ctx, transfer, recorded, err)
	}
	metrics.RecordTransfer(metrics.ResultSuccess)

	if err := s.transferRepo.Confirm(ctx, transactionID, receipt.Timestamp); err != nil {
		zap.L().Error("can't confirm token transfer record", zap.String("transactionID", transactionID), zap.String("hash", receipt.Hash), zap.Error(err))
	} else {
		transfer.Status = domain.TransferStatusConfirmed
	}
	transfer.BlockTimestamp = receipt.Timestamp

	err = s.backend.TransferTokensToUser(ctx, backend.TransferRequest{
		TxID:           transactionID,
		Hash:           receipt.Hash,
		Timestamp:      receipt.Timestamp,
		ReceiptAddress: user.WalletAddress,
		UserID:         user.ID,
	})
	if err != nil {
		zap.L().Error("backend transfer update failed", zap.String("transactionID", transactionID), zap.String("hash", receipt.Hash), zap.Error(err))
		return transfer, fmt.Errorf("%w: %s: %v", ErrBackendSync, receipt.Hash, err)
	}

	s.applyTransfer(tx, user, receipt)
	zap.L().Info("tokens transferred", zap.String("transactionID", transactionID), zap.String("hash", receipt.Hash), zap.String("operator", operator))
	return transfer, nil
}

// transferFailed decides what stays recorded after a failed wallet call. A
// transfer that may have been mined keeps its record and is returned with the
// error so the operator gets the hash.
func (s *Service) transferFailed(ctx context.Context, transfer *domain.TokenTransfer, recorded bool, err error) (*domain.TokenTransfer, error) {
	log := zap.L().With(zap.String("transactionID", transfer.TransactionID), zap.String("hash", transfer.TxHash))
	if !recorded {
		log.Error("token transfer failed before broadcast", zap.Error(err))
		return nil, err
	}

	if errors.Is(err, chain.ErrBroadcastFailed) || errors.Is(err, chain.ErrTransferReverted) {
		log.Error("token transfer did not move tokens", zap.Error(err))
		if rerr := s.transferRepo.Release(ctx, transfer.TransactionID); rerr != nil {
			log.Error("can't release token transfer record", zap.Error(rerr))
		}
		return nil, err
	}

	log.Error("token transfer outcome unknown, keeping record", zap.Error(err))
	if !errors.Is(err, chain.ErrTransferUnconfirmed) {
		err = fmt.Errorf("%w: %w", chain.ErrTransferUnconfirmed, err)
	}
	return transfer, err
}

// TransferPending runs Transfer for each id on the worker pool. With no ids
// every pending buy transaction in the snapshot is processed.
func (s *Service) TransferPending(ctx context.Context, ids []string, operator string) ([]BatchResult, error) {
	if len(ids) == 0 {
		if err := s.store.EnsureLoaded(ctx); err != nil {
			return nil, err
		}
		_, txs := s.store.Snapshot()
		for _, tx := range txs {
			if tx.Type == domain.TransactionTypeBuy && tx.Status == domain.TransactionStatusPending {
				ids = append(ids, tx.ID)
			}
		}
	}

	results := make([]BatchResult, len(ids))
	var wg sync.WaitGroup
	var g errgroup.Group
	for i, id := range ids {
		i, id := i, id
		results[i].TransactionID = id

		wg.Add(1)
		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() (err error) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						err = fmt.Errorf("transfer %s panicked: %v", id, r)
						results[i].Err = err
					}
				}()
				transfer, err := s.Transfer(ctx, id, operator)
				results[i].Transfer = transfer
				results[i].Err = err
				return err
			})
			if err != nil {
				results[i].Err = err
				wg.Done()
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	wg.Wait()
	if err != nil {
		zap.L().Error("batch transfer interrupted", zap.Error(err))
	}
	return results, nil
}

func (s *Service) Transfers(ctx context.Context, limit int) ([]domain.TokenTransfer, error) {
	if limit <= 0 {
		limit = DefaultTransfersLimit
	}
	if limit > MaxTransfersLimit {
		limit = MaxTransfersLimit
	}
	transfers, err := s.transferRepo.List(ctx, limit)
	if err != nil {
		zap.L().Error("failed to get transfers", zap.Error(err))
		return nil, err
	}
	return transfers, nil
}

func (s *Service) applyTransfer(tx domain.Transaction, user domain.User, receipt *domain.TransferReceipt) {
	status := domain.TransactionStatusCompleted
	if _, err := s.store.UpdateTransactionByID(tx.ID, domain.TransactionPatch{
		Status:    &status,
		TxHash:    &receipt.Hash,
		Timestamp: &receipt.Timestamp,
	}); err != nil {
		zap.L().Warn("can't update cached transaction", zap.String("transactionID", tx.ID), zap.Error(err))
	}

	balance := addAmounts(user.Balance, tx.AmountToken)
	if _, err := s.store.UpdateUserByID(user.ID, domain.UserPatch{Balance: &balance}); err != nil {
		zap.L().Warn("can't update cached user", zap.String("userID", user.ID), zap.Error(err))
	}
}

func addAmounts(a, b string) string {
	return stats.ParseAmount(a).Add(stats.ParseAmount(b)).String()
}

func (f Filter) matches(tx domain.Transaction, email string) bool {
	if f.Status != "" && tx.Status != f.Status {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(tx.ID), search) ||
		strings.Contains(strings.ToLower(email), search) ||
		strings.Contains(strings.ToLower(tx.TxHash), search)
}
