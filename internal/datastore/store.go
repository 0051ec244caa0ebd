package datastore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/presaleadmin/internal/config"
	"github.com/GlebRadaev/presaleadmin/internal/domain"
	"github.com/GlebRadaev/presaleadmin/internal/metrics"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

//go:generate mockgen -source=store.go -destination=mock_store.go -package=datastore
type Backend interface {
	FetchAllUsers(ctx context.Context) ([]domain.User, error)
	FetchAllTransactions(ctx context.Context) ([]domain.Transaction, error)
	HasAuthToken() bool
}

// Store keeps the last users/transactions snapshot loaded from the backend.
// It is a cache: the backend stays the owner of both collections.
type Store struct {
	backend        Backend
	updateInterval time.Duration

	mu           sync.RWMutex
	users        []domain.User
	transactions []domain.Transaction
	loadedAt     time.Time
}

func New(cfg *config.Config, backend Backend) *Store {
	return &Store{
		backend:        backend,
		updateInterval: cfg.RefreshInterval,
		users:          []domain.User{},
		transactions:   []domain.Transaction{},
	}
}

// Reload replaces the snapshot with fresh copies of both collections.
// On error the previous snapshot is kept.
func (s *Store) Reload(ctx context.Context) error {
	var (
		users        []domain.User
		transactions []domain.Transaction
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.backend.FetchAllUsers(gCtx)
		if err != nil {
			return fmt.Errorf("fetch users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		transactions, err = s.backend.FetchAllTransactions(gCtx)
		if err != nil {
			return fmt.Errorf("fetch transactions: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		metrics.RecordSnapshotReload(err, 0, 0)
		return err
	}

	if users == nil {
		users = []domain.User{}
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}

	s.mu.Lock()
	s.users = users
	s.transactions = transactions
	s.loadedAt = time.Now()
	s.mu.Unlock()

	metrics.RecordSnapshotReload(nil, len(users), len(transactions))
	zap.L().Debug("snapshot reloaded", zap.Int("users", len(users)), zap.Int("transactions", len(transactions)))
	return nil
}

// EnsureLoaded performs the first reload if no snapshot has been taken yet.
func (s *Store) EnsureLoaded(ctx context.Context) error {
	if !s.LoadedAt().IsZero() {
		return nil
	}
	return s.Reload(ctx)
}

func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.User(nil), s.users...)
}

func (s *Store) Transactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Transaction(nil), s.transactions...)
}

// Snapshot returns both collections taken under the same lock.
func (s *Store) Snapshot() ([]domain.User, []domain.Transaction) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.User(nil), s.users...), append([]domain.Transaction(nil), s.transactions...)
}

func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

func (s *Store) FindUser(id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, ErrUserNotFound
}

func (s *Store) FindTransaction(id string) (domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tx := range s.transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return domain.Transaction{}, ErrTransactionNotFound
}

func (s *Store) TransactionsByUser(userID string) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txs := []domain.Transaction{}
	for _, tx := range s.transactions {
		if tx.UserID == userID {
			txs = append(txs, tx)
		}
	}
	return txs
}

// UpdateUserByID merges patch into the cached user and returns the result.
func (s *Store) UpdateUserByID(id string, patch domain.UserPatch) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users[i] = patch.Apply(u)
			return s.users[i], nil
		}
	}
	return domain.User{}, ErrUserNotFound
}

// ReplaceUser swaps the cached user for the record echoed by the backend.
func (s *Store) ReplaceUser(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == user.ID {
			s.users[i] = user
			return nil
		}
	}
	return ErrUserNotFound
}

func (s *Store) UpdateTransactionByID(id string, patch domain.TransactionPatch) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tx := range s.transactions {
		if tx.ID == id {
			s.transactions[i] = patch.Apply(tx)
			return s.transactions[i], nil
		}
	}
	return domain.Transaction{}, ErrTransactionNotFound
}

// Start launches the periodic refresh. A zero interval disables it.
func (s *Store) Start(ctx context.Context) {
	if s.updateInterval <= 0 {
		zap.L().Info("Snapshot refresh disabled")
		return
	}
	zap.L().Info("Snapshot refresher started", zap.Duration("interval", s.updateInterval))
	go s.run(ctx)
}

func (s *Store) run(ctx context.Context) {
	s.refresh(ctx)

	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping snapshot refresher")
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *Store) refresh(ctx context.Context) {
	if !s.backend.HasAuthToken() {
		zap.L().Debug("no backend session, skipping snapshot reload")
		return
	}
	if err := s.Reload(ctx); err != nil && ctx.Err() == nil {
		zap.L().Error("Failed to reload snapshot", zap.Error(err))
	}
}
