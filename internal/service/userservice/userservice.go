package userservice

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/presaleadmin/internal/datastore"
	"github.com/GlebRadaev/presaleadmin/internal/domain"
	"github.com/GlebRadaev/presaleadmin/internal/stats"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmptyPatch   = errors.New("nothing to update")
)

//go:generate mockgen -source=userservice.go -destination=mock_userservice.go -package=userservice
type Store interface {
	EnsureLoaded(ctx context.Context) error
	Snapshot() ([]domain.User, []domain.Transaction)
	FindUser(id string) (domain.User, error)
	TransactionsByUser(userID string) []domain.Transaction
	UpdateUserByID(id string, patch domain.UserPatch) (domain.User, error)
	ReplaceUser(user domain.User) error
}

type Backend interface {
	UpdateUserByID(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
}

type Filter struct {
	Search    string
	KYCStatus string
	Role      string
}

type UserWithSummary struct {
	User    domain.User
	Summary stats.UserSummary
}

type UserDetails struct {
	User         domain.User
	Transactions []domain.Transaction
	Summary      stats.UserSummary
}

type Service struct {
	store   Store
	backend Backend
}

func New(store Store, backend Backend) *Service {
	return &Service{
		store:   store,
		backend: backend,
	}
}

// List returns the users matching filter, newest first.
func (s *Service) List(ctx context.Context, filter Filter) ([]UserWithSummary, error) {
	if err := s.store.EnsureLoaded(ctx); err != nil {
		zap.L().Error("can't load snapshot: ", zap.Error(err))
		return nil, err
	}
	users, txs := s.store.Snapshot()

	matched := make([]domain.User, 0, len(users))
	for _, u := range users {
		if filter.matches(u) {
			matched = append(matched, u)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	summaries := stats.UserSummaries(matched, txs)
	result := make([]UserWithSummary, 0, len(matched))
	for i, u := range matched {
		result = append(result, UserWithSummary{User: u, Summary: summaries[i]})
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id string) (*UserDetails, error) {
	if err := s.store.EnsureLoaded(ctx); err != nil {
		zap.L().Error("can't load snapshot: ", zap.Error(err))
		return nil, err
	}
	user, err := s.store.FindUser(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	txs := s.store.TransactionsByUser(id)
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})

	return &UserDetails{
		User:         user,
		Transactions: txs,
		Summary:      stats.SummarizeUser(user, txs),
	}, nil
}

// Update sends the patch to the backend and merges the result into the snapshot.
func (s *Service) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}
	if err := s.store.EnsureLoaded(ctx); err != nil {
		zap.L().Error("can't load snapshot: ", zap.Error(err))
		return nil, err
	}
	if _, err := s.store.FindUser(id); err != nil {
		return nil, ErrUserNotFound
	}

	updated, err := s.backend.UpdateUserByID(ctx, id, patch)
	if err != nil {
		zap.L().Error("can't update user: ", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if updated != nil && updated.ID == id {
		if err := s.store.ReplaceUser(*updated); err == nil {
			return updated, nil
		}
	}

	user, err := s.store.UpdateUserByID(id, patch)
	if err != nil {
		if errors.Is(err, datastore.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	zap.L().Info("user updated", zap.String("id", id))
	return &user, nil
}

func (f Filter) matches(u domain.User) bool {
	if f.KYCStatus != "" && u.KYCStatus != f.KYCStatus {
		return false
	}
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.Name), search) ||
		strings.Contains(strings.ToLower(u.Email), search) ||
		strings.Contains(strings.ToLower(u.WalletAddress), search)
}
