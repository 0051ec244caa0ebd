package stats

import (
	"sort"
	"time"

	"github.com/GlebRadaev/presaleadmin/internal/domain"
)

const (
	RecentTransactionsLimit = 3
	UnknownUserEmail        = "Unknown"
)

// UserSummary is the per-user count and USD spend of revenue-eligible purchases.
type UserSummary struct {
	UserID           string
	TransactionCount int
	TotalSpentUSD    float64
}

// SummarizeUser counts the user's transactions and their spend. Transactions
// of other users are ignored.
func SummarizeUser(user domain.User, txs []domain.Transaction) UserSummary {
	owned := make([]domain.Transaction, 0)
	for _, tx := range txs {
		if tx.UserID == user.ID {
			owned = append(owned, tx)
		}
	}
	return UserSummary{
		UserID:           user.ID,
		TransactionCount: len(owned),
		TotalSpentUSD:    TotalSpentUSD(owned),
	}
}

// UserSummaries returns one summary per user, in the order of users.
func UserSummaries(users []domain.User, txs []domain.Transaction) []UserSummary {
	byUser := GroupByUser(txs)

	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		owned := byUser[u.ID]
		summaries = append(summaries, UserSummary{
			UserID:           u.ID,
			TransactionCount: len(owned),
			TotalSpentUSD:    TotalSpentUSD(owned),
		})
	}
	return summaries
}

// GroupByUser indexes transactions by owner id, keeping input order.
func GroupByUser(txs []domain.Transaction) map[string][]domain.Transaction {
	byUser := make(map[string][]domain.Transaction)
	for _, tx := range txs {
		byUser[tx.UserID] = append(byUser[tx.UserID], tx)
	}
	return byUser
}

// RecentTransaction is one row of the dashboard feed.
type RecentTransaction struct {
	ID        string
	UserEmail string
	Status    string
	AmountUSD float64
	CreatedAt time.Time
}

// DashboardOverview holds the dashboard cards. Percent changes are month over month.
type DashboardOverview struct {
	TotalUsers          int
	UserGrowth          float64
	TotalTransactions   int
	TransactionChange   float64
	PendingTransactions int
	PendingChange       float64
	TotalRevenueUSD     float64
	RevenueChange       float64
	Recent              []RecentTransaction
}

// Overview computes the dashboard cards and the recent-transactions feed.
func Overview(users []domain.User, txs []domain.Transaction, now time.Time) DashboardOverview {
	pending := make([]domain.Transaction, 0)
	for _, tx := range txs {
		if tx.Status == domain.TransactionStatusPending {
			pending = append(pending, tx)
		}
	}

	return DashboardOverview{
		TotalUsers:          len(users),
		UserGrowth:          UserGrowth(users, now),
		TotalTransactions:   len(txs),
		TransactionChange:   MonthlyTransactionChange(txs, now),
		PendingTransactions: len(pending),
		PendingChange:       MonthlyTransactionChange(pending, now),
		TotalRevenueUSD:     TotalRevenueUSD(txs),
		RevenueChange:       MonthlyRevenueChange(txs, now),
		Recent:              RecentTransactions(users, txs, RecentTransactionsLimit),
	}
}

// RecentTransactions takes the newest limit transactions and keeps the pending
// and completed ones, so the feed may hold fewer than limit entries.
func RecentTransactions(users []domain.User, txs []domain.Transaction, limit int) []RecentTransaction {
	sorted := make([]domain.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	emails := make(map[string]string, len(users))
	for _, u := range users {
		emails[u.ID] = u.Email
	}

	recent := make([]RecentTransaction, 0, len(sorted))
	for _, tx := range sorted {
		if tx.Status != domain.TransactionStatusPending && tx.Status != domain.TransactionStatusCompleted {
			continue
		}
		email := emails[tx.UserID]
		if email == "" {
			email = UnknownUserEmail
		}
		recent = append(recent, RecentTransaction{
			ID:        tx.ID,
			UserEmail: email,
			Status:    tx.Status,
			AmountUSD: TransactionValueUSD(tx),
			CreatedAt: tx.CreatedAt,
		})
	}
	return recent
}
