package dto

import "time"

// DashboardResponseDTO carries the raw card values next to their display strings.
type DashboardResponseDTO struct {
	TotalUsers          int                    `json:"total_users" example:"1520"`
	UserGrowth          float64                `json:"user_growth" example:"12.5"`
	UserGrowthLabel     string                 `json:"user_growth_label" example:"+12.50%"`
	TotalTransactions   int                    `json:"total_transactions" example:"320"`
	TransactionChange   float64                `json:"transaction_change" example:"-4.2"`
	TransactionLabel    string                 `json:"transaction_change_label" example:"-4.20%"`
	PendingTransactions int                    `json:"pending_transactions" example:"17"`
	PendingChange       float64                `json:"pending_change" example:"100"`
	PendingLabel        string                 `json:"pending_change_label" example:"+100.00%"`
	TotalRevenueUSD     float64                `json:"total_revenue_usd" example:"2500.4"`
	TotalRevenue        string                 `json:"total_revenue" example:"$2,500.4"`
	RevenueChange       float64                `json:"revenue_change" example:"8"`
	RevenueLabel        string                 `json:"revenue_change_label" example:"+8.00%"`
	Recent              []RecentTransactionDTO `json:"recent_transactions"`
	LoadedAt            time.Time              `json:"loaded_at" example:"2024-01-25T14:30:00Z"`
}

type RecentTransactionDTO struct {
	ID        string  `json:"id" example:"65a1f0"`
	UserEmail string  `json:"user_email" example:"user@example.com"`
	Status    string  `json:"status" example:"pending"`
	AmountUSD float64 `json:"amount_usd" example:"1200"`
	Amount    string  `json:"amount" example:"$1,200"`
	Date      string  `json:"date" example:"2024-01-25 14:30"`
}
