// Package stats derives dashboard metrics from in-memory user and transaction
// collections. Every function is pure: callers pass the data and the current
// time, nothing here performs I/O.
package stats

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/presaleadmin/internal/domain"
)

// FallbackTokenPriceUSD is used when a transaction carries no positive token price.
const FallbackTokenPriceUSD = "0.0002"

// MaxAmountExponent bounds the decimal exponent accepted from backend records.
const MaxAmountExponent = 64

var fallbackTokenPrice = decimal.RequireFromString(FallbackTokenPriceUSD)

// PercentChange compares a this-month value against last month.
// A zero base counts as a full 100% increase when anything happened this month,
// and as no change otherwise.
func PercentChange(thisMonth, lastMonth float64) float64 {
	switch {
	case lastMonth > 0:
		return (thisMonth - lastMonth) / lastMonth * 100
	case thisMonth > 0:
		return 100
	default:
		return 0
	}
}

// Windows holds the calendar boundaries used for month-over-month metrics,
// computed in the location of the time passed to MonthWindows.
type Windows struct {
	Now       time.Time
	ThisStart time.Time
	LastStart time.Time
}

// MonthWindows returns the current month up to now and the whole previous month.
func MonthWindows(now time.Time) Windows {
	thisStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Windows{
		Now:       now,
		ThisStart: thisStart,
		LastStart: thisStart.AddDate(0, -1, 0),
	}
}

// InThisMonth reports whether t falls between the first day of the current month and now.
func (w Windows) InThisMonth(t time.Time) bool {
	return !t.Before(w.ThisStart) && !t.After(w.Now)
}

// InLastMonth reports whether t falls in the previous calendar month.
func (w Windows) InLastMonth(t time.Time) bool {
	return !t.Before(w.LastStart) && t.Before(w.ThisStart)
}

// UserGrowth is the month-over-month change in registrations.
func UserGrowth(users []domain.User, now time.Time) float64 {
	w := MonthWindows(now)

	var thisMonth, lastMonth int
	for _, u := range users {
		switch {
		case w.InThisMonth(u.CreatedAt):
			thisMonth++
		case w.InLastMonth(u.CreatedAt):
			lastMonth++
		}
	}

	return PercentChange(float64(thisMonth), float64(lastMonth))
}

// MonthlyTransactionChange is the month-over-month change in transaction count,
// rounded to two decimals.
func MonthlyTransactionChange(txs []domain.Transaction, now time.Time) float64 {
	w := MonthWindows(now)

	var thisMonth, lastMonth int
	for _, tx := range txs {
		switch {
		case w.InThisMonth(tx.CreatedAt):
			thisMonth++
		case w.InLastMonth(tx.CreatedAt):
			lastMonth++
		}
	}

	return round2(PercentChange(float64(thisMonth), float64(lastMonth)))
}

// MonthlyRevenueChange compares the token volume of revenue-eligible transactions
// created this month against last month.
func MonthlyRevenueChange(txs []domain.Transaction, now time.Time) float64 {
	w := MonthWindows(now)

	thisMonth, lastMonth := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		if !IsRevenueEligible(tx) {
			continue
		}
		switch {
		case w.InThisMonth(tx.CreatedAt):
			thisMonth = thisMonth.Add(ParseAmount(tx.AmountToken))
		case w.InLastMonth(tx.CreatedAt):
			lastMonth = lastMonth.Add(ParseAmount(tx.AmountToken))
		}
	}

	return PercentChange(thisMonth.InexactFloat64(), lastMonth.InexactFloat64())
}

// IsRevenueEligible reports whether a transaction contributes to revenue and spend:
// only purchases that are pending or completed count.
func IsRevenueEligible(tx domain.Transaction) bool {
	if tx.Type != domain.TransactionTypeBuy {
		return false
	}
	return tx.Status == domain.TransactionStatusPending || tx.Status == domain.TransactionStatusCompleted
}

// UnitPriceUSD returns the transaction's token price, or the fallback price when
// the recorded one is missing, malformed or not positive.
func UnitPriceUSD(tx domain.Transaction) decimal.Decimal {
	price := ParseAmount(tx.TokenPriceUSD)
	if price.IsPositive() {
		return price
	}
	return fallbackTokenPrice
}

// TransactionValueUSD is the dollar value of a single transaction regardless of
// its type or status.
func TransactionValueUSD(tx domain.Transaction) float64 {
	return valueUSD(tx).InexactFloat64()
}

// TotalRevenueUSD sums the dollar value of all revenue-eligible transactions.
func TotalRevenueUSD(txs []domain.Transaction) float64 {
	return revenueUSD(txs).InexactFloat64()
}

// TotalSpentUSD applies the revenue rule to one user's transactions.
func TotalSpentUSD(txs []domain.Transaction) float64 {
	return revenueUSD(txs).InexactFloat64()
}

func revenueUSD(txs []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if IsRevenueEligible(tx) {
			total = total.Add(valueUSD(tx))
		}
	}
	return total
}

func valueUSD(tx domain.Transaction) decimal.Decimal {
	return ParseAmount(tx.AmountToken).Mul(UnitPriceUSD(tx))
}

// ParseAmount reads a decimal token or price string. Malformed input and
// exponents outside ±MaxAmountExponent read as zero, so a single bad record
// never poisons a total or overflows decimal arithmetic.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if exp := d.Exponent(); exp < -MaxAmountExponent || exp > MaxAmountExponent {
		return decimal.Zero
	}
	return d
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
