package dashboard

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/presaleadmin/internal/dto"
	"github.com/GlebRadaev/presaleadmin/internal/service/dashboardservice"
	"github.com/GlebRadaev/presaleadmin/pkg/utils"
)

//go:generate mockgen -source=dashboard.go -destination=mock_dashboard.go -package=dashboard
type Service interface {
	Overview(ctx context.Context) (*dashboardservice.Dashboard, error)
	Refresh(ctx context.Context) (*dashboardservice.Dashboard, error)
}

type DashboardHandler struct {
	dashboardService Service
}

func New(dashboardService Service) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard godoc
//
//	@Summary		Dashboard overview
//	@Description	Totals, month-over-month changes and the latest transactions
//	@Tags			Dashboard
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.DashboardResponseDTO
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		502	{object}	utils.Response	"Can't load data from backend"
//	@Router			/api/admin/dashboard [get]
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardService.Overview(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Can't load data from backend")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDashboardDTO(dashboard))
}

// Refresh godoc
//
//	@Summary		Reload data
//	@Description	Fetch users and transactions from the backend again and return the new overview
//	@Tags			Dashboard
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.DashboardResponseDTO
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		502	{object}	utils.Response	"Can't load data from backend"
//	@Router			/api/admin/refresh [post]
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardService.Refresh(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Can't load data from backend")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDashboardDTO(dashboard))
}

func toDashboardDTO(d *dashboardservice.Dashboard) dto.DashboardResponseDTO {
	recent := make([]dto.RecentTransactionDTO, 0, len(d.Recent))
	for _, tx := range d.Recent {
		recent = append(recent, dto.RecentTransactionDTO{
			ID:        tx.ID,
			UserEmail: tx.UserEmail,
			Status:    tx.Status,
			AmountUSD: tx.AmountUSD,
			Amount:    dto.FormatUSD(tx.AmountUSD),
			Date:      dto.FormatDate(tx.CreatedAt),
		})
	}

	return dto.DashboardResponseDTO{
		TotalUsers:          d.TotalUsers,
		UserGrowth:          d.UserGrowth,
		UserGrowthLabel:     dto.FormatPercent(d.UserGrowth),
		TotalTransactions:   d.TotalTransactions,
		TransactionChange:   d.TransactionChange,
		TransactionLabel:    dto.FormatPercent(d.TransactionChange),
		PendingTransactions: d.PendingTransactions,
		PendingChange:       d.PendingChange,
		PendingLabel:        dto.FormatPercent(d.PendingChange),
		TotalRevenueUSD:     d.TotalRevenueUSD,
		TotalRevenue:        dto.FormatUSD(d.TotalRevenueUSD),
		RevenueChange:       d.RevenueChange,
		RevenueLabel:        dto.FormatPercent(d.RevenueChange),
		Recent:              recent,
		LoadedAt:            d.LoadedAt,
	}
}
