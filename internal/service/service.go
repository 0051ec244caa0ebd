package service

import (
	"github.com/GlebRadaev/presaleadmin/internal/backend"
	"github.com/GlebRadaev/presaleadmin/internal/config"
	"github.com/GlebRadaev/presaleadmin/internal/datastore"
	"github.com/GlebRadaev/presaleadmin/internal/handlers/auth"
	"github.com/GlebRadaev/presaleadmin/internal/handlers/dashboard"
	"github.com/GlebRadaev/presaleadmin/internal/handlers/transactions"
	"github.com/GlebRadaev/presaleadmin/internal/handlers/users"
	"github.com/GlebRadaev/presaleadmin/internal/repo"
	"github.com/GlebRadaev/presaleadmin/internal/service/authservice"
	"github.com/GlebRadaev/presaleadmin/internal/service/dashboardservice"
	"github.com/GlebRadaev/presaleadmin/internal/service/transactionservice"
	"github.com/GlebRadaev/presaleadmin/internal/service/userservice"
	pkgauth "github.com/GlebRadaev/presaleadmin/pkg/auth"
)

type Services struct {
	AuthService        auth.Service
	DashboardService   dashboard.Service
	UserService        users.Service
	TransactionService transactions.Service

	transactionService *transactionservice.Service
}

func New(
	cfg *config.Config,
	repo *repo.Repositories,
	client *backend.Client,
	store *datastore.Store,
	wallet transactionservice.Wallet,
	jwtService pkgauth.JWTServiceInterface,
) *Services {
	transactionService := transactionservice.New(cfg, store, client, wallet, repo.TransferRepo)

	return &Services{
		AuthService:        authservice.New(client, jwtService),
		DashboardService:   dashboardservice.New(store),
		UserService:        userservice.New(store, client),
		TransactionService: transactionService,
		transactionService: transactionService,
	}
}

// Close releases the transfer workers.
func (s *Services) Close() {
	s.transactionService.Close()
}
