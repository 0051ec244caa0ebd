package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/presaleadmin/docs"
	"github.com/GlebRadaev/presaleadmin/internal/config"
	authhandlers "github.com/GlebRadaev/presaleadmin/internal/handlers/auth"
	dashboardhandlers "github.com/GlebRadaev/presaleadmin/internal/handlers/dashboard"
	transactionhandlers "github.com/GlebRadaev/presaleadmin/internal/handlers/transactions"
	userhandlers "github.com/GlebRadaev/presaleadmin/internal/handlers/users"
	"github.com/GlebRadaev/presaleadmin/internal/metrics"
	"github.com/GlebRadaev/presaleadmin/internal/service"
	"github.com/GlebRadaev/presaleadmin/pkg/auth"
	"github.com/GlebRadaev/presaleadmin/pkg/utils"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers
type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type DashboardHandler interface {
	GetDashboard(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
}

type UserHandler interface {
	GetUsers(w http.ResponseWriter, r *http.Request)
	GetUser(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
}

type TransactionHandler interface {
	GetTransactions(w http.ResponseWriter, r *http.Request)
	Transfer(w http.ResponseWriter, r *http.Request)
	TransferBatch(w http.ResponseWriter, r *http.Request)
	GetTransfers(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler        AuthHandler
	DashboardHandler   DashboardHandler
	UserHandler        UserHandler
	TransactionHandler TransactionHandler

	jwtService  auth.JWTServiceInterface
	corsOrigins []string
}

func New(cfg *config.Config, s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		AuthHandler:        authhandlers.New(s.AuthService),
		DashboardHandler:   dashboardhandlers.New(s.DashboardService),
		UserHandler:        userhandlers.New(s.UserService),
		TransactionHandler: transactionhandlers.New(s.TransactionService),
		jwtService:         jwtService,
		corsOrigins:        cfg.CORSOrigins,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		metrics.Middleware,
		cors.Handler(cors.Options{
			AllowedOrigins:   h.corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Authorization"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)
	r.Get("/health", health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(h.jwtService))
			r.Post("/logout", h.AuthHandler.Logout)
			r.Get("/me", h.AuthHandler.Me)

			r.Get("/dashboard", h.DashboardHandler.GetDashboard)
			r.Post("/refresh", h.DashboardHandler.Refresh)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.UserHandler.GetUsers)
				r.Get("/{id}", h.UserHandler.GetUser)
				r.Patch("/{id}", h.UserHandler.UpdateUser)
			})
			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", h.TransactionHandler.GetTransactions)
				r.Post("/transfer", h.TransactionHandler.TransferBatch)
				r.Post("/{id}/transfer", h.TransactionHandler.Transfer)
			})
			r.Get("/transfers", h.TransactionHandler.GetTransfers)
		})
	})

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "ok"})
}
