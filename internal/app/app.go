package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/presaleadmin/internal/backend"
	"github.com/GlebRadaev/presaleadmin/internal/chain"
	"github.com/GlebRadaev/presaleadmin/internal/config"
	"github.com/GlebRadaev/presaleadmin/internal/datastore"
	"github.com/GlebRadaev/presaleadmin/internal/handlers"
	"github.com/GlebRadaev/presaleadmin/internal/pg"
	"github.com/GlebRadaev/presaleadmin/internal/repo"
	"github.com/GlebRadaev/presaleadmin/internal/service"
	"github.com/GlebRadaev/presaleadmin/internal/service/transactionservice"
	"github.com/GlebRadaev/presaleadmin/pkg/auth"
	"github.com/GlebRadaev/presaleadmin/pkg/clients"
	"github.com/GlebRadaev/presaleadmin/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg   *config.Config
	api   *handlers.Handlers
	srv   *service.Services
	repo  *repo.Repositories
	store *datastore.Store
	pool  *pgxpool.Pool

	restoreLog func()

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	restoreLog, err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	a.restoreLog = restoreLog

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	wallet, err := newWallet(ctx, cfg)
	if err != nil {
		zap.L().Error("wallet setup failed: ", zap.Error(err))
		return fmt.Errorf("can't set up wallet: %w", err)
	}

	conn := pg.New(pool)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	backendClient := backend.New(cfg, clients.NewHTTPClient())

	a.cfg = cfg
	a.pool = pool
	a.repo = repo.New(conn, txManager)
	a.store = datastore.New(cfg, backendClient)
	a.srv = service.New(cfg, a.repo, backendClient, a.store, wallet, jwtService)
	a.api = handlers.New(cfg, a.srv, jwtService)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.store.Start(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

// newWallet dials the chain when a signer is configured. Without one the
// dashboard still works but transfers are refused.
func newWallet(ctx context.Context, cfg *config.Config) (transactionservice.Wallet, error) {
	if !cfg.Chain.Enabled() {
		zap.L().Warn("chain RPC or signer key not set, token transfers disabled")
		return chain.Disabled{}, nil
	}
	wallet, err := chain.Dial(ctx, cfg.Chain)
	if err != nil {
		return nil, err
	}
	zap.L().Info("wallet ready", zap.String("address", wallet.Address()), zap.Int64("chainID", cfg.Chain.ChainID))
	return wallet, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	a.close()
	return appErr
}

func (a *Application) close() {
	if a.srv != nil {
		a.srv.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
	if a.restoreLog != nil {
		a.restoreLog()
	}
	zap.L().Sync()
}
