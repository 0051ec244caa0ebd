package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	_ "github.com/GlebRadaev/presaleadmin/docs"
	"github.com/GlebRadaev/presaleadmin/internal/config"
	"github.com/GlebRadaev/presaleadmin/internal/handlers/auth"
	"github.com/GlebRadaev/presaleadmin/internal/handlers/dashboard"
	"github.com/GlebRadaev/presaleadmin/internal/handlers/transactions"
	"github.com/GlebRadaev/presaleadmin/internal/handlers/users"
	"github.com/GlebRadaev/presaleadmin/internal/service"
	pkgauth "github.com/GlebRadaev/presaleadmin/pkg/auth"
)

const origin = "http://localhost:5173"

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		AuthService:        auth.NewMockService(ctrl),
		DashboardService:   dashboard.NewMockService(ctrl),
		UserService:        users.NewMockService(ctrl),
		TransactionService: transactions.NewMockService(ctrl),
	}

	h := New(&config.Config{CORSOrigins: []string{origin}}, services, pkgauth.NewMockJWTServiceInterface(ctrl))
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.Equal(t, []string{origin}, h.corsOrigins)
}

func newRouter(t *testing.T) (chi.Router, *pkgauth.MockJWTServiceInterface) {
	ctrl := gomock.NewController(t)

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockDashboardHandler := NewMockDashboardHandler(ctrl)
	mockUserHandler := NewMockUserHandler(ctrl)
	mockTransactionHandler := NewMockTransactionHandler(ctrl)
	jwtService := pkgauth.NewMockJWTServiceInterface(ctrl)

	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Logout(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Me(gomock.Any(), gomock.Any()).AnyTimes()
	mockDashboardHandler.EXPECT().GetDashboard(gomock.Any(), gomock.Any()).AnyTimes()
	mockDashboardHandler.EXPECT().Refresh(gomock.Any(), gomock.Any()).AnyTimes()
	mockUserHandler.EXPECT().GetUsers(gomock.Any(), gomock.Any()).AnyTimes()
	mockUserHandler.EXPECT().GetUser(gomock.Any(), gomock.Any()).AnyTimes()
	mockUserHandler.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).AnyTimes()
	mockTransactionHandler.EXPECT().GetTransactions(gomock.Any(), gomock.Any()).AnyTimes()
	mockTransactionHandler.EXPECT().Transfer(gomock.Any(), gomock.Any()).AnyTimes()
	mockTransactionHandler.EXPECT().TransferBatch(gomock.Any(), gomock.Any()).AnyTimes()
	mockTransactionHandler.EXPECT().GetTransfers(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:        mockAuthHandler,
		DashboardHandler:   mockDashboardHandler,
		UserHandler:        mockUserHandler,
		TransactionHandler: mockTransactionHandler,
		jwtService:         jwtService,
		corsOrigins:        []string{origin},
	}

	router := chi.NewRouter()
	h.InitRoutes(router)
	return router, jwtService
}

var adminRoutes = []struct {
	method string
	url    string
}{
	{"POST", "/api/admin/logout"},
	{"GET", "/api/admin/me"},
	{"GET", "/api/admin/dashboard"},
	{"POST", "/api/admin/refresh"},
	{"GET", "/api/admin/users"},
	{"GET", "/api/admin/users/u1"},
	{"PATCH", "/api/admin/users/u1"},
	{"GET", "/api/admin/transactions"},
	{"POST", "/api/admin/transactions/transfer"},
	{"POST", "/api/admin/transactions/t1/transfer"},
	{"GET", "/api/admin/transfers"},
}

func TestInitRoutes(t *testing.T) {
	router, _ := newRouter(t)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/admin/login", http.StatusOK},
		{"GET", "/health", http.StatusOK},
		{"GET", "/metrics", http.StatusOK},
		{"GET", "/api/admin/unknown", http.StatusNotFound},
	}
	for _, route := range adminRoutes {
		tests = append(tests, struct {
			method string
			url    string
			status int
		}{route.method, route.url, http.StatusUnauthorized})
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestInitRoutesAuthorized(t *testing.T) {
	router, jwtService := newRouter(t)
	jwtService.EXPECT().
		ValidateToken("admin-token").
		Return(&pkgauth.Claims{UserID: "a1", Email: "admin@example.com", Role: pkgauth.RoleAdmin}, nil).
		AnyTimes()
	jwtService.EXPECT().
		ValidateToken("user-token").
		Return(&pkgauth.Claims{UserID: "u1", Email: "user@example.com", Role: "user"}, nil).
		AnyTimes()

	for _, route := range adminRoutes {
		t.Run(route.method+" "+route.url, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.url, nil)
			req.Header.Set("Authorization", "Bearer admin-token")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}

	t.Run("non-admin token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/admin/dashboard", nil)
		req.Header.Set("Authorization", "Bearer user-token")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest("OPTIONS", "/api/admin/login", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"))
}
