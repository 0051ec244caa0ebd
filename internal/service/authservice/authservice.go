package authservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/presaleadmin/internal/backend"
	"github.com/GlebRadaev/presaleadmin/internal/domain"
	"github.com/GlebRadaev/presaleadmin/pkg/auth"
)

const tokenTTL = 12 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAdmin           = errors.New("account is not an admin")
)

//go:generate mockgen -source=authservice.go -destination=mock_authservice.go -package=authservice
type Backend interface {
	Login(ctx context.Context, email, password string) (*backend.LoginResult, error)
	FetchMe(ctx context.Context, id string) (*domain.Operator, error)
	SetAuthToken(token string)
}

// Session is what a successful login hands back to the dashboard.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Operator  domain.Operator
}

type Service struct {
	backend    Backend
	jwtService auth.JWTServiceInterface
}

func New(backend Backend, jwtService auth.JWTServiceInterface) *Service {
	return &Service{
		backend:    backend,
		jwtService: jwtService,
	}
}

// Login checks the credentials against the backend and keeps its session
// token for later backend calls. Only admins get a dashboard token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	result, err := s.backend.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) || errors.Is(err, backend.ErrRejected) {
			zap.L().Info("login rejected by backend", zap.String("email", email), zap.Error(err))
			return nil, ErrInvalidCredentials
		}
		zap.L().Error("can't login to backend: ", zap.Error(err))
		return nil, err
	}
	if result.Operator.Role != domain.RoleAdmin {
		zap.L().Info("non-admin login attempt", zap.String("email", email))
		return nil, ErrNotAdmin
	}

	expiresAt := time.Now().Add(tokenTTL)
	token, err := s.jwtService.GenerateJWT(auth.Operator{
		UserID: result.Operator.ID,
		Email:  result.Operator.Email,
		Role:   result.Operator.Role,
	}, expiresAt)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return nil, err
	}

	s.backend.SetAuthToken(result.Token)
	zap.L().Info("operator logged in", zap.String("email", result.Operator.Email))

	return &Session{Token: token, ExpiresAt: expiresAt, Operator: result.Operator}, nil
}

// Logout drops the backend session token.
func (s *Service) Logout(ctx context.Context) {
	s.backend.SetAuthToken("")
	zap.L().Info("operator logged out")
}

func (s *Service) Me(ctx context.Context, id string) (*domain.Operator, error) {
	operator, err := s.backend.FetchMe(ctx, id)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		zap.L().Error("can't fetch operator profile: ", zap.Error(err))
		return nil, err
	}
	return operator, nil
}
