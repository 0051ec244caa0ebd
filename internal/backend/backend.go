package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GlebRadaev/presaleadmin/internal/config"
	"github.com/GlebRadaev/presaleadmin/internal/domain"
	"github.com/GlebRadaev/presaleadmin/internal/metrics"
	"github.com/GlebRadaev/presaleadmin/pkg/clients"
)

const (
	LoginPath        = "/auth/login"
	FetchMePath      = "/auth/me"
	UsersPath        = "/users"
	UserByIDPath     = "/users/"
	TransactionsPath = "/transactions"
	TransferPath     = "/transactions/transfer"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

var (
	ErrUnauthorized     = errors.New("backend rejected credentials")
	ErrRejected         = errors.New("backend rejected request")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrRateLimited      = errors.New("backend rate limit exceeded")
)

type envelope struct {
	OK      *bool           `json:"ok"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type account struct {
	ID    string `json:"id"`
	OID   string `json:"_id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (a account) operator() domain.Operator {
	id := a.ID
	if id == "" {
		id = a.OID
	}
	return domain.Operator{ID: id, Email: a.Email, Name: a.Name, Role: a.Role}
}

type LoginResult struct {
	Operator domain.Operator
	Token    string
}

type TransferRequest struct {
	TxID           string `json:"txId"`
	Hash           string `json:"hash"`
	Timestamp      int64  `json:"timestamp"`
	ReceiptAddress string `json:"receiptAddress"`
	UserID         string `json:"userId"`
}

type Client struct {
	url           string
	client        clients.HTTPClientI
	limiter       *rate.Limiter
	retryInterval time.Duration

	mu    sync.RWMutex
	token string
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	limit := rate.Inf
	if cfg.BackendRPS > 0 {
		limit = rate.Limit(cfg.BackendRPS)
	}
	return &Client{
		url:           cfg.BackendAddress,
		client:        client,
		limiter:       rate.NewLimiter(limit, 1),
		retryInterval: retryInterval,
		token:         cfg.BackendToken,
	}
}

// SetAuthToken replaces the session token sent to the backend; an empty token clears it.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) HasAuthToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	payload := map[string]string{"email": email, "password": password}

	var data struct {
		User  account `json:"user"`
		Token string  `json:"token"`
	}
	if err := c.call(ctx, http.MethodPost, LoginPath, LoginPath, payload, false, &data); err != nil {
		return nil, err
	}
	return &LoginResult{Operator: data.User.operator(), Token: data.Token}, nil
}

func (c *Client) FetchMe(ctx context.Context, id string) (*domain.Operator, error) {
	var data struct {
		User account `json:"user"`
	}
	if err := c.call(ctx, http.MethodPost, FetchMePath, FetchMePath, map[string]string{"id": id}, false, &data); err != nil {
		return nil, err
	}
	operator := data.User.operator()
	return &operator, nil
}

func (c *Client) FetchAllUsers(ctx context.Context) ([]domain.User, error) {
	var data struct {
		Users []domain.User `json:"users"`
	}
	if err := c.call(ctx, http.MethodGet, UsersPath, UsersPath, nil, true, &data); err != nil {
		return nil, err
	}
	if data.Users == nil {
		return []domain.User{}, nil
	}
	return data.Users, nil
}

func (c *Client) FetchAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var data struct {
		Transactions []domain.Transaction `json:"transactions"`
	}
	if err := c.call(ctx, http.MethodGet, TransactionsPath, TransactionsPath, nil, true, &data); err != nil {
		return nil, err
	}
	if data.Transactions == nil {
		return []domain.Transaction{}, nil
	}
	return data.Transactions, nil
}

// UpdateUserByID sends a partial update. The returned user is nil when the
// backend does not echo the updated record.
func (c *Client) UpdateUserByID(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	payload := struct {
		UpdatingFields domain.UserPatch `json:"updatingFields"`
	}{UpdatingFields: patch}

	var data struct {
		User *domain.User `json:"user"`
	}
	if err := c.call(ctx, http.MethodPatch, UserByIDPath+id, UserByIDPath+"{id}", payload, false, &data); err != nil {
		return nil, err
	}
	return data.User, nil
}

func (c *Client) TransferTokensToUser(ctx context.Context, req TransferRequest) error {
	return c.call(ctx, http.MethodPost, TransferPath, TransferPath, req, false, nil)
}

func (c *Client) call(ctx context.Context, method, path, route string, payload any, retry bool, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("can't encode request body: %w", err)
		}
	}

	attempts := 1
	if retry {
		attempts = maxRetries
	}

	url := c.url + path
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		start := time.Now()
		statusCode, respBody, respHeaders, err := c.client.Send(ctx, method, url, c.headers(), body)
		metrics.RecordBackendRequest(method, route, statusCode, time.Since(start))

		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if attempt < attempts {
				zap.L().Warn("backend request failed, retrying", zap.String("route", route), zap.Int("attempt", attempt), zap.Error(err))
				if err := sleep(ctx, c.retryInterval*time.Duration(attempt)); err != nil {
					return err
				}
				continue
			}
			return fmt.Errorf("%s %s failed after %d attempts: %w", method, route, attempt, err)
		}

		switch {
		case statusCode == http.StatusTooManyRequests:
			if attempt < attempts {
				wait := c.retryAfter(respHeaders, attempt)
				zap.L().Warn("backend rate limit detected, retrying", zap.String("route", route), zap.Int("attempt", attempt), zap.Duration("retryAfter", wait))
				if err := sleep(ctx, wait); err != nil {
					return err
				}
				continue
			}
			return ErrRateLimited
		case statusCode >= http.StatusInternalServerError:
			if attempt < attempts {
				zap.L().Warn("backend server error, retrying", zap.String("route", route), zap.Int("status", statusCode), zap.Int("attempt", attempt))
				if err := sleep(ctx, c.retryInterval*time.Duration(attempt)); err != nil {
					return err
				}
				continue
			}
			return fmt.Errorf("%w: %d", ErrUnexpectedStatus, statusCode)
		case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
			return ErrUnauthorized
		default:
			return decode(statusCode, respBody, out)
		}
	}
	return nil
}

func (c *Client) headers() http.Header {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token != "" {
		headers.Set("Authorization", c.token)
	}
	return headers
}

func (c *Client) retryAfter(respHeaders http.Header, attempt int) time.Duration {
	retryAfter := c.retryInterval * time.Duration(attempt)
	if header := respHeaders.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	return retryAfter
}

func decode(statusCode int, respBody []byte, out any) error {
	var env envelope
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &env); err != nil {
			if statusCode >= http.StatusBadRequest {
				return fmt.Errorf("%w: %d", ErrUnexpectedStatus, statusCode)
			}
			return fmt.Errorf("failed to parse response body: %w", err)
		}
	}

	if statusCode >= http.StatusBadRequest || (env.OK != nil && !*env.OK) {
		return fmt.Errorf("%w: %s", ErrRejected, env.Message)
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
