package clients

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHTTPClient_Send(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Method", r.Method)
		w.Header().Set("X-Auth", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	client := NewHTTPClient()
	headers := http.Header{}
	headers.Set("Authorization", "token")

	status, body, respHeaders, err := client.Send(context.Background(), http.MethodPost, srv.URL, headers, []byte(`{"id":"1"}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, `{"id":"1"}`, string(body))
	assert.Equal(t, http.MethodPost, respHeaders.Get("X-Method"))
	assert.Equal(t, "token", respHeaders.Get("X-Auth"))
}

func TestHTTPClient_SendCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, _, err := NewHTTPClient().Send(ctx, http.MethodGet, srv.URL, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPClient_SetClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock := NewMockHTTPClientI(ctrl)
	mock.EXPECT().
		Send(gomock.Any(), http.MethodGet, "http://backend/users", gomock.Any(), gomock.Nil()).
		Return(http.StatusOK, []byte(`{}`), http.Header{}, nil)

	client := NewHTTPClient()
	client.SetClient(mock)

	status, body, _, err := client.Send(context.Background(), http.MethodGet, "http://backend/users", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "{}", string(body))
}
