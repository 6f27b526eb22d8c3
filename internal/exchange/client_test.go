package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescli/internal/config"
	apperrors "salescli/internal/errors"
)

func newTestClient(url string) *Client {
	return NewClient(config.ExchangeConfig{
		URL:            url,
		Timeout:        2 * time.Second,
		TargetCurrency: "EUR",
	})
}

func TestClient_FetchRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base":"USD","rates":{"EUR":0.92,"GBP":0.79}}`))
	}))
	defer server.Close()

	rate, err := newTestClient(server.URL).FetchRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "EUR", rate.Currency)
	assert.Equal(t, 0.92, rate.Value)
}

func TestClient_FetchRate_MissingCurrency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"USD","rates":{"GBP":0.79}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchRate(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
}

func TestClient_FetchRate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchRate(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeNetwork, appErr.Type)
}

func TestClient_FetchRate_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates": nonsense`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchRate(context.Background())
	assert.Error(t, err)
}

func TestClient_FetchRate_NonPositiveRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"USD","rates":{"EUR":0}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchRate(context.Background())
	assert.Error(t, err)
}

func TestClient_FetchRate_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL).FetchRate(ctx)
	assert.Error(t, err)
}
