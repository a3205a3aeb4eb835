package executor

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"main/pkg/exception"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApi(t *testing.T) {
	var gotPath, gotToken string
	var gotParams map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Token")
		require.NoError(t, sonic.ConfigFastest.NewDecoder(r.Body).Decode(&gotParams))
		_ = sonic.ConfigFastest.NewEncoder(w).Encode(apiResponse{Success: true, Data: "10086"})
	}))
	defer srv.Close()

	c := NewQMT(srv.URL, "secret", srv.Client())
	orderID, err := OrderStock(t.Context(), c, "000001.SZ", 23, 100, 5, 0)
	require.NoError(t, err)

	assert.Equal(t, "10086", orderID)
	assert.Equal(t, "/api/order_stock", gotPath)
	assert.Equal(t, "secret", gotToken)
	assert.Equal(t, "000001.SZ", gotParams["stock_code"])
	assert.EqualValues(t, 23, gotParams["order_type"])
	assert.EqualValues(t, 100, gotParams["order_volume"])
}

func TestApiRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = sonic.ConfigFastest.NewEncoder(w).Encode(apiResponse{Success: false, Error: "account frozen"})
	}))
	defer srv.Close()

	c := NewQMT(srv.URL, "secret", srv.Client())
	_, err := c.Api(t.Context(), "order_stock", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, exception.ErrExecutionRejected)
	assert.Contains(t, err.Error(), "account frozen")
}

func TestApiBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewQMT(srv.URL, "secret", srv.Client())
	_, err := c.Api(t.Context(), "order_stock", nil)
	assert.ErrorIs(t, err, exception.ErrExecutionRejected)
}

func TestApiUnreachable(t *testing.T) {
	c := NewQMT("http://127.0.0.1:1", "secret", nil)
	_, err := c.Api(t.Context(), "order_stock", nil)
	assert.ErrorIs(t, err, exception.ErrExecutionUnreachable)
}
