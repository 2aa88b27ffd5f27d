package dolibarr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smallbiznis/riskwatch/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestClient(baseURL string) Source {
	return New(config.Config{
		Dolibarr: config.DolibarrConfig{
			BaseURL: baseURL,
			APIKey:  "test-key",
			Timeout: 2 * time.Second,
		},
	}, zap.NewNop())
}

func TestListCustomers(t *testing.T) {
	var gotPath, gotKey, gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("DOLAPIKEY")
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"7","name":"Acme SARL"},{"id":"8","nom":"Legacy"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	customers, err := client.ListCustomers(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "/api/index.php/thirdparties", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "200", gotLimit)
	assert.Len(t, customers, 2)
	assert.Equal(t, "Acme SARL", customers[0]["name"])
}

func TestListInvoices_FiltersByCustomer(t *testing.T) {
	var gotThirdparty string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotThirdparty = r.URL.Query().Get("thirdparty_ids")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"total_ttc":"1650.50","paid":"0"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	invoices, err := client.ListInvoices(context.Background(), 42)

	assert.NoError(t, err)
	assert.Equal(t, "42", gotThirdparty)
	assert.Len(t, invoices, 1)
}

func TestGet_ErrorStatusIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ListCustomers(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "401")
}

func TestGet_ConnectionErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)
	_, err := client.ListCustomers(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGet_MalformedResponseIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ListCustomers(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGet_MissingConfigurationIsUnavailable(t *testing.T) {
	client := newTestClient("")
	_, err := client.ListCustomers(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
}
