// AngelaMos | 2026
// payment_test.go

package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/estately/internal/config"
)

func newTestClient(url string) *Client {
	return NewClient(config.PaymentConfig{
		APIURL:    url,
		SecretKey: "sk_test_123",
		Currency:  "usd",
	})
}

func TestCreateIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/payment_intents", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "120000", r.PostForm.Get("amount"))
			assert.Equal(t, "usd", r.PostForm.Get("currency"))

			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // test server
			w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret"}`))
		},
	))
	defer srv.Close()

	intent, err := newTestClient(srv.URL).CreateIntent(
		context.Background(),
		120000,
		"usd",
	)
	require.NoError(t, err)

	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret", intent.ClientSecret)
}

func TestCreateIntentProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			//nolint:errcheck // test server
			w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
		},
	))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateIntent(
		context.Background(),
		120000,
		"usd",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "402")
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestCreateIntentIncompleteResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			//nolint:errcheck // test server
			w.Write([]byte(`{"id":"pi_123"}`))
		},
	))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateIntent(
		context.Background(),
		120000,
		"usd",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete intent")
}
