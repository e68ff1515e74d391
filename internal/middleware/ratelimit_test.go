// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableRedis forces the limiter onto its in-process fallback so the
// tests stay deterministic without a Redis server.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func serveOnce(
	h http.Handler,
	remoteAddr string,
	mutate func(context.Context) context.Context,
) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/properties", nil)
	req.RemoteAddr = remoteAddr
	if mutate != nil {
		req = req.WithContext(mutate(req.Context()))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func asUser(id, role string) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		ctx = context.WithValue(ctx, UserIDKey, id)
		return context.WithValue(ctx, UserRoleKey, role)
	}
}

func newRoleLimitedHandler(t *testing.T) http.Handler {
	t.Helper()
	limits := map[string]RoleConfig{
		RoleUser: {RequestsPerMinute: 1, BurstSize: 1},
	}
	mw := RoleRateLimiter(unreachableRedis(t), limits)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRoleRateLimiterSeparatesAnonymousClientsByIP(t *testing.T) {
	h := newRoleLimitedHandler(t)

	first := serveOnce(h, "203.0.113.10:40000", nil)
	require.Equal(t, http.StatusOK, first.Code)

	second := serveOnce(h, "203.0.113.20:40000", nil)
	assert.Equal(t, http.StatusOK, second.Code,
		"second anonymous client must not inherit the first client's bucket")

	repeat := serveOnce(h, "203.0.113.10:40001", nil)
	assert.Equal(t, http.StatusTooManyRequests, repeat.Code,
		"same anonymous client past its burst should be throttled")
}

func TestRoleRateLimiterKeysAuthenticatedTrafficByUser(t *testing.T) {
	h := newRoleLimitedHandler(t)

	first := serveOnce(h, "203.0.113.30:40000", asUser("user-1", RoleUser))
	require.Equal(t, http.StatusOK, first.Code)

	other := serveOnce(h, "203.0.113.30:40000", asUser("user-2", RoleUser))
	assert.Equal(t, http.StatusOK, other.Code,
		"distinct users behind one IP get independent buckets")

	repeat := serveOnce(h, "203.0.113.40:40000", asUser("user-1", RoleUser))
	assert.Equal(t, http.StatusTooManyRequests, repeat.Code,
		"a user's bucket follows the user, not the address")
}
