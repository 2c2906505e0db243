package session_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomdesk/internal/session"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "user@example.com",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestContextLifecycle(t *testing.T) {
	ctx := session.NewContext()

	_, ok := ctx.Token()
	assert.False(t, ok)
	assert.False(t, ctx.Authenticated(time.Now()))

	ctx.Set("opaque-token")
	token, ok := ctx.Token()
	assert.True(t, ok)
	assert.Equal(t, "opaque-token", token)
	assert.True(t, ctx.Authenticated(time.Now()))

	ctx.Clear()
	_, ok = ctx.Token()
	assert.False(t, ok)
	assert.False(t, ctx.Authenticated(time.Now()))
}

func TestExpiryReadFromTokenClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	ctx := session.NewContext()
	ctx.Set(signedToken(t, exp))

	got, ok := ctx.ExpiresAt()
	require.True(t, ok)
	assert.True(t, got.Equal(exp))

	assert.True(t, ctx.Authenticated(exp.Add(-time.Minute)))
	assert.False(t, ctx.Authenticated(exp), "expiry instant counts as expired")
	assert.False(t, ctx.Authenticated(exp.Add(time.Minute)))
}

func TestOpaqueTokenHasNoExpiryHint(t *testing.T) {
	ctx := session.NewContext()
	ctx.Set("not-a-jwt")

	_, ok := ctx.ExpiresAt()
	assert.False(t, ok)
	// Without an expiry hint the backend is the only judge of validity.
	assert.True(t, ctx.Authenticated(time.Now().Add(24*time.Hour)))
}

func TestInvalidateNotifiesListeners(t *testing.T) {
	ctx := session.NewContext()
	ctx.Set("token")

	fired := 0
	ctx.OnExpired(func() { fired++ })
	ctx.OnExpired(func() { fired++ })

	ctx.Invalidate()

	assert.Equal(t, 2, fired)
	_, ok := ctx.Token()
	assert.False(t, ok)
}

func TestClearDoesNotNotifyListeners(t *testing.T) {
	ctx := session.NewContext()
	ctx.Set("token")

	fired := false
	ctx.OnExpired(func() { fired = true })

	ctx.Clear()

	assert.False(t, fired, "plain logout is not a forced expiry")
}

func TestSetReplacesStaleExpiry(t *testing.T) {
	ctx := session.NewContext()
	ctx.Set(signedToken(t, time.Now().Add(time.Hour)))

	ctx.Set("opaque-token")
	_, ok := ctx.ExpiresAt()
	assert.False(t, ok, "expiry from a previous token must not survive")
}

func TestDeviceSummary(t *testing.T) {
	tests := []struct {
		name      string
		ua        string
		assertion func(t *testing.T, result string)
	}{
		{
			name: "empty header",
			ua:   "",
			assertion: func(t *testing.T, result string) {
				assert.Equal(t, "unknown device", result)
			},
		},
		{
			name: "chrome on desktop",
			ua:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			assertion: func(t *testing.T, result string) {
				assert.Contains(t, result, "Chrome 120")
				assert.Contains(t, result, "(desktop)")
			},
		},
		{
			name: "safari on iphone",
			ua:   "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			assertion: func(t *testing.T, result string) {
				assert.Contains(t, result, "(mobile)")
			},
		},
		{
			name: "unparseable agent still renders",
			ua:   "Unknown/1.0",
			assertion: func(t *testing.T, result string) {
				assert.Contains(t, result, " on ")
				assert.NotEmpty(t, result)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.assertion(t, session.DeviceSummary(tt.ua))
		})
	}
}
