package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPrincipal = Principal{
	ID:       7,
	Username: "kades",
	Email:    "kades@desa.id",
	Name:     "Kepala Desa",
	Role:     "admin",
}

// fakeClock is a settable clock for expiry tests.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 8, 17, 9, 0, 0, 0, time.UTC)}
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	svc, err := NewJWTService("")
	assert.ErrorIs(t, err, ErrMissingSecret)
	assert.Nil(t, svc)
}

func TestJWTService_RoundTrip(t *testing.T) {
	clock := newClock()
	svc, err := NewJWTService("test-secret", WithClock(clock.Now))
	require.NoError(t, err)

	token, expiresAt, err := svc.Issue(testPrincipal)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(time.Hour), expiresAt)

	clock.Advance(59 * time.Minute)
	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, testPrincipal, claims.Principal)
	assert.NotEmpty(t, claims.RegisteredClaims.ID)
	assert.Equal(t, "7", claims.Subject)
}

func TestJWTService_Expired(t *testing.T) {
	clock := newClock()
	svc, err := NewJWTService("test-secret", WithClock(clock.Now))
	require.NoError(t, err)

	token, _, err := svc.Issue(testPrincipal)
	require.NoError(t, err)

	clock.Advance(time.Hour + time.Second)
	claims, err := svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTService_InvalidTokens(t *testing.T) {
	clock := newClock()
	svc, err := NewJWTService("test-secret", WithClock(clock.Now))
	require.NoError(t, err)
	other, err := NewJWTService("other-secret", WithClock(clock.Now))
	require.NoError(t, err)

	good, _, err := svc.Issue(testPrincipal)
	require.NoError(t, err)
	foreign, _, err := other.Issue(testPrincipal)
	require.NoError(t, err)

	parts := strings.Split(good, ".")
	require.Len(t, parts, 3)
	tamperedPayload, _, err := other.Issue(Principal{ID: 1, Role: "admin"})
	require.NoError(t, err)
	tampered := parts[0] + "." + strings.Split(tamperedPayload, ".")[1] + "." + parts[2]

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Principal: testPrincipal,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Principal: testPrincipal,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Principal:        testPrincipal,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"signed with other secret", foreign},
		{"payload swapped", tampered},
		{"alg none", noneToken},
		{"wrong issuer", wrongIssuer},
		{"missing expiry", noExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}
