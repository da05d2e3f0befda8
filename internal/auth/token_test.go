package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/fitness-service/internal/domain"
)

var testSecret = strings.Repeat("s", 32)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func newTestManager(t *testing.T, clock *fakeClock) *TokenManager {
	t.Helper()
	opts := []Option{}
	if clock != nil {
		opts = append(opts, WithClock(clock.Now))
	}
	tm, err := NewTokenManager(testSecret, 5*time.Hour, opts...)
	require.NoError(t, err)
	return tm
}

func TestNewTokenManagerRejectsBadConfig(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = NewTokenManager(testSecret, 0)
	assert.ErrorIs(t, err, ErrInvalidTTL)
}

func TestIssueValidateRoundTrip(t *testing.T) {
	tm := newTestManager(t, nil)

	for _, role := range []domain.Role{domain.RoleUser, domain.RoleCoach, domain.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			p := Principal{UserID: "user-" + string(role), Email: strings.ToLower(string(role)) + "@fit.test", Role: role}

			token, err := tm.Issue(p)
			require.NoError(t, err)

			got, err := tm.Validate(token.Raw)
			require.NoError(t, err)
			assert.Equal(t, p, got)
		})
	}
}

func TestIssueSetsLifetime(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	tm := newTestManager(t, clock)

	token, err := tm.Issue(Principal{UserID: "u1", Email: "a@fit.test", Role: domain.RoleUser})
	require.NoError(t, err)

	assert.True(t, clock.now.Equal(token.IssuedAt))
	assert.True(t, clock.now.Add(5*time.Hour).Equal(token.ExpiresAt))
	assert.NotEmpty(t, token.ID)
}

func TestIssueProducesDistinctTokens(t *testing.T) {
	tm := newTestManager(t, &fakeClock{now: time.Now()})
	p := Principal{UserID: "u1", Email: "a@fit.test", Role: domain.RoleUser}

	first, err := tm.Issue(p)
	require.NoError(t, err)
	second, err := tm.Issue(p)
	require.NoError(t, err)

	assert.NotEqual(t, first.Raw, second.Raw)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestIssueRejectsIncompletePrincipal(t *testing.T) {
	tm := newTestManager(t, nil)

	_, err := tm.Issue(Principal{Email: "a@fit.test", Role: domain.RoleUser})
	assert.Error(t, err)

	_, err = tm.Issue(Principal{UserID: "u1", Role: domain.Role("Owner")})
	assert.Error(t, err)
}

func TestClaimNamesAreStable(t *testing.T) {
	tm := newTestManager(t, nil)
	token, err := tm.Issue(Principal{UserID: "u1", Email: "a@fit.test", Role: domain.RoleCoach})
	require.NoError(t, err)

	payload, err := base64.RawURLEncoding.DecodeString(strings.Split(token.Raw, ".")[1])
	require.NoError(t, err)
	var claims map[string]any
	require.NoError(t, json.Unmarshal(payload, &claims))

	assert.Equal(t, "u1", claims["sub"])
	assert.Equal(t, "a@fit.test", claims["email"])
	assert.Equal(t, "Coach", claims["role"])
	assert.Contains(t, claims, "exp")
	assert.Contains(t, claims, "iat")
}

func TestValidateExpired(t *testing.T) {
	now := time.Now()
	issuer := newTestManager(t, &fakeClock{now: now.Add(-5*time.Hour - time.Second)})
	validator := newTestManager(t, &fakeClock{now: now})

	token, err := issuer.Issue(Principal{UserID: "u1", Email: "a@fit.test", Role: domain.RoleUser})
	require.NoError(t, err)
	require.False(t, token.ExpiresAt.After(now.Add(-time.Second)))

	_, err = validator.Validate(token.Raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpired)
	assert.Equal(t, KindExpired, KindOf(err))
}

func TestValidateExpiryBoundary(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	tm := newTestManager(t, clock)

	token, err := tm.Issue(Principal{UserID: "u1", Email: "a@fit.test", Role: domain.RoleUser})
	require.NoError(t, err)

	clock.now = token.ExpiresAt.Add(-time.Second)
	_, err = tm.Validate(token.Raw)
	assert.NoError(t, err)

	clock.now = token.ExpiresAt
	_, err = tm.Validate(token.Raw)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestValidateDetectsSignatureTampering(t *testing.T) {
	tm := newTestManager(t, nil)
	token, err := tm.Issue(Principal{UserID: "u1", Email: "a@fit.test", Role: domain.RoleUser})
	require.NoError(t, err)

	parts := strings.Split(token.Raw, ".")
	require.Len(t, parts, 3)
	prefix := parts[0] + "." + parts[1] + "."
	sig := []byte(parts[2])

	for i := range sig {
		for mask := 1; mask < 256; mask++ {
			tampered := append([]byte(nil), sig...)
			tampered[i] ^= byte(mask)

			_, err := tm.Validate(prefix + string(tampered))
			require.Error(t, err, "byte %d mask %#x accepted", i, mask)
			require.Equal(t, KindSignatureInvalid, KindOf(err), "byte %d mask %#x: %v", i, mask, err)
		}
	}
}

func TestValidateDotInSignatureIsSignatureInvalid(t *testing.T) {
	tm := newTestManager(t, nil)
	token, err := tm.Issue(Principal{UserID: "u1", Email: "a@fit.test", Role: domain.RoleUser})
	require.NoError(t, err)

	parts := strings.Split(token.Raw, ".")
	dotted := parts[0] + "." + parts[1] + "." + parts[2][:10] + "." + parts[2][11:]

	_, err = tm.Validate(dotted)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestValidateDetectsPayloadTampering(t *testing.T) {
	tm := newTestManager(t, nil)
	token, err := tm.Issue(Principal{UserID: "u1", Email: "a@fit.test", Role: domain.RoleUser})
	require.NoError(t, err)

	parts := strings.Split(token.Raw, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	escalated := strings.Replace(string(payload), `"role":"User"`, `"role":"Admin"`, 1)
	require.NotEqual(t, string(payload), escalated)

	forged := parts[0] + "." + base64.RawURLEncoding.EncodeToString([]byte(escalated)) + "." + parts[2]
	_, err = tm.Validate(forged)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestValidateRejectsForeignSignatures(t *testing.T) {
	tm := newTestManager(t, nil)
	claims := &Claims{
		Email: "a@fit.test",
		Role:  domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	otherSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(strings.Repeat("o", 32)))
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, raw := range map[string]string{"other secret": otherSecret, "alg none": unsigned, "hs512": hs512} {
		t.Run(name, func(t *testing.T) {
			_, err := tm.Validate(raw)
			assert.ErrorIs(t, err, ErrSignatureInvalid)
		})
	}
}

func TestValidateMalformed(t *testing.T) {
	tm := newTestManager(t, nil)

	sign := func(c *Claims) string {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return raw
	}
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := map[string]string{
		"garbage":      "not-a-token",
		"two segments": "abc.def",
		"bad header":   "x.y.z",
		"no exp":       sign(&Claims{Email: "a@fit.test", Role: domain.RoleUser, RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}),
		"no sub":       sign(&Claims{Email: "a@fit.test", Role: domain.RoleUser, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}),
		"unknown role": sign(&Claims{Email: "a@fit.test", Role: "Owner", RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", ExpiresAt: exp}}),
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tm.Validate(raw)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}

func TestValidateMissing(t *testing.T) {
	tm := newTestManager(t, nil)

	for _, raw := range []string{"", "   "} {
		_, err := tm.Validate(raw)
		assert.ErrorIs(t, err, ErrMissingToken)
	}
}

func TestInspectReturnsMetadata(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	tm := newTestManager(t, clock)

	issued, err := tm.Issue(Principal{UserID: "u1", Email: "a@fit.test", Role: domain.RoleUser})
	require.NoError(t, err)

	got, err := tm.Inspect(issued.Raw)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, got.ID)
	assert.True(t, issued.ExpiresAt.Equal(got.ExpiresAt))
	assert.Equal(t, issued.Principal, got.Principal)
}
