package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/fitness-service/internal/domain"
)

type memoryDenylist struct {
	revoked map[string]time.Time
	err     error
}

func (d *memoryDenylist) Revoke(_ context.Context, id string, until time.Time) error {
	if d.revoked == nil {
		d.revoked = map[string]time.Time{}
	}
	d.revoked[id] = until
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.revoked[id]
	return ok, nil
}

type recordingAuditor struct {
	rejected []ValidationKind
}

func (a *recordingAuditor) TokenRejected(_ context.Context, kind ValidationKind, _ string) {
	a.rejected = append(a.rejected, kind)
}

func (a *recordingAuditor) AccessDenied(context.Context, *Principal, Action, string, DenyReason) {}

func whoami(c *fiber.Ctx) error {
	p, ok := PrincipalFromContext(c)
	if !ok {
		return c.JSON(fiber.Map{"anonymous": true})
	}
	ctxPrincipal, _ := PrincipalFrom(c.UserContext())
	return c.JSON(fiber.Map{"user_id": p.UserID, "role": p.Role, "ctx_user_id": ctxPrincipal.UserID})
}

func doRequest(t *testing.T, app *fiber.App, cookie string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(body, &out))
	}
	return resp, out
}

func TestAuthMiddlewareHandle(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	tm := newTestManager(t, clock)
	rec := &countingRecorder{}
	auditor := &recordingAuditor{}
	m := NewAuthMiddleware(tm, NewCookieTransport("", "/"), WithRecorder(rec), WithAuditor(auditor))

	app := newTestApp()
	app.Get("/whoami", m.Handle, whoami)

	token, err := tm.Issue(Principal{UserID: "u1", Email: "a@fit.test", Role: domain.RoleCoach})
	require.NoError(t, err)

	resp, body := doRequest(t, app, token.Raw)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u1", body["user_id"])
	assert.Equal(t, "u1", body["ctx_user_id"])
	assert.Equal(t, "Coach", body["role"])

	resp, _ = doRequest(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doRequest(t, app, token.Raw+"x")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	clock.now = token.ExpiresAt.Add(time.Second)
	resp, _ = doRequest(t, app, token.Raw)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	assert.Equal(t, 1, rec.validations["valid"])
	assert.Equal(t, 1, rec.validations[string(KindMissingToken)])
	assert.Equal(t, 1, rec.validations[string(KindSignatureInvalid)])
	assert.Equal(t, 1, rec.validations[string(KindExpired)])
	assert.Equal(t, []ValidationKind{KindMissingToken, KindSignatureInvalid, KindExpired}, auditor.rejected)
}

func TestAuthMiddlewareOptional(t *testing.T) {
	tm := newTestManager(t, nil)
	m := NewAuthMiddleware(tm, NewCookieTransport("", "/"))

	app := newTestApp()
	app.Get("/whoami", m.Optional, whoami)

	resp, body := doRequest(t, app, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["anonymous"])

	resp, body = doRequest(t, app, "garbage")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["anonymous"])

	token, err := tm.Issue(Principal{UserID: "u2", Email: "b@fit.test", Role: domain.RoleUser})
	require.NoError(t, err)
	resp, body = doRequest(t, app, token.Raw)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u2", body["user_id"])
}

func TestAuthMiddlewareDenylist(t *testing.T) {
	tm := newTestManager(t, nil)
	denylist := &memoryDenylist{}
	m := NewAuthMiddleware(tm, NewCookieTransport("", "/"), WithDenylist(denylist))

	app := newTestApp()
	app.Get("/whoami", m.Handle, whoami)

	token, err := tm.Issue(Principal{UserID: "u1", Email: "a@fit.test", Role: domain.RoleUser})
	require.NoError(t, err)

	resp, _ := doRequest(t, app, token.Raw)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, denylist.Revoke(context.Background(), token.ID, token.ExpiresAt))
	resp, _ = doRequest(t, app, token.Raw)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	denylist.err = errors.New("redis down")
	resp, _ = doRequest(t, app, token.Raw)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestTokenFromContext(t *testing.T) {
	tm := newTestManager(t, nil)
	m := NewAuthMiddleware(tm, NewCookieTransport("", "/"))

	token, err := tm.Issue(Principal{UserID: "u1", Email: "a@fit.test", Role: domain.RoleUser})
	require.NoError(t, err)

	app := newTestApp()
	app.Get("/whoami", m.Handle, func(c *fiber.Ctx) error {
		got, ok := TokenFromContext(c)
		if !ok {
			return c.SendStatus(http.StatusTeapot)
		}
		return c.JSON(fiber.Map{"jti": got.ID})
	})

	resp, body := doRequest(t, app, token.Raw)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, token.ID, body["jti"])
}
