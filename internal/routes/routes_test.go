package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystay/keystay/internal/config"
	"github.com/keystay/keystay/internal/logging"
)

func testConfig() config.Config {
	return config.Config{
		AppName:             "KeyStay",
		Env:                 "dev",
		Port:                "8080",
		JWTSecret:           "test-secret",
		RefreshSecret:       "test-refresh-secret",
		AccessTokenTTL:      15 * time.Minute,
		RefreshTokenTTL:     24 * time.Hour,
		WizardSessionTTL:    time.Hour,
		WizardSubmitTimeout: 5 * time.Second,
		LoginPerMinute:      5,
	}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	require.NoError(t, Setup(app, Deps{Cfg: testConfig(), Logger: logging.Discard()}))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &payload)
	}
	return resp.StatusCode, payload
}

func registerAndLogin(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/identity/register", "", fiber.Map{
		"email":     "asha@example.com",
		"password":  "s3cret-pass",
		"phone":     "9876543210",
		"full_name": "Asha Rao",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, payload := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "asha@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, fiber.StatusOK, status)
	token, _ := payload["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestPing(t *testing.T) {
	app := newTestApp(t)

	status, payload := doJSON(t, app, fiber.MethodGet, "/api/v1/ping", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", payload["status"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, fiber.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/dashboard", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRegisterLoginAndMe(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)

	status, payload := doJSON(t, app, fiber.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "asha@example.com", payload["email"])
}

func TestDashboardBeforeRoleSelection(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)

	status, payload := doJSON(t, app, fiber.MethodGet, "/api/v1/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, payload["role_selected"])
	assert.Equal(t, "role_selection", payload["next"])
}

func sessionOf(t *testing.T, payload map[string]any) map[string]any {
	t.Helper()
	session, ok := payload["session"].(map[string]any)
	require.True(t, ok, "payload should carry a session: %v", payload)
	return session
}

func TestBookingWizardOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)

	status, payload := doJSON(t, app, fiber.MethodPost, "/api/v1/profile/role", token, fiber.Map{"role": "tenant"})
	require.Equal(t, fiber.StatusOK, status)

	status, payload = doJSON(t, app, fiber.MethodPost, "/api/v1/wizards/booking", token, nil)
	require.Equal(t, fiber.StatusCreated, status)
	session := sessionOf(t, payload)
	sessionID, _ := session["session_id"].(string)
	require.NotEmpty(t, sessionID)
	// Registration data is seeded into the form.
	assert.Equal(t, "details", session["current_step_id"])

	base := "/api/v1/wizards/sessions/" + sessionID
	moveIn := time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02")
	status, _ = doJSON(t, app, fiber.MethodPatch, base+"/fields", token, fiber.Map{
		"fields": fiber.Map{"move_in_date": moveIn, "property_id": "prop-1"},
	})
	require.Equal(t, fiber.StatusOK, status)

	status, payload = doJSON(t, app, fiber.MethodPost, base+"/advance", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "terms", sessionOf(t, payload)["current_step_id"])

	status, _ = doJSON(t, app, fiber.MethodPatch, base+"/fields", token, fiber.Map{
		"fields": fiber.Map{"duration_months": "11", "monthly_rent": "15000"},
	})
	require.Equal(t, fiber.StatusOK, status)
	status, payload = doJSON(t, app, fiber.MethodPost, base+"/advance", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "review", sessionOf(t, payload)["current_step_id"])

	status, payload = doJSON(t, app, fiber.MethodPost, base+"/submit", token, nil)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "complete", sessionOf(t, payload)["phase"])
	receipt, _ := payload["receipt"].(map[string]any)
	assert.Equal(t, "booking", receipt["record"])

	status, payload = doJSON(t, app, fiber.MethodGet, "/api/v1/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	bookings, _ := payload["bookings"].([]any)
	assert.Len(t, bookings, 1)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app)

	status, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
