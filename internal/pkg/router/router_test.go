package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/RechargeFox/views"
)

func newRoutedApp(t *testing.T, upstream http.HandlerFunc) *fiber.App {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	t.Setenv("SESSION_STORAGE", "memory")
	t.Setenv("API_BASE_URL", srv.URL)
	t.Setenv("API_TIMEOUT", "2s")

	app := fiber.New(fiber.Config{Views: views.NewEngine(false)})
	InstallRouter(app)
	return app
}

func TestRoutes_PlansThroughStack(t *testing.T) {
	app := newRoutedApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/plans" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `{"success":true,"plans":[{"_id":"p1","price":299,"validity":"30 Days","call":"No Calls","data":"25GB"}]}`)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/plans?tab=DATA", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "₹299")
	assert.Contains(t, string(body), "Active tab: DATA")
	assert.Contains(t, string(body), `name="_csrf"`)
}

func TestRoutes_HomeRedirectsToPlans(t *testing.T) {
	app := newRoutedApp(t, http.NotFound)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/plans", resp.Header.Get("Location"))
}

func TestRoutes_Health(t *testing.T) {
	app := newRoutedApp(t, http.NotFound)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "disabled", out["cache"])
}

func TestRoutes_RechargeNeedsCSRFToken(t *testing.T) {
	app := newRoutedApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call to %s", r.URL.Path)
	})

	form := url.Values{"phone_number": {"9876543210"}, "amount": {"10"}, "category": {"DATA"}}
	req := httptest.NewRequest(http.MethodPost, "/recharge", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRoutes_HistoryListAnonymous(t *testing.T) {
	app := newRoutedApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call to %s", r.URL.Path)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/history/list", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Please login to see your recharge history.")
}
