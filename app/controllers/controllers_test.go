package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/RechargeFox/internal/pkg/recharge"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/rechargeapi"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/session"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/usercontext"
	"github.com/ManuelReschke/RechargeFox/views"
)

type fakeAPI struct {
	plans        rechargeapi.ListResult
	history      rechargeapi.ListResult
	rechargeErr  error
	rechargeReqs []rechargeapi.RechargeRequest
	historyUser  string
	loginResp    *rechargeapi.LoginResponse
	loginErr     error
}

func (f *fakeAPI) FetchPlans(ctx context.Context) rechargeapi.ListResult {
	return f.plans
}

func (f *fakeAPI) FetchHistory(ctx context.Context, userID, token string) rechargeapi.ListResult {
	f.historyUser = userID
	return f.history
}

func (f *fakeAPI) Recharge(ctx context.Context, token string, req rechargeapi.RechargeRequest) (*rechargeapi.RechargeResponse, error) {
	f.rechargeReqs = append(f.rechargeReqs, req)
	if f.rechargeErr != nil {
		return nil, f.rechargeErr
	}
	return &rechargeapi.RechargeResponse{Success: true}, nil
}

func (f *fakeAPI) Login(ctx context.Context, req rechargeapi.LoginRequest) (*rechargeapi.LoginResponse, error) {
	return f.loginResp, f.loginErr
}

var loggedInUser = &usercontext.UserContext{
	UserID:     "u-1",
	Username:   "asha",
	Phone:      "9876543210",
	Token:      "tok",
	IsLoggedIn: true,
}

func newTestApp(t *testing.T, fake RechargeAPI, user *usercontext.UserContext) *fiber.App {
	t.Helper()

	session.UseMemoryStore()
	InitializeRechargeControllers(fake, time.Second, time.UTC)

	app := fiber.New(fiber.Config{Views: views.NewEngine(false)})
	app.Use(func(c *fiber.Ctx) error {
		if user != nil {
			usercontext.SetUserContext(c, *user)
		}
		return c.Next()
	})
	app.Get("/plans", HandlePlans)
	app.Get("/history", HandleHistory)
	app.Get("/history/list", HandleHistoryList)
	app.Post("/recharge", HandleRecharge)
	app.Get("/login", HandleAuthLogin)
	app.Post("/login", HandleAuthLogin)
	return app
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	return req
}

func TestHandleHistory_Unauthenticated(t *testing.T) {
	app := newTestApp(t, &fakeAPI{}, nil)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/history", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Please login to see your recharge history.")
	assert.NotContains(t, body, "Loading your recharge history")
}

func TestHandleHistory_ShowsLoadingShell(t *testing.T) {
	app := newTestApp(t, &fakeAPI{}, loggedInUser)

	_, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/history", nil))
	assert.Contains(t, body, "Loading your recharge history...")
	assert.Contains(t, body, `hx-get="/history/list"`)
}

func TestHandleHistoryList_EmptyAfterLoad(t *testing.T) {
	fake := &fakeAPI{history: rechargeapi.ListResult{Outcome: rechargeapi.OutcomeEmpty}}
	app := newTestApp(t, fake, loggedInUser)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/history/list", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "You have not done any recharges yet.")
	assert.NotContains(t, body, "Loading your recharge history")
	assert.Equal(t, "u-1", fake.historyUser)
}

func TestHandleHistoryList_FailureRendersEmpty(t *testing.T) {
	fake := &fakeAPI{history: rechargeapi.ListResult{
		Outcome: rechargeapi.OutcomeFailed,
		Err:     &rechargeapi.APIError{Status: 500, Message: "db down"},
	}}
	app := newTestApp(t, fake, loggedInUser)

	_, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/history/list", nil))
	assert.Contains(t, body, "You have not done any recharges yet.")
	assert.NotContains(t, body, "db down")
}

func TestHandleHistoryList_SlowUpstreamRendersEmpty(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(600 * time.Millisecond)
		_, _ = io.WriteString(w, `{"success":true,"history":[{"_id":"h1","amount":10}]}`)
	}))
	t.Cleanup(upstream.Close)

	client := rechargeapi.NewClient(upstream.URL, 2*time.Second, nil)
	app := newTestApp(t, client, loggedInUser)
	InitializeRechargeControllers(client, 200*time.Millisecond, time.UTC)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/history/list", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "You have not done any recharges yet.")
	assert.NotContains(t, body, "Loading your recharge history")
}

func TestHandleHistoryList_CancelledCallerGetsNoContent(t *testing.T) {
	fake := &fakeAPI{history: rechargeapi.ListResult{Outcome: rechargeapi.OutcomeEmpty}}
	session.UseMemoryStore()
	InitializeRechargeControllers(fake, time.Second, time.UTC)

	app := fiber.New(fiber.Config{Views: views.NewEngine(false)})
	app.Use(func(c *fiber.Ctx) error {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		c.SetUserContext(ctx)
		usercontext.SetUserContext(c, *loggedInUser)
		return c.Next()
	})
	app.Get("/history/list", HandleHistoryList)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/history/list", nil))
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)
}

func TestHandleHistoryList_Populated(t *testing.T) {
	fake := &fakeAPI{history: rechargeapi.ListResult{
		Outcome: rechargeapi.OutcomeOK,
		Records: []recharge.Record{
			{"_id": "h1", "price": float64(199), "Validity": "28 Days", "data": "1.5GB/Day", "createdAt": "2024-05-01T12:34:56Z"},
			{"amount": float64(49), "operator": "Jio", "status": "PENDING"},
		},
	}}
	app := newTestApp(t, fake, loggedInUser)

	_, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/history/list", nil))
	assert.Contains(t, body, "₹199")
	assert.Contains(t, body, "28 Days • 1.5GB/Day")
	assert.Contains(t, body, "01/05/2024, 12:34:56")
	assert.Contains(t, body, "₹49")
	assert.Contains(t, body, "Jio")
	assert.Contains(t, body, "PENDING")
	assert.Contains(t, body, "SUCCESS")
	assert.Contains(t, body, "N/A")
}

func TestHandleHistoryList_Unauthenticated(t *testing.T) {
	fake := &fakeAPI{}
	app := newTestApp(t, fake, nil)

	_, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/history/list", nil))
	assert.Contains(t, body, "Please login to see your recharge history.")
	assert.Empty(t, fake.historyUser)
}

func TestHandlePlans_TransportFailureShowsDefaults(t *testing.T) {
	fake := &fakeAPI{plans: rechargeapi.ListResult{
		Outcome: rechargeapi.OutcomeFailed,
		Err:     fmt.Errorf("GET /api/plans: %w: connection refused", rechargeapi.ErrTransport),
	}}
	app := newTestApp(t, fake, nil)

	for _, tab := range recharge.Tabs {
		req := httptest.NewRequest(http.MethodGet, "/plans?tab="+url.QueryEscape(string(tab)), nil)
		resp, body := doRequest(t, app, req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Total plans: 5 | Filtered: 1 | Active tab: "+string(tab))
		assert.Equal(t, 1, strings.Count(body, `class="plan-box"`), "tab %s", tab)
		assert.Contains(t, body, "Showing default plans.")
	}
}

func TestHandlePlans_ApplicationFailureShowsNothing(t *testing.T) {
	fake := &fakeAPI{plans: rechargeapi.ListResult{
		Outcome: rechargeapi.OutcomeFailed,
		Err:     &rechargeapi.APIError{Status: 200, Message: "maintenance"},
	}}
	app := newTestApp(t, fake, nil)

	_, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/plans", nil))
	assert.Contains(t, body, "Total plans: 0")
	assert.Contains(t, body, "No plans available in this category")
	assert.NotContains(t, body, "Showing default plans.")
}

func TestHandlePlans_DefaultTabAndClassification(t *testing.T) {
	fake := &fakeAPI{plans: rechargeapi.ListResult{
		Outcome: rechargeapi.OutcomeOK,
		Records: []recharge.Record{
			{"id": "a", "price": float64(599), "validity": "84 Days", "call": "Unlimited Calls", "data": "Unlimited"},
			{"id": "b", "price": float64(49), "validity": "1 Day", "call": "100 mins"},
			{"id": "c", "price": float64(155), "validity": "24 Days", "call": "Unlimited", "description": "Starter pack"},
		},
	}}
	app := newTestApp(t, fake, loggedInUser)

	_, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/plans", nil))
	assert.Contains(t, body, "Active tab: RECOMMENDED")
	assert.Contains(t, body, "₹155")
	assert.Contains(t, body, "Starter pack")
	assert.NotContains(t, body, "₹599")
	assert.Contains(t, body, `value="9876543210"`)

	_, body = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/plans?tab=truly+unlimited", nil))
	assert.Contains(t, body, "Active tab: TRULY UNLIMITED")
	assert.Contains(t, body, "₹599")
	assert.Contains(t, body, "Category: TRULY UNLIMITED")
}

func TestHandlePlans_PlanWithoutAmountCannotBeBought(t *testing.T) {
	fake := &fakeAPI{plans: rechargeapi.ListResult{
		Outcome: rechargeapi.OutcomeOK,
		Records: []recharge.Record{
			{"id": "x", "price": "N/A", "validity": "28 Days"},
			{"id": "y", "price": float64(199), "validity": "28 Days"},
		},
	}}
	app := newTestApp(t, fake, loggedInUser)

	_, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/plans", nil))
	assert.Equal(t, 2, strings.Count(body, `class="plan-box"`))
	assert.Equal(t, 1, strings.Count(body, `action="/recharge"`))
	assert.Contains(t, body, "Not available")
	assert.NotContains(t, body, `name="plan_id" value="x"`)
	assert.Contains(t, body, `name="plan_id" value="y"`)
}

func TestHandlePlans_HTMXRendersListOnly(t *testing.T) {
	fake := &fakeAPI{plans: rechargeapi.ListResult{Outcome: rechargeapi.OutcomeEmpty}}
	app := newTestApp(t, fake, nil)

	req := httptest.NewRequest(http.MethodGet, "/plans?tab=DATA", nil)
	req.Header.Set("HX-Request", "true")
	_, body := doRequest(t, app, req)
	assert.Contains(t, body, "Active tab: DATA")
	assert.NotContains(t, body, "<html")

	// the swapped fragment carries the tab bar, so the highlight follows the click
	assert.Equal(t, 1, strings.Count(body, `class="plan-tab active"`))
	assert.Contains(t, body, `class="plan-tab active" data-tab="DATA"`)
	assert.Contains(t, body, `class="plan-tab" data-tab="RECOMMENDED"`)
}

func TestHandleRecharge_RequiresLogin(t *testing.T) {
	fake := &fakeAPI{}
	app := newTestApp(t, fake, nil)

	resp, _ := doRequest(t, app, postForm("/recharge", url.Values{"phone_number": {"9876543210"}}))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Empty(t, fake.rechargeReqs)
}

func rechargeValues() url.Values {
	return url.Values{
		"phone_number": {"9876543210"},
		"plan_id":      {"4"},
		"amount":       {"299"},
		"operator":     {"Airtel"},
		"category":     {"DATA"},
		"tab":          {"DATA"},
	}
}

func TestHandleRecharge_Success(t *testing.T) {
	fake := &fakeAPI{}
	app := newTestApp(t, fake, loggedInUser)

	resp, _ := doRequest(t, app, postForm("/recharge", rechargeValues()))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/history", resp.Header.Get("Location"))

	require.Len(t, fake.rechargeReqs, 1)
	got := fake.rechargeReqs[0]
	assert.Equal(t, rechargeapi.RechargeRequest{
		PhoneNumber: "9876543210",
		Operator:    "Airtel",
		PlanID:      "4",
		Amount:      299,
		Status:      "SUCCESS",
		Type:        "DATA",
	}, got)
}

func TestHandleRecharge_RejectedGoesBackToTab(t *testing.T) {
	fake := &fakeAPI{rechargeErr: &rechargeapi.APIError{Status: 200, Message: "Insufficient balance"}}
	app := newTestApp(t, fake, loggedInUser)

	resp, _ := doRequest(t, app, postForm("/recharge", rechargeValues()))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/plans?tab=DATA", resp.Header.Get("Location"))
}

func TestHandleRecharge_InvalidFormIsNotSubmitted(t *testing.T) {
	fake := &fakeAPI{}
	app := newTestApp(t, fake, loggedInUser)

	values := rechargeValues()
	values.Set("phone_number", "12ab")
	values.Set("tab", "smart recharge")
	resp, _ := doRequest(t, app, postForm("/recharge", values))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/plans?tab=SMART+RECHARGE", resp.Header.Get("Location"))
	assert.Empty(t, fake.rechargeReqs)
}

func TestRechargeFailureMessage(t *testing.T) {
	assert.Equal(t, "Insufficient balance", rechargeFailureMessage(&rechargeapi.APIError{Message: "Insufficient balance"}))
	assert.Equal(t, msgRechargeFailed, rechargeFailureMessage(&rechargeapi.APIError{Status: 200}))
	assert.Equal(t, msgRechargeTryAgain, rechargeFailureMessage(fmt.Errorf("x: %w", rechargeapi.ErrTransport)))
	assert.Equal(t, msgRechargeTryAgain, rechargeFailureMessage(context.DeadlineExceeded))
}

func TestHandleAuthLogin(t *testing.T) {
	fake := &fakeAPI{loginResp: &rechargeapi.LoginResponse{
		Token: "tok",
		User:  rechargeapi.User{ID: "u-9", Name: "Ravi", Phone: "9999999999"},
	}}
	app := newTestApp(t, fake, nil)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="password"`)

	resp, _ = doRequest(t, app, postForm("/login", url.Values{"email": {"ravi@example.com"}, "password": {"pw"}}))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/plans", resp.Header.Get("Location"))
}

func TestHandleAuthLogin_Rejected(t *testing.T) {
	fake := &fakeAPI{loginErr: &rechargeapi.APIError{Status: 401, Message: "Invalid credentials"}}
	app := newTestApp(t, fake, nil)

	resp, _ := doRequest(t, app, postForm("/login", url.Values{"email": {"ravi@example.com"}, "password": {"bad"}}))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}
