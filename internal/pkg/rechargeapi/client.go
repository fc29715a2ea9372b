package rechargeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	DefaultTimeout = 10 * time.Second

	plansPath    = "/api/plans"
	historyPath  = "/api/recharge/history/"
	rechargePath = "/api/recharge"
	loginPath    = "/api/auth/login"

	userAgent = "rechargefox"
)

type requestIDKey struct{}

// WithRequestID attaches the inbound request id so it is forwarded upstream.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Client talks to the remote recharge API.
type Client struct {
	baseURL string
	timeout time.Duration
	log     *zap.Logger
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		log:     log,
	}
}

// FetchPlans loads the plan catalogue. Plans are public, no token needed.
func (c *Client) FetchPlans(ctx context.Context) ListResult {
	var resp plansResponse
	err := c.do(ctx, fiber.MethodGet, plansPath, "", nil, &resp)
	if err == nil && !resp.Success {
		err = &APIError{Status: fiber.StatusOK, Message: resp.Message}
	}
	return listResult(resp.Plans, err)
}

// FetchHistory loads the recharge history of a user.
func (c *Client) FetchHistory(ctx context.Context, userID, token string) ListResult {
	if userID == "" {
		return listResult(nil, fmt.Errorf("fetch history: missing user id"))
	}

	var resp historyResponse
	err := c.do(ctx, fiber.MethodGet, historyPath+url.PathEscape(userID), token, nil, &resp)
	if err == nil && !resp.Success {
		err = &APIError{Status: fiber.StatusOK, Message: resp.Message}
	}
	return listResult(resp.History, err)
}

// Recharge submits a purchase. A reply with success=false is returned as
// *APIError.
func (c *Client) Recharge(ctx context.Context, token string, req RechargeRequest) (*RechargeResponse, error) {
	var resp RechargeResponse
	if err := c.do(ctx, fiber.MethodPost, rechargePath, token, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{Status: fiber.StatusOK, Message: resp.Message}
	}
	return &resp, nil
}

// Login exchanges credentials for a bearer token and the user identity.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, fiber.MethodPost, loginPath, "", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{Status: fiber.StatusOK, Message: resp.Message}
	}
	if resp.Token == "" || resp.User.Identity() == "" {
		return nil, &APIError{Status: fiber.StatusOK, Message: "login response is missing token or user"}
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	op := method + " " + path
	if err := ctx.Err(); err != nil {
		return transportError(op, err)
	}

	var a *fiber.Agent
	switch method {
	case fiber.MethodPost:
		a = fiber.Post(c.baseURL + path)
	default:
		a = fiber.Get(c.baseURL + path)
	}
	a.Timeout(c.timeout).UserAgent(userAgent).Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if id := requestID(ctx); id != "" {
		a.Set(fiber.HeaderXRequestID, id)
	}
	if body != nil {
		a.JSON(body)
	}
	if err := a.Parse(); err != nil {
		return transportError(op, err)
	}

	started := time.Now()
	status, payload, errs := a.Bytes()
	if len(errs) > 0 {
		c.log.Debug("recharge api request failed", zap.String("op", op), zap.Errors("errors", errs))
		return transportError(op, errors.Join(errs...))
	}
	c.log.Debug("recharge api request",
		zap.String("op", op),
		zap.Int("status", status),
		zap.Duration("took", time.Since(started)),
	)

	// The caller may have gone away while we were waiting.
	if err := ctx.Err(); err != nil {
		return transportError(op, err)
	}

	// A body that is not our JSON (proxy error pages and the like) means the
	// API was not reached, whatever the status code says.
	if err := decode(payload, out); err != nil {
		return transportError(op, fmt.Errorf("status %d: %w", status, err))
	}

	if status >= fiber.StatusBadRequest {
		var env envelope
		_ = decode(payload, &env)
		return &APIError{Status: status, Message: env.Message}
	}
	return nil
}

// decode keeps numbers as json.Number so ids and prices survive untouched.
func decode(payload []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
