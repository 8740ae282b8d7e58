package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/truthlens/internal/client/models"
	"github.com/dmitrijs2005/truthlens/internal/common"
)

// HTTPClient implements VerificationClient, AuthClient and ProfileClient
// over the backend REST endpoints. Tokens are opaque: the client only
// replays them as bearer credentials.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (c *HTTPClient) Register(ctx context.Context, email, username, password string) (*models.Session, error) {
	body := map[string]string{"email": email, "username": username, "password": password}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/users/register", "", body, &resp); err != nil {
		return nil, err
	}
	return &models.Session{Token: resp.Token, User: resp.User}, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.Session, error) {
	body := map[string]string{"username": username, "password": password}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", "", body, &resp); err != nil {
		return nil, err
	}
	return &models.Session{Token: resp.Token, User: resp.User}, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/users/me", token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, "/users/me", token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodPut, "/users/me", token, upd, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) SendEmailVerification(ctx context.Context, token, newEmail string) (*models.EmailChallenge, error) {
	body := map[string]string{"email": newEmail}

	var ch models.EmailChallenge
	if err := c.do(ctx, http.MethodPost, "/users/me/email-verification", token, body, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, token, challengeID, code string) error {
	body := map[string]string{"verificationId": challengeID, "code": code}
	return c.do(ctx, http.MethodPost, "/users/me/email-verification/verify", token, body, nil)
}

func (c *HTTPClient) Verify(ctx context.Context, token, text string) (*models.VerificationResult, error) {
	body := map[string]string{"text": text}

	var res models.VerificationResult
	if err := c.do(ctx, http.MethodPost, "/api/verify", token, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

// do issues one JSON request and decodes the response into out (when out is
// non-nil). Non-2xx responses are mapped via mapStatus.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapStatus(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorBody matches the backend error envelope. Detail is either a plain
// string or, on validation failures, a list of field-level entries.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func (c *HTTPClient) mapStatus(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode == http.StatusUnauthorized {
		return common.ErrUnauthorized
	}

	var eb errorBody
	_ = json.Unmarshal(raw, &eb)

	if resp.StatusCode == http.StatusUnprocessableEntity {
		if msg := firstFieldMessage(eb.Detail); msg != "" {
			return fmt.Errorf("%w: %s", common.ErrValidation, msg)
		}
	}

	if msg := detailMessage(eb); msg != "" {
		if resp.StatusCode >= 500 {
			return fmt.Errorf("%w: %s", common.ErrUnavailable, msg)
		}
		return fmt.Errorf("request failed: %s", msg)
	}

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: %s", common.ErrUnavailable, resp.Status)
	}
	return fmt.Errorf("request failed: %s", resp.Status)
}

func detailMessage(eb errorBody) string {
	if eb.Message != "" {
		return eb.Message
	}
	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return s
	}
	return ""
}

// firstFieldMessage extracts the first field-level message from a 422 body,
// or "" when the body has another shape.
func firstFieldMessage(detail json.RawMessage) string {
	var fields []fieldError
	if err := json.Unmarshal(detail, &fields); err != nil {
		return ""
	}
	if len(fields) == 0 {
		return ""
	}
	return fields[0].Msg
}
