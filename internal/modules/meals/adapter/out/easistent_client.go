package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"mealsync/internal/modules/meals/domain"
	mealsout "mealsync/internal/modules/meals/port/out"
	"mealsync/internal/platform/config"
	apperrors "mealsync/internal/platform/errors"
)

const (
	loginPath = "/m/login"
	menusPath = "/m/meals/menus"

	// maxResponseBytes bounds how much of a response body is buffered.
	maxResponseBytes = 8 << 20
)

// NewHTTPClient returns a client with connection-level timeouts on top of
// the overall request timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 15 * time.Second,
			MaxIdleConns:          4,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

type EasistentClient struct {
	baseURL  string
	identity config.ClientIdentity
	http     *http.Client
	logger   *zap.Logger
}

func NewEasistentClient(baseURL string, identity config.ClientIdentity, httpClient *http.Client, logger *zap.Logger) mealsout.MenuAPI {
	if httpClient == nil {
		httpClient = NewHTTPClient(config.DefaultTimeout)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EasistentClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		identity: identity,
		http:     httpClient,
		logger:   logger,
	}
}

type loginRequest struct {
	Username           string   `json:"username"`
	Password           string   `json:"password"`
	SupportedUserTypes []string `json:"supported_user_types"`
}

type loginResponse struct {
	AccessToken struct {
		Token string `json:"token"`
	} `json:"access_token"`
	User struct {
		ID json.RawMessage `json:"id"`
	} `json:"user"`
}

func (c *EasistentClient) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	body, err := json.Marshal(loginRequest{
		Username:           creds.Username,
		Password:           creds.Password,
		SupportedUserTypes: domain.SupportedUserTypes,
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("marshal login request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return domain.Session{}, fmt.Errorf("build login request: %w", err)
	}
	c.setIdentityHeaders(req)

	status, payload, err := c.do(req)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", apperrors.ErrLoginFailed, err)
	}
	if status != http.StatusOK {
		return domain.Session{}, &apperrors.StatusError{Kind: apperrors.ErrLoginFailed, StatusCode: status, Body: payload}
	}

	decoded := loginResponse{}
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return domain.Session{}, fmt.Errorf("%w: decode login response: %v", apperrors.ErrLoginFailed, err)
	}
	session := domain.Session{Token: decoded.AccessToken.Token, SubjectID: rawText(decoded.User.ID)}
	if err := session.Validate(); err != nil {
		return domain.Session{}, fmt.Errorf("%w: login response missing access token or user id: %v", apperrors.ErrLoginFailed, err)
	}
	return session, nil
}

func (c *EasistentClient) FetchMenu(ctx context.Context, session domain.Session, date string) (domain.Payload, error) {
	endpoint, err := url.Parse(c.baseURL + menusPath)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("build menu url: %w", err)
	}
	query := endpoint.Query()
	query.Set("from", date)
	query.Set("to", date)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("build menu request: %w", err)
	}
	c.setIdentityHeaders(req)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	req.Header.Set("X-Child-Id", session.SubjectID)

	status, payload, err := c.do(req)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("%w: %v", apperrors.ErrFetchFailed, err)
	}
	if status != http.StatusOK {
		return domain.Payload{}, &apperrors.StatusError{Kind: apperrors.ErrFetchFailed, StatusCode: status, Body: payload}
	}
	meals, err := domain.NewPayload([]byte(payload))
	if err != nil {
		return domain.Payload{}, fmt.Errorf("%w: %v", apperrors.ErrFetchFailed, err)
	}
	return meals, nil
}

func (c *EasistentClient) setIdentityHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.identity.UserAgent)
	req.Header.Set("x-app-name", c.identity.AppName)
	req.Header.Set("x-client-version", c.identity.Version)
	req.Header.Set("x-client-platform", c.identity.Platform)
}

func (c *EasistentClient) do(req *http.Request) (int, string, error) {
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return 0, "", fmt.Errorf("read %s response: %w", req.URL.Path, err)
	}
	if len(body) > maxResponseBytes {
		return 0, "", fmt.Errorf("%s response too large: over %d bytes", req.URL.Path, maxResponseBytes)
	}
	c.logger.Debug("api request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)
	return resp.StatusCode, string(body), nil
}

func rawText(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return trimmed
}
