package out_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	mealsout "mealsync/internal/modules/meals/adapter/out"
	"mealsync/internal/modules/meals/domain"
	"mealsync/internal/platform/config"
	apperrors "mealsync/internal/platform/errors"
)

func newClient(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func checkIdentity(t *testing.T, r *http.Request) {
	t.Helper()
	want := config.Default().Client
	if r.Header.Get("x-app-name") != want.AppName ||
		r.Header.Get("x-client-version") != want.Version ||
		r.Header.Get("x-client-platform") != want.Platform ||
		r.Header.Get("User-Agent") != want.UserAgent {
		t.Errorf("missing client identity headers: %v", r.Header)
	}
	if r.Header.Get("Content-Type") != "application/json" {
		t.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
	}
}

func TestLoginSendsCredentialsAndParsesSession(t *testing.T) {
	t.Parallel()
	srv := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/m/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		checkIdentity(t, r)
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("decode login body: %v", err)
		}
		want := map[string]any{
			"username":             "parent@example.com",
			"password":             "hunter2",
			"supported_user_types": []any{"parent", "child"},
		}
		if diff := cmp.Diff(want, body); diff != "" {
			t.Errorf("login body mismatch (-want +got):\n%s", diff)
		}
		_, _ = io.WriteString(w, `{"access_token":{"token":"tok-1","expiration_date":"x"},"user":{"id":4242,"name":"Kid"}}`)
	}))
	client := mealsout.NewEasistentClient(srv.URL, config.Default().Client, srv.Client(), zaptest.NewLogger(t))
	session, err := client.Login(context.Background(), domain.Credentials{Username: "parent@example.com", Password: "hunter2"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Token != "tok-1" || session.SubjectID != "4242" {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"bad credentials"}`},
		{name: "missing token", status: http.StatusOK, body: `{"user":{"id":1}}`},
		{name: "missing user", status: http.StatusOK, body: `{"access_token":{"token":"t"}}`},
		{name: "not json", status: http.StatusOK, body: `<html>`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			client := mealsout.NewEasistentClient(srv.URL, config.Default().Client, srv.Client(), nil)
			_, err := client.Login(context.Background(), domain.Credentials{Username: "u", Password: "p"})
			if !errors.Is(err, apperrors.ErrLoginFailed) {
				t.Fatalf("expected login failure, got %v", err)
			}
			if tc.status != http.StatusOK {
				var statusErr *apperrors.StatusError
				if !errors.As(err, &statusErr) {
					t.Fatalf("expected status error, got %T", err)
				}
				if statusErr.StatusCode != tc.status || statusErr.Body != tc.body {
					t.Fatalf("unexpected status error %+v", statusErr)
				}
			}
		})
	}
}

func TestFetchMenuSendsSessionAndDate(t *testing.T) {
	t.Parallel()
	const body = `{"items":[{"date":"2024-01-15","menus":{"lunch":[{"name":"Soup"}]}}]}`
	srv := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/m/meals/menus" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		checkIdentity(t, r)
		if got := r.URL.Query().Get("from"); got != "2024-01-15" {
			t.Errorf("unexpected from %q", got)
		}
		if got := r.URL.Query().Get("to"); got != "2024-01-15" {
			t.Errorf("unexpected to %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("unexpected authorization %q", got)
		}
		if got := r.Header.Get("X-Child-Id"); got != "4242" {
			t.Errorf("unexpected child id %q", got)
		}
		_, _ = io.WriteString(w, body)
	}))
	client := mealsout.NewEasistentClient(srv.URL+"/", config.Default().Client, srv.Client(), nil)
	payload, err := client.FetchMenu(context.Background(), domain.Session{Token: "tok-1", SubjectID: "4242"}, "2024-01-15")
	if err != nil {
		t.Fatalf("fetch menu: %v", err)
	}
	if string(payload.Raw()) != body {
		t.Fatalf("payload should be returned verbatim, got %s", payload.Raw())
	}
}

func TestFetchMenuFailures(t *testing.T) {
	t.Parallel()
	srv := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("from") == "2024-01-01" {
			_, _ = io.WriteString(w, "not json")
			return
		}
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, "forbidden")
	}))
	client := mealsout.NewEasistentClient(srv.URL, config.Default().Client, srv.Client(), nil)
	session := domain.Session{Token: "t", SubjectID: "1"}

	_, err := client.FetchMenu(context.Background(), session, "2024-01-02")
	var statusErr *apperrors.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusForbidden || statusErr.Body != "forbidden" {
		t.Fatalf("expected 403 status error, got %v", err)
	}
	if !errors.Is(err, apperrors.ErrFetchFailed) {
		t.Fatalf("expected fetch failure kind, got %v", err)
	}

	if _, err := client.FetchMenu(context.Background(), session, "2024-01-01"); !errors.Is(err, apperrors.ErrFetchFailed) {
		t.Fatalf("expected invalid body fetch failure, got %v", err)
	}
}

func TestFetchMenuRejectsOversizedBody(t *testing.T) {
	t.Parallel()
	srv := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"items":[]}`+strings.Repeat(" ", 8<<20))
	}))
	client := mealsout.NewEasistentClient(srv.URL, config.Default().Client, srv.Client(), nil)
	_, err := client.FetchMenu(context.Background(), domain.Session{Token: "t", SubjectID: "1"}, "2024-01-02")
	if !errors.Is(err, apperrors.ErrFetchFailed) {
		t.Fatalf("expected fetch failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "too large") {
		t.Fatalf("expected size diagnostic, got %v", err)
	}
}

func TestClientTransportErrorIsWrapped(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	client := mealsout.NewEasistentClient(url, config.Default().Client, mealsout.NewHTTPClient(2*time.Second), nil)
	if _, err := client.Login(context.Background(), domain.Credentials{Username: "u", Password: "p"}); !errors.Is(err, apperrors.ErrLoginFailed) {
		t.Fatalf("expected wrapped login failure, got %v", err)
	}
}
