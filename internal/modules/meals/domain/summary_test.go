package domain_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mealsync/internal/modules/meals/domain"
)

func mustPayload(t *testing.T, raw string) domain.Payload {
	t.Helper()
	p, err := domain.NewPayload([]byte(raw))
	if err != nil {
		t.Fatalf("new payload: %v", err)
	}
	return p
}

func TestSummarizeKeepsMenuOrder(t *testing.T) {
	t.Parallel()
	p := mustPayload(t, `{"items":[{"date":"2024-01-15","menus":{"snack":[{"name":"Apple"}],"lunch":[{"name":"Soup"},{"name":"Fish"}],"dinner":[]}},{"date":"2024-01-16"}]}`)
	got := domain.Summarize(p)
	want := domain.Summary{
		HasItems: true,
		Date:     "2024-01-15",
		Menus: []domain.MenuCount{
			{Type: "snack", Count: 1},
			{Type: "lunch", Count: 2},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeToleratesMissingFields(t *testing.T) {
	t.Parallel()
	cases := map[string]domain.Summary{
		`{}`:                                  {},
		`[1,2]`:                               {},
		`{"items":[]}`:                        {},
		`{"items":"nope"}`:                    {},
		`{"items":[{}]}`:                      {HasItems: true},
		`{"items":[42]}`:                      {HasItems: true},
		`{"items":[{"date":20240115}]}`:       {HasItems: true, Date: "20240115"},
		`{"items":[{"menus":[]}]}`:            {HasItems: true},
		`{"items":[{"menus":{"lunch":"x"}}]}`: {HasItems: true},
	}
	for raw, want := range cases {
		got := domain.Summarize(mustPayload(t, raw))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("summary of %s mismatch (-want +got):\n%s", raw, diff)
		}
	}
}

func TestCredentialsValidateAndRedact(t *testing.T) {
	t.Parallel()
	creds := domain.Credentials{Username: "parent@example.com", Password: "hunter2"}
	if err := creds.Validate(); err != nil {
		t.Fatalf("expected valid credentials: %v", err)
	}
	if s := creds.String(); s == "" || strings.Contains(s, "hunter2") {
		t.Fatalf("password leaked in %q", s)
	}
	if err := (domain.Credentials{Password: "x"}).Validate(); err == nil {
		t.Fatalf("expected missing username error")
	}
	if err := (domain.Credentials{Username: "x"}).Validate(); err == nil {
		t.Fatalf("expected missing password error")
	}
	if err := (domain.Credentials{Username: "x", Password: " \t"}).Validate(); err == nil {
		t.Fatalf("expected blank password error")
	}
}

func TestSessionValidate(t *testing.T) {
	t.Parallel()
	if err := (domain.Session{Token: "t", SubjectID: "1"}).Validate(); err != nil {
		t.Fatalf("expected valid session: %v", err)
	}
	if err := (domain.Session{SubjectID: "1"}).Validate(); err == nil {
		t.Fatalf("expected missing token error")
	}
	if err := (domain.Session{Token: "t"}).Validate(); err == nil {
		t.Fatalf("expected missing subject error")
	}
}
