package domain

import (
	"fmt"
	"strings"
)

const (
	EmbedStartMarker = `<script id="embedded-meals-data" type="application/json">`
	EmbedEndMarker   = `</script>`
)

const (
	EnvUsername = "EASISTENT_USERNAME"
	EnvPassword = "EASISTENT_PASSWORD"
)

// SupportedUserTypes is sent on login; the API rejects logins that omit it.
var SupportedUserTypes = []string{"parent", "child"}

type Credentials struct {
	Username string
	Password string
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("%s is required", EnvUsername)
	}
	if strings.TrimSpace(c.Password) == "" {
		return fmt.Errorf("%s is required", EnvPassword)
	}
	return nil
}

// String keeps the password out of logs and error messages.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Username: %q, Password: [redacted]}", c.Username)
}

// Session is the per-run authentication state returned by login.
type Session struct {
	Token     string
	SubjectID string
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.Token) == "" {
		return fmt.Errorf("access token is required")
	}
	if strings.TrimSpace(s.SubjectID) == "" {
		return fmt.Errorf("user id is required")
	}
	return nil
}

type SyncResult struct {
	Date        string
	Payload     Payload
	JSONPath    string
	HTMLPath    string
	HTMLUpdated bool
	Summary     Summary
}
