// Package config resolves the GitLab connection settings from the process
// environment. Resolution happens once per tool call rather than at startup,
// so a misconfigured environment fails the individual call instead of
// preventing the server from coming up.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Environment variables recognized by Resolve. For host and token the first
// non-empty variable wins.
const (
	EnvHost        = "GITLAB_HOST"
	EnvBaseURL     = "GITLAB_BASE_URL"
	EnvToken       = "GITLAB_TOKEN"
	EnvAccessToken = "GITLAB_PERSONAL_ACCESS_TOKEN"
	EnvSSLVerify   = "GITLAB_SSL_VERIFY"
)

var (
	ErrMissingHost  = fmt.Errorf("missing GitLab host: set %s or %s", EnvHost, EnvBaseURL)
	ErrMissingToken = fmt.Errorf("missing GitLab token: set %s or %s", EnvToken, EnvAccessToken)
)

// ErrConfiguration matches any configuration error returned by Resolve.
var ErrConfiguration = errors.New("invalid configuration")

// Config holds the resolved GitLab connection settings.
type Config struct {
	// Host is the base URL of the GitLab instance, without a trailing slash.
	Host string

	// Token is the private access token sent with every API request.
	Token string

	// SSLVerify controls TLS certificate verification. Disabling it is an
	// explicit escape hatch for self-signed certificate environments and is
	// scoped to the HTTP client built from this Config, never the process.
	SSLVerify bool
}

// Resolve reads the GitLab settings from the environment. It returns
// ErrMissingHost or ErrMissingToken (both wrapping ErrConfiguration) when a
// required variable is absent.
func Resolve() (Config, error) {
	host := firstNonEmpty(os.Getenv(EnvHost), os.Getenv(EnvBaseURL))
	if host == "" {
		return Config{}, fmt.Errorf("%w: %w", ErrConfiguration, ErrMissingHost)
	}

	token := firstNonEmpty(os.Getenv(EnvToken), os.Getenv(EnvAccessToken))
	if token == "" {
		return Config{}, fmt.Errorf("%w: %w", ErrConfiguration, ErrMissingToken)
	}

	return Config{
		Host:      strings.TrimRight(host, "/"),
		Token:     token,
		SSLVerify: sslVerify(os.Getenv(EnvSSLVerify)),
	}, nil
}

// RedactedToken returns a short prefix of the token suitable for diagnostic
// logs. The full token must never be logged.
func (c Config) RedactedToken() string {
	const visible = 4

	if len(c.Token) <= visible {
		return fmt.Sprintf("(len=%d)", len(c.Token))
	}

	return c.Token[:visible] + "..."
}

// sslVerify interprets the GITLAB_SSL_VERIFY value. Verification is on by
// default; only a known set of falsy tokens disables it.
func sslVerify(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false", "no":
		return false
	default:
		return true
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
