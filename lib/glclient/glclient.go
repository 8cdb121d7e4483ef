// Package glclient builds GitLab API clients from resolved configuration.
// A fresh client is constructed for every tool call so that settings such as
// TLS verification stay scoped to the call that requested them and never
// leak into process-wide state.
package glclient

import (
	"crypto/tls"
	"fmt"
	"net/http"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"gitlab.com/reviewkit/gitlab-comments-mcp/lib/build"
	"gitlab.com/reviewkit/gitlab-comments-mcp/lib/config"
)

// New returns a GitLab client for the given configuration. Retries are
// disabled: the server issues exactly one request per tool call and leaves
// retry decisions to the caller.
func New(cfg config.Config) (*gitlab.Client, error) {
	opts := []gitlab.ClientOptionFunc{
		gitlab.WithBaseURL(cfg.Host),
		gitlab.WithoutRetries(),
		gitlab.WithRequestOptions(
			gitlab.WithHeader("User-Agent", "gitlab-comments-mcp/"+build.Version()),
		),
	}

	if !cfg.SSLVerify {
		opts = append(opts, gitlab.WithHTTPClient(insecureHTTPClient()))
	}

	client, err := gitlab.NewClient(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating GitLab client for %s: %w", cfg.Host, err)
	}

	return client, nil
}

// insecureHTTPClient returns an HTTP client that skips certificate
// verification. Used only when GITLAB_SSL_VERIFY requests it, typically for
// self-signed certificate environments.
func insecureHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion:         tls.VersionTLS12,
				InsecureSkipVerify: true, //nolint:gosec // explicit opt-in via GITLAB_SSL_VERIFY
			},
		},
	}
}
