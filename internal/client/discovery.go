package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Test199T/vita-wise-ai-sub001/internal/domain"
)

// endpoint is one candidate route for a logical operation
type endpoint struct {
	Method string
	Path   string
}

func (e endpoint) String() string {
	return e.Method + " " + e.Path
}

// Logical operation keys. Each keys at most one endpoint cache entry and one
// in-flight request.
const (
	opProfileRead   = "profile.read"
	opProfileUpdate = "profile.update"
	opHealthRead    = "health.read"
	opLogsRead      = "logs.read"
)

// Route naming has shifted across backend deployments; candidates are tried
// in order until one answers.
var (
	profileReadCandidates = []endpoint{
		{http.MethodGet, "/user/profile"},
		{http.MethodGet, "/users/profile"},
		{http.MethodGet, "/profile"},
		{http.MethodGet, "/me"},
		{http.MethodGet, "/user/me"},
	}

	profileUpdateCandidates = buildUpdateCandidates(
		[]string{http.MethodPut, http.MethodPatch, http.MethodPost},
		[]string{"/user/profile", "/users/profile", "/profile", "/me", "/user/me", "/user/profile/update"},
	)

	healthReadCandidates = []endpoint{
		{http.MethodGet, "/user/health-data"},
		{http.MethodGet, "/health-data"},
		{http.MethodGet, "/api/health-data"},
	}

	logsReadCandidates = []endpoint{
		{http.MethodGet, "/user/logs"},
		{http.MethodGet, "/logs"},
		{http.MethodGet, "/api/logs"},
	}

	probePaths = []string{"/health", "/api/health", "/status", "/ping"}
)

func buildUpdateCandidates(methods, paths []string) []endpoint {
	candidates := make([]endpoint, 0, len(methods)*len(paths))
	for _, path := range paths {
		for _, method := range methods {
			candidates = append(candidates, endpoint{method, path})
		}
	}
	return candidates
}

// resolve finds a working route for a logical operation and returns the
// response payload: the cached route is attempted first, then every candidate
// in order. It only fails once all candidates are exhausted.
//
// 401 surfaces immediately as an authentication error: the credential is
// assumed invalid, not the route. 400/422 also stop the loop -- the route
// accepted the request shape and rejected the payload, so the server message
// is surfaced verbatim. 404, other statuses and network-level failures move
// on to the next candidate.
func (c *Client) resolve(ctx context.Context, operation string, candidates []endpoint, payload []byte) ([]byte, error) {
	contentType := ""
	if payload != nil {
		contentType = jsonContentType
	}

	cached, err := c.cache.Get(ctx, operation)
	if err != nil {
		log.Warn().Err(err).Str("operation", operation).Msg("Failed to read endpoint cache")
	}
	if cached != nil {
		status, body, err := c.do(ctx, c.httpClient, cached.Method, cached.Path, payload, contentType)
		switch {
		case err == nil && success(status):
			return body, nil
		case status == http.StatusUnauthorized:
			return nil, authError(body)
		default:
			log.Warn().
				Str("operation", operation).
				Str("endpoint", cached.Method+" "+cached.Path).
				Msg("Cached endpoint failed, rediscovering")
			if err := c.cache.Delete(ctx, operation); err != nil {
				log.Warn().Err(err).Str("operation", operation).Msg("Failed to evict endpoint cache")
			}
		}
	}

	attempted := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		attempted = append(attempted, candidate.String())

		status, body, err := c.do(ctx, c.httpClient, candidate.Method, candidate.Path, payload, contentType)
		if err != nil {
			if isAuthFailure(err) {
				return nil, err
			}
			log.Warn().Err(err).
				Str("operation", operation).
				Str("endpoint", candidate.String()).
				Msg("Candidate endpoint unreachable")
			continue
		}

		switch {
		case success(status):
			entry := domain.EndpointEntry{Operation: operation, Method: candidate.Method, Path: candidate.Path}
			if err := c.cache.Put(ctx, entry); err != nil {
				log.Warn().Err(err).Str("operation", operation).Msg("Failed to persist endpoint cache")
			}
			log.Info().
				Str("operation", operation).
				Str("endpoint", candidate.String()).
				Msg("Discovered working endpoint")
			return body, nil

		case status == http.StatusUnauthorized:
			return nil, authError(body)

		case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
			return nil, &domain.ServerError{StatusCode: status, Message: extractMessage(body)}

		case status == http.StatusNotFound:
			log.Debug().
				Str("operation", operation).
				Str("endpoint", candidate.String()).
				Msg("Candidate endpoint not found")

		default:
			log.Warn().
				Int("status", status).
				Str("operation", operation).
				Str("endpoint", candidate.String()).
				Msg("Candidate endpoint failed")
		}
	}

	if !c.reachable(ctx) {
		return nil, fmt.Errorf("%s: %w", operation, domain.ErrBackendUnreachable)
	}
	return nil, &domain.NoEndpointError{Operation: operation, Attempted: attempted}
}

// reachable probes the health-check paths to tell a dead backend apart from
// one that merely renamed its routes. Any HTTP answer below 500 counts.
func (c *Client) reachable(ctx context.Context) bool {
	for _, path := range probePaths {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			continue
		}
		res, err := c.probeClient.Do(req)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("Reachability probe failed")
			continue
		}
		res.Body.Close()
		if res.StatusCode < http.StatusInternalServerError {
			return true
		}
	}
	return false
}

func isAuthFailure(err error) bool {
	return errors.Is(err, domain.ErrAuthentication)
}
