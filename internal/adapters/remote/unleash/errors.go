package unleash

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/olusolaa/flagsync/internal/errors"
)

// StatusError carries the HTTP status of a failed admin API call.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func classifyStatusError(method, path string, status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > 512 {
		msg = msg[:512]
	}
	statusErr := &StatusError{Method: method, Path: path, StatusCode: status, Body: msg}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.WrapUserFacing(statusErr, errors.CodeRemoteAuthError,
			"the flag service rejected the API token", "Check that FLAGSYNC_REMOTE_TOKEN is an admin token for this environment.")
	case http.StatusNotFound:
		return errors.Wrap(statusErr, errors.CodeResourceNotFound, fmt.Sprintf("%s not found", path))
	}
	return errors.Wrap(statusErr, errors.CodeRemoteAPIError, fmt.Sprintf("%s %s failed", method, path))
}

func classifyTransportError(ctx context.Context, method, path string, err error) error {
	if ctx.Err() != nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, errors.CodeRemoteAPIError, fmt.Sprintf("%s %s canceled or timed out", method, path))
	}
	return errors.Wrap(err, errors.CodeRemoteAPIError, fmt.Sprintf("%s %s failed", method, path))
}

// IsNotFound reports whether err is a 404 from the admin API.
func IsNotFound(err error) bool {
	return errors.Is(err, errors.CodeResourceNotFound)
}
