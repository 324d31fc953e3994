package discovery

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// The three recognized provider failure kinds. Anything else is wrapped
// generically with the underlying message preserved. Callers match with
// errors.Is.
var (
	// ErrAuthExpired means the bearer credential was rejected; the caller
	// must re-authenticate. The pipeline never retries.
	ErrAuthExpired = errors.New("mail provider credential expired")

	// ErrQuotaExceeded means a provider-side quota or usage limit was hit.
	ErrQuotaExceeded = errors.New("mail provider quota exceeded")

	// ErrRateLimited means the provider asked us to back off. Whether to
	// retry later is the caller's decision.
	ErrRateLimited = errors.New("mail provider rate limited")
)

// wrapProviderError translates a provider failure into one of the typed
// pipeline errors, keeping the original message for diagnostics.
func wrapProviderError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %v", ErrAuthExpired, err)
		case http.StatusForbidden:
			if isQuotaError(apiErr) {
				return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
			}
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
	}
	return fmt.Errorf("mail discovery failed: %w", err)
}

// isFatalProviderError reports whether a per-item failure should abort the
// whole run instead of being recovered locally. Only credential, quota, and
// rate-limit failures qualify; plain network or query errors do not.
func isFatalProviderError(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusTooManyRequests:
		return true
	case http.StatusForbidden:
		return isQuotaError(apiErr)
	}
	return false
}

// isQuotaError distinguishes the quota variant of a 403 from plain
// permission denials.
func isQuotaError(apiErr *googleapi.Error) bool {
	for _, item := range apiErr.Errors {
		switch item.Reason {
		case "quotaExceeded", "rateLimitExceeded", "userRateLimitExceeded", "dailyLimitExceeded":
			return true
		}
	}
	return strings.Contains(strings.ToLower(apiErr.Message), "quota")
}
