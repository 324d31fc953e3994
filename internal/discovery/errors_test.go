package discovery

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestWrapProviderErrorAuthExpired(t *testing.T) {
	err := wrapProviderError(&googleapi.Error{Code: 401, Message: "Invalid Credentials"})

	assert.True(t, errors.Is(err, ErrAuthExpired))
	assert.Contains(t, err.Error(), "Invalid Credentials")
}

func TestWrapProviderErrorQuota(t *testing.T) {
	apiErr := &googleapi.Error{
		Code:   403,
		Errors: []googleapi.ErrorItem{{Reason: "quotaExceeded"}},
	}

	err := wrapProviderError(apiErr)

	assert.True(t, errors.Is(err, ErrQuotaExceeded))
}

func TestWrapProviderErrorPlainForbiddenIsGeneric(t *testing.T) {
	err := wrapProviderError(&googleapi.Error{Code: 403, Message: "insufficient permissions"})

	assert.False(t, errors.Is(err, ErrQuotaExceeded))
	assert.False(t, errors.Is(err, ErrAuthExpired))
	assert.Contains(t, err.Error(), "insufficient permissions")
}

func TestWrapProviderErrorRateLimited(t *testing.T) {
	err := wrapProviderError(&googleapi.Error{Code: 429})

	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestWrapProviderErrorGenericPreservesMessage(t *testing.T) {
	err := wrapProviderError(errors.New("connection reset by peer"))

	assert.False(t, errors.Is(err, ErrAuthExpired))
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestWrapProviderErrorUnwrapsNestedAPIError(t *testing.T) {
	wrapped := fmt.Errorf("failed to search messages: %w", &googleapi.Error{Code: 401})

	assert.True(t, errors.Is(wrapProviderError(wrapped), ErrAuthExpired))
}

func TestIsFatalProviderError(t *testing.T) {
	assert.True(t, isFatalProviderError(&googleapi.Error{Code: 401}))
	assert.True(t, isFatalProviderError(&googleapi.Error{Code: 429}))
	assert.True(t, isFatalProviderError(&googleapi.Error{Code: 403, Errors: []googleapi.ErrorItem{{Reason: "userRateLimitExceeded"}}}))
	assert.False(t, isFatalProviderError(&googleapi.Error{Code: 403, Message: "forbidden"}))
	assert.False(t, isFatalProviderError(&googleapi.Error{Code: 500}))
	assert.False(t, isFatalProviderError(errors.New("dial tcp: timeout")))
}
