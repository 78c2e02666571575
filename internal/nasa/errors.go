package nasa

import (
	"errors"
	"fmt"
)

// ErrRetriesExhausted wraps the last transient failure once the retry
// budget is spent.
var ErrRetriesExhausted = errors.New("fetch retries exhausted")

// ErrRateLimited marks a 429 response from the provider.
var ErrRateLimited = errors.New("rate limited by provider")

// StatusError is a non-retryable provider failure: any non-2xx status other
// than 429. The client surfaces it immediately without retrying.
type StatusError struct {
	Source   SourceClass
	Endpoint string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d from %s", e.Source, e.Status, e.Endpoint)
}

// IsNonRetryable reports whether err is a provider failure the client will
// never retry.
func IsNonRetryable(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}
