package models

import (
	"errors"
	"fmt"
)

// Marketplace failure taxonomy.
var (
	ErrMalformedIdentifier = errors.New("malformed nft identifier")
	ErrNotFound            = errors.New("not found")
	ErrRateLimited         = errors.New("rate limited")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrMisconfigured       = errors.New("marketplace credentials not configured")
)

// Request validation failures raised below the HTTP layer.
var (
	ErrInvalidHorizon = errors.New("invalid horizon")
	ErrInvalidSeries  = errors.New("invalid price series")
	ErrUnknownModel   = errors.New("unknown model")
)

// UpstreamError is a non-2xx marketplace response outside the mapped statuses.
// 5xx responses are retryable.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("marketplace error: %d - %s", e.Status, e.Body)
}

// Retryable reports whether the request may be retried.
func (e *UpstreamError) Retryable() bool { return e.Status >= 500 }

// IsRetryable reports whether err is a retryable upstream failure.
func IsRetryable(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Retryable()
}
