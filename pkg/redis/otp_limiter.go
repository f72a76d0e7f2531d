package redis

import (
	"context"
	"time"
)

var (
	incrValue   = Incr
	expireValue = Expire
)

// OTPLimiter caps how often a single identifier may request a one-time code
type OTPLimiter struct {
	limit  int64
	window time.Duration
}

// NewOTPLimiter creates a limiter allowing limit requests per window
func NewOTPLimiter(limit int, window time.Duration) *OTPLimiter {
	return &OTPLimiter{
		limit:  int64(limit),
		window: window,
	}
}

// Allow records a request for the identifier and reports whether it is
// within the window's budget. The window starts at the first request.
func (l *OTPLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	key := "otp:req:" + identifier

	count, err := incrValue(ctx, key)
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := expireValue(ctx, key, l.window); err != nil {
			return false, err
		}
	}

	return count <= l.limit, nil
}
