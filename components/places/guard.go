package places

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitGuard rejects requests with 429 once limiter runs out of tokens.
func RateLimitGuard(limiter *rate.Limiter) GuardFunc {
	return func(r *http.Request) error {
		if limiter == nil || limiter.Allow() {
			return nil
		}
		return StatusError{Code: http.StatusTooManyRequests}
	}
}
