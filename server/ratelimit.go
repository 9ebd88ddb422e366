package server

import (
	"net/http"
	"time"

	"go.uber.org/ratelimit"
)

// maxProveRateLimit bounds the configured rate to a one microsecond slot
const maxProveRateLimit = 1_000_000

// maxQueued bounds the number of requests waiting for a slot
const maxQueued = 1 << 16

// throttleMiddleware spaces requests at most perSecond per second. Requests
// wait for their slot; a request whose slot lies beyond maxWait is refused
// with 429 so that queued proofs cannot outlive their timeout.
func throttleMiddleware(perSecond int, maxWait time.Duration) func(next http.Handler) http.Handler {
	limiter := ratelimit.New(perSecond, ratelimit.WithSlack(0))
	slot := max(time.Nanosecond, time.Second/time.Duration(perSecond))
	queue := make(chan struct{}, min(maxQueued, max(1, int(maxWait/slot))))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case queue <- struct{}{}:
			default:
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			limiter.Take()
			<-queue

			if r.Context().Err() != nil {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
