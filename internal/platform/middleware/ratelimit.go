// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/constants"
	"github.com/taibuivan/bookwise/internal/platform/respond"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterTable holds one token bucket per client IP.
type limiterTable struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
}

// wait reports how long the client must back off, or zero when the request
// may proceed. A denied reservation is cancelled so it does not eat tokens.
func (table *limiterTable) wait(clientIP string, now time.Time) time.Duration {
	table.mu.Lock()
	defer table.mu.Unlock()

	entry, found := table.buckets[clientIP]
	if !found {
		entry = &bucket{limiter: rate.NewLimiter(table.limit, table.burst)}
		table.buckets[clientIP] = entry
	}
	entry.lastSeen = now

	reservation := entry.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return time.Second
	}
	delay := reservation.DelayFrom(now)
	if delay > 0 {
		reservation.CancelAt(now)
	}
	return delay
}

func (table *limiterTable) evictIdle(now time.Time) {
	table.mu.Lock()
	defer table.mu.Unlock()

	for clientIP, entry := range table.buckets {
		if now.Sub(entry.lastSeen) > constants.RateLimitClientTTL {
			delete(table.buckets, clientIP)
		}
	}
}

// RateLimit throttles each client IP with a token bucket of the given rate
// and burst. Rejected requests get 429 RATE_LIMITED and a Retry-After header.
//
// Each call owns its table, so separate routers never share buckets. The
// eviction goroutine stops when ctx is cancelled.
func RateLimit(ctx context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	table := &limiterTable{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				table.evictIdle(now)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			delay := table.wait(ClientIP(request), time.Now())
			if delay <= 0 {
				next.ServeHTTP(writer, request)
				return
			}

			seconds := max(1, int(math.Ceil(delay.Seconds())))
			writer.Header().Set("Retry-After", strconv.Itoa(seconds))
			respond.Error(writer, request, apperr.RateLimited(seconds))
		})
	}
}
