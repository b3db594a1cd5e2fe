package discord

import (
	"sync"

	"golang.org/x/time/rate"
)

// ChannelLimiter throttles unsolicited replies per channel using token
// buckets, so a burst of pasted links does not turn into a burst of cards.
type ChannelLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewChannelLimiter creates a ChannelLimiter allowing rps replies per second
// with the given burst in each channel. A burst below 1 is raised to 1.
func NewChannelLimiter(rps float64, burst int) *ChannelLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ChannelLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

// Allow reports whether a reply may be sent to the channel now.
// A nil ChannelLimiter allows everything.
func (l *ChannelLimiter) Allow(channelID string) bool {
	if l == nil {
		return true
	}

	l.mu.Lock()
	limiter, ok := l.limiters[channelID]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), l.burst)
		l.limiters[channelID] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}
