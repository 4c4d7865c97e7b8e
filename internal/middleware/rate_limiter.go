package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// ── Per-IP limiter store ──────────────────────────────────────────────────────
// One token bucket per client IP. Idle entries are purged periodically so
// IPs that never return do not accumulate.

const (
	purgeInterval = 5 * time.Minute
	idleAfter     = 10 * time.Minute
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipLimiters struct {
	mu      sync.Mutex
	entries map[string]*ipLimiter
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

func newIPLimiters(perMinute int) *ipLimiters {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &ipLimiters{
		entries: make(map[string]*ipLimiter),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
		now:     time.Now,
	}
}

func (l *ipLimiters) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	e, ok := l.entries[ip]
	if !ok {
		e = &ipLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[ip] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

func (l *ipLimiters) purge() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-idleAfter)
	purged := 0
	for ip, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, ip)
			purged++
		}
	}
	return purged
}

func (l *ipLimiters) runPurge(ctx context.Context, name string) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.purge(); n > 0 {
				log.Debug().Str("limiter", name).Int("entries_purged", n).Msg("rate limiter purged")
			}
		}
	}
}

// ── Login rate limiter ────────────────────────────────────────────────────────

// LoginRateLimiter limits login attempts to perMinute per IP. The purge
// goroutine stops with ctx.
func LoginRateLimiter(ctx context.Context, perMinute int) gin.HandlerFunc {
	l := newIPLimiters(perMinute)
	go l.runPurge(ctx, "login")
	return limitWith(l, "Demasiados intentos de login. Intente en 1 minuto.")
}

// ── General rate limiter ──────────────────────────────────────────────────────

// RateLimiter limits every request of the group to perMinute per IP.
func RateLimiter(ctx context.Context, perMinute int) gin.HandlerFunc {
	l := newIPLimiters(perMinute)
	go l.runPurge(ctx, "api")
	return limitWith(l, "Demasiadas solicitudes. Intente nuevamente en un momento.")
}

func limitWith(l *ipLimiters, msg string) gin.HandlerFunc {
	retry := strconv.Itoa(int(time.Duration(float64(time.Second)/float64(l.limit)).Seconds()) + 1)
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.Header("Retry-After", retry)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}
