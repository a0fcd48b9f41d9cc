package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/terapiemd/booking-service/internal/api/handlers"
)

const (
	msgRateLimited = "too many requests, try again later"

	limiterIdleTTL       = 10 * time.Minute
	limiterSweepInterval = time.Minute

	// DefaultMaxClients bounds the number of tracked client buckets
	DefaultMaxClients = 10000
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterConfig configures NewRateLimiter
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
	// TrustedProxies lists the IPs or CIDRs allowed to set X-Forwarded-For.
	// Requests from any other peer are keyed on their own address.
	TrustedProxies []string
	MaxClients     int
}

// RateLimiter keeps one token bucket per client address
type RateLimiter struct {
	rps        rate.Limit
	burst      int
	maxClients int
	trusted    []*net.IPNet
	log        Logger

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter creates a limiter allowing cfg.RequestsPerSecond with cfg.Burst per client
func NewRateLimiter(cfg RateLimiterConfig, log Logger) (*RateLimiter, error) {
	trusted, err := parseProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	maxClients := cfg.MaxClients
	if maxClients <= 0 {
		maxClients = DefaultMaxClients
	}

	return &RateLimiter{
		rps:        rate.Limit(cfg.RequestsPerSecond),
		burst:      cfg.Burst,
		maxClients: maxClients,
		trusted:    trusted,
		log:        log,
		visitors:   make(map[string]*visitor),
		now:        time.Now,
	}, nil
}

// Middleware rejects requests over the limit with 429
func (l *RateLimiter) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := l.clientIP(r)
			if !l.allow(ip) {
				l.log.Warn("%s %s - rate limit exceeded for %s", r.Method, r.URL.Path, ip)
				handlers.RespondTooManyRequests(w, msgRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterSweepInterval {
		l.sweepLocked(now)
	}

	v, ok := l.visitors[key]
	if !ok {
		if len(l.visitors) >= l.maxClients {
			// full until the next sweep frees idle buckets
			return false
		}
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// sweepLocked drops buckets idle for longer than limiterIdleTTL
func (l *RateLimiter) sweepLocked(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}

// clientIP returns the peer address, or the nearest untrusted X-Forwarded-For hop when the
// peer is a trusted proxy
func (l *RateLimiter) clientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}

	if !l.isTrusted(peer) {
		return peer
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !l.isTrusted(hop) {
			return hop
		}
	}
	return peer
}

func (l *RateLimiter) isTrusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range l.trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func parseProxies(entries []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", entry)
			}
			bits := 32
			if ip.To4() == nil {
				bits = 128
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		nets = append(nets, n)
	}
	return nets, nil
}
