package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/osse101/ProvablyFair_Go/internal/logger"
	"github.com/osse101/ProvablyFair_Go/internal/metrics"
)

// proxySet holds the proxies allowed to set X-Forwarded-For. Entries may be
// single addresses or CIDR ranges.
type proxySet []netip.Prefix

func parseTrustedProxies(entries []string) proxySet {
	var set proxySet
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if prefix, err := netip.ParsePrefix(e); err == nil {
			set = append(set, prefix.Masked())
			continue
		}
		if addr, err := netip.ParseAddr(e); err == nil {
			set = append(set, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}
		slog.Warn(LogMsgBadTrustedProxy, "entry", e)
	}
	return set
}

func (s proxySet) contains(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range s {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// AuthMiddleware requires the X-API-Key header on everything outside PublicPaths
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	proxies := parseTrustedProxies(trustedProxies)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, proxies)
				detector.RecordFailedAuth(ip)
				metrics.AuthFailures.Inc()

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SuspiciousActivityDetector counts requests, wager placements and failed
// logins per IP. All counters reset every DetectorWindow.
type SuspiciousActivityDetector struct {
	mu          sync.Mutex
	clock       quartz.Clock
	maxRequests int
	maxWagers   int
	failedAuth  map[string]int
	requests    map[string]int
	wagers      map[string]int
	windowStart time.Time
}

// NewSuspiciousActivityDetector creates a detector on the real clock
func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return NewSuspiciousActivityDetectorWithClock(quartz.NewReal(), MaxRequestsPerWindow)
}

// NewSuspiciousActivityDetectorWithClock creates a detector with an injected
// clock and per-window request cap. The wager cap scales with it.
func NewSuspiciousActivityDetectorWithClock(clock quartz.Clock, maxRequests int) *SuspiciousActivityDetector {
	maxWagers := maxRequests / WagerShareOfRequests
	if maxWagers < 1 {
		maxWagers = 1
	}
	return &SuspiciousActivityDetector{
		clock:       clock,
		maxRequests: maxRequests,
		maxWagers:   maxWagers,
		failedAuth:  make(map[string]int),
		requests:    make(map[string]int),
		wagers:      make(map[string]int),
		windowStart: clock.Now(),
	}
}

// RecordFailedAuth counts a rejected API key and alerts past FailedAuthAlertAt
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindow()
	s.failedAuth[ip]++
	if s.failedAuth[ip] >= FailedAuthAlertAt {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", s.failedAuth[ip])
	}
}

// RecordRequest counts a request and reports whether ip is within its budget
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	return s.record(RateScopeRequests, ip)
}

// RecordWager counts a wager placement and reports whether ip is within the
// tighter placement budget
func (s *SuspiciousActivityDetector) RecordWager(ip string) bool {
	return s.record(RateScopeWagers, ip)
}

func (s *SuspiciousActivityDetector) record(scope, ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindow()
	counts, limit := s.requests, s.maxRequests
	if scope == RateScopeWagers {
		counts, limit = s.wagers, s.maxWagers
	}

	counts[ip]++
	if counts[ip] <= limit {
		return true
	}
	metrics.RateLimited.WithLabelValues(scope).Inc()
	if counts[ip]%HighRateLogEvery == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "scope", scope, "count", counts[ip])
	}
	return false
}

// rollWindow clears counters once DetectorWindow has passed. Caller holds mu.
func (s *SuspiciousActivityDetector) rollWindow() {
	if s.clock.Since(s.windowStart, clockTagDetectorWindow) <= DetectorWindow {
		return
	}
	s.requests = make(map[string]int)
	s.wagers = make(map[string]int)
	s.failedAuth = make(map[string]int)
	s.windowStart = s.clock.Now()
}

func isWagerPlacement(r *http.Request) bool {
	return r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, WagerPathPrefix)
}

// SecurityLoggingMiddleware enforces the per-IP request and wager budgets
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	proxies := parseTrustedProxies(trustedProxies)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, proxies)

			if !detector.RecordRequest(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			if isWagerPlacement(r) && !detector.RecordWager(ip) {
				logger.FromContext(r.Context()).Warn(LogMsgWagerRateLimited, "ip", ip, "path", r.URL.Path)
				http.Error(w, ErrMsgTooManyWagers, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractIP returns the client address. X-Forwarded-For is only honoured
// when the direct peer is a trusted proxy, and then its last hop is used.
func extractIP(r *http.Request, proxies proxySet) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if !proxies.contains(remoteIP) {
		return remoteIP
	}
	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// SecurityHeadersMiddleware sets the standard hardening headers
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueSameOrigin)
			h.Set(HeaderXSSProtection, HeaderValueXSSBlock)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			if !isPublicPath(r.URL.Path) {
				h.Set(HeaderCacheControl, HeaderValueNoStore)
			}
			next.ServeHTTP(w, r)
		})
	}
}
