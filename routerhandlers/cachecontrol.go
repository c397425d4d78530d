package routerhandlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/MatiasNAmendola/wellrested/router"
)

// ErrNoCacheControlRules is returned when CacheControlConfig.Rules is empty.
var ErrNoCacheControlRules = errors.New("cache control: at least one rule is required")

// CacheControlRule maps a Content-Type prefix to a Cache-Control and
// Expires header value.
type CacheControlRule struct {
	// ContentType is a content type prefix to match against the response
	// Content-Type (e.g. "image/", "application/json"). Matching is
	// case-insensitive via strings.HasPrefix on the lowercased value.
	ContentType string

	// Value is the Cache-Control header value to set when this rule
	// matches (e.g. "public, max-age=86400").
	Value string

	// Expires is the duration added to the current time to compute the
	// Expires header value (formatted as HTTP-date per RFC 9110). A zero
	// duration emits the current time, marking the response immediately
	// stale. A negative duration means no Expires header is set for this
	// rule.
	Expires time.Duration
}

// CacheControlConfig configures the CacheControl middleware behaviour.
type CacheControlConfig struct {
	// Rules is the ordered list of content type rules. The first matching
	// rule wins. Required; at least one must be provided.
	Rules []CacheControlRule

	// DefaultValue is the Cache-Control header value for responses that
	// don't match any rule. When empty, no header is set for unmatched
	// types.
	DefaultValue string
}

// cacheControlRule is a pre-normalized copy of CacheControlRule so the
// lowercase conversion happens once at factory time.
type cacheControlRule struct {
	contentType string
	value       string
	expires     time.Duration
	hasExpires  bool
}

// CacheControlMiddleware returns a middleware that sets Cache-Control and
// Expires response headers based on the Content-Type the rest of the chain
// produces. Rules are evaluated in order; the first rule whose ContentType
// prefix matches wins. Headers already set downstream are not overwritten.
//
// It returns ErrNoCacheControlRules if Rules is empty.
func CacheControlMiddleware(cfg CacheControlConfig) (router.MiddlewareFunc, error) {
	if len(cfg.Rules) == 0 {
		return nil, ErrNoCacheControlRules
	}

	rules := make([]cacheControlRule, len(cfg.Rules))
	for i, r := range cfg.Rules {
		rules[i] = cacheControlRule{
			contentType: strings.ToLower(r.ContentType),
			value:       r.Value,
			expires:     r.Expires,
			hasExpires:  r.Expires >= 0,
		}
	}

	defaultValue := cfg.DefaultValue

	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		cw := &cacheControlResponseWriter{
			ResponseWriter: w,
			rules:          rules,
			defaultValue:   defaultValue,
		}

		next.ServeHTTP(cw, r)
	}, nil
}

// cacheControlResponseWriter intercepts WriteHeader to inspect the response
// Content-Type and set Cache-Control and Expires before flushing headers.
type cacheControlResponseWriter struct {
	http.ResponseWriter
	rules        []cacheControlRule
	defaultValue string
	wroteHeader  bool
}

func (cw *cacheControlResponseWriter) WriteHeader(statusCode int) {
	if cw.wroteHeader {
		return
	}
	cw.wroteHeader = true

	h := cw.Header()

	if h.Get("Cache-Control") == "" || h.Get("Expires") == "" {
		ct := strings.ToLower(h.Get("Content-Type"))

		var matched *cacheControlRule
		for i := range cw.rules {
			if strings.HasPrefix(ct, cw.rules[i].contentType) {
				matched = &cw.rules[i]
				break
			}
		}

		switch {
		case matched != nil:
			if h.Get("Cache-Control") == "" && matched.value != "" {
				h.Set("Cache-Control", matched.value)
			}
			if h.Get("Expires") == "" && matched.hasExpires {
				h.Set("Expires", time.Now().UTC().Add(matched.expires).Format(http.TimeFormat))
			}
		case cw.defaultValue != "":
			if h.Get("Cache-Control") == "" {
				h.Set("Cache-Control", cw.defaultValue)
			}
		}
	}

	cw.ResponseWriter.WriteHeader(statusCode)
}

func (cw *cacheControlResponseWriter) Write(b []byte) (int, error) {
	if !cw.wroteHeader {
		cw.WriteHeader(http.StatusOK)
	}

	return cw.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter for middleware compatibility.
func (cw *cacheControlResponseWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}
