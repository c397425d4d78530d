package routerhandlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/MatiasNAmendola/wellrested/router"
)

// ErrInvalidTimeout is returned when TimeoutConfig.Duration is not greater
// than zero.
var ErrInvalidTimeout = errors.New("timeout: duration must be greater than zero")

// TimeoutConfig configures the Timeout middleware behaviour.
type TimeoutConfig struct {
	// Duration is the maximum time allowed for the rest of the chain to
	// complete. Must be greater than zero.
	Duration time.Duration

	// Message is the response body returned when the chain times out.
	// When empty, the standard library default is used.
	Message string
}

// TimeoutMiddleware returns a middleware that limits how long the rest of
// the chain may run. The continuation is wrapped with http.TimeoutHandler,
// which returns 503 Service Unavailable when it does not complete within
// the configured duration.
//
// It returns ErrInvalidTimeout if Duration is not greater than zero.
func TimeoutMiddleware(cfg TimeoutConfig) (router.MiddlewareFunc, error) {
	if cfg.Duration <= 0 {
		return nil, ErrInvalidTimeout
	}

	duration := cfg.Duration
	message := cfg.Message

	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		http.TimeoutHandler(next, duration, message).ServeHTTP(w, r)
	}, nil
}
