package routerhandlers

import (
	"net/http"

	"github.com/MatiasNAmendola/wellrested/router"
)

// RecoveryConfig configures the Recovery middleware behaviour.
type RecoveryConfig struct {
	// LogFunc is an optional callback invoked with the request and the
	// recovered value when a panic occurs. When nil, no logging is performed.
	LogFunc func(r *http.Request, err any)
}

// RecoveryMiddleware returns a middleware that recovers from panics raised
// anywhere in the rest of the chain, including the continuation. When a
// panic occurs it returns 500 Internal Server Error to the client and
// optionally invokes LogFunc. The dispatch chain itself never recovers;
// this middleware is the opt-in net, placed first in the stack.
func RecoveryMiddleware(cfg RecoveryConfig) router.MiddlewareFunc {
	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		defer func() {
			if err := recover(); err != nil {
				if cfg.LogFunc != nil {
					cfg.LogFunc(r, err)
				}

				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	}
}
