package routerhandlers

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/netutil"

	"github.com/MatiasNAmendola/wellrested/router"
)

// ServerConfig configures the Server middleware behaviour.
type ServerConfig struct {
	// Hostname is the value written to the X-Server-Hostname response
	// header. Resolution order: Hostname field, then HostnameEnv
	// environment variable, then os.Hostname.
	Hostname string

	// HostnameEnv is a list of environment variable names checked in
	// order (e.g. ["POD_NAME", "HOSTNAME"]). The first non-empty
	// value is used. Only consulted when Hostname is empty. When all
	// variables are unset or empty, os.Hostname is used as a fallback.
	HostnameEnv []string
}

// ServerMiddleware returns a middleware that sets server identification
// response headers before invoking the continuation. The hostname is
// resolved once when the middleware is created. It returns an error if the
// hostname cannot be determined.
func ServerMiddleware(cfg ServerConfig) (router.MiddlewareFunc, error) {
	hostname := cfg.Hostname

	if hostname == "" {
		for _, env := range cfg.HostnameEnv {
			if v, ok := os.LookupEnv(env); ok && v != "" {
				hostname = v
				break
			}
		}
	}

	if hostname == "" {
		h, err := os.Hostname()
		if err != nil {
			return nil, err
		}

		hostname = h
	}

	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		w.Header().Set("X-Server-Hostname", hostname)
		next.ServeHTTP(w, r)
	}, nil
}

// ListenConfig configures ListenAndServe.
type ListenConfig struct {
	// Addr is the TCP address to listen on, ":http" if empty.
	Addr string

	// MaxConns caps the number of simultaneous connections. Zero means
	// no limit.
	MaxConns int

	// ReadHeaderTimeout bounds how long the server waits for request
	// headers. Defaults to 10 seconds; slowloris protection.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown once ctx is cancelled.
	// Defaults to 30 seconds.
	ShutdownTimeout time.Duration
}

// ListenAndServe serves handler on the configured address until ctx is
// cancelled, then shuts down gracefully. When MaxConns is set, the listener
// is wrapped with netutil.LimitListener so excess connections block in the
// accept queue instead of exhausting file descriptors.
func ListenAndServe(ctx context.Context, cfg ListenConfig, handler http.Handler) error {
	addr := cfg.Addr
	if addr == "" {
		addr = ":http"
	}

	readHeaderTimeout := cfg.ReadHeaderTimeout
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = 10 * time.Second
	}

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	if cfg.MaxConns > 0 {
		ln = netutil.LimitListener(ln, cfg.MaxConns)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
