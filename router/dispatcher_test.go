package router

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherNormalize(t *testing.T) {
	d := NewDispatcher()

	t.Run("passes Middleware through unchanged", func(t *testing.T) {
		mw := namedMiddleware("a")
		got, err := d.Normalize(mw)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("accepts middleware-shaped func", func(t *testing.T) {
		called := false
		fn := func(_ http.ResponseWriter, _ *http.Request, next http.Handler) {
			called = true
			next.ServeHTTP(nil, nil)
		}

		got, err := d.Normalize(fn)
		require.NoError(t, err)

		nextCalled := false
		got.ServeMiddleware(nil, nil, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			nextCalled = true
		}))
		assert.True(t, called)
		assert.True(t, nextCalled)
	})

	t.Run("adapts http.Handler as terminal middleware", func(t *testing.T) {
		h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "handled")
		})

		got, err := d.Normalize(h)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		nextCalled := false
		got.ServeMiddleware(w, req, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			nextCalled = true
		}))

		assert.Equal(t, "handled", w.Body.String())
		assert.False(t, nextCalled, "terminal middleware must never call next")
	})

	t.Run("adapts handler-shaped func as terminal middleware", func(t *testing.T) {
		fn := func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "plain")
		}

		got, err := d.Normalize(fn)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		got.ServeMiddleware(w, req, noopHandler)
		assert.Equal(t, "plain", w.Body.String())
	})

	t.Run("accepts a dispatch stack", func(t *testing.T) {
		got, err := d.Normalize(NewDispatchStack())
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("rejects nil", func(t *testing.T) {
		_, err := d.Normalize(nil)
		assert.Error(t, err)
	})

	t.Run("rejects unsupported types", func(t *testing.T) {
		_, err := d.Normalize(42)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported middleware reference")
	})
}

func TestDispatcherResolve(t *testing.T) {
	t.Run("named reference without resolver fails", func(t *testing.T) {
		d := NewDispatcher()
		_, err := d.Normalize("cats.list")
		assert.ErrorIs(t, err, ErrNoResolver)
	})

	t.Run("resolver maps name to middleware", func(t *testing.T) {
		d := NewDispatcher().WithResolver(func(name string) (any, error) {
			require.Equal(t, "cats.list", name)
			return namedMiddleware("cats"), nil
		})

		got, err := d.Normalize("cats.list")
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("resolver may return a handler-shaped value", func(t *testing.T) {
		d := NewDispatcher().WithResolver(func(_ string) (any, error) {
			return func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, "resolved")
			}, nil
		})

		got, err := d.Normalize("anything")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		got.ServeMiddleware(w, req, noopHandler)
		assert.Equal(t, "resolved", w.Body.String())
	})

	t.Run("resolution follows name chains", func(t *testing.T) {
		d := NewDispatcher().WithResolver(func(name string) (any, error) {
			if name == "alias" {
				return "real", nil
			}
			return namedMiddleware(name), nil
		})

		got, err := d.Normalize("alias")
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("self-referencing names terminate with an error", func(t *testing.T) {
		d := NewDispatcher().WithResolver(func(name string) (any, error) {
			return name, nil
		})

		_, err := d.Normalize("loop")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too deep")
	})

	t.Run("resolver errors are wrapped with the name", func(t *testing.T) {
		sentinel := errors.New("unknown middleware")
		d := NewDispatcher().WithResolver(func(_ string) (any, error) {
			return nil, sentinel
		})

		_, err := d.Normalize("missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, sentinel)
		assert.Contains(t, err.Error(), `"missing"`)
	})
}
