package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouteClassification(t *testing.T) {
	tests := []struct {
		name   string
		target string
		kind   RouteKind
	}{
		{"literal path is static", "/cats/", StaticRoute},
		{"root is static", "/", StaticRoute},
		{"trailing asterisk is prefix", "/cats/*", PrefixRoute},
		{"bare asterisk after slash is prefix", "/*", PrefixRoute},
		{"braced segment is pattern", "/cats/{id}", PatternRoute},
		{"braces win over trailing asterisk", "/cats/{id}/*", PatternRoute},
		{"delimited regexp is pattern", "~/cat/[0-9]+~", PatternRoute},
		{"hash-delimited regexp is pattern", "#^/dogs/[a-z]+$#", PatternRoute},
		{"undelimited regexp is pattern", "^/cats/[0-9]+$", PatternRoute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, err := NewRoute(tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, route.Kind())
			assert.Equal(t, tt.target, route.Target())
			assert.NotNil(t, route.Methods())
		})
	}
}

func TestNewRouteErrors(t *testing.T) {
	t.Run("malformed regexp fails construction", func(t *testing.T) {
		_, err := NewRoute("~/cat/[0-9~")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pattern")
	})

	t.Run("unbalanced braces fail construction", func(t *testing.T) {
		_, err := NewRoute("/cats/{id")
		assert.Error(t, err)
	})

	t.Run("empty variable name fails construction", func(t *testing.T) {
		_, err := NewRoute("/cats/{}")
		assert.Error(t, err)
	})

	t.Run("malformed inline variable pattern fails construction", func(t *testing.T) {
		_, err := NewRoute("/cats/{id:[0-9}")
		assert.Error(t, err)
	})
}

func TestStaticRouteMatch(t *testing.T) {
	route, err := NewRoute("/cats/")
	require.NoError(t, err)

	t.Run("matches the exact path", func(t *testing.T) {
		vars, ok := route.Match("/cats/")
		assert.True(t, ok)
		assert.Nil(t, vars)
	})

	t.Run("rejects an extended path", func(t *testing.T) {
		_, ok := route.Match("/cats/x")
		assert.False(t, ok)
	})

	t.Run("rejects a truncated path", func(t *testing.T) {
		_, ok := route.Match("/cats")
		assert.False(t, ok)
	})
}

func TestPrefixRouteMatch(t *testing.T) {
	route, err := NewRoute("/static/*")
	require.NoError(t, err)

	t.Run("matches any path under the prefix", func(t *testing.T) {
		for _, path := range []string{"/static/", "/static/css/site.css", "/static/x"} {
			_, ok := route.Match(path)
			assert.True(t, ok, path)
		}
	})

	t.Run("matches the bare prefix", func(t *testing.T) {
		_, ok := route.Match("/static/")
		assert.True(t, ok)
	})

	t.Run("rejects paths outside the prefix", func(t *testing.T) {
		_, ok := route.Match("/other/")
		assert.False(t, ok)
	})
}

func TestTemplateRouteMatch(t *testing.T) {
	t.Run("extracts a single variable", func(t *testing.T) {
		route, err := NewRoute("/cats/{id}")
		require.NoError(t, err)

		vars, ok := route.Match("/cats/42")
		require.True(t, ok)
		assert.Equal(t, map[string]string{"id": "42"}, vars)
	})

	t.Run("variable does not span slashes", func(t *testing.T) {
		route, err := NewRoute("/cats/{id}")
		require.NoError(t, err)

		_, ok := route.Match("/cats/42/toys")
		assert.False(t, ok)
	})

	t.Run("anchored to the full path", func(t *testing.T) {
		route, err := NewRoute("/cats/{id}")
		require.NoError(t, err)

		_, ok := route.Match("/pets/cats/42")
		assert.False(t, ok)
	})

	t.Run("extracts multiple variables in order", func(t *testing.T) {
		route, err := NewRoute("/{animal}/{id}/toys/{toy}")
		require.NoError(t, err)

		vars, ok := route.Match("/cats/42/toys/ball")
		require.True(t, ok)
		assert.Equal(t, map[string]string{
			"animal": "cats",
			"id":     "42",
			"toy":    "ball",
		}, vars)
	})

	t.Run("inline pattern constrains the variable", func(t *testing.T) {
		route, err := NewRoute("/cats/{id:[0-9]+}")
		require.NoError(t, err)

		_, ok := route.Match("/cats/42")
		assert.True(t, ok)
		_, ok = route.Match("/cats/felix")
		assert.False(t, ok)
	})

	t.Run("macro constrains the variable", func(t *testing.T) {
		route, err := NewRoute("/articles/{slug:slug}")
		require.NoError(t, err)

		vars, ok := route.Match("/articles/my-first-post")
		require.True(t, ok)
		assert.Equal(t, "my-first-post", vars["slug"])

		_, ok = route.Match("/articles/bad_slug!")
		assert.False(t, ok)
	})
}

func TestRegexpRouteMatch(t *testing.T) {
	t.Run("positional groups keyed by ordinal", func(t *testing.T) {
		route, err := NewRoute("~^/cat/([0-9]+)$~")
		require.NoError(t, err)

		vars, ok := route.Match("/cat/42")
		require.True(t, ok)
		assert.Equal(t, map[string]string{"1": "42"}, vars)
	})

	t.Run("named groups keyed by name", func(t *testing.T) {
		route, err := NewRoute(`~^/cat/(?P<id>[0-9]+)/(?P<toy>[a-z]+)$~`)
		require.NoError(t, err)

		vars, ok := route.Match("/cat/42/ball")
		require.True(t, ok)
		assert.Equal(t, map[string]string{"id": "42", "toy": "ball"}, vars)
	})

	t.Run("unanchored regexp matches anywhere in the path", func(t *testing.T) {
		route, err := NewRoute("~/cat/[0-9]+~")
		require.NoError(t, err)

		_, ok := route.Match("/cat/42/extra")
		assert.True(t, ok)
	})

	t.Run("non-matching path yields no vars", func(t *testing.T) {
		route, err := NewRoute("~^/cat/([0-9]+)$~")
		require.NoError(t, err)

		vars, ok := route.Match("/dog/42")
		assert.False(t, ok)
		assert.Nil(t, vars)
	})
}

func TestRouteKindString(t *testing.T) {
	assert.Equal(t, "static", StaticRoute.String())
	assert.Equal(t, "prefix", PrefixRoute.String())
	assert.Equal(t, "pattern", PatternRoute.String())
	assert.Equal(t, "unknown", RouteKind(99).String())
}
