package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileTemplate(t *testing.T) {
	t.Run("records variable names in order", func(t *testing.T) {
		m, err := compileTemplate("/{a}/{b}/{c}")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, m.vars)
	})

	t.Run("quotes literal text between variables", func(t *testing.T) {
		m, err := compileTemplate("/cats.db/{id}")
		require.NoError(t, err)

		_, ok := m.Match("/cats.db/42")
		assert.True(t, ok)
		// The dot must not act as a regexp metacharacter.
		_, ok = m.Match("/catsXdb/42")
		assert.False(t, ok)
	})

	t.Run("rejects duplicate variable names", func(t *testing.T) {
		_, err := compileTemplate("/{id}/{id}")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicated")
	})

	t.Run("template without variables is a literal match", func(t *testing.T) {
		m, err := compileTemplate("/cats/")
		require.NoError(t, err)
		_, ok := m.Match("/cats/")
		assert.True(t, ok)
		_, ok = m.Match("/cats/42")
		assert.False(t, ok)
	})
}

func TestParseVariable(t *testing.T) {
	t.Run("bare name uses the default pattern", func(t *testing.T) {
		name, pattern, err := parseVariable("id")
		require.NoError(t, err)
		assert.Equal(t, "id", name)
		assert.Equal(t, defaultVarPattern, pattern)
	})

	t.Run("inline pattern after colon", func(t *testing.T) {
		name, pattern, err := parseVariable("id:[0-9]{4}")
		require.NoError(t, err)
		assert.Equal(t, "id", name)
		assert.Equal(t, "[0-9]{4}", pattern)
	})

	t.Run("only the first colon splits", func(t *testing.T) {
		name, pattern, err := parseVariable("time:[0-9]+:[0-9]+")
		require.NoError(t, err)
		assert.Equal(t, "time", name)
		assert.Equal(t, "[0-9]+:[0-9]+", pattern)
	})

	t.Run("empty name is an error", func(t *testing.T) {
		_, _, err := parseVariable("")
		assert.Error(t, err)

		_, _, err = parseVariable(":[0-9]+")
		assert.Error(t, err)
	})
}

func TestExpandMacro(t *testing.T) {
	tests := []struct {
		macro string
		match []string
		miss  []string
	}{
		{"int", []string{"0", "42", "00123"}, []string{"", "-1", "4.2", "x"}},
		{"uuid", []string{"550e8400-e29b-41d4-a716-446655440000"}, []string{"550e8400", "not-a-uuid"}},
		{"slug", []string{"my-post", "a", "a1-b2"}, []string{"-lead", "trail-", "a--b", "under_score"}},
		{"alpha", []string{"hello", "ABC"}, []string{"abc1", ""}},
		{"alphanum", []string{"abc123"}, []string{"abc-123", ""}},
		{"date", []string{"2024-01-15"}, []string{"2024-1-15", "20240115"}},
		{"hex", []string{"deadBEEF", "00ff"}, []string{"xyz", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.macro, func(t *testing.T) {
			re, err := compileRegexp("^" + expandMacro(tt.macro) + "$")
			require.NoError(t, err)

			for _, s := range tt.match {
				assert.True(t, re.MatchString(s), "%s should match %q", tt.macro, s)
			}
			for _, s := range tt.miss {
				assert.False(t, re.MatchString(s), "%s should not match %q", tt.macro, s)
			}
		})
	}

	t.Run("unknown macro falls through as raw pattern", func(t *testing.T) {
		assert.Equal(t, "[abc]+", expandMacro("[abc]+"))
	})
}

func TestBraceIndices(t *testing.T) {
	t.Run("finds top-level pairs", func(t *testing.T) {
		idxs, err := braceIndices("/{a}/{b}")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 4, 5, 8}, idxs)
	})

	t.Run("nested braces count as one pair", func(t *testing.T) {
		idxs, err := braceIndices("/{id:[0-9]{4}}")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 14}, idxs)
	})

	t.Run("unbalanced open brace", func(t *testing.T) {
		_, err := braceIndices("/{a")
		assert.Error(t, err)
	})

	t.Run("unbalanced close brace", func(t *testing.T) {
		_, err := braceIndices("/a}")
		assert.Error(t, err)
	})
}

func TestCompileRegexpCache(t *testing.T) {
	t.Run("returns the same instance for the same pattern", func(t *testing.T) {
		a, err := compileRegexp(`^/cache-test/[0-9]+$`)
		require.NoError(t, err)
		b, err := compileRegexp(`^/cache-test/[0-9]+$`)
		require.NoError(t, err)
		assert.Same(t, a, b)
	})

	t.Run("propagates compile errors", func(t *testing.T) {
		_, err := compileRegexp("[")
		assert.Error(t, err)
	})
}
