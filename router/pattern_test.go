package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoutePattern(t *testing.T) {
	tests := []struct {
		name     string
		tpl      string
		regexp   string
		varsN    []string
		trailing bool
	}{
		{name: "root", tpl: "/", regexp: `^/$`},
		{name: "literal", tpl: "/accounts", regexp: `^/accounts/?$`},
		{name: "nested literal", tpl: "/firmware-security/scan-queue", regexp: `^/firmware-security/scan-queue/?$`},
		{name: "required param", tpl: "/firmware/:sha256", regexp: `^/firmware/(?P<sha256>[^/]+)/?$`, varsN: []string{"sha256"}},
		{name: "optional param", tpl: "/blocks/:height?", regexp: `^/blocks(?:/(?P<height>[^/]+))?/?$`, varsN: []string{"height"}},
		{name: "macro constraint", tpl: "/blocks/:height(int)", regexp: `^/blocks/(?P<height>[0-9]+)/?$`, varsN: []string{"height"}},
		{name: "raw constraint", tpl: `/v/:id(\d{2})?`, regexp: `^/v(?:/(?P<id>\d{2}))?/?$`, varsN: []string{"id"}},
		{name: "trailing slash", tpl: "/docs/", regexp: `^/docs/?$`, trailing: true},
		{name: "two params", tpl: "/a/:x/b/:y", regexp: `^/a/(?P<x>[^/]+)/b/(?P<y>[^/]+)/?$`, varsN: []string{"x", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := newRoutePattern(tt.tpl)
			require.NoError(t, err)
			assert.Equal(t, tt.tpl, p.template)
			assert.Equal(t, tt.regexp, p.regexp.String())
			assert.Equal(t, tt.varsN, p.varsN)
			assert.Equal(t, tt.trailing, p.trailingSlash)
		})
	}
}

func TestNewRoutePatternErrors(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
	}{
		{name: "empty", tpl: ""},
		{name: "relative", tpl: "accounts"},
		{name: "empty segment", tpl: "/a//b"},
		{name: "double slash only", tpl: "//"},
		{name: "missing name", tpl: "/a/:"},
		{name: "invalid name", tpl: "/a/:1x"},
		{name: "garbage after param", tpl: "/a/:x!"},
		{name: "duplicated param", tpl: "/a/:x/:x"},
		{name: "unbalanced open", tpl: "/a/:x(int"},
		{name: "unbalanced close", tpl: "/a/:x)"},
		{name: "empty constraint", tpl: "/a/:x()"},
		{name: "invalid regexp", tpl: "/a/:x([)"},
		{name: "parenthesis in literal", tpl: "/a(b)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := newRoutePattern(tt.tpl)
			assert.Error(t, err)
			assert.Nil(t, p)
		})
	}
}

func TestRoutePatternMatch(t *testing.T) {
	t.Run("literal matches exactly", func(t *testing.T) {
		p, err := newRoutePattern("/accounts")
		require.NoError(t, err)

		params, ok := p.match("/accounts", false)
		assert.True(t, ok)
		assert.Empty(t, params)

		_, ok = p.match("/Accounts", false)
		assert.False(t, ok, "literal segments are case-sensitive")

		_, ok = p.match("/accounts/extra", false)
		assert.False(t, ok)

		_, ok = p.match("/account", false)
		assert.False(t, ok)
	})

	t.Run("optional param present and absent", func(t *testing.T) {
		p, err := newRoutePattern("/transactions/blocks/:height?")
		require.NoError(t, err)

		params, ok := p.match("/transactions/blocks/500", false)
		assert.True(t, ok)
		assert.Equal(t, Params{"height": "500"}, params)

		params, ok = p.match("/transactions/blocks", false)
		assert.True(t, ok)
		assert.Equal(t, Params{}, params)
		_, has := params["height"]
		assert.False(t, has)
	})

	t.Run("required param does not bind an empty segment", func(t *testing.T) {
		p, err := newRoutePattern("/firmware-security/firmware/:sha256")
		require.NoError(t, err)

		_, ok := p.match("/firmware-security/firmware/", false)
		assert.False(t, ok)

		_, ok = p.match("/firmware-security/firmware", false)
		assert.False(t, ok)

		params, ok := p.match("/firmware-security/firmware/abc123", false)
		assert.True(t, ok)
		assert.Equal(t, Params{"sha256": "abc123"}, params)
	})

	t.Run("param binds one segment only", func(t *testing.T) {
		p, err := newRoutePattern("/firmware/:sha256")
		require.NoError(t, err)

		_, ok := p.match("/firmware/a/b", false)
		assert.False(t, ok)
	})

	t.Run("param values are percent-decoded", func(t *testing.T) {
		p, err := newRoutePattern("/vendors/:name")
		require.NoError(t, err)

		params, ok := p.match("/vendors/acme%20corp", false)
		assert.True(t, ok)
		assert.Equal(t, "acme corp", params["name"])

		params, ok = p.match("/vendors/a%2Fb", false)
		assert.True(t, ok)
		assert.Equal(t, "a/b", params["name"])
	})

	t.Run("constraint rejects values", func(t *testing.T) {
		p, err := newRoutePattern("/blocks/:height(int)")
		require.NoError(t, err)

		_, ok := p.match("/blocks/abc", false)
		assert.False(t, ok)

		params, ok := p.match("/blocks/42", false)
		assert.True(t, ok)
		assert.Equal(t, "42", params["height"])
	})

	t.Run("trailing slash tolerated by default", func(t *testing.T) {
		p, err := newRoutePattern("/accounts")
		require.NoError(t, err)

		_, ok := p.match("/accounts/", false)
		assert.True(t, ok)
	})

	t.Run("strict slash compares trailing slash", func(t *testing.T) {
		p, err := newRoutePattern("/accounts")
		require.NoError(t, err)

		_, ok := p.match("/accounts/", true)
		assert.False(t, ok)

		_, ok = p.match("/accounts", true)
		assert.True(t, ok)

		q, err := newRoutePattern("/docs/")
		require.NoError(t, err)

		_, ok = q.match("/docs", true)
		assert.False(t, ok)

		_, ok = q.match("/docs/", true)
		assert.True(t, ok)
	})

	t.Run("root in strict mode", func(t *testing.T) {
		p, err := newRoutePattern("/")
		require.NoError(t, err)

		_, ok := p.match("/", true)
		assert.True(t, ok)

		_, ok = p.match("/x", true)
		assert.False(t, ok)
	})
}

func TestRoutePatternURL(t *testing.T) {
	t.Run("literal", func(t *testing.T) {
		p, err := newRoutePattern("/pki")
		require.NoError(t, err)

		u, err := p.url(nil)
		require.NoError(t, err)
		assert.Equal(t, "/pki", u)
	})

	t.Run("root", func(t *testing.T) {
		p, err := newRoutePattern("/")
		require.NoError(t, err)

		u, err := p.url(nil)
		require.NoError(t, err)
		assert.Equal(t, "/", u)
	})

	t.Run("optional omitted", func(t *testing.T) {
		p, err := newRoutePattern("/transactions/blocks/:height?")
		require.NoError(t, err)

		u, err := p.url(map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, "/transactions/blocks", u)

		u, err = p.url(map[string]string{"height": "7"})
		require.NoError(t, err)
		assert.Equal(t, "/transactions/blocks/7", u)
	})

	t.Run("required missing", func(t *testing.T) {
		p, err := newRoutePattern("/firmware/:sha256")
		require.NoError(t, err)

		_, err = p.url(map[string]string{})
		assert.ErrorIs(t, err, ErrMissingParam)
	})

	t.Run("value escaped", func(t *testing.T) {
		p, err := newRoutePattern("/vendors/:name")
		require.NoError(t, err)

		u, err := p.url(map[string]string{"name": "a/b c"})
		require.NoError(t, err)
		assert.Equal(t, "/vendors/a%2Fb%20c", u)

		params, ok := p.match(u, false)
		assert.True(t, ok)
		assert.Equal(t, "a/b c", params["name"])
	})

	t.Run("constraint violated", func(t *testing.T) {
		p, err := newRoutePattern("/blocks/:height(int)")
		require.NoError(t, err)

		_, err = p.url(map[string]string{"height": "x"})
		assert.ErrorIs(t, err, ErrInvalidParam)
	})

	t.Run("trailing slash kept", func(t *testing.T) {
		p, err := newRoutePattern("/docs/:page/")
		require.NoError(t, err)

		u, err := p.url(map[string]string{"page": "intro"})
		require.NoError(t, err)
		assert.Equal(t, "/docs/intro/", u)
	})
}

func TestSplitTemplate(t *testing.T) {
	t.Run("keeps slashes inside constraints", func(t *testing.T) {
		parts, err := splitTemplate(`/files/:path([a-z/]+)`)
		require.NoError(t, err)
		assert.Equal(t, []string{"files", ":path([a-z/]+)"}, parts)
	})

	t.Run("root has no segments", func(t *testing.T) {
		parts, err := splitTemplate("/")
		require.NoError(t, err)
		assert.Empty(t, parts)
	})

	t.Run("trailing slash yields empty last part", func(t *testing.T) {
		parts, err := splitTemplate("/a/")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", ""}, parts)
	})
}

func TestCompileRegexpCache(t *testing.T) {
	re1, err := compileRegexp(`^cache-test-[0-9]+$`)
	require.NoError(t, err)

	re2, err := compileRegexp(`^cache-test-[0-9]+$`)
	require.NoError(t, err)

	assert.Same(t, re1, re2)

	_, err = compileRegexp(`[`)
	assert.Error(t, err)
}

func BenchmarkNewRoutePattern(b *testing.B) {
	for b.Loop() {
		_, _ = newRoutePattern("/firmware-security/firmware/:sha256(sha256)")
	}
}

func BenchmarkRoutePatternMatch(b *testing.B) {
	p, _ := newRoutePattern("/transactions/blocks/:height?")
	for b.Loop() {
		p.match("/transactions/blocks/500", false)
	}
}
