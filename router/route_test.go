package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteView(t *testing.T) {
	r := View("/blocks/:height?", "Blocks").Name("blocks")
	require.NoError(t, r.GetError())

	assert.Equal(t, "Blocks", r.GetView())
	assert.Equal(t, "blocks", r.GetName())
	assert.False(t, r.IsRedirect())

	tpl, err := r.GetPathTemplate()
	require.NoError(t, err)
	assert.Equal(t, "/blocks/:height?", tpl)

	re, err := r.GetPathRegexp()
	require.NoError(t, err)
	assert.Equal(t, `^/blocks(?:/(?P<height>[^/]+))?/?$`, re)

	names, err := r.GetVarNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"height"}, names)

	_, err = r.GetRedirectTemplate()
	assert.Error(t, err)

	assert.Equal(t, "/blocks/:height? => Blocks", r.String())
}

func TestRouteRedirect(t *testing.T) {
	r := Redirect("/firmware-security", "/firmware-security/available-firmware")
	require.NoError(t, r.GetError())

	assert.True(t, r.IsRedirect())
	assert.Empty(t, r.GetView())

	target, err := r.GetRedirectTemplate()
	require.NoError(t, err)
	assert.Equal(t, "/firmware-security/available-firmware", target)

	assert.Equal(t, "/firmware-security -> /firmware-security/available-firmware", r.String())

	t.Run("empty target", func(t *testing.T) {
		assert.Error(t, Redirect("/a", "").GetError())
	})

	t.Run("relative target", func(t *testing.T) {
		assert.Error(t, Redirect("/a", "b").GetError())
	})

	t.Run("invalid source", func(t *testing.T) {
		r := Redirect("a", "/b")
		assert.Error(t, r.GetError())
		assert.Equal(t, "<invalid route>", r.String())
	})
}

func TestRouteName(t *testing.T) {
	t.Run("renaming is an error", func(t *testing.T) {
		r := View("/a", "A").Name("first").Name("second")
		assert.ErrorContains(t, r.GetError(), `already has name "first"`)
		assert.Equal(t, "first", r.GetName())
	})

	t.Run("errored route keeps no name", func(t *testing.T) {
		r := View("bad", "A").Name("x")
		assert.Empty(t, r.GetName())
	})
}

func TestRouteGettersOnError(t *testing.T) {
	r := View("bad", "A")

	_, err := r.GetPathTemplate()
	assert.Error(t, err)

	_, err = r.GetPathRegexp()
	assert.Error(t, err)

	_, err = r.GetVarNames()
	assert.Error(t, err)

	_, err = r.GetRedirectTemplate()
	assert.Error(t, err)

	_, err = r.URL()
	assert.Error(t, err)
}

func TestRouteURL(t *testing.T) {
	r := View("/firmware-security/firmware/:sha256", "FirmwareDetail")

	u, err := r.URL("sha256", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "/firmware-security/firmware/abc123", u)

	_, err = r.URL()
	assert.ErrorIs(t, err, ErrMissingParam)

	_, err = r.URL("sha256")
	assert.Error(t, err)
}
