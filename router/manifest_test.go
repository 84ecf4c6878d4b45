package router

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTableManifest(t *testing.T) {
	table := MustTable([]*Route{
		View("/", "Home").Name("home"),
		View("/blocks/:height(int)?", "Blocks"),
		Redirect("/old", "/"),
	})

	infos := table.Manifest()
	require.Len(t, infos, 3)

	assert.Equal(t, RouteInfo{Name: "home", Template: "/", View: "Home"}, infos[0])
	assert.Equal(t, RouteInfo{
		Template: "/blocks/:height(int)?",
		View:     "Blocks",
		Params:   []ParamInfo{{Name: "height", Optional: true, Constraint: "int"}},
	}, infos[1])
	assert.Equal(t, RouteInfo{Template: "/old", Redirect: "/"}, infos[2])

	t.Run("yaml", func(t *testing.T) {
		out, err := yaml.Marshal(infos[1])
		require.NoError(t, err)
		assert.Contains(t, string(out), "constraint: int")
		assert.NotContains(t, string(out), "redirect:")

		var back RouteInfo
		require.NoError(t, yaml.Unmarshal(out, &back))
		assert.Equal(t, infos[1], back)
	})

	t.Run("json omits empty fields", func(t *testing.T) {
		out, err := json.Marshal(infos[2])
		require.NoError(t, err)
		assert.JSONEq(t, `{"template":"/old","redirect":"/"}`, string(out))
	})
}

func TestMatchInfo(t *testing.T) {
	table := MustTable([]*Route{
		Redirect("/old", "/blocks"),
		View("/blocks/:height?", "Blocks").Name("blocks"),
	})

	m, err := table.Resolve("/old?x=1")
	require.NoError(t, err)

	info := m.Info()
	assert.Equal(t, MatchInfo{
		Path:           "/blocks",
		FullPath:       "/blocks?x=1",
		View:           "Blocks",
		Route:          "/blocks/:height?",
		Name:           "blocks",
		Params:         map[string]string{},
		RedirectedFrom: []string{"/old"},
	}, info)

	out, err := json.Marshal(info)
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"/blocks","full_path":"/blocks?x=1","view":"Blocks","route":"/blocks/:height?","name":"blocks","params":{},"redirected_from":["/old"]}`, string(out))
}
