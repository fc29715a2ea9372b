package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_LoadsAllTemplates(t *testing.T) {
	engine := NewEngine(false)
	require.NoError(t, engine.Load())

	for _, name := range []string{"layouts/main", "partials/nav", "partials/alert", "plans/index", "plans/list", "history/index", "history/list", "auth/login"} {
		assert.NotNil(t, engine.Templates.Lookup(name), "template %s", name)
	}
}

func TestNewEngine_RendersLoginWithLayout(t *testing.T) {
	engine := NewEngine(false)
	require.NoError(t, engine.Load())

	data := map[string]any{"Title": " | Login", "CSRF": "tok", "IsLoggedIn": false, "Alert": ""}
	var buf bytes.Buffer
	require.NoError(t, engine.Render(&buf, "auth/login", data, "layouts/main"))
	assert.Contains(t, buf.String(), "<title>RechargeFox | Login</title>")
	assert.Contains(t, buf.String(), `value="tok"`)
}
