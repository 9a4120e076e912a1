package web

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticAppJS(t *testing.T) {
	js := string(StaticAppJS())
	require.NotEmpty(t, js)
	assert.NotContains(t, js, "Chart(")
	assert.Equal(t, 1, strings.Count(js, "class BackToTopManager"))
}

func TestScaffoldFS(t *testing.T) {
	for _, name := range []string{
		"profile.json",
		"views/index.html",
		"public/css/style.css",
		"public/js/app.js",
		"public/images/avatar.svg",
	} {
		_, err := fs.Stat(ScaffoldFS(), name)
		assert.NoError(t, err, name)
	}
}

func TestScaffoldTemplateMarkers(t *testing.T) {
	data, err := fs.ReadFile(ScaffoldFS(), "views/index.html")
	require.NoError(t, err)
	page := string(data)

	assert.Contains(t, page, `<canvas id="timeChart"></canvas>`)
	assert.Contains(t, page, `<script src="https://cdn.jsdelivr.net/npm/chart.js"></script>`)
	assert.Contains(t, page, `<script src="/js/app.js"></script>`)
	assert.Contains(t, page, `href="/css/style.css"`)
}

func TestWriteScaffold(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "views"), 0755))
	custom := filepath.Join(dir, "views", "index.html")
	require.NoError(t, os.WriteFile(custom, []byte("mine"), 0644))

	written, skipped, err := WriteScaffold(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"views/index.html"}, skipped)
	assert.Contains(t, written, "profile.json")
	assert.Contains(t, written, "public/images/.gitkeep")

	data, err := os.ReadFile(custom)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))

	// second run writes nothing
	written, _, err = WriteScaffold(dir)
	require.NoError(t, err)
	assert.Empty(t, written)
}
