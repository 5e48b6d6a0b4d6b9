package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteSiteConfig(t *testing.T) {
	cfg := courseConfig()
	out := t.TempDir()
	b := &Build{
		ID:        "b1",
		Config:    cfg,
		OutputDir: out,
		Head:      &HeadAssets{},
		Theme:     resolveTheme(cfg),
		report:    &Report{Stages: map[StageName]StageOutcome{}},
	}
	b.Head.AddStylesheet("overrides.css")
	b.Head.AddScript(ScriptRef{Src: "https://plausible.io/js/script.js", Attrs: map[string]string{"defer": "defer"}})

	require.NoError(t, b.writeSiteConfig())

	data, err := os.ReadFile(filepath.Join(out, "site.yaml"))
	require.NoError(t, err)

	var root map[string]any
	require.NoError(t, yaml.Unmarshal(data, &root))

	assert.Equal(t, cfg.Site.Title, root["title"])
	assert.Equal(t, "rtd", root["theme"])
	assert.Equal(t, "b1", root["build_id"])

	params, ok := root["params"].(map[string]any)
	require.True(t, ok, "params block missing")
	assert.Equal(t, "enccs", params["repo_owner"])
	assert.Equal(t, true, params["display_repo_link"])

	head, ok := root["head"].(map[string]any)
	require.True(t, ok, "head block missing")
	css, ok := head["stylesheets"].([]any)
	require.True(t, ok)
	assert.Contains(t, css, "overrides.css")

	nb, ok := root["notebooks"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "cache", nb["execute"])
}

func TestWriteSiteConfigIdempotentParams(t *testing.T) {
	cfg := courseConfig()
	b := &Build{ID: "b2", Config: cfg, OutputDir: t.TempDir(), Head: &HeadAssets{}, Theme: resolveTheme(cfg), report: &Report{Stages: map[StageName]StageOutcome{}}}
	require.NoError(t, b.writeSiteConfig())
	first, err := os.ReadFile(filepath.Join(b.OutputDir, "site.yaml"))
	require.NoError(t, err)

	b2 := &Build{ID: "b2", Config: cfg, OutputDir: t.TempDir(), Head: &HeadAssets{}, Theme: resolveTheme(cfg), report: &Report{Stages: map[StageName]StageOutcome{}}}
	require.NoError(t, b2.writeSiteConfig())
	second, err := os.ReadFile(filepath.Join(b2.OutputDir, "site.yaml"))
	require.NoError(t, err)

	// Everything except the timestamp line must match across runs.
	assert.Equal(t, stripLine(string(first), "build_date"), stripLine(string(second), "build_date"))
}

func stripLine(doc, key string) string {
	var kept []string
	for _, line := range strings.Split(doc, "\n") {
		if !strings.Contains(line, key) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
