package site

import (
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/lessonforge/internal/config"
)

func TestExcluded(t *testing.T) {
	patterns := config.DefaultExcludePatterns
	cases := []struct {
		rel  string
		want bool
	}{
		{"index.md", false},
		{"README.md", true},
		{"code/example.jl", true},
		{"code-snippets/x.md", true},
		{"lessons/README.rst", true},
		{"_build/html/index.html", true},
		{"Thumbs.db", true},
		{"jupyter_execute/nb.py", true},
		{"myvenv/lib/thing.py", true},
		{"lessons/mpi.md", false},
		{"img/logo.jpg", false},
	}
	for _, tc := range cases {
		if got := excluded(tc.rel, patterns); got != tc.want {
			t.Errorf("excluded(%q) = %v, want %v", tc.rel, got, tc.want)
		}
	}
}

func TestDiscoverContent(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"index.md":          "# Welcome\n",
		"lessons/intro.md":  "# Intro\n",
		"README.md":         "ignored\n",
		"code/snippet.jl":   "f(x) = x\n",
		"img/logo.jpg":      "jpg",
		"_build/stale.html": "old",
		".hidden/secret.md": "hidden",
	}
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := &config.Config{ExcludePatterns: config.DefaultExcludePatterns}
	b := &Build{Config: cfg, ContentDir: dir, report: &Report{Stages: map[StageName]StageOutcome{}}}
	if err := b.discoverContent(); err != nil {
		t.Fatalf("discoverContent: %v", err)
	}

	got := map[string]bool{}
	for _, f := range b.Files {
		got[f.RelativePath] = f.IsPage
	}
	if len(got) != 3 {
		t.Errorf("discovered %v, want index.md, lessons/intro.md, img/logo.jpg", got)
	}
	if isPage, ok := got["index.md"]; !ok || !isPage {
		t.Error("index.md should be a page")
	}
	if isPage, ok := got["lessons/intro.md"]; !ok || !isPage {
		t.Error("lessons/intro.md should be a page")
	}
	if isPage, ok := got["img/logo.jpg"]; !ok || isPage {
		t.Error("img/logo.jpg should be an asset")
	}
}
