package site

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// writeSiteConfig emits the generated site configuration consumed by the
// rendering toolchain. Assembly follows fixed phases: core defaults, theme
// param injection, head assets, dynamic fields, theme root customization.
func (b *Build) writeSiteConfig() error {
	cfg := b.Config

	// Phase 1: core defaults
	params := map[string]any{}
	root := map[string]any{
		"title":     cfg.Site.Title,
		"author":    cfg.Project.Author,
		"copyright": cfg.Project.Copyright,
		"language":  cfg.Site.Language,
		"baseURL":   cfg.Site.BaseURL,
		"theme":     string(b.Theme.Name()),
		"params":    params,
		"notebooks": map[string]any{"execute": cfg.Notebooks.Execute},
	}

	// Phase 2: theme param injection (themes self-register)
	b.Theme.ApplyParams(cfg, params)

	// Phase 3: head assets contributed by build hooks
	head := map[string]any{}
	if css := b.Head.Stylesheets(); len(css) > 0 {
		head["stylesheets"] = css
	}
	if js := b.Head.Scripts(); len(js) > 0 {
		head["scripts"] = js
	}
	if len(head) > 0 {
		root["head"] = head
	}

	// Phase 4: dynamic fields
	root["build_id"] = b.ID
	root["build_date"] = time.Now().Format("2006-01-02 15:04:05")

	// Phase 5: theme final customization
	b.Theme.CustomizeRoot(cfg, root)

	data, err := yaml.Marshal(root)
	if err != nil {
		return fmt.Errorf("failed to marshal site config: %w", err)
	}
	path := filepath.Join(b.OutputDir, "site.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write site config: %w", err)
	}
	return nil
}
