package site

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/lessonforge/internal/config"
)

// PageSourceURL returns the "view on <host>" URL for a source file, or ""
// when the repository context is incomplete.
//
// Supported host URL shapes: github (blob), gitlab (-/blob), and a generic
// src fallback for self-hosted forges.
func PageSourceURL(cfg *config.Config, relPath string) string {
	r := cfg.Repo
	if r.Host == "" || r.Owner == "" || r.Name == "" {
		return ""
	}
	branch := r.Branch
	if branch == "" {
		branch = "main"
	}
	repoRel := strings.TrimPrefix(r.ContentPath, "/") + relPath
	base := fmt.Sprintf("https://%s/%s/%s", r.Host, r.Owner, r.Name)

	switch {
	case strings.Contains(r.Host, "github"):
		return fmt.Sprintf("%s/blob/%s/%s", base, branch, repoRel)
	case strings.Contains(r.Host, "gitlab"):
		return fmt.Sprintf("%s/-/blob/%s/%s", base, branch, repoRel)
	default:
		return fmt.Sprintf("%s/src/%s/%s", base, branch, repoRel)
	}
}
