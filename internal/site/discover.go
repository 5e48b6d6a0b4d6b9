package site

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/lessonforge/internal/logfields"
)

// ContentFile represents a discovered source file. Markdown files become
// pages; everything else is copied through as an asset.
type ContentFile struct {
	Path         string // absolute path
	RelativePath string // slash-separated path relative to the content dir
	Name         string // file name without extension
	IsPage       bool
}

// excluded reports whether a relative slash path matches any exclusion
// pattern. Patterns apply to the full relative path and to every path
// element, so "code*" excludes a directory subtree anywhere in the tree.
func excluded(rel string, patterns []string) bool {
	elems := strings.Split(rel, "/")
	for _, p := range patterns {
		if ok, _ := path.Match(p, rel); ok {
			return true
		}
		for _, e := range elems {
			if ok, _ := path.Match(p, e); ok {
				return true
			}
		}
	}
	return false
}

// discoverContent walks the content directory, applying the configured
// exclusion patterns.
func (b *Build) discoverContent() error {
	root := b.ContentDir
	patterns := b.Config.ExcludePatterns
	static := map[string]bool{}
	for _, sp := range b.Config.Site.StaticPaths {
		static[filepath.ToSlash(sp)] = true
	}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, rerr := filepath.Rel(root, p)
		if rerr != nil {
			return rerr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if d.IsDir() && static[rel] {
			// Static paths are copied wholesale by the copy_static stage.
			return filepath.SkipDir
		}
		if strings.HasPrefix(d.Name(), ".") && d.Name() != ".nojekyll" {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if excluded(rel, patterns) {
			slog.Debug("Excluded from build", logfields.Path(rel))
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(p))
		b.Files = append(b.Files, ContentFile{
			Path:         p,
			RelativePath: rel,
			Name:         strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)),
			IsPage:       ext == ".md" || ext == ".markdown",
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to discover content in %s: %w", root, err)
	}

	pages := 0
	for _, f := range b.Files {
		if f.IsPage {
			pages++
		}
	}
	slog.Info("Content discovered",
		logfields.BuildID(b.ID),
		slog.Int("files", len(b.Files)),
		slog.Int("pages", pages))
	return nil
}
