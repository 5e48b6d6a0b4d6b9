package site

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/lessonforge/internal/config"
	"git.home.luguber.info/inful/lessonforge/internal/logfields"
)

// prepareOutput creates a clean output directory.
func (b *Build) prepareOutput() error {
	if err := os.RemoveAll(b.OutputDir); err != nil {
		return fmt.Errorf("failed to clean output directory: %w", err)
	}
	if err := os.MkdirAll(b.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// copyStatic copies the configured static paths into _static/, copies the
// configured favicon and logo into _static/ at their configured relative
// paths, copies discovered non-page assets alongside their pages, and drops
// a .nojekyll marker when the githubpages extension is enabled.
func (b *Build) copyStatic() error {
	var missing []string
	for _, sp := range b.Config.Site.StaticPaths {
		src := filepath.Join(b.ContentDir, sp)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			slog.Warn("Static path missing", logfields.Path(src))
			missing = append(missing, sp)
			continue
		}
		dst := filepath.Join(b.OutputDir, "_static")
		n, err := copyTree(src, dst)
		if err != nil {
			return fmt.Errorf("failed to copy static path %s: %w", sp, err)
		}
		b.report.AssetsCopied += n
	}

	// Pages and theme params reference these under _static/ regardless of
	// whether they live inside a configured static path.
	for _, asset := range []string{b.Config.Site.Favicon, b.Config.Site.Logo} {
		if asset == "" || strings.HasPrefix(asset, "http://") || strings.HasPrefix(asset, "https://") || strings.HasPrefix(asset, "/") {
			continue
		}
		src := filepath.Join(b.ContentDir, filepath.FromSlash(asset))
		if _, err := os.Stat(src); os.IsNotExist(err) {
			slog.Warn("Site asset missing", logfields.Path(src))
			missing = append(missing, asset)
			continue
		}
		if err := copyFile(src, filepath.Join(b.OutputDir, "_static", filepath.FromSlash(asset))); err != nil {
			return fmt.Errorf("failed to copy site asset %s: %w", asset, err)
		}
		b.report.AssetsCopied++
	}

	for _, f := range b.Files {
		if f.IsPage {
			continue
		}
		dst := filepath.Join(b.OutputDir, filepath.FromSlash(f.RelativePath))
		if err := copyFile(f.Path, dst); err != nil {
			return fmt.Errorf("failed to copy asset %s: %w", f.RelativePath, err)
		}
		b.report.AssetsCopied++
	}

	if b.Config.HasExtension(config.ExtGitHubPages) {
		marker := filepath.Join(b.OutputDir, ".nojekyll")
		if err := os.WriteFile(marker, nil, 0644); err != nil {
			return fmt.Errorf("failed to write .nojekyll: %w", err)
		}
	}
	if len(missing) > 0 {
		return warnf("missing static sources: %s", strings.Join(missing, ", "))
	}
	return nil
}

// copyTree copies a directory tree, returning the number of files copied.
func copyTree(src, dst string) (int, error) {
	count := 0
	err := filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, rerr := filepath.Rel(src, p)
		if rerr != nil {
			return rerr
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if cerr := copyFile(p, target); cerr != nil {
			return cerr
		}
		count++
		return nil
	})
	return count, err
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
