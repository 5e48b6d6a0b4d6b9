package site

import (
	"bytes"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/lessonforge/internal/config"
	"git.home.luguber.info/inful/lessonforge/internal/directives"
	"git.home.luguber.info/inful/lessonforge/internal/logfields"
)

var titleCaser = cases.Title(language.English)

// renderPages converts every discovered markdown page into an HTML document.
// Head assets are injected later by the post_process stage.
func (b *Build) renderPages() error {
	exts := []goldmark.Extender{extension.GFM}
	if b.Config.HasExtension(config.ExtLesson) {
		exts = append(exts, &directives.Extension{Registry: b.directives, IncludeTodos: b.Config.IncludeTodos()})
	}
	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithRendererOptions(ghtml.WithUnsafe()),
	)

	for _, f := range b.Files {
		if !f.IsPage {
			continue
		}
		src, err := os.ReadFile(f.Path)
		if err != nil {
			return fmt.Errorf("failed to read page %s: %w", f.RelativePath, err)
		}

		var body bytes.Buffer
		if err := md.Convert(src, &body); err != nil {
			return fmt.Errorf("failed to render page %s: %w", f.RelativePath, err)
		}

		title := pageTitle(src, f.Name)
		out := filepath.Join(b.OutputDir, filepath.FromSlash(htmlPath(f.RelativePath)))
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return fmt.Errorf("failed to create page directory: %w", err)
		}
		if err := os.WriteFile(out, b.pageDocument(title, f, body.Bytes()), 0644); err != nil {
			return fmt.Errorf("failed to write page %s: %w", f.RelativePath, err)
		}
		slog.Debug("Page rendered", logfields.BuildID(b.ID), logfields.Page(f.RelativePath))
		b.report.PagesRendered++
	}
	return nil
}

// rootRelative prefixes target with enough parent hops to reach the site
// root from the page's directory.
func rootRelative(pageRel, target string) string {
	return strings.Repeat("../", strings.Count(pageRel, "/")) + target
}

// htmlPath maps a markdown relative path to its output path.
func htmlPath(rel string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
}

// pageTitle extracts the first top-level heading, falling back to a
// title-cased file name.
func pageTitle(src []byte, name string) string {
	for _, line := range strings.Split(string(src), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
	}
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return titleCaser.String(name)
}

// pageDocument assembles the full HTML document for one page.
func (b *Build) pageDocument(title string, f ContentFile, body []byte) []byte {
	cfg := b.Config
	features := b.Theme.Features()

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	fmt.Fprintf(&sb, "<html lang=%q>\n<head>\n<meta charset=\"utf-8\">\n", cfg.Site.Language)
	fmt.Fprintf(&sb, "<title>%s - %s</title>\n", html.EscapeString(title), html.EscapeString(cfg.Site.Title))
	if cfg.Site.Favicon != "" {
		fmt.Fprintf(&sb, "<link rel=\"icon\" href=%q>\n", staticHref(cfg.Site.Favicon))
	}
	for _, snippet := range cfg.Site.ExtraHead {
		sb.WriteString(snippet + "\n")
	}
	sb.WriteString("</head>\n<body>\n")

	if features.ShowRepoLink {
		if url := PageSourceURL(cfg, f.RelativePath); url != "" {
			fmt.Fprintf(&sb, "<header><a class=\"repo-link\" href=%q>View on %s</a></header>\n",
				url, html.EscapeString(cfg.Repo.Host))
		}
	}

	if features.SidebarNav {
		fmt.Fprintf(&sb, "<nav class=\"sidebar\"><a class=\"home\" href=%q>%s</a>",
			rootRelative(f.RelativePath, "index.html"), html.EscapeString(cfg.Site.Title))
		if features.SearchBox {
			sb.WriteString(`<form class="search" role="search"><input type="search" name="q" placeholder="Search docs"></form>`)
		}
		sb.WriteString("</nav>\n")
	}

	sb.WriteString("<main>\n")
	sb.Write(body)
	sb.WriteString("</main>\n")

	if cfg.Project.Copyright != "" || cfg.Project.Author != "" {
		sb.WriteString("<footer>")
		if cfg.Project.Copyright != "" {
			fmt.Fprintf(&sb, "<span class=\"copyright\">&copy; %s</span>", html.EscapeString(cfg.Project.Copyright))
		}
		if cfg.Project.Author != "" {
			fmt.Fprintf(&sb, "<span class=\"author\">%s</span>", html.EscapeString(cfg.Project.Author))
		}
		sb.WriteString("</footer>\n")
	}

	sb.WriteString("</body>\n</html>\n")
	return []byte(sb.String())
}
