package site

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// postProcess injects the registered head assets into every rendered HTML
// page. Parsing the documents (rather than splicing strings) keeps the
// injection correct for pages with unusual head content.
func (b *Build) postProcess() error {
	if len(b.Head.Stylesheets()) == 0 && len(b.Head.Scripts()) == 0 {
		return nil
	}
	return filepath.WalkDir(b.OutputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(p, ".html") {
			return err
		}
		data, rerr := os.ReadFile(p)
		if rerr != nil {
			return fmt.Errorf("failed to read rendered page: %w", rerr)
		}
		out, ierr := injectHeadAssets(data, b.Head)
		if ierr != nil {
			return fmt.Errorf("failed to inject head assets into %s: %w", p, ierr)
		}
		if werr := os.WriteFile(p, out, 0644); werr != nil {
			return fmt.Errorf("failed to rewrite page %s: %w", p, werr)
		}
		return nil
	})
}

// injectHeadAssets parses an HTML document and appends stylesheet links and
// script tags to its <head>.
func injectHeadAssets(doc []byte, assets *HeadAssets) ([]byte, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, err
	}
	head := findElement(root, atom.Head)
	if head == nil {
		return nil, fmt.Errorf("document has no head element")
	}

	for _, href := range assets.Stylesheets() {
		head.AppendChild(&html.Node{
			Type:     html.ElementNode,
			Data:     "link",
			DataAtom: atom.Link,
			Attr: []html.Attribute{
				{Key: "rel", Val: "stylesheet"},
				{Key: "href", Val: staticHref(href)},
			},
		})
	}
	for _, ref := range assets.Scripts() {
		attrs := []html.Attribute{{Key: "src", Val: ref.Src}}
		keys := make([]string, 0, len(ref.Attrs))
		for k := range ref.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := ref.Attrs[k]
			if v == k {
				// boolean attribute (e.g. defer)
				v = ""
			}
			attrs = append(attrs, html.Attribute{Key: k, Val: v})
		}
		head.AppendChild(&html.Node{
			Type:     html.ElementNode,
			Data:     "script",
			DataAtom: atom.Script,
			Attr:     attrs,
		})
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// findElement returns the first element of the given kind, depth-first.
func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// staticHref resolves a hook-registered stylesheet name against the copied
// static tree, leaving absolute references untouched.
func staticHref(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") || strings.HasPrefix(href, "/") {
		return href
	}
	return "_static/" + href
}
