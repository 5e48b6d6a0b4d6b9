package directives

import (
	stdhtml "html"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/lessonforge/internal/logfields"
)

// Callout blocks are written as fenced containers:
//
//	::: typealong Optional title
//	body markdown
//	:::
//
// The closing fence must be at least as long as the opening one, which allows
// nesting by giving the outer container a longer fence.

// KindCallout is the AST node kind for callout blocks.
var KindCallout = gmast.NewNodeKind("Callout")

// Callout is the block node produced for a fenced container.
type Callout struct {
	gmast.BaseBlock
	Name        string // directive name, lowercased
	Title       string // optional title text following the name
	fenceLength int
}

// NewCallout returns a Callout block node.
func NewCallout(name, title string, fenceLength int) *Callout {
	return &Callout{Name: name, Title: title, fenceLength: fenceLength}
}

// Kind implements ast.Node.
func (n *Callout) Kind() gmast.NodeKind { return KindCallout }

// Dump implements ast.Node.
func (n *Callout) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{"Name": n.Name, "Title": n.Title}, nil)
}

// Extension wires the callout parser and renderer into a goldmark instance.
type Extension struct {
	Registry     *Registry
	IncludeTodos bool
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	reg := e.Registry
	if reg == nil {
		reg = Builtins()
	}
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(&calloutParser{}, 799),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&calloutHTMLRenderer{registry: reg, includeTodos: e.IncludeTodos}, 500),
	))
}

type calloutParser struct{}

func (p *calloutParser) Trigger() []byte { return []byte{':'} }

func (p *calloutParser) Open(parent gmast.Node, reader text.Reader, pc parser.Context) (gmast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) || line[pos] != ':' {
		return nil, parser.NoChildren
	}
	i := pos
	for i < len(line) && line[i] == ':' {
		i++
	}
	fence := i - pos
	if fence < 3 {
		return nil, parser.NoChildren
	}
	rest := strings.TrimSpace(string(line[i:]))
	if rest == "" {
		// An opening fence names a directive; bare fences close containers.
		return nil, parser.NoChildren
	}
	name := rest
	title := ""
	if sp := strings.IndexAny(rest, " \t"); sp >= 0 {
		name, title = rest[:sp], strings.TrimSpace(rest[sp+1:])
	}
	if !validDirectiveName(name) {
		return nil, parser.NoChildren
	}
	reader.Advance(segment.Len() - 1)
	return NewCallout(strings.ToLower(name), title, fence), parser.HasChildren
}

func (p *calloutParser) Continue(node gmast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	w, pos := util.IndentWidth(line, reader.LineOffset())
	if w < 4 && pos < len(line) && line[pos] == ':' {
		i := pos
		for i < len(line) && line[i] == ':' {
			i++
		}
		if i-pos >= node.(*Callout).fenceLength && strings.TrimSpace(string(line[i:])) == "" {
			reader.Advance(segment.Len())
			return parser.Close
		}
	}
	return parser.Continue | parser.HasChildren
}

func (p *calloutParser) Close(node gmast.Node, reader text.Reader, pc parser.Context) {}

// validDirectiveName accepts names made of letters, digits, dashes and
// underscores, starting with a letter.
func validDirectiveName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_'):
		default:
			return false
		}
	}
	return true
}

func (p *calloutParser) CanInterruptParagraph() bool { return true }

func (p *calloutParser) CanAcceptIndentedLine() bool { return false }

type calloutHTMLRenderer struct {
	registry     *Registry
	includeTodos bool
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *calloutHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindCallout, r.renderCallout)
}

func (r *calloutHTMLRenderer) renderCallout(w util.BufWriter, source []byte, node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	n := node.(*Callout)

	if n.Name == "todo" && !r.includeTodos {
		if entering {
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	}

	d, known := r.registry.Lookup(n.Name)
	if !known {
		d = Descriptor{Name: n.Name}
		if !entering {
			_, _ = w.WriteString("</div>\n")
			return gmast.WalkContinue, nil
		}
		slog.Warn("Unknown callout directive", logfields.Directive(n.Name))
		_, _ = w.WriteString(`<div class="callout callout-unknown callout-` + d.CSSName() + `">` + "\n")
		return gmast.WalkContinue, nil
	}

	if !entering {
		_, _ = w.WriteString("</details>\n")
		return gmast.WalkContinue, nil
	}

	classes := append([]string{"callout", "callout-" + d.CSSName()}, d.ExtraClasses...)
	_, _ = w.WriteString(`<details class="` + strings.Join(classes, " ") + `"`)
	if d.RendersOpen() {
		_, _ = w.WriteString(" open")
	}
	_, _ = w.WriteString(">")
	title := d.SummaryTitle()
	if n.Title != "" {
		title = n.Title
	}
	_, _ = w.WriteString("<summary>")
	_, _ = w.WriteString(stdhtml.EscapeString(title))
	_, _ = w.WriteString("</summary>\n")
	return gmast.WalkContinue, nil
}
