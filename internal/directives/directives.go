// Package directives implements the collapsible callout blocks used by
// lesson content: named variants of a single details/summary rendering,
// differentiated only by their presentation classes.
package directives

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Class names with special rendering semantics.
const (
	// ClassToggleShown marks a callout rendered expanded by default.
	ClassToggleShown = "toggle-shown"
	// ClassDropdown marks a callout as collapsible.
	ClassDropdown = "dropdown"
)

var titleCaser = cases.Title(language.English)

// Descriptor declares one callout variant. Behavior (collapsing, rendering)
// lives in the markdown extension; a descriptor only contributes data.
type Descriptor struct {
	Name         string   // directive name as written in markdown
	Title        string   // summary text; derived from Name when blank
	ExtraClasses []string // presentation classes applied to the rendered block
}

// CSSName returns the name as a CSS-safe class fragment: lowercased with
// runs of non-alphanumerics collapsed to a single dash.
func (d Descriptor) CSSName() string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(d.Name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}

// SummaryTitle returns the text rendered in the callout summary.
func (d Descriptor) SummaryTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return titleCaser.String(strings.ReplaceAll(d.Name, "-", " "))
}

// RendersOpen reports whether the callout starts expanded.
func (d Descriptor) RendersOpen() bool {
	for _, c := range d.ExtraClasses {
		if c == ClassToggleShown {
			return true
		}
	}
	return false
}

// Registry holds the known callout descriptors for one build.
type Registry struct {
	byName map[string]Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]Descriptor{}}
}

// Register adds a descriptor. Names are case-insensitive and must be unique;
// a descriptor must declare at least one presentation class.
func (r *Registry) Register(d Descriptor) error {
	name := strings.ToLower(strings.TrimSpace(d.Name))
	if name == "" {
		return fmt.Errorf("directive name must not be empty")
	}
	if len(d.ExtraClasses) == 0 {
		return fmt.Errorf("directive %q must declare at least one class", name)
	}
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("directive %q already registered", name)
	}
	d.Name = name
	d.ExtraClasses = append([]string(nil), d.ExtraClasses...)
	r.byName[name] = d
	return nil
}

// Lookup returns the descriptor for name, if registered.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.byName[strings.ToLower(name)]
	return d, ok
}

// All returns the registered descriptors sorted by name. The returned slice
// and its class lists are copies.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.byName))
	for _, d := range r.byName {
		d.ExtraClasses = append([]string(nil), d.ExtraClasses...)
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Builtins returns a registry pre-populated with the course callouts.
func Builtins() *Registry {
	r := NewRegistry()
	for _, d := range []Descriptor{
		{Name: "typealong", Title: "Type-along", ExtraClasses: []string{ClassToggleShown, ClassDropdown}},
		{Name: "parameters", ExtraClasses: []string{ClassDropdown}},
		{Name: "demo", ExtraClasses: []string{ClassToggleShown, ClassDropdown}},
	} {
		// Registration of the fixed builtin set cannot collide.
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
	return r
}
