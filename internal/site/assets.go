package site

// ScriptRef is a script reference registered for the page <head>.
type ScriptRef struct {
	Src   string            `yaml:"src"`
	Attrs map[string]string `yaml:"attrs,omitempty"`
}

// HeadAssets is the ordered registry of head resources hooks contribute to a
// build. Duplicate registrations are ignored.
type HeadAssets struct {
	stylesheets []string
	scripts     []ScriptRef
}

// AddStylesheet registers a stylesheet href.
func (h *HeadAssets) AddStylesheet(href string) {
	for _, s := range h.stylesheets {
		if s == href {
			return
		}
	}
	h.stylesheets = append(h.stylesheets, href)
}

// AddScript registers a script reference.
func (h *HeadAssets) AddScript(ref ScriptRef) {
	for _, s := range h.scripts {
		if s.Src == ref.Src {
			return
		}
	}
	if ref.Attrs != nil {
		attrs := make(map[string]string, len(ref.Attrs))
		for k, v := range ref.Attrs {
			attrs[k] = v
		}
		ref.Attrs = attrs
	}
	h.scripts = append(h.scripts, ref)
}

// Stylesheets returns the registered stylesheet hrefs in order.
func (h *HeadAssets) Stylesheets() []string {
	return append([]string(nil), h.stylesheets...)
}

// Scripts returns the registered script references in order.
func (h *HeadAssets) Scripts() []ScriptRef {
	out := make([]ScriptRef, len(h.scripts))
	copy(out, h.scripts)
	return out
}
