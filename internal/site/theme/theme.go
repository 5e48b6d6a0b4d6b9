// Package theme defines the theme abstraction and registry, allowing
// pluggable theme support without scattering conditionals.
package theme

import (
	"sync"

	"git.home.luguber.info/inful/lessonforge/internal/config"
)

// Features declares capabilities a theme provides to the generator.
type Features struct {
	Name         config.Theme
	ShowRepoLink bool // render "view on <host>" links from the repo context
	SidebarNav   bool
	SearchBox    bool
}

// Theme defines hooks & declared capabilities for a site theme.
type Theme interface {
	Name() config.Theme
	Features() Features
	// ApplyParams lets the theme seed or normalize the params block of the
	// generated site configuration.
	ApplyParams(cfg *config.Config, params map[string]any)
	// CustomizeRoot runs last and may adjust the full configuration root.
	CustomizeRoot(cfg *config.Config, root map[string]any)
}

var (
	registryMu sync.RWMutex
	registry   = map[config.Theme]Theme{}
)

// Register registers a Theme implementation. Duplicate names are ignored.
func Register(t Theme) {
	if t == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[t.Name()]; exists {
		return
	}
	registry[t.Name()] = t
}

// Lookup returns the registered theme for name, or nil.
func Lookup(name config.Theme) Theme {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[name]
}
