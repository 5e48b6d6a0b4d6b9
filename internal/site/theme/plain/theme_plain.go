// Package plain provides a minimal fallback theme with no chrome.
package plain

import (
	"git.home.luguber.info/inful/lessonforge/internal/config"
	th "git.home.luguber.info/inful/lessonforge/internal/site/theme"
)

type Theme struct{}

func (Theme) Name() config.Theme { return config.ThemePlain }

func (Theme) Features() th.Features {
	return th.Features{Name: config.ThemePlain}
}

func (Theme) ApplyParams(cfg *config.Config, params map[string]any) {
	if cfg.Site.Favicon != "" && params["favicon"] == nil {
		params["favicon"] = cfg.Site.Favicon
	}
}

func (Theme) CustomizeRoot(_ *config.Config, _ map[string]any) {}

func init() { th.Register(Theme{}) }
