// Package rtd provides the read-the-docs style sidebar theme.
package rtd

import (
	"git.home.luguber.info/inful/lessonforge/internal/config"
	th "git.home.luguber.info/inful/lessonforge/internal/site/theme"
)

type Theme struct{}

func (Theme) Name() config.Theme { return config.ThemeRTD }

func (Theme) Features() th.Features {
	return th.Features{Name: config.ThemeRTD, ShowRepoLink: true, SidebarNav: true, SearchBox: true}
}

func (Theme) ApplyParams(cfg *config.Config, params map[string]any) {
	if params["navigation_depth"] == nil {
		params["navigation_depth"] = 4
	}
	if params["collapse_navigation"] == nil {
		params["collapse_navigation"] = false
	}
	if params["sticky_navigation"] == nil {
		params["sticky_navigation"] = true
	}
	if cfg.Site.Logo != "" && params["logo"] == nil {
		params["logo"] = cfg.Site.Logo
	}
	if cfg.Site.Favicon != "" && params["favicon"] == nil {
		params["favicon"] = cfg.Site.Favicon
	}
	// Repo context drives the "view on <host>" header link.
	for k, v := range cfg.Context() {
		if _, exists := params[k]; !exists {
			params[k] = v
		}
	}
}

func (Theme) CustomizeRoot(_ *config.Config, _ map[string]any) {}

func init() { th.Register(Theme{}) }
