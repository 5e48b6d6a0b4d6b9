package config

import "strings"

// Theme is a normalized theme identifier.
type Theme string

// Known themes.
const (
	ThemeRTD   Theme = "rtd"
	ThemePlain Theme = "plain"
)

// ThemeType normalizes the configured theme name to a known Theme, returning
// "" for unknown names.
func (s SiteConfig) ThemeType() Theme {
	switch strings.ToLower(strings.TrimSpace(s.Theme)) {
	case string(ThemeRTD):
		return ThemeRTD
	case string(ThemePlain):
		return ThemePlain
	}
	return ""
}
