package config

import "testing"

func TestThemeTypeNormalization(t *testing.T) {
	cases := []struct {
		in   string
		want Theme
	}{
		{"RTD", ThemeRTD},
		{"rtd", ThemeRTD},
		{"  rTd  ", ThemeRTD},
		{"PLAIN", ThemePlain},
		{"plain", ThemePlain},
		{"unknown", ""},
		{"", ""},
	}
	for _, c := range cases {
		s := SiteConfig{Theme: c.in}
		if got := s.ThemeType(); got != c.want {
			t.Errorf("ThemeType(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
