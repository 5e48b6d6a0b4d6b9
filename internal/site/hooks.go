package site

import (
	"log/slog"
	"os"
)

// Hook is a callback invoked exactly once per build, in registration order,
// before content discovery. Hooks typically register head assets.
type Hook func(*Build) error

const (
	// overrideStylesheet is always attached to the generated pages.
	overrideStylesheet = "overrides.css"

	// Analytics injection is gated on the CI branch ref so that preview and
	// fork builds never report page views.
	analyticsRefEnv    = "GITHUB_REF"
	analyticsRefValue  = "refs/heads/main"
	analyticsScriptSrc = "https://plausible.io/js/script.js"
	analyticsDomain    = "enccs.github.io/julia-for-hpc"
)

// CourseSetup is the default build-start hook: it attaches the override
// stylesheet and, when the build runs on the published branch, the analytics
// script with its fixed attributes.
func CourseSetup(b *Build) error {
	b.Head.AddStylesheet(overrideStylesheet)

	if ref := os.Getenv(analyticsRefEnv); ref == analyticsRefValue {
		b.Head.AddScript(ScriptRef{
			Src: analyticsScriptSrc,
			Attrs: map[string]string{
				"data-domain": analyticsDomain,
				"defer":       "defer",
			},
		})
		slog.Debug("Analytics script enabled", "ref", ref)
	}
	return nil
}
