package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Severity classifies a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single validation finding.
type Issue struct {
	Severity Severity
	Field    string
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Field, i.Message)
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate checks the configuration for structural problems. Value semantics
// owned by the external renderer (theme capabilities, asset existence) only
// produce warnings; the renderer is where those ultimately fail.
func (c *Config) Validate() []Issue {
	var issues []Issue

	if strings.TrimSpace(c.Project.Name) == "" {
		issues = append(issues, Issue{SeverityError, "project.name", "must not be empty"})
	}

	if c.Site.Theme != "" && c.Site.ThemeType() == "" {
		issues = append(issues, Issue{SeverityWarning, "site.theme",
			fmt.Sprintf("unknown theme %q (known: rtd, plain)", c.Site.Theme)})
	}

	known := map[string]bool{ExtGitHubPages: true, ExtLesson: true, ExtTodo: true}
	for _, e := range c.Extensions {
		if !known[e] {
			issues = append(issues, Issue{SeverityWarning, "extensions",
				fmt.Sprintf("unknown extension %q", e)})
		}
	}

	valid := false
	for _, m := range NotebookModes {
		if c.Notebooks.Execute == m {
			valid = true
			break
		}
	}
	if !valid {
		issues = append(issues, Issue{SeverityError, "notebooks.execute",
			fmt.Sprintf("invalid mode %q (must be one of %s)", c.Notebooks.Execute, strings.Join(NotebookModes, "|"))})
	}

	for _, p := range c.ExcludePatterns {
		if _, err := filepath.Match(p, "probe"); err != nil {
			issues = append(issues, Issue{SeverityError, "exclude_patterns",
				fmt.Sprintf("malformed pattern %q: %v", p, err)})
		}
	}

	if cp := c.Repo.ContentPath; cp != "" && (!strings.HasPrefix(cp, "/") || !strings.HasSuffix(cp, "/")) {
		issues = append(issues, Issue{SeverityWarning, "repo.content_path",
			"should have leading and trailing slash"})
	}

	return issues
}
