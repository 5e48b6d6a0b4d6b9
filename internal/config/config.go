package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the full lesson-site configuration.
type Config struct {
	Project         ProjectConfig  `yaml:"project"`
	Repo            RepoConfig     `yaml:"repo,omitempty"`
	Site            SiteConfig     `yaml:"site,omitempty"`
	Extensions      []string       `yaml:"extensions,omitempty"`
	ExcludePatterns []string       `yaml:"exclude_patterns,omitempty"`
	Notebooks       NotebookConfig `yaml:"notebooks,omitempty"`
	Todos           TodoConfig     `yaml:"todos,omitempty"`
}

// ProjectConfig carries the course metadata rendered into every page.
type ProjectConfig struct {
	Name      string `yaml:"name"`
	Author    string `yaml:"author,omitempty"`
	Copyright string `yaml:"copyright,omitempty"`
}

// RepoConfig identifies the repository hosting the course sources. Themes use
// it to render "view on <host>" links back to the published branch.
type RepoConfig struct {
	Host        string `yaml:"host,omitempty"`
	Owner       string `yaml:"owner,omitempty"`
	Name        string `yaml:"name,omitempty"` // auto-detected from working directory if blank
	Branch      string `yaml:"branch,omitempty"`
	ContentPath string `yaml:"content_path,omitempty"` // with leading and trailing slash
}

// SiteConfig represents presentation options for the generated site.
type SiteConfig struct {
	Theme       string   `yaml:"theme,omitempty"`
	Title       string   `yaml:"title,omitempty"`
	Logo        string   `yaml:"logo,omitempty"`
	Favicon     string   `yaml:"favicon,omitempty"`
	BaseURL     string   `yaml:"base_url,omitempty"`
	Language    string   `yaml:"language,omitempty"`
	StaticPaths []string `yaml:"static_paths,omitempty"`
	ExtraHead   []string `yaml:"extra_head,omitempty"` // raw snippets appended to <head>
}

// NotebookConfig controls how the external notebook executor is steered.
// Values are validated here but consumed downstream.
type NotebookConfig struct {
	Execute string `yaml:"execute,omitempty"` // off|auto|force|cache
}

// TodoConfig controls whether todo callouts survive into the rendered site.
type TodoConfig struct {
	Include *bool `yaml:"include,omitempty"`
}

// Known extension names understood by the generator.
const (
	ExtGitHubPages = "githubpages"
	ExtLesson      = "lesson"
	ExtTodo        = "todo"
)

// Notebook execution modes accepted by NotebookConfig.Execute.
var NotebookModes = []string{"off", "auto", "force", "cache"}

// DefaultExcludePatterns are applied when the config declares none.
var DefaultExcludePatterns = []string{
	"code*",
	"README*",
	"_build",
	"Thumbs.db",
	".DS_Store",
	"jupyter_execute",
	"*venv*",
}

// HasExtension reports whether the named extension is enabled.
func (c *Config) HasExtension(name string) bool {
	for _, e := range c.Extensions {
		if e == name {
			return true
		}
	}
	return false
}

// IncludeTodos resolves the todo visibility flag. Todo callouts are kept by
// default whenever the todo extension is enabled.
func (c *Config) IncludeTodos() bool {
	if c.Todos.Include != nil {
		return *c.Todos.Include
	}
	return c.HasExtension(ExtTodo)
}

// Context returns the host-context mapping themes consume to render
// repository links. Keys are fixed; values derive from RepoConfig.
func (c *Config) Context() map[string]any {
	return map[string]any{
		"display_repo_link": c.Repo.Owner != "" && c.Repo.Name != "",
		"repo_host":         c.Repo.Host,
		"repo_owner":        c.Repo.Owner,
		"repo_name":         c.Repo.Name,
		"repo_branch":       c.Repo.Branch,
		"content_path":      c.Repo.ContentPath,
	}
}

// Load loads configuration from the specified file.
//
// Environment variables from .env/.env.local are loaded first (never
// overriding the process environment), then ${VAR} references inside the YAML
// are expanded. Loading the same file twice in the same environment yields
// identical configs.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults(filepath.Dir(configPath))
	return &cfg, nil
}

// applyDefaults fills unset fields. dir is the directory containing the
// config file, used for repository name auto-detection.
func (c *Config) applyDefaults(dir string) {
	if c.Site.Title == "" {
		c.Site.Title = c.Project.Name
	}
	if c.Site.Theme == "" {
		c.Site.Theme = "rtd"
	}
	if c.Site.Language == "" {
		c.Site.Language = "en"
	}
	if len(c.Site.StaticPaths) == 0 {
		c.Site.StaticPaths = []string{"css"}
	}
	if c.Repo.Host == "" {
		c.Repo.Host = "github.com"
	}
	if c.Repo.Branch == "" {
		c.Repo.Branch = "main"
	}
	if c.Repo.ContentPath == "" {
		c.Repo.ContentPath = "/content/"
	}
	if c.Repo.Name == "" {
		// Auto-detect from directory name. This can break, but useful as a default.
		if abs, err := filepath.Abs(dir); err == nil {
			c.Repo.Name = filepath.Base(abs)
		}
	}
	if len(c.ExcludePatterns) == 0 {
		c.ExcludePatterns = append([]string(nil), DefaultExcludePatterns...)
	}
	if c.Notebooks.Execute == "" {
		c.Notebooks.Execute = "cache"
	}
}
