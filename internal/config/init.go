package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Project: ProjectConfig{
			Name:      "Julia for High-Performance Scientific Computing",
			Author:    "Kjartan Thor Wikfeldt",
			Copyright: "2022, EuroCC National Competence Center Sweden",
		},
		Repo: RepoConfig{
			Host:        "github.com",
			Owner:       "enccs",
			Name:        "Julia-for-HPC",
			Branch:      "master",
			ContentPath: "/content/",
		},
		Site: SiteConfig{
			Theme:       "rtd",
			Logo:        "img/ENCCS.jpg",
			Favicon:     "img/favicon.ico",
			StaticPaths: []string{"css"},
		},
		Extensions:      []string{ExtGitHubPages, ExtLesson, ExtTodo},
		ExcludePatterns: append([]string(nil), DefaultExcludePatterns...),
		Notebooks:       NotebookConfig{Execute: "cache"},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
