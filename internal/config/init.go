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
		Site: Site{
			Project:   "Lumino",
			Author:    "Project Jupyter",
			Copyright: "2021, Project Jupyter",
		},
		Paths: Paths{
			Root:      ".",
			Docs:      "docs",
			Source:    "docs/source",
			Changelog: "CHANGELOG.md",
		},
		Theme: Theme{
			Name:     "manual",
			Sidebars: append([]string(nil), defaultSidebars...),
		},
		Render: Render{
			MasterDoc: "index",
			SourceSuffix: map[string]string{
				".md":  "markdown",
				".rst": "restructuredtext",
			},
			Math:       true,
			CopyButton: true,
			AllowHTML:  true,
		},
		Context: RepoContext{
			Display:  true,
			Owner:    "jupyterlab",
			Repo:     "lumino",
			Branch:   "main",
			DocsPath: "/docs/source/",
		},
		Examples: Examples{
			Names: append([]string(nil), defaultExamples...),
		},
		Intersphinx: map[string]string{
			"https://docs.python.org/": "",
		},
		Serve: Serve{
			Addr:    ":8000",
			Metrics: false,
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
