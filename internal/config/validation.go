package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Validate checks the complete configuration structure after defaults applied.
func Validate(cfg *Config) error {
	validator := newConfigurationValidator(cfg)
	return validator.validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validatePaths(); err != nil {
		return err
	}
	if err := cv.validateAPI(); err != nil {
		return err
	}
	if err := cv.validateExamples(); err != nil {
		return err
	}
	if err := cv.validateRender(); err != nil {
		return err
	}
	if err := cv.validateOutputs(); err != nil {
		return err
	}
	if err := cv.validateServe(); err != nil {
		return err
	}
	return nil
}

func (cv *configurationValidator) validatePaths() error {
	p := cv.config.Paths
	if filepath.IsAbs(p.Docs) || filepath.IsAbs(p.Source) {
		return errors.New("paths.docs and paths.source must be relative to paths.root")
	}
	if strings.HasPrefix(filepath.Clean(p.Source), "..") {
		return fmt.Errorf("paths.source escapes the repository root: %s", p.Source)
	}
	if filepath.IsAbs(p.Changelog) {
		return errors.New("paths.changelog must be relative to paths.root")
	}
	return nil
}

func (cv *configurationValidator) validateAPI() error {
	a := cv.config.API
	if filepath.IsAbs(a.Dir) || filepath.IsAbs(a.Marker) {
		return errors.New("api.dir and api.marker must be relative paths")
	}
	if a.Script == "" {
		return errors.New("api.script cannot be empty")
	}
	return nil
}

func (cv *configurationValidator) validateExamples() error {
	e := cv.config.Examples
	if len(e.Names) == 0 {
		return errors.New("examples.names cannot be empty")
	}
	seen := make(map[string]bool, len(e.Names))
	for _, name := range e.Names {
		if name == "" {
			return errors.New("example name cannot be empty")
		}
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("example name must not contain path separators: %s", name)
		}
		if seen[name] {
			return fmt.Errorf("duplicate example name: %s", name)
		}
		seen[name] = true
	}
	if len(e.Scripts) == 0 {
		return errors.New("examples.scripts cannot be empty")
	}
	return nil
}

func (cv *configurationValidator) validateRender() error {
	r := cv.config.Render
	if r.MasterDoc == "" {
		return errors.New("render.master_doc cannot be empty")
	}
	if strings.Contains(r.MasterDoc, ".") {
		return fmt.Errorf("render.master_doc is a document name without extension: %s", r.MasterDoc)
	}
	for ext, flavor := range r.SourceSuffix {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("source_suffix extension must start with a dot: %s", ext)
		}
		switch flavor {
		case "markdown", "restructuredtext":
		default:
			return fmt.Errorf("unsupported source flavor %q for %s", flavor, ext)
		}
	}
	return nil
}

func (cv *configurationValidator) validateOutputs() error {
	for _, mp := range cv.config.Outputs.ManPages {
		if mp.Section != 0 && (mp.Section < 1 || mp.Section > 9) {
			return fmt.Errorf("man page section out of range: %d", mp.Section)
		}
	}
	return nil
}

func (cv *configurationValidator) validateServe() error {
	s := cv.config.Serve
	if s.RebuildEvery != "" {
		d, err := time.ParseDuration(s.RebuildEvery)
		if err != nil {
			return fmt.Errorf("serve.rebuild_every is not a duration: %w", err)
		}
		if d < time.Minute {
			return fmt.Errorf("serve.rebuild_every below one minute: %s", s.RebuildEvery)
		}
	}
	return nil
}

// RebuildInterval returns the parsed periodic rebuild interval, zero when
// scheduling is disabled. Validate guarantees parseability.
func (c *Config) RebuildInterval() time.Duration {
	if c.Serve.RebuildEvery == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Serve.RebuildEvery)
	if err != nil {
		return 0
	}
	return d
}
