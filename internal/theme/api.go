// Package theme defines the pluggable page chrome used when rendering the
// manual. Built-in themes live under internal/theme/themes and register via
// their own init().
package theme

import "sync"

// Features describes capability flags for a theme.
type Features struct {
	Name              string
	ShowsSidebars     bool
	SupportsEditLinks bool
	ProvidesSearchBox bool
}

// Theme provides the templates and assets for rendered pages.
//
// Contract:
//
//	Layout() -> html/template text for the page shell.
//	Sidebar(file) -> template text for a named sidebar snippet, by the
//	  conventional file name (e.g. "navigation.html").
//	StaticAssets() -> asset path (relative to the static dir) to content.
type Theme interface {
	Name() string
	Features() Features
	Layout() string
	Sidebar(file string) (string, bool)
	StaticAssets() map[string]string
}

var (
	regMu sync.RWMutex
	reg   = map[string]Theme{}
)

// Register registers a Theme implementation (idempotent).
func Register(t Theme) {
	if t == nil {
		return
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := reg[t.Name()]; !ok {
		reg[t.Name()] = t
	}
}

// Get retrieves a theme by name, or nil when unknown.
func Get(name string) Theme {
	regMu.RLock()
	defer regMu.RUnlock()
	return reg[name]
}

// Names returns the registered theme names.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(reg))
	for n := range reg {
		names = append(names, n)
	}
	return names
}
