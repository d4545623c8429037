package manual

import (
	"strings"
	"testing"

	th "git.home.luguber.info/inful/refman/internal/theme"
)

func TestManualThemeRegistered(t *testing.T) {
	got := th.Get("manual")
	if got == nil {
		t.Fatalf("manual theme not registered")
	}
	if !got.Features().ShowsSidebars {
		t.Fatalf("manual theme should declare sidebar support")
	}
}

func TestSidebarSnippetsExist(t *testing.T) {
	for _, name := range []string{"about.html", "navigation.html", "relations.html", "searchbox.html", "donate.html"} {
		if _, ok := (Theme{}).Sidebar(name); !ok {
			t.Fatalf("missing sidebar snippet %s", name)
		}
	}
	if _, ok := (Theme{}).Sidebar("unknown.html"); ok {
		t.Fatalf("unexpected sidebar snippet")
	}
}

func TestLayoutReferencesThemeCSS(t *testing.T) {
	layout := (Theme{}).Layout()
	if !strings.Contains(layout, "_static/css/theme.css") {
		t.Fatalf("layout should link the bundled stylesheet")
	}
	assets := (Theme{}).StaticAssets()
	if _, ok := assets["css/theme.css"]; !ok {
		t.Fatalf("theme should bundle css/theme.css")
	}
}
