package theme

import "testing"

type fakeTheme struct{ name string }

func (f fakeTheme) Name() string                  { return f.name }
func (fakeTheme) Features() Features              { return Features{ShowsSidebars: true} }
func (fakeTheme) Layout() string                  { return "<html>{{.Content}}</html>" }
func (fakeTheme) Sidebar(string) (string, bool)   { return "", false }
func (fakeTheme) StaticAssets() map[string]string { return nil }

func TestRegisterAndGet(t *testing.T) {
	Register(fakeTheme{name: "fake"})
	if got := Get("fake"); got == nil {
		t.Fatalf("expected registered theme")
	}
	if got := Get("missing"); got != nil {
		t.Fatalf("expected nil for unknown theme, got %v", got)
	}
}

func TestRegisterFirstWins(t *testing.T) {
	Register(fakeTheme{name: "dup"})
	Register(fakeTheme{name: "dup"})
	found := 0
	for _, n := range Names() {
		if n == "dup" {
			found++
		}
	}
	if found != 1 {
		t.Fatalf("expected a single registration, got %d", found)
	}
}
