package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyProject    = "project"
	KeyVersion    = "version"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyTool       = "tool"
	KeyCommand    = "command"
	KeyDir        = "dir"
	KeyPath       = "path"
	KeySource     = "source"
	KeyDest       = "dest"
	KeyOutput     = "output"
	KeyExample    = "example"
	KeyPage       = "page"
	KeyMarker     = "marker"
	KeySummary    = "summary"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRemoteAddr = "remote_addr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Project(name string) slog.Attr    { return slog.String(KeyProject, name) }
func Version(v string) slog.Attr       { return slog.String(KeyVersion, v) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Tool(name string) slog.Attr       { return slog.String(KeyTool, name) }
func Command(cmdline string) slog.Attr { return slog.String(KeyCommand, cmdline) }
func Dir(d string) slog.Attr           { return slog.String(KeyDir, d) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Source(s string) slog.Attr        { return slog.String(KeySource, s) }
func Dest(d string) slog.Attr          { return slog.String(KeyDest, d) }
func Output(d string) slog.Attr        { return slog.String(KeyOutput, d) }
func Example(name string) slog.Attr    { return slog.String(KeyExample, name) }
func Page(name string) slog.Attr       { return slog.String(KeyPage, name) }
func Marker(p string) slog.Attr        { return slog.String(KeyMarker, p) }
func Summary(s string) slog.Attr       { return slog.String(KeySummary, s) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func RemoteAddr(a string) slog.Attr    { return slog.String(KeyRemoteAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
