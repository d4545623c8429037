package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// BuildReport captures high-level metrics about a manual build run.
type BuildReport struct {
	SchemaVersion int
	ID            string
	Project       string
	Version       string
	Start         time.Time
	End           time.Time
	Outcome       BuildOutcome
	Errors        []error // fatal errors causing build abortion (at most one today)
	Warnings      []error // non-fatal issues recorded along the way

	StageDurations  map[StageName]time.Duration
	StageErrorKinds map[StageName]StageErrorKind

	// APIDocsRebuilt is false when the marker file short-circuited the
	// toolchain; the staged tree is refreshed either way.
	APIDocsRebuilt bool
	// ExamplesRebuilt mirrors APIDocsRebuilt for the example applications.
	ExamplesRebuilt bool
	// ExamplesStaged lists the example names staged into the manual sources.
	ExamplesStaged []string

	RenderedPages int
	SkippedPages  int
	StaticAssets  int
	Stylesheets   []string

	// Commit and Branch describe the toolkit checkout when resolvable.
	Commit string
	Branch string
}

func newBuildReport(project, version string) *BuildReport {
	return &BuildReport{
		SchemaVersion:   1,
		ID:              uuid.NewString(),
		Project:         project,
		Version:         version,
		Start:           time.Now(),
		StageDurations:  make(map[StageName]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
	}
}

func (r *BuildReport) finish() { r.End = time.Now() }

// deriveOutcome sets Outcome from the recorded errors and warnings.
func (r *BuildReport) deriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			if se, ok := e.(*StageError); ok && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// Duration returns the wall-clock build duration.
func (r *BuildReport) Duration() time.Duration { return r.End.Sub(r.Start) }

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	return fmt.Sprintf("project=%s version=%s duration=%s api_rebuilt=%t examples_rebuilt=%t pages=%d skipped=%d errors=%d warnings=%d outcome=%s",
		r.Project, r.Version, r.Duration().Truncate(time.Millisecond),
		r.APIDocsRebuilt, r.ExamplesRebuilt,
		r.RenderedPages, r.SkippedPages,
		len(r.Errors), len(r.Warnings), r.Outcome)
}

// ReportFileName is the machine-readable report written into the output dir.
const ReportFileName = "build-report.json"

// Persist writes the report into the output directory:
//
//	build-report.json  (machine readable)
//	build-report.txt   (human summary)
//
// Best effort; errors are returned for caller logging but do not change the
// build outcome.
func (r *BuildReport) Persist(root string) error {
	if r.End.IsZero() {
		r.finish()
		r.deriveOutcome()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("ensure root for report: %w", err)
	}

	jb, err := json.MarshalIndent(r.sanitizedCopy(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	jsonPath := filepath.Join(root, ReportFileName)
	tmpJSON := jsonPath + ".tmp"
	if err := os.WriteFile(tmpJSON, jb, 0o644); err != nil {
		return fmt.Errorf("write temp report json: %w", err)
	}
	if err := os.Rename(tmpJSON, jsonPath); err != nil {
		return fmt.Errorf("atomic rename json: %w", err)
	}

	summaryPath := filepath.Join(root, "build-report.txt")
	tmpTxt := summaryPath + ".tmp"
	if err := os.WriteFile(tmpTxt, []byte(r.Summary()+"\n"), 0o644); err != nil {
		return fmt.Errorf("write temp report summary: %w", err)
	}
	if err := os.Rename(tmpTxt, summaryPath); err != nil {
		return fmt.Errorf("atomic rename summary: %w", err)
	}
	return nil
}

// MarshalJSON serializes via the sanitized copy so error values become strings.
func (r *BuildReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.sanitizedCopy())
}

// sanitizedCopy returns a copy with error fields converted to strings and
// typed map keys flattened for JSON friendliness.
func (r *BuildReport) sanitizedCopy() *BuildReportSerializable {
	durations := make(map[string]time.Duration, len(r.StageDurations))
	for k, v := range r.StageDurations {
		durations[string(k)] = v
	}
	kinds := make(map[string]string, len(r.StageErrorKinds))
	for k, v := range r.StageErrorKinds {
		kinds[string(k)] = string(v)
	}

	s := &BuildReportSerializable{
		SchemaVersion:   r.SchemaVersion,
		ID:              r.ID,
		Project:         r.Project,
		Version:         r.Version,
		Start:           r.Start,
		End:             r.End,
		Outcome:         string(r.Outcome),
		Errors:          make([]string, len(r.Errors)),
		Warnings:        make([]string, len(r.Warnings)),
		StageDurations:  durations,
		StageErrorKinds: kinds,
		APIDocsRebuilt:  r.APIDocsRebuilt,
		ExamplesRebuilt: r.ExamplesRebuilt,
		ExamplesStaged:  r.ExamplesStaged,
		RenderedPages:   r.RenderedPages,
		SkippedPages:    r.SkippedPages,
		StaticAssets:    r.StaticAssets,
		Stylesheets:     r.Stylesheets,
		Commit:          r.Commit,
		Branch:          r.Branch,
	}
	for i, e := range r.Errors {
		s.Errors[i] = e.Error()
	}
	for i, w := range r.Warnings {
		s.Warnings[i] = w.Error()
	}
	return s
}

// BuildReportSerializable mirrors BuildReport with string errors for JSON output.
type BuildReportSerializable struct {
	SchemaVersion   int                      `json:"schema_version"`
	ID              string                   `json:"id"`
	Project         string                   `json:"project"`
	Version         string                   `json:"version"`
	Start           time.Time                `json:"start"`
	End             time.Time                `json:"end"`
	Outcome         string                   `json:"outcome"`
	Errors          []string                 `json:"errors"`
	Warnings        []string                 `json:"warnings"`
	StageDurations  map[string]time.Duration `json:"stage_durations"`
	StageErrorKinds map[string]string        `json:"stage_error_kinds"`
	APIDocsRebuilt  bool                     `json:"api_docs_rebuilt"`
	ExamplesRebuilt bool                     `json:"examples_rebuilt"`
	ExamplesStaged  []string                 `json:"examples_staged,omitempty"`
	RenderedPages   int                      `json:"rendered_pages"`
	SkippedPages    int                      `json:"skipped_pages"`
	StaticAssets    int                      `json:"static_assets"`
	Stylesheets     []string                 `json:"stylesheets,omitempty"`
	Commit          string                   `json:"commit,omitempty"`
	Branch          string                   `json:"branch,omitempty"`
}
