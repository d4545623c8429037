package site

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDeriveOutcome(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*BuildReport)
		expected BuildOutcome
	}{
		{"clean", func(*BuildReport) {}, OutcomeSuccess},
		{"warnings only", func(r *BuildReport) {
			r.Warnings = append(r.Warnings, errors.New("minor"))
		}, OutcomeWarning},
		{"fatal wins over warnings", func(r *BuildReport) {
			r.Warnings = append(r.Warnings, errors.New("minor"))
			r.Errors = append(r.Errors, NewFatalStageError(StageAPIDocs, errors.New("boom")))
		}, OutcomeFailed},
		{"canceled wins over fatal", func(r *BuildReport) {
			r.Errors = append(r.Errors, NewFatalStageError(StageAPIDocs, errors.New("boom")))
			r.Errors = append(r.Errors, NewCanceledStageError(StageExamples, errors.New("canceled")))
		}, OutcomeCanceled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newBuildReport("Lumino", "2024.3.0")
			tc.mutate(r)
			r.finish()
			r.deriveOutcome()
			if r.Outcome != tc.expected {
				t.Fatalf("expected %s, got %s", tc.expected, r.Outcome)
			}
		})
	}
}

func TestReportPersist_WritesJSONAndSummary(t *testing.T) {
	dir := t.TempDir()
	r := newBuildReport("Lumino", "2024.3.0")
	r.APIDocsRebuilt = true
	r.ExamplesStaged = []string{"accordionpanel", "datagrid", "dockpanel"}
	r.RenderedPages = 7
	r.StageDurations[StageRenderPages] = 25 * time.Millisecond
	r.Warnings = append(r.Warnings, errors.New("report write retried"))

	if err := r.Persist(dir); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ReportFileName))
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var got BuildReportSerializable
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Project != "Lumino" || got.Version != "2024.3.0" {
		t.Fatalf("identity mismatch: %+v", got)
	}
	if got.Outcome != string(OutcomeWarning) {
		t.Fatalf("expected warning outcome, got %s", got.Outcome)
	}
	if len(got.Warnings) != 1 || got.Warnings[0] != "report write retried" {
		t.Fatalf("warnings not serialized as strings: %v", got.Warnings)
	}
	if got.StageDurations["render_pages"] != 25*time.Millisecond {
		t.Fatalf("stage durations lost: %v", got.StageDurations)
	}
	if !got.APIDocsRebuilt {
		t.Fatalf("rebuild flag lost")
	}

	summary, err := os.ReadFile(filepath.Join(dir, "build-report.txt"))
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if !strings.Contains(string(summary), "outcome=warning") {
		t.Fatalf("summary missing outcome: %s", summary)
	}
	if !strings.Contains(string(summary), "pages=7") {
		t.Fatalf("summary missing page count: %s", summary)
	}

	// No temp files may remain after the atomic renames.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestReportMarshal_ErrorsAsStrings(t *testing.T) {
	r := newBuildReport("Lumino", "2024.3.0")
	r.Errors = append(r.Errors, NewFatalStageError(StageChangelog, errors.New("missing file")))
	r.finish()
	r.deriveOutcome()

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), "fatal stage changelog: missing file") {
		t.Fatalf("error not flattened to string: %s", data)
	}
	if !strings.Contains(string(data), `"outcome":"failed"`) {
		t.Fatalf("outcome missing: %s", data)
	}
}

func TestReportIDsUnique(t *testing.T) {
	a := newBuildReport("Lumino", "1.0.0")
	b := newBuildReport("Lumino", "1.0.0")
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected unique non-empty build ids, got %q and %q", a.ID, b.ID)
	}
}
