package site

import "errors"

// Sentinel errors for stage failure classification. Stages wrap these with
// descriptive detail; callers match with errors.Is.
var (
	// ErrPrepare indicates the output or source layout could not be prepared.
	ErrPrepare = errors.New("refman: prepare error")
	// ErrChangelog indicates the changelog could not be staged into the sources.
	ErrChangelog = errors.New("refman: changelog error")
	// ErrAPIBuild indicates the API documentation build or staging failed.
	ErrAPIBuild = errors.New("refman: api docs error")
	// ErrExamplesBuild indicates the examples build or staging failed.
	ErrExamplesBuild = errors.New("refman: examples error")
	// ErrRender indicates page rendering failed.
	ErrRender = errors.New("refman: render error")
)
