// Package report builds the JSON summary of a rewrite run
package report

import (
	"fmt"

	"github.com/tidwall/sjson"

	"reimport/internal/host/starlark"
)

// Report accumulates per-file results of one run
type Report struct {
	doc      []byte
	files    int
	changed  int
	rewrites int
}

// New creates an empty report for the given run
func New(runID string) (*Report, error) {
	doc, err := sjson.SetBytes([]byte(`{}`), "run_id", runID)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	if doc, err = sjson.SetRawBytes(doc, "files", []byte(`[]`)); err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	return &Report{doc: doc}, nil
}

// Add appends one file result
func (r *Report) Add(res *starlark.Result) error {
	entry := map[string]interface{}{
		"path":    res.Path,
		"changed": res.Changed(),
		"visited": res.Visited,
		"changes": res.Changes,
	}
	if res.Changes == nil {
		entry["changes"] = []starlark.Change{}
	}

	doc, err := sjson.SetBytes(r.doc, "files.-1", entry)
	if err != nil {
		return fmt.Errorf("failed to add %s to report: %w", res.Path, err)
	}
	r.doc = doc

	r.files++
	if res.Changed() {
		r.changed++
	}
	r.rewrites += len(res.Changes)
	return nil
}

// AddError records a file that could not be rewritten
func (r *Report) AddError(path string, cause error) error {
	doc, err := sjson.SetBytes(r.doc, "files.-1", map[string]interface{}{
		"path":  path,
		"error": cause.Error(),
	})
	if err != nil {
		return fmt.Errorf("failed to add %s to report: %w", path, err)
	}
	r.doc = doc
	r.files++
	return nil
}

// Bytes returns the report with its summary block
func (r *Report) Bytes() ([]byte, error) {
	doc, err := sjson.SetBytes(r.doc, "summary", map[string]int{
		"files":    r.files,
		"changed":  r.changed,
		"rewrites": r.rewrites,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to finish report: %w", err)
	}
	return doc, nil
}
