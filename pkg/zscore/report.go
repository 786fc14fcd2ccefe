// 15 Sep 2026

package zscore

import (
	"encoding/json"
	"fmt"
	"io"
)

const (
	Name         = "tortoize"
	Reference    = "Sobolev et al. A Global Ramachandran Score Identifies Protein Structures with Unlikely Stereochemistry, Structure (2020)"
	ReferenceDOI = "https://doi.org/10.1016/j.str.2020.08.005"
)

// Software says who made a report.
type Software struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Reference    string `json:"reference"`
	ReferenceDOI string `json:"reference-doi"`
}

// Report is the output for one structure, models keyed by their id.
type Report struct {
	Software Software               `json:"software"`
	Model    map[string]*ModelScore `json:"model"`
}

// NewReport makes an empty report.
func NewReport(version string) *Report {
	return &Report{
		Software: Software{Name: Name, Version: version, Reference: Reference, ReferenceDOI: ReferenceDOI},
		Model:    make(map[string]*ModelScore),
	}
}

// Add puts in the scores for a model. A model id can only be used
// once.
func (r *Report) Add(id string, ms *ModelScore) error {
	if _, ok := r.Model[id]; ok {
		return fmt.Errorf("model %q is already in the report", id)
	}
	r.Model[id] = ms
	return nil
}

// Write writes the report as JSON. If indent is set it is made
// readable.
func (r *Report) Write(w io.Writer, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// ReadReport reads back what Write wrote.
func ReadReport(rdr io.Reader) (*Report, error) {
	var r Report
	if err := json.NewDecoder(rdr).Decode(&r); err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	return &r, nil
}
