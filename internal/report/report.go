// Package report carries structured diagnostics for the surface layers
// (lexer, parser, REPL). The core term graph never reports through here: its
// failures are canonical Error nodes in the graph itself.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Pos is a line/column source position, 1-based.
type Pos struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Report is the canonical structured diagnostic.
type Report struct {
	Schema  string `json:"schema"`
	Code    string `json:"code"`
	Phase   string `json:"phase"`
	Message string `json:"message"`
	Pos     *Pos   `json:"pos,omitempty"`
}

// New builds a report for the given phase.
func New(phase, code, message string) *Report {
	return &Report{Schema: "tir.error/v1", Phase: phase, Code: code, Message: message}
}

// At attaches a source position.
func (r *Report) At(pos Pos) *Report {
	r.Pos = &pos
	return r
}

// ToJSON renders the report deterministically.
func (r *Report) ToJSON() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReportError wraps a Report as an error so it survives errors.As.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	if e.Rep.Pos != nil {
		return fmt.Sprintf("%s: %s: %s", e.Rep.Pos, e.Rep.Code, e.Rep.Message)
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// Wrap turns a Report into an error.
func Wrap(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// As extracts a Report from an error chain.
func As(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}
