package gen

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Outcome is the result of the emission of an artifact.
type Outcome uint8

// List of outcomes.
const (
	OutcomeGenerated Outcome = iota
	OutcomeSkippedExists
	OutcomeFailed
)

// String returns the name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeGenerated:
		return "generated"
	case OutcomeSkippedExists:
		return "skipped_exists"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", o)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Entry reports the outcome of an artifact.
type Entry struct {
	Identity Identity
	Mode     Mode
	Policy   Policy
	Outcome  Outcome
	Err      error
}

// Skip reports a table whose DAO was deliberately not generated.
type Skip struct {
	Schema string
	Table  string
	Mode   Mode
	Reason string
}

// Report enumerates the artifacts of a generation run.
type Report struct {
	Entries []Entry
	Skips   []Skip
	Elapsed time.Duration
}

func (r *Report) add(e Entry) {
	r.Entries = append(r.Entries, e)
}

// Clean reports if no artifact failed.
func (r *Report) Clean() bool {
	return r.Count(OutcomeFailed) == 0
}

// Count returns the number of entries with the given outcome.
func (r *Report) Count(o Outcome) int {
	var n int
	for _, e := range r.Entries {
		if e.Outcome == o {
			n++
		}
	}
	return n
}

// Lookup returns the entry of the artifact at the given path.
func (r *Report) Lookup(path string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Identity.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}

// Err joins the errors of the failed entries.
func (r *Report) Err() error {
	var errs []error
	for _, e := range r.Entries {
		if e.Outcome == OutcomeFailed && e.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Identity.Path, e.Err))
		}
	}
	return errors.Join(errs...)
}

// Summary returns a one-line summary of the report.
func (r *Report) Summary() string {
	return fmt.Sprintf("generated=%d skipped=%d failed=%d dao_skips=%d elapsed=%s",
		r.Count(OutcomeGenerated), r.Count(OutcomeSkippedExists), r.Count(OutcomeFailed),
		len(r.Skips), r.Elapsed.Round(time.Millisecond))
}

// Report formats.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

type (
	reportDoc struct {
		Clean   bool       `json:"clean" yaml:"clean" msgpack:"clean"`
		Summary string     `json:"summary" yaml:"summary" msgpack:"summary"`
		Entries []entryDoc `json:"entries" yaml:"entries" msgpack:"entries"`
		Skips   []skipDoc  `json:"skips,omitempty" yaml:"skips,omitempty" msgpack:"skips,omitempty"`
	}
	entryDoc struct {
		Identity `yaml:",inline" msgpack:",inline"`
		Mode     string `json:"mode" yaml:"mode" msgpack:"mode"`
		Policy   string `json:"policy" yaml:"policy" msgpack:"policy"`
		Outcome  string `json:"outcome" yaml:"outcome" msgpack:"outcome"`
		Error    string `json:"error,omitempty" yaml:"error,omitempty" msgpack:"error,omitempty"`
	}
	skipDoc struct {
		Schema string `json:"schema" yaml:"schema" msgpack:"schema"`
		Table  string `json:"table" yaml:"table" msgpack:"table"`
		Mode   string `json:"mode" yaml:"mode" msgpack:"mode"`
		Reason string `json:"reason" yaml:"reason" msgpack:"reason"`
	}
)

func (r *Report) doc() reportDoc {
	doc := reportDoc{Clean: r.Clean(), Summary: r.Summary(), Entries: make([]entryDoc, 0, len(r.Entries))}
	for _, e := range r.Entries {
		ed := entryDoc{Identity: e.Identity, Mode: e.Mode.String(), Policy: e.Policy.String(), Outcome: e.Outcome.String()}
		if e.Err != nil {
			ed.Error = e.Err.Error()
		}
		doc.Entries = append(doc.Entries, ed)
	}
	for _, s := range r.Skips {
		doc.Skips = append(doc.Skips, skipDoc{Schema: s.Schema, Table: s.Table, Mode: s.Mode.String(), Reason: s.Reason})
	}
	return doc
}

// Encode writes the report to w in the given format.
func (r *Report) Encode(w io.Writer, format string) error {
	doc := r.doc()
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("daogen: unknown report format %q", format)
	}
}

// WriteFile writes the report to the given file, in the format matching
// its extension.
func (r *Report) WriteFile(path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FormatOf returns the report format matching the extension of path.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".msgpack", ".mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("daogen: no report format for %q", path)
	}
}
