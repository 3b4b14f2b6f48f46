package diagnostics

import (
	"fmt"
	"io"
)

// Report is one coded error at a source line.
type Report struct {
	Code string
	Line int
}

// Format renders the report, appending the catalog message when one is
// known.
func (r Report) Format(cat *Catalog) string {
	if msg, ok := cat.Lookup(r.Code); ok {
		return fmt.Sprintf("Error [%s] at line %d: %s", r.Code, r.Line, msg)
	}
	return fmt.Sprintf("Error [%s] at line %d", r.Code, r.Line)
}

// Reporter writes reports to a stream, one per line. A nil catalog is
// valid and produces bare reports.
type Reporter struct {
	out     io.Writer
	catalog *Catalog
	count   int
}

// NewReporter creates a reporter writing to out.
func NewReporter(out io.Writer, cat *Catalog) *Reporter {
	return &Reporter{out: out, catalog: cat}
}

// Report prints code at line.
func (r *Reporter) Report(code string, line int) {
	r.count++
	if r.out == nil {
		return
	}
	fmt.Fprintln(r.out, Report{Code: code, Line: line}.Format(r.catalog))
}

// Message returns the formatted text for code without printing it.
func (r *Reporter) Message(code string, line int) string {
	return Report{Code: code, Line: line}.Format(r.catalog)
}

// Count reports how many errors have been printed.
func (r *Reporter) Count() int {
	return r.count
}

// Catalog returns the catalog used for messages, which may be nil.
func (r *Reporter) Catalog() *Catalog {
	return r.catalog
}
