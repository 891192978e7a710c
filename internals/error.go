package internals

// This file handles an error collector obj

import (
	"errors"
	"fmt"
	"io"
)

type DiagnosticKind int

const (
	LexicalError DiagnosticKind = iota
	SyntaxError
	TypeError
)

func (k DiagnosticKind) String() string {
	switch k {
	case LexicalError:
		return "Lexical error"
	case SyntaxError:
		return "Syntax error"
	default:
		return "Type error"
	}
}

// Diagnostic is a source-level problem. It never aborts a stage.
type Diagnostic struct {
	Kind    DiagnosticKind
	Row     int
	Col     int
	Message string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s at line %d: %s", d.Kind, d.Row, d.Message)
}

// ErrorCollector gathers every diagnostic of one compilation. Once anything
// is added Failed stays true until Reset.
type ErrorCollector struct {
	Errors []error

	listing io.Writer
	styles  Styles
}

func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		Errors: make([]error, 0),
	}
}

// NewListingCollector echoes each diagnostic to w as soon as it is added.
func NewListingCollector(w io.Writer) *ErrorCollector {
	ec := NewErrorCollector()
	ec.listing = w
	ec.styles = NewStyles(w)
	return ec
}

// SetStyles overrides the styles picked from the listing writer, for when the
// listing is wrapped and the terminal underneath supports color.
func (ec *ErrorCollector) SetStyles(styles Styles) {
	ec.styles = styles
}

func (ec *ErrorCollector) Add(err error) {
	if err == nil {
		return
	}
	ec.Errors = append(ec.Errors, err)
	if ec.listing == nil {
		return
	}

	var diag *Diagnostic
	if errors.As(err, &diag) {
		label := ec.styles.Error.Render(">>> " + diag.Kind.String())
		fmt.Fprintf(ec.listing, "%s at line %d: %s\n", label, diag.Row, diag.Message)
		return
	}
	fmt.Fprintf(ec.listing, "%s %v\n", ec.styles.Error.Render(">>>"), err)
}

// Report builds a diagnostic and adds it.
func (ec *ErrorCollector) Report(kind DiagnosticKind, row, col int, msg string) {
	ec.Add(&Diagnostic{Kind: kind, Row: row, Col: col, Message: msg})
}

// Failed is the cumulative error flag the driver polls between stages.
func (ec *ErrorCollector) Failed() bool {
	return len(ec.Errors) > 0
}

func (ec *ErrorCollector) Diagnostics() []*Diagnostic {
	diags := make([]*Diagnostic, 0, len(ec.Errors))
	for _, err := range ec.Errors {
		var diag *Diagnostic
		if errors.As(err, &diag) {
			diags = append(diags, diag)
		}
	}
	return diags
}

// Count returns how many diagnostics of kind were collected.
func (ec *ErrorCollector) Count(kind DiagnosticKind) int {
	n := 0
	for _, diag := range ec.Diagnostics() {
		if diag.Kind == kind {
			n++
		}
	}
	return n
}

func (ec *ErrorCollector) Reset() {
	ec.Errors = ec.Errors[:0]
}
