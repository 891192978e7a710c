package internals

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-test/deep"
)

func TestCollectorListing(t *testing.T) {
	var listing bytes.Buffer
	ec := NewListingCollector(&listing)

	ec.Report(SyntaxError, 3, 7, "unexpected token -> ;")
	ec.Report(TypeError, 5, 0, "if test is not Boolean")
	ec.Add(errors.New("listing closed"))
	ec.Add(nil)

	expected := ">>> Syntax error at line 3: unexpected token -> ;\n" +
		">>> Type error at line 5: if test is not Boolean\n" +
		">>> listing closed\n"
	if listing.String() != expected {
		t.Errorf("expected=%q, got=%q", expected, listing.String())
	}
	if len(ec.Errors) != 3 {
		t.Errorf("expected 3 errors, got=%d", len(ec.Errors))
	}
}

func TestCollectorFlag(t *testing.T) {
	ec := NewErrorCollector()
	if ec.Failed() {
		t.Fatal("a fresh collector must not be failed")
	}

	ec.Report(LexicalError, 1, 2, "unexpected token -> ERROR: $")
	ec.Report(TypeError, 4, 0, "write of non-integer or non-real value")
	ec.Report(TypeError, 6, 0, "repeat test is not Boolean")

	if !ec.Failed() {
		t.Error("expected the error flag to be set")
	}
	if ec.Count(TypeError) != 2 || ec.Count(SyntaxError) != 0 || ec.Count(LexicalError) != 1 {
		t.Errorf("unexpected counts in %v", ec.Errors)
	}

	expected := []*Diagnostic{
		{Kind: LexicalError, Row: 1, Col: 2, Message: "unexpected token -> ERROR: $"},
		{Kind: TypeError, Row: 4, Message: "write of non-integer or non-real value"},
		{Kind: TypeError, Row: 6, Message: "repeat test is not Boolean"},
	}
	if diff := deep.Equal(ec.Diagnostics(), expected); diff != nil {
		t.Error(diff)
	}

	ec.Reset()
	if ec.Failed() {
		t.Error("reset should clear the flag")
	}
}

func TestDiagnosticError(t *testing.T) {
	var err error = &Diagnostic{Kind: SyntaxError, Row: 9, Message: "unexpected end of file"}
	if err.Error() != "Syntax error at line 9: unexpected end of file" {
		t.Errorf("got=%q", err.Error())
	}

	var diag *Diagnostic
	if !errors.As(err, &diag) || diag.Row != 9 {
		t.Error("expected to unwrap a diagnostic")
	}
}
