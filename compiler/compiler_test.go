package compiler

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"pminus/ast"
	"pminus/config"
	"pminus/internals"
	"pminus/semantics"
	"strings"
	"sync"
	"testing"

	"github.com/go-test/deep"
)

func compile(t *testing.T, input string, opts config.TraceConfig) (*Compilation, *bytes.Buffer) {
	t.Helper()
	var listing bytes.Buffer
	c := NewCompilation("", opts, &listing, nil)
	if _, err := c.Run(strings.NewReader(input)); err != nil {
		t.Fatalf("unexpected host error %v", err)
	}
	return c, &listing
}

func TestGoldenListings(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.pm"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no programs under testdata")
	}

	opts := config.TraceConfig{TraceParse: true, TraceAnalyze: true}
	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			t.Fatal(err)
		}
		golden := strings.TrimSuffix(file, filepath.Ext(file)) + ".golden"
		expected, err := os.ReadFile(golden)
		if err != nil {
			t.Fatal(err)
		}

		_, listing := compile(t, string(source), opts)
		if diff := deep.Equal(strings.Split(listing.String(), "\n"), strings.Split(string(expected), "\n")); diff != nil {
			t.Errorf("%s: listing differs from %s: %v", file, golden, diff)
		}
	}
}

func TestDeclareAssignWrite(t *testing.T) {
	c, _ := compile(t, "inteiro x; x = 3; mostrar(x)", config.TraceConfig{})

	if c.Failed() {
		t.Fatalf("unexpected errors %v", c.Errors.Errors)
	}
	if c.Tree.Len() != 3 {
		t.Fatalf("expected 3 statements, got=%d", c.Tree.Len())
	}

	kinds := []ast.StmtKind{}
	for node := c.Tree; node != nil; node = node.Sibling {
		kinds = append(kinds, node.Stmt)
	}
	if diff := deep.Equal(kinds, []ast.StmtKind{ast.DeclareStmt, ast.AssignStmt, ast.WriteStmt}); diff != nil {
		t.Error(diff)
	}

	if c.Symbols.Len() != 1 {
		t.Fatalf("expected one symbol, got=%d", c.Symbols.Len())
	}
	entry, ok := c.Symbols.Entry("x")
	if !ok {
		t.Fatal("x is not in the symbol table")
	}
	if entry.Location != 0 || entry.Type != ast.Integer {
		t.Errorf("unexpected entry %+v", entry)
	}
	if diff := deep.Equal(entry.Lines, []int{1, 1, 1}); diff != nil {
		t.Error(diff)
	}
}

func TestIfWithArithmeticCondition(t *testing.T) {
	c, _ := compile(t, "se 1 entao mostrar(1) senao mostrar(2)", config.TraceConfig{})

	if c.Failed() {
		t.Fatalf("unexpected errors %v", c.Errors.Errors)
	}
	node := c.Tree
	if !node.IsStmt(ast.IfStmt) {
		t.Fatalf("expected an if statement, got=%s", node.Stmt)
	}
	for i, child := range node.Child {
		if child == nil {
			t.Fatalf("child %d is empty", i)
		}
	}
	if !node.Child[0].IsExp(ast.ConstExp) || node.Child[0].IntVal != 1 {
		t.Errorf("unexpected condition %s", node.Child[0])
	}
	if got := node.Child[1].String(); got != "mostrar(1)" {
		t.Errorf("expected=%q, got=%q", "mostrar(1)", got)
	}
	if got := node.Child[2].String(); got != "mostrar(2)" {
		t.Errorf("expected=%q, got=%q", "mostrar(2)", got)
	}
}

func TestTypePropagation(t *testing.T) {
	tests := []struct {
		input    string
		expected ast.ExpType
	}{
		{"x = 1 + 2.0", ast.Real},
		{"x = 1 + 2", ast.Integer},
		{"x = 2.5 * 2.5", ast.Real},
		{"x = y / 2", ast.Integer},
	}

	for _, tt := range tests {
		c, _ := compile(t, tt.input, config.TraceConfig{})
		if c.Failed() {
			t.Fatalf("%q: unexpected errors %v", tt.input, c.Errors.Errors)
		}
		assign := c.Tree
		if assign.Child[0].Type != tt.expected {
			t.Errorf("%q: expression type expected=%s, got=%s", tt.input, tt.expected, assign.Child[0].Type)
		}
		if assign.Type != tt.expected {
			t.Errorf("%q: assignment type expected=%s, got=%s", tt.input, tt.expected, assign.Type)
		}
	}
}

func TestSyntaxErrorSkipsAnalysis(t *testing.T) {
	c, listing := compile(t, "x = ;", config.TraceConfig{TraceAnalyze: true})

	if !c.Failed() {
		t.Fatal("expected the error flag to be set")
	}
	if c.Errors.Count(internals.SyntaxError) != 1 {
		t.Fatalf("expected one syntax error, got %v", c.Errors.Errors)
	}
	diag := c.Errors.Diagnostics()[0]
	if diag.Row != 1 {
		t.Errorf("expected the error on line 1, got=%d", diag.Row)
	}
	if c.Tree == nil || !c.Tree.IsStmt(ast.AssignStmt) {
		t.Errorf("expected a partial assignment, got %v", c.Tree)
	}
	if c.Symbols.Len() != 0 {
		t.Errorf("symbol table should stay empty, got %d entries", c.Symbols.Len())
	}
	if strings.Contains(listing.String(), "Building Symbol Table") {
		t.Error("analysis ran after a syntax error")
	}
}

func TestLexicalErrorIsReported(t *testing.T) {
	tests := []struct {
		input  string
		lexeme string
	}{
		{"x = 1 : 2", "ERROR: :"},
		{"x = 6 /* metade */ @ 2", "ERROR: @"},
		{"x = 6 /**/ & 2", "ERROR: &"},
	}

	for _, tt := range tests {
		c, listing := compile(t, tt.input, config.TraceConfig{})

		if !c.Failed() || c.Errors.Count(internals.LexicalError) != 1 {
			t.Errorf("%q: expected one lexical error, got %v", tt.input, c.Errors.Errors)
			continue
		}
		if !strings.Contains(listing.String(), tt.lexeme) {
			t.Errorf("%q: listing does not name the bad lexeme: %q", tt.input, listing.String())
		}
	}
}

func TestTraceFlags(t *testing.T) {
	input := "ler(a)\nmostrar(a)\n"

	_, listing := compile(t, input, config.TraceConfig{})
	if listing.Len() != 0 {
		t.Errorf("expected an empty listing, got %q", listing.String())
	}

	_, listing = compile(t, input, config.TraceConfig{EchoSource: true, TraceScan: true})
	expected := []string{
		"   1: ler(a)",
		"\t1: ler",
		"\t1: (",
		"\t1: a",
		"\t1: )",
		"   2: mostrar(a)",
		"\t2: mostrar",
		"\t2: (",
		"\t2: a",
		"\t2: )",
		"\t2: EOF",
		"",
	}
	if diff := deep.Equal(strings.Split(listing.String(), "\n"), expected); diff != nil {
		t.Error(diff)
	}
}

func TestScanStage(t *testing.T) {
	c := NewCompilation("", config.TraceConfig{}, nil, nil)
	tokens, err := c.Scan(strings.NewReader("x = 1 & 2"))
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 6 {
		t.Errorf("expected 6 tokens, got=%d", len(tokens))
	}
	if c.Errors.Count(internals.LexicalError) != 1 {
		t.Errorf("expected one lexical error, got %v", c.Errors.Errors)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("listing closed")
}

func TestHostErrors(t *testing.T) {
	c := NewCompilation("broken.pm", config.TraceConfig{}, nil, nil)
	if _, err := c.Run(failingReader{}); err == nil {
		t.Error("expected a read error")
	}

	c = NewCompilation("", config.TraceConfig{TraceParse: true}, failingWriter{}, nil)
	if _, err := c.Run(strings.NewReader("mostrar(1)")); err == nil {
		t.Error("expected a listing error")
	}

	if _, err := CompileFile(filepath.Join(t.TempDir(), "missing.pm"), config.TraceConfig{}, nil, nil); err == nil {
		t.Error("expected an open error")
	}
}

func TestCompileFile(t *testing.T) {
	var listing bytes.Buffer
	path := filepath.Join("testdata", "sample.pm")
	c, err := CompileFile(path, config.TraceConfig{}, &listing, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Failed() {
		t.Fatalf("unexpected errors %v", c.Errors.Errors)
	}
	if !strings.Contains(listing.String(), "P- COMPILATION: "+path) {
		t.Errorf("missing header in %q", listing.String())
	}
	if c.Symbols.Lookup("media") != 2 {
		t.Errorf("expected media in slot 2, got=%d", c.Symbols.Lookup("media"))
	}
}

func TestConcurrentCompilations(t *testing.T) {
	inputs := []string{
		"inteiro a; a = 1; mostrar(a)",
		"real b; b = 2.5; mostrar(b * 2)",
		"ler(c); enquanto c { c = c - 1 }",
		"x = ;",
	}

	results := make([]*Compilation, len(inputs)*8)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := NewCompilation("", config.TraceConfig{TraceParse: true, TraceAnalyze: true}, &bytes.Buffer{}, nil)
			c.Run(strings.NewReader(inputs[i%len(inputs)]))
			results[i] = c
		}(i)
	}
	wg.Wait()

	for i, c := range results {
		expected, _ := compile(t, inputs[i%len(inputs)], config.TraceConfig{})
		if c.Failed() != expected.Failed() {
			t.Errorf("%q: error flag differs", inputs[i%len(inputs)])
		}
		if diff := deep.Equal(symbolNames(c.Symbols), symbolNames(expected.Symbols)); diff != nil {
			t.Errorf("%q: %v", inputs[i%len(inputs)], diff)
		}
		for j := range results[:i] {
			if results[j].ID == c.ID {
				t.Fatalf("compilations %d and %d share an ID", i, j)
			}
		}
	}
}

func symbolNames(st *semantics.SymbolTable) []string {
	names := []string{}
	for _, entry := range st.Entries() {
		names = append(names, entry.Name)
	}
	return names
}
