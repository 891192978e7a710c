package compiler

import (
	"fmt"
	"io"
	"os"
	"pminus/ast"
	"pminus/config"
	"pminus/internals"
	"pminus/lexer"
	"pminus/parser"
	"pminus/semantics"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Compilation owns every piece of mutable state of one front-end run. Two
// compilations share nothing and may run on separate goroutines.
type Compilation struct {
	ID       uuid.UUID
	FilePath string
	Options  config.TraceConfig

	Listing io.Writer
	Logger  *log.Logger

	Errors  *internals.ErrorCollector
	Symbols *semantics.SymbolTable
	Tree    *ast.TreeNode

	out    *listingWriter
	styles internals.Styles
}

// listingWriter keeps the first write error so a broken listing surfaces as a
// host failure instead of being lost.
type listingWriter struct {
	w   io.Writer
	err error
}

func (lw *listingWriter) Write(p []byte) (int, error) {
	if lw.err != nil {
		return len(p), nil
	}
	if _, err := lw.w.Write(p); err != nil {
		lw.err = err
	}
	return len(p), nil
}

func NewCompilation(filePath string, opts config.TraceConfig, listing io.Writer, logger *log.Logger) *Compilation {
	if listing == nil {
		listing = io.Discard
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	id := uuid.New()
	out := &listingWriter{w: listing}
	styles := internals.NewStyles(listing)
	collector := internals.NewListingCollector(out)
	collector.SetStyles(styles)

	return &Compilation{
		ID:       id,
		FilePath: filePath,
		Options:  opts,
		Listing:  out,
		Logger:   logger.With("compilation", id.String(), "file", filePath),
		Errors:   collector,
		Symbols:  semantics.NewSymbolTable(),
		out:      out,
		styles:   styles,
	}
}

// Failed is the cumulative error flag of the compilation.
func (c *Compilation) Failed() bool {
	return c.Errors.Failed()
}

func (c *Compilation) newLexer(src io.Reader) *lexer.Lexer {
	lex := lexer.NewReaderLexer(c.FilePath, src)
	lex.Listing = c.Listing
	lex.EchoSource = c.Options.EchoSource
	lex.TraceScan = c.Options.TraceScan
	return lex
}

func (c *Compilation) hostError(lex *lexer.Lexer) error {
	if err := lex.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", c.FilePath, err)
	}
	if c.out.err != nil {
		return fmt.Errorf("failed to write listing: %w", c.out.err)
	}
	return nil
}

// Scan runs the scanner alone up to end of file.
func (c *Compilation) Scan(src io.Reader) ([]lexer.Token, error) {
	c.Logger.Debug("scanning")
	lex := c.newLexer(src)
	tokens := lex.Tokenize()

	for _, tok := range tokens {
		if tok.Kind == lexer.TokenError {
			c.Errors.Report(internals.LexicalError, tok.Row, tok.Col, "unrecognised character sequence -> "+tok.Text)
		}
	}

	c.Logger.Debug("scan finished", "tokens", len(tokens), "errors", len(c.Errors.Errors))
	return tokens, c.hostError(lex)
}

// Parse builds the syntax tree and dumps it when TraceParse is set.
func (c *Compilation) Parse(src io.Reader) (*ast.TreeNode, error) {
	c.Logger.Debug("parsing")
	lex := c.newLexer(src)
	p := parser.NewParser(lex, c.Errors)
	c.Tree = p.Parse()

	if c.Options.TraceParse {
		fmt.Fprintln(c.Listing, "\nSyntax tree:")
		ast.Fprint(c.Listing, c.Tree)
	}

	c.Logger.Debug("parse finished", "statements", c.Tree.Len(), "errors", len(c.Errors.Errors))
	return c.Tree, c.hostError(lex)
}

// Analyze builds the symbol table and type checks the current tree.
func (c *Compilation) Analyze() error {
	trace := c.Options.TraceAnalyze

	if trace {
		fmt.Fprintln(c.Listing, "\nBuilding Symbol Table...")
	}
	semantics.NewAnalyzer(c.Symbols).BuildSymbolTable(c.Tree)
	if trace {
		fmt.Fprint(c.Listing, "\nSymbol table:\n\n")
		c.Symbols.FprintStyled(c.Listing, c.styles)
	}
	c.Logger.Debug("symbol table built", "symbols", c.Symbols.Len())

	if trace {
		fmt.Fprintln(c.Listing, "\nChecking Types...")
	}
	semantics.NewTypeChecker(c.Errors).Check(c.Tree)
	if trace {
		fmt.Fprintln(c.Listing, "\nType Checking Finished")
	}
	c.Logger.Debug("type check finished", "errors", c.Errors.Count(internals.TypeError))

	if c.out.err != nil {
		return fmt.Errorf("failed to write listing: %w", c.out.err)
	}
	return nil
}

// Run is the whole front end: parse, then analyze only when parsing reported
// nothing. The returned error is a host failure, source problems are in
// Errors.
func (c *Compilation) Run(src io.Reader) (*ast.TreeNode, error) {
	c.Logger.Info("compiling")

	if _, err := c.Parse(src); err != nil {
		return c.Tree, err
	}

	if c.Failed() {
		c.Logger.Warn("analysis skipped", "errors", len(c.Errors.Errors))
		return c.Tree, nil
	}

	if err := c.Analyze(); err != nil {
		return c.Tree, err
	}

	if c.Failed() {
		c.Logger.Warn("compilation failed", "errors", len(c.Errors.Errors))
	} else {
		c.Logger.Info("compilation finished")
	}
	return c.Tree, nil
}

// CompileFile opens path and runs the whole front end on it.
func CompileFile(path string, opts config.TraceConfig, listing io.Writer, logger *log.Logger) (*Compilation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer file.Close()

	c := NewCompilation(path, opts, listing, logger)
	fmt.Fprintf(c.Listing, "\nP- COMPILATION: %s\n", path)
	if _, err := c.Run(file); err != nil {
		return c, err
	}
	return c, nil
}
