package repl

import (
	"bufio"
	"fmt"
	"io"
	"pminus/ast"
	"pminus/compiler"
	"pminus/config"
	"strings"

	"github.com/charmbracelet/log"
)

const PROMPT = `>>> `

// Start compiles every input line as a program of its own and prints its
// tree and symbol table, or the diagnostics when it fails.
func Start(in io.Reader, out io.Writer, opts config.TraceConfig, logger *log.Logger) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		c := compiler.NewCompilation("<repl>", opts, out, logger)
		tree, err := c.Run(strings.NewReader(line))
		if err != nil {
			return err
		}
		if c.Failed() {
			continue
		}

		if !opts.TraceParse {
			ast.Fprint(out, tree)
		}
		if !opts.TraceAnalyze && c.Symbols.Len() > 0 {
			c.Symbols.Fprint(out)
		}
	}
}
