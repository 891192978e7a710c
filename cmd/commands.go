package cmd

import (
	"fmt"
	"os"
	"pminus/compiler"
	"pminus/repl"

	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:     "compile <file>...",
	Aliases: []string{"run"},
	Short:   "Parse and type check programs",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.closeListing(&err)

		failed := 0
		for _, path := range args {
			c, err := compiler.CompileFile(path, s.cfg.Trace, s.listing, s.logger)
			if err != nil {
				return err
			}
			if c.Failed() {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d programs failed to compile", failed, len(args))
		}
		return nil
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Print the token stream of a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.closeListing(&err)

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer file.Close()

		opts := s.cfg.Trace
		opts.TraceScan = true
		c := compiler.NewCompilation(args[0], opts, s.listing, s.logger)
		if _, err := c.Scan(file); err != nil {
			return err
		}
		if c.Failed() {
			return fmt.Errorf("%s: %d lexical errors", args[0], len(c.Errors.Errors))
		}
		return nil
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the syntax tree of a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.closeListing(&err)

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer file.Close()

		opts := s.cfg.Trace
		opts.TraceParse = true
		c := compiler.NewCompilation(args[0], opts, s.listing, s.logger)
		if _, err := c.Parse(file); err != nil {
			return err
		}
		if c.Failed() {
			return fmt.Errorf("%s: %d errors", args[0], len(c.Errors.Errors))
		}
		return nil
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Compile one line at a time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.closeListing(&err)

		return repl.Start(cmd.InOrStdin(), s.listing, s.cfg.Trace, s.logger)
	},
}

func init() {
	rootCmd.AddCommand(compileCmd, scanCmd, parseCmd, replCmd)
}
