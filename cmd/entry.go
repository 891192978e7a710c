package cmd

import (
	"fmt"
	"io"
	"os"
	"pminus/config"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	listingPath  string
	logLevel     string
	echoSource   bool
	traceScan    bool
	traceParse   bool
	traceAnalyze bool
)

var rootCmd = &cobra.Command{
	Use:   "pminus",
	Short: "Front end for the P- language",
	Long: `pminus scans, parses and type checks P- programs.

Stages:
  scan     - token stream only
  parse    - syntax tree
  compile  - syntax tree, symbol table and type checking`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $"+config.EnvVar+" or ./pminus.toml)")
	flags.StringVar(&listingPath, "listing", "", "write the listing to this file instead of stdout")
	flags.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	flags.BoolVar(&echoSource, "echo-source", false, "echo every source line with its number")
	flags.BoolVar(&traceScan, "trace-scan", false, "print every token")
	flags.BoolVar(&traceParse, "trace-parse", false, "print the syntax tree")
	flags.BoolVar(&traceAnalyze, "trace-analyze", false, "print the symbol table and type checking steps")
}

// loadConfig merges the config file with the flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("listing") {
		cfg.Listing = listingPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("echo-source") {
		cfg.Trace.EchoSource = echoSource
	}
	if flags.Changed("trace-scan") {
		cfg.Trace.TraceScan = traceScan
	}
	if flags.Changed("trace-parse") {
		cfg.Trace.TraceParse = traceParse
	}
	if flags.Changed("trace-analyze") {
		cfg.Trace.TraceAnalyze = traceAnalyze
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "pminus",
		Level:           level,
		ReportTimestamp: cfg.Log.Timestamps,
	}), nil
}

// openListing returns the listing writer and the function closing it.
func openListing(cfg *config.Config, stdout io.Writer) (io.Writer, func() error, error) {
	if cfg.Listing == "" {
		return stdout, func() error { return nil }, nil
	}
	file, err := os.Create(cfg.Listing)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listing: %w", err)
	}
	return file, file.Close, nil
}

// session is everything a subcommand needs before running a stage.
type session struct {
	cfg     *config.Config
	logger  *log.Logger
	listing io.Writer
	close   func() error
}

// closeListing closes the listing file and reports its error through err
// unless the command already failed.
func (s *session) closeListing(err *error) {
	if cerr := s.close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close listing: %w", cerr)
	}
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	listing, closeListing, err := openListing(cfg, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded", "trace", cfg.Trace, "listing", cfg.Listing)
	return &session{cfg: cfg, logger: logger, listing: listing, close: closeListing}, nil
}
