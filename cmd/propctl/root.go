package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joshuapare/propkit/internal/logging"
	"github.com/joshuapare/propkit/printer"
	"github.com/joshuapare/propkit/props"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	noColor    bool
	withLabels bool
	useFiles   bool
	assumeYes  bool
	rootDir    string
	sdkLevel   int
	labelFiles []string

	logType     int
	logLevel    string
	logFile     string
	logCompress bool
)

// Overridable in tests.
var (
	stdin        io.Reader = os.Stdin
	isPrivileged func() bool
)

var rootCmd = &cobra.Command{
	Use:   "propctl",
	Short: "Inspect and edit Android system property areas",
	Long: `propctl reads and writes the shared-memory property areas that back
Android system properties. It lists properties with wildcard filters, reads and
sets single values and change counters, and reports which security label (and
so which region file) owns a name.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		BoolVarP(&withLabels, "labels", "s", false, "Print the security label of each property")
	rootCmd.PersistentFlags().
		BoolVarP(&useFiles, "files", "f", false, "Read label definition files instead of the context catalog")
	rootCmd.PersistentFlags().
		BoolVarP(&assumeYes, "yes", "y", false, "Create missing properties without asking")
	rootCmd.PersistentFlags().
		StringVar(&rootDir, "root", props.DefaultRoot, "Region directory (single region file below SDK 24)")
	rootCmd.PersistentFlags().
		IntVar(&sdkLevel, "sdk", 0, "Platform SDK level (0 = current layout)")
	rootCmd.PersistentFlags().
		StringSliceVar(&labelFiles, "contexts", nil, "Label definition files (default: platform files for --sdk)")

	rootCmd.PersistentFlags().
		IntVarP(&logType, "log-type", "l", int(logging.TypeConsole), "Log sink: 1 console, 2 file, 3 both")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "Log level")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", logging.DefaultFile, "Log file for --log-type 2 or 3")
	rootCmd.PersistentFlags().BoolVar(&logCompress, "log-compress", false, "Compress rotated log files")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the diagnostics logger from the global flags.
func newLogger() (*zap.Logger, error) {
	opts := logging.DefaultOptions()
	opts.Type = logging.Type(logType)
	opts.Level = logLevel
	opts.FileLogName = logFile
	opts.Compress = logCompress
	if verbose && logLevel == logging.DefaultLevel {
		opts.Level = "debug"
	}
	return logging.New(opts)
}

// openStore builds a props.Store from the global flags.
func openStore() (*props.Store, error) {
	log, err := newLogger()
	if err != nil {
		return nil, err
	}
	cfg := props.Config{
		Root:         rootDir,
		SDK:          sdkLevel,
		UseFiles:     useFiles,
		LabelFiles:   labelFiles,
		WantLabels:   withLabels,
		IsPrivileged: isPrivileged,
		Logger:       log,
	}
	if !assumeYes {
		cfg.Confirm = confirmCreate
	}
	printVerbose("Property root: %s\n", rootDir)
	return props.New(cfg)
}

// confirmCreate asks on stdin before a missing property is created. Anything
// but an answer starting with n/N counts as yes.
func confirmCreate(name string) bool {
	fmt.Fprintf(os.Stderr, "prop [%s] doesn't exist, create it? y*/n\n", name)
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		return true
	}
	line = strings.TrimSpace(line)
	return !strings.HasPrefix(line, "n") && !strings.HasPrefix(line, "N")
}

// newPrinter returns a printer writing to stdout per the global flags.
func newPrinter() *printer.Printer {
	opts := printer.DefaultOptions()
	opts.Verbose = verbose
	opts.Color = !noColor && !color.NoColor
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	return printer.New(os.Stdout, opts)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet && !jsonOut {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
