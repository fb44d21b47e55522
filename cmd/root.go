// Package cmd is the dirtab command line: the interactive table, one-shot
// output in several formats, and the generate, config and version commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dirtab/internal/config"
	"github.com/oakwood-commons/dirtab/internal/formatter"
	"github.com/oakwood-commons/dirtab/pkg/logger"
	"github.com/oakwood-commons/dirtab/pkg/settings"
)

var (
	interactive bool
	dataPath    string
	dbPath      string
	rowCount    int
	seed        uint64
	searchTerm  string
	filterArgs  []string
	sortArgs    []string
	pinLeft     []string
	pinRight    []string
	hideCols    []string
	orderCols   []string
	pageNum     int
	pageSize    int
	whereExpr   string
	output      string
	outPath     string
	allRows     bool
	width       int
	height      int
	noColor     bool
	debug       bool
	watch       bool
	configFile  string
	logFile     string
)

// rootCtx carries the logger and run settings from PersistentPreRunE.
var rootCtx = context.Background()

// logSink is the --log-file handle, closed after the command.
var logSink *os.File

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName,
	Short: "Employee directory table for the terminal",
	Long: `dirtab shows an employee directory as a table with search, column filters,
multi-column sorting, pinned columns, resizing, column reordering, column
visibility and pagination.

Rows come from a data file (--data), a SQLite database (--db), or are
generated. Without -i the current page is printed in the chosen format.`,
	Example: `  dirtab -i
  dirtab --rows 500 --seed 7 --sort salary:desc --page-size 20
  dirtab --data staff.yaml --filter department=Tools --pin-left lastName
  dirtab --data staff.csv --where 'row.salary > 100000 && row.isActive' -o json --all
  dirtab --db staff.db -o xlsx --out staff.xlsx --all
  dirtab --data staff.json -i --watch`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var level int8
		if debug {
			level = -1
		}
		sink, err := logDestination(cmd)
		if err != nil {
			return err
		}
		lgr := logger.GetWithSink(level, sink)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

		run := settings.NewCliParams()
		run.MinLogLevel = level
		run.Interactive = interactiveRoot(cmd)
		run.Watch = watch
		run.NoColor = noColor
		run.LogFile = logFile

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		rootCtx = settings.IntoContext(logger.WithLogger(ctx, lgr), run)
		return nil
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if logSink == nil {
			return nil
		}
		logger.Sync()
		err := logSink.Close()
		logSink = nil
		return err
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRoot(cmd)
	},
}

// logDestination is stderr, except in the interactive table, which owns the
// terminal: there logs go to --log-file or nowhere.
func logDestination(cmd *cobra.Command) (io.Writer, error) {
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logSink = f
		return f, nil
	}
	if interactiveRoot(cmd) {
		return io.Discard, nil
	}
	return os.Stderr, nil
}

// interactiveRoot reports whether cmd is the root command running the table.
// -i is only defined on the root, so subcommands never qualify.
func interactiveRoot(cmd *cobra.Command) bool {
	return interactive && !cmd.HasParent()
}

func runRoot(cmd *cobra.Command) error {
	ctx := rootCtx
	run, _ := settings.FromContext(ctx)

	cfg, err := config.Load(config.ResolvePath(configFile))
	if err != nil {
		return err
	}
	format, err := formatter.ParseFormat(output)
	if err != nil {
		return err
	}
	src, err := newRowSource(cfg, dataPath, dbPath, rowCount, seed)
	if err != nil {
		return err
	}
	if run == nil {
		run = settings.NewCliParams()
		run.Watch = watch
	}
	run.Source = src.Source
	if watch && (!interactive || !run.CanWatch() || src.fromStdin()) {
		return fmt.Errorf("%w: --watch needs -i and a --data file", errBadFlag)
	}

	st, err := buildState(cfg, stateFlags{
		Search:   searchTerm,
		Filters:  filterArgs,
		Sorts:    sortArgs,
		PinLeft:  pinLeft,
		PinRight: pinRight,
		Hide:     hideCols,
		Order:    orderCols,
		Page:     pageNum,
		PageSize: pageSize,
	})
	if err != nil {
		return err
	}
	where, err := compileWhere(whereExpr)
	if err != nil {
		return err
	}
	rows, err := src.load(ctx)
	if err != nil {
		return err
	}

	if interactive {
		return runInteractive(ctx, cfg, st, rows, where, src)
	}
	return writeOutput(ctx, cmd.OutOrStdout(), printRequest{
		Config:  cfg,
		State:   st,
		Rows:    rows,
		Where:   where,
		Format:  format,
		AllRows: allRows,
		Width:   width,
		Out:     outPath,
	})
}

func init() { //nolint:gochecknoinits
	f := rootCmd.Flags()
	f.BoolVarP(&interactive, "interactive", "i", false, "start the interactive table")
	f.StringVar(&dataPath, "data", "", "read employees from a json, ndjson, yaml, toml or csv file ('-' for stdin)")
	f.StringVar(&searchTerm, "search", "", "global search across text and number columns")
	f.StringArrayVar(&filterArgs, "filter", nil, "column filter as column=value (repeatable)")
	f.StringSliceVar(&sortArgs, "sort", nil, "sort as column[:asc|desc], most significant first (repeatable)")
	f.StringSliceVar(&pinLeft, "pin-left", nil, "columns to pin to the left edge")
	f.StringSliceVar(&pinRight, "pin-right", nil, "columns to pin to the right edge")
	f.StringSliceVar(&hideCols, "hide", nil, "columns to hide")
	f.StringSliceVar(&orderCols, "order", nil, "columns to move to the front, in order")
	f.IntVar(&pageNum, "page", 0, "page to show, starting at 1")
	f.IntVar(&pageSize, "page-size", 0, "rows per page (one of the configured page sizes)")
	f.StringVar(&whereExpr, "where", "", "CEL filter over 'row', e.g. row.salary > 90000 && row.isActive")
	f.StringVarP(&output, "output", "o", "table", "output format: table|json|yaml|toml|csv|markdown|html|xlsx")
	f.StringVar(&outPath, "out", "", "write output to this file instead of stdout")
	f.BoolVar(&allRows, "all", false, "write every filtered row instead of the current page")
	f.IntVar(&width, "width", 0, "output width in cells (default: terminal width)")
	f.IntVar(&height, "height", 0, "interactive height in lines (default: terminal height)")
	f.BoolVar(&watch, "watch", false, "reload the --data file when it changes (with -i)")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dbPath, "db", "", "SQLite database to read (or, for generate, write)")
	pf.IntVar(&rowCount, "rows", 0, "number of generated rows (default from config)")
	pf.Uint64Var(&seed, "seed", 0, "seed for generated rows; 0 uses the configured seed")
	pf.BoolVar(&noColor, "no-color", false, "disable color output")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
	pf.StringVar(&logFile, "log-file", "", "append logs to this file")
	pf.StringVar(&configFile, "config-file", "", "path to a YAML config file")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(generateCmd, configCmd, versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
