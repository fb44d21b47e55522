package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oakwood-commons/dirtab/internal/config"
	"github.com/oakwood-commons/dirtab/internal/employee"
	"github.com/oakwood-commons/dirtab/internal/store"
	"github.com/oakwood-commons/dirtab/pkg/loader"
	"github.com/oakwood-commons/dirtab/pkg/logger"
	"github.com/oakwood-commons/dirtab/pkg/settings"
)

// stdinPath as the --data value reads rows from standard input.
const stdinPath = "-"

var errConflictingSources = errors.New("--data and --db cannot be used together")

var stdinReader io.Reader = os.Stdin

// rowSource loads the employees for a run.
type rowSource struct {
	settings.Source
	count int
	seed  uint64
	stdin io.Reader
}

// newRowSource picks the source from the flags. Generated rows fall back to
// the configured count and seed.
func newRowSource(cfg config.Config, data, db string, count int, seed uint64) (rowSource, error) {
	src := rowSource{
		Source: settings.Source{Kind: settings.SourceGenerated},
		count:  cfg.Data.Rows,
		seed:   cfg.Data.Seed,
		stdin:  stdinReader,
	}
	if count > 0 {
		src.count = count
	}
	if seed > 0 {
		src.seed = seed
	}
	switch {
	case data != "" && db != "":
		return src, errConflictingSources
	case data != "":
		src.Source = settings.Source{Kind: settings.SourceFile, Path: data}
	case db != "":
		src.Source = settings.Source{Kind: settings.SourceDB, Path: db}
	}
	return src, nil
}

func (s rowSource) fromStdin() bool {
	return s.Kind == settings.SourceFile && s.Path == stdinPath
}

// reloadable reports whether load can return different rows later.
func (s rowSource) reloadable() bool {
	return s.Kind == settings.SourceDB || (s.Kind == settings.SourceFile && !s.fromStdin())
}

func (s rowSource) load(ctx context.Context) ([]employee.Employee, error) {
	start := time.Now()
	var (
		rows []employee.Employee
		err  error
	)
	switch s.Kind {
	case settings.SourceFile:
		if s.fromStdin() {
			rows, err = s.loadStdin()
		} else {
			rows, err = loader.LoadFile(s.Path)
		}
	case settings.SourceDB:
		rows, err = loadDB(ctx, s.Path)
	default:
		rows = employee.Generate(employee.GenerateOptions{Count: s.count, Seed: s.seed})
	}
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).V(1).Info("rows loaded",
		logger.KeySource, string(s.Kind),
		logger.KeyPath, s.Path,
		logger.KeyRows, len(rows),
		logger.KeyElapsed, time.Since(start).String())
	return rows, nil
}

func (s rowSource) loadStdin() ([]employee.Employee, error) {
	data, err := io.ReadAll(s.stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	rows, err := loader.Load(data, loader.FormatAuto)
	if err != nil {
		return nil, fmt.Errorf("load stdin: %w", err)
	}
	return rows, nil
}

func loadDB(ctx context.Context, path string) ([]employee.Employee, error) {
	db, err := store.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.Load(ctx)
}
