package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dirtab/internal/config"
	"github.com/oakwood-commons/dirtab/internal/employee"
	"github.com/oakwood-commons/dirtab/internal/store"
	"github.com/oakwood-commons/dirtab/pkg/loader"
	"github.com/oakwood-commons/dirtab/pkg/logger"
)

var (
	generateFormat  string
	generateOut     string
	generateReplace bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write synthetic employee records",
	Long: `Generate synthetic employees and write them to stdout, a file (--out, format
from the extension) or a SQLite database (--db). The output can be read back
with --data or --db.`,
	Example: `  dirtab generate --rows 1000 --seed 42 --out staff.json
  dirtab generate --rows 50 --format csv > staff.csv
  dirtab generate --rows 200 --db staff.db --replace`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := rootCtx
		log := logger.FromContext(ctx)

		cfg, err := config.Load(config.ResolvePath(configFile))
		if err != nil {
			return err
		}
		src, err := newRowSource(cfg, "", "", rowCount, seed)
		if err != nil {
			return err
		}
		rows := employee.Generate(employee.GenerateOptions{Count: src.count, Seed: src.seed})

		if dbPath != "" {
			db, err := store.Open(ctx, dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			save := db.Save
			if generateReplace {
				save = db.Replace
			}
			if err := save(ctx, rows); err != nil {
				return err
			}
			log.Info("rows stored", logger.KeyPath, dbPath, logger.KeyRows, len(rows))
			return nil
		}

		if generateOut != "" {
			if err := loader.WriteFile(generateOut, rows); err != nil {
				return err
			}
			log.V(1).Info("rows written", logger.KeyPath, generateOut, logger.KeyRows, len(rows))
			return nil
		}

		format, err := loader.ParseFormat(generateFormat)
		if err != nil {
			return err
		}
		return loader.Write(cmd.OutOrStdout(), rows, format)
	},
}

func init() { //nolint:gochecknoinits
	generateCmd.Flags().StringVar(&generateFormat, "format", "json", "stdout format: json|ndjson|yaml|toml|csv")
	generateCmd.Flags().StringVar(&generateOut, "out", "", "write to this file; the extension picks the format")
	generateCmd.Flags().BoolVar(&generateReplace, "replace", false, "with --db, delete existing rows first")
}
