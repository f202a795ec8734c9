package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/str-sig/internal/duckdb"
	"github.com/inodb/str-sig/internal/matrix"
	"github.com/inodb/str-sig/internal/strcall"
)

func newMatrixCmd() *cobra.Command {
	var (
		recordsPath string
		dbPath      string
		out         string
		ru          string
		refLength   bool
		change      bool
	)

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Build a sample x mutation-category count matrix",
		Long: `Aggregate extracted mutation records into a count matrix of samples by
mutation-category labels. Three independent switches shape the labels:
the repeat unit representation (--ru none|length|ru), the normal-sample
reference repeat length (--ref-length), and the signed tumor-minus-normal
length change (--change). With --change, only loci where tumor and
normal repeat lengths differ are counted.`,
		Example: `  str-sig matrix --records records.tsv --out counts.tsv
  str-sig matrix --records records.tsv --ru ru --ref-length=false --out counts.tsv
  str-sig matrix --db records.duckdb --out counts.tsv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Config file values back unset flags
			if !cmd.Flags().Changed("ru") && viper.IsSet("ru") {
				ru = viper.GetString("ru")
			}
			if !cmd.Flags().Changed("ref-length") && viper.IsSet("ref-length") {
				refLength = viper.GetBool("ref-length")
			}
			if !cmd.Flags().Changed("change") && viper.IsSet("change") {
				change = viper.GetBool("change")
			}

			return runMatrix(recordsPath, dbPath, out, matrix.Config{
				RU:        matrix.RUMode(ru),
				RefLength: refLength,
				Change:    change,
			})
		},
	}

	cmd.Flags().StringVar(&recordsPath, "records", "", "mutation records TSV (from extract)")
	cmd.Flags().StringVar(&dbPath, "db", "", "mutation record DuckDB store (from extract --db)")
	cmd.Flags().StringVar(&out, "out", "", "output counts matrix TSV")
	cmd.Flags().StringVar(&ru, "ru", string(matrix.RULength), "repeat unit in labels: none, length, or ru")
	cmd.Flags().BoolVar(&refLength, "ref-length", true, "include reference repeat length in labels")
	cmd.Flags().BoolVar(&change, "change", true, "include tumor-normal change in labels and count only somatic events")
	cmd.MarkFlagRequired("out")
	cmd.MarkFlagsOneRequired("records", "db")
	cmd.MarkFlagsMutuallyExclusive("records", "db")

	return cmd
}

func runMatrix(recordsPath, dbPath, out string, cfg matrix.Config) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	var records []strcall.Record
	switch {
	case recordsPath != "":
		table, err := strcall.ReadTable(recordsPath)
		if err != nil {
			return err
		}
		records = table.Records
	case dbPath != "":
		store, err := duckdb.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err = store.ReadRecords()
		if err != nil {
			return err
		}
	}

	logger.Info("loaded mutation records", zap.Int("records", len(records)))

	m, err := matrix.Build(records, cfg)
	if err != nil {
		return err
	}

	if m.Empty() {
		logger.Warn("no mutations to count after filtering; no matrix written")
		return nil
	}

	if err := m.WriteFile(out); err != nil {
		return err
	}

	logger.Info("wrote counts matrix",
		zap.String("path", out),
		zap.Int("samples", len(m.Samples)),
		zap.Int("categories", len(m.Labels)))
	return nil
}
