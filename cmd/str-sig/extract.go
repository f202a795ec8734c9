package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/str-sig/internal/duckdb"
	"github.com/inodb/str-sig/internal/strcall"
)

func newExtractCmd() *cobra.Command {
	var (
		vcfDir  string
		out     string
		dbPath  string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract STR mutation records from paired tumor/normal VCFs",
		Long: `Scan every .vcf and .vcf.gz file in a directory, extract the repeat
copy numbers of tumor and normal alleles at each PASS STR locus, and
write the combined mutation records table as TSV.

Within each file the first sample column is treated as the matched
normal and the second as the tumor. Files that fail to parse are
skipped with a warning; the scan continues.`,
		Example: `  str-sig extract --vcf-dir vcfs/ --out records.tsv
  str-sig extract --vcf-dir vcfs/ --out records.tsv --db records.duckdb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(vcfDir, out, dbPath, workers)
		},
	}

	cmd.Flags().StringVar(&vcfDir, "vcf-dir", "", "directory containing VCF files")
	cmd.Flags().StringVar(&out, "out", "", "output mutation records TSV")
	cmd.Flags().StringVar(&dbPath, "db", "", "also append records to this DuckDB store")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel file scanners (0 = number of CPUs)")
	cmd.MarkFlagRequired("vcf-dir")
	cmd.MarkFlagRequired("out")

	return cmd
}

func runExtract(vcfDir, out, dbPath string, workers int) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	scanner := strcall.NewScanner()
	scanner.SetLogger(logger)

	table, results, err := scanner.ScanDir(vcfDir, workers)
	if err != nil {
		return err
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	logger.Info("extraction complete",
		zap.Int("files", len(results)),
		zap.Int("failed_files", failed),
		zap.Int("records", len(table.Records)))

	if len(table.Records) == 0 {
		logger.Warn("no valid STR mutations found in the VCF files")
	}

	if err := table.WriteFile(out); err != nil {
		return err
	}
	logger.Info("wrote mutation records", zap.String("path", out))

	if dbPath == "" {
		return nil
	}

	store, err := duckdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, r := range results {
		if r.Err != nil {
			continue
		}

		fp, err := duckdb.StatFile(r.Path)
		if err != nil {
			logger.Warn("stat source file", zap.String("path", r.Path), zap.Error(err))
			continue
		}

		// Skip sources already stored with an unchanged fingerprint
		prev, known, err := store.LookupScan(r.Path)
		if err != nil {
			return err
		}
		if known && prev.Matches(fp) {
			logger.Debug("source unchanged, keeping stored records",
				zap.String("path", r.Path))
			continue
		}

		if err := store.WriteRecords(r.Path, r.Records); err != nil {
			return fmt.Errorf("store records for %s: %w", r.Path, err)
		}
		if err := store.RecordScan(fp); err != nil {
			return err
		}
	}

	logger.Info("wrote mutation record store", zap.String("path", dbPath))
	return nil
}
