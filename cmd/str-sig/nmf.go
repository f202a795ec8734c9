package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/str-sig/internal/matrix"
	"github.com/inodb/str-sig/internal/nmf"
)

func newNMFCmd() *cobra.Command {
	var (
		matrixPath string
		outdir     string
		components int
		maxIter    int
		seed       int64
		plotPNG    bool
		preview    bool
	)

	cmd := &cobra.Command{
		Use:   "nmf",
		Short: "Decompose a counts matrix into mutational signatures",
		Long: `Run non-negative matrix factorization on a counts matrix, writing
signatures.tsv (components x categories), exposures.tsv (samples x
components) and nmf_metrics.txt into the output directory.`,
		Example: `  str-sig nmf --matrix counts.tsv --outdir results/ --components 3
  str-sig nmf --matrix counts.tsv --outdir results/ --plot --preview`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNMF(matrixPath, outdir, components, maxIter, seed, plotPNG, preview)
		},
	}

	cmd.Flags().StringVar(&matrixPath, "matrix", "", "input counts matrix TSV")
	cmd.Flags().StringVar(&outdir, "outdir", "", "output directory for decomposition results")
	cmd.Flags().IntVar(&components, "components", 3, "number of signatures to extract")
	cmd.Flags().IntVar(&maxIter, "max-iter", 1000, "maximum factorization iterations")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed for reproducible factorization")
	cmd.Flags().BoolVar(&plotPNG, "plot", false, "save a signature profile bar chart (nmf_results.png)")
	cmd.Flags().BoolVar(&preview, "preview", false, "print signature profiles as a terminal plot")
	cmd.MarkFlagRequired("matrix")
	cmd.MarkFlagRequired("outdir")

	return cmd
}

func runNMF(matrixPath, outdir string, components, maxIter int, seed int64, plotPNG, preview bool) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	m, err := matrix.ReadFile(matrixPath)
	if err != nil {
		return err
	}

	logger.Info("running NMF",
		zap.Int("samples", len(m.Samples)),
		zap.Int("categories", len(m.Labels)),
		zap.Int("components", components))

	res, err := nmf.Factorize(m, components, maxIter, seed)
	if err != nil {
		return err
	}

	if err := res.WriteDir(outdir); err != nil {
		return err
	}

	if plotPNG {
		plotPath := filepath.Join(outdir, "nmf_results.png")
		if err := res.PlotSignatures(plotPath); err != nil {
			return err
		}
		logger.Info("wrote signature plot", zap.String("path", plotPath))
	}

	if preview {
		fmt.Println(res.Preview())
	}

	logger.Info("NMF complete",
		zap.String("outdir", outdir),
		zap.Int("iterations", res.Iterations),
		zap.Float64("reconstruction_error", res.ReconstructionError))
	return nil
}
