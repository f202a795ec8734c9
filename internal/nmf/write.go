package nmf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteDir writes the factorization outputs into outdir:
// signatures.tsv, exposures.tsv and nmf_metrics.txt.
func (r *Result) WriteDir(outdir string) error {
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := writeFile(filepath.Join(outdir, "signatures.tsv"), r.writeSignatures); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(outdir, "exposures.tsv"), r.writeExposures); err != nil {
		return err
	}
	return writeFile(filepath.Join(outdir, "nmf_metrics.txt"), r.writeMetrics)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (r *Result) writeSignatures(w io.Writer) error {
	bw := bufio.NewWriter(w)

	header := append([]string{"signature"}, r.Features...)
	if _, err := bw.WriteString(strings.Join(header, "\t") + "\n"); err != nil {
		return err
	}

	for i, name := range r.Components {
		row := make([]string, 0, len(r.Features)+1)
		row = append(row, name)
		for j := range r.Features {
			row = append(row, fmt.Sprintf("%.6f", r.Signatures.At(i, j)))
		}
		if _, err := bw.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func (r *Result) writeExposures(w io.Writer) error {
	bw := bufio.NewWriter(w)

	header := append([]string{"sample"}, r.Components...)
	if _, err := bw.WriteString(strings.Join(header, "\t") + "\n"); err != nil {
		return err
	}

	for i, sample := range r.Samples {
		row := make([]string, 0, len(r.Components)+1)
		row = append(row, sample)
		for j := range r.Components {
			row = append(row, fmt.Sprintf("%.6f", r.Exposures.At(i, j)))
		}
		if _, err := bw.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func (r *Result) writeMetrics(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"Reconstruction error: %.6f\nNumber of components: %d\nInput matrix shape: (%d, %d)\nIterations: %d\n",
		r.ReconstructionError, len(r.Components), len(r.Samples), len(r.Features), r.Iterations)
	return err
}
