package strcall

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ScanDir scans every .vcf and .vcf.gz file in dir and returns the
// concatenated mutation records plus the per-file outcomes. Files are
// processed in sorted name order and merged in that order, so the output
// is deterministic regardless of worker count. A file that fails to parse
// contributes no records and does not abort the scan; its failure is
// reported in the returned results.
func (s *Scanner) ScanDir(dir string, workers int) (*Table, []FileResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read vcf directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".vcf") || strings.HasSuffix(name, ".vcf.gz") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	sort.Strings(paths)

	items := make(chan workItem, len(paths))
	for i, p := range paths {
		items <- workItem{seq: i, path: p}
	}
	close(items)

	table := NewTable()
	results := make([]FileResult, 0, len(paths))

	orderedCollect(s.scanParallel(items, workers), func(r FileResult) {
		results = append(results, r)

		if r.Err != nil {
			s.logger.Warn("skipping file",
				zap.String("path", r.Path),
				zap.Error(r.Err))
			return
		}

		if ratio, ok := r.RejectionRatio(); ok {
			s.logger.Info("scanned file",
				zap.String("path", r.Path),
				zap.Int("records", len(r.Records)),
				zap.Int("rejected_by_filter", r.Rejected),
				zap.Float64("rejected_pct", ratio))
		} else {
			s.logger.Info("scanned file",
				zap.String("path", r.Path),
				zap.Int("records", len(r.Records)))
		}

		table.Records = append(table.Records, r.Records...)
	})

	return table, results, nil
}
