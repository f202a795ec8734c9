package strcall

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/inodb/str-sig/internal/vcf"
)

// FORMAT key carrying the per-allele repeat copy numbers.
const repcnKey = "REPCN"

// Sample column assignment within a file. The two trailing sample columns
// are assigned positionally: the first is the matched normal, the second
// is the tumor. This is a convention of the supported caller's paired
// output, not derived from sample naming.
const (
	normalIdx = 0
	tumorIdx  = 1
)

// FileResult is the outcome of scanning a single VCF file. A file that
// fails structurally carries Err and no records; filtered-out loci are
// counted but never surfaced as errors.
type FileResult struct {
	Path     string
	Sample   string
	Records  []Record
	Accepted int // loci emitted as records
	Rejected int // loci rejected by FILTER
	Err      error
}

// RejectionRatio returns the percentage of candidate loci rejected by
// FILTER. The second return is false when no loci were counted.
func (r *FileResult) RejectionRatio() (float64, bool) {
	denom := r.Accepted + r.Rejected
	if denom == 0 {
		return 0, false
	}
	return float64(r.Rejected) / float64(denom) * 100, true
}

// Scanner extracts mutation records from STR-annotated VCF files.
type Scanner struct {
	logger *zap.Logger
}

// NewScanner creates a scanner with a no-op logger.
func NewScanner() *Scanner {
	return &Scanner{logger: zap.NewNop()}
}

// SetLogger sets the logger for per-file progress and skip messages.
func (s *Scanner) SetLogger(l *zap.Logger) {
	s.logger = l
}

// ScanFile parses one VCF file into mutation records. Structural failures
// (unreadable file, bad header, missing sample columns) are returned in
// FileResult.Err; the partial records of a failed file are discarded.
func (s *Scanner) ScanFile(path string) FileResult {
	res := FileResult{
		Path:   path,
		Sample: SampleName(filepath.Base(path)),
	}

	parser, err := vcf.NewParser(path)
	if err != nil {
		res.Err = err
		return res
	}
	defer parser.Close()

	for {
		v, err := parser.Next()
		if err != nil {
			res.Err = err
			res.Records = nil
			return res
		}
		if v == nil {
			break
		}

		if len(v.Samples) < 2 {
			res.Err = &vcf.ParseError{
				Line:    parser.LineNumber(),
				Message: "missing expected normal/tumor sample columns",
			}
			res.Records = nil
			return res
		}

		if !v.Passed() {
			res.Rejected++
			continue
		}

		// Keep only perfect calls if annotated
		if v.InfoGet("PERFECT", "") == "FALSE" {
			continue
		}

		normalA, normalB := repCN(v, normalIdx)
		tumorA, tumorB := repCN(v, tumorIdx)

		// Require numeric REPCN for all alleles
		if !isDigits(normalA) || !isDigits(normalB) || !isDigits(tumorA) || !isDigits(tumorB) {
			continue
		}

		res.Accepted++
		res.Records = append(res.Records, Record{
			Sample:        res.Sample,
			TmpID:         fmt.Sprintf("%s_%s", v.Chrom, v.Pos),
			TumorAlleleA:  tumorA,
			TumorAlleleB:  tumorB,
			NormalAlleleA: normalA,
			NormalAlleleB: normalB,
			End:           v.InfoGet("END", ""),
			Period:        v.InfoGet("PERIOD", ""),
			Ref:           v.InfoGet("REF", ""),
			Motif:         v.InfoGet("RU", ""),
		})
	}

	return res
}

// repCN extracts the two allele repeat copy numbers for sample column i.
func repCN(v *vcf.Variant, i int) (a, b string) {
	val, ok := v.SampleField(i, repcnKey)
	if !ok {
		return missing, missing
	}
	return splitRepCN(val)
}
