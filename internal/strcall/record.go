// Package strcall extracts STR mutation records from paired tumor/normal
// VCF files.
package strcall

import "strings"

// Record is one STR locus that passed filtering, with the repeat copy
// numbers of both alleles in tumor and normal. Allele values are kept as
// the digit strings reported by the caller; downstream consumers parse
// them to integers.
type Record struct {
	Sample        string // derived from the source file name
	TmpID         string // "{chrom}_{pos}", not unique across samples
	TumorAlleleA  string
	TumorAlleleB  string
	NormalAlleleA string
	NormalAlleleB string
	End           string // genomic end coordinate (INFO END)
	Period        string // repeat period (INFO PERIOD)
	Ref           string // reference repeat count (INFO REF)
	Motif         string // repeat unit sequence (INFO RU)
}

// missing is the sentinel for an absent or unusable allele value.
const missing = "."

// splitRepCN splits a REPCN value into the two per-allele repeat copy
// numbers. Two comma-separated parts are allele A and B; a single part
// means both alleles share that count; any other shape yields the
// missing-value sentinel for both.
func splitRepCN(s string) (a, b string) {
	parts := strings.Split(s, ",")
	switch len(parts) {
	case 2:
		return parts[0], parts[1]
	case 1:
		return parts[0], parts[0]
	default:
		return missing, missing
	}
}

// isDigits returns true if s is a non-empty string of decimal digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// SampleName derives the sample identifier from a VCF file name by
// stripping the .vcf or .vcf.gz extension.
func SampleName(filename string) string {
	name := strings.TrimSuffix(filename, ".gz")
	return strings.TrimSuffix(name, ".vcf")
}
