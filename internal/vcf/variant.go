// Package vcf provides line-oriented parsing for STR-annotated VCF files.
package vcf

import "strings"

// Variant represents a single data line from a paired tumor/normal VCF.
type Variant struct {
	Chrom   string            // Chromosome name (e.g., "12", "chr12")
	Pos     string            // 1-based position, kept verbatim for locus IDs
	Filter  string            // Filter status (PASS or filter name)
	Info    map[string]string // INFO field key=value pairs
	Format  []string          // FORMAT key ordering for the sample columns
	Samples []string          // Raw colon-joined per-sample value strings
}

// FilterPass is the FILTER value indicating all quality filters passed.
const FilterPass = "PASS"

// Passed returns true if the variant passed all quality filters.
func (v *Variant) Passed() bool {
	return v.Filter == FilterPass
}

// InfoGet returns the INFO value for key, or def if the key is absent.
func (v *Variant) InfoGet(key, def string) string {
	if val, ok := v.Info[key]; ok {
		return val
	}
	return def
}

// SampleField looks up the FORMAT field named key in sample column i.
// Returns false if the sample index is out of range or the key is not
// present within the sample's value tuple.
func (v *Variant) SampleField(i int, key string) (string, bool) {
	if i < 0 || i >= len(v.Samples) {
		return "", false
	}

	values := strings.Split(v.Samples[i], ":")
	for j, k := range v.Format {
		if k == key {
			if j >= len(values) {
				return "", false
			}
			return values[j], true
		}
	}

	return "", false
}
