// Package matrix aggregates STR mutation records into a sample by
// mutation-category count matrix.
package matrix

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inodb/str-sig/internal/strcall"
)

// RUMode controls how the repeat unit motif contributes to feature labels.
type RUMode string

const (
	// RUNone omits motif information from labels.
	RUNone RUMode = "none"
	// RULength encodes only the motif length, as "LEN{n}".
	RULength RUMode = "length"
	// RUSequence encodes the literal motif sequence.
	RUSequence RUMode = "ru"
)

// Config holds the three independent feature-label switches.
type Config struct {
	// RU selects the motif representation.
	RU RUMode
	// RefLength includes the normal-sample reference repeat length.
	RefLength bool
	// Change includes the signed tumor-minus-normal length delta, and
	// restricts counting to true somatic events (non-zero delta).
	Change bool
}

func (c Config) validate() error {
	switch c.RU {
	case RUNone, RULength, RUSequence:
		return nil
	default:
		return fmt.Errorf("ru must be one of %q, %q, %q; got %q", RUNone, RULength, RUSequence, c.RU)
	}
}

// alleleChanges holds the rank-paired per-allele deltas and reference
// lengths derived from one record. Alleles are unphased, so the tumor and
// normal pairs are each sorted ascending and paired by rank.
type alleleChanges struct {
	changeA, changeB int
	refA, refB       int
	ok               bool // false when any allele failed integer parsing
}

func computeAlleleChanges(r *strcall.Record) alleleChanges {
	ta, err1 := strconv.Atoi(r.TumorAlleleA)
	tb, err2 := strconv.Atoi(r.TumorAlleleB)
	na, err3 := strconv.Atoi(r.NormalAlleleA)
	nb, err4 := strconv.Atoi(r.NormalAlleleB)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return alleleChanges{}
	}

	if ta > tb {
		ta, tb = tb, ta
	}
	if na > nb {
		na, nb = nb, na
	}

	return alleleChanges{
		changeA: ta - na,
		changeB: tb - nb,
		refA:    na,
		refB:    nb,
		ok:      true,
	}
}

// label builds the feature label for one allele slot, joining the enabled
// components with "_". The second return is false when the event is
// suppressed: zero or missing delta under Change, missing reference
// length under RefLength, or every switch disabled.
func (c Config) label(motif string, ref, delta int, derived bool) (string, bool) {
	var parts []string

	switch c.RU {
	case RULength:
		parts = append(parts, fmt.Sprintf("LEN%d", len(motif)))
	case RUSequence:
		parts = append(parts, motif)
	}

	if c.RefLength {
		if !derived {
			return "", false
		}
		parts = append(parts, strconv.Itoa(ref))
	}

	if c.Change {
		// Only keep true somatic events
		if !derived || delta == 0 {
			return "", false
		}
		sign := ""
		if delta > 0 {
			sign = "+"
		}
		parts = append(parts, fmt.Sprintf("%s%d", sign, delta))
	}

	if len(parts) == 0 {
		return "", false
	}

	return strings.Join(parts, "_"), true
}

// Build aggregates mutation records into the sample by category count
// matrix. Each record contributes up to two allele-level events;
// suppressed events are dropped. If no events survive, the returned
// matrix is empty (zero rows and columns), not an error.
func Build(records []strcall.Record, cfg Config) (*Matrix, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	counts := make(map[string]map[string]int)
	bump := func(sample, label string) {
		if counts[sample] == nil {
			counts[sample] = make(map[string]int)
		}
		counts[sample][label]++
	}

	for i := range records {
		r := &records[i]
		ch := computeAlleleChanges(r)

		if label, ok := cfg.label(r.Motif, ch.refA, ch.changeA, ch.ok); ok {
			bump(r.Sample, label)
		}
		if label, ok := cfg.label(r.Motif, ch.refB, ch.changeB, ch.ok); ok {
			bump(r.Sample, label)
		}
	}

	return fromCounts(counts), nil
}
