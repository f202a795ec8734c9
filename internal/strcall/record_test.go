package strcall

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRepCN(t *testing.T) {
	tests := []struct {
		in    string
		wantA string
		wantB string
	}{
		{"6,7", "6", "7"},
		{"6", "6", "6"},
		{".", ".", "."},
		{".,.", ".", "."},
		{"5,6,7", ".", "."},
		{"", "", ""}, // single empty part, shared by both alleles
	}

	for _, tt := range tests {
		a, b := splitRepCN(tt.in)
		assert.Equal(t, tt.wantA, a, "splitRepCN(%q) allele A", tt.in)
		assert.Equal(t, tt.wantB, b, "splitRepCN(%q) allele B", tt.in)
	}
}

func TestIsDigits(t *testing.T) {
	assert.True(t, isDigits("0"))
	assert.True(t, isDigits("42"))
	assert.True(t, isDigits("007"))
	assert.False(t, isDigits(""))
	assert.False(t, isDigits("."))
	assert.False(t, isDigits("-1"))
	assert.False(t, isDigits("4.5"))
	assert.False(t, isDigits("1a"))
}

func TestSampleName(t *testing.T) {
	assert.Equal(t, "patient1", SampleName("patient1.vcf"))
	assert.Equal(t, "patient1", SampleName("patient1.vcf.gz"))
	assert.Equal(t, "a.b.SA12345", SampleName("a.b.SA12345.vcf.gz"))
}
