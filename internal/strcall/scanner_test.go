package strcall

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tNORMAL\tTUMOR\n"

func writeVCF(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestScanFile_Records(t *testing.T) {
	content := header +
		"chr1\t1000\t.\tACACAC\t.\t.\tPASS\tEND=1012;PERIOD=2;REF=6;RU=AC\tGT:REPCN\t0/0:8,10\t0/1:8,11\n" +
		"chr2\t500\t.\tAAAA\t.\t.\tPASS\tEND=504;PERIOD=1;REF=4;RU=A\tGT:REPCN\t0/0:4,4\t0/0:4,4\n"

	path := writeVCF(t, t.TempDir(), "patient1.vcf", content)
	res := NewScanner().ScanFile(path)

	require.NoError(t, res.Err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, 2, res.Accepted)
	assert.Equal(t, 0, res.Rejected)

	r := res.Records[0]
	assert.Equal(t, "patient1", r.Sample)
	assert.Equal(t, "chr1_1000", r.TmpID)
	assert.Equal(t, "8", r.TumorAlleleA)
	assert.Equal(t, "11", r.TumorAlleleB)
	assert.Equal(t, "8", r.NormalAlleleA)
	assert.Equal(t, "10", r.NormalAlleleB)
	assert.Equal(t, "1012", r.End)
	assert.Equal(t, "2", r.Period)
	assert.Equal(t, "6", r.Ref)
	assert.Equal(t, "AC", r.Motif)
}

func TestScanFile_FilterRejected(t *testing.T) {
	content := header +
		"chr1\t1000\t.\tA\t.\t.\tPASS\tRU=A;REF=5\tGT:REPCN\t0/0:5,5\t0/1:5,6\n" +
		"chr1\t2000\t.\tA\t.\t.\tSSC\tRU=A;REF=5\tGT:REPCN\t0/0:5,5\t0/1:5,6\n" +
		"chr1\t3000\t.\tA\t.\t.\tLowQual\tRU=A;REF=5\tGT:REPCN\t0/0:5,5\t0/1:5,6\n"

	res := NewScanner().ScanFile(writeVCF(t, t.TempDir(), "s.vcf", content))

	require.NoError(t, res.Err)
	assert.Equal(t, 1, res.Accepted)
	assert.Equal(t, 2, res.Rejected)

	ratio, ok := res.RejectionRatio()
	require.True(t, ok)
	assert.InDelta(t, 200.0/3.0, ratio, 1e-9)
}

func TestScanFile_PerfectFalseSkipped(t *testing.T) {
	content := header +
		"chr1\t1000\t.\tA\t.\t.\tPASS\tPERFECT=FALSE;RU=A;REF=5\tGT:REPCN\t0/0:5,5\t0/1:5,6\n" +
		"chr1\t2000\t.\tA\t.\t.\tPASS\tPERFECT=TRUE;RU=A;REF=5\tGT:REPCN\t0/0:5,5\t0/1:5,6\n"

	res := NewScanner().ScanFile(writeVCF(t, t.TempDir(), "s.vcf", content))

	require.NoError(t, res.Err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "chr1_2000", res.Records[0].TmpID)
	// Imperfect calls are excluded but not counted as FILTER rejections
	assert.Equal(t, 0, res.Rejected)
	assert.Equal(t, 1, res.Accepted)
}

func TestScanFile_NonNumericDropped(t *testing.T) {
	content := header +
		"chr1\t1000\t.\tA\t.\t.\tPASS\tRU=A\tGT:REPCN\t0/0:.\t0/1:5,6\n" +
		"chr1\t2000\t.\tA\t.\t.\tPASS\tRU=A\tGT:REPCN\t0/0:5,5\t0/1:.,6\n" +
		"chr1\t3000\t.\tA\t.\t.\tPASS\tRU=A\tGT\t0/0\t0/1\n" +
		"chr1\t4000\t.\tA\t.\t.\tPASS\tRU=A\tGT:REPCN\t0/0:5,5\t0/1:5,6\n"

	res := NewScanner().ScanFile(writeVCF(t, t.TempDir(), "s.vcf", content))

	require.NoError(t, res.Err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "chr1_4000", res.Records[0].TmpID)

	for _, r := range res.Records {
		for _, allele := range []string{r.TumorAlleleA, r.TumorAlleleB, r.NormalAlleleA, r.NormalAlleleB} {
			assert.True(t, isDigits(allele), "allele %q must be digits", allele)
		}
	}
}

func TestScanFile_SingleValueRepCN(t *testing.T) {
	content := header +
		"chr1\t1000\t.\tA\t.\t.\tPASS\tRU=A\tGT:REPCN\t0/0:7\t0/1:7,9\n"

	res := NewScanner().ScanFile(writeVCF(t, t.TempDir(), "s.vcf", content))

	require.NoError(t, res.Err)
	require.Len(t, res.Records, 1)
	r := res.Records[0]
	assert.Equal(t, "7", r.NormalAlleleA)
	assert.Equal(t, "7", r.NormalAlleleB)
	assert.Equal(t, "7", r.TumorAlleleA)
	assert.Equal(t, "9", r.TumorAlleleB)
}

func TestScanFile_BadRepCNShapeDropped(t *testing.T) {
	content := header +
		"chr1\t1000\t.\tA\t.\t.\tPASS\tRU=A\tGT:REPCN\t0/0:5,6,7\t0/1:5,6\n"

	res := NewScanner().ScanFile(writeVCF(t, t.TempDir(), "s.vcf", content))

	require.NoError(t, res.Err)
	assert.Empty(t, res.Records)
}

func TestScanFile_HeaderError(t *testing.T) {
	content := "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tONLY\n"

	res := NewScanner().ScanFile(writeVCF(t, t.TempDir(), "s.vcf", content))

	require.Error(t, res.Err)
	assert.Empty(t, res.Records)
}

func TestScanFile_MissingSampleColumn(t *testing.T) {
	// Header declares two samples but the data line carries only one.
	content := header +
		"chr1\t1000\t.\tA\t.\t.\tPASS\tRU=A\tGT:REPCN\t0/0:5,5\n"

	res := NewScanner().ScanFile(writeVCF(t, t.TempDir(), "s.vcf", content))

	require.Error(t, res.Err)
	assert.Empty(t, res.Records)
}

func TestScanFile_RatioUndefinedWhenEmpty(t *testing.T) {
	res := NewScanner().ScanFile(writeVCF(t, t.TempDir(), "s.vcf", header))

	require.NoError(t, res.Err)
	_, ok := res.RejectionRatio()
	assert.False(t, ok)
}
