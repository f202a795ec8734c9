package strcall

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		{
			Sample: "p1", TmpID: "chr1_1000",
			TumorAlleleA: "8", TumorAlleleB: "11",
			NormalAlleleA: "8", NormalAlleleB: "10",
			End: "1012", Period: "2", Ref: "6", Motif: "AC",
		},
		{
			Sample: "p2", TmpID: "chr2_500",
			TumorAlleleA: "4", TumorAlleleB: "4",
			NormalAlleleA: "4", NormalAlleleB: "4",
			End: "", Period: "", Ref: "", Motif: "",
		},
	}
}

func TestTable_WriteTSV(t *testing.T) {
	table := &Table{Records: sampleRecords()}

	var buf bytes.Buffer
	require.NoError(t, table.WriteTSV(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(Columns, "\t"), lines[0])
	assert.Equal(t, "p1\tchr1_1000\t8\t11\t8\t10\t1012\t2\t6\tAC", lines[1])
	assert.Equal(t, "p2\tchr2_500\t4\t4\t4\t4\t\t\t\t", lines[2])
}

func TestTable_RoundTrip(t *testing.T) {
	table := &Table{Records: sampleRecords()}

	path := filepath.Join(t.TempDir(), "records.tsv")
	require.NoError(t, table.WriteFile(path))

	got, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, table.Records, got.Records)
}

func TestReadTable_ColumnOrderIndependent(t *testing.T) {
	content := "motif\tsample\ttmp_id\ttumor_allele_a\ttumor_allele_b\tnormal_allele_a\tnormal_allele_b\tend\tperiod\tref\n" +
		"AC\tp1\tchr1_1000\t8\t11\t8\t10\t1012\t2\t6\n"

	got, err := readTable(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "AC", got.Records[0].Motif)
	assert.Equal(t, "p1", got.Records[0].Sample)
}

func TestReadTable_MissingColumn(t *testing.T) {
	content := "sample\ttmp_id\n" + "p1\tchr1_1000\n"

	_, err := readTable(strings.NewReader(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestReadTable_Empty(t *testing.T) {
	_, err := readTable(strings.NewReader(""))
	assert.Error(t, err)
}
