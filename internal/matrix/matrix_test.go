package matrix

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMatrix() *Matrix {
	return &Matrix{
		Samples: []string{"p1", "p2"},
		Labels:  []string{"LEN1_5_+1", "LEN2_8_-1"},
		Counts:  [][]int{{3, 0}, {1, 2}},
	}
}

func TestMatrix_WriteTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testMatrix().WriteTSV(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "sample\tLEN1_5_+1\tLEN2_8_-1", lines[0])
	assert.Equal(t, "p1\t3\t0", lines[1])
	assert.Equal(t, "p2\t1\t2", lines[2])
}

func TestMatrix_RoundTrip(t *testing.T) {
	m := testMatrix()

	path := filepath.Join(t.TempDir(), "counts.tsv")
	require.NoError(t, m.WriteFile(path))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestMatrix_At(t *testing.T) {
	m := testMatrix()

	assert.Equal(t, 3, m.At("p1", "LEN1_5_+1"))
	assert.Equal(t, 2, m.At("p2", "LEN2_8_-1"))
	assert.Equal(t, 0, m.At("p1", "LEN2_8_-1"))
	assert.Equal(t, 0, m.At("p3", "LEN1_5_+1"))
	assert.Equal(t, 0, m.At("p1", "nope"))
}

func TestMatrix_Empty(t *testing.T) {
	assert.True(t, (&Matrix{}).Empty())
	assert.False(t, testMatrix().Empty())
}

func TestReadTSV_Malformed(t *testing.T) {
	_, err := readTSV(strings.NewReader("sample\tA\np1\tx\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid count")

	_, err = readTSV(strings.NewReader("sample\tA\np1\t1\t2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 columns")

	_, err = readTSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestFromCounts_Empty(t *testing.T) {
	m := fromCounts(map[string]map[string]int{})
	assert.True(t, m.Empty())
}
