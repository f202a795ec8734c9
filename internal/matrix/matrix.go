package matrix

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Matrix is a sample by mutation-category count matrix. Rows and columns
// are lexicographically sorted; cells are event counts with missing
// combinations filled with zero.
type Matrix struct {
	Samples []string
	Labels  []string
	Counts  [][]int // Counts[i][j] is the count for Samples[i], Labels[j]
}

// Empty returns true when no events survived aggregation.
func (m *Matrix) Empty() bool {
	return len(m.Samples) == 0 || len(m.Labels) == 0
}

// At returns the count for the given sample and label, or zero when
// either is absent.
func (m *Matrix) At(sample, label string) int {
	i := sort.SearchStrings(m.Samples, sample)
	if i >= len(m.Samples) || m.Samples[i] != sample {
		return 0
	}
	j := sort.SearchStrings(m.Labels, label)
	if j >= len(m.Labels) || m.Labels[j] != label {
		return 0
	}
	return m.Counts[i][j]
}

// fromCounts densifies a nested sample -> label -> count map into a
// sorted matrix.
func fromCounts(counts map[string]map[string]int) *Matrix {
	m := &Matrix{}

	labelSet := make(map[string]bool)
	for sample, byLabel := range counts {
		m.Samples = append(m.Samples, sample)
		for label := range byLabel {
			labelSet[label] = true
		}
	}
	for label := range labelSet {
		m.Labels = append(m.Labels, label)
	}
	sort.Strings(m.Samples)
	sort.Strings(m.Labels)

	m.Counts = make([][]int, len(m.Samples))
	for i, sample := range m.Samples {
		row := make([]int, len(m.Labels))
		for j, label := range m.Labels {
			row[j] = counts[sample][label]
		}
		m.Counts[i] = row
	}

	return m
}

// WriteTSV writes the matrix as tab-delimited text with a header row of
// labels and a leading row-label column of sample names.
func (m *Matrix) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriter(w)

	header := append([]string{"sample"}, m.Labels...)
	if _, err := bw.WriteString(strings.Join(header, "\t") + "\n"); err != nil {
		return err
	}

	for i, sample := range m.Samples {
		row := make([]string, 0, len(m.Labels)+1)
		row = append(row, sample)
		for _, c := range m.Counts[i] {
			row = append(row, strconv.Itoa(c))
		}
		if _, err := bw.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteFile writes the matrix as TSV to the given path.
func (m *Matrix) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create matrix file: %w", err)
	}
	defer f.Close()

	if err := m.WriteTSV(f); err != nil {
		return fmt.Errorf("write matrix file: %w", err)
	}
	return nil
}

// ReadFile reads a count matrix TSV written by WriteTSV.
func ReadFile(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open matrix file: %w", err)
	}
	defer f.Close()

	return readTSV(f)
}

func readTSV(r io.Reader) (*Matrix, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read matrix header: %w", err)
		}
		return nil, fmt.Errorf("matrix file is empty")
	}

	header := strings.Split(scanner.Text(), "\t")
	if len(header) < 2 {
		return nil, fmt.Errorf("matrix file has no category columns")
	}

	m := &Matrix{Labels: header[1:]}

	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != len(header) {
			return nil, fmt.Errorf("matrix file line %d: expected %d columns, found %d", lineNo, len(header), len(fields))
		}

		row := make([]int, len(m.Labels))
		for j, cell := range fields[1:] {
			n, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("matrix file line %d: invalid count %q", lineNo, cell)
			}
			row[j] = n
		}

		m.Samples = append(m.Samples, fields[0])
		m.Counts = append(m.Counts, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read matrix file: %w", err)
	}

	return m, nil
}
