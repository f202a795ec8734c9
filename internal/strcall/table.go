package strcall

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Columns is the fixed column order of the persisted mutation records
// table.
var Columns = []string{
	"sample",
	"tmp_id",
	"tumor_allele_a",
	"tumor_allele_b",
	"normal_allele_a",
	"normal_allele_b",
	"end",
	"period",
	"ref",
	"motif",
}

// Table is the accumulated mutation records of one or more scanned files.
type Table struct {
	Records []Record
}

// NewTable creates an empty records table.
func NewTable() *Table {
	return &Table{}
}

// WriteTSV writes the table as tab-delimited text with a header row.
func (t *Table) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(strings.Join(Columns, "\t") + "\n"); err != nil {
		return err
	}

	for _, r := range t.Records {
		row := []string{
			r.Sample,
			r.TmpID,
			r.TumorAlleleA,
			r.TumorAlleleB,
			r.NormalAlleleA,
			r.NormalAlleleB,
			r.End,
			r.Period,
			r.Ref,
			r.Motif,
		}
		if _, err := bw.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteFile writes the table as TSV to the given path.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create records file: %w", err)
	}
	defer f.Close()

	if err := t.WriteTSV(f); err != nil {
		return fmt.Errorf("write records file: %w", err)
	}
	return nil
}

// ReadTable reads a mutation records TSV written by WriteTSV. Columns are
// located by header name, so extra columns and reordering are tolerated;
// a missing required column is an error.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open records file: %w", err)
	}
	defer f.Close()

	return readTable(f)
}

func readTable(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read records header: %w", err)
		}
		return nil, fmt.Errorf("records file is empty")
	}

	index := make(map[string]int)
	for i, name := range strings.Split(scanner.Text(), "\t") {
		index[name] = i
	}
	for _, name := range Columns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("records file is missing required column %q", name)
		}
	}

	t := NewTable()
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		cell := func(name string) (string, error) {
			i := index[name]
			if i >= len(fields) {
				return "", fmt.Errorf("records file line %d: missing column %q", lineNo, name)
			}
			return fields[i], nil
		}

		var rec Record
		for _, c := range []struct {
			name string
			dst  *string
		}{
			{"sample", &rec.Sample},
			{"tmp_id", &rec.TmpID},
			{"tumor_allele_a", &rec.TumorAlleleA},
			{"tumor_allele_b", &rec.TumorAlleleB},
			{"normal_allele_a", &rec.NormalAlleleA},
			{"normal_allele_b", &rec.NormalAlleleB},
			{"end", &rec.End},
			{"period", &rec.Period},
			{"ref", &rec.Ref},
			{"motif", &rec.Motif},
		} {
			val, err := cell(c.name)
			if err != nil {
				return nil, err
			}
			*c.dst = val
		}

		t.Records = append(t.Records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read records file: %w", err)
	}

	return t, nil
}
