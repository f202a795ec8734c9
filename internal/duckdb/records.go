package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/str-sig/internal/strcall"
)

// recordKey is the composite key for deduplicating records before writing.
type recordKey struct {
	sample, tmpID, source string
}

// WriteRecords batch-inserts mutation records into DuckDB using the
// Appender API, tagging each with its source file path. Rows previously
// stored for the same source are replaced, so re-extracting a file is
// idempotent; duplicate (sample, tmp_id, source) entries within the batch
// are deduplicated before writing.
func (s *Store) WriteRecords(source string, records []strcall.Record) error {
	if len(records) == 0 {
		return nil
	}

	if _, err := s.db.Exec("DELETE FROM mutation_records WHERE source = ?", source); err != nil {
		return fmt.Errorf("clear records for source: %w", err)
	}

	seen := make(map[recordKey]bool, len(records))
	deduped := make([]strcall.Record, 0, len(records))
	for _, r := range records {
		k := recordKey{r.Sample, r.TmpID, source}
		if !seen[k] {
			seen[k] = true
			deduped = append(deduped, r)
		}
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "mutation_records")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range deduped {
		if err := appender.AppendRow(
			r.Sample, r.TmpID,
			r.TumorAlleleA, r.TumorAlleleB,
			r.NormalAlleleA, r.NormalAlleleB,
			r.End, r.Period, r.Ref, r.Motif,
			source,
		); err != nil {
			return fmt.Errorf("append mutation record: %w", err)
		}
	}

	return appender.Flush()
}

// ReadRecords returns all stored mutation records in a stable order
// (sample, then locus, then source).
func (s *Store) ReadRecords() ([]strcall.Record, error) {
	rows, err := s.db.Query(`SELECT
		sample, tmp_id,
		tumor_allele_a, tumor_allele_b,
		normal_allele_a, normal_allele_b,
		str_end, period, ref, motif
		FROM mutation_records
		ORDER BY sample, tmp_id, source`)
	if err != nil {
		return nil, fmt.Errorf("query mutation records: %w", err)
	}
	defer rows.Close()

	var records []strcall.Record
	for rows.Next() {
		var r strcall.Record
		if err := rows.Scan(
			&r.Sample, &r.TmpID,
			&r.TumorAlleleA, &r.TumorAlleleB,
			&r.NormalAlleleA, &r.NormalAlleleB,
			&r.End, &r.Period, &r.Ref, &r.Motif,
		); err != nil {
			return nil, fmt.Errorf("scan mutation record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mutation records: %w", err)
	}
	return records, nil
}

// ClearRecords removes all stored mutation records.
func (s *Store) ClearRecords() error {
	_, err := s.db.Exec("DELETE FROM mutation_records")
	return err
}

// CountRecords returns the number of stored mutation records.
func (s *Store) CountRecords() (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM mutation_records").Scan(&n)
	return n, err
}
