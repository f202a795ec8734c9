package duckdb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for a scanned source file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Matches reports whether the stored fingerprint still describes other.
// Modification times are compared at microsecond precision, the
// resolution of the TIMESTAMP column they round-trip through.
func (fp FileFingerprint) Matches(other FileFingerprint) bool {
	return fp.Size == other.Size &&
		fp.ModTime.Truncate(time.Microsecond).Equal(other.ModTime.Truncate(time.Microsecond))
}

// RecordScan upserts the fingerprint of a scanned source file, so a later
// run can tell whether records for this path are stale.
func (s *Store) RecordScan(fp FileFingerprint) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO scan_metadata (path, size, mod_time) VALUES (?, ?, ?)`,
		fp.Path, fp.Size, fp.ModTime,
	)
	if err != nil {
		return fmt.Errorf("record scan metadata: %w", err)
	}
	return nil
}

// LookupScan returns the stored fingerprint for a source path.
// The second return is false when the path has not been scanned.
func (s *Store) LookupScan(path string) (FileFingerprint, bool, error) {
	var fp FileFingerprint
	err := s.db.QueryRow(
		`SELECT path, size, mod_time FROM scan_metadata WHERE path = ?`, path,
	).Scan(&fp.Path, &fp.Size, &fp.ModTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FileFingerprint{}, false, nil
		}
		return FileFingerprint{}, false, fmt.Errorf("lookup scan metadata: %w", err)
	}
	return fp, true, nil
}
