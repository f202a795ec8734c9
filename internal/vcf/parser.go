// Package vcf provides line-oriented parsing for STR-annotated VCF files.
package vcf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parser reads data lines from a paired tumor/normal VCF file.
// The file must carry at least two sample columns after the nine
// fixed VCF columns; the parser fails at open time otherwise.
type Parser struct {
	reader      *bufio.Reader
	file        *os.File
	gzipReader  *gzip.Reader
	lineNumber  int
	header      []string
	sampleNames []string // sample names from #CHROM header line
	formatKeys  []string // FORMAT key ordering, set once from the first data line
}

// NewParser creates a new VCF parser for the given file.
// Supports both plain VCF and gzipped VCF (.vcf.gz) files.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("read vcf header: %w", err)
	}

	// Seek back to beginning
	_, err = file.Seek(0, 0)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("seek vcf file: %w", err)
	}

	// Check for gzip magic number (0x1f, 0x8b)
	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	// Parse header
	if err := p.parseHeader(); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewParserFromReader(r io.Reader) (*Parser, error) {
	p := &Parser{
		reader: bufio.NewReader(r),
	}

	if err := p.parseHeader(); err != nil {
		return nil, err
	}

	return p, nil
}

// parseHeader reads header lines up to and including the #CHROM line and
// captures the trailing sample column names.
func (p *Parser) parseHeader() error {
	for {
		raw, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("read header: %w", err)
		}
		eof := err == io.EOF
		if raw != "" {
			p.lineNumber++
		}

		line := strings.TrimRight(raw, "\r\n")
		if line == "" && eof {
			break
		}

		if strings.HasPrefix(line, "##") {
			p.header = append(p.header, line)
			if eof {
				break
			}
			continue
		}

		if strings.HasPrefix(line, "#CHROM") {
			p.header = append(p.header, line)
			fields := strings.Split(line, "\t")
			if len(fields) > 9 {
				p.sampleNames = fields[9:]
			}
			if len(p.sampleNames) < 2 {
				return &ParseError{
					Line:    p.lineNumber,
					Message: fmt.Sprintf("expected at least 2 samples (normal, tumor), found %d", len(p.sampleNames)),
				}
			}
			return nil
		}

		// Non-header line encountered without #CHROM
		return &ParseError{
			Line:    p.lineNumber,
			Message: "expected #CHROM header line",
		}
	}

	return &ParseError{
		Line:    p.lineNumber,
		Message: "no #CHROM header line found",
	}
}

// Next reads the next data line from the VCF file.
// Comment lines and malformed lines (fewer than 10 tab-separated columns)
// are skipped silently. Returns nil, nil when there are no more lines.
func (p *Parser) Next() (*Variant, error) {
	for {
		raw, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read variant line: %w", err)
		}
		// A file without a trailing newline yields its last line
		// together with io.EOF
		eof := err == io.EOF
		if raw != "" {
			p.lineNumber++
		}

		line := strings.TrimRight(raw, "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			if eof {
				return nil, nil
			}
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 10 {
			if eof {
				return nil, nil
			}
			continue // malformed
		}

		return p.parseLine(fields), nil
	}
}

// parseLine converts a tab-split data line into a Variant.
// The FORMAT key ordering is derived from the first data line and reused
// for the rest of the file (layout is assumed constant within a file).
func (p *Parser) parseLine(fields []string) *Variant {
	if p.formatKeys == nil {
		p.formatKeys = strings.Split(fields[8], ":")
	}

	return &Variant{
		Chrom:   fields[0],
		Pos:     fields[1],
		Filter:  fields[6],
		Info:    parseInfo(fields[7]),
		Format:  p.formatKeys,
		Samples: fields[9:],
	}
}

// parseInfo parses the INFO field into a map. Only key=value pairs are
// kept; bare flag keys are ignored.
func parseInfo(info string) map[string]string {
	result := make(map[string]string)
	if info == "." {
		return result
	}

	for _, kv := range strings.Split(info, ";") {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			result[parts[0]] = parts[1]
		}
	}

	return result
}

// Header returns the VCF header lines.
func (p *Parser) Header() []string {
	return p.header
}

// SampleNames returns sample names from the #CHROM header line.
func (p *Parser) SampleNames() []string {
	return p.sampleNames
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents an error during VCF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}
