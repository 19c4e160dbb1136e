package table

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Table is a header row followed by data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Options controls how delimited files are read.
type Options struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
	// SkipLines is the number of raw lines discarded before parsing starts.
	// Blank lines count.
	SkipLines int
	// Skip is the number of leading records to discard before the header.
	// Blank lines are not records.
	Skip int
	// NoHeader treats every remaining row as data.
	NoHeader bool
}

// Read loads a comma-separated file whose first row is a header.
func Read(path string) (*Table, error) {
	return ReadWith(path, Options{})
}

// ReadWith loads a delimited file according to opts.
// Rows may have differing numbers of fields.
func ReadWith(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Decode(f, opts)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// Decode reads a delimited table from r.
func Decode(r io.Reader, opts Options) (*Table, error) {
	if opts.SkipLines > 0 {
		br := bufio.NewReader(r)
		for n := 0; n < opts.SkipLines; n++ {
			if _, err := br.ReadString('\n'); err != nil {
				if errors.Is(err, io.EOF) {
					return &Table{}, nil
				}
				return nil, err
			}
		}
		r = br
	}

	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	t := &Table{}
	for i := 0; ; i++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		if err != nil {
			return nil, err
		}
		switch {
		case i < opts.Skip:
		case i == opts.Skip && !opts.NoHeader:
			t.Header = rec
		default:
			t.Rows = append(t.Rows, rec)
		}
	}
}

// Write stores header and rows at path, creating parent directories.
func Write(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(f, header, rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// Encode writes header and rows as CSV.
func Encode(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
