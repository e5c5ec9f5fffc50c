package dataset

import (
	"errors"
	"fmt"
	"os"
	"strings"

	zlog "github.com/rs/zerolog/log"
)

// Record is one parsed data row keyed by header field name. Values are kept
// as text until a caller explicitly coerces them.
type Record map[string]string

// Get returns the value for field and whether the field is present.
func (r Record) Get(field string) (string, bool) {
	v, ok := r[field]
	return v, ok
}

// GetDefault returns the value for field, or fallback when absent.
func (r Record) GetDefault(field, fallback string) string {
	if v, ok := r[field]; ok {
		return v
	}
	return fallback
}

// Has reports whether the record carries the given field.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Dataset is the ordered sequence of records produced by one load. Operations
// over a Dataset never mutate it; filters return fresh slices.
type Dataset []Record

// Header is the ordered list of field names taken from the source's first line.
type Header []string

// ErrNotFound indicates the requested input path does not exist.
var ErrNotFound = errors.New("dataset: file not found")

// ErrReadFailure indicates an I/O error other than not-found while reading.
var ErrReadFailure = errors.New("dataset: read failed")

// Load reads a comma-delimited text file and returns its rows as a Dataset.
// See LoadWithHeader for the full contract; the header is discarded here.
func Load(path string) (Dataset, error) {
	ds, _, err := LoadWithHeader(path)
	return ds, err
}

// LoadWithHeader reads a comma-delimited text file whose first line names the
// fields. Every subsequent non-blank line becomes one Record, pairing values
// with header tokens positionally; when row and header lengths differ the
// extra entries on either side are dropped. Splitting is a naive comma split
// with whitespace trimming; quoting and escaping are not supported.
//
// I/O failures are reported but never fatal: the caller always receives a
// usable (possibly empty) Dataset alongside an ErrNotFound- or
// ErrReadFailure-wrapped error and decides whether to continue.
func LoadWithHeader(path string) (Dataset, Header, error) {
	// Whole-file read; individual lines carry no length bound.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			zlog.Error().Str("path", path).Msg("dataset file not found")
			return Dataset{}, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		zlog.Error().Err(err).Str("path", path).Msg("dataset read failed")
		return Dataset{}, nil, fmt.Errorf("%w: %v", ErrReadFailure, err)
	}
	// Zero-byte file: no header line at all, which is still a valid empty load.
	if len(data) == 0 {
		return Dataset{}, nil, nil
	}

	lines := strings.Split(string(data), "\n")
	header := Header(splitFields(lines[0]))
	records := Dataset{}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, zipRecord(header, splitFields(line)))
	}
	return records, header, nil
}

// splitFields performs the naive comma split with per-token trimming.
func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// zipRecord pairs header names with row values positionally, stopping at the
// shorter of the two. Excess values and missing trailing fields are dropped.
func zipRecord(header Header, values []string) Record {
	n := len(header)
	if len(values) < n {
		n = len(values)
	}
	rec := make(Record, n)
	for i := 0; i < n; i++ {
		rec[header[i]] = values[i]
	}
	return rec
}
