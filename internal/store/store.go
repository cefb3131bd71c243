// Package store appends found addresses to a human-readable text file and
// reads them back.
package store

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/screa/eth-vanity/internal/crypto"
	"github.com/screa/eth-vanity/internal/format"
	"github.com/screa/eth-vanity/pkg/types"
)

const (
	recordHeader = "=== Ethereum Vanity Address ==="
	timeLayout   = "2006-01-02 15:04:05 UTC"

	keyTime     = "Time"
	keyAddress  = "Address"
	keyChecksum = "Checksum Address"
	keyPrivate  = "Private Key"
	keyRepeated = "Repeated"
	keyAttempts = "Attempts"
	keyElapsed  = "Elapsed"
	keyRate     = "Rate"
)

// ErrMalformedRecord is returned by ParseRecords for a block it cannot read
var ErrMalformedRecord = errors.New("malformed record")

// FileStore appends records to a file. The file is opened for every record
// and never truncated.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store writing to path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file the store appends to
func (s *FileStore) Path() string {
	return s.path
}

// Append writes rec at the end of the file, creating it if needed
func (s *FileStore) Append(rec types.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s.path, err)
	}

	// single write so appenders in other processes cannot interleave a record
	if _, err = f.Write(FormatRecord(rec)); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return f.Close()
}

// FormatRecord renders rec as a text block followed by a blank line
func FormatRecord(rec types.Record) []byte {
	var b bytes.Buffer
	m := rec.Match

	fmt.Fprintln(&b, recordHeader)
	fmt.Fprintf(&b, "%s: %s\n", keyTime, rec.Time.UTC().Format(timeLayout))
	fmt.Fprintf(&b, "%s: %s\n", keyAddress, m.PrefixedAddress())
	fmt.Fprintf(&b, "%s: %s\n", keyChecksum, crypto.ChecksumAddress(m.Address))
	fmt.Fprintf(&b, "%s: %s\n", keyPrivate, m.PrivateKey)
	fmt.Fprintf(&b, "%s: '%c' x %d\n", keyRepeated, m.Digit, m.RunLength)
	fmt.Fprintf(&b, "%s: %s\n", keyAttempts, format.Number(rec.Stats.Attempts))
	fmt.Fprintf(&b, "%s: %s s\n", keyElapsed, format.Seconds(rec.Stats.Elapsed))
	fmt.Fprintf(&b, "%s: %s attempts/s\n", keyRate, format.Rate(rec.Stats.Rate()))
	fmt.Fprintln(&b)

	return b.Bytes()
}

// ReadFile parses all records in the file at path
func ReadFile(path string) ([]types.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseRecords(f)
}

// ParseRecords reads records written by FormatRecord. Elapsed time is only
// as precise as the two decimals stored in the file.
func ParseRecords(r io.Reader) ([]types.Record, error) {
	var (
		records []types.Record
		fields  map[string]string
		line    int
	)

	flush := func() error {
		if fields == nil {
			return nil
		}
		rec, err := parseFields(fields)
		if err != nil {
			return fmt.Errorf("record %d ending at line %d: %w", len(records)+1, line, err)
		}
		records = append(records, rec)
		fields = nil
		return nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())

		switch {
		case text == recordHeader:
			if err := flush(); err != nil {
				return records, err
			}
			fields = make(map[string]string)
		case text == "":
			if err := flush(); err != nil {
				return records, err
			}
		default:
			if fields == nil {
				return records, fmt.Errorf("%w: line %d outside a record", ErrMalformedRecord, line)
			}
			key, value, ok := strings.Cut(text, ": ")
			if !ok {
				return records, fmt.Errorf("%w: line %d: %q", ErrMalformedRecord, line, text)
			}
			fields[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return records, err
	}

	if err := flush(); err != nil {
		return records, err
	}
	return records, nil
}

func parseFields(fields map[string]string) (types.Record, error) {
	var rec types.Record

	for _, key := range []string{keyTime, keyAddress, keyPrivate, keyRepeated, keyAttempts, keyElapsed} {
		if _, ok := fields[key]; !ok {
			return rec, fmt.Errorf("%w: missing %q", ErrMalformedRecord, key)
		}
	}

	t, err := time.Parse(timeLayout, fields[keyTime])
	if err != nil {
		return rec, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	rec.Time = t

	address := strings.TrimPrefix(fields[keyAddress], types.AddressPrefix)
	if len(address) != types.AddressLen {
		return rec, fmt.Errorf("%w: address %q", ErrMalformedRecord, fields[keyAddress])
	}
	rec.Match.Address = address
	rec.Match.PrivateKey = fields[keyPrivate]

	var digit rune
	if _, err = fmt.Sscanf(fields[keyRepeated], "'%c' x %d", &digit, &rec.Match.RunLength); err != nil {
		return rec, fmt.Errorf("%w: repeated %q: %v", ErrMalformedRecord, fields[keyRepeated], err)
	}
	rec.Match.Digit = byte(digit)

	if rec.Stats.Attempts, err = format.ParseNumber(fields[keyAttempts]); err != nil {
		return rec, fmt.Errorf("%w: attempts %q: %v", ErrMalformedRecord, fields[keyAttempts], err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSuffix(fields[keyElapsed], " s"), 64)
	if err != nil {
		return rec, fmt.Errorf("%w: elapsed %q: %v", ErrMalformedRecord, fields[keyElapsed], err)
	}
	rec.Stats.Elapsed = time.Duration(seconds * float64(time.Second)).Round(10 * time.Millisecond)

	return rec, nil
}
