package store

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screa/eth-vanity/pkg/types"
)

func testRecord(address, priv string, digit byte, run int) types.Record {
	return types.Record{
		Time: time.Date(2026, 10, 19, 12, 30, 45, 0, time.UTC),
		Match: types.MatchResult{
			PrivateKey: priv,
			Address:    address,
			Digit:      digit,
			RunLength:  run,
		},
		Stats: types.RoundStats{
			Attempts: 1234567,
			Elapsed:  12340 * time.Millisecond,
		},
	}
}

var (
	recordOne = testRecord("7e5f4552091a69125d5dfcb7b8c2659029395bdf", strings.Repeat("0", 63)+"1", 'f', 1)
	recordTwo = testRecord("1234567890abcdef1234567890abcdef20000000", strings.Repeat("ab", 32), '0', 7)
)

func TestFormatRecord(t *testing.T) {
	out := string(FormatRecord(recordOne))

	want := `=== Ethereum Vanity Address ===
Time: 2026-10-19 12:30:45 UTC
Address: 0x7e5f4552091a69125d5dfcb7b8c2659029395bdf
Checksum Address: 0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf
Private Key: 0000000000000000000000000000000000000000000000000000000000000001
Repeated: 'f' x 1
Attempts: 1,234,567
Elapsed: 12.34 s
Rate: 100046 attempts/s

`
	assert.Equal(t, want, out)
}

func TestAppendTwoRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	s := NewFileStore(path)
	assert.Equal(t, path, s.Path())

	require.NoError(t, s.Append(recordOne))
	require.NoError(t, s.Append(recordTwo))

	records, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, recordOne, records[0])
	assert.Equal(t, recordTwo, records[1])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestAppendConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	s := NewFileStore(path)

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		rec := recordOne
		if i%2 == 1 {
			rec = recordTwo
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Append(rec))
		}()
	}
	wg.Wait()

	records, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, records, writers)
	for _, rec := range records {
		assert.Contains(t, []types.Record{recordOne, recordTwo}, rec)
	}
}

func TestAppendKeepsExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, FormatRecord(recordOne), 0600))

	require.NoError(t, NewFileStore(path).Append(recordTwo))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), string(FormatRecord(recordOne))))
	assert.Equal(t, 2, strings.Count(string(data), recordHeader))
}

func TestAppendFailure(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "missing", "out.txt"))
	assert.Error(t, s.Append(recordOne))
}

func TestParseRecordsEmpty(t *testing.T) {
	records, err := ParseRecords(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseRecordsWithoutTrailingBlankLine(t *testing.T) {
	in := strings.TrimRight(string(FormatRecord(recordTwo)), "\n")

	records, err := ParseRecords(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, recordTwo, records[0])
}

func TestParseRecordsMalformed(t *testing.T) {
	valid := string(FormatRecord(recordOne))

	tests := []struct {
		name string
		in   string
	}{
		{name: "text outside record", in: "hello\n"},
		{name: "line without separator", in: recordHeader + "\nnonsense\n"},
		{name: "missing field", in: strings.Replace(valid, "Attempts: 1,234,567\n", "", 1)},
		{name: "bad time", in: strings.Replace(valid, "2026-10-19 12:30:45 UTC", "yesterday", 1)},
		{name: "short address", in: strings.Replace(valid, "Address: 0x7e5f", "Address: 0x", 1)},
		{name: "bad repeated", in: strings.Replace(valid, "'f' x 1", "f times one", 1)},
		{name: "bad attempts", in: strings.Replace(valid, "1,234,567", "many", 1)},
		{name: "bad elapsed", in: strings.Replace(valid, "12.34 s", "long", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecords(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
