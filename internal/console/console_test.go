package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/screa/eth-vanity/internal/config"
	"github.com/screa/eth-vanity/pkg/types"
)

func newTestConsole() (*Console, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, true), &buf
}

func TestBanner(t *testing.T) {
	c, buf := newTestConsole()
	cfg := config.NewConfig()
	cfg.Workers = 4
	cfg.Count = 2

	c.Banner(cfg)

	out := buf.String()
	assert.Contains(t, out, "at least 8 repeated characters")
	assert.Contains(t, out, "Workers: 4")
	assert.Contains(t, out, "Batch size: 1,000")
	assert.Contains(t, out, "eth_address.txt")
	assert.Contains(t, out, "Mode: 2 addresses")
	assert.NotContains(t, out, "\x1b[", "colour disabled")
}

func TestProgress(t *testing.T) {
	c, buf := newTestConsole()
	c.Progress(types.Progress{Attempts: 1500000, Elapsed: 3 * time.Second, Rate: 500000})

	assert.Equal(t, "📊 Attempts: 1,500,000 | Speed: 500000 attempts/s (500.0K/s)\n", buf.String())
}

func TestFoundAndSaved(t *testing.T) {
	c, buf := newTestConsole()
	rec := types.Record{
		Match: types.MatchResult{
			PrivateKey: strings.Repeat("0", 63) + "1",
			Address:    "7e5f4552091a69125d5dfcb7b8c2659029395bdf",
			Digit:      'f',
			RunLength:  1,
		},
		Stats: types.RoundStats{Attempts: 2000, Elapsed: 2 * time.Second},
	}

	c.Found(1, 3, rec)
	c.Saved("out.txt")
	c.Continuing(1, 3)

	out := buf.String()
	assert.Contains(t, out, "Found address #1")
	assert.Contains(t, out, "0x7e5f4552091a69125d5dfcb7b8c2659029395bdf")
	assert.Contains(t, out, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf")
	assert.Contains(t, out, "'f' x 1")
	assert.Contains(t, out, "Average speed: 1000 attempts/s")
	assert.Contains(t, out, "Saved to: out.txt")
	assert.Contains(t, out, "(1/3)")
}

func TestContinuingUnbounded(t *testing.T) {
	c, buf := newTestConsole()
	c.Continuing(5, 0)
	assert.Contains(t, buf.String(), "(5/∞)")
}

func TestFailures(t *testing.T) {
	c, buf := newTestConsole()

	c.SaveFailed("out.txt", errors.New("disk full"))
	c.NotFound(types.RoundStats{Attempts: 12000})
	c.Interrupted(types.RoundStats{Attempts: 7})

	out := buf.String()
	assert.Contains(t, out, "Saving to out.txt failed: disk full")
	assert.Contains(t, out, "No matching address found after 12,000 attempts")
	assert.Contains(t, out, "Interrupted after 7 attempts")
}

func TestSummary(t *testing.T) {
	c, buf := newTestConsole()

	c.Summary(types.SessionTotals{}, "out.txt")
	assert.Empty(t, buf.String(), "no summary without matches")

	c.Summary(types.SessionTotals{Found: 2, Attempts: 5000, Elapsed: 1500 * time.Millisecond}, "out.txt")
	out := buf.String()
	assert.Contains(t, out, "Addresses found: 2")
	assert.Contains(t, out, "Total attempts: 5,000")
	assert.Contains(t, out, "Total time: 1.50 s")
	assert.Contains(t, out, "out.txt")
}

func TestWarning(t *testing.T) {
	c, buf := newTestConsole()
	c.Warning("slow")
	assert.Contains(t, buf.String(), "slow")
}
