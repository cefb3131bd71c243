// Package console prints search progress and results for a terminal user.
package console

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/screa/eth-vanity/internal/config"
	"github.com/screa/eth-vanity/internal/crypto"
	"github.com/screa/eth-vanity/internal/format"
	"github.com/screa/eth-vanity/pkg/miner"
	"github.com/screa/eth-vanity/pkg/types"
)

var _ miner.Reporter = (*Console)(nil)

// Console writes coloured, emoji-prefixed status lines
type Console struct {
	out io.Writer

	title *color.Color
	info  *color.Color
	good  *color.Color
	warn  *color.Color
	bad   *color.Color
	key   *color.Color
}

// New creates a console writing to out
func New(out io.Writer, noColor bool) *Console {
	c := &Console{
		out:   out,
		title: color.New(color.FgCyan, color.Bold),
		info:  color.New(color.FgCyan),
		good:  color.New(color.FgGreen, color.Bold),
		warn:  color.New(color.FgYellow),
		bad:   color.New(color.FgRed, color.Bold),
		key:   color.New(color.FgMagenta),
	}

	if noColor {
		for _, col := range []*color.Color{c.title, c.info, c.good, c.warn, c.bad, c.key} {
			col.DisableColor()
		}
	}
	return c
}

// Banner prints the search configuration
func (c *Console) Banner(cfg *config.Config) {
	c.title.Fprintln(c.out, "🚀 Ethereum vanity address miner")
	fmt.Fprintf(c.out, "📋 Target: %s\n", cfg.GetTargetDescription())
	fmt.Fprintf(c.out, "🧵 Workers: %d\n", cfg.Workers)
	fmt.Fprintf(c.out, "📦 Batch size: %s\n", format.Number(uint64(cfg.BatchSize)))
	fmt.Fprintf(c.out, "📁 Output file: %s\n", cfg.Output)
	if cfg.Unbounded() {
		fmt.Fprintln(c.out, "🔄 Mode: unlimited")
	} else {
		fmt.Fprintf(c.out, "🔄 Mode: %d addresses\n", cfg.Count)
	}
	fmt.Fprintln(c.out)
}

// Warning prints an advisory message
func (c *Console) Warning(msg string) {
	c.warn.Fprintf(c.out, "⚠️  %s\n", msg)
}

// Progress prints the running attempt count and speed of a round
func (c *Console) Progress(p types.Progress) {
	c.info.Fprintf(c.out, "📊 Attempts: %s | Speed: %s attempts/s (%s)\n",
		format.Number(p.Attempts), format.Rate(p.Rate), format.HashRate(p.Rate))
}

// Found prints the block describing a newly found address
func (c *Console) Found(n, _ int, rec types.Record) {
	m := rec.Match

	fmt.Fprintln(c.out)
	c.good.Fprintf(c.out, "🎉 Found address #%d!\n", n)
	fmt.Fprintf(c.out, "📍 Address: %s\n", c.good.Sprint(m.PrefixedAddress()))
	fmt.Fprintf(c.out, "✅ Checksum: %s\n", crypto.ChecksumAddress(m.Address))
	fmt.Fprintf(c.out, "🔢 Repeated: '%c' x %d\n", m.Digit, m.RunLength)
	fmt.Fprintf(c.out, "🔑 Private key: %s\n", c.key.Sprint(m.PrivateKey))
	fmt.Fprintf(c.out, "⏱️  Elapsed: %s s\n", format.Seconds(rec.Stats.Elapsed))
	fmt.Fprintf(c.out, "🔢 Attempts: %s\n", format.Number(rec.Stats.Attempts))
	fmt.Fprintf(c.out, "⚡ Average speed: %s attempts/s\n", format.Rate(rec.Stats.Rate()))
}

// Saved confirms that a record reached the output file
func (c *Console) Saved(path string) {
	fmt.Fprintf(c.out, "💾 Saved to: %s\n", path)
	c.keepSecret()
}

// SaveFailed reports that a record could not be written
func (c *Console) SaveFailed(path string, err error) {
	c.bad.Fprintf(c.out, "❌ Saving to %s failed: %v\n", path, err)
	c.keepSecret()
}

func (c *Console) keepSecret() {
	fmt.Fprintln(c.out)
	c.warn.Fprintln(c.out, "⚠️  Keep the private key safe and never share it!")
}

// Continuing announces the next round
func (c *Console) Continuing(n, target int) {
	goal := "∞"
	if target > 0 {
		goal = strconv.Itoa(target)
	}
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "🔄 Searching for the next address... (%d/%s)\n", n, goal)
	fmt.Fprintln(c.out)
}

// NotFound reports a round that ended without a match
func (c *Console) NotFound(stats types.RoundStats) {
	c.bad.Fprintf(c.out, "❌ No matching address found after %s attempts\n", format.Number(stats.Attempts))
}

// Interrupted reports a round cut short by the user
func (c *Console) Interrupted(stats types.RoundStats) {
	fmt.Fprintln(c.out)
	c.warn.Fprintf(c.out, "⚠️  Interrupted after %s attempts in this round\n", format.Number(stats.Attempts))
}

// Summary prints session totals, or nothing if no address was found
func (c *Console) Summary(totals types.SessionTotals, path string) {
	if totals.Found == 0 {
		return
	}
	fmt.Fprintln(c.out)
	c.title.Fprintln(c.out, "🏁 Done!")
	fmt.Fprintf(c.out, "📊 Addresses found: %d\n", totals.Found)
	fmt.Fprintf(c.out, "🔢 Total attempts: %s\n", format.Number(totals.Attempts))
	fmt.Fprintf(c.out, "⏱️  Total time: %s s\n", format.Seconds(totals.Elapsed))
	fmt.Fprintf(c.out, "📁 All results saved to: %s\n", path)
}
