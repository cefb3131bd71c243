// Package format renders counts, rates and durations for humans.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Number formats n with thousands separators, e.g. 1234567 -> "1,234,567"
func Number(n uint64) string {
	return printer.Sprintf("%d", n)
}

// ParseNumber reverses Number
func ParseNumber(s string) (uint64, error) {
	return strconv.ParseUint(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 10, 64)
}

// Rate formats an attempts-per-second figure without decimals
func Rate(rate float64) string {
	return fmt.Sprintf("%.0f", rate)
}

// Seconds formats a duration as seconds with two decimals
func Seconds(d time.Duration) string {
	return fmt.Sprintf("%.2f", d.Seconds())
}

// HashRate formats a rate with a K/M suffix
func HashRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}
