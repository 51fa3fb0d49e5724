package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Bytes formats n with IEC units, e.g. "1.5 GiB".
func Bytes(n uint64) string {
	return humanize.IBytes(n)
}

// Count formats n with thousands separators.
func Count(n int64) string {
	return humanize.Comma(n)
}

// Percent formats a percentage with one decimal, e.g. "42.3%".
func Percent(v float64) string {
	if math.IsNaN(v) {
		return "--"
	}
	return fmt.Sprintf("%.1f%%", v)
}

// Delta formats the change between two percentages with a direction
// marker: "▲1.2", "▼0.4", or "=" when the change rounds to zero.
func Delta(prev, cur float64) string {
	d := math.Round((cur-prev)*10) / 10
	switch {
	case d > 0:
		return fmt.Sprintf("▲%.1f", d)
	case d < 0:
		return fmt.Sprintf("▼%.1f", -d)
	default:
		return "="
	}
}

// Uptime renders d as "1d 2h 3m 4s", omitting zero units. Durations
// under one second render as "0s".
func Uptime(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	days, rem := total/86400, total%86400
	hours, rem := rem/3600, rem%3600
	minutes, secs := rem/60, rem%60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if secs > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", secs))
	}
	return strings.Join(parts, " ")
}

// Interval renders a refresh interval in seconds with one decimal.
func Interval(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
