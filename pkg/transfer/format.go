package transfer

import (
	"fmt"
	"strings"
	"time"
)

// UnitStyle selects the unit prefixes used when rendering byte counts.
// The style is resolved at format time, so the same snapshot can be
// rendered either way.
type UnitStyle int

const (
	// Decimal renders powers-of-1000 prefixes (kB, MB, GB, TB).
	Decimal UnitStyle = iota
	// Binary renders powers-of-1024 prefixes (KiB, MiB, GiB, TiB).
	Binary
)

var (
	decimalUnits = []string{"kB", "MB", "GB", "TB"}
	binaryUnits  = []string{"KiB", "MiB", "GiB", "TiB"}
)

// Format renders the snapshot as a single human-readable line:
//
//	1.25 GiB | 98.43 MiB/s | 12.5% | ETA: 1m 52s
//
// Percent appears only when the expected total is known, and the ETA only
// when a speed is available on top of that.
func (s Snapshot) Format(style UnitStyle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s | %s/s", FormatBytes(s.BytesRead, style), FormatBytes(int64(s.Speed), style))
	if s.Total > 0 {
		fmt.Fprintf(&b, " | %.1f%%", s.Percent*100)
		if s.HasETA {
			fmt.Fprintf(&b, " | ETA: %s", FormatDuration(s.ETA))
		}
	}
	return b.String()
}

// FormatBytes formats a byte count using the largest prefix whose rendered
// magnitude is at least 1. Counts below the smallest prefix render as
// integer bytes.
func FormatBytes(b int64, style UnitStyle) string {
	base := float64(1000)
	units := decimalUnits
	if style == Binary {
		base = 1024
		units = binaryUnits
	}

	value := float64(b)
	if value < base {
		return fmt.Sprintf("%d B", b)
	}
	value /= base
	for i := 0; ; i++ {
		if value < base || i == len(units)-1 {
			return fmt.Sprintf("%.2f %s", value, units[i])
		}
		value /= base
	}
}

// FormatDuration formats a duration as a human-readable string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

// byteSuffixes maps size suffixes to multipliers, longest first so that
// "KiB" is not consumed as "B".
var byteSuffixes = []struct {
	suffix     string
	multiplier int64
}{
	{"TiB", 1 << 40},
	{"GiB", 1 << 30},
	{"MiB", 1 << 20},
	{"KiB", 1 << 10},
	{"TB", 1000 * 1000 * 1000 * 1000},
	{"GB", 1000 * 1000 * 1000},
	{"MB", 1000 * 1000},
	{"kB", 1000},
	{"KB", 1000},
	{"B", 1},
}

// ParseBytes parses a human-readable byte string such as "64KiB" or
// "1.5MB". Binary suffixes are powers of 1024, decimal suffixes powers
// of 1000. A bare number is taken as bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)

	var multiplier int64 = 1
	for _, bs := range byteSuffixes {
		if strings.HasSuffix(s, bs.suffix) {
			multiplier = bs.multiplier
			s = strings.TrimSpace(s[:len(s)-len(bs.suffix)])
			break
		}
	}

	var value float64
	if _, err := fmt.Sscanf(s, "%f", &value); err != nil {
		return 0, fmt.Errorf("invalid byte string: %q", s)
	}

	return int64(value * float64(multiplier)), nil
}
