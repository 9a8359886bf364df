// Package clock converts wall-clock "HH:MM" strings to minute offsets
// from midnight.
package clock

import "fmt"

// MinutesPerDay is 24 hours * 60 minutes.
const MinutesPerDay = 24 * 60

// ParseClock converts "HH:MM" (24-hour) to minutes since midnight.
// ok is false for malformed input (wrong length, missing colon,
// non-numeric parts); mins is 0 in that case so a single bad record
// degrades to the start of day instead of failing the whole layout.
// Hours are not wrapped past 24:00; callers needing multi-day spans
// must pre-split.
func ParseClock(s string) (mins int, ok bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	if !isDigit(s[0]) || !isDigit(s[1]) || !isDigit(s[3]) || !isDigit(s[4]) {
		return 0, false
	}
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if m > 59 {
		return 0, false
	}
	return hours*60 + m, true
}

// FormatClock converts minutes since midnight to "HH:MM" format,
// clamping to the [00:00, 23:59] range.
func FormatClock(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
