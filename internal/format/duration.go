package format

import (
	"strconv"
	"time"
)

// durationUnits lists the short-duration units from the finest up. A
// duration is printed in the first unit it does not reach the limit of.
var durationUnits = []struct {
	limit  time.Duration
	unit   time.Duration
	suffix string
}{
	{time.Millisecond, time.Microsecond, "µs"},
	{time.Second, time.Millisecond, "ms"},
}

// FormatExecutionDuration renders the time an enumeration took.
//
// Sub-second durations are truncated to a whole number of microseconds or
// milliseconds. Longer runs use time.Duration's own notation rounded to the
// millisecond, so a sieve over a large bound reads "1.234s" rather than
// "1.234567891s". Negative durations are reported as zero.
//
// Parameters:
//   - d: The measured duration.
//
// Returns:
//   - string: The duration with its unit suffix.
func FormatExecutionDuration(d time.Duration) string {
	d = max(d, 0)
	for _, u := range durationUnits {
		if d < u.limit {
			return strconv.FormatInt(int64(d/u.unit), 10) + u.suffix
		}
	}
	return d.Round(time.Millisecond).String()
}
