package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders d in the largest unit below it: whole
// nanoseconds, microseconds or milliseconds under a second, and
// time.Duration notation rounded to the millisecond above.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}
