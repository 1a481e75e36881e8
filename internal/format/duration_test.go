package format

import (
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0ns"},
		{500 * time.Nanosecond, "500ns"},
		{10 * time.Microsecond, "10µs"},
		{1500 * time.Microsecond, "1ms"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
		{1234567891 * time.Nanosecond, "1.235s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %s, want %s", tt.d, got, tt.want)
		}
	}
}
