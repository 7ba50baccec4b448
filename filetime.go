package perflog_reader

import (
	"errors"
	"time"
)

// Offset between the FILETIME epoch (1601-01-01T00:00:00 UTC) and the Unix
// epoch, in seconds and in 100ns ticks.
const (
	filetimeEpochDeltaSeconds = int64(11644473600)
	ticksPerSecond            = int64(10_000_000)
)

var errNegativeFileTime = errors.New("negative filetime tick count")

// fileTimeToTime converts a count of 100-nanosecond intervals since
// 1601-01-01 UTC into a time.Time. The span since 1601 overflows
// time.Duration, so the conversion goes through Unix seconds. Valid logs
// never carry negative counts; they are rejected rather than wrapped.
func fileTimeToTime(ticks int64) (time.Time, error) {
	if ticks < 0 {
		return time.Time{}, errNegativeFileTime
	}
	secs := ticks/ticksPerSecond - filetimeEpochDeltaSeconds
	nanos := (ticks % ticksPerSecond) * 100
	return time.Unix(secs, nanos).UTC(), nil
}
