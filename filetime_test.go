package perflog_reader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileTimeToTime(t *testing.T) {
	stamp, err := fileTimeToTime(0)
	require.NoError(t, err)
	require.Equal(t, time.Date(1601, time.January, 1, 0, 0, 0, 0, time.UTC), stamp)

	stamp, err = fileTimeToTime(10_000_000)
	require.NoError(t, err)
	require.Equal(t, time.Date(1601, time.January, 1, 0, 0, 1, 0, time.UTC), stamp)

	// One tick is 100ns.
	stamp, err = fileTimeToTime(1)
	require.NoError(t, err)
	require.Equal(t, time.Date(1601, time.January, 1, 0, 0, 0, 100, time.UTC), stamp)

	// Tick count of the Unix epoch.
	stamp, err = fileTimeToTime(116444736000000000)
	require.NoError(t, err)
	require.Equal(t, time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC), stamp)
}

func TestFileTimeToTimeMonotonic(t *testing.T) {
	ticks := []int64{0, 1, 9_999_999, 10_000_000, 116444736000000000, 133528000000000000}
	previous := time.Time{}
	for _, tick := range ticks {
		stamp, err := fileTimeToTime(tick)
		require.NoError(t, err)
		require.True(t, stamp.After(previous), "expected %v after %v for tick %d", stamp, previous, tick)
		previous = stamp
	}
}

func TestFileTimeToTimeNegative(t *testing.T) {
	_, err := fileTimeToTime(-1)
	require.ErrorIs(t, err, errNegativeFileTime)
}
