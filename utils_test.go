package perflog_reader

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractCounterInfoFromCounterPath(t *testing.T) {
	machine, object, instance, counter, err := extractCounterInfoFromCounterPath(`\\HOST-A\Processor(_Total)\% Processor Time`)
	require.NoError(t, err)
	require.Equal(t, "HOST-A", machine)
	require.Equal(t, "Processor", object)
	require.Equal(t, "_Total", instance)
	require.Equal(t, "% Processor Time", counter)

	machine, object, instance, counter, err = extractCounterInfoFromCounterPath(`\\HOST-A\Memory\Available Bytes`)
	require.NoError(t, err)
	require.Equal(t, "HOST-A", machine)
	require.Equal(t, "Memory", object)
	require.Empty(t, instance)
	require.Equal(t, "Available Bytes", counter)

	// Machine part is optional.
	machine, object, instance, counter, err = extractCounterInfoFromCounterPath(`\Process(chrome#1)\Working Set`)
	require.NoError(t, err)
	require.Empty(t, machine)
	require.Equal(t, "Process", object)
	require.Equal(t, "chrome#1", instance)
	require.Equal(t, "Working Set", counter)
}

func TestExtractCounterInfoFromCounterPathMalformed(t *testing.T) {
	for _, path := range []string{
		"",
		"no backslashes",
		`\counter only`,
		`\\HOST-A\Processor(_Total\% Processor Time`,
	} {
		_, _, _, _, err := extractCounterInfoFromCounterPath(path)
		require.Error(t, err, "expected failure for %q", path)
	}
}

func TestFormatPathRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		machine, object, instance, counter string
	}{
		{"HOST-A", "Processor", "_Total", "% Processor Time"},
		{"HOST-A", "Memory", "", "Available Bytes"},
		{"", "System", "", "Threads"},
	} {
		path := formatPath(tc.machine, tc.object, tc.instance, tc.counter)
		machine, object, instance, counter, err := extractCounterInfoFromCounterPath(path)
		require.NoError(t, err)
		require.Equal(t, tc.machine, machine)
		require.Equal(t, tc.object, object)
		require.Equal(t, tc.instance, instance)
		require.Equal(t, tc.counter, counter)
	}
}

func TestErrorClassification(t *testing.T) {
	require.True(t, isNoSuchObject(newPdhError(pdhCstatusNoObject)))
	require.False(t, isNoSuchObject(newPdhError(pdhCstatusNoCounter)))

	require.True(t, isLogExhausted(newPdhError(pdhNoMoreData)))
	require.False(t, isLogExhausted(newPdhError(pdhEndOfLogFile)))

	require.True(t, isValueStatusError(newPdhValueError(pdhCstatusInvalidData)))
	require.False(t, isValueStatusError(newPdhError(pdhCstatusInvalidData)))

	require.True(t, isKnownCounterDataError(newPdhError(pdhInvalidData)))
	require.True(t, isKnownCounterDataError(newPdhError(pdhNoData)))
	require.False(t, isKnownCounterDataError(newPdhError(pdhInvalidHandle)))
	require.False(t, isKnownCounterDataError(errNoLogFiles))
}

func TestCheckErrorIgnoredErrors(t *testing.T) {
	reader := NewPerfLogReader("a.blg")
	reader.IgnoredErrors = []string{"PDH_ENTRY_NOT_IN_LOG_FILE"}

	require.NoError(t, reader.checkError(newPdhError(pdhEntryNotInLogFile)))
	require.Error(t, reader.checkError(newPdhError(pdhInvalidHandle)))
	require.Error(t, reader.checkError(errNoLogFiles))
}
