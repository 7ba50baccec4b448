package perflog_reader

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"
)

// encodeMultiString packs strings the way the PDH enumeration calls return
// them: each NUL-terminated, with one extra terminating NUL.
func encodeMultiString(strings ...string) []uint16 {
	var buf []uint16
	for _, s := range strings {
		buf = append(buf, utf16.Encode([]rune(s))...)
		buf = append(buf, 0)
	}
	return append(buf, 0)
}

func TestUTF16BufferToStrings(t *testing.T) {
	decoded, err := utf16BufferToStrings(encodeMultiString("Processor", "Memory", "System"))
	require.NoError(t, err)
	require.Equal(t, []string{"Processor", "Memory", "System"}, decoded)

	decoded, err = utf16BufferToStrings(encodeMultiString("% Processor Time"))
	require.NoError(t, err)
	require.Equal(t, []string{"% Processor Time"}, decoded)

	decoded, err = utf16BufferToStrings(encodeMultiString())
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestUTF16BufferToStringsNonASCII(t *testing.T) {
	decoded, err := utf16BufferToStrings(encodeMultiString("Prozessorzeit (%)", "メモリ", "𝒞ounters"))
	require.NoError(t, err)
	require.Equal(t, []string{"Prozessorzeit (%)", "メモリ", "𝒞ounters"}, decoded)
}

func TestUTF16BufferToStringsTruncated(t *testing.T) {
	full := encodeMultiString("Processor", "Memory")

	_, err := utf16BufferToStrings(full[:len(full)-1])
	require.ErrorIs(t, err, errTruncatedMultiString)

	_, err = utf16BufferToStrings(full[:len(full)-3])
	require.ErrorIs(t, err, errTruncatedMultiString)

	_, err = utf16BufferToStrings(nil)
	require.ErrorIs(t, err, errTruncatedMultiString)
}

func TestUTF16BufferToStringsInvalidUTF16(t *testing.T) {
	// High surrogate with no low half.
	_, err := utf16BufferToStrings([]uint16{0xD83D, 'x', 0, 0})
	require.ErrorIs(t, err, errInvalidUTF16)

	// Stray low surrogate.
	_, err = utf16BufferToStrings([]uint16{'a', 0xDE00, 0, 0})
	require.ErrorIs(t, err, errInvalidUTF16)
}
