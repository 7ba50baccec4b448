package perflog_reader

import (
	"errors"
	"unicode/utf16"
)

var (
	errTruncatedMultiString = errors.New("multi-string buffer not null terminated")
	errInvalidUTF16         = errors.New("invalid UTF-16 in multi-string buffer")
)

// utf16BufferToStrings decodes a packed list of NUL-terminated UTF-16 strings
// as returned by the PDH enumeration calls. The buffer must have exactly the
// length the producing call reported: every string followed by a NUL, plus
// one extra terminating NUL (an empty list is a single NUL). The empty-string
// artifacts of that terminator are dropped.
func utf16BufferToStrings(buf []uint16) ([]string, error) {
	if len(buf) == 0 || buf[len(buf)-1] != 0 {
		return nil, errTruncatedMultiString
	}
	if len(buf) > 1 && buf[len(buf)-2] != 0 {
		// A non-empty list always carries the double-NUL terminator.
		return nil, errTruncatedMultiString
	}
	if err := validateUTF16(buf); err != nil {
		return nil, err
	}

	parts := make([]string, 0)
	start := 0
	for i, c := range buf {
		if c == 0 {
			parts = append(parts, string(utf16.Decode(buf[start:i])))
			start = i + 1
		}
	}
	// The segment before the terminating NUL is an artifact, not a string.
	return parts[:len(parts)-1], nil
}

// validateUTF16 rejects unpaired surrogates, which utf16.Decode would
// silently turn into replacement runes.
func validateUTF16(buf []uint16) error {
	for i := 0; i < len(buf); i++ {
		c := buf[i]
		switch {
		case c >= 0xD800 && c <= 0xDBFF:
			if i+1 >= len(buf) || buf[i+1] < 0xDC00 || buf[i+1] > 0xDFFF {
				return errInvalidUTF16
			}
			i++
		case c >= 0xDC00 && c <= 0xDFFF:
			return errInvalidUTF16
		}
	}
	return nil
}
