//go:build windows

package perflog_reader

// pdhFmtCountervalueLong is a union specialization for long values. The
// value union is 8-aligned on amd64, so the payload sits after the padding.
type pdhFmtCountervalueLong struct {
	CStatus   uint32
	padding   [4]byte //nolint:unused // Memory reservation
	LongValue int32
}
