//go:build windows

package perflog_reader

// pdhFmtCountervalueLong is a union specialization for long values
type pdhFmtCountervalueLong struct {
	CStatus   uint32
	LongValue int32
	padding   [4]byte //nolint:unused // Memory reservation
}
