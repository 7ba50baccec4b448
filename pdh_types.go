//go:build windows

package perflog_reader

// pdhFmtCountervalueDouble is a union specialization for double values
type pdhFmtCountervalueDouble struct {
	CStatus     uint32
	padding     [4]byte //nolint:unused // Memory reservation
	DoubleValue float64
}

// pdhFmtCountervalueLarge is a union specialization for 64 bit integer values
type pdhFmtCountervalueLarge struct {
	CStatus    uint32
	padding    [4]byte //nolint:unused // Memory reservation
	LargeValue int64
}

// pdhTimeInfo is the time span and sample count reported for a bound log
// data source. Times are 100ns ticks since 1601-01-01 UTC.
type pdhTimeInfo struct {
	StartTime   int64
	EndTime     int64
	SampleCount uint32
}
