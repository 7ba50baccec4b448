// Go API over the pdh log data source syscalls
package perflog_reader

import (
	"errors"
	"time"
)

// Initial buffer size for return buffers
const initialBufferSize = uint32(1024) // 1kB

var (
	errBufferLimitReached = errors.New("buffer limit reached")
	errUninitializedQuery = errors.New("uninitialized query")
	errUnboundLogSource   = errors.New("log source not bound")
	errNoLogFiles         = errors.New("no log files given")
)

// Opaque native handles. They carry no behavior of their own and are never
// stored inside the summary data structures.
type (
	pdhLogHandle     uintptr
	pdhQueryHandle   uintptr
	pdhCounterHandle uintptr
)

// valueFormat selects the numeric representation requested from
// PdhGetFormattedCounterValue. One format is used for a whole read.
type valueFormat uint32

const (
	formatLong   = valueFormat(0x00000100) // PDH_FMT_LONG, int32
	formatDouble = valueFormat(0x00000200) // PDH_FMT_DOUBLE, float64
	formatLarge  = valueFormat(0x00000400) // PDH_FMT_LARGE, int64
)

// logTimeSpan is the overall sample time range covered by a bound source.
// SampleCount is reported by the native call but not used further here.
type logTimeSpan struct {
	start       time.Time
	end         time.Time
	sampleCount uint32
}

// logQuery provides wrappers around the Windows performance-log query API.
// A value is bound to an ordered list of log files and then serves catalog
// enumeration, time-range resolution and counter-value collection.
type logQuery interface {
	bind(files []string) error
	close() error
	enumMachines() ([]string, error)
	enumObjects(machine string) ([]string, error)
	enumObjectItems(machine, object string) (counters, instances []string, err error)
	timeRange() (logTimeSpan, error)
	openQuery() error
	closeQuery() error
	addCounterToQuery(counterPath string) (pdhCounterHandle, error)
	collectWithTime() (time.Time, error)
	formattedValue(hCounter pdhCounterHandle, format valueFormat) (interface{}, error)
}

type logQueryCreator interface {
	newLogQuery(maxBufferSize uint32) logQuery
}
