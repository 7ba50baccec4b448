package perflog_reader

import (
	_ "embed"
	"fmt"
	"math"
)

//go:embed sample.conf
var sampleConfig string

// Size is an int64
type Size int64

var defaultMaxBufferSize = Size(100 * 1024 * 1024)

// PerfLogReader reads binary performance-counter log files: it binds them as
// one read-only data source, enumerates their catalog and extracts formatted
// counter values over time.
type PerfLogReader struct {
	// Files is the ordered list of log files bound as one logical source.
	Files []string `toml:"Files"`
	// CounterMatch selects counter paths by substring during ReadMatching.
	CounterMatch []string `toml:"CounterMatch"`
	// ValueFormat is the numeric representation requested for every sample:
	// "large" (64-bit integer, the default), "long" or "double".
	ValueFormat string `toml:"ValueFormat"`
	// PrintValid logs every successfully registered counter path.
	PrintValid bool `toml:"PrintValid"`
	// IgnoredErrors lists PDH status names to ignore during value formatting.
	IgnoredErrors []string `toml:"IgnoredErrors"`
	// MaxBufferSize caps the buffers allocated for enumeration results.
	MaxBufferSize Size `toml:"MaxBufferSize"`
	// Log is the logger.
	Log Logger `toml:"-"`

	format       valueFormat
	queryCreator logQueryCreator
	query        logQuery
}

func NewPerfLogReader(files ...string) *PerfLogReader {
	return &PerfLogReader{
		Files:         files,
		MaxBufferSize: defaultMaxBufferSize,
		queryCreator:  defaultQueryCreator(),
	}
}

func (*PerfLogReader) SampleConfig() string {
	return sampleConfig
}

func (m *PerfLogReader) Init() error {
	// Check the buffer size
	if m.MaxBufferSize < Size(initialBufferSize) {
		return fmt.Errorf("maximum buffer size should at least be %d", initialBufferSize)
	}
	if m.MaxBufferSize > math.MaxUint32 {
		return fmt.Errorf("maximum buffer size should be smaller than %d", uint32(math.MaxUint32))
	}

	switch m.ValueFormat {
	case "", "large":
		m.format = formatLarge
	case "long":
		m.format = formatLong
	case "double":
		m.format = formatDouble
	default:
		return fmt.Errorf("unknown value format %q", m.ValueFormat)
	}

	if m.queryCreator == nil {
		m.queryCreator = defaultQueryCreator()
	}
	return nil
}

// Open binds the configured files as one read-only data source. The handle
// must be released with Close exactly once, on error paths included.
func (m *PerfLogReader) Open() error {
	if len(m.Files) == 0 {
		return errNoLogFiles
	}
	if m.query != nil {
		if err := m.Close(); err != nil {
			return err
		}
	}
	query := m.queryCreator.newLogQuery(uint32(m.MaxBufferSize))
	if err := query.bind(m.Files); err != nil {
		return fmt.Errorf("binding %d log file(s): %w", len(m.Files), err)
	}
	m.query = query
	return nil
}

// Close releases the bound data source.
func (m *PerfLogReader) Close() error {
	if m.query == nil {
		return errUnboundLogSource
	}
	err := m.query.close()
	m.query = nil
	return err
}

// Discover walks the bound source and returns its catalog and time range.
func (m *PerfLogReader) Discover() (*PerfLogSummary, error) {
	if m.query == nil {
		return nil, errUnboundLogSource
	}
	return buildPerfLogSummary(m.query)
}

// ReadMatching discovers the catalog and reads every counter path matching
// the configured CounterMatch substrings.
func (m *PerfLogReader) ReadMatching() (CounterSeries, error) {
	summary, err := m.Discover()
	if err != nil {
		return nil, err
	}
	return m.Read(MatchCounterPaths(summary, m.CounterMatch))
}
