package perflog_reader

import (
	"fmt"
	"time"
)

// CounterSample is one formatted value captured at one cursor step. Value is
// int32, int64 or float64 depending on the format requested for the read;
// the default read format is the 64-bit integer.
type CounterSample struct {
	Timestamp time.Time
	Value     interface{}
}

// CounterSeries maps a fully-qualified counter path to its samples in capture
// order. Every successfully registered path has an entry, even when the log
// held no samples for it.
type CounterSeries map[string][]CounterSample

// Read extracts one formatted value per counter per cursor step for every
// given counter path. Registration aborts on the first bad path. Steps where
// a counter has no usable sample leave a gap in its series; the read only
// fails on statuses outside the documented data-error set.
func (m *PerfLogReader) Read(counterPaths []string) (CounterSeries, error) {
	if m.query == nil {
		return nil, errUnboundLogSource
	}

	if err := m.query.openQuery(); err != nil {
		return nil, fmt.Errorf("opening query on log source: %w", err)
	}
	defer func() {
		if err := m.query.closeQuery(); err != nil {
			m.Log.Warnf("Closing query: %v", err)
		}
	}()

	handles := make(map[string]pdhCounterHandle, len(counterPaths))
	series := make(CounterSeries, len(counterPaths))
	for _, path := range counterPaths {
		if _, _, _, _, err := extractCounterInfoFromCounterPath(path); err != nil {
			return nil, err
		}
		counterHandle, err := m.query.addCounterToQuery(path)
		if err != nil {
			return nil, fmt.Errorf("adding counter %q: %w", path, err)
		}
		handles[path] = counterHandle
		series[path] = nil
		if m.PrintValid {
			m.Log.Infof("Valid: %s", path)
		}
	}

	for {
		timestamp, err := m.query.collectWithTime()
		if err != nil {
			if isLogExhausted(err) {
				break
			}
			return nil, fmt.Errorf("advancing log cursor: %w", err)
		}

		for path, counterHandle := range handles {
			value, err := m.query.formattedValue(counterHandle, m.format)
			if err != nil {
				if isKnownCounterDataError(err) || isValueStatusError(err) {
					m.Log.Debugf("No sample for %q at %v: %v", path, timestamp, err)
					continue
				}
				if m.checkError(err) == nil {
					m.Log.Warnf("Ignoring error for %q at %v: %v", path, timestamp, err)
					continue
				}
				return nil, fmt.Errorf("formatting value of %q: %w", path, err)
			}
			series[path] = append(series[path], CounterSample{Timestamp: timestamp, Value: value})
		}
	}

	return series, nil
}
