//go:build !windows

package perflog_reader

import (
	"errors"
	"time"
)

var errUnsupportedPlatform = errors.New("performance-log reading requires windows")

// logQueryStub stands in for the pdh-backed implementation on platforms
// without pdh.dll. Every operation fails; the portable pieces (decoder,
// timestamp conversion, walker, reader) stay testable through injected
// queries.
type logQueryStub struct{}

type logQueryStubCreator struct{}

func (logQueryStubCreator) newLogQuery(uint32) logQuery {
	return &logQueryStub{}
}

func defaultQueryCreator() logQueryCreator {
	return &logQueryStubCreator{}
}

func (*logQueryStub) bind([]string) error { return errUnsupportedPlatform }
func (*logQueryStub) close() error        { return errUnsupportedPlatform }

func (*logQueryStub) enumMachines() ([]string, error) {
	return nil, errUnsupportedPlatform
}

func (*logQueryStub) enumObjects(string) ([]string, error) {
	return nil, errUnsupportedPlatform
}

func (*logQueryStub) enumObjectItems(string, string) ([]string, []string, error) {
	return nil, nil, errUnsupportedPlatform
}

func (*logQueryStub) timeRange() (logTimeSpan, error) {
	return logTimeSpan{}, errUnsupportedPlatform
}

func (*logQueryStub) openQuery() error  { return errUnsupportedPlatform }
func (*logQueryStub) closeQuery() error { return errUnsupportedPlatform }

func (*logQueryStub) addCounterToQuery(string) (pdhCounterHandle, error) {
	return 0, errUnsupportedPlatform
}

func (*logQueryStub) collectWithTime() (time.Time, error) {
	return time.Time{}, errUnsupportedPlatform
}

func (*logQueryStub) formattedValue(pdhCounterHandle, valueFormat) (interface{}, error) {
	return nil, errUnsupportedPlatform
}
