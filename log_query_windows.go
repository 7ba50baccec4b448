//go:build windows

package perflog_reader

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// logQueryImpl is the implementation of the logQuery interface which calls
// pdh.dll functions against a bound log data source.
type logQueryImpl struct {
	maxBufferSize uint32
	logHandle     pdhLogHandle
	queryHandle   pdhQueryHandle
}

type logQueryCreatorImpl struct{}

func (logQueryCreatorImpl) newLogQuery(maxBufferSize uint32) logQuery {
	return &logQueryImpl{maxBufferSize: maxBufferSize}
}

func defaultQueryCreator() logQueryCreator {
	return &logQueryCreatorImpl{}
}

// bind opens the given log files read-only as one logical data source
// spanning their combined time range.
func (m *logQueryImpl) bind(files []string) error {
	if len(files) == 0 {
		return errNoLogFiles
	}
	if m.logHandle != 0 {
		if err := m.close(); err != nil {
			return err
		}
	}

	fileList := make([]uint16, 0, 64)
	for _, file := range files {
		encoded, err := windows.UTF16FromString(file)
		if err != nil {
			return fmt.Errorf("encoding path %q: %w", file, err)
		}
		// UTF16FromString appends the separating NUL.
		fileList = append(fileList, encoded...)
	}
	fileList = append(fileList, 0)

	var handle pdhLogHandle
	if ret := pdhBindInputDataSource(&handle, &fileList[0]); ret != errorSuccess {
		return newPdhError(ret)
	}
	m.logHandle = handle
	return nil
}

// close releases the bound data source, and any query still open on it first.
func (m *logQueryImpl) close() error {
	if m.logHandle == 0 {
		return errUnboundLogSource
	}
	if m.queryHandle != 0 {
		if err := m.closeQuery(); err != nil {
			return err
		}
	}
	if ret := pdhCloseLog(m.logHandle); ret != errorSuccess {
		return newPdhError(ret)
	}
	m.logHandle = 0
	return nil
}

// sizeBuffer checks a first-phase reported length against the configured cap
// and allocates the destination for the fill call.
func (m *logQueryImpl) sizeBuffer(length uint32) ([]uint16, error) {
	if length > m.maxBufferSize {
		return nil, errBufferLimitReached
	}
	return make([]uint16, length), nil
}

func (m *logQueryImpl) enumMachines() ([]string, error) {
	if m.logHandle == 0 {
		return nil, errUnboundLogSource
	}

	var bufLen uint32
	if ret := pdhEnumMachinesH(m.logHandle, nil, &bufLen); ret != pdhMoreData {
		return nil, fmt.Errorf("sizing machine list: %w", newPdhError(ret))
	}
	buf, err := m.sizeBuffer(bufLen)
	if err != nil {
		return nil, err
	}
	if ret := pdhEnumMachinesH(m.logHandle, &buf[0], &bufLen); ret != errorSuccess {
		return nil, newPdhError(ret)
	}
	return utf16BufferToStrings(buf[:bufLen])
}

func (m *logQueryImpl) enumObjects(machine string) ([]string, error) {
	if m.logHandle == 0 {
		return nil, errUnboundLogSource
	}
	machineName, err := windows.UTF16PtrFromString(machine)
	if err != nil {
		return nil, fmt.Errorf("encoding machine name %q: %w", machine, err)
	}

	var bufLen uint32
	if ret := pdhEnumObjectsH(m.logHandle, machineName, nil, &bufLen); ret != pdhMoreData {
		return nil, fmt.Errorf("sizing object list: %w", newPdhError(ret))
	}
	buf, err := m.sizeBuffer(bufLen)
	if err != nil {
		return nil, err
	}
	if ret := pdhEnumObjectsH(m.logHandle, machineName, &buf[0], &bufLen); ret != errorSuccess {
		return nil, newPdhError(ret)
	}
	return utf16BufferToStrings(buf[:bufLen])
}

func (m *logQueryImpl) enumObjectItems(machine, object string) ([]string, []string, error) {
	if m.logHandle == 0 {
		return nil, nil, errUnboundLogSource
	}
	machineName, err := windows.UTF16PtrFromString(machine)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding machine name %q: %w", machine, err)
	}
	objectName, err := windows.UTF16PtrFromString(object)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding object name %q: %w", object, err)
	}

	// The counter and instance lists are sized independently by one call.
	var counterLen, instanceLen uint32
	ret := pdhEnumObjectItemsH(m.logHandle, machineName, objectName,
		nil, &counterLen, nil, &instanceLen)
	if ret == pdhCstatusNoObject {
		// Log files can carry invalid object names.
		return nil, nil, newPdhError(ret)
	}
	if ret != pdhMoreData {
		return nil, nil, fmt.Errorf("sizing item lists: %w", newPdhError(ret))
	}

	counterBuf, err := m.sizeBuffer(counterLen)
	if err != nil {
		return nil, nil, err
	}
	instanceBuf, err := m.sizeBuffer(instanceLen)
	if err != nil {
		return nil, nil, err
	}
	var counterPtr, instancePtr *uint16
	if len(counterBuf) > 0 {
		counterPtr = &counterBuf[0]
	}
	if len(instanceBuf) > 0 {
		instancePtr = &instanceBuf[0]
	}
	ret = pdhEnumObjectItemsH(m.logHandle, machineName, objectName,
		counterPtr, &counterLen, instancePtr, &instanceLen)
	if ret != errorSuccess {
		return nil, nil, newPdhError(ret)
	}

	var counters []string
	if counterLen > 0 {
		if counters, err = utf16BufferToStrings(counterBuf[:counterLen]); err != nil {
			return nil, nil, err
		}
	}
	var instances []string
	if instanceLen > 0 {
		// Singleton objects report a zero-length instance list.
		if instances, err = utf16BufferToStrings(instanceBuf[:instanceLen]); err != nil {
			return nil, nil, err
		}
	}
	return counters, instances, nil
}

func (m *logQueryImpl) timeRange() (logTimeSpan, error) {
	if m.logHandle == 0 {
		return logTimeSpan{}, errUnboundLogSource
	}

	var numEntries uint32
	var info pdhTimeInfo
	bufSize := uint32(unsafe.Sizeof(info))
	if ret := pdhGetDataSourceTimeRangeH(m.logHandle, &numEntries, &info, &bufSize); ret != errorSuccess {
		return logTimeSpan{}, newPdhError(ret)
	}

	start, err := fileTimeToTime(info.StartTime)
	if err != nil {
		return logTimeSpan{}, fmt.Errorf("converting start time: %w", err)
	}
	end, err := fileTimeToTime(info.EndTime)
	if err != nil {
		return logTimeSpan{}, fmt.Errorf("converting end time: %w", err)
	}
	return logTimeSpan{start: start, end: end, sampleCount: info.SampleCount}, nil
}

// openQuery creates a query scoped to the bound data source. It is used for
// subsequent calls adding counters and collecting their values.
func (m *logQueryImpl) openQuery() error {
	if m.logHandle == 0 {
		return errUnboundLogSource
	}
	if m.queryHandle != 0 {
		if err := m.closeQuery(); err != nil {
			return err
		}
	}
	var handle pdhQueryHandle
	if ret := pdhOpenQueryH(m.logHandle, 0, &handle); ret != errorSuccess {
		return newPdhError(ret)
	}
	m.queryHandle = handle
	return nil
}

// closeQuery closes the query and releases the associated counter handles.
func (m *logQueryImpl) closeQuery() error {
	if m.queryHandle == 0 {
		return errUninitializedQuery
	}
	if ret := pdhCloseQuery(m.queryHandle); ret != errorSuccess {
		return newPdhError(ret)
	}
	m.queryHandle = 0
	return nil
}

func (m *logQueryImpl) addCounterToQuery(counterPath string) (pdhCounterHandle, error) {
	if m.queryHandle == 0 {
		return 0, errUninitializedQuery
	}
	var counterHandle pdhCounterHandle
	if ret := pdhAddCounter(m.queryHandle, counterPath, 0, &counterHandle); ret != errorSuccess {
		return 0, newPdhError(ret)
	}
	return counterHandle, nil
}

// collectWithTime advances the log cursor by one step and returns the
// timestamp of the step just consumed. Exhaustion of the bound log surfaces
// as PDH_NO_MORE_DATA.
func (m *logQueryImpl) collectWithTime() (time.Time, error) {
	if m.queryHandle == 0 {
		return time.Time{}, errUninitializedQuery
	}
	ret, stamp := pdhCollectQueryDataWithTime(m.queryHandle)
	if ret != errorSuccess {
		return time.Time{}, newPdhError(ret)
	}
	return stamp, nil
}

// formattedValue computes a displayable value for the counter in the
// requested representation. The CStatus carried inside the value is checked
// independently of the call's own return status.
func (m *logQueryImpl) formattedValue(hCounter pdhCounterHandle, format valueFormat) (interface{}, error) {
	if m.queryHandle == 0 {
		return nil, errUninitializedQuery
	}

	var counterType uint32
	switch format {
	case formatLarge:
		var value pdhFmtCountervalueLarge
		if ret := pdhGetFormattedCounterValue(hCounter, format, &counterType, unsafe.Pointer(&value)); ret != errorSuccess {
			return nil, newPdhError(ret)
		}
		if value.CStatus != pdhCstatusValidData && value.CStatus != pdhCstatusNewData {
			return nil, newPdhValueError(value.CStatus)
		}
		return value.LargeValue, nil
	case formatLong:
		var value pdhFmtCountervalueLong
		if ret := pdhGetFormattedCounterValue(hCounter, format, &counterType, unsafe.Pointer(&value)); ret != errorSuccess {
			return nil, newPdhError(ret)
		}
		if value.CStatus != pdhCstatusValidData && value.CStatus != pdhCstatusNewData {
			return nil, newPdhValueError(value.CStatus)
		}
		return value.LongValue, nil
	case formatDouble:
		var value pdhFmtCountervalueDouble
		if ret := pdhGetFormattedCounterValue(hCounter, format, &counterType, unsafe.Pointer(&value)); ret != errorSuccess {
			return nil, newPdhError(ret)
		}
		if value.CStatus != pdhCstatusValidData && value.CStatus != pdhCstatusNewData {
			return nil, newPdhValueError(value.CStatus)
		}
		return value.DoubleValue, nil
	default:
		return nil, fmt.Errorf("unsupported value format %#x", uint32(format))
	}
}
