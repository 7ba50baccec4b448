package perflog_reader

import "fmt"

// PDH status codes, from pdh.h. Kept outside the windows build so that the
// error taxonomy is the same for fake log sources used in tests.
const (
	errorSuccess = uint32(0)

	pdhCstatusValidData = uint32(0x00000000)
	pdhCstatusNewData   = uint32(0x00000001)

	pdhCstatusNoMachine        = uint32(0x800007D0)
	pdhCstatusNoInstance       = uint32(0x800007D1)
	pdhMoreData                = uint32(0x800007D2)
	pdhCstatusItemNotValidated = uint32(0x800007D3)
	pdhRetry                   = uint32(0x800007D4)
	pdhNoData                  = uint32(0x800007D5)
	pdhCalcNegativeDenominator = uint32(0x800007D6)
	pdhCalcNegativeTimebase    = uint32(0x800007D7)
	pdhCalcNegativeValue       = uint32(0x800007D8)
	pdhEndOfLogFile            = uint32(0x800007DA)

	pdhCstatusNoObject         = uint32(0xC0000BB8)
	pdhCstatusNoCounter        = uint32(0xC0000BB9)
	pdhCstatusInvalidData      = uint32(0xC0000BBA)
	pdhMemoryAllocationFailure = uint32(0xC0000BBB)
	pdhInvalidHandle           = uint32(0xC0000BBC)
	pdhInvalidArgument         = uint32(0xC0000BBD)
	pdhCstatusBadCountername   = uint32(0xC0000BC0)
	pdhInvalidBuffer           = uint32(0xC0000BC1)
	pdhInsufficientBuffer      = uint32(0xC0000BC2)
	pdhCannotConnectMachine    = uint32(0xC0000BC3)
	pdhInvalidPath             = uint32(0xC0000BC4)
	pdhInvalidInstance         = uint32(0xC0000BC5)
	pdhInvalidData             = uint32(0xC0000BC6)
	pdhLogFileOpenError        = uint32(0xC0000BCA)
	pdhLogTypeNotFound         = uint32(0xC0000BCB)
	pdhNoMoreData              = uint32(0xC0000BCC)
	pdhEntryNotInLogFile       = uint32(0xC0000BCD)
	pdhDataSourceIsLogFile     = uint32(0xC0000BCE)
	pdhDataSourceIsRealTime    = uint32(0xC0000BCF)
	pdhUnableReadLogHeader     = uint32(0xC0000BD0)
	pdhFileNotFound            = uint32(0xC0000BD1)
	pdhInvalidDatasource       = uint32(0xC0000BDD)
	pdhNoCounters              = uint32(0xC0000BDF)
)

// pdhErrors maps PDH status codes to their symbolic names, used both for
// error text and for matching against PerfLogReader.IgnoredErrors.
var pdhErrors = map[uint32]string{
	pdhCstatusValidData:        "PDH_CSTATUS_VALID_DATA",
	pdhCstatusNewData:          "PDH_CSTATUS_NEW_DATA",
	pdhCstatusNoMachine:        "PDH_CSTATUS_NO_MACHINE",
	pdhCstatusNoInstance:       "PDH_CSTATUS_NO_INSTANCE",
	pdhMoreData:                "PDH_MORE_DATA",
	pdhCstatusItemNotValidated: "PDH_CSTATUS_ITEM_NOT_VALIDATED",
	pdhRetry:                   "PDH_RETRY",
	pdhNoData:                  "PDH_NO_DATA",
	pdhCalcNegativeDenominator: "PDH_CALC_NEGATIVE_DENOMINATOR",
	pdhCalcNegativeTimebase:    "PDH_CALC_NEGATIVE_TIMEBASE",
	pdhCalcNegativeValue:       "PDH_CALC_NEGATIVE_VALUE",
	pdhEndOfLogFile:            "PDH_END_OF_LOG_FILE",
	pdhCstatusNoObject:         "PDH_CSTATUS_NO_OBJECT",
	pdhCstatusNoCounter:        "PDH_CSTATUS_NO_COUNTER",
	pdhCstatusInvalidData:      "PDH_CSTATUS_INVALID_DATA",
	pdhMemoryAllocationFailure: "PDH_MEMORY_ALLOCATION_FAILURE",
	pdhInvalidHandle:           "PDH_INVALID_HANDLE",
	pdhInvalidArgument:         "PDH_INVALID_ARGUMENT",
	pdhCstatusBadCountername:   "PDH_CSTATUS_BAD_COUNTERNAME",
	pdhInvalidBuffer:           "PDH_INVALID_BUFFER",
	pdhInsufficientBuffer:      "PDH_INSUFFICIENT_BUFFER",
	pdhCannotConnectMachine:    "PDH_CANNOT_CONNECT_MACHINE",
	pdhInvalidPath:             "PDH_INVALID_PATH",
	pdhInvalidInstance:         "PDH_INVALID_INSTANCE",
	pdhInvalidData:             "PDH_INVALID_DATA",
	pdhLogFileOpenError:        "PDH_LOG_FILE_OPEN_ERROR",
	pdhLogTypeNotFound:         "PDH_LOG_TYPE_NOT_FOUND",
	pdhNoMoreData:              "PDH_NO_MORE_DATA",
	pdhEntryNotInLogFile:       "PDH_ENTRY_NOT_IN_LOG_FILE",
	pdhDataSourceIsLogFile:     "PDH_DATA_SOURCE_IS_LOG_FILE",
	pdhDataSourceIsRealTime:    "PDH_DATA_SOURCE_IS_REAL_TIME",
	pdhUnableReadLogHeader:     "PDH_UNABLE_READ_LOG_HEADER",
	pdhFileNotFound:            "PDH_FILE_NOT_FOUND",
	pdhInvalidDatasource:       "PDH_INVALID_DATASOURCE",
	pdhNoCounters:              "PDH_NO_COUNTERS",
}

// pdhError represents an error returned from the Performance Counters API
type pdhError struct {
	errorCode uint32
	errorText string
	// fromValueStatus is set when the code came from the CStatus field of a
	// formatted value rather than from the call's own return status.
	fromValueStatus bool
}

func (m *pdhError) Error() string {
	return m.errorText
}

func pdhFormatError(code uint32) string {
	if name, ok := pdhErrors[code]; ok {
		return name
	}
	return fmt.Sprintf("PDH status %#x", code)
}

func newPdhError(code uint32) error {
	return &pdhError{
		errorCode: code,
		errorText: pdhFormatError(code),
	}
}

func newPdhValueError(cstatus uint32) error {
	return &pdhError{
		errorCode:       cstatus,
		errorText:       pdhFormatError(cstatus),
		fromValueStatus: true,
	}
}
