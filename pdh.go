//go:build windows

package perflog_reader

import (
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Detail level of the standard catalog: every object and counter a
// configuration wizard would show.
const perfDetailWizard = uint32(400)

var (
	// Library
	libPdhDll *syscall.DLL

	// Functions
	pdhBindInputDataSourceW      *syscall.Proc
	pdhCloseLogW                 *syscall.Proc
	pdhEnumMachinesHW            *syscall.Proc
	pdhEnumObjectsHW             *syscall.Proc
	pdhEnumObjectItemsHW         *syscall.Proc
	pdhGetDataSourceTimeRangeHW  *syscall.Proc
	pdhOpenQueryHW               *syscall.Proc
	pdhCloseQueryW               *syscall.Proc
	pdhAddCounterW               *syscall.Proc
	pdhCollectQueryDataWithTimeW *syscall.Proc
	pdhGetFormattedCounterValueW *syscall.Proc
)

func init() {
	libPdhDll = syscall.MustLoadDLL("pdh.dll")

	pdhBindInputDataSourceW = libPdhDll.MustFindProc("PdhBindInputDataSourceW")
	pdhCloseLogW = libPdhDll.MustFindProc("PdhCloseLog")
	pdhEnumMachinesHW = libPdhDll.MustFindProc("PdhEnumMachinesHW")
	pdhEnumObjectsHW = libPdhDll.MustFindProc("PdhEnumObjectsHW")
	pdhEnumObjectItemsHW = libPdhDll.MustFindProc("PdhEnumObjectItemsHW")
	pdhGetDataSourceTimeRangeHW = libPdhDll.MustFindProc("PdhGetDataSourceTimeRangeH")
	pdhOpenQueryHW = libPdhDll.MustFindProc("PdhOpenQueryH")
	pdhCloseQueryW = libPdhDll.MustFindProc("PdhCloseQuery")
	pdhAddCounterW = libPdhDll.MustFindProc("PdhAddCounterW")
	pdhCollectQueryDataWithTimeW = libPdhDll.MustFindProc("PdhCollectQueryDataWithTime")
	pdhGetFormattedCounterValueW = libPdhDll.MustFindProc("PdhGetFormattedCounterValue")
}

// pdhBindInputDataSource binds an ordered list of log files as one read-only
// data source. The list crosses the boundary as a NUL-separated,
// double-NUL-terminated wide string.
func pdhBindInputDataSource(handle *pdhLogHandle, fileNameList *uint16) uint32 {
	ret, _, _ := pdhBindInputDataSourceW.Call(
		uintptr(unsafe.Pointer(handle)),
		uintptr(unsafe.Pointer(fileNameList)))
	return uint32(ret)
}

func pdhCloseLog(handle pdhLogHandle) uint32 {
	ret, _, _ := pdhCloseLogW.Call(uintptr(handle), 0)
	return uint32(ret)
}

func pdhEnumMachinesH(handle pdhLogHandle, machineList *uint16, bufferSize *uint32) uint32 {
	ret, _, _ := pdhEnumMachinesHW.Call(
		uintptr(handle),
		uintptr(unsafe.Pointer(machineList)),
		uintptr(unsafe.Pointer(bufferSize)))
	return uint32(ret)
}

func pdhEnumObjectsH(handle pdhLogHandle, machineName, objectList *uint16, bufferSize *uint32) uint32 {
	ret, _, _ := pdhEnumObjectsHW.Call(
		uintptr(handle),
		uintptr(unsafe.Pointer(machineName)),
		uintptr(unsafe.Pointer(objectList)),
		uintptr(unsafe.Pointer(bufferSize)),
		uintptr(perfDetailWizard),
		0) // no refresh, the bound log is static
	return uint32(ret)
}

//nolint:revive //argument-limit conditionally more arguments allowed for syscall wrapper
func pdhEnumObjectItemsH(handle pdhLogHandle, machineName, objectName, counterList *uint16, counterListLength *uint32, instanceList *uint16, instanceListLength *uint32) uint32 {
	ret, _, _ := pdhEnumObjectItemsHW.Call(
		uintptr(handle),
		uintptr(unsafe.Pointer(machineName)),
		uintptr(unsafe.Pointer(objectName)),
		uintptr(unsafe.Pointer(counterList)),
		uintptr(unsafe.Pointer(counterListLength)),
		uintptr(unsafe.Pointer(instanceList)),
		uintptr(unsafe.Pointer(instanceListLength)),
		uintptr(perfDetailWizard),
		0)
	return uint32(ret)
}

func pdhGetDataSourceTimeRangeH(handle pdhLogHandle, numEntries *uint32, info *pdhTimeInfo, bufferSize *uint32) uint32 {
	ret, _, _ := pdhGetDataSourceTimeRangeHW.Call(
		uintptr(handle),
		uintptr(unsafe.Pointer(numEntries)),
		uintptr(unsafe.Pointer(info)),
		uintptr(unsafe.Pointer(bufferSize)))
	return uint32(ret)
}

func pdhOpenQueryH(handle pdhLogHandle, userData uintptr, query *pdhQueryHandle) uint32 {
	ret, _, _ := pdhOpenQueryHW.Call(
		uintptr(handle),
		userData,
		uintptr(unsafe.Pointer(query)))
	return uint32(ret)
}

func pdhCloseQuery(query pdhQueryHandle) uint32 {
	ret, _, _ := pdhCloseQueryW.Call(uintptr(query))
	return uint32(ret)
}

func pdhAddCounter(query pdhQueryHandle, counterPath string, userData uintptr, counter *pdhCounterHandle) uint32 {
	ptxt, err := windows.UTF16PtrFromString(counterPath)
	if err != nil {
		return pdhInvalidArgument
	}
	ret, _, _ := pdhAddCounterW.Call(
		uintptr(query),
		uintptr(unsafe.Pointer(ptxt)),
		userData,
		uintptr(unsafe.Pointer(counter)))
	return uint32(ret)
}

// pdhCollectQueryDataWithTime advances the query and returns the timestamp of
// the consumed step. The native call reports the stamp as a local-time
// FILETIME; it is converted to UTC with LocalFileTimeToFileTime.
func pdhCollectQueryDataWithTime(query pdhQueryHandle) (uint32, time.Time) {
	var localFileTime fileTime
	ret, _, _ := pdhCollectQueryDataWithTimeW.Call(
		uintptr(query),
		uintptr(unsafe.Pointer(&localFileTime)))
	if uint32(ret) != errorSuccess {
		return uint32(ret), time.Time{}
	}

	var utcFileTime fileTime
	if r, _, _ := kernelLocalFileTimeToFileTime.Call(
		uintptr(unsafe.Pointer(&localFileTime)),
		uintptr(unsafe.Pointer(&utcFileTime))); r == 0 {
		return pdhInvalidData, time.Time{}
	}
	stamp, err := fileTimeToTime(utcFileTime.ticks())
	if err != nil {
		return pdhInvalidData, time.Time{}
	}
	return errorSuccess, stamp
}

func pdhGetFormattedCounterValue(counter pdhCounterHandle, format valueFormat, counterType *uint32, value unsafe.Pointer) uint32 {
	ret, _, _ := pdhGetFormattedCounterValueW.Call(
		uintptr(counter),
		uintptr(format),
		uintptr(unsafe.Pointer(counterType)),
		uintptr(value))
	return uint32(ret)
}
