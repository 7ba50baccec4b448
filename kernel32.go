//go:build windows

package perflog_reader

import (
	"syscall"
)

type fileTime struct {
	dwLowDateTime  uint32
	dwHighDateTime uint32
}

func (ft fileTime) ticks() int64 {
	return int64(ft.dwHighDateTime)<<32 | int64(ft.dwLowDateTime)
}

var (
	// Library
	libKernelDll *syscall.DLL

	// Functions
	kernelLocalFileTimeToFileTime *syscall.Proc
)

func init() {
	libKernelDll = syscall.MustLoadDLL("Kernel32.dll")

	kernelLocalFileTimeToFileTime = libKernelDll.MustFindProc("LocalFileTimeToFileTime")
}
