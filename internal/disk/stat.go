// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package disk

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"syscall"
	"unsafe"
)

// DefaultSectorSize is the sector size assumed for regular image files,
// and the value XTAF itself hard-codes for every volume (spec: "Sector
// size is fixed at 512 bytes for all XTAF volumes").
const DefaultSectorSize = 512

// MediaInfo describes the backing media behind an attached image: a
// raw block device, or a plain disk-image file.
type MediaInfo struct {
	DevicePath string
	RealSize   int64 // total size in bytes
	IsDevice   bool
}

// StatMedia determines the size of the backing media at devicePath,
// using Linux block-device ioctls when the path is a device node and
// falling back to a plain Stat/Seek for regular image files.
func StatMedia(devicePath string) (*MediaInfo, error) {
	f, err := os.Open(devicePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", devicePath, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", devicePath, err)
	}

	info := &MediaInfo{
		DevicePath: devicePath,
		IsDevice:   fi.Mode()&os.ModeDevice != 0,
	}

	if info.IsDevice && runtime.GOOS == "linux" {
		size, ioctlErr := GetDiskSizeLinux(f)
		if ioctlErr == nil {
			info.RealSize = size
			return info, nil
		}
		// fall through to Seek below for devices where the ioctl is unavailable
	}

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("could not determine size of %s: %w", devicePath, err)
	}
	info.RealSize = size
	return info, nil
}

// GetDiskSizeLinux retrieves the total size in bytes of a Linux block
// device via the BLKGETSIZE64 ioctl.
func GetDiskSizeLinux(file *os.File) (int64, error) {
	var size int64
	const BLKGETSIZE64 = 0x80081272
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, file.Fd(), BLKGETSIZE64, uintptr(unsafe.Pointer(&size)))
	if errno != 0 {
		return 0, fmt.Errorf("ioctl BLKGETSIZE64 failed: %w", errno)
	}
	return size, nil
}
