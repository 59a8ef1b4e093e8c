// Copyright 2026 The filetrace Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build linux

// Package memory reads data out of a stopped tracee's address space and
// resolves its open file descriptors, both backed by /proc.
package memory

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"sync"

	"golang.org/x/sys/unix"
)

const maxCStringLen = 4096

var bufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, maxCStringLen)
		return &buf
	},
}

// ReadCString reads a NUL-terminated string from tid's address space at
// addr. It never panics across the supervisor boundary: on permission
// loss or if the tracee has vanished it returns an empty string and an
// error for the caller to log and drop.
func ReadCString(tid int, addr uintptr) (string, error) {
	if addr == 0 {
		return "", fmt.Errorf("memory: nil address")
	}

	bufPtr := bufferPool.Get().(*[]byte)
	defer bufferPool.Put(bufPtr)
	buf := *bufPtr

	local := unix.Iovec{Base: &buf[0]}
	local.SetLen(len(buf))
	remote := unix.RemoteIovec{Base: addr, Len: len(buf)}

	n, err := unix.ProcessVMReadv(tid, []unix.Iovec{local}, []unix.RemoteIovec{remote}, 0)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}

	if idx := bytes.IndexByte(buf[:n], 0); idx != -1 {
		n = idx
	}
	return string(buf[:n]), nil
}

// CurrentDirFD is the "use the file descriptor table's current
// directory" sentinel openat-style syscalls accept in place of a real fd.
const CurrentDirFD = unix.AT_FDCWD

// ResolveFD turns fd as seen by tid into an absolute path by reading the
// kernel-exported symlink at /proc/<tid>/fd/<fd>. AT_FDCWD resolves to ".".
func ResolveFD(tid int, fd int) (string, error) {
	if fd == CurrentDirFD {
		return ".", nil
	}
	link := "/proc/" + strconv.Itoa(tid) + "/fd/" + strconv.Itoa(fd)
	target, err := os.Readlink(link)
	if err != nil {
		return "", err
	}
	return target, nil
}
