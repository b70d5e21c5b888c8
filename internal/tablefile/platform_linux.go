//go:build linux

package tablefile

import (
	"os"

	"golang.org/x/sys/unix"
)

// Linux 5.14+. Older kernels answer EINVAL, which is ignored.
const madvPopulateWrite = 23

// fallocateFile sizes a new table file and reserves its blocks up front, so
// running out of disk surfaces as an error here rather than a SIGBUS while
// rows are stored through the mapping. Filesystems without fallocate
// support (NFS, tmpfs on old kernels) fall back to a plain ftruncate.
func fallocateFile(file *os.File, size int64) error {
	fd := int(file.Fd())
	_ = unix.Fallocate(fd, 0, 0, size)
	return unix.Ftruncate(fd, size)
}

// fadviseSequential tells the kernel a table file is about to be read
// front to back by the checksum pass.
func fadviseSequential(fd int, offset, length int64) {
	_ = unix.Fadvise(fd, offset, length, unix.FADV_SEQUENTIAL)
}

// prefaultRegion populates the pages of the mapped row region before rows
// are encoded into it. Best effort.
func prefaultRegion(rows []byte) {
	if len(rows) > 0 {
		_ = unix.Madvise(rows, madvPopulateWrite)
	}
}
