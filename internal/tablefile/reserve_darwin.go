//go:build darwin

package tablefile

import (
	"os"

	"golang.org/x/sys/unix"
)

// reserveBlocks asks for the whole table file to be allocated contiguously
// or not at all. Failure is ignored; Truncate still sizes the file.
func reserveBlocks(file *os.File, size int64) {
	_ = unix.FcntlFstore(file.Fd(), unix.F_PREALLOCATE, &unix.Fstore_t{
		Flags:   unix.F_ALLOCATEALL,
		Posmode: unix.F_PEOFPOSMODE,
		Length:  size,
	})
}
