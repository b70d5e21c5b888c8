//go:build !linux

package tablefile

import "os"

// fallocateFile sizes a new table file. Block reservation is attempted
// where the platform offers it; see reserveBlocks.
func fallocateFile(file *os.File, size int64) error {
	reserveBlocks(file, size)
	return file.Truncate(size)
}

// Read-ahead and prefault hints are Linux only.
func fadviseSequential(int, int64, int64) {}

func prefaultRegion([]byte) {}
