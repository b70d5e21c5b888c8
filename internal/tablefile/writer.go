package tablefile

import (
	"encoding/binary"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/edsrzf/mmap-go"
	"github.com/tamirms/mpsm"
)

// Write stores rows in a new table file at path, replacing any existing
// file. The file is pre-allocated, memory-mapped and encoded in place.
func Write(path string, rows []mpsm.Tuple) error {
	size := fileSize(uint64(len(rows)))

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create table file")
	}

	// Pre-allocate disk blocks to prevent SIGBUS on disk full
	if err := fallocateFile(file, int64(size)); err != nil {
		return errors.CombineErrors(errors.Wrap(err, "allocate table file"), file.Close())
	}

	mm, err := mmap.MapRegion(file, int(size), mmap.RDWR, 0, 0)
	if err != nil {
		return errors.CombineErrors(errors.Wrap(err, "mmap table file"), file.Close())
	}
	data := []byte(mm)
	body := data[headerSize : headerSize+len(rows)*rowSize]
	prefaultRegion(body)

	hdr := header{Magic: magic, Version: version, Rows: uint64(len(rows))}
	hdr.encodeTo(data)
	for i, t := range rows {
		off := i * rowSize
		binary.LittleEndian.PutUint64(body[off:off+8], t.Key)
		binary.LittleEndian.PutUint64(body[off+8:off+16], t.Payload)
	}
	binary.LittleEndian.PutUint64(data[len(data)-footerSize:], xxhash.Sum64(body))

	// Flush dirty pages to file (ensures writes visible before unmap)
	if err := mm.Flush(); err != nil {
		return errors.CombineErrors(errors.Wrap(err, "flush table file"),
			errors.CombineErrors(mm.Unmap(), file.Close()))
	}
	if err := mm.Unmap(); err != nil {
		return errors.CombineErrors(errors.Wrap(err, "unmap table file"), file.Close())
	}
	return file.Close()
}
