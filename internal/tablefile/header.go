package tablefile

import (
	"encoding/binary"

	mpsmerrors "github.com/tamirms/mpsm/errors"
)

const (
	// magic number for table files: "MPSM" in little-endian
	magic = uint32(0x4D53504D)

	// version is the current format version
	version = uint16(0x0001)

	// headerSize is the exact size of the serialized header
	headerSize = 32

	// rowSize is the size of one encoded tuple: key then payload, both uint64_le
	rowSize = 16

	// footerSize holds the xxHash64 of the row region
	footerSize = 8
)

// header is the 32-byte file header.
//
// Layout:
//
//	Offset  Size  Field     Type
//	0       4     Magic     0x4D53504D ("MPSM")
//	4       2     Version   0x0001
//	6       2     Reserved  (zero)
//	8       8     Rows      uint64_le
//	16      16    Reserved  (zero)
//
// The header is followed by Rows×16 bytes of tuples and an 8-byte footer.
type header struct {
	Magic   uint32
	Version uint16
	Rows    uint64
}

// encodeTo serializes the header to an existing buffer.
func (h *header) encodeTo(buf []byte) {
	clear(buf[:headerSize])
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	binary.LittleEndian.PutUint64(buf[8:16], h.Rows)
}

// decodeHeader parses a 32-byte header.
func decodeHeader(buf []byte) (*header, error) {
	if len(buf) < headerSize {
		return nil, mpsmerrors.ErrTruncatedFile
	}
	h := &header{
		Magic:   binary.LittleEndian.Uint32(buf[0:4]),
		Version: binary.LittleEndian.Uint16(buf[4:6]),
		Rows:    binary.LittleEndian.Uint64(buf[8:16]),
	}
	if h.Magic != magic {
		return nil, mpsmerrors.ErrInvalidMagic
	}
	if h.Version != version {
		return nil, mpsmerrors.ErrInvalidVersion
	}
	return h, nil
}

// fileSize returns the exact size of a table file holding rows tuples.
func fileSize(rows uint64) uint64 {
	return headerSize + rows*rowSize + footerSize
}
