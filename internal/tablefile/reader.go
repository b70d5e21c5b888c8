package tablefile

import (
	"encoding/binary"
	"os"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/edsrzf/mmap-go"
	"github.com/tamirms/mpsm"
	mpsmerrors "github.com/tamirms/mpsm/errors"
)

// File is a read-only, memory-mapped table file.
//
// Thread Safety:
//   - Len, Tuple and Tuples are safe for concurrent use
//   - Close must only be called after all reads have completed
type File struct {
	mmap mmap.MMap
	rows []byte // row region view into mmap
	n    int

	closed atomic.Bool
}

// Open maps the table file at path and verifies its header, size and
// checksum. The file descriptor is closed before Open returns.
func Open(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open table file")
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat table file")
	}
	if stat.Size() < headerSize+footerSize {
		return nil, mpsmerrors.ErrTruncatedFile
	}

	// The whole file is checksummed front to back right after mapping.
	fadviseSequential(int(file.Fd()), 0, stat.Size())

	mm, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.Wrap(err, "mmap table file")
	}
	f := &File{mmap: mm}
	if err := f.init([]byte(mm)); err != nil {
		return nil, errors.CombineErrors(err, f.Close())
	}
	return f, nil
}

func (f *File) init(data []byte) error {
	hdr, err := decodeHeader(data)
	if err != nil {
		return err
	}
	// Bound Rows by the bytes actually present before fileSize, which
	// would wrap for a corrupted count near 2^64/rowSize.
	if maxRows := uint64(len(data)-headerSize-footerSize) / rowSize; hdr.Rows > maxRows {
		return errors.Wrapf(mpsmerrors.ErrTruncatedFile,
			"header declares %d rows, file holds at most %d", hdr.Rows, maxRows)
	}
	if uint64(len(data)) != fileSize(hdr.Rows) {
		return errors.Wrapf(mpsmerrors.ErrTruncatedFile,
			"size %d, header declares %d rows (%d bytes)", len(data), hdr.Rows, fileSize(hdr.Rows))
	}

	body := data[headerSize : len(data)-footerSize]
	want := binary.LittleEndian.Uint64(data[len(data)-footerSize:])
	if got := xxhash.Sum64(body); got != want {
		return errors.Wrapf(mpsmerrors.ErrChecksumFailed, "rows hash 0x%X, footer 0x%X", got, want)
	}

	f.rows = body
	f.n = int(hdr.Rows)
	return nil
}

// Len returns the number of tuples in the file.
func (f *File) Len() int {
	return f.n
}

// Tuple decodes tuple i.
func (f *File) Tuple(i int) (mpsm.Tuple, error) {
	if f.closed.Load() {
		return mpsm.Tuple{}, mpsmerrors.ErrFileClosed
	}
	if i < 0 || i >= f.n {
		return mpsm.Tuple{}, errors.Newf("tablefile: tuple %d out of range [0, %d)", i, f.n)
	}
	return f.decode(i), nil
}

// Tuples decodes every tuple into a new table the caller owns.
func (f *File) Tuples() ([]mpsm.Tuple, error) {
	if f.closed.Load() {
		return nil, mpsmerrors.ErrFileClosed
	}
	out := make([]mpsm.Tuple, f.n)
	for i := range out {
		out[i] = f.decode(i)
	}
	return out, nil
}

func (f *File) decode(i int) mpsm.Tuple {
	off := i * rowSize
	return mpsm.Tuple{
		Key:     binary.LittleEndian.Uint64(f.rows[off : off+8]),
		Payload: binary.LittleEndian.Uint64(f.rows[off+8 : off+16]),
	}
}

// Close unmaps the file. Safe to call more than once.
func (f *File) Close() error {
	if f.closed.Swap(true) {
		return nil
	}
	if f.mmap != nil {
		return f.mmap.Unmap()
	}
	return nil
}

// Load reads a whole table file into memory.
func Load(path string) ([]mpsm.Tuple, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	rows, err := f.Tuples()
	return rows, errors.CombineErrors(err, f.Close())
}
