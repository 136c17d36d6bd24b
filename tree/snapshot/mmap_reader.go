package snapshot

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Reader gives read-only access to a memory-mapped snapshot file.
type Reader struct {
	f      *os.File
	data   mmap.MMap
	header *Header
}

// Open maps the snapshot at path and validates its header and length.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	r := &Reader{f: f, data: m}
	h, err := DecodeHeader(m)
	if err != nil {
		r.Close()
		return nil, err
	}
	if h.NodeCount > uint64(len(m)-HeaderSize)/RecordSize {
		r.Close()
		return nil, fmt.Errorf("%w: %d bytes, header claims %d records", ErrTruncated, len(m), h.NodeCount)
	}
	r.header = h
	return r, nil
}

// Header returns the decoded header.
func (r *Reader) Header() *Header { return r.header }

// Len returns the number of node records.
func (r *Reader) Len() int { return int(r.header.NodeCount) }

// Record returns record i. ok is false when i is out of range or the reader
// is closed.
func (r *Reader) Record(i int) (rec Record, ok bool) {
	if r.data == nil || i < 0 || i >= r.Len() {
		return Record{}, false
	}
	off := HeaderSize + i*RecordSize
	return DecodeRecord(r.data[off : off+RecordSize]), true
}

// Close unmaps the file and closes it.
func (r *Reader) Close() error {
	if r.data != nil {
		if err := r.data.Unmap(); err != nil {
			return err
		}
		r.data = nil
	}
	if r.f != nil {
		err := r.f.Close()
		r.f = nil
		return err
	}
	return nil
}
