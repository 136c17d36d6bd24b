package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

const (
	// HeaderSize is the fixed header size.
	HeaderSize = 64

	// Magic identifies a lazytree snapshot file.
	Magic = "LZTR"

	// FormatVersion is the current file format version.
	FormatVersion uint16 = 1

	// RecordSize is the encoded size of one Record.
	RecordSize = 4 + 8 + 8
)

var (
	// ErrBadMagic indicates a file that is not a snapshot.
	ErrBadMagic = errors.New("invalid snapshot magic")

	// ErrBadVersion indicates an unsupported format version.
	ErrBadVersion = errors.New("unsupported snapshot version")

	// ErrTruncated indicates a file shorter than its header claims.
	ErrTruncated = errors.New("snapshot truncated")
)

// Header holds the snapshot metadata.
type Header struct {
	Magic     [4]byte
	Version   uint16
	Reserved  uint16
	GroupSize uint32
	NumTypes  uint32
	NodeCount uint64
	Current   uint64
	Seed      int64
	Session   [16]byte
	Depth     int64
}

// Record is one node as stored on disk.
type Record struct {
	Type   int32
	Child  int64
	Parent int64
}

// EncodeHeader writes the header to a byte slice, padded to HeaderSize.
func EncodeHeader(h *Header) ([]byte, error) {
	if h == nil {
		return nil, errors.New("header is nil")
	}
	copy(h.Magic[:], Magic)
	h.Version = FormatVersion
	var w bytes.Buffer
	if err := binary.Write(&w, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	b := w.Bytes()
	if len(b) < HeaderSize {
		padded := make([]byte, HeaderSize)
		copy(padded, b)
		return padded, nil
	}
	return b, nil
}

// DecodeHeader reads the header from src.
func DecodeHeader(src []byte) (*Header, error) {
	if len(src) < HeaderSize {
		return nil, ErrTruncated
	}
	var h Header
	r := bytes.NewReader(src[:HeaderSize])
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if string(h.Magic[:]) != Magic {
		return nil, ErrBadMagic
	}
	if h.Version != FormatVersion {
		return nil, ErrBadVersion
	}
	return &h, nil
}

// WriteRecord appends one encoded record to w.
func WriteRecord(w io.Writer, r Record) error {
	var buf [RecordSize]byte
	putRecord(buf[:], r)
	_, err := w.Write(buf[:])
	return err
}

func putRecord(dst []byte, r Record) {
	binary.LittleEndian.PutUint32(dst[0:], uint32(r.Type))
	binary.LittleEndian.PutUint64(dst[4:], uint64(r.Child))
	binary.LittleEndian.PutUint64(dst[12:], uint64(r.Parent))
}

// DecodeRecord reads one record from src, which must hold RecordSize bytes.
func DecodeRecord(src []byte) Record {
	return Record{
		Type:   int32(binary.LittleEndian.Uint32(src[0:])),
		Child:  int64(binary.LittleEndian.Uint64(src[4:])),
		Parent: int64(binary.LittleEndian.Uint64(src[12:])),
	}
}
