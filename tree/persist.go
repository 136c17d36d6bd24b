package tree

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/ic-timon/lazytree/tree/snapshot"
	"go.uber.org/zap"
)

// Snapshot format errors, re-exported for errors.Is.
var (
	ErrBadMagic   = snapshot.ErrBadMagic
	ErrBadVersion = snapshot.ErrBadVersion
	ErrTruncated  = snapshot.ErrTruncated
)

func linkToDisk(l Link) int64 {
	if i, ok := l.Get(); ok {
		return int64(i)
	}
	return -1
}

func linkFromDisk(v int64) Link {
	if v < 0 {
		return NoLink
	}
	return LinkTo(int(v))
}

// WriteSnapshot writes an audit dump of the store to w.
func (n *Navigator) WriteSnapshot(w io.Writer) error {
	h := &snapshot.Header{
		GroupSize: uint32(n.cfg.GroupSize),
		NumTypes:  uint32(len(n.cfg.Types)),
		NodeCount: uint64(n.store.Len()),
		Current:   uint64(n.current),
		Seed:      n.cfg.Seed,
		Session:   n.id,
		Depth:     int64(n.depth),
	}
	headerBytes, err := snapshot.EncodeHeader(h)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(headerBytes); err != nil {
		return err
	}
	for _, node := range n.store.nodes {
		rec := snapshot.Record{
			Type:   int32(node.Type),
			Child:  linkToDisk(node.Child),
			Parent: linkToDisk(node.Parent),
		}
		if err := snapshot.WriteRecord(bw, rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveSnapshot writes an audit dump to path atomically (write to path+".tmp",
// then rename).
func (n *Navigator) SaveSnapshot(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := n.WriteSnapshot(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	_ = os.Remove(path) // Windows rename needs the target gone
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	n.log.Info("snapshot saved", zap.String("path", path), zap.Int("nodes", n.store.Len()))
	return nil
}

// Audit is a read-only NodeSource over a snapshot file.
type Audit struct {
	r *snapshot.Reader
}

// OpenAudit maps the snapshot at path. Call Close when done.
func OpenAudit(path string) (*Audit, error) {
	r, err := snapshot.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	if r.Header().GroupSize == 0 {
		r.Close()
		return nil, fmt.Errorf("%w: zero group size in %s", ErrCorrupt, path)
	}
	return &Audit{r: r}, nil
}

// Header returns the snapshot metadata.
func (a *Audit) Header() *snapshot.Header { return a.r.Header() }

// Len implements NodeSource.
func (a *Audit) Len() int { return a.r.Len() }

// GroupSize implements NodeSource.
func (a *Audit) GroupSize() int { return int(a.r.Header().GroupSize) }

// At implements NodeSource.
func (a *Audit) At(index int) (Node, error) {
	rec, ok := a.r.Record(index)
	if !ok {
		return Node{}, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, a.Len())
	}
	return Node{
		Type:   NodeType(rec.Type),
		Child:  linkFromDisk(rec.Child),
		Parent: linkFromDisk(rec.Parent),
	}, nil
}

// Close releases the mapping.
func (a *Audit) Close() error { return a.r.Close() }
