package tree

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ic-timon/lazytree/tree/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exploredNavigator(t *testing.T) *Navigator {
	t.Helper()
	nav := newTestNavigator(t, 21)
	for _, m := range []int{1, -1, -1, 4, 2, -1, 7} {
		var err error
		if m < 0 {
			_, err = nav.Ascend()
		} else {
			_, err = nav.Descend(m)
		}
		require.NoError(t, err)
	}
	return nav
}

func TestSnapshotRoundTrip(t *testing.T) {
	nav := exploredNavigator(t)
	path := filepath.Join(t.TempDir(), "walk.lzt")
	require.NoError(t, nav.SaveSnapshot(path))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	audit, err := OpenAudit(path)
	require.NoError(t, err)
	defer audit.Close()

	h := audit.Header()
	assert.Equal(t, uint32(8), h.GroupSize)
	assert.Equal(t, uint32(10), h.NumTypes)
	assert.Equal(t, uint64(nav.Current()), h.Current)
	assert.Equal(t, int64(nav.Depth()), h.Depth)
	assert.Equal(t, [16]byte(nav.ID()), h.Session)

	require.Equal(t, nav.Store().Len(), audit.Len())
	for i := 0; i < audit.Len(); i++ {
		got, err := audit.At(i)
		require.NoError(t, err)
		assert.Equal(t, nodeAt(t, nav, i), got)
	}
	_, err = audit.At(audit.Len())
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	require.NoError(t, CheckInvariants(audit))
}

func TestOpenAuditRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	nav := exploredNavigator(t)
	var buf bytes.Buffer
	require.NoError(t, nav.WriteSnapshot(&buf))
	good := buf.Bytes()

	badMagic := append([]byte(nil), good...)
	copy(badMagic, "NOPE")
	p := filepath.Join(dir, "magic.lzt")
	require.NoError(t, os.WriteFile(p, badMagic, 0o644))
	_, err := OpenAudit(p)
	assert.ErrorIs(t, err, ErrBadMagic)

	p = filepath.Join(dir, "short.lzt")
	require.NoError(t, os.WriteFile(p, good[:len(good)-snapshot.RecordSize], 0o644))
	_, err = OpenAudit(p)
	assert.ErrorIs(t, err, ErrTruncated)
}
