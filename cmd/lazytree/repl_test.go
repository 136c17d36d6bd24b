package main

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ic-timon/lazytree/render"
	"github.com/ic-timon/lazytree/tree"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestREPL(t *testing.T) (*REPL, *bytes.Buffer) {
	t.Helper()
	cfg := tree.DefaultConfig()
	cfg.Seed = 12
	nav, err := tree.New(cfg)
	require.NoError(t, err)
	var out bytes.Buffer
	r := render.New(&out, cfg, render.WithProfile(termenv.Ascii), render.WithWidth(120))
	return newREPL(nav, r, &out, zap.NewNop().Sugar()), &out
}

func TestREPLNavigation(t *testing.T) {
	repl, out := newTestREPL(t)

	require.True(t, repl.handleCommand("down 3"))
	assert.Contains(t, out.String(), "entered through slot 3")
	assert.Equal(t, 1, repl.nav.Depth())

	out.Reset()
	require.True(t, repl.handleCommand("u"))
	assert.Equal(t, 0, repl.nav.Current())

	out.Reset()
	require.True(t, repl.handleCommand("down 99"))
	assert.Contains(t, out.String(), "slot must be 0..7")

	out.Reset()
	require.True(t, repl.handleCommand("click parent"))
	assert.Equal(t, -1, repl.nav.Depth())

	require.True(t, repl.handleCommand("click 0"))
	assert.Equal(t, 0, repl.nav.Depth())

	require.True(t, repl.handleCommand("walk 40"))
	out.Reset()
	require.True(t, repl.handleCommand("check"))
	assert.Equal(t, "invariants hold\n", out.String())

	out.Reset()
	require.True(t, repl.handleCommand("stats"))
	assert.Contains(t, out.String(), repl.nav.ID().String())

	out.Reset()
	require.True(t, repl.handleCommand("frobnicate"))
	assert.Contains(t, out.String(), "unknown command")

	assert.False(t, repl.handleCommand("quit"))
}

func TestREPLSaveAndAudit(t *testing.T) {
	repl, out := newTestREPL(t)
	require.True(t, repl.handleCommand("walk 25"))
	path := filepath.Join(t.TempDir(), "session.lzt")

	out.Reset()
	require.True(t, repl.handleCommand("save "+path))
	assert.Equal(t, "saved "+path+"\n", out.String())

	out.Reset()
	require.True(t, repl.handleCommand("audit "+path))
	assert.Contains(t, out.String(), "invariants hold")
	assert.Contains(t, out.String(), "group size 8")
}

func TestREPLRunStopsAtEOF(t *testing.T) {
	repl, out := newTestREPL(t)
	repl.run(bufio.NewReader(strings.NewReader("types\nshow\n")))
	assert.Contains(t, out.String(), "p=0.7653")
	assert.Contains(t, out.String(), "group 0")
}
