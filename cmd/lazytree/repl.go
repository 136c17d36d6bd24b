package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/ic-timon/lazytree/render"
	"github.com/ic-timon/lazytree/tree"
	"go.uber.org/zap"
)

// REPL holds the state of the interactive session.
type REPL struct {
	nav   *tree.Navigator
	r     *render.Renderer
	panel *tree.Panel
	walk  *rand.Rand
	w     io.Writer
	log   *zap.SugaredLogger
}

func newREPL(nav *tree.Navigator, r *render.Renderer, w io.Writer, log *zap.SugaredLogger) *REPL {
	return &REPL{
		nav:   nav,
		r:     r,
		panel: tree.NewPanel(nav.Config().GroupSize),
		walk:  rand.New(rand.NewSource(nav.Config().Seed + 1)),
		w:     w,
		log:   log,
	}
}

func (r *REPL) handleCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		r.printHelp()

	case "quit", "exit", "q":
		return false

	case "show", "ls":
		r.show()

	case "down", "d":
		r.cmdDown(args)

	case "up", "u":
		r.cmdUp()

	case "click":
		r.cmdClick(args)

	case "walk":
		r.cmdWalk(args)

	case "stats":
		r.cmdStats()

	case "check":
		r.report(tree.CheckInvariants(r.nav.Store()), "invariants hold")

	case "types":
		fmt.Fprint(r.w, r.r.Palette(r.nav.Sampler()))

	case "save":
		r.cmdSave(args)

	case "audit":
		r.cmdAudit(args)

	default:
		fmt.Fprintf(r.w, "unknown command %q, try 'help'\n", cmd)
	}
	return true
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.w, `Commands:
  show | ls             show the current group
  down <k> | d <k>      descend into slot k
  up | u                ascend to the parent group
  click <k|parent>      queue an activation and run one input tick
  walk <n>              take n random steps
  stats                 generation counters
  check                 verify store invariants
  types                 list the type palette
  save <path>           write an audit snapshot
  audit <path>          verify a snapshot file
  quit | exit | q       leave
`)
}

func (r *REPL) show() {
	fmt.Fprint(r.w, r.r.Render(r.nav.View()))
	r.nav.TakeHint()
}

func (r *REPL) report(err error, ok string) {
	if err != nil {
		fmt.Fprintf(r.w, "error: %v\n", err)
		return
	}
	fmt.Fprintln(r.w, ok)
}

func (r *REPL) slotArg(args []string) (int, bool) {
	if len(args) != 1 {
		fmt.Fprintln(r.w, "need exactly one slot number")
		return 0, false
	}
	k, err := strconv.Atoi(args[0])
	if err != nil || k < 0 || k >= r.nav.Config().GroupSize {
		fmt.Fprintf(r.w, "slot must be 0..%d\n", r.nav.Config().GroupSize-1)
		return 0, false
	}
	return k, true
}

func (r *REPL) cmdDown(args []string) {
	k, ok := r.slotArg(args)
	if !ok {
		return
	}
	if _, err := r.nav.Descend(k); err != nil {
		r.report(err, "")
		return
	}
	r.show()
}

func (r *REPL) cmdUp() {
	if _, err := r.nav.Ascend(); err != nil {
		r.report(err, "")
		return
	}
	r.show()
}

func (r *REPL) cmdClick(args []string) {
	if len(args) == 1 && strings.EqualFold(args[0], "parent") {
		r.panel.Parent.Fire()
	} else {
		k, ok := r.slotArg(args)
		if !ok {
			return
		}
		r.panel.Children[k].Fire()
	}
	_, moved, err := r.nav.Tick(r.panel)
	if err != nil {
		r.report(err, "")
		return
	}
	if moved {
		r.show()
	}
}

func (r *REPL) cmdWalk(args []string) {
	steps := 10
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Fprintln(r.w, "walk needs a positive step count")
			return
		}
		steps = n
	}
	gs := r.nav.Config().GroupSize
	for i := 0; i < steps; i++ {
		var err error
		if r.walk.Intn(2) == 0 {
			_, err = r.nav.Descend(r.walk.Intn(gs))
		} else {
			_, err = r.nav.Ascend()
		}
		if err != nil {
			r.report(err, "")
			if errors.Is(err, tree.ErrUngeneratable) {
				r.log.Warnw("walk stopped", "step", i, "err", err)
			}
			return
		}
	}
	r.show()
}

func (r *REPL) cmdStats() {
	s := r.nav.Stats()
	fmt.Fprintf(r.w, "session   %s\n", r.nav.ID())
	fmt.Fprintf(r.w, "nodes     %d (%d groups)\n", s.Nodes, s.Groups)
	fmt.Fprintf(r.w, "moves     %d down, %d up, depth %d\n", s.Descents, s.Ascents, r.nav.Depth())
	mean := 0.0
	if s.Groups > 0 {
		mean = float64(s.Attempts) / float64(s.Groups)
	}
	fmt.Fprintf(r.w, "attempts  %d total, %.1f per group, %d max\n", s.Attempts, mean, s.MaxAttempts)
}

func (r *REPL) cmdSave(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.w, "save needs a path")
		return
	}
	r.report(r.nav.SaveSnapshot(args[0]), "saved "+args[0])
}

func (r *REPL) cmdAudit(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.w, "audit needs a path")
		return
	}
	a, err := tree.OpenAudit(args[0])
	if err != nil {
		r.report(err, "")
		return
	}
	defer a.Close()
	h := a.Header()
	fmt.Fprintf(r.w, "%d nodes, group size %d, %d types, seed %d, current %d\n",
		a.Len(), h.GroupSize, h.NumTypes, h.Seed, h.Current)
	r.report(tree.CheckInvariants(a), "invariants hold")
}
