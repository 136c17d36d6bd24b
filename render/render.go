package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ic-timon/lazytree/tree"
	"github.com/muesli/termenv"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// Option configures a Renderer.
type Option func(*Renderer)

// WithProfile forces a colour profile, e.g. termenv.Ascii for plain text.
func WithProfile(p termenv.Profile) Option {
	return func(r *Renderer) { r.profile = &p }
}

// WithWidth overrides the detected terminal width.
func WithWidth(w int) Option {
	return func(r *Renderer) { r.width = w }
}

// Renderer maps node types to coloured cells.
type Renderer struct {
	w       io.Writer
	cfg     *tree.Config
	out     *termenv.Output
	profile *termenv.Profile
	width   int
	cell    int
}

// New creates a renderer writing to w for the palette in cfg.
func New(w io.Writer, cfg *tree.Config, opts ...Option) *Renderer {
	r := &Renderer{w: w, cfg: cfg.OrDefault()}
	for _, opt := range opts {
		opt(r)
	}
	var outOpts []termenv.OutputOption
	if r.profile != nil {
		outOpts = append(outOpts, termenv.WithProfile(*r.profile))
	}
	r.out = termenv.NewOutput(w, outOpts...)
	if r.width <= 0 {
		if f, ok := w.(*os.File); ok {
			r.width = terminalWidth(f)
		}
	}
	if r.width <= 0 {
		r.width = DefaultWidth
	}
	for i := range r.cfg.Types {
		r.cell = max(r.cell, len(r.cfg.TypeName(tree.NodeType(i))))
	}
	r.cell += 5 // "[NN " prefix and closing "]"
	return r
}

// Cell renders one node of type t labelled with label.
func (r *Renderer) Cell(label string, t tree.NodeType) string {
	text := fmt.Sprintf("%-*s", r.cell, fmt.Sprintf("[%s %s]", label, r.cfg.TypeName(t)))
	hex := ""
	if t >= 0 && int(t) < len(r.cfg.Types) {
		hex = r.cfg.Types[t].Color
	}
	s := r.out.String(text)
	if hex == "" {
		return s.Faint().String()
	}
	s = s.Background(r.out.Color(hex))
	if light(hex) {
		s = s.Foreground(r.out.Color("#000000"))
	} else {
		s = s.Foreground(r.out.Color("#ffffff"))
	}
	return s.String()
}

// light reports whether a #rrggbb colour is bright enough for dark text.
func light(hex string) bool {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return false
	}
	r, g, b := float64(v>>16&0xff), float64(v>>8&0xff), float64(v&0xff)
	return 0.299*r+0.587*g+0.114*b > 140
}

// Layout returns the grid position of every slot for a group of n nodes:
// row-major cells of a ceil(sqrt(n))-wide square, skipping the centre cell,
// which belongs to the parent.
func Layout(n int) (rowSize int, cells [][2]int, centre [2]int) {
	rowSize = int(math.Ceil(math.Sqrt(float64(n))))
	if rowSize < 1 {
		rowSize = 1
	}
	centre = [2]int{rowSize / 2, rowSize / 2}
	for i := 0; len(cells) < n; i++ {
		x, y := i%rowSize, i/rowSize
		if x == centre[0] && y == centre[1] {
			continue
		}
		cells = append(cells, [2]int{x, y})
	}
	return rowSize, cells, centre
}

// Render formats v.
func (r *Renderer) Render(v tree.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "group %d  depth %d  parent %s", v.Start, v.Depth, r.cfg.TypeName(v.Parent))
	switch v.Hint.Direction {
	case tree.FromChild:
		fmt.Fprintf(&b, "  (entered through slot %d)", v.Hint.Slot)
	case tree.FromParent:
		fmt.Fprintf(&b, "  (left slot %d)", v.Hint.Slot)
	}
	b.WriteByte('\n')

	rowSize, cells, centre := Layout(len(v.Slots))
	if rowSize*(r.cell+1) > r.width {
		for _, s := range v.Slots {
			b.WriteString(r.Cell(strconv.Itoa(s.Offset), s.Type))
			b.WriteByte('\n')
		}
		return b.String()
	}

	rows := 0
	for _, c := range cells {
		rows = max(rows, c[1]+1)
	}
	rows = max(rows, centre[1]+1)
	grid := make([][]string, rows)
	blank := strings.Repeat(" ", r.cell)
	for y := range grid {
		grid[y] = make([]string, rowSize)
		for x := range grid[y] {
			grid[y][x] = blank
		}
	}
	for i, c := range cells {
		s := v.Slots[i]
		grid[c[1]][c[0]] = r.Cell(strconv.Itoa(s.Offset), s.Type)
	}
	grid[centre[1]][centre[0]] = r.Cell("^", v.Parent)

	for _, row := range grid {
		b.WriteString(strings.TrimRight(strings.Join(row, " "), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// Print writes Render(v) to the renderer's writer.
func (r *Renderer) Print(v tree.View) error {
	_, err := io.WriteString(r.w, r.Render(v))
	return err
}

// Palette formats the configured types with their weights and sampling
// probabilities.
func (r *Renderer) Palette(s *tree.Sampler) string {
	var b strings.Builder
	for i := range r.cfg.Types {
		t := tree.NodeType(i)
		fmt.Fprintf(&b, "%s weight %-6g p=%.4f\n",
			r.Cell(strconv.Itoa(i), t), s.Weight(t), s.Probability(t))
	}
	return b.String()
}
