package tree

// Trigger is a read-and-clear activation flag for one clickable slot.
type Trigger struct {
	fired bool
}

// Fire arms the trigger.
func (t *Trigger) Fire() { t.fired = true }

// Take reports whether the trigger was armed and disarms it.
func (t *Trigger) Take() bool {
	fired := t.fired
	t.fired = false
	return fired
}

// Peek reports whether the trigger is armed without disarming it.
func (t *Trigger) Peek() bool { return t.fired }

// Panel holds the triggers of one tick: one per visible child and one for the
// parent.
type Panel struct {
	Children []Trigger
	Parent   Trigger
}

// NewPanel creates a panel for groups of groupSize nodes.
func NewPanel(groupSize int) *Panel {
	return &Panel{Children: make([]Trigger, groupSize)}
}

// Tick acts on at most one activation of p. Children are scanned in slot
// order and the first armed one wins; later children stay armed. The parent
// trigger is always cleared but only acted on when no child fired.
func (n *Navigator) Tick(p *Panel) (View, bool, error) {
	for i := range p.Children {
		if i >= n.cfg.GroupSize {
			break
		}
		if p.Children[i].Take() {
			p.Parent.Take()
			v, err := n.Descend(i)
			return v, err == nil, err
		}
	}
	if p.Parent.Take() {
		v, err := n.Ascend()
		return v, err == nil, err
	}
	return n.View(), false, nil
}
