package flow

// Point is an absolute top-left position in canvas pixels.
type Point struct {
	X, Y int
}

// Default layouter spacing, matching the reference diagram metrics.
const (
	DefaultNodeWidth  = 250
	DefaultNodeHeight = 80
	DefaultHSpacing   = 110
	DefaultVSpacing   = 90
)

// Layouter computes step positions for a flow. The zero value is not
// usable; create one with NewLayouter. Layouter carries no per-call state,
// so a single instance can lay out any number of flows.
type Layouter struct {
	NodeWidth  int // fallback width for unknown step types
	NodeHeight int // fallback height for unknown step types
	HSpacing   int // horizontal gap between branch arms
	VSpacing   int // vertical gap between consecutive steps
}

// NewLayouter returns a layouter with the default spacing constants.
func NewLayouter() *Layouter {
	return &Layouter{
		NodeWidth:  DefaultNodeWidth,
		NodeHeight: DefaultNodeHeight,
		HSpacing:   DefaultHSpacing,
		VSpacing:   DefaultVSpacing,
	}
}

// queueEntry is one pending placement in the BFS traversal.
type queueEntry struct {
	id     string
	x, y   int
	branch int
}

// StepSize returns the placement extent for a step type from the fixed
// geometry table, falling back to the layouter's generic dimensions for
// unrecognized types.
func (l *Layouter) StepSize(t StepType) (int, int) {
	w, ok := stepWidths[t]
	if !ok {
		w = l.NodeWidth
	}
	h, ok := stepHeights[t]
	if !ok {
		h = l.NodeHeight
	}
	return w, h
}

// Positions assigns a position to every declared step of f, with the flow's
// top-left anchored near (startX, startY).
//
// Every step categorized "start" seeds the traversal; a flow without start
// steps falls back to its first declared step, so no graph is rootless.
// Steps are placed on first visit only - a back-edge into an already placed
// step contributes no further geometry, which makes the traversal safe on
// cyclic input without any cycle detection. Steps unreachable from every
// root are appended in a trailing column to the right of the flow, so the
// result always covers the full step set.
func (l *Layouter) Positions(f Flow, startX, startY int) map[string]Point {
	positions := make(map[string]Point, len(f.Steps))
	visited := make(map[string]bool, len(f.Steps))

	roots := startSteps(f)

	steps := make(map[string]Step, len(f.Steps))
	for _, s := range f.Steps {
		steps[s.ID] = s
	}

	// Adjacency in connection declaration order.
	next := make(map[string][]Connection)
	for _, conn := range f.Connections {
		next[conn.From] = append(next[conn.From], conn)
	}

	currentY := startY
	currentX := startX + l.NodeWidth

	for _, root := range roots {
		if visited[root.ID] {
			continue
		}

		queue := []queueEntry{{id: root.ID, x: currentX, y: currentY}}

		for len(queue) > 0 {
			entry := queue[0]
			queue = queue[1:]

			if visited[entry.id] {
				continue
			}
			visited[entry.id] = true

			step, ok := steps[entry.id]
			if !ok {
				continue
			}

			stepW, stepH := l.StepSize(step.Type)
			positions[entry.id] = Point{X: entry.x, Y: entry.y}

			nexts := next[entry.id]
			advancedY := entry.y + stepH + l.VSpacing

			switch {
			case len(nexts) == 1:
				// Linear continuation straight down.
				if !visited[nexts[0].To] {
					queue = append(queue, queueEntry{
						id:     nexts[0].To,
						x:      entry.x,
						y:      advancedY,
						branch: entry.branch,
					})
				}

			case len(nexts) == 2:
				// Binary branch: primary arm below, alternative beside.
				for i, conn := range nexts {
					if visited[conn.To] {
						continue
					}
					if i == 0 {
						queue = append(queue, queueEntry{
							id:     conn.To,
							x:      entry.x,
							y:      advancedY,
							branch: entry.branch,
						})
					} else {
						queue = append(queue, queueEntry{
							id:     conn.To,
							x:      entry.x + stepW + l.HSpacing,
							y:      advancedY,
							branch: entry.branch + 1,
						})
					}
				}

			case len(nexts) > 2:
				// Symmetric fan-out for switch-like branching.
				for i, conn := range nexts {
					if visited[conn.To] {
						continue
					}
					offset := (i - len(nexts)/2) * (stepW + l.HSpacing)
					queue = append(queue, queueEntry{
						id:     conn.To,
						x:      entry.x + offset,
						y:      advancedY,
						branch: entry.branch + i,
					})
				}
			}

			currentY = max(currentY, advancedY)
		}
	}

	// Steps disconnected from every root trail in a vertical column to the
	// right of the main flow.
	for _, s := range f.Steps {
		if _, ok := positions[s.ID]; !ok {
			positions[s.ID] = Point{X: currentX + l.NodeWidth*2, Y: currentY}
			currentY += l.NodeHeight + l.VSpacing
		}
	}

	return positions
}

// startSteps returns the traversal roots: all steps of type "start", or
// the first declared step when none exist.
func startSteps(f Flow) []Step {
	var roots []Step
	for _, s := range f.Steps {
		if s.Type == StepStart {
			roots = append(roots, s)
		}
	}
	if len(roots) == 0 && len(f.Steps) > 0 {
		roots = f.Steps[:1]
	}
	return roots
}
