package flow

import "testing"

func step(id string, t StepType) Step {
	return Step{ID: id, Name: id, Type: t}
}

func conn(from, to string) Connection {
	return Connection{From: from, To: to}
}

func TestPositionsLinear(t *testing.T) {
	f := Flow{
		Steps: []Step{
			step("s1", StepStart),
			step("s2", StepProcess),
			step("s3", StepEnd),
		},
		Connections: []Connection{conn("s1", "s2"), conn("s2", "s3")},
	}

	pos := NewLayouter().Positions(f, 0, 0)

	// The cursor starts one node width right of startX.
	if pos["s1"] != (Point{X: 250, Y: 0}) {
		t.Errorf("s1 = %+v", pos["s1"])
	}
	// Advance by the start step's height (60) plus vertical spacing.
	if pos["s2"] != (Point{X: 250, Y: 150}) {
		t.Errorf("s2 = %+v", pos["s2"])
	}
	// Advance by the process height (80) plus spacing.
	if pos["s3"] != (Point{X: 250, Y: 320}) {
		t.Errorf("s3 = %+v", pos["s3"])
	}
}

func TestPositionsBinaryBranch(t *testing.T) {
	f := Flow{
		Steps: []Step{
			step("s1", StepStart),
			step("a", StepProcess),
			step("b", StepProcess),
			step("c", StepError),
		},
		Connections: []Connection{
			conn("s1", "a"),
			conn("a", "b"), // primary: straight down
			conn("a", "c"), // alternative: beside
		},
	}

	pos := NewLayouter().Positions(f, 0, 0)

	if pos["a"] != (Point{X: 250, Y: 150}) {
		t.Errorf("a = %+v", pos["a"])
	}
	if pos["b"] != (Point{X: 250, Y: 320}) {
		t.Errorf("b = %+v", pos["b"])
	}
	// The second arm shifts right by the branching step's width (280)
	// plus horizontal spacing.
	if pos["c"] != (Point{X: 640, Y: 320}) {
		t.Errorf("c = %+v", pos["c"])
	}
}

func TestPositionsFanOut(t *testing.T) {
	f := Flow{
		Steps: []Step{
			step("hub", StepDecision),
			step("a", StepProcess),
			step("b", StepProcess),
			step("c", StepProcess),
		},
		Connections: []Connection{
			conn("hub", "a"),
			conn("hub", "b"),
			conn("hub", "c"),
		},
	}

	pos := NewLayouter().Positions(f, 0, 0)

	// hub is the fallback root (no start step): x = 250, decision w = 250.
	// Offsets are (i - 3/2) * (250 + 110) = -360, 0, 360.
	y := 0 + 70 + 90
	if pos["a"] != (Point{X: -110, Y: y}) {
		t.Errorf("a = %+v", pos["a"])
	}
	if pos["b"] != (Point{X: 250, Y: y}) {
		t.Errorf("b = %+v", pos["b"])
	}
	if pos["c"] != (Point{X: 610, Y: y}) {
		t.Errorf("c = %+v", pos["c"])
	}
}

func TestPositionsCycleSafe(t *testing.T) {
	f := Flow{
		Steps: []Step{
			step("s1", StepStart),
			step("s2", StepProcess),
		},
		Connections: []Connection{
			conn("s1", "s2"),
			conn("s2", "s1"), // back-edge
		},
	}

	pos := NewLayouter().Positions(f, 0, 0)

	if len(pos) != 2 {
		t.Fatalf("positions = %d, want 2", len(pos))
	}
	// The back-edge must not move the already-placed start step.
	if pos["s1"] != (Point{X: 250, Y: 0}) {
		t.Errorf("s1 = %+v", pos["s1"])
	}
}

func TestPositionsEveryStepPlaced(t *testing.T) {
	f := Flow{
		Steps: []Step{
			step("s1", StepStart),
			step("orphan", StepProcess),
			step("island", StepData),
		},
		Connections: nil,
	}

	pos := NewLayouter().Positions(f, 0, 0)

	if len(pos) != 3 {
		t.Fatalf("positions = %d, want 3", len(pos))
	}
	// Unreachable steps trail in a column two node widths right of the
	// cursor.
	if pos["orphan"] != (Point{X: 750, Y: 150}) {
		t.Errorf("orphan = %+v", pos["orphan"])
	}
	if pos["island"] != (Point{X: 750, Y: 320}) {
		t.Errorf("island = %+v", pos["island"])
	}
}

func TestPositionsFallbackRoot(t *testing.T) {
	f := Flow{
		Steps:       []Step{step("first", StepProcess), step("second", StepProcess)},
		Connections: []Connection{conn("first", "second")},
	}

	pos := NewLayouter().Positions(f, 0, 0)

	// No start step: the first declared step seeds the traversal.
	if pos["first"] != (Point{X: 250, Y: 0}) {
		t.Errorf("first = %+v", pos["first"])
	}
	if pos["second"] != (Point{X: 250, Y: 170}) {
		t.Errorf("second = %+v", pos["second"])
	}
}

func TestPositionsEmptyFlow(t *testing.T) {
	pos := NewLayouter().Positions(Flow{}, 0, 0)
	if len(pos) != 0 {
		t.Errorf("positions = %d, want 0", len(pos))
	}
}

func TestStepSizeFallback(t *testing.T) {
	l := NewLayouter()

	w, h := l.StepSize(StepProcess)
	if w != 280 || h != 80 {
		t.Errorf("StepSize(process) = (%d, %d), want (280, 80)", w, h)
	}

	w, h = l.StepSize("mystery")
	if w != l.NodeWidth || h != l.NodeHeight {
		t.Errorf("StepSize(unknown) = (%d, %d), want layouter defaults", w, h)
	}
}

func TestStepTypeColor(t *testing.T) {
	if c := StepError.Color(); c != "1" {
		t.Errorf("error color = %q, want 1", c)
	}
	if c := StepType("mystery").Color(); c != "5" {
		t.Errorf("unknown color = %q, want 5", c)
	}
}
