package floating

import "sort"

// Offset pushes the floating element away from the reference along the
// placement side.
func Offset(distance float64) Middleware {
	return offset{distance: distance}
}

type offset struct {
	distance float64
}

// OffsetData records the applied displacement.
type OffsetData struct {
	X, Y      float64
	Placement Placement
}

func (offset) Name() string { return "offset" }

func (m offset) Apply(s State) Outcome {
	side := s.Placement.Side()
	multi := 1.0
	if side == SideLeft || side == SideTop {
		multi = -1
	}
	var dx, dy float64
	if side.axis() == AxisY {
		dy = m.distance * multi
	} else {
		dx = m.distance * multi
	}
	return Outcome{
		X:    s.X + dx,
		Y:    s.Y + dy,
		Data: OffsetData{X: dx, Y: dy, Placement: s.Placement},
	}
}

// Shift slides the floating element along the alignment axis so it stays
// at least padding away from the boundary.
func Shift(padding float64) Middleware {
	return shift{padding: padding}
}

type shift struct {
	padding float64
}

// ShiftData records how far the element was moved.
type ShiftData struct {
	X, Y float64
}

func (shift) Name() string { return "shift" }

func (m shift) Apply(s State) Outcome {
	overflow := DetectOverflow(s, m.padding)
	x, y := s.X, s.Y
	if s.Placement.Side().axis() == AxisY {
		x = clamp(x+overflow.Left, x, x-overflow.Right)
	} else {
		y = clamp(y+overflow.Top, y, y-overflow.Bottom)
	}
	return Outcome{
		X:    x,
		Y:    y,
		Data: ShiftData{X: x - s.X, Y: y - s.Y},
	}
}

// Direction picks which side of the perpendicular axis is tried first when
// flipping across axes.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionStart
	DirectionEnd
)

// FlipOptions configures Flip.
type FlipOptions struct {
	Padding                   float64
	FallbackAxisSideDirection Direction
}

// Flip moves to a fallback placement when the current one overflows the
// boundary on its side or along its alignment edges. Fallbacks are the
// opposite alignment, the opposite side and its alignment variants, then
// (when a direction is set) the perpendicular sides. When nothing fits, the
// placement with the least total overflow wins.
func Flip(opts FlipOptions) Middleware {
	return flip{opts: opts}
}

type flip struct {
	opts FlipOptions
}

type placementOverflow struct {
	placement Placement
	overflows []float64
}

// FlipData tracks which fallback is being tried.
type FlipData struct {
	Index     int
	overflows []placementOverflow
}

func (flip) Name() string { return "flip" }

func (m flip) Apply(s State) Outcome {
	stay := Outcome{X: s.X, Y: s.Y}
	initial := s.InitialPlacement
	initialAxis := initial.Side().axis()
	withAxisDirection := m.opts.FallbackAxisSideDirection != DirectionNone

	var fallbacks []Placement
	if initial.Alignment() == AlignCenter {
		fallbacks = []Placement{initial.opposite()}
	} else {
		fallbacks = expandedPlacements(initial)
	}
	if withAxisDirection {
		fallbacks = append(fallbacks, oppositeAxisPlacements(initial, m.opts.FallbackAxisSideDirection)...)
	}
	placements := append([]Placement{initial}, fallbacks...)

	var prev FlipData
	if existing, ok := s.Data["flip"].(FlipData); ok {
		prev = existing
	}

	overflow := DetectOverflow(s, m.opts.Padding)
	mainSide, crossSide := alignmentSides(s.Placement, s.Reference, s.Floating)
	current := []float64{
		overflow.side(s.Placement.Side()),
		overflow.side(mainSide),
		overflow.side(crossSide),
	}
	history := append(append([]placementOverflow(nil), prev.overflows...), placementOverflow{
		placement: s.Placement,
		overflows: current,
	})

	fits := true
	for _, v := range current {
		if v > 0 {
			fits = false
			break
		}
	}
	if fits {
		return stay
	}

	next := prev.Index + 1
	if next < len(placements) {
		stay.Data = FlipData{Index: next, overflows: history}
		stay.Reset = placements[next]
		return stay
	}

	reset := bestMainAxisFit(history)
	if reset == "" {
		reset = leastOverflow(history, initialAxis, withAxisDirection)
	}
	if reset != "" && reset != s.Placement {
		stay.Reset = reset
	}
	return stay
}

// bestMainAxisFit returns the tried placement that fits on its side and has
// the least alignment overflow.
func bestMainAxisFit(history []placementOverflow) Placement {
	candidates := make([]placementOverflow, 0, len(history))
	for _, entry := range history {
		if entry.overflows[0] <= 0 {
			candidates = append(candidates, entry)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].overflows[1] < candidates[j].overflows[1]
	})
	return candidates[0].placement
}

func leastOverflow(history []placementOverflow, initialAxis Axis, withAxisDirection bool) Placement {
	type scored struct {
		placement Placement
		total     float64
	}
	var scores []scored
	for _, entry := range history {
		if withAxisDirection {
			axis := entry.placement.Side().axis()
			if axis != initialAxis && axis != AxisY {
				continue
			}
		}
		total := 0.0
		for _, v := range entry.overflows {
			if v > 0 {
				total += v
			}
		}
		scores = append(scores, scored{placement: entry.placement, total: total})
	}
	if len(scores) == 0 {
		return ""
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].total < scores[j].total
	})
	return scores[0].placement
}

func expandedPlacements(p Placement) []Placement {
	opposite := p.opposite()
	return []Placement{p.oppositeAlignment(), opposite, opposite.oppositeAlignment()}
}

func oppositeAxisPlacements(p Placement, direction Direction) []Placement {
	start := direction == DirectionStart
	var sides []Side
	switch p.Side() {
	case SideTop, SideBottom:
		if start {
			sides = []Side{SideLeft, SideRight}
		} else {
			sides = []Side{SideRight, SideLeft}
		}
	default:
		if start {
			sides = []Side{SideTop, SideBottom}
		} else {
			sides = []Side{SideBottom, SideTop}
		}
	}
	align := p.Alignment()
	list := make([]Placement, 0, 4)
	for _, side := range sides {
		list = append(list, makePlacement(side, align))
	}
	if align != AlignCenter {
		for _, side := range sides {
			list = append(list, makePlacement(side, align).oppositeAlignment())
		}
	}
	return list
}

// alignmentSides returns the two boundary sides that matter along the
// alignment axis, the one the element grows towards first.
func alignmentSides(p Placement, reference, floating Rect) (Side, Side) {
	axis := p.Side().axis().opposite()
	var main Side
	if axis == AxisX {
		if p.Alignment() == AlignStart {
			main = SideRight
		} else {
			main = SideLeft
		}
	} else {
		if p.Alignment() == AlignStart {
			main = SideBottom
		} else {
			main = SideTop
		}
	}
	if axis.length(reference) > axis.length(floating) {
		main = main.opposite()
	}
	return main, main.opposite()
}
