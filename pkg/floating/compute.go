package floating

// maxResets bounds how many times middleware may restart the pipeline.
const maxResets = 50

// State is the input handed to each middleware.
type State struct {
	X, Y             float64
	Placement        Placement
	InitialPlacement Placement
	Reference        Rect
	Floating         Rect
	Boundary         Rect
	Data             map[string]any
}

// Outcome is what a middleware returns. X and Y are always the (possibly
// unchanged) coordinates. A non-empty Reset restarts the pipeline with that
// placement.
type Outcome struct {
	X, Y  float64
	Data  any
	Reset Placement
}

// Middleware adjusts the computed coordinates.
type Middleware interface {
	Name() string
	Apply(State) Outcome
}

// Result is the final position and the placement that produced it.
type Result struct {
	X, Y      float64
	Placement Placement
	Data      map[string]any
}

// Point returns the result coordinates.
func (r Result) Point() Point {
	return Point{X: r.X, Y: r.Y}
}

// Compute positions a floating element of size floating.Width×Height next to
// reference, inside boundary, starting from placement. Only the floating
// rect's dimensions are read.
func Compute(reference, floating, boundary Rect, placement Placement, middleware ...Middleware) Result {
	if !placement.Valid() {
		placement = Bottom
	}
	floating.X, floating.Y = 0, 0
	x, y := coordsFromPlacement(reference, floating, placement)
	current := placement
	data := map[string]any{}
	resets := 0

	for i := 0; i < len(middleware); i++ {
		mw := middleware[i]
		if mw == nil {
			continue
		}
		out := mw.Apply(State{
			X:                x,
			Y:                y,
			Placement:        current,
			InitialPlacement: placement,
			Reference:        reference,
			Floating:         floating,
			Boundary:         boundary,
			Data:             data,
		})
		x, y = out.X, out.Y
		if out.Data != nil {
			data[mw.Name()] = out.Data
		}
		if out.Reset != "" && resets <= maxResets {
			resets++
			current = out.Reset
			x, y = coordsFromPlacement(reference, floating, current)
			i = -1
		}
	}

	return Result{X: x, Y: y, Placement: current, Data: data}
}

func coordsFromPlacement(reference, floating Rect, placement Placement) (float64, float64) {
	side := placement.Side()
	alignAxis := side.axis().opposite()
	commonX := reference.X + reference.Width/2 - floating.Width/2
	commonY := reference.Y + reference.Height/2 - floating.Height/2
	commonAlign := alignAxis.length(reference)/2 - alignAxis.length(floating)/2

	var x, y float64
	switch side {
	case SideTop:
		x, y = commonX, reference.Y-floating.Height
	case SideBottom:
		x, y = commonX, reference.Bottom()
	case SideRight:
		x, y = reference.Right(), commonY
	default:
		x, y = reference.X-floating.Width, commonY
	}

	shift := 0.0
	switch placement.Alignment() {
	case AlignStart:
		shift = -commonAlign
	case AlignEnd:
		shift = commonAlign
	}
	if alignAxis == AxisX {
		x += shift
	} else {
		y += shift
	}
	return x, y
}

// DetectOverflow measures how far the floating element at (s.X, s.Y) spills
// over the boundary, shrunk by padding on every side.
func DetectOverflow(s State, padding float64) Overflow {
	el := Rect{X: s.X, Y: s.Y, Width: s.Floating.Width, Height: s.Floating.Height}
	return Overflow{
		Top:    s.Boundary.Top() - el.Top() + padding,
		Bottom: el.Bottom() - s.Boundary.Bottom() + padding,
		Left:   s.Boundary.Left() - el.Left() + padding,
		Right:  el.Right() - s.Boundary.Right() + padding,
	}
}

func clamp(lo, value, hi float64) float64 {
	if value > hi {
		value = hi
	}
	if value < lo {
		value = lo
	}
	return value
}
