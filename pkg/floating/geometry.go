// Package floating computes where a floating element goes relative to a
// reference element: placement coordinates, then a middleware pipeline
// (offset, shift, flip) that can move the element or restart with another
// placement.
package floating

import (
	"errors"
	"fmt"
	"strings"
)

// Rect is an axis-aligned box in viewport coordinates.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Point is a resolved position for the floating element's top-left corner.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)
}

// Side is an edge of the reference element.
type Side string

const (
	SideTop    Side = "top"
	SideRight  Side = "right"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
)

func (s Side) opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	default:
		return SideLeft
	}
}

// Axis of a side: top/bottom sit on the y axis, left/right on the x axis.
func (s Side) axis() Axis {
	if s == SideTop || s == SideBottom {
		return AxisY
	}
	return AxisX
}

// Alignment positions the floating element along the side.
type Alignment string

const (
	AlignCenter Alignment = ""
	AlignStart  Alignment = "start"
	AlignEnd    Alignment = "end"
)

// Axis names a coordinate axis.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) opposite() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

func (a Axis) length(r Rect) float64 {
	if a == AxisY {
		return r.Height
	}
	return r.Width
}

// ErrInvalidPlacement reports a placement outside the twelve supported
// side/alignment combinations.
var ErrInvalidPlacement = errors.New("floating: invalid placement")

// Placement is a side optionally followed by an alignment, e.g. "top-start".
type Placement string

const (
	Top         Placement = "top"
	TopStart    Placement = "top-start"
	TopEnd      Placement = "top-end"
	Right       Placement = "right"
	RightStart  Placement = "right-start"
	RightEnd    Placement = "right-end"
	Bottom      Placement = "bottom"
	BottomStart Placement = "bottom-start"
	BottomEnd   Placement = "bottom-end"
	Left        Placement = "left"
	LeftStart   Placement = "left-start"
	LeftEnd     Placement = "left-end"
)

// Placements lists every supported placement.
var Placements = []Placement{
	Top, TopStart, TopEnd,
	Right, RightStart, RightEnd,
	Bottom, BottomStart, BottomEnd,
	Left, LeftStart, LeftEnd,
}

// ParsePlacement validates value, accepting surrounding whitespace and any
// letter case.
func ParsePlacement(value string) (Placement, error) {
	p := Placement(strings.ToLower(strings.TrimSpace(value)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlacement, value)
	}
	return p, nil
}

// Valid reports whether p is one of Placements.
func (p Placement) Valid() bool {
	for _, candidate := range Placements {
		if p == candidate {
			return true
		}
	}
	return false
}

// Side returns the side component.
func (p Placement) Side() Side {
	side, _, _ := strings.Cut(string(p), "-")
	return Side(side)
}

// Alignment returns the alignment component.
func (p Placement) Alignment() Alignment {
	_, align, _ := strings.Cut(string(p), "-")
	return Alignment(align)
}

func makePlacement(side Side, align Alignment) Placement {
	if align == AlignCenter {
		return Placement(side)
	}
	return Placement(string(side) + "-" + string(align))
}

func (p Placement) opposite() Placement {
	return makePlacement(p.Side().opposite(), p.Alignment())
}

func (p Placement) oppositeAlignment() Placement {
	switch p.Alignment() {
	case AlignStart:
		return makePlacement(p.Side(), AlignEnd)
	case AlignEnd:
		return makePlacement(p.Side(), AlignStart)
	default:
		return p
	}
}

// Overflow holds per-side overflow distances. Positive values overflow the
// boundary; negative values are remaining room.
type Overflow struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (o Overflow) side(s Side) float64 {
	switch s {
	case SideTop:
		return o.Top
	case SideRight:
		return o.Right
	case SideBottom:
		return o.Bottom
	default:
		return o.Left
	}
}
