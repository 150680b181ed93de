// Package geometry maps positions between the three coordinate spaces of a canvas.
//
//   - Pointer space: raw input coordinates relative to the client viewport.
//   - Scroll space: pointer space minus the surface's on-screen origin.
//   - Model space: zoom- and scroll-independent item coordinates as persisted.
//
// Content space (scroll space plus the scroll offset) is the zoomed layer the
// items are painted on; dividing it by the zoom scale yields model space.
//
// Everything here is a pure function of its inputs. Callers rebuild a Frame from
// live viewport state for every conversion instead of caching one.
package geometry

import "math"

// Point is a 2D position or offset.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(o Point) Point   { return Point{X: p.X + o.X, Y: p.Y + o.Y} }
func (p Point) Sub(o Point) Point   { return Point{X: p.X - o.X, Y: p.Y - o.Y} }
func (p Point) Mul(k float64) Point { return Point{X: p.X * k, Y: p.Y * k} }
func (p Point) Div(k float64) Point { return Point{X: p.X / k, Y: p.Y / k} }

// IsFinite reports whether neither component is NaN or infinite.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Near reports whether p and o differ by at most eps on each axis.
func (p Point) Near(o Point, eps float64) bool {
	return math.Abs(p.X-o.X) <= eps && math.Abs(p.Y-o.Y) <= eps
}

// ClampNonNegative pins negative components to zero. Model coordinates are never negative.
func (p Point) ClampNonNegative() Point {
	return Point{X: math.Max(0, p.X), Y: math.Max(0, p.Y)}
}

// Size is a width/height pair.
type Size struct {
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Sz is shorthand for Size{W: w, H: h}.
func Sz(w, h float64) Size { return Size{W: w, H: h} }

// Half returns the offset from a box's top-left corner to its center.
func (s Size) Half() Point { return Point{X: s.W / 2, Y: s.H / 2} }

// Mul scales both dimensions.
func (s Size) Mul(k float64) Size { return Size{W: s.W * k, H: s.H * k} }

// IsEmpty reports whether either dimension is non-positive.
func (s Size) IsEmpty() bool { return s.W <= 0 || s.H <= 0 }

// Rect is an axis-aligned rectangle defined by its top-left corner and size.
type Rect struct {
	Min  Point `json:"min"`
	Size Size  `json:"size"`
}

// R builds a Rect from corner and dimensions.
func R(x, y, w, h float64) Rect { return Rect{Min: Pt(x, y), Size: Sz(w, h)} }

func (r Rect) Max() Point { return Point{X: r.Min.X + r.Size.W, Y: r.Min.Y + r.Size.H} }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	hi := r.Max()
	return p.X >= r.Min.X && p.Y >= r.Min.Y && p.X <= hi.X && p.Y <= hi.Y
}

// DefaultZoom is the identity zoom percentage.
const DefaultZoom = 100

// Scale converts a zoom percentage to a multiplier. Zoom values <= 0 cannot be
// produced by the viewport; a frame built by hand with one is treated as 100%.
func Scale(zoom int) float64 {
	if zoom <= 0 {
		return 1
	}
	return float64(zoom) / 100
}

// Frame is a snapshot of the view state needed to convert between spaces.
type Frame struct {
	// Origin is the surface's top-left corner in pointer space.
	Origin Point
	// Scroll is the scroll offset of the surface in content space.
	Scroll Point
	// Zoom is the zoom percentage.
	Zoom int
}

// Scale returns the frame's zoom multiplier.
func (f Frame) Scale() float64 { return Scale(f.Zoom) }

// PointerToScroll strips the surface origin.
func (f Frame) PointerToScroll(p Point) Point { return p.Sub(f.Origin) }

// ScrollToContent adds the scroll offset.
func (f Frame) ScrollToContent(p Point) Point { return p.Add(f.Scroll) }

// PointerToContent is PointerToScroll followed by ScrollToContent.
func (f Frame) PointerToContent(p Point) Point { return p.Sub(f.Origin).Add(f.Scroll) }

// ContentToModel removes zoom.
func (f Frame) ContentToModel(p Point) Point { return p.Div(f.Scale()) }

// ModelToContent applies zoom.
func (f Frame) ModelToContent(p Point) Point { return p.Mul(f.Scale()) }

// PointerToModel computes (pointer - origin + scroll) / scale.
func (f Frame) PointerToModel(p Point) Point {
	return f.ContentToModel(f.PointerToContent(p))
}

// ModelToPointer inverts PointerToModel.
func (f Frame) ModelToPointer(m Point) Point {
	return f.ModelToContent(m).Sub(f.Scroll).Add(f.Origin)
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
