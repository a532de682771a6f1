// Package geom implements the affine-transform codec used to convert
// between matrix-based element placement and top-left geometry.
package geom

import "math"

// EMUPerPoint is the fixed conversion factor of the source geometry
// unit (12700 EMU = 1 point).
const EMUPerPoint = 12700.0

// Affine is a 2D affine transform. The linear part maps column
// vectors, v' = [[ScaleX ShearX] [ShearY ScaleY]]·v + (TranslateX, TranslateY).
// Translation is in matrix space, relative to the rotated/scaled
// frame, not the top-left corner.
type Affine struct {
	ScaleX     float64
	ShearX     float64
	ShearY     float64
	ScaleY     float64
	TranslateX float64
	TranslateY float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{ScaleX: 1, ScaleY: 1}
}

// Det returns the determinant of the linear part. A negative
// determinant means exactly one axis is flipped.
func (a Affine) Det() float64 {
	return a.ScaleX*a.ScaleY - a.ShearX*a.ShearY
}

// Apply maps the point (x, y) through the transform.
func (a Affine) Apply(x, y float64) (float64, float64) {
	return a.ScaleX*x + a.ShearX*y + a.TranslateX,
		a.ShearY*x + a.ScaleY*y + a.TranslateY
}

// ScaleTranslation multiplies only the translation components,
// leaving the linear part untouched. Used to re-unitize a transform
// (points to EMU and back) without recomposing it.
func (a Affine) ScaleTranslation(f float64) Affine {
	a.TranslateX *= f
	a.TranslateY *= f
	return a
}

// Compose concatenates two transforms so that the child is applied
// first and the parent second. The linear parts multiply; the child
// translation is carried through the parent's linear map. Compose
// satisfies Compose(Identity(), m) == m == Compose(m, Identity()).
func Compose(parent, child Affine) Affine {
	return Affine{
		ScaleX:     parent.ScaleX*child.ScaleX + parent.ShearX*child.ShearY,
		ShearX:     parent.ScaleX*child.ShearX + parent.ShearX*child.ScaleY,
		ShearY:     parent.ShearY*child.ScaleX + parent.ScaleY*child.ShearY,
		ScaleY:     parent.ShearY*child.ShearX + parent.ScaleY*child.ScaleY,
		TranslateX: parent.TranslateX + parent.ScaleX*child.TranslateX + parent.ShearX*child.TranslateY,
		TranslateY: parent.TranslateY + parent.ShearY*child.TranslateX + parent.ScaleY*child.TranslateY,
	}
}

// Geometry is the top-left description of a placed element.
type Geometry struct {
	X           float64
	Y           float64
	W           float64
	H           float64
	RotationDeg float64 // [0, 360)
	FlipH       bool
	FlipV       bool
}

// Decompose recovers top-left geometry from a transform and the
// element's base (unscaled) size.
//
// Scale factors are recovered per column so that rotation moved into
// the shear slots is not lost. When the determinant is negative,
// exactly one axis is flipped; the axis is not recoverable from the
// matrix alone, so the flip is reported as horizontal. The rotation
// angle is then read from the unflipped column.
func Decompose(m Affine, baseW, baseH float64) Geometry {
	scaleW := math.Hypot(m.ScaleX, m.ShearY)
	scaleH := math.Hypot(m.ShearX, m.ScaleY)

	flipH := m.Det() < 0
	var rad float64
	if flipH {
		rad = math.Atan2(-m.ShearX, m.ScaleY)
	} else {
		rad = math.Atan2(m.ShearY, m.ScaleX)
	}
	deg := normalizeDeg(rad * 180 / math.Pi)

	w := baseW * scaleW
	h := baseH * scaleH
	hw := w / 2
	hh := h / 2
	cos := math.Cos(deg * math.Pi / 180)
	sin := math.Sin(deg * math.Pi / 180)

	return Geometry{
		X:           m.TranslateX - hw*(1-cos) - hh*sin,
		Y:           m.TranslateY - hh*(1-cos) + hw*sin,
		W:           w,
		H:           h,
		RotationDeg: deg,
		FlipH:       flipH,
	}
}

// BuildMatrix is the inverse of Decompose: it rebuilds the transform
// from top-left geometry, with the base size scaled to 1 so that the
// scale factors carry the full size.
//
// When the original transform is known, prefer reusing it directly
// (adjusting only the translation unit); rebuilding from decomposed
// rotation and scale accumulates floating error on rotated or sheared
// elements.
func BuildMatrix(g Geometry) Affine {
	rad := g.RotationDeg * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)

	sx := g.W
	sy := g.H
	if g.FlipH {
		sx = -sx
	}
	if g.FlipV {
		sy = -sy
	}

	hw := g.W / 2
	hh := g.H / 2
	return Affine{
		ScaleX:     sx * cos,
		ShearX:     -sy * sin,
		ShearY:     sx * sin,
		ScaleY:     sy * cos,
		TranslateX: g.X + hw*(1-cos) + hh*sin,
		TranslateY: g.Y + hh*(1-cos) - hw*sin,
	}
}

// ScaleFactors returns the per-axis scale magnitudes of the linear
// part, robust against rotation having moved them into the shear
// slots.
func (a Affine) ScaleFactors() (sw, sh float64) {
	return math.Hypot(a.ScaleX, a.ShearY), math.Hypot(a.ShearX, a.ScaleY)
}

// BuildPlacement returns a unit-scale placement transform for an
// element created at its full base size: rotation and flips occupy
// the linear part, and the translation is derived from the top-left
// position the same way BuildMatrix derives it.
func BuildPlacement(g Geometry) Affine {
	rad := g.RotationDeg * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)

	sx, sy := 1.0, 1.0
	if g.FlipH {
		sx = -1
	}
	if g.FlipV {
		sy = -1
	}

	hw := g.W / 2
	hh := g.H / 2
	return Affine{
		ScaleX:     sx * cos,
		ShearX:     -sy * sin,
		ShearY:     sx * sin,
		ScaleY:     sy * cos,
		TranslateX: g.X + hw*(1-cos) + hh*sin,
		TranslateY: g.Y + hh*(1-cos) - hw*sin,
	}
}

// normalizeDeg maps an angle into [0, 360) and rounds away float
// noise (269.9999 becomes 270).
func normalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	deg = math.Round(deg*100) / 100
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// EMUToPoints converts an EMU length to points.
func EMUToPoints(v float64) float64 { return v / EMUPerPoint }

// PointsToEMU converts a point length to EMU.
func PointsToEMU(v float64) float64 { return v * EMUPerPoint }
