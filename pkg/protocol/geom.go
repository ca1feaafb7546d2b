package protocol

// Vector2 is a two-dimensional vector or point.
type Vector2 struct {
	X, Y float64
}

// Vector3 is a three-dimensional vector or point.
type Vector3 struct {
	X, Y, Z float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Origin Vector2
	Size   Vector2
}

// Contains reports whether p lies within the rectangle.
func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.Origin.X && p.X < r.Origin.X+r.Size.X &&
		p.Y >= r.Origin.Y && p.Y < r.Origin.Y+r.Size.Y
}

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Matrix3 is a 3×3 transformation matrix in column-major order:
// M00..M02 form the first column, and a point (x, y) transforms as
//
//	x' = (M00·x + M10·y + M20) / w
//	y' = (M01·x + M11·y + M21) / w
//	w  =  M02·x + M12·y + M22
//
// which covers affine transforms (bottom row 0, 0, 1) and perspective.
type Matrix3 struct {
	M00, M01, M02 float64
	M10, M11, M12 float64
	M20, M21, M22 float64
}

// Identity returns the identity matrix.
func Identity() Matrix3 {
	return Matrix3{
		M00: 1,
		M11: 1,
		M22: 1,
	}
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m Matrix3) IsIdentity() bool {
	return m == Identity()
}

// Mul returns m·n (apply n first, then m).
func (m Matrix3) Mul(n Matrix3) Matrix3 {
	return Matrix3{
		M00: m.M00*n.M00 + m.M10*n.M01 + m.M20*n.M02,
		M01: m.M01*n.M00 + m.M11*n.M01 + m.M21*n.M02,
		M02: m.M02*n.M00 + m.M12*n.M01 + m.M22*n.M02,
		M10: m.M00*n.M10 + m.M10*n.M11 + m.M20*n.M12,
		M11: m.M01*n.M10 + m.M11*n.M11 + m.M21*n.M12,
		M12: m.M02*n.M10 + m.M12*n.M11 + m.M22*n.M12,
		M20: m.M00*n.M20 + m.M10*n.M21 + m.M20*n.M22,
		M21: m.M01*n.M20 + m.M11*n.M21 + m.M21*n.M22,
		M22: m.M02*n.M20 + m.M12*n.M21 + m.M22*n.M22,
	}
}

// Apply transforms the point p, performing the perspective divide.
func (m Matrix3) Apply(p Vector2) Vector2 {
	w := m.M02*p.X + m.M12*p.Y + m.M22
	if w == 0 {
		w = 1
	}
	return Vector2{
		X: (m.M00*p.X + m.M10*p.Y + m.M20) / w,
		Y: (m.M01*p.X + m.M11*p.Y + m.M21) / w,
	}
}

// Translate returns a translation matrix.
func Translate(v Vector2) Matrix3 {
	m := Identity()
	m.M20 = v.X
	m.M21 = v.Y
	return m
}

// Inverse returns the inverse of m and true, or the identity and false if
// the matrix is singular.
func (m Matrix3) Inverse() (Matrix3, bool) {
	// Cofactor expansion. Rows of the adjugate are cofactors of columns.
	c00 := m.M11*m.M22 - m.M21*m.M12
	c01 := m.M21*m.M02 - m.M01*m.M22
	c02 := m.M01*m.M12 - m.M11*m.M02
	det := m.M00*c00 + m.M10*c01 + m.M20*c02
	if det == 0 {
		return Identity(), false
	}
	inv := 1 / det
	return Matrix3{
		M00: c00 * inv,
		M01: c01 * inv,
		M02: c02 * inv,
		M10: (m.M20*m.M12 - m.M10*m.M22) * inv,
		M11: (m.M00*m.M22 - m.M20*m.M02) * inv,
		M12: (m.M10*m.M02 - m.M00*m.M12) * inv,
		M20: (m.M10*m.M21 - m.M20*m.M11) * inv,
		M21: (m.M20*m.M01 - m.M00*m.M21) * inv,
		M22: (m.M00*m.M11 - m.M10*m.M01) * inv,
	}, true
}

func (v Vector2) encodeTo(e *Encoder) {
	e.WriteFloat64(v.X)
	e.WriteFloat64(v.Y)
}

func decodeVector2(d *Decoder) (Vector2, error) {
	var v Vector2
	var err error
	if v.X, err = d.ReadFloat64(); err != nil {
		return v, err
	}
	v.Y, err = d.ReadFloat64()
	return v, err
}

func (v Vector3) encodeTo(e *Encoder) {
	e.WriteFloat64(v.X)
	e.WriteFloat64(v.Y)
	e.WriteFloat64(v.Z)
}

func decodeVector3(d *Decoder) (Vector3, error) {
	var v Vector3
	var err error
	if v.X, err = d.ReadFloat64(); err != nil {
		return v, err
	}
	if v.Y, err = d.ReadFloat64(); err != nil {
		return v, err
	}
	v.Z, err = d.ReadFloat64()
	return v, err
}

func (r Rect) encodeTo(e *Encoder) {
	r.Origin.encodeTo(e)
	r.Size.encodeTo(e)
}

func decodeRect(d *Decoder) (Rect, error) {
	var r Rect
	var err error
	if r.Origin, err = decodeVector2(d); err != nil {
		return r, err
	}
	r.Size, err = decodeVector2(d)
	return r, err
}

func (c Color) encodeTo(e *Encoder) {
	e.WriteFloat64(c.R)
	e.WriteFloat64(c.G)
	e.WriteFloat64(c.B)
	e.WriteFloat64(c.A)
}

func decodeColor(d *Decoder) (Color, error) {
	var c Color
	var err error
	if c.R, err = d.ReadFloat64(); err != nil {
		return c, err
	}
	if c.G, err = d.ReadFloat64(); err != nil {
		return c, err
	}
	if c.B, err = d.ReadFloat64(); err != nil {
		return c, err
	}
	c.A, err = d.ReadFloat64()
	return c, err
}

func (m Matrix3) encodeTo(e *Encoder) {
	e.WriteFloat64(m.M00)
	e.WriteFloat64(m.M01)
	e.WriteFloat64(m.M02)
	e.WriteFloat64(m.M10)
	e.WriteFloat64(m.M11)
	e.WriteFloat64(m.M12)
	e.WriteFloat64(m.M20)
	e.WriteFloat64(m.M21)
	e.WriteFloat64(m.M22)
}

func decodeMatrix3(d *Decoder) (Matrix3, error) {
	var m Matrix3
	fields := []*float64{
		&m.M00, &m.M01, &m.M02,
		&m.M10, &m.M11, &m.M12,
		&m.M20, &m.M21, &m.M22,
	}
	for _, f := range fields {
		v, err := d.ReadFloat64()
		if err != nil {
			return m, err
		}
		*f = v
	}
	return m, nil
}
