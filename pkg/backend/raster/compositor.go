package raster

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/cpsdqs/birb/pkg/host"
	"github.com/cpsdqs/birb/pkg/protocol"
)

// Compositor paints the tree below a registry's root view into an RGBA
// image. Each layer subtree is rendered into an offscreen canvas in the
// layer's own coordinate space and then transformed into its parent, so
// group opacity and clipping behave as a unit.
type Compositor struct {
	reg    *host.Registry
	logger *slog.Logger
}

// NewCompositor creates a compositor over reg. A nil logger falls back
// to slog.Default.
func NewCompositor(reg *host.Registry, logger *slog.Logger) *Compositor {
	if logger == nil {
		logger = slog.Default().With("component", "raster")
	}
	return &Compositor{reg: reg, logger: logger}
}

// Render composites the root view's subtree into a width×height image.
// Without a root view, or with a root that is not a layer, the result is
// fully transparent.
func (c *Compositor) Render(width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	rootID, ok := c.reg.Root()
	if !ok {
		return dst
	}
	node, ok := c.reg.Node(rootID)
	if !ok {
		return dst
	}
	layer, ok := node.Renderable().(*Layer)
	if !ok {
		c.logger.Warn("root view is not a layer", "view", rootID)
		return dst
	}
	c.compose(dst, layer, protocol.Identity())
	return dst
}

// compose renders l into dst. parent maps l's outer coordinate space
// (the space its bounds origin lives in) to dst coordinates.
func (c *Compositor) compose(dst *image.RGBA, l *Layer, parent protocol.Matrix3) {
	st := l.state
	if st.Opacity <= 0 {
		return
	}

	canvas := c.renderCanvas(l)
	if canvas == nil {
		return
	}

	world := parent.Mul(localTransform(st))
	aff, affine := affinePart(world)
	if !affine {
		c.logger.Warn("layer transform has perspective terms, using affine part",
			"view", l.node.ID())
	}

	opts := &draw.Options{}
	if st.Opacity < 1 {
		alpha := uint16(math.Round(st.Opacity * 0xffff))
		opts.SrcMask = image.NewUniform(color.Alpha16{A: alpha})
	}
	if isIntTranslation(aff) && opts.SrcMask == nil {
		// Exact pixel copy for the common untransformed case.
		r := canvas.Bounds().Add(image.Pt(int(aff[2]), int(aff[5])))
		draw.Draw(dst, r, canvas, canvas.Bounds().Min, draw.Over)
		return
	}
	draw.ApproxBiLinear.Transform(dst, aff, canvas, canvas.Bounds(), draw.Over, opts)
}

// renderCanvas paints l's background and sublayers in l's local
// coordinate space. The canvas rectangle covers the subtree's extent, so
// unclipped sublayers outside the bounds still appear.
func (c *Compositor) renderCanvas(l *Layer) *image.RGBA {
	ext := subtreeExtent(l)
	r := image.Rect(
		int(math.Floor(ext.Origin.X)), int(math.Floor(ext.Origin.Y)),
		int(math.Ceil(ext.Origin.X+ext.Size.X)), int(math.Ceil(ext.Origin.Y+ext.Size.Y)),
	)
	if r.Empty() {
		return nil
	}
	canvas := image.NewRGBA(r)
	paintBackground(canvas, l.state)
	for _, sub := range l.children {
		c.compose(canvas, sub, protocol.Identity())
	}
	return canvas
}

// localTransform maps a layer's local space into the space of its
// parent layer: place the bounds origin, then apply the layer transform.
func localTransform(st protocol.LayerPatch) protocol.Matrix3 {
	translate := protocol.Identity()
	translate.M20 = st.Bounds.Origin.X
	translate.M21 = st.Bounds.Origin.Y
	return translate.Mul(st.Transform)
}

// subtreeExtent is the bounding box of a layer and, when the layer does
// not clip, its sublayers, in the layer's local coordinates.
func subtreeExtent(l *Layer) protocol.Rect {
	st := l.state
	own := protocol.Rect{Size: st.Bounds.Size}
	if st.ClipContents {
		return own
	}
	ext := own
	for _, sub := range l.children {
		se := subtreeExtent(sub)
		ext = unionRect(ext, transformRect(localTransform(sub.state), se))
	}
	return ext
}

func transformRect(m protocol.Matrix3, r protocol.Rect) protocol.Rect {
	corners := [4]protocol.Vector2{
		m.Apply(r.Origin),
		m.Apply(protocol.Vector2{X: r.Origin.X + r.Size.X, Y: r.Origin.Y}),
		m.Apply(protocol.Vector2{X: r.Origin.X, Y: r.Origin.Y + r.Size.Y}),
		m.Apply(protocol.Vector2{X: r.Origin.X + r.Size.X, Y: r.Origin.Y + r.Size.Y}),
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, p := range corners[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return protocol.Rect{
		Origin: protocol.Vector2{X: minX, Y: minY},
		Size:   protocol.Vector2{X: maxX - minX, Y: maxY - minY},
	}
}

func unionRect(a, b protocol.Rect) protocol.Rect {
	if a.Size.X <= 0 || a.Size.Y <= 0 {
		return b
	}
	if b.Size.X <= 0 || b.Size.Y <= 0 {
		return a
	}
	minX := math.Min(a.Origin.X, b.Origin.X)
	minY := math.Min(a.Origin.Y, b.Origin.Y)
	maxX := math.Max(a.Origin.X+a.Size.X, b.Origin.X+b.Size.X)
	maxY := math.Max(a.Origin.Y+a.Size.Y, b.Origin.Y+b.Size.Y)
	return protocol.Rect{
		Origin: protocol.Vector2{X: minX, Y: minY},
		Size:   protocol.Vector2{X: maxX - minX, Y: maxY - minY},
	}
}

// affinePart converts m to the row-major affine form x/image/draw
// expects. The second result is false when m carries perspective terms,
// which the software path cannot represent.
func affinePart(m protocol.Matrix3) (f64.Aff3, bool) {
	w := m.M22
	if w == 0 {
		w = 1
	}
	aff := f64.Aff3{
		m.M00 / w, m.M10 / w, m.M20 / w,
		m.M01 / w, m.M11 / w, m.M21 / w,
	}
	return aff, m.M02 == 0 && m.M12 == 0
}

func isIntTranslation(a f64.Aff3) bool {
	return a[0] == 1 && a[1] == 0 && a[3] == 0 && a[4] == 1 &&
		a[2] == math.Trunc(a[2]) && a[5] == math.Trunc(a[5])
}

// paintBackground fills the layer's rounded bounds rect with the
// background color and strokes the border ring on top of it.
func paintBackground(canvas *image.RGBA, st protocol.LayerPatch) {
	w, h := st.Bounds.Size.X, st.Bounds.Size.Y
	if w <= 0 || h <= 0 {
		return
	}
	radius := math.Min(st.CornerRadius, math.Min(w, h)/2)
	bw := st.BorderWidth
	bg := premultiply(st.Background)
	border := premultiply(st.BorderColor)

	x0 := max(canvas.Bounds().Min.X, 0)
	y0 := max(canvas.Bounds().Min.Y, 0)
	x1 := min(canvas.Bounds().Max.X, int(math.Ceil(w)))
	y1 := min(canvas.Bounds().Max.Y, int(math.Ceil(h)))

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px := float64(x) + 0.5
			py := float64(y) + 0.5
			if !inRoundedRect(px, py, w, h, radius) {
				continue
			}
			c := bg
			if bw > 0 && !inRoundedRect(px-bw, py-bw, w-2*bw, h-2*bw, math.Max(radius-bw, 0)) {
				c = border
			}
			if c.A == 0 {
				continue
			}
			blendOver(canvas, x, y, c)
		}
	}
}

// inRoundedRect reports whether the point (px, py) lies inside a
// rounded rectangle spanning (0, 0)..(w, h) with the given corner
// radius.
func inRoundedRect(px, py, w, h, radius float64) bool {
	if px < 0 || py < 0 || px > w || py > h {
		return false
	}
	if radius <= 0 {
		return true
	}
	cx := math.Min(math.Max(px, radius), w-radius)
	cy := math.Min(math.Max(py, radius), h-radius)
	dx, dy := px-cx, py-cy
	return dx*dx+dy*dy <= radius*radius
}

func premultiply(c protocol.Color) color.RGBA {
	clamp := func(v float64) float64 { return math.Min(math.Max(v, 0), 1) }
	a := clamp(c.A)
	return color.RGBA{
		R: uint8(math.Round(clamp(c.R) * a * 255)),
		G: uint8(math.Round(clamp(c.G) * a * 255)),
		B: uint8(math.Round(clamp(c.B) * a * 255)),
		A: uint8(math.Round(a * 255)),
	}
}

func blendOver(img *image.RGBA, x, y int, c color.RGBA) {
	if c.A == 0xff {
		img.SetRGBA(x, y, c)
		return
	}
	dst := img.RGBAAt(x, y)
	inv := uint32(0xff - c.A)
	img.SetRGBA(x, y, color.RGBA{
		R: c.R + uint8((uint32(dst.R)*inv+127)/255),
		G: c.G + uint8((uint32(dst.G)*inv+127)/255),
		B: c.B + uint8((uint32(dst.B)*inv+127)/255),
		A: c.A + uint8((uint32(dst.A)*inv+127)/255),
	})
}
