package raster

import (
	"image/color"
	"testing"

	"github.com/cpsdqs/birb/pkg/host"
	"github.com/cpsdqs/birb/pkg/protocol"
)

func newScene(t *testing.T) *host.Registry {
	t.Helper()
	return host.NewRegistry(New(nil), nil, nil, nil)
}

func solidLayer(origin, size protocol.Vector2, bg protocol.Color) protocol.LayerPatch {
	return protocol.LayerPatch{
		Bounds:     protocol.Rect{Origin: origin, Size: size},
		Background: bg,
		Transform:  protocol.Identity(),
		Opacity:    1,
	}
}

var (
	red  = protocol.Color{R: 1, A: 1}
	blue = protocol.Color{B: 1, A: 1}
)

func addLayer(t *testing.T, reg *host.Registry, patch protocol.LayerPatch) protocol.ViewId {
	t.Helper()
	id := protocol.NewViewId()
	reg.ApplyUpdate(id, protocol.NodePatch{Type: protocol.NodeLayer, Layer: patch})
	return id
}

func pixelNear(t *testing.T, got color.RGBA, want color.RGBA, tolerance int, what string) {
	t.Helper()
	diff := func(a, b uint8) int {
		d := int(a) - int(b)
		if d < 0 {
			d = -d
		}
		return d
	}
	if diff(got.R, want.R) > tolerance || diff(got.G, want.G) > tolerance ||
		diff(got.B, want.B) > tolerance || diff(got.A, want.A) > tolerance {
		t.Errorf("%s = %v, want %v (tolerance %d)", what, got, want, tolerance)
	}
}

func TestBackendCreatesLayerRenderables(t *testing.T) {
	reg := newScene(t)
	id := addLayer(t, reg, solidLayer(protocol.Vector2{}, protocol.Vector2{X: 10, Y: 10}, red))

	node, _ := reg.Node(id)
	layer, ok := node.Renderable().(*Layer)
	if !ok {
		t.Fatalf("renderable is %T, want *Layer", node.Renderable())
	}
	if layer.State().Background != red {
		t.Errorf("layer background = %v, want %v", layer.State().Background, red)
	}
}

func TestBackendPanicsOnUnimplementedType(t *testing.T) {
	reg := newScene(t)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a node type this backend cannot build")
		}
	}()
	reg.ApplyUpdate(protocol.NewViewId(), protocol.NodePatch{Type: protocol.NodeText})
}

func TestSublayerAttachmentOrder(t *testing.T) {
	reg := newScene(t)
	parent := addLayer(t, reg, solidLayer(protocol.Vector2{}, protocol.Vector2{X: 20, Y: 20}, red))
	a := addLayer(t, reg, solidLayer(protocol.Vector2{}, protocol.Vector2{X: 5, Y: 5}, blue))
	b := addLayer(t, reg, solidLayer(protocol.Vector2{}, protocol.Vector2{X: 5, Y: 5}, blue))

	reg.ApplySubview(parent, a)
	reg.ApplySubview(parent, b)

	node, _ := reg.Node(parent)
	layer := node.Renderable().(*Layer)
	subs := layer.Sublayers()
	if len(subs) != 2 {
		t.Fatalf("sublayers = %d, want 2", len(subs))
	}

	reg.ApplyRemove(a)
	if got := layer.Sublayers(); len(got) != 1 {
		t.Errorf("sublayers after removal = %d, want 1", len(got))
	}
}

func TestRenderWithoutRoot(t *testing.T) {
	reg := newScene(t)
	addLayer(t, reg, solidLayer(protocol.Vector2{}, protocol.Vector2{X: 10, Y: 10}, red))

	img := NewCompositor(reg, nil).Render(4, 4)
	if got := img.RGBAAt(2, 2); got != (color.RGBA{}) {
		t.Errorf("pixel without a root view = %v, want transparent", got)
	}
}

func TestRenderSolidFill(t *testing.T) {
	reg := newScene(t)
	root := addLayer(t, reg, solidLayer(protocol.Vector2{}, protocol.Vector2{X: 10, Y: 10}, red))
	reg.SetRoot(root)

	img := NewCompositor(reg, nil).Render(12, 12)
	if got := img.RGBAAt(5, 5); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("interior pixel = %v, want opaque red", got)
	}
	if got := img.RGBAAt(11, 11); got != (color.RGBA{}) {
		t.Errorf("pixel outside bounds = %v, want transparent", got)
	}
}

func TestRenderOpacity(t *testing.T) {
	reg := newScene(t)
	patch := solidLayer(protocol.Vector2{}, protocol.Vector2{X: 10, Y: 10}, red)
	patch.Opacity = 0.5
	root := addLayer(t, reg, patch)
	reg.SetRoot(root)

	img := NewCompositor(reg, nil).Render(10, 10)
	pixelNear(t, img.RGBAAt(5, 5), color.RGBA{R: 128, A: 128}, 2, "half-opacity pixel")
}

func TestRenderSublayerPlacement(t *testing.T) {
	reg := newScene(t)
	root := addLayer(t, reg, solidLayer(protocol.Vector2{}, protocol.Vector2{X: 10, Y: 10}, red))
	child := addLayer(t, reg, solidLayer(protocol.Vector2{X: 4, Y: 4}, protocol.Vector2{X: 3, Y: 3}, blue))
	reg.ApplySubview(root, child)
	reg.SetRoot(root)

	img := NewCompositor(reg, nil).Render(10, 10)
	if got := img.RGBAAt(5, 5); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("sublayer pixel = %v, want opaque blue", got)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("parent pixel = %v, want opaque red", got)
	}
}

func TestRenderClipContents(t *testing.T) {
	run := func(clip bool) color.RGBA {
		reg := newScene(t)
		parent := solidLayer(protocol.Vector2{}, protocol.Vector2{X: 6, Y: 6}, red)
		parent.ClipContents = clip
		root := addLayer(t, reg, parent)
		child := addLayer(t, reg, solidLayer(protocol.Vector2{X: 4, Y: 4}, protocol.Vector2{X: 4, Y: 4}, blue))
		reg.ApplySubview(root, child)
		reg.SetRoot(root)
		return NewCompositor(reg, nil).Render(10, 10).RGBAAt(7, 7)
	}

	if got := run(true); got != (color.RGBA{}) {
		t.Errorf("clipped overhang pixel = %v, want transparent", got)
	}
	if got := run(false); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("unclipped overhang pixel = %v, want opaque blue", got)
	}
}

func TestRenderCornerRadius(t *testing.T) {
	reg := newScene(t)
	patch := solidLayer(protocol.Vector2{}, protocol.Vector2{X: 10, Y: 10}, red)
	patch.CornerRadius = 5
	root := addLayer(t, reg, patch)
	reg.SetRoot(root)

	img := NewCompositor(reg, nil).Render(10, 10)
	if got := img.RGBAAt(0, 0); got != (color.RGBA{}) {
		t.Errorf("corner pixel = %v, want transparent", got)
	}
	if got := img.RGBAAt(5, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("top edge midpoint pixel = %v, want opaque red", got)
	}
	if got := img.RGBAAt(5, 5); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("center pixel = %v, want opaque red", got)
	}
}

func TestRenderBorder(t *testing.T) {
	reg := newScene(t)
	patch := solidLayer(protocol.Vector2{}, protocol.Vector2{X: 10, Y: 10}, red)
	patch.BorderWidth = 2
	patch.BorderColor = blue
	root := addLayer(t, reg, patch)
	reg.SetRoot(root)

	img := NewCompositor(reg, nil).Render(10, 10)
	if got := img.RGBAAt(0, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("border pixel = %v, want opaque blue", got)
	}
	if got := img.RGBAAt(5, 5); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("interior pixel = %v, want opaque red", got)
	}
}

func TestRenderUpdateReflectsNewSnapshot(t *testing.T) {
	reg := newScene(t)
	root := addLayer(t, reg, solidLayer(protocol.Vector2{}, protocol.Vector2{X: 8, Y: 8}, red))
	reg.SetRoot(root)

	comp := NewCompositor(reg, nil)
	if got := comp.Render(8, 8).RGBAAt(4, 4); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("initial pixel = %v, want opaque red", got)
	}

	reg.ApplyUpdate(root, protocol.NodePatch{
		Type:  protocol.NodeLayer,
		Layer: solidLayer(protocol.Vector2{}, protocol.Vector2{X: 8, Y: 8}, blue),
	})
	if got := comp.Render(8, 8).RGBAAt(4, 4); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("pixel after update = %v, want opaque blue", got)
	}
}
