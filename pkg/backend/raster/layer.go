package raster

import (
	"slices"

	"github.com/cpsdqs/birb/pkg/host"
	"github.com/cpsdqs/birb/pkg/protocol"
)

// Layer is the software renderable for a layer node. It keeps the latest
// property snapshot and an ordered list of attached sublayers; painting
// happens later, in the compositor.
type Layer struct {
	backend  *Backend
	node     *host.Node
	state    protocol.LayerPatch
	children []*Layer
}

func newLayer(b *Backend, node *host.Node, state protocol.LayerPatch) *Layer {
	return &Layer{backend: b, node: node, state: state}
}

// State returns the layer's current property snapshot.
func (l *Layer) State() protocol.LayerPatch {
	return l.state
}

// Sublayers returns the attached sublayers in attachment order.
func (l *Layer) Sublayers() []*Layer {
	return slices.Clone(l.children)
}

// Apply replaces the property snapshot with the new one.
func (l *Layer) Apply(patch protocol.NodePatch) {
	l.state = patch.Layer
}

// AddChild attaches the child's renderable as a sublayer. A child whose
// renderable is not a layer cannot be hosted here and is dropped.
func (l *Layer) AddChild(child *host.Node) {
	sub, ok := child.Renderable().(*Layer)
	if !ok {
		l.backend.logger.Warn("dropping unsupported sublayer",
			"parent", l.node.ID(), "child", child.ID())
		return
	}
	l.children = append(l.children, sub)
}

// RemoveChild detaches the child's sublayer, if attached.
func (l *Layer) RemoveChild(child *host.Node) {
	sub, ok := child.Renderable().(*Layer)
	if !ok {
		return
	}
	i := slices.Index(l.children, sub)
	if i < 0 {
		l.backend.logger.Warn("detach of sublayer that is not attached",
			"parent", l.node.ID(), "child", child.ID())
		return
	}
	l.children = slices.Delete(l.children, i, i+1)
}

// Destroy releases the layer. Sublayer nodes are removed separately by
// the registry cascade, so only local state is dropped here.
func (l *Layer) Destroy() {
	l.children = nil
}
