package raster

import (
	"log/slog"

	"github.com/cpsdqs/birb/pkg/host"
	"github.com/cpsdqs/birb/pkg/protocol"
)

// Backend builds software-rendered layer renderables.
type Backend struct {
	logger *slog.Logger
}

// New creates a raster backend. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default().With("component", "raster")
	}
	return &Backend{logger: logger}
}

// Create builds a renderable for node. Only layer nodes are supported;
// any other discriminant is a protocol violation and panics.
func (b *Backend) Create(node *host.Node, patch protocol.NodePatch) host.Renderable {
	switch patch.Type {
	case protocol.NodeLayer:
		return newLayer(b, node, patch.Layer)
	default:
		panic(host.UnknownNodeType(patch.Type))
	}
}
