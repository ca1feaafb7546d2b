package host

import (
	"fmt"

	"github.com/cpsdqs/birb/pkg/protocol"
)

// Renderable is the capability interface a node delegates its native
// behavior to. One renderable exists per node, exclusively owned by it;
// the engine never inspects a renderable beyond this interface.
type Renderable interface {
	// Apply overwrites all mutable visual attributes from the payload.
	// A patch is a full snapshot of all type-relevant attributes, never a
	// delta, so implementations must not merge with previous state.
	Apply(patch protocol.NodePatch)

	// AddChild attaches the child's renderable beneath this one in native
	// z-order (append semantics). If the child cannot be hosted under this
	// variant the call must be ignored and logged as a warning, never an
	// error.
	AddChild(child *Node)

	// RemoveChild detaches the child's renderable. If no matching child is
	// attached this is a no-op logged as a warning; it must never corrupt
	// sibling state.
	RemoveChild(child *Node)

	// Destroy releases native resources. Called at most once.
	Destroy()
}

// Backend constructs renderables for node-type variants.
//
// Create receives the node before the node's renderable slot is filled, so
// the renderable can capture the node's identity during construction. The
// returned renderable must be fully initialized and displayable, with the
// initial payload already applied.
//
// Create must panic for a node type it has no implementation for: an
// unrecognized discriminant means the producer and host disagree about the
// wire contract, which is unrecoverable by design.
type Backend interface {
	Create(node *Node, patch protocol.NodePatch) Renderable
}

// UnknownNodeType builds the panic value for a node type discriminant the
// backend has no renderable implementation for. Backends use it so the
// fatal condition reads the same everywhere.
func UnknownNodeType(t protocol.NodeType) string {
	return fmt.Sprintf("host: no renderable implementation for node type %d (%s); producer/host protocol mismatch", uint8(t), t)
}
