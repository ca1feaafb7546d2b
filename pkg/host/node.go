package host

import (
	"slices"

	"github.com/cpsdqs/birb/pkg/protocol"
)

// Node is one entry in the view tree: a type tag, exactly one renderable,
// an optional parent back-reference and an ordered list of child
// identifiers. Children are owned by the registry and referenced by id;
// the parent reference is a lookup relation, never an ownership edge.
//
// Nodes are built identity-first: the registry constructs the node with
// its ViewId, then asks the backend for a renderable, then attaches it.
// The renderable slot is only nil inside that construction window.
type Node struct {
	host *Registry
	id   protocol.ViewId

	nodeType    protocol.NodeType
	renderable  Renderable
	initialized bool

	parent    protocol.ViewId
	hasParent bool
	children  []protocol.ViewId
}

// ID returns the node's immutable identifier.
func (n *Node) ID() protocol.ViewId {
	return n.id
}

// Type returns the node's current type tag.
func (n *Node) Type() protocol.NodeType {
	return n.nodeType
}

// Renderable returns the node's renderable instance.
func (n *Node) Renderable() Renderable {
	return n.renderable
}

// Parent returns the parent's identifier, if the node is attached.
func (n *Node) Parent() (protocol.ViewId, bool) {
	return n.parent, n.hasParent
}

// Children returns a copy of the ordered child identifier list.
func (n *Node) Children() []protocol.ViewId {
	return slices.Clone(n.children)
}

// Emit dispatches an event from this node. The handler identifier is
// derived from the node's id and the event type tag; the payload is
// forwarded unmodified, in emission order.
func (n *Node) Emit(t protocol.EventTypeID, timestamp float64, data any) {
	n.host.dispatch(protocol.Event{
		Type:      t,
		Handler:   protocol.HandlerID{View: n.id, Type: t},
		Timestamp: timestamp,
		Data:      data,
	})
}

// update applies an Update payload. A type change (or the very first
// update) replaces the renderable wholesale: the old native resource class
// cannot be reconciled in place, so the old renderable is destroyed and a
// new one created from the payload. Same-type updates delegate to Apply.
func (n *Node) update(patch protocol.NodePatch) {
	if n.initialized && patch.Type == n.nodeType {
		n.renderable.Apply(patch)
		return
	}

	if n.initialized {
		n.renderable.Destroy()
		n.renderable = nil
	}
	n.nodeType = patch.Type
	n.renderable = n.host.backend.Create(n, patch)
	n.initialized = true
}

// addSubview attaches child beneath this node, keeping the child's parent
// reference and this node's child list consistent as one operation. A
// child that is already attached elsewhere is detached from its old parent
// first.
func (n *Node) addSubview(child *Node) {
	if child.hasParent {
		if child.parent == n.id {
			return
		}
		if old, ok := n.host.nodes[child.parent]; ok {
			old.removeSubview(child)
		}
	}
	child.parent = n.id
	child.hasParent = true
	n.children = append(n.children, child.id)
	n.renderable.AddChild(child)
}

// removeSubview detaches child from this node, clearing both sides of the
// relationship before delegating to the renderable.
func (n *Node) removeSubview(child *Node) {
	idx := slices.Index(n.children, child.id)
	if idx >= 0 {
		n.children = slices.Delete(n.children, idx, idx+1)
	}
	if child.hasParent && child.parent == n.id {
		child.hasParent = false
		child.parent = protocol.ViewId{}
	}
	n.renderable.RemoveChild(child)
}

// remove detaches the node from its parent (if any) and destroys its
// renderable. It does not recurse into children; cascading is the
// registry's responsibility, which keeps single-node removal a local,
// composable primitive.
func (n *Node) remove() {
	if n.hasParent {
		if parent, ok := n.host.nodes[n.parent]; ok {
			parent.removeSubview(n)
		}
		n.hasParent = false
	}
	if n.initialized {
		n.renderable.Destroy()
	}
}
