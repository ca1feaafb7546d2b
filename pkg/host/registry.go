package host

import (
	"log/slog"

	"github.com/cpsdqs/birb/pkg/protocol"
)

// DispatchFunc is the event sink registered at registry construction.
// It receives every emitted event unmodified, together with the opaque
// user data value supplied when the registry was created.
type DispatchFunc func(event protocol.Event, userData any)

// Registry is the root owner of all view nodes for one hosting surface.
//
// It maintains the exhaustive id → node mapping, applies patches while
// upholding the tree invariants, and routes emitted events to a single
// sink. The registry's lifetime is tied to the surface: create once, tear
// down once.
//
// Registry is not safe for concurrent use; all calls must come from the
// goroutine that owns the native view hierarchy.
type Registry struct {
	backend Backend
	nodes   map[protocol.ViewId]*Node

	sink     DispatchFunc
	userData any

	root    protocol.ViewId
	hasRoot bool

	logger *slog.Logger
}

// NewRegistry creates a registry for one surface. The sink and userData
// are captured for the registry's lifetime; sink may be nil, in which case
// emitted events are discarded. A nil logger defaults to slog.Default.
func NewRegistry(backend Backend, sink DispatchFunc, userData any, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default().With("component", "host")
	}
	return &Registry{
		backend:  backend,
		nodes:    make(map[protocol.ViewId]*Node),
		sink:     sink,
		userData: userData,
		logger:   logger,
	}
}

// Apply applies a single decoded patch.
// Returns true if the patch created a new node.
func (r *Registry) Apply(p protocol.Patch) bool {
	switch p.Type {
	case protocol.PatchUpdate:
		return r.ApplyUpdate(p.View, p.Update)
	case protocol.PatchSubview:
		r.ApplySubview(p.View, p.Child)
	case protocol.PatchRemove:
		r.ApplyRemove(p.View)
	}
	return false
}

// ApplyUpdate creates the node if absent, otherwise applies the snapshot
// to the existing node. Repeated identical payloads are idempotent; every
// call fully re-specifies all type-relevant attributes.
// Returns true if a new node was created.
func (r *Registry) ApplyUpdate(id protocol.ViewId, patch protocol.NodePatch) bool {
	if node, ok := r.nodes[id]; ok {
		node.update(patch)
		return false
	}

	// Identity first: the node exists with its id before the backend runs,
	// so the renderable can capture it during construction.
	node := &Node{host: r, id: id}
	node.update(patch)
	r.nodes[id] = node
	return true
}

// ApplySubview attaches child beneath parent. If either id is missing the
// operation is dropped: the producer may legitimately reference a node
// that was concurrently removed. No cycle detection is performed; a
// well-formed producer never attaches a node as its own descendant.
func (r *Registry) ApplySubview(parentID, childID protocol.ViewId) {
	if parentID == childID {
		r.logger.Warn("dropping subview patch attaching node to itself", "id", parentID)
		return
	}
	parent, ok := r.nodes[parentID]
	if !ok {
		r.logger.Warn("dropping subview patch for missing parent", "parent", parentID, "child", childID)
		return
	}
	child, ok := r.nodes[childID]
	if !ok {
		r.logger.Warn("dropping subview patch for missing child", "parent", parentID, "child", childID)
		return
	}
	parent.addSubview(child)
}

// ApplyRemove removes the node and, depth-first and left-to-right, every
// descendant. When it returns, no descendant of id remains in the
// registry. Removing an absent id is a no-op.
func (r *Registry) ApplyRemove(id protocol.ViewId) {
	node, ok := r.nodes[id]
	if !ok {
		return
	}

	// Capture before remove: the child list is mutated as children detach.
	children := node.Children()
	node.remove()
	delete(r.nodes, id)
	if r.hasRoot && r.root == id {
		r.hasRoot = false
	}

	for _, child := range children {
		r.ApplyRemove(child)
	}
}

// Dispatch forwards a fully-formed event to the sink registered at
// construction, along with the opaque user data. The registry does not
// interpret event contents and never reorders or coalesces events.
func (r *Registry) Dispatch(event protocol.Event) {
	r.dispatch(event)
}

func (r *Registry) dispatch(event protocol.Event) {
	if r.sink == nil {
		return
	}
	r.sink(event, r.userData)
}

// Node returns the node for id, if present.
func (r *Registry) Node(id protocol.ViewId) (*Node, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

// Contains reports whether id is live in the registry.
func (r *Registry) Contains(id protocol.ViewId) bool {
	_, ok := r.nodes[id]
	return ok
}

// Len returns the number of live nodes.
func (r *Registry) Len() int {
	return len(r.nodes)
}

// NodeIDs returns the identifiers of all live nodes. The caller owns the
// returned slice. Order is unspecified.
func (r *Registry) NodeIDs() []protocol.ViewId {
	ids := make([]protocol.ViewId, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	return ids
}

// SetRoot designates the paint entry point for collaborators such as the
// compositor. Returns false if the id is not live.
func (r *Registry) SetRoot(id protocol.ViewId) bool {
	if !r.Contains(id) {
		return false
	}
	r.root = id
	r.hasRoot = true
	return true
}

// Root returns the designated root node id, if one is set.
func (r *Registry) Root() (protocol.ViewId, bool) {
	return r.root, r.hasRoot
}
