// Package host implements the host side of the birb view bridge: a
// registry of live view nodes driven by producer patches.
//
// The registry owns every node, keyed by its producer-assigned ViewId.
// Parent and child links are stored as identifiers, never as owning
// pointers, so removal can cascade through the arena without reference
// cycles. Each node delegates its native behavior to a Renderable,
// constructed per node-type variant by an injected Backend.
//
// All registry operations must run on the single goroutine that owns the
// native view hierarchy. Patches are applied strictly in the order
// received; there are no sequence numbers to recover from reordering.
//
// Failure policy: an Update patch naming a node type the backend cannot
// construct is a protocol violation and panics — the producer and host
// disagree about the wire contract and continuing would operate on an
// undefined variant. Stale references (a Subview or detach naming a node
// that is gone) are expected during concurrent removal and are dropped
// with a warning.
package host
