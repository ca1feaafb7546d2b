// Package protocol implements the binary wire protocol between a birb
// producer and the native host.
//
// The producer describes a tree of renderable nodes as a stream of patches;
// the host applies them to a live view hierarchy and sends input events back.
// Both directions share one connection and a common framing layer.
//
// # Wire Format
//
// All messages are framed with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameHello (0x00): Connection setup
//   - FramePatches (0x01): Producer → Host view-tree patches
//   - FrameEvent (0x02): Host → Producer input events
//   - FrameControl (0x03): Control messages (ping, pong, close)
//   - FrameNodeList (0x04): Host → Producer created node handles
//
// # Encoding
//
// The protocol has no endianness negotiation; both sides use big-endian for
// fixed-width integers and IEEE 754 float64 for all scalar geometry. Strings
// and collections are prefixed with an unsigned varint length. There are no
// sequence numbers: frames must be applied in the exact order received.
//
// # Identifiers
//
// Every node is addressed by a ViewId, an opaque 128-bit value assigned by
// the producer (UUID-shaped, but never interpreted as one). The codec
// round-trips every bit pattern exactly and performs no validation.
//
// # Patches
//
// A patch is a tagged union over three operations:
//
//   - PatchUpdate (0): creates the target node or overwrites all of its
//     type-relevant attributes. The payload carries a node type discriminant
//     and a full attribute snapshot, never a delta.
//   - PatchSubview (1): attaches a child node beneath the target.
//   - PatchRemove (2): removes the target node and all of its descendants.
//
// # Events
//
// Events flow back to the producer addressed by HandlerID, the pair of the
// emitting node's ViewId and the event type tag. Hover, pointer and key
// event streams carry phases with a guaranteed per-device ordering; the
// Precedes methods on the phase types encode that ordering.
package protocol
