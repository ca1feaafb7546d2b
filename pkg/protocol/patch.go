package protocol

import "errors"

// PatchType is the patch operation discriminant.
type PatchType uint8

const (
	// PatchUpdate updates or creates a view.
	PatchUpdate PatchType = 0
	// PatchSubview sets up a superview-subview relationship.
	PatchSubview PatchType = 1
	// PatchRemove removes a view and its subviews.
	PatchRemove PatchType = 2
)

// String returns the string representation of the patch type.
func (t PatchType) String() string {
	switch t {
	case PatchUpdate:
		return "Update"
	case PatchSubview:
		return "Subview"
	case PatchRemove:
		return "Remove"
	default:
		return "Unknown"
	}
}

// NodeType is the node type discriminant.
//
// Only Layer has a concrete payload; the remaining variants are reserved
// extension points of the protocol.
type NodeType uint8

const (
	NodeLayer     NodeType = 0
	NodeText      NodeType = 1
	NodeTextField NodeType = 2
	NodeVkSurface NodeType = 3
)

// String returns the string representation of the node type.
func (t NodeType) String() string {
	switch t {
	case NodeLayer:
		return "Layer"
	case NodeText:
		return "Text"
	case NodeTextField:
		return "TextField"
	case NodeVkSurface:
		return "VkSurface"
	default:
		return "Unknown"
	}
}

// Patch decoding errors.
var (
	ErrInvalidPatchType = errors.New("protocol: invalid patch type")
	ErrInvalidNodeType  = errors.New("protocol: invalid node type")
)

// LayerPatch is the full attribute snapshot for a Layer node.
//
// A layer patch always re-specifies every attribute; it is never a delta.
type LayerPatch struct {
	Bounds       Rect
	Background   Color
	CornerRadius float64
	BorderWidth  float64
	BorderColor  Color
	ClipContents bool
	Transform    Matrix3
	Opacity      float64
}

// NodePatch is an update payload: a node type discriminant plus the
// type-specific attribute snapshot.
type NodePatch struct {
	Type  NodeType
	Layer LayerPatch // valid when Type == NodeLayer
}

// Patch is a single wire instruction mutating the view tree.
type Patch struct {
	Type   PatchType
	View   ViewId    // target of the operation
	Update NodePatch // valid when Type == PatchUpdate
	Child  ViewId    // valid when Type == PatchSubview
}

// NewUpdatePatch creates an Update patch.
func NewUpdatePatch(view ViewId, update NodePatch) Patch {
	return Patch{Type: PatchUpdate, View: view, Update: update}
}

// NewLayerPatch creates an Update patch carrying a Layer snapshot.
func NewLayerPatch(view ViewId, layer LayerPatch) Patch {
	return NewUpdatePatch(view, NodePatch{Type: NodeLayer, Layer: layer})
}

// NewSubviewPatch creates a Subview patch attaching child beneath parent.
func NewSubviewPatch(parent, child ViewId) Patch {
	return Patch{Type: PatchSubview, View: parent, Child: child}
}

// NewRemovePatch creates a Remove patch.
func NewRemovePatch(view ViewId) Patch {
	return Patch{Type: PatchRemove, View: view}
}

// EncodePatches encodes a batch of patches.
// There is no sequence number: order on the wire is application order.
func EncodePatches(patches []Patch) []byte {
	e := NewEncoder()
	EncodePatchesTo(e, patches)
	return e.Bytes()
}

// EncodePatchesTo encodes a batch of patches using the provided encoder.
func EncodePatchesTo(e *Encoder, patches []Patch) {
	e.WriteUvarint(uint64(len(patches)))
	for i := range patches {
		encodePatch(e, &patches[i])
	}
}

func encodePatch(e *Encoder, p *Patch) {
	e.WriteByte(byte(p.Type))
	p.View.EncodeTo(e)

	switch p.Type {
	case PatchUpdate:
		encodeNodePatch(e, &p.Update)
	case PatchSubview:
		p.Child.EncodeTo(e)
	case PatchRemove:
		// No additional data (the target id is sufficient)
	}
}

func encodeNodePatch(e *Encoder, np *NodePatch) {
	e.WriteByte(byte(np.Type))
	switch np.Type {
	case NodeLayer:
		lp := &np.Layer
		lp.Bounds.encodeTo(e)
		lp.Background.encodeTo(e)
		e.WriteFloat64(lp.CornerRadius)
		e.WriteFloat64(lp.BorderWidth)
		lp.BorderColor.encodeTo(e)
		e.WriteBool(lp.ClipContents)
		lp.Transform.encodeTo(e)
		e.WriteFloat64(lp.Opacity)
	case NodeText, NodeTextField, NodeVkSurface:
		// Reserved variants carry no payload yet.
	}
}

// DecodePatches decodes a batch of patches from bytes.
func DecodePatches(data []byte) ([]Patch, error) {
	d := NewDecoder(data)
	return DecodePatchesFrom(d)
}

// DecodePatchesFrom decodes a batch of patches from a decoder.
func DecodePatchesFrom(d *Decoder) ([]Patch, error) {
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	patches := make([]Patch, count)
	for i := range patches {
		if err := decodePatch(d, &patches[i]); err != nil {
			return nil, err
		}
	}
	return patches, nil
}

func decodePatch(d *Decoder, p *Patch) error {
	tb, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Type = PatchType(tb)

	p.View, err = DecodeViewIdFrom(d)
	if err != nil {
		return err
	}

	switch p.Type {
	case PatchUpdate:
		return decodeNodePatch(d, &p.Update)
	case PatchSubview:
		p.Child, err = DecodeViewIdFrom(d)
		return err
	case PatchRemove:
		return nil
	default:
		return ErrInvalidPatchType
	}
}

func decodeNodePatch(d *Decoder, np *NodePatch) error {
	tb, err := d.ReadByte()
	if err != nil {
		return err
	}
	np.Type = NodeType(tb)

	switch np.Type {
	case NodeLayer:
		lp := &np.Layer
		if lp.Bounds, err = decodeRect(d); err != nil {
			return err
		}
		if lp.Background, err = decodeColor(d); err != nil {
			return err
		}
		if lp.CornerRadius, err = d.ReadFloat64(); err != nil {
			return err
		}
		if lp.BorderWidth, err = d.ReadFloat64(); err != nil {
			return err
		}
		if lp.BorderColor, err = decodeColor(d); err != nil {
			return err
		}
		if lp.ClipContents, err = d.ReadBool(); err != nil {
			return err
		}
		if lp.Transform, err = decodeMatrix3(d); err != nil {
			return err
		}
		lp.Opacity, err = d.ReadFloat64()
		return err
	case NodeText, NodeTextField, NodeVkSurface:
		return nil
	default:
		return ErrInvalidNodeType
	}
}
