package protocol

import "errors"

// EventTypeID identifies the type of an input event.
type EventTypeID uint8

const (
	EventHover   EventTypeID = 0
	EventPointer EventTypeID = 1
	EventKey     EventTypeID = 2
	EventScroll  EventTypeID = 3
	EventResize  EventTypeID = 4
)

// String returns the string representation of the event type.
func (t EventTypeID) String() string {
	switch t {
	case EventHover:
		return "Hover"
	case EventPointer:
		return "Pointer"
	case EventKey:
		return "Key"
	case EventScroll:
		return "Scroll"
	case EventResize:
		return "Resize"
	default:
		return "Unknown"
	}
}

// HandlerID is a unique identifier for an event handler: the emitting
// view plus the event type tag. It is derived on demand, never stored,
// and used purely as a routing key on the producer side.
type HandlerID struct {
	View ViewId
	Type EventTypeID
}

// PointerDevice is the kind of device generating pointer or hover events.
type PointerDevice uint8

const (
	// DeviceTouch is touch input from a finger; expected to be imprecise.
	DeviceTouch PointerDevice = 0
	// DevicePen is pen input.
	DevicePen PointerDevice = 1
	// DeviceEraser is eraser input. Some erasers don't support pressure at
	// all, in which case it reads a constant 1.
	DeviceEraser PointerDevice = 2
	// DeviceCursor is any indirect input mechanism such as a mouse.
	DeviceCursor PointerDevice = 3
)

// String returns the string representation of the device kind.
func (pd PointerDevice) String() string {
	switch pd {
	case DeviceTouch:
		return "Touch"
	case DevicePen:
		return "Pen"
	case DeviceEraser:
		return "Eraser"
	case DeviceCursor:
		return "Cursor"
	default:
		return "Unknown"
	}
}

// Precise reports whether the input mechanism can hit small targets.
func (pd PointerDevice) Precise() bool {
	return pd != DeviceTouch
}

// Volatile reports whether the input mechanism can't be expected to hold
// perfectly still, e.g. because stuff moves a tiny bit when a pen is
// lifted from the screen.
func (pd PointerDevice) Volatile() bool {
	return pd != DeviceCursor
}

// HoverPhase is the phase of a hover event stream.
//
// Phases are ordered Entered < Moved = Stationary < Left, and events are
// generated in this order for a given device. Entered is always emitted
// before any other hover event for a device, even for devices without a
// notion of proximity.
type HoverPhase uint8

const (
	HoverEntered    HoverPhase = 0
	HoverMoved      HoverPhase = 1
	HoverStationary HoverPhase = 2
	HoverLeft       HoverPhase = 3
)

// String returns the string representation of the hover phase.
func (p HoverPhase) String() string {
	switch p {
	case HoverEntered:
		return "Entered"
	case HoverMoved:
		return "Moved"
	case HoverStationary:
		return "Stationary"
	case HoverLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

func (p HoverPhase) rank() int {
	switch p {
	case HoverEntered:
		return 0
	case HoverMoved, HoverStationary:
		return 1
	default:
		return 2
	}
}

// Precedes reports whether p may be followed by q in a well-formed stream.
func (p HoverPhase) Precedes(q HoverPhase) bool {
	return p.rank() <= q.rank()
}

// PointerPhase is the phase of a pointer event stream.
//
// Phases are ordered Began < Moved = Stationary < Ended = Canceled.
type PointerPhase uint8

const (
	PointerBegan      PointerPhase = 0
	PointerMoved      PointerPhase = 1
	PointerStationary PointerPhase = 2
	PointerEnded      PointerPhase = 3
	PointerCanceled   PointerPhase = 4
)

// String returns the string representation of the pointer phase.
func (p PointerPhase) String() string {
	switch p {
	case PointerBegan:
		return "Began"
	case PointerMoved:
		return "Moved"
	case PointerStationary:
		return "Stationary"
	case PointerEnded:
		return "Ended"
	case PointerCanceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

func (p PointerPhase) rank() int {
	switch p {
	case PointerBegan:
		return 0
	case PointerMoved, PointerStationary:
		return 1
	default:
		return 2
	}
}

// Precedes reports whether p may be followed by q in a well-formed stream.
func (p PointerPhase) Precedes(q PointerPhase) bool {
	return p.rank() <= q.rank()
}

// KeyPhase is the phase of a keyboard event stream.
//
// Phases are ordered Down < Repeat < Up for any given key. Note the wire
// values: Up is 1 and Repeat is 2.
type KeyPhase uint8

const (
	KeyDown   KeyPhase = 0
	KeyUp     KeyPhase = 1
	KeyRepeat KeyPhase = 2
)

// String returns the string representation of the key phase.
func (p KeyPhase) String() string {
	switch p {
	case KeyDown:
		return "Down"
	case KeyUp:
		return "Up"
	case KeyRepeat:
		return "Repeat"
	default:
		return "Unknown"
	}
}

func (p KeyPhase) rank() int {
	switch p {
	case KeyDown:
		return 0
	case KeyRepeat:
		return 1
	default:
		return 2
	}
}

// Precedes reports whether p may be followed by q in a well-formed stream.
func (p KeyPhase) Precedes(q KeyPhase) bool {
	return p.rank() <= q.rank()
}

// KeyModifiers is the set of modifier keys held during an event.
type KeyModifiers struct {
	// Shift is whether the shift key is being pressed.
	Shift bool
	// Control is whether the control key is being pressed.
	Control bool
	// Option is whether the option key (a.k.a. alt key) is being pressed.
	Option bool
	// Command is whether the command key (a.k.a. meta key) is being pressed.
	Command bool
}

const (
	modShift   = 0x01
	modControl = 0x02
	modOption  = 0x04
	modCommand = 0x08
)

func (m KeyModifiers) encodeTo(e *Encoder) {
	var b byte
	if m.Shift {
		b |= modShift
	}
	if m.Control {
		b |= modControl
	}
	if m.Option {
		b |= modOption
	}
	if m.Command {
		b |= modCommand
	}
	e.WriteByte(b)
}

func decodeKeyModifiers(d *Decoder) (KeyModifiers, error) {
	b, err := d.ReadByte()
	if err != nil {
		return KeyModifiers{}, err
	}
	return KeyModifiers{
		Shift:   b&modShift != 0,
		Control: b&modControl != 0,
		Option:  b&modOption != 0,
		Command: b&modCommand != 0,
	}, nil
}

// HoverEvent is emitted when a pointing device moves in proximity of the
// screen without being active.
type HoverEvent struct {
	// Device is the kind of device generating hover events.
	// Touch devices never emit hover events.
	Device PointerDevice
	// WindowLocation is the location in the window.
	WindowLocation Vector2
	// Tilt is the device's tilt as a unit vector aligned with the window
	// coordinate system, with an additional Z axis pointing outwards.
	// Devices without tilt report (0, 1, 1).
	Tilt Vector3
	// PointerID is the unique ID of the pointing device, or zero.
	// If nonzero, it is guaranteed to be stable.
	PointerID uint64
	// Phase is the hover phase for this pointing device.
	Phase HoverPhase
	// Modifiers are the modifier keys currently being pressed.
	Modifiers KeyModifiers
}

// PointerEvent is emitted while a pointing device is active.
type PointerEvent struct {
	Device         PointerDevice
	WindowLocation Vector2
	// Pressure is the pressure with which the device presses down on the
	// screen; 1 for devices that do not support pressure.
	Pressure  float64
	Tilt      Vector3
	PointerID uint64
	Phase     PointerPhase
	Modifiers KeyModifiers
}

// KeyEvent is emitted for keyboard input.
type KeyEvent struct {
	// Chars is the text being input.
	Chars string
	// CharsWithoutMod is the text that would be input were the modifier
	// keys not being pressed.
	CharsWithoutMod string
	// Code is the key code of the key being pressed or released.
	Code KeyCode
	// Phase is the phase of this keyboard event.
	Phase KeyPhase
	// Modifiers are the modifier keys currently being pressed.
	Modifiers KeyModifiers
}

// ScrollEvent is emitted for scroll input.
type ScrollEvent struct {
	// WindowLocation is the location in the window.
	WindowLocation Vector2
	// Delta is the scroll delta, in points.
	Delta Vector2
}

// ResizeEvent is emitted when the hosting surface changes size.
type ResizeEvent struct {
	Size Vector2
}

// Event is a fully-formed input event addressed to a producer-side handler.
type Event struct {
	Type    EventTypeID
	Handler HandlerID
	// Timestamp is in seconds from an unspecified monotonic epoch.
	// Zero means the event has no timestamp.
	Timestamp float64
	// Data is the type-specific payload: HoverEvent, PointerEvent,
	// KeyEvent, ScrollEvent or ResizeEvent.
	Data any
}

// Event codec errors.
var (
	ErrInvalidEventType = errors.New("protocol: invalid event type")
	ErrInvalidPayload   = errors.New("protocol: invalid event payload")
)

// EncodeEvent encodes an event to bytes.
func EncodeEvent(ev *Event) ([]byte, error) {
	e := NewEncoder()
	if err := EncodeEventTo(e, ev); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// EncodeEventTo encodes an event using the provided encoder.
func EncodeEventTo(e *Encoder, ev *Event) error {
	e.WriteByte(byte(ev.Type))
	ev.Handler.View.EncodeTo(e)
	e.WriteByte(byte(ev.Handler.Type))
	e.WriteFloat64(ev.Timestamp)

	switch ev.Type {
	case EventHover:
		h, ok := ev.Data.(HoverEvent)
		if !ok {
			return ErrInvalidPayload
		}
		e.WriteByte(byte(h.Device))
		h.WindowLocation.encodeTo(e)
		h.Tilt.encodeTo(e)
		e.WriteUint64(h.PointerID)
		e.WriteByte(byte(h.Phase))
		h.Modifiers.encodeTo(e)

	case EventPointer:
		p, ok := ev.Data.(PointerEvent)
		if !ok {
			return ErrInvalidPayload
		}
		e.WriteByte(byte(p.Device))
		p.WindowLocation.encodeTo(e)
		e.WriteFloat64(p.Pressure)
		p.Tilt.encodeTo(e)
		e.WriteUint64(p.PointerID)
		e.WriteByte(byte(p.Phase))
		p.Modifiers.encodeTo(e)

	case EventKey:
		k, ok := ev.Data.(KeyEvent)
		if !ok {
			return ErrInvalidPayload
		}
		e.WriteString(k.Chars)
		e.WriteString(k.CharsWithoutMod)
		e.WriteUint16(uint16(k.Code))
		e.WriteByte(byte(k.Phase))
		k.Modifiers.encodeTo(e)

	case EventScroll:
		s, ok := ev.Data.(ScrollEvent)
		if !ok {
			return ErrInvalidPayload
		}
		s.WindowLocation.encodeTo(e)
		s.Delta.encodeTo(e)

	case EventResize:
		r, ok := ev.Data.(ResizeEvent)
		if !ok {
			return ErrInvalidPayload
		}
		r.Size.encodeTo(e)

	default:
		return ErrInvalidEventType
	}
	return nil
}

// DecodeEvent decodes an event from bytes.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)
	return DecodeEventFrom(d)
}

// DecodeEventFrom decodes an event from a decoder.
func DecodeEventFrom(d *Decoder) (*Event, error) {
	tb, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	ev := &Event{Type: EventTypeID(tb)}

	if ev.Handler.View, err = DecodeViewIdFrom(d); err != nil {
		return nil, err
	}
	hb, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	ev.Handler.Type = EventTypeID(hb)

	if ev.Timestamp, err = d.ReadFloat64(); err != nil {
		return nil, err
	}

	switch ev.Type {
	case EventHover:
		var h HoverEvent
		var db byte
		if db, err = d.ReadByte(); err != nil {
			return nil, err
		}
		h.Device = PointerDevice(db)
		if h.WindowLocation, err = decodeVector2(d); err != nil {
			return nil, err
		}
		if h.Tilt, err = decodeVector3(d); err != nil {
			return nil, err
		}
		if h.PointerID, err = d.ReadUint64(); err != nil {
			return nil, err
		}
		var pb byte
		if pb, err = d.ReadByte(); err != nil {
			return nil, err
		}
		h.Phase = HoverPhase(pb)
		if h.Modifiers, err = decodeKeyModifiers(d); err != nil {
			return nil, err
		}
		ev.Data = h

	case EventPointer:
		var p PointerEvent
		var db byte
		if db, err = d.ReadByte(); err != nil {
			return nil, err
		}
		p.Device = PointerDevice(db)
		if p.WindowLocation, err = decodeVector2(d); err != nil {
			return nil, err
		}
		if p.Pressure, err = d.ReadFloat64(); err != nil {
			return nil, err
		}
		if p.Tilt, err = decodeVector3(d); err != nil {
			return nil, err
		}
		if p.PointerID, err = d.ReadUint64(); err != nil {
			return nil, err
		}
		var pb byte
		if pb, err = d.ReadByte(); err != nil {
			return nil, err
		}
		p.Phase = PointerPhase(pb)
		if p.Modifiers, err = decodeKeyModifiers(d); err != nil {
			return nil, err
		}
		ev.Data = p

	case EventKey:
		var k KeyEvent
		if k.Chars, err = d.ReadString(); err != nil {
			return nil, err
		}
		if k.CharsWithoutMod, err = d.ReadString(); err != nil {
			return nil, err
		}
		var code uint16
		if code, err = d.ReadUint16(); err != nil {
			return nil, err
		}
		k.Code = KeyCode(code)
		var pb byte
		if pb, err = d.ReadByte(); err != nil {
			return nil, err
		}
		k.Phase = KeyPhase(pb)
		if k.Modifiers, err = decodeKeyModifiers(d); err != nil {
			return nil, err
		}
		ev.Data = k

	case EventScroll:
		var s ScrollEvent
		if s.WindowLocation, err = decodeVector2(d); err != nil {
			return nil, err
		}
		if s.Delta, err = decodeVector2(d); err != nil {
			return nil, err
		}
		ev.Data = s

	case EventResize:
		var r ResizeEvent
		if r.Size, err = decodeVector2(d); err != nil {
			return nil, err
		}
		ev.Data = r

	default:
		return nil, ErrInvalidEventType
	}
	return ev, nil
}
