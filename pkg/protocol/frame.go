package protocol

import (
	"errors"
	"io"
)

// Frame constants.
const (
	// FrameHeaderSize is the size of the frame header in bytes.
	FrameHeaderSize = 4

	// MaxPayloadSize is the maximum payload size (2^16 - 1 bytes).
	MaxPayloadSize = 65535
)

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FrameHello    FrameType = 0x00 // Connection setup
	FramePatches  FrameType = 0x01 // Producer → Host patches
	FrameEvent    FrameType = 0x02 // Host → Producer events
	FrameControl  FrameType = 0x03 // Control messages (ping, pong, close)
	FrameNodeList FrameType = 0x04 // Host → Producer created node handles
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameHello:
		return "Hello"
	case FramePatches:
		return "Patches"
	case FrameEvent:
		return "Event"
	case FrameControl:
		return "Control"
	case FrameNodeList:
		return "NodeList"
	default:
		return "Unknown"
	}
}

// ControlType identifies a control message.
type ControlType uint8

const (
	ControlPing  ControlType = 0x01
	ControlPong  ControlType = 0x02
	ControlClose ControlType = 0x03
)

// Frame errors.
var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
)

// Frame is a protocol frame with header and payload.
//
// Wire format (4 bytes header + variable payload):
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
type Frame struct {
	Type    FrameType
	Flags   uint8
	Payload []byte
}

// Encode encodes the frame to bytes including the header.
func (f *Frame) Encode() ([]byte, error) {
	length := len(f.Payload)
	if length > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	buf := make([]byte, FrameHeaderSize+length)
	buf[0] = byte(f.Type)
	buf[1] = f.Flags
	buf[2] = byte(length >> 8)
	buf[3] = byte(length)
	copy(buf[FrameHeaderSize:], f.Payload)
	return buf, nil
}

// DecodeFrame decodes a frame from bytes.
// The input must contain the full header and payload.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, io.ErrUnexpectedEOF
	}

	ft := FrameType(data[0])
	if ft > FrameNodeList {
		return nil, ErrInvalidFrameType
	}
	length := int(data[2])<<8 | int(data[3])
	if len(data) < FrameHeaderSize+length {
		return nil, io.ErrUnexpectedEOF
	}

	return &Frame{
		Type:    ft,
		Flags:   data[1],
		Payload: data[FrameHeaderSize : FrameHeaderSize+length],
	}, nil
}

// ProtocolVersion is the current hello protocol version.
const ProtocolVersion = 1

// Hello is the connection setup message. The producer sends it first;
// the host replies with its own.
type Hello struct {
	Version uint8
	// Surface names the hosting surface this stream drives.
	Surface string
}

// EncodeHello encodes a hello message.
func EncodeHello(h *Hello) []byte {
	e := NewEncoder()
	e.WriteByte(h.Version)
	e.WriteString(h.Surface)
	return e.Bytes()
}

// DecodeHello decodes a hello message.
func DecodeHello(data []byte) (*Hello, error) {
	d := NewDecoder(data)
	v, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	surface, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	return &Hello{Version: v, Surface: surface}, nil
}
