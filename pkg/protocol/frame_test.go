package protocol

import (
	"bytes"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
	}{
		{
			name:  "empty_control",
			frame: Frame{Type: FrameControl},
		},
		{
			name:  "patches_with_payload",
			frame: Frame{Type: FramePatches, Payload: []byte{1, 2, 3, 4}},
		},
		{
			name:  "event_with_flags",
			frame: Frame{Type: FrameEvent, Flags: 0x02, Payload: []byte{0xAA}},
		},
		{
			name:  "node_list",
			frame: Frame{Type: FrameNodeList, Payload: bytes.Repeat([]byte{7}, 33)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.frame.Encode()
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := DecodeFrame(data)
			if err != nil {
				t.Fatalf("DecodeFrame: %v", err)
			}
			if got.Type != tt.frame.Type || got.Flags != tt.frame.Flags {
				t.Errorf("header = (%v, %#x), want (%v, %#x)",
					got.Type, got.Flags, tt.frame.Type, tt.frame.Flags)
			}
			if !bytes.Equal(got.Payload, tt.frame.Payload) {
				t.Errorf("payload = %x, want %x", got.Payload, tt.frame.Payload)
			}
		})
	}
}

func TestFrameTooLarge(t *testing.T) {
	f := Frame{Type: FramePatches, Payload: make([]byte, MaxPayloadSize+1)}
	if _, err := f.Encode(); err != ErrFrameTooLarge {
		t.Errorf("Encode() error = %v, want ErrFrameTooLarge", err)
	}
}

func TestDecodeFrameErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short_header", []byte{0x01, 0x00}},
		{"truncated_payload", []byte{0x01, 0x00, 0x00, 0x05, 0xAA}},
		{"invalid_type", []byte{0x7F, 0x00, 0x00, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeFrame(tt.data); err == nil {
				t.Error("expected decode error, got nil")
			}
		})
	}
}

func TestHelloRoundTrip(t *testing.T) {
	h := &Hello{Version: ProtocolVersion, Surface: "main-window"}
	got, err := DecodeHello(EncodeHello(h))
	if err != nil {
		t.Fatalf("DecodeHello: %v", err)
	}
	if *got != *h {
		t.Errorf("decoded hello = %+v, want %+v", *got, *h)
	}
}
