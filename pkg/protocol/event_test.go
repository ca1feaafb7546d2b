package protocol

import (
	"testing"
)

func TestEventEncodeDecode(t *testing.T) {
	view := NewViewId()

	tests := []struct {
		name  string
		event Event
	}{
		{
			name: "hover_entered",
			event: Event{
				Type:      EventHover,
				Handler:   HandlerID{View: view, Type: EventHover},
				Timestamp: 12.5,
				Data: HoverEvent{
					Device:         DevicePen,
					WindowLocation: Vector2{X: 3, Y: 4},
					Tilt:           Vector3{X: 0, Y: 1, Z: 1},
					PointerID:      77,
					Phase:          HoverEntered,
					Modifiers:      KeyModifiers{Shift: true},
				},
			},
		},
		{
			name: "pointer_began",
			event: Event{
				Type:      EventPointer,
				Handler:   HandlerID{View: view, Type: EventPointer},
				Timestamp: 0, // no timestamp
				Data: PointerEvent{
					Device:         DeviceTouch,
					WindowLocation: Vector2{X: 120, Y: 240},
					Pressure:       1,
					Tilt:           Vector3{X: 0, Y: 1, Z: 1},
					PointerID:      0,
					Phase:          PointerBegan,
					Modifiers:      KeyModifiers{},
				},
			},
		},
		{
			name: "key_down",
			event: Event{
				Type:      EventKey,
				Handler:   HandlerID{View: view, Type: EventKey},
				Timestamp: 99.25,
				Data: KeyEvent{
					Chars:           "A",
					CharsWithoutMod: "a",
					Code:            KeyCodeA,
					Phase:           KeyDown,
					Modifiers:       KeyModifiers{Shift: true, Command: true},
				},
			},
		},
		{
			name: "key_empty_chars",
			event: Event{
				Type:    EventKey,
				Handler: HandlerID{View: view, Type: EventKey},
				Data: KeyEvent{
					Code:  KeyCodeEscape,
					Phase: KeyUp,
				},
			},
		},
		{
			name: "scroll",
			event: Event{
				Type:      EventScroll,
				Handler:   HandlerID{View: view, Type: EventScroll},
				Timestamp: 1.0,
				Data: ScrollEvent{
					WindowLocation: Vector2{X: 50, Y: 60},
					Delta:          Vector2{X: 0, Y: -12},
				},
			},
		},
		{
			name: "resize",
			event: Event{
				Type:    EventResize,
				Handler: HandlerID{View: view, Type: EventResize},
				Data:    ResizeEvent{Size: Vector2{X: 800, Y: 600}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeEvent(&tt.event)
			if err != nil {
				t.Fatalf("EncodeEvent: %v", err)
			}
			got, err := DecodeEvent(data)
			if err != nil {
				t.Fatalf("DecodeEvent: %v", err)
			}
			if *got != tt.event {
				t.Errorf("decoded event = %+v, want %+v", *got, tt.event)
			}
		})
	}
}

func TestEventEncodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		event Event
	}{
		{
			name:  "unknown_type",
			event: Event{Type: EventTypeID(0xAA)},
		},
		{
			name:  "payload_type_mismatch",
			event: Event{Type: EventKey, Data: ScrollEvent{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EncodeEvent(&tt.event); err == nil {
				t.Error("expected encode error, got nil")
			}
		})
	}
}

func TestHoverPhaseOrdering(t *testing.T) {
	tests := []struct {
		name string
		p, q HoverPhase
		want bool
	}{
		{"entered_before_moved", HoverEntered, HoverMoved, true},
		{"entered_before_left", HoverEntered, HoverLeft, true},
		{"moved_equals_stationary", HoverMoved, HoverStationary, true},
		{"stationary_equals_moved", HoverStationary, HoverMoved, true},
		{"left_not_before_entered", HoverLeft, HoverEntered, false},
		{"moved_not_before_entered", HoverMoved, HoverEntered, false},
		{"moved_before_left", HoverMoved, HoverLeft, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Precedes(tt.q); got != tt.want {
				t.Errorf("%v.Precedes(%v) = %v, want %v", tt.p, tt.q, got, tt.want)
			}
		})
	}
}

func TestPointerPhaseOrdering(t *testing.T) {
	tests := []struct {
		name string
		p, q PointerPhase
		want bool
	}{
		{"began_before_moved", PointerBegan, PointerMoved, true},
		{"moved_equals_stationary", PointerMoved, PointerStationary, true},
		{"ended_equals_canceled", PointerEnded, PointerCanceled, true},
		{"canceled_equals_ended", PointerCanceled, PointerEnded, true},
		{"ended_not_before_began", PointerEnded, PointerBegan, false},
		{"moved_before_canceled", PointerMoved, PointerCanceled, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Precedes(tt.q); got != tt.want {
				t.Errorf("%v.Precedes(%v) = %v, want %v", tt.p, tt.q, got, tt.want)
			}
		})
	}
}

func TestKeyPhaseOrdering(t *testing.T) {
	// Note: the wire values are Down=0, Up=1, Repeat=2, but the ordering
	// is Down < Repeat < Up.
	tests := []struct {
		name string
		p, q KeyPhase
		want bool
	}{
		{"down_before_repeat", KeyDown, KeyRepeat, true},
		{"repeat_before_up", KeyRepeat, KeyUp, true},
		{"down_before_up", KeyDown, KeyUp, true},
		{"up_not_before_repeat", KeyUp, KeyRepeat, false},
		{"repeat_not_before_down", KeyRepeat, KeyDown, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Precedes(tt.q); got != tt.want {
				t.Errorf("%v.Precedes(%v) = %v, want %v", tt.p, tt.q, got, tt.want)
			}
		})
	}
}

func TestPointerDevicePredicates(t *testing.T) {
	tests := []struct {
		device   PointerDevice
		precise  bool
		volatile bool
	}{
		{DeviceTouch, false, true},
		{DevicePen, true, true},
		{DeviceEraser, true, true},
		{DeviceCursor, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.device.String(), func(t *testing.T) {
			if got := tt.device.Precise(); got != tt.precise {
				t.Errorf("Precise() = %v, want %v", got, tt.precise)
			}
			if got := tt.device.Volatile(); got != tt.volatile {
				t.Errorf("Volatile() = %v, want %v", got, tt.volatile)
			}
		})
	}
}

func TestKeyModifiersRoundTrip(t *testing.T) {
	mods := []KeyModifiers{
		{},
		{Shift: true},
		{Control: true, Option: true},
		{Shift: true, Control: true, Option: true, Command: true},
	}
	for _, m := range mods {
		e := NewEncoder()
		m.encodeTo(e)
		got, err := decodeKeyModifiers(NewDecoder(e.Bytes()))
		if err != nil {
			t.Fatalf("decodeKeyModifiers: %v", err)
		}
		if got != m {
			t.Errorf("round trip = %+v, want %+v", got, m)
		}
	}
}

func TestKeyCodeString(t *testing.T) {
	tests := []struct {
		code KeyCode
		want string
	}{
		{KeyCodeA, "A"},
		{KeyCodeN0, "0"},
		{KeyCodeSpace, "Space"},
		{KeyCodeF13, "F13"},
		{KeyCodeNumpadEnter, "NumpadEnter"},
		{KeyCode(0xFFFF), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("KeyCode(%#x).String() = %q, want %q", uint16(tt.code), got, tt.want)
		}
	}
}
