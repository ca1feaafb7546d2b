package protocol

// KeyCode identifies a physical key.
type KeyCode uint16

// Key codes.
const (
	KeyCodeA              KeyCode = 0x01
	KeyCodeB              KeyCode = 0x02
	KeyCodeC              KeyCode = 0x03
	KeyCodeD              KeyCode = 0x04
	KeyCodeE              KeyCode = 0x05
	KeyCodeF              KeyCode = 0x06
	KeyCodeG              KeyCode = 0x07
	KeyCodeH              KeyCode = 0x08
	KeyCodeI              KeyCode = 0x09
	KeyCodeJ              KeyCode = 0x0A
	KeyCodeK              KeyCode = 0x0B
	KeyCodeL              KeyCode = 0x0C
	KeyCodeM              KeyCode = 0x0D
	KeyCodeN              KeyCode = 0x0E
	KeyCodeO              KeyCode = 0x0F
	KeyCodeP              KeyCode = 0x10
	KeyCodeQ              KeyCode = 0x11
	KeyCodeR              KeyCode = 0x12
	KeyCodeS              KeyCode = 0x13
	KeyCodeT              KeyCode = 0x14
	KeyCodeU              KeyCode = 0x15
	KeyCodeV              KeyCode = 0x16
	KeyCodeW              KeyCode = 0x17
	KeyCodeX              KeyCode = 0x18
	KeyCodeY              KeyCode = 0x19
	KeyCodeZ              KeyCode = 0x1A
	KeyCodeN0             KeyCode = 0x20
	KeyCodeN1             KeyCode = 0x21
	KeyCodeN2             KeyCode = 0x22
	KeyCodeN3             KeyCode = 0x23
	KeyCodeN4             KeyCode = 0x24
	KeyCodeN5             KeyCode = 0x25
	KeyCodeN6             KeyCode = 0x26
	KeyCodeN7             KeyCode = 0x27
	KeyCodeN8             KeyCode = 0x28
	KeyCodeN9             KeyCode = 0x29
	KeyCodeEqual          KeyCode = 0x2A
	KeyCodeMinus          KeyCode = 0x2B
	KeyCodeLeftBracket    KeyCode = 0x2C
	KeyCodeRightBracket   KeyCode = 0x2D
	KeyCodeQuote          KeyCode = 0x2E
	KeyCodeSemicolon      KeyCode = 0x2F
	KeyCodeBackslash      KeyCode = 0x30
	KeyCodeComma          KeyCode = 0x31
	KeyCodeSlash          KeyCode = 0x32
	KeyCodePeriod         KeyCode = 0x33
	KeyCodeGrave          KeyCode = 0x34
	KeyCodeReturn         KeyCode = 0x35
	KeyCodeTab            KeyCode = 0x36
	KeyCodeSpace          KeyCode = 0x37
	KeyCodeDelete         KeyCode = 0x38
	KeyCodeEscape         KeyCode = 0x39
	KeyCodeCommand        KeyCode = 0x3A
	KeyCodeShift          KeyCode = 0x3B
	KeyCodeCapsLock       KeyCode = 0x3C
	KeyCodeOption         KeyCode = 0x3D
	KeyCodeControl        KeyCode = 0x3E
	KeyCodeRightCommand   KeyCode = 0x3F
	KeyCodeRightShift     KeyCode = 0x40
	KeyCodeRightOption    KeyCode = 0x41
	KeyCodeRightControl   KeyCode = 0x42
	KeyCodeFunction       KeyCode = 0x43
	KeyCodeLeftArrow      KeyCode = 0x44
	KeyCodeDownArrow      KeyCode = 0x45
	KeyCodeUpArrow        KeyCode = 0x46
	KeyCodeRightArrow     KeyCode = 0x47
	KeyCodeForwardDelete  KeyCode = 0x48
	KeyCodeInsert         KeyCode = 0x49
	KeyCodeHome           KeyCode = 0x4A
	KeyCodeEnd            KeyCode = 0x4B
	KeyCodePageUp         KeyCode = 0x4C
	KeyCodePageDown       KeyCode = 0x4D
	KeyCodeSection        KeyCode = 0x4E
	KeyCodeF1             KeyCode = 0x50
	KeyCodeF2             KeyCode = 0x51
	KeyCodeF3             KeyCode = 0x52
	KeyCodeF4             KeyCode = 0x53
	KeyCodeF5             KeyCode = 0x54
	KeyCodeF6             KeyCode = 0x55
	KeyCodeF7             KeyCode = 0x56
	KeyCodeF8             KeyCode = 0x57
	KeyCodeF9             KeyCode = 0x58
	KeyCodeF10            KeyCode = 0x59
	KeyCodeF11            KeyCode = 0x5A
	KeyCodeF12            KeyCode = 0x5B
	KeyCodeF13            KeyCode = 0x5C
	KeyCodeF14            KeyCode = 0x5D
	KeyCodeF15            KeyCode = 0x5E
	KeyCodeF16            KeyCode = 0x5F
	KeyCodeF17            KeyCode = 0x60
	KeyCodeF18            KeyCode = 0x61
	KeyCodeF19            KeyCode = 0x62
	KeyCodeF20            KeyCode = 0x63
	KeyCodeNumpad0        KeyCode = 0x70
	KeyCodeNumpad1        KeyCode = 0x71
	KeyCodeNumpad2        KeyCode = 0x72
	KeyCodeNumpad3        KeyCode = 0x73
	KeyCodeNumpad4        KeyCode = 0x74
	KeyCodeNumpad5        KeyCode = 0x75
	KeyCodeNumpad6        KeyCode = 0x76
	KeyCodeNumpad7        KeyCode = 0x77
	KeyCodeNumpad8        KeyCode = 0x78
	KeyCodeNumpad9        KeyCode = 0x79
	KeyCodeNumpadEqual    KeyCode = 0x7A
	KeyCodeNumpadDecimal  KeyCode = 0x7B
	KeyCodeNumpadPlus     KeyCode = 0x7C
	KeyCodeNumpadMinus    KeyCode = 0x7D
	KeyCodeNumpadMultiply KeyCode = 0x7E
	KeyCodeNumpadDivide   KeyCode = 0x7F
	KeyCodeNumpadClear    KeyCode = 0x80
	KeyCodeNumpadEnter    KeyCode = 0x81
	KeyCodeNumpadComma    KeyCode = 0x82
)

var keyCodeNames = map[KeyCode]string{
	KeyCodeA: "A", KeyCodeB: "B", KeyCodeC: "C", KeyCodeD: "D",
	KeyCodeE: "E", KeyCodeF: "F", KeyCodeG: "G", KeyCodeH: "H",
	KeyCodeI: "I", KeyCodeJ: "J", KeyCodeK: "K", KeyCodeL: "L",
	KeyCodeM: "M", KeyCodeN: "N", KeyCodeO: "O", KeyCodeP: "P",
	KeyCodeQ: "Q", KeyCodeR: "R", KeyCodeS: "S", KeyCodeT: "T",
	KeyCodeU: "U", KeyCodeV: "V", KeyCodeW: "W", KeyCodeX: "X",
	KeyCodeY: "Y", KeyCodeZ: "Z",
	KeyCodeN0: "0", KeyCodeN1: "1", KeyCodeN2: "2", KeyCodeN3: "3",
	KeyCodeN4: "4", KeyCodeN5: "5", KeyCodeN6: "6", KeyCodeN7: "7",
	KeyCodeN8: "8", KeyCodeN9: "9",
	KeyCodeEqual:          "Equal",
	KeyCodeMinus:          "Minus",
	KeyCodeLeftBracket:    "LeftBracket",
	KeyCodeRightBracket:   "RightBracket",
	KeyCodeQuote:          "Quote",
	KeyCodeSemicolon:      "Semicolon",
	KeyCodeBackslash:      "Backslash",
	KeyCodeComma:          "Comma",
	KeyCodeSlash:          "Slash",
	KeyCodePeriod:         "Period",
	KeyCodeGrave:          "Grave",
	KeyCodeReturn:         "Return",
	KeyCodeTab:            "Tab",
	KeyCodeSpace:          "Space",
	KeyCodeDelete:         "Delete",
	KeyCodeEscape:         "Escape",
	KeyCodeCommand:        "Command",
	KeyCodeShift:          "Shift",
	KeyCodeCapsLock:       "CapsLock",
	KeyCodeOption:         "Option",
	KeyCodeControl:        "Control",
	KeyCodeRightCommand:   "RightCommand",
	KeyCodeRightShift:     "RightShift",
	KeyCodeRightOption:    "RightOption",
	KeyCodeRightControl:   "RightControl",
	KeyCodeFunction:       "Function",
	KeyCodeLeftArrow:      "LeftArrow",
	KeyCodeDownArrow:      "DownArrow",
	KeyCodeUpArrow:        "UpArrow",
	KeyCodeRightArrow:     "RightArrow",
	KeyCodeForwardDelete:  "ForwardDelete",
	KeyCodeInsert:         "Insert",
	KeyCodeHome:           "Home",
	KeyCodeEnd:            "End",
	KeyCodePageUp:         "PageUp",
	KeyCodePageDown:       "PageDown",
	KeyCodeSection:        "Section",
	KeyCodeF1:             "F1",
	KeyCodeF2:             "F2",
	KeyCodeF3:             "F3",
	KeyCodeF4:             "F4",
	KeyCodeF5:             "F5",
	KeyCodeF6:             "F6",
	KeyCodeF7:             "F7",
	KeyCodeF8:             "F8",
	KeyCodeF9:             "F9",
	KeyCodeF10:            "F10",
	KeyCodeF11:            "F11",
	KeyCodeF12:            "F12",
	KeyCodeF13:            "F13",
	KeyCodeF14:            "F14",
	KeyCodeF15:            "F15",
	KeyCodeF16:            "F16",
	KeyCodeF17:            "F17",
	KeyCodeF18:            "F18",
	KeyCodeF19:            "F19",
	KeyCodeF20:            "F20",
	KeyCodeNumpad0:        "Numpad0",
	KeyCodeNumpad1:        "Numpad1",
	KeyCodeNumpad2:        "Numpad2",
	KeyCodeNumpad3:        "Numpad3",
	KeyCodeNumpad4:        "Numpad4",
	KeyCodeNumpad5:        "Numpad5",
	KeyCodeNumpad6:        "Numpad6",
	KeyCodeNumpad7:        "Numpad7",
	KeyCodeNumpad8:        "Numpad8",
	KeyCodeNumpad9:        "Numpad9",
	KeyCodeNumpadEqual:    "NumpadEqual",
	KeyCodeNumpadDecimal:  "NumpadDecimal",
	KeyCodeNumpadPlus:     "NumpadPlus",
	KeyCodeNumpadMinus:    "NumpadMinus",
	KeyCodeNumpadMultiply: "NumpadMultiply",
	KeyCodeNumpadDivide:   "NumpadDivide",
	KeyCodeNumpadClear:    "NumpadClear",
	KeyCodeNumpadEnter:    "NumpadEnter",
	KeyCodeNumpadComma:    "NumpadComma",
}

// String returns the string representation of the key code.
func (k KeyCode) String() string {
	if name, ok := keyCodeNames[k]; ok {
		return name
	}
	return "Unknown"
}
