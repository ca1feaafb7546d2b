package protocol

import (
	"math/rand"
	"testing"
)

func TestViewIdRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		raw  [16]byte
	}{
		{
			name: "zero",
			raw:  [16]byte{},
		},
		{
			name: "all_ones",
			raw: [16]byte{
				0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
				0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
			},
		},
		{
			name: "mixed",
			raw: [16]byte{
				0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF,
				0xFE, 0xDC, 0xBA, 0x98, 0x76, 0x54, 0x32, 0x10,
			},
		},
		{
			name: "high_bit_only",
			raw:  [16]byte{0x80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := DecodeViewId(tt.raw)
			if got := id.Encode(); got != tt.raw {
				t.Errorf("Encode() = %x, want %x", got, tt.raw)
			}
		})
	}
}

func TestViewIdRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		var raw [16]byte
		rng.Read(raw[:])
		if got := DecodeViewId(raw).Encode(); got != raw {
			t.Fatalf("round trip failed for %x: got %x", raw, got)
		}
	}
}

func TestViewIdEquality(t *testing.T) {
	raw := [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	a := DecodeViewId(raw)
	b := DecodeViewId(raw)
	if a != b {
		t.Error("identical bit patterns should be equal")
	}

	raw[15] = 17
	c := DecodeViewId(raw)
	if a == c {
		t.Error("differing bit patterns should not be equal")
	}

	// ViewId must work as a map key on the full bit pattern.
	m := map[ViewId]int{a: 1}
	if m[b] != 1 {
		t.Error("equal ids should hash to the same map entry")
	}
	if _, ok := m[c]; ok {
		t.Error("distinct id should not be present")
	}
}

func TestNewViewIdUnique(t *testing.T) {
	seen := make(map[ViewId]bool)
	for i := 0; i < 100; i++ {
		id := NewViewId()
		if seen[id] {
			t.Fatalf("duplicate id generated: %v", id)
		}
		seen[id] = true
	}
}

func TestViewIdString(t *testing.T) {
	id := DecodeViewId([16]byte{
		0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF,
		0xFE, 0xDC, 0xBA, 0x98, 0x76, 0x54, 0x32, 0x10,
	})
	want := "01234567-89ab-cdef-fedc-ba9876543210"
	if got := id.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestViewIdListRoundTrip(t *testing.T) {
	ids := []ViewId{
		NewViewId(),
		{},
		NewViewId(),
		NewViewId(),
	}

	e := NewEncoder()
	EncodeViewIdList(e, ids)

	got, err := DecodeViewIdList(NewDecoder(e.Bytes()))
	if err != nil {
		t.Fatalf("DecodeViewIdList: %v", err)
	}
	if len(got) != len(ids) {
		t.Fatalf("got %d ids, want %d", len(got), len(ids))
	}
	for i := range ids {
		if got[i] != ids[i] {
			t.Errorf("ids[%d] = %v, want %v", i, got[i], ids[i])
		}
	}
}

func TestViewIdListEmpty(t *testing.T) {
	e := NewEncoder()
	EncodeViewIdList(e, nil)

	got, err := DecodeViewIdList(NewDecoder(e.Bytes()))
	if err != nil {
		t.Fatalf("DecodeViewIdList: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d ids, want 0", len(got))
	}
}
