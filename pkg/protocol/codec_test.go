package protocol

import (
	"io"
	"math"
	"testing"
)

func TestCodecPrimitives(t *testing.T) {
	e := NewEncoder()
	e.WriteByte(0x42)
	e.WriteBool(true)
	e.WriteBool(false)
	e.WriteUint16(0xBEEF)
	e.WriteUint32(0xDEADBEEF)
	e.WriteUint64(0x0123456789ABCDEF)
	e.WriteFloat64(math.Pi)
	e.WriteUvarint(300)
	e.WriteString("hello")

	d := NewDecoder(e.Bytes())

	if v, err := d.ReadByte(); err != nil || v != 0x42 {
		t.Errorf("ReadByte = %#x, %v", v, err)
	}
	if v, err := d.ReadBool(); err != nil || v != true {
		t.Errorf("ReadBool = %v, %v", v, err)
	}
	if v, err := d.ReadBool(); err != nil || v != false {
		t.Errorf("ReadBool = %v, %v", v, err)
	}
	if v, err := d.ReadUint16(); err != nil || v != 0xBEEF {
		t.Errorf("ReadUint16 = %#x, %v", v, err)
	}
	if v, err := d.ReadUint32(); err != nil || v != 0xDEADBEEF {
		t.Errorf("ReadUint32 = %#x, %v", v, err)
	}
	if v, err := d.ReadUint64(); err != nil || v != 0x0123456789ABCDEF {
		t.Errorf("ReadUint64 = %#x, %v", v, err)
	}
	if v, err := d.ReadFloat64(); err != nil || v != math.Pi {
		t.Errorf("ReadFloat64 = %v, %v", v, err)
	}
	if v, err := d.ReadUvarint(); err != nil || v != 300 {
		t.Errorf("ReadUvarint = %d, %v", v, err)
	}
	if v, err := d.ReadString(); err != nil || v != "hello" {
		t.Errorf("ReadString = %q, %v", v, err)
	}
	if !d.EOF() {
		t.Errorf("expected EOF, %d bytes remaining", d.Remaining())
	}
}

func TestUvarintBoundaries(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 16383, 16384, math.MaxUint64}
	for _, v := range values {
		e := NewEncoder()
		e.WriteUvarint(v)
		got, err := NewDecoder(e.Bytes()).ReadUvarint()
		if err != nil {
			t.Fatalf("ReadUvarint(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("uvarint round trip = %d, want %d", got, v)
		}
	}
}

func TestFloat64SpecialValues(t *testing.T) {
	values := []float64{0, math.Copysign(0, -1), math.Inf(1), math.Inf(-1), math.MaxFloat64}
	for _, v := range values {
		e := NewEncoder()
		e.WriteFloat64(v)
		got, err := NewDecoder(e.Bytes()).ReadFloat64()
		if err != nil {
			t.Fatalf("ReadFloat64(%v): %v", v, err)
		}
		if math.Float64bits(got) != math.Float64bits(v) {
			t.Errorf("float64 round trip = %v, want %v", got, v)
		}
	}

	// NaN must round-trip bit-exactly too.
	e := NewEncoder()
	e.WriteFloat64(math.NaN())
	got, err := NewDecoder(e.Bytes()).ReadFloat64()
	if err != nil {
		t.Fatalf("ReadFloat64(NaN): %v", err)
	}
	if !math.IsNaN(got) {
		t.Errorf("NaN round trip = %v", got)
	}
}

func TestDecoderShortBuffer(t *testing.T) {
	d := NewDecoder([]byte{0x01})
	if _, err := d.ReadUint64(); err != io.ErrUnexpectedEOF {
		t.Errorf("ReadUint64 on short buffer = %v, want ErrUnexpectedEOF", err)
	}
}

func TestDecoderVarintOverflow(t *testing.T) {
	data := make([]byte, 11)
	for i := range data {
		data[i] = 0xFF
	}
	if _, err := NewDecoder(data).ReadUvarint(); err != ErrVarintOverflow {
		t.Errorf("ReadUvarint = %v, want ErrVarintOverflow", err)
	}
}

func TestEncoderReset(t *testing.T) {
	e := NewEncoder()
	e.WriteString("some data")
	e.Reset()
	if e.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", e.Len())
	}
	e.WriteByte(0x01)
	if e.Len() != 1 {
		t.Errorf("Len() = %d, want 1", e.Len())
	}
}

func TestMatrix3Inverse(t *testing.T) {
	m := Translate(Vector2{X: 10, Y: -4})
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("translation matrix should be invertible")
	}
	p := Vector2{X: 3, Y: 7}
	back := inv.Apply(m.Apply(p))
	if math.Abs(back.X-p.X) > 1e-12 || math.Abs(back.Y-p.Y) > 1e-12 {
		t.Errorf("inverse round trip = %+v, want %+v", back, p)
	}

	if _, ok := (Matrix3{}).Inverse(); ok {
		t.Error("zero matrix should not be invertible")
	}
}

func TestMatrix3Mul(t *testing.T) {
	a := Translate(Vector2{X: 5, Y: 0})
	b := Translate(Vector2{X: 0, Y: 3})
	p := a.Mul(b).Apply(Vector2{})
	if p.X != 5 || p.Y != 3 {
		t.Errorf("composed translate = %+v, want (5, 3)", p)
	}

	if !Identity().Mul(Identity()).IsIdentity() {
		t.Error("identity times identity should be identity")
	}
}
