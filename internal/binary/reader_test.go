package binary

import (
	"bytes"
	stderrors "errors"
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/wippyai/xnb/errors"
)

func TestVarUint32(t *testing.T) {
	tests := []struct {
		encoded []byte
		value   uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x7f}, 127},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0xff, 0x01}, 255},
		{[]byte{0x80, 0x02}, 256},
		{[]byte{0xff, 0x7f}, 16383},
		{[]byte{0x80, 0x80, 0x01}, 16384},
		{[]byte{0xe5, 0x8e, 0x26}, 624485},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0x0f}, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		tt := tt // per-iteration copy (Go 1.22 loopvar semantics)
		t.Run("", func(t *testing.T) {
			if got := EncodeVarUint32(tt.value); !bytes.Equal(got, tt.encoded) {
				t.Errorf("encode %d: got %v, want %v", tt.value, got, tt.encoded)
			}

			r := NewReader(bytes.NewReader(tt.encoded))
			got, err := r.ReadVarUint32()
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tt.value {
				t.Errorf("decode: got %d, want %d", got, tt.value)
			}
			if r.Position() != len(tt.encoded) {
				t.Errorf("position = %d, want %d", r.Position(), len(tt.encoded))
			}
		})
	}
}

func minimalVarintLen(v uint32) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

func TestVarUint32RoundTripMinimal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	values := []uint32{0, 1, 0x7f, 0x80, 0x3fff, 0x4000, 0x1fffff, 0x200000, 0xfffffff, 0x10000000, math.MaxUint32}
	for i := 0; i < 2000; i++ {
		values = append(values, rng.Uint32()>>uint(rng.Intn(32)))
	}

	for _, v := range values {
		enc := EncodeVarUint32(v)
		if len(enc) != minimalVarintLen(v) {
			t.Fatalf("encode %d: %d bytes, want %d", v, len(enc), minimalVarintLen(v))
		}
		got, err := NewReader(bytes.NewReader(enc)).ReadVarUint32()
		if err != nil {
			t.Fatalf("decode %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip %d: got %d", v, got)
		}
	}
}

func TestVarUint32Overflow(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}))
	_, err := r.ReadVarUint32()
	if !errors.IsKind(err, errors.KindMalformed) {
		t.Fatalf("err = %v, want malformed", err)
	}
}

func TestShortReads(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(r *Reader) error
	}{
		{"byte", nil, func(r *Reader) error { _, err := r.ReadByte(); return err }},
		{"uint32", []byte{1, 2}, func(r *Reader) error { _, err := r.ReadUint32(); return err }},
		{"varint", []byte{0x80}, func(r *Reader) error { _, err := r.ReadVarUint32(); return err }},
		{"string", []byte{0x05, 'a', 'b'}, func(r *Reader) error { _, err := r.ReadString(); return err }},
		{"bytes", []byte{1}, func(r *Reader) error { _, err := r.ReadBytes(3); return err }},
	}

	for _, tt := range tests {
		tt := tt // per-iteration copy (Go 1.22 loopvar semantics)
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(bytes.NewReader(tt.data))
			r.SetPhase(errors.PhaseTide)
			err := tt.read(r)
			if !errors.IsKind(err, errors.KindIO) {
				t.Fatalf("err = %v, want io kind", err)
			}
			if !stderrors.Is(err, io.ErrUnexpectedEOF) {
				t.Errorf("err = %v, want unexpected EOF cause", err)
			}
			var e *errors.Error
			if stderrors.As(err, &e) && e.Phase != errors.PhaseTide {
				t.Errorf("phase = %v, want %v", e.Phase, errors.PhaseTide)
			}
		})
	}
}

func TestFixedWidth(t *testing.T) {
	w := NewWriter().
		WriteUint32(0xdeadbeef).
		WriteInt32(-5).
		WriteFloat32(1.5).
		Byte(9)

	r := NewReader(bytes.NewReader(w.Bytes()))
	u, err := r.ReadUint32()
	if err != nil || u != 0xdeadbeef {
		t.Fatalf("ReadUint32 = %x, %v", u, err)
	}
	i, err := r.ReadInt32()
	if err != nil || i != -5 {
		t.Fatalf("ReadInt32 = %d, %v", i, err)
	}
	f, err := r.ReadFloat32()
	if err != nil || f != 1.5 {
		t.Fatalf("ReadFloat32 = %v, %v", f, err)
	}
	b, err := r.ReadUint8()
	if err != nil || b != 9 {
		t.Fatalf("ReadUint8 = %d, %v", b, err)
	}
	if r.Position() != 13 {
		t.Errorf("position = %d, want 13", r.Position())
	}
}

func TestReadStringWidensBytes(t *testing.T) {
	data := []byte{0x03, 'a', 0xe9, 0xff}
	s, err := NewReader(bytes.NewReader(data)).ReadString()
	if err != nil {
		t.Fatal(err)
	}
	want := string([]rune{'a', 0xe9, 0xff})
	if s != want {
		t.Errorf("got %q, want %q", s, want)
	}
	if n := len([]rune(s)); n != 3 {
		t.Errorf("rune count = %d, want 3", n)
	}
}

func TestReadBytesLarge(t *testing.T) {
	data := bytes.Repeat([]byte{0xab}, smallRead+10)
	r := NewReader(bytes.NewReader(data))
	got, err := r.ReadBytes(len(data))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Error("large read mismatch")
	}

	_, err = NewReader(bytes.NewReader(data)).ReadBytes(len(data) + 1)
	if !errors.IsKind(err, errors.KindIO) {
		t.Errorf("err = %v, want io kind", err)
	}
}

type plainReader struct{ r io.Reader }

func (p plainReader) Read(b []byte) (int, error) { return p.r.Read(b) }

func TestNewReaderPlainSourceNoReadAhead(t *testing.T) {
	src := bytes.NewReader([]byte{0x81, 0x01, 'x', 'y', 'z'})
	r := NewReader(plainReader{src})
	v, err := r.ReadVarUint32()
	if err != nil || v != 129 {
		t.Fatalf("ReadVarUint32 = %d, %v", v, err)
	}
	b, err := r.ReadByte()
	if err != nil || b != 'x' {
		t.Fatalf("ReadByte = %q, %v", b, err)
	}
	if src.Len() != 2 {
		t.Errorf("source has %d bytes left, want 2", src.Len())
	}
	if r.Position() != 3 {
		t.Errorf("position = %d, want 3", r.Position())
	}
}
