package binary

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Writer builds byte streams in the XNB primitive encodings.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{buf: &bytes.Buffer{}}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) *Writer {
	w.buf.WriteByte(b)
	return w
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) *Writer {
	w.buf.Write(data)
	return w
}

// WriteVarUint32 writes a 7-bit encoded unsigned integer using the
// minimal number of bytes.
func (w *Writer) WriteVarUint32(v uint32) *Writer {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf.WriteByte(b)
		if v == 0 {
			break
		}
	}
	return w
}

// WriteUint32 writes a little-endian uint32.
func (w *Writer) WriteUint32(v uint32) *Writer {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.buf.Write(buf[:])
	return w
}

// WriteInt32 writes a little-endian int32.
func (w *Writer) WriteInt32(v int32) *Writer {
	return w.WriteUint32(uint32(v))
}

// WriteFloat32 writes a little-endian float32.
func (w *Writer) WriteFloat32(v float32) *Writer {
	return w.WriteUint32(math.Float32bits(v))
}

// WriteString writes a 7-bit encoded length followed by the string bytes.
func (w *Writer) WriteString(s string) *Writer {
	w.WriteVarUint32(uint32(len(s)))
	w.buf.WriteString(s)
	return w
}

// WriteString32 writes a fixed u32 length followed by the string bytes,
// the string encoding used inside tBIN blobs.
func (w *Writer) WriteString32(s string) *Writer {
	w.WriteUint32(uint32(len(s)))
	w.buf.WriteString(s)
	return w
}

// EncodeVarUint32 returns the 7-bit encoding of v.
func EncodeVarUint32(v uint32) []byte {
	return NewWriter().WriteVarUint32(v).Bytes()
}
