package binary

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"

	"github.com/wippyai/xnb/errors"
)

// maxVarintBytes is the longest 7-bit encoding of a 32-bit value.
const maxVarintBytes = 5

// smallRead is the largest length allocated up front; longer reads grow
// the buffer as data actually arrives so a lying length prefix cannot
// force a huge allocation.
const smallRead = 64 << 10

type source interface {
	io.Reader
	io.ByteReader
}

// byteSource adds ReadByte to a plain reader without buffering, so the
// underlying stream never advances past the bytes actually decoded.
type byteSource struct {
	r   io.Reader
	one [1]byte
}

func (b *byteSource) Read(p []byte) (int, error) {
	return b.r.Read(p)
}

func (b *byteSource) ReadByte() (byte, error) {
	if _, err := io.ReadFull(b.r, b.one[:]); err != nil {
		return 0, err
	}
	return b.one[0], nil
}

// Reader wraps an io.Reader with position tracking and the XNB primitive
// encodings. Every failure is returned as an *errors.Error tagged with the
// reader's current phase and the byte offset where it happened.
type Reader struct {
	src   source
	phase errors.Phase
	pos   int
}

// NewReader creates a Reader over r. Sources that are not already byte
// readers are read one byte at a time; nothing is read ahead.
func NewReader(r io.Reader) *Reader {
	return NewReaderAt(r, 0)
}

// NewReaderAt creates a Reader whose positions start counting at pos.
func NewReaderAt(r io.Reader, pos int) *Reader {
	s, ok := r.(source)
	if !ok {
		s = &byteSource{r: r}
	}
	return &Reader{src: s, phase: errors.PhaseObject, pos: pos}
}

// SetPhase sets the phase attached to errors from subsequent reads.
func (r *Reader) SetPhase(p errors.Phase) {
	r.phase = p
}

// Phase returns the current error phase.
func (r *Reader) Phase() errors.Phase {
	return r.phase
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Read implements io.Reader so the remaining stream can be handed to a
// collaborator while positions stay accurate.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.src.Read(p)
	r.pos += n
	return n, err
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.src.ReadByte()
	if err != nil {
		return 0, errors.IO(r.phase, r.pos, err)
	}
	r.pos++
	return b, nil
}

// ReadUint8 is ReadByte under the name the format tables use.
func (r *Reader) ReadUint8() (uint8, error) {
	return r.ReadByte()
}

// ReadBytes reads exactly n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.InvalidData(r.phase, r.pos, "negative length")
	}
	if n <= smallRead {
		buf := make([]byte, n)
		read, err := io.ReadFull(r.src, buf)
		r.pos += read
		if err != nil {
			return nil, errors.IO(r.phase, r.pos, err)
		}
		return buf, nil
	}
	var buf bytes.Buffer
	copied, err := io.CopyN(&buf, r.src, int64(n))
	r.pos += int(copied)
	if err != nil {
		return nil, errors.IO(r.phase, r.pos, err)
	}
	return buf.Bytes(), nil
}

// ReadVarUint32 reads a 7-bit encoded unsigned integer: low groups first,
// continuation in bit 7.
func (r *Reader) ReadVarUint32() (uint32, error) {
	start := r.pos
	var result uint32
	var shift uint
	for i := 0; i < maxVarintBytes; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, errors.Malformed(r.phase, start, "7-bit encoded integer longer than %d bytes", maxVarintBytes)
}

func (r *Reader) read4() ([4]byte, error) {
	var buf [4]byte
	n, err := io.ReadFull(r.src, buf[:])
	r.pos += n
	if err != nil {
		return buf, errors.IO(r.phase, r.pos, err)
	}
	return buf, nil
}

// ReadUint32 reads a little-endian uint32 (fixed 4 bytes).
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.read4()
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadInt32 reads a little-endian int32 (fixed 4 bytes).
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadFloat32 reads a little-endian IEEE 754 float32.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadString reads a 7-bit encoded byte length followed by that many bytes.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadVarUint32()
	if err != nil {
		return "", err
	}
	return r.ReadStringN(int(n))
}

// ReadStringN reads n bytes and widens each one to a single character.
// This is not UTF-8 decoding: byte 0xE9 becomes U+00E9.
func (r *Reader) ReadStringN(n int) (string, error) {
	data, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return Widen(data), nil
}

// Widen maps every byte to the character with the same code point.
func Widen(data []byte) string {
	ascii := true
	for _, b := range data {
		if b >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return string(data)
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
