package content

import (
	"go.uber.org/zap"

	"github.com/wippyai/xnb/errors"
	"github.com/wippyai/xnb/internal/binary"
	"github.com/wippyai/xnb/typename"
)

// Session is the state of one container decode: the byte stream, the
// container's reader table and the registry used for dynamic decodes.
// The table and registry are read-only; a Session must not be shared
// between goroutines because the stream is.
type Session struct {
	r        *binary.Reader
	readers  ReaderTable
	registry *Registry
}

// NewSession creates a session over r. A nil registry uses DefaultRegistry.
func NewSession(r *binary.Reader, readers ReaderTable, registry *Registry) *Session {
	if registry == nil {
		registry = DefaultRegistry()
	}
	r.SetPhase(errors.PhaseObject)
	return &Session{r: r, readers: readers, registry: registry}
}

// Readers returns the container's reader table.
func (s *Session) Readers() ReaderTable {
	return s.readers
}

// Registry returns the registry used by ReadAny.
func (s *Session) Registry() *Registry {
	return s.registry
}

// Position returns the current byte offset in the payload.
func (s *Session) Position() int {
	return s.r.Position()
}

// ReadByte reads one byte.
func (s *Session) ReadByte() (byte, error) {
	return s.r.ReadByte()
}

// ReadVarUint32 reads a 7-bit encoded unsigned integer.
func (s *Session) ReadVarUint32() (uint32, error) {
	return s.r.ReadVarUint32()
}

// ReadUint32 reads a little-endian uint32.
func (s *Session) ReadUint32() (uint32, error) {
	return s.r.ReadUint32()
}

// ReadInt32 reads a little-endian int32.
func (s *Session) ReadInt32() (int32, error) {
	return s.r.ReadInt32()
}

// ReadFloat32 reads a little-endian float32.
func (s *Session) ReadFloat32() (float32, error) {
	return s.r.ReadFloat32()
}

// ReadBytes reads exactly n bytes.
func (s *Session) ReadBytes(n int) ([]byte, error) {
	return s.r.ReadBytes(n)
}

// ReadString reads a 7-bit length prefixed, byte-widened string.
func (s *Session) ReadString() (string, error) {
	return s.r.ReadString()
}

// reference is a resolved object reference.
type reference struct {
	name   typename.Name
	raw    string
	offset int
}

// readReference reads a reference index and resolves it against the
// reader table. present is false for the null reference.
func (s *Session) readReference() (ref reference, present bool, err error) {
	ref.offset = s.r.Position()
	index, err := s.r.ReadVarUint32()
	if err != nil {
		return ref, false, err
	}
	if index == 0 {
		return ref, false, nil
	}
	entry, ok := s.readers.Lookup(index)
	if !ok {
		return ref, false, errors.OutOfBounds(errors.PhaseObject, ref.offset, int(index), len(s.readers))
	}
	name, err := typename.Parse(entry.Name)
	if err != nil {
		return ref, false, err
	}
	ref.name = name
	ref.raw = entry.Name
	Logger().Debug("object reference",
		zap.Uint32("index", index),
		zap.Stringer("reader", name),
		zap.Int("offset", ref.offset))
	return ref, true, nil
}
