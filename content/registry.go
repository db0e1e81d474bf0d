package content

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/wippyai/xnb/errors"
)

// Entry is a dynamically dispatched decoder.
type Entry struct {
	Reader string
	Decode func(s *Session, args []string) (any, error)
}

// Registry maps reader identities to dynamic decoders. It is built once
// and never modified, so one Registry may serve concurrent decodes.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry builds a registry. Later entries replace earlier ones with
// the same reader identity.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		r.entries[e.Reader] = e
	}
	return r
}

// Lookup returns the entry for a bare reader identity.
func (r *Registry) Lookup(reader string) (Entry, bool) {
	e, ok := r.entries[reader]
	return e, ok
}

// Has reports whether reader is registered.
func (r *Registry) Has(reader string) bool {
	_, ok := r.entries[reader]
	return ok
}

// Readers lists the registered identities in sorted order.
func (r *Registry) Readers() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtins returns the entries for every reader implemented in this package.
func Builtins() []Entry {
	return []Entry{
		Int32Type.Entry(),
		CharType.Entry(),
		StringType.Entry(),
		RectangleType.Entry(),
		Vector3Type.Entry(),
		Texture2DType.Entry(),
		SpriteFontType.Entry(),
		{Reader: ArrayReader, Decode: readArrayAny},
		{Reader: DictionaryReader, Decode: readDictionaryAny},
		{Reader: NullableReader, Decode: readNullableAny},
	}
}

var defaultRegistry = NewRegistry(Builtins()...)

// DefaultRegistry returns the registry of the built-in readers.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// ReadAny reads a reference and decodes the object with whatever decoder
// the registry holds for its reader. The null reference yields nil.
func ReadAny(s *Session) (any, error) {
	ref, present, err := s.readReference()
	if err != nil || !present {
		return nil, err
	}
	entry, ok := s.registry.Lookup(ref.name.Identity)
	if !ok {
		return nil, errors.UnknownReader(ref.raw, ref.offset)
	}
	return entry.Decode(s, ref.name.Args)
}

func readMemberAny(s *Session, typeName string) (any, error) {
	if reader, ok := inlineReader(typeName); ok {
		entry, ok := s.registry.Lookup(reader)
		if !ok {
			return nil, errors.UnknownReader(reader, s.Position())
		}
		return entry.Decode(s, nil)
	}
	return ReadAny(s)
}

func readArrayAny(s *Session, args []string) (any, error) {
	if err := requireArgs(ArrayReader, args, 1); err != nil {
		return nil, err
	}
	count, err := s.ReadUint32()
	if err != nil {
		return nil, err
	}
	out := []any{}
	for i := uint32(0); i < count; i++ {
		v, err := readMemberAny(s, args[0])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func readDictionaryAny(s *Session, args []string) (any, error) {
	if err := requireArgs(DictionaryReader, args, 2); err != nil {
		return nil, err
	}
	count, err := s.ReadUint32()
	if err != nil {
		return nil, err
	}
	m := make(map[any]any)
	for i := uint32(0); i < count; i++ {
		offset := s.Position()
		k, err := readMemberAny(s, args[0])
		if err != nil {
			return nil, err
		}
		if t := reflect.TypeOf(k); t == nil || !t.Comparable() {
			return nil, errors.InvalidData(errors.PhaseObject, offset, fmt.Sprintf("dictionary key of type %T cannot be a map key", k))
		}
		v, err := readMemberAny(s, args[1])
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}

func readNullableAny(s *Session, args []string) (any, error) {
	if err := requireArgs(NullableReader, args, 1); err != nil {
		return nil, err
	}
	has, err := s.ReadByte()
	if err != nil || has == 0 {
		return nil, err
	}
	return readMemberAny(s, args[0])
}
