package content

import (
	"fmt"

	"github.com/wippyai/xnb/errors"
)

// DecodeFunc decodes one value from the session. args are the generic
// argument type names resolved from the reader name; only generic
// containers use them.
type DecodeFunc[T any] func(s *Session, args []string) (T, error)

// Decoder pairs a reader identity with the routine that decodes values
// written by that reader. The caller picks the Decoder for the type it
// expects; the stream's reader identity must match it.
type Decoder[T any] struct {
	Reader string
	decode DecodeFunc[T]
}

// NewDecoder creates a Decoder for values written by reader.
func NewDecoder[T any](reader string, decode DecodeFunc[T]) Decoder[T] {
	return Decoder[T]{Reader: reader, decode: decode}
}

// Decode runs the decoder directly on the stream, with no reference index.
func (d Decoder[T]) Decode(s *Session, args []string) (T, error) {
	return d.decode(s, args)
}

// Entry adapts the decoder for dynamic dispatch through a Registry.
func (d Decoder[T]) Entry() Entry {
	decode := d.decode
	return Entry{
		Reader: d.Reader,
		Decode: func(s *Session, args []string) (any, error) {
			return decode(s, args)
		},
	}
}

// ReadObject reads a reference index and decodes the referenced object
// with d. The null reference is an error; use ReadOptionalObject where
// the slot may be empty.
func ReadObject[T any](s *Session, d Decoder[T]) (T, error) {
	var zero T
	ref, present, err := s.readReference()
	if err != nil {
		return zero, err
	}
	if !present {
		return zero, errors.NullReference(d.Reader, ref.offset)
	}
	return dispatch(s, ref, d)
}

// ReadOptionalObject is ReadObject for slots that may hold the null
// reference, which decodes to nil.
func ReadOptionalObject[T any](s *Session, d Decoder[T]) (*T, error) {
	ref, present, err := s.readReference()
	if err != nil || !present {
		return nil, err
	}
	v, err := dispatch(s, ref, d)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func dispatch[T any](s *Session, ref reference, d Decoder[T]) (T, error) {
	if ref.name.Identity != d.Reader {
		var zero T
		if !s.registry.Has(ref.name.Identity) {
			return zero, errors.UnknownReader(ref.raw, ref.offset)
		}
		return zero, errors.ReaderMismatch(ref.name.Identity, d.Reader, ref.offset)
	}
	return d.decode(s, ref.name.Args)
}

// readMember decodes one array element or dictionary key/value whose
// declared type is typeName. Well-known primitive types are stored inline;
// everything else is a back-referenced object.
func readMember[T any](s *Session, typeName string, d Decoder[T]) (T, error) {
	if reader, ok := inlineReader(typeName); ok {
		if reader != d.Reader {
			var zero T
			return zero, errors.ReaderMismatch(reader, d.Reader, s.Position())
		}
		return d.decode(s, nil)
	}
	return ReadObject(s, d)
}

// requireArgs checks that a generic reader resolved the expected number
// of argument type names.
func requireArgs(reader string, args []string, n int) error {
	if len(args) != n {
		return errors.MalformedGenericName(reader, argCountDetail(n, len(args)))
	}
	return nil
}

func argCountDetail(want, got int) string {
	return fmt.Sprintf("expected %d generic argument(s), got %d", want, got)
}
