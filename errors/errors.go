package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

// Phase indicates where in decoding the error occurred
type Phase string

const (
	PhaseHeader     Phase = "header"     // container envelope
	PhaseDecompress Phase = "decompress" // compressed payload
	PhaseReaders    Phase = "readers"    // type reader table
	PhaseObject     Phase = "object"     // object graph and typed decoders
	PhaseTypeName   Phase = "typename"   // generic reader name resolution
	PhaseTide       Phase = "tide"       // tBIN tilemap blob
	PhaseLoad       Phase = "load"       // driver side file handling
)

// Kind categorizes the error
type Kind string

const (
	KindIO                         Kind = "io"
	KindMalformed                  Kind = "malformed"
	KindUnsupportedCompression     Kind = "unsupported_compression"
	KindDecompression              Kind = "decompression"
	KindUnknownReader              Kind = "unknown_reader"
	KindReaderMismatch             Kind = "reader_mismatch"
	KindUnrecognizedSurfaceFormat  Kind = "unrecognized_surface_format"
	KindUnsupportedSharedResources Kind = "unsupported_shared_resources"
	KindMalformedGenericName       Kind = "malformed_generic_name"
	KindMalformedTileTag           Kind = "malformed_tile_tag"
	KindOutOfBounds                Kind = "out_of_bounds"
	KindNullReference              Kind = "null_reference"
	KindInvalidData                Kind = "invalid_data"
)

// Error is the structured error type returned by every decoder in the module.
// Offset is the byte position in the stream being decoded, or -1 when unknown.
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Reader   string
	Expected string
	Detail   string
	Path     []string
	Offset   int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Offset >= 0 {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}

	if e.Reader != "" || e.Expected != "" {
		b.WriteString(": ")
		switch {
		case e.Reader != "" && e.Expected != "":
			b.WriteString("reader ")
			b.WriteString(e.Reader)
			b.WriteString(", expected ")
			b.WriteString(e.Expected)
		case e.Reader != "":
			b.WriteString("reader ")
			b.WriteString(e.Reader)
		default:
			b.WriteString("expected ")
			b.WriteString(e.Expected)
		}
	}

	if e.Detail != "" {
		if e.Reader != "" || e.Expected != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target with an empty
// Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Reader sets the reader identity found in the stream
func (b *Builder) Reader(name string) *Builder {
	b.err.Reader = name
	return b
}

// Expected sets the reader identity the caller asked for
func (b *Builder) Expected(name string) *Builder {
	b.err.Expected = name
	return b
}

// Offset sets the stream position
func (b *Builder) Offset(pos int) *Builder {
	b.err.Offset = pos
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// IO wraps a short read or source failure. A bare io.EOF becomes
// io.ErrUnexpectedEOF since every read in the format is mandatory.
func IO(phase Phase, offset int, cause error) *Error {
	if cause == io.EOF {
		cause = io.ErrUnexpectedEOF
	}
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Offset: offset,
		Cause:  cause,
	}
}

// Malformed creates a structural format error
func Malformed(phase Phase, offset int, detail string, args ...any) *Error {
	return New(phase, KindMalformed).Offset(offset).Detail(detail, args...).Build()
}

// UnsupportedCompression creates an error for a compressed payload with no decompressor
func UnsupportedCompression() *Error {
	return &Error{
		Phase:  PhaseDecompress,
		Kind:   KindUnsupportedCompression,
		Offset: -1,
		Detail: "compressed container and no decompressor configured",
	}
}

// Decompression wraps a failure reported by the decompressor
func Decompression(cause error, detail string) *Error {
	return &Error{
		Phase:  PhaseDecompress,
		Kind:   KindDecompression,
		Offset: -1,
		Detail: detail,
		Cause:  cause,
	}
}

// UnknownReader creates an error for a reader identity with no registered decoder
func UnknownReader(name string, offset int) *Error {
	return &Error{
		Phase:  PhaseObject,
		Kind:   KindUnknownReader,
		Offset: offset,
		Reader: name,
		Detail: "no decoder registered",
	}
}

// ReaderMismatch creates an error for a reference whose reader differs from the requested one
func ReaderMismatch(found, expected string, offset int) *Error {
	return &Error{
		Phase:    PhaseObject,
		Kind:     KindReaderMismatch,
		Offset:   offset,
		Reader:   found,
		Expected: expected,
	}
}

// UnrecognizedSurfaceFormat creates an error for a texture format code outside the known set
func UnrecognizedSurfaceFormat(code uint32, offset int) *Error {
	return &Error{
		Phase:  PhaseObject,
		Kind:   KindUnrecognizedSurfaceFormat,
		Offset: offset,
		Value:  code,
		Detail: fmt.Sprintf("surface format %d", code),
	}
}

// UnsupportedSharedResources creates an error for a nonzero shared resource count
func UnsupportedSharedResources(count uint32, offset int) *Error {
	return &Error{
		Phase:  PhaseReaders,
		Kind:   KindUnsupportedSharedResources,
		Offset: offset,
		Value:  count,
		Detail: fmt.Sprintf("%d shared resource(s)", count),
	}
}

// MalformedGenericName creates an error for an unparseable generic reader name
func MalformedGenericName(name, detail string) *Error {
	return &Error{
		Phase:  PhaseTypeName,
		Kind:   KindMalformedGenericName,
		Offset: -1,
		Reader: name,
		Detail: detail,
	}
}

// MalformedTileTag creates an error for a tile stream tag outside T, S, N, A
func MalformedTileTag(tag byte, offset int, path ...string) *Error {
	return &Error{
		Phase:  PhaseTide,
		Kind:   KindMalformedTileTag,
		Offset: offset,
		Path:   path,
		Value:  tag,
		Detail: fmt.Sprintf("unexpected tag 0x%02x", tag),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, offset int, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Offset: offset,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// NullReference creates an error for a null object where a value is required
func NullReference(expected string, offset int) *Error {
	return &Error{
		Phase:    PhaseObject,
		Kind:     KindNullReference,
		Offset:   offset,
		Expected: expected,
		Detail:   "null object reference",
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, offset int, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Offset: offset,
		Detail: detail,
	}
}

// Load creates a file loading error for drivers
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindIO,
		Offset: -1,
		Detail: detail,
		Cause:  cause,
	}
}
