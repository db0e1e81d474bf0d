package xnb

import (
	"bytes"
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/xnb/content"
	"github.com/wippyai/xnb/errors"
	"github.com/wippyai/xnb/internal/binary"
)

// Container is a decoded container.
type Container[T any] struct {
	Header  Header
	Readers content.ReaderTable
	Primary T
}

// Decode reads one container from r and decodes its primary asset with
// target. The container's primary object must have been written by
// target's reader.
func Decode[T any](r io.Reader, target content.Decoder[T], opts ...Option) (*Container[T], error) {
	return decode(r, buildOptions(opts), func(s *content.Session) (T, error) {
		return content.ReadObject(s, target)
	})
}

// DecodeBytes is Decode over an in-memory container.
func DecodeBytes[T any](data []byte, target content.Decoder[T], opts ...Option) (*Container[T], error) {
	return Decode(bytes.NewReader(data), target, opts...)
}

// DecodeAny reads one container and decodes the primary asset with
// whatever decoder the registry holds for its reader.
func DecodeAny(r io.Reader, opts ...Option) (*Container[any], error) {
	return decode(r, buildOptions(opts), content.ReadAny)
}

func decode[T any](r io.Reader, o Options, primary func(*content.Session) (T, error)) (*Container[T], error) {
	br := binary.NewReader(r)
	br.SetPhase(errors.PhaseHeader)

	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("container header",
		zap.Stringer("platform", h.Platform),
		zap.Bool("compressed", h.Compressed()),
		zap.Uint32("size", h.Size),
		zap.Uint32("decompressed_size", h.DecompressedSize))

	payload, err := openPayload(br, h, o)
	if err != nil {
		return nil, err
	}

	readers, err := content.ReadReaderTable(payload)
	if err != nil {
		return nil, err
	}

	payload.SetPhase(errors.PhaseReaders)
	offset := payload.Position()
	shared, err := payload.ReadVarUint32()
	if err != nil {
		return nil, err
	}
	if shared != 0 {
		return nil, errors.UnsupportedSharedResources(shared, offset)
	}

	s := content.NewSession(payload, readers, o.Registry)
	v, err := primary(s)
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("container decoded",
		zap.Int("readers", len(readers)),
		zap.Int("end", payload.Position()))
	return &Container[T]{Header: h, Readers: readers, Primary: v}, nil
}

// readHeader reads and validates the container header. Each field is
// checked as soon as it is read.
func readHeader(r *binary.Reader) (Header, error) {
	var h Header
	r.SetPhase(errors.PhaseHeader)

	offset := r.Position()
	magic, err := r.ReadBytes(len(Magic))
	if err != nil {
		return h, err
	}
	if string(magic) != Magic {
		return h, errors.New(errors.PhaseHeader, errors.KindMalformed).
			Offset(offset).
			Value(magic).
			Detail("bad magic %q", magic).
			Build()
	}

	offset = r.Position()
	p, err := r.ReadByte()
	if err != nil {
		return h, err
	}
	h.Platform = Platform(p)
	if !h.Platform.Valid() {
		return h, errors.New(errors.PhaseHeader, errors.KindMalformed).
			Offset(offset).
			Value(p).
			Detail("unknown platform %q", rune(p)).
			Build()
	}

	offset = r.Position()
	if h.Version, err = r.ReadByte(); err != nil {
		return h, err
	}
	if h.Version != Version {
		return h, errors.New(errors.PhaseHeader, errors.KindMalformed).
			Offset(offset).
			Value(h.Version).
			Detail("unsupported format version %d", h.Version).
			Build()
	}

	if h.Flags, err = r.ReadByte(); err != nil {
		return h, err
	}
	if h.Size, err = r.ReadUint32(); err != nil {
		return h, err
	}
	if h.Compressed() {
		if h.DecompressedSize, err = r.ReadUint32(); err != nil {
			return h, err
		}
	}
	return h, nil
}

// openPayload returns a reader over the payload that follows the header,
// decompressing it first when needed.
func openPayload(r *binary.Reader, h Header, o Options) (*binary.Reader, error) {
	if !h.Compressed() {
		if h.Size < uncompressedHeaderSize {
			return nil, errors.Malformed(errors.PhaseHeader, 6,
				"container size %d is smaller than the header", h.Size)
		}
		n := int64(h.Size - uncompressedHeaderSize)
		return binary.NewReaderAt(io.LimitReader(r, n), r.Position()), nil
	}

	if o.Decompressor == nil {
		return nil, errors.UnsupportedCompression()
	}
	if h.Size < compressedHeaderSize {
		return nil, errors.Malformed(errors.PhaseHeader, 6,
			"container size %d is smaller than the header", h.Size)
	}

	compressed := int(h.Size - compressedHeaderSize)
	out, err := o.Decompressor.Decompress(io.LimitReader(r, int64(compressed)), compressed, int(h.DecompressedSize))
	if err != nil {
		return nil, errors.Decompression(err, "decompressor failed")
	}
	if len(out) != int(h.DecompressedSize) {
		return nil, errors.New(errors.PhaseDecompress, errors.KindDecompression).
			Value(len(out)).
			Detail("decompressor produced %d bytes, want %d", len(out), h.DecompressedSize).
			Build()
	}
	o.Logger.Debug("payload decompressed",
		zap.Int("compressed", compressed),
		zap.Int("decompressed", len(out)))
	return binary.NewReader(bytes.NewReader(out)), nil
}
