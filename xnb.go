package xnb

import (
	"fmt"
	"io"
)

// Magic opens every container.
const Magic = "XNB"

// Version is the only supported format version.
const Version = 5

const (
	flagCompressed = 0x80

	// uncompressedHeaderSize and compressedHeaderSize count the bytes the
	// container size includes before the payload.
	uncompressedHeaderSize = 10
	compressedHeaderSize   = 14
)

// Platform is the target platform byte of a container.
type Platform byte

const (
	PlatformWindows      Platform = 'w'
	PlatformWindowsPhone Platform = 'm'
	PlatformXbox360      Platform = 'x'
)

// Valid reports whether p is a known platform.
func (p Platform) Valid() bool {
	switch p {
	case PlatformWindows, PlatformWindowsPhone, PlatformXbox360:
		return true
	}
	return false
}

func (p Platform) String() string {
	switch p {
	case PlatformWindows:
		return "windows"
	case PlatformWindowsPhone:
		return "windows-phone"
	case PlatformXbox360:
		return "xbox360"
	}
	return fmt.Sprintf("Platform(0x%02x)", byte(p))
}

// Header is the fixed container header.
type Header struct {
	Platform Platform
	Version  byte
	Flags    byte
	// Size is the whole container size in bytes, header included.
	Size uint32
	// DecompressedSize is the payload size after decompression. It is zero
	// for uncompressed containers.
	DecompressedSize uint32
}

// Compressed reports whether the payload is compressed.
func (h Header) Compressed() bool {
	return h.Flags&flagCompressed != 0
}

// Decompressor expands a compressed payload. src yields exactly
// compressedSize bytes; the result must be exactly decompressedSize bytes.
type Decompressor interface {
	Decompress(src io.Reader, compressedSize, decompressedSize int) ([]byte, error)
}

// DecompressorFunc adapts a function to the Decompressor interface.
type DecompressorFunc func(src io.Reader, compressedSize, decompressedSize int) ([]byte, error)

func (f DecompressorFunc) Decompress(src io.Reader, compressedSize, decompressedSize int) ([]byte, error) {
	return f(src, compressedSize, decompressedSize)
}
