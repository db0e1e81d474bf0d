package content

import (
	"go.uber.org/zap"

	"github.com/wippyai/xnb/errors"
	"github.com/wippyai/xnb/internal/binary"
	"github.com/wippyai/xnb/typename"
)

// TypeReader is one entry of a container's type reader table.
type TypeReader struct {
	Name    string
	Version int32
}

// Identity returns the bare reader identity of the entry.
func (t TypeReader) Identity() string {
	return typename.Bare(t.Name)
}

// ReaderTable is the ordered reader list of one container. Object
// references are 1-based indices into it; 0 means null.
type ReaderTable []TypeReader

// Lookup returns the entry for a 1-based reference index.
func (t ReaderTable) Lookup(index uint32) (TypeReader, bool) {
	if index == 0 || int(index) > len(t) {
		return TypeReader{}, false
	}
	return t[index-1], true
}

// ReadReaderTable reads a 7-bit encoded count followed by that many
// {name, version} entries.
func ReadReaderTable(r *binary.Reader) (ReaderTable, error) {
	prev := r.Phase()
	r.SetPhase(errors.PhaseReaders)
	defer r.SetPhase(prev)

	count, err := r.ReadVarUint32()
	if err != nil {
		return nil, err
	}

	var table ReaderTable
	for i := uint32(0); i < count; i++ {
		name, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		version, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		Logger().Debug("type reader",
			zap.Uint32("index", i+1),
			zap.String("name", name),
			zap.Int32("version", version))
		table = append(table, TypeReader{Name: name, Version: version})
	}
	return table, nil
}
