package tide

import (
	"bytes"
	"sync"
)

// blobPool pools the bytes.Reader cursors used to scan map blobs
var blobPool = sync.Pool{
	New: func() interface{} {
		return &bytes.Reader{}
	},
}

// getCursor gets a pooled cursor positioned at the start of blob
func getCursor(blob []byte) *bytes.Reader {
	r := blobPool.Get().(*bytes.Reader)
	r.Reset(blob)
	return r
}

// putCursor drops the blob reference and returns the cursor to the pool
func putCursor(r *bytes.Reader) {
	r.Reset(nil)
	blobPool.Put(r)
}
