package xnb

import (
	"github.com/wippyai/xnb/content"
	"github.com/wippyai/xnb/tide"
)

var registry = content.NewRegistry(append(content.Builtins(),
	tide.MapType(tide.KeepProperties).Entry(),
)...)

// Registry returns the built-in content readers plus the xTile map reader,
// which keeps property lists in file order.
func Registry() *content.Registry {
	return registry
}
