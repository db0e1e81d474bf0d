package tide

import "strconv"

// Property type codes in a tBIN property list.
const (
	propBool   byte = 0
	propInt    byte = 1
	propFloat  byte = 2
	propString byte = 3
)

// PropertyValue is one of Bool, Int, Float or String.
type PropertyValue interface {
	isPropertyValue()
	String() string
}

type (
	Bool   bool
	Int    int32
	Float  float32
	String string
)

func (Bool) isPropertyValue()   {}
func (Int) isPropertyValue()    {}
func (Float) isPropertyValue()  {}
func (String) isPropertyValue() {}

func (v Bool) String() string   { return strconv.FormatBool(bool(v)) }
func (v Int) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v Float) String() string  { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
func (v String) String() string { return string(v) }

// Property is a named value from a property list.
type Property struct {
	Name  string
	Value PropertyValue
}

// PropertyFunc converts a decoded property list, in file order, into the
// representation P stored on maps, tilesheets, layers and tiles.
type PropertyFunc[P any] func([]Property) P

// KeepProperties keeps the list as decoded, duplicates included.
func KeepProperties(props []Property) []Property {
	return props
}

// IndexProperties indexes the list by name. A repeated name keeps the
// last value.
func IndexProperties(props []Property) map[string]PropertyValue {
	m := make(map[string]PropertyValue, len(props))
	for _, p := range props {
		m[p.Name] = p.Value
	}
	return m
}

// DiscardProperties drops the list. The bytes are still read.
func DiscardProperties([]Property) struct{} {
	return struct{}{}
}
