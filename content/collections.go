package content

// ArrayOf returns a decoder for ArrayReader values whose elements are
// decoded by elem. The element type name comes from the reader's single
// generic argument and decides whether elements are inline or referenced.
func ArrayOf[T any](elem Decoder[T]) Decoder[[]T] {
	return NewDecoder(ArrayReader, func(s *Session, args []string) ([]T, error) {
		if err := requireArgs(ArrayReader, args, 1); err != nil {
			return nil, err
		}
		count, err := s.ReadUint32()
		if err != nil {
			return nil, err
		}
		var out []T
		for i := uint32(0); i < count; i++ {
			v, err := readMember(s, args[0], elem)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	})
}

// DictionaryOf returns a decoder for DictionaryReader values. Entries are
// read key first; a repeated key overwrites the earlier value.
func DictionaryOf[K comparable, V any](key Decoder[K], value Decoder[V]) Decoder[map[K]V] {
	return NewDecoder(DictionaryReader, func(s *Session, args []string) (map[K]V, error) {
		if err := requireArgs(DictionaryReader, args, 2); err != nil {
			return nil, err
		}
		count, err := s.ReadUint32()
		if err != nil {
			return nil, err
		}
		m := make(map[K]V)
		for i := uint32(0); i < count; i++ {
			k, err := readMember(s, args[0], key)
			if err != nil {
				return nil, err
			}
			v, err := readMember(s, args[1], value)
			if err != nil {
				return nil, err
			}
			m[k] = v
		}
		return m, nil
	})
}

// NullableOf returns a decoder for NullableReader values wrapping inner.
func NullableOf[T any](inner Decoder[T]) Decoder[*T] {
	return NewDecoder(NullableReader, func(s *Session, args []string) (*T, error) {
		if err := requireArgs(NullableReader, args, 1); err != nil {
			return nil, err
		}
		return ReadNullable(s, func(s *Session) (T, error) {
			return readMember(s, args[0], inner)
		})
	})
}

// ReadNullable reads a presence byte and, when it is 1, one value with
// read. Any other byte yields nil and nothing further is read.
func ReadNullable[T any](s *Session, read func(*Session) (T, error)) (*T, error) {
	has, err := s.ReadByte()
	if err != nil {
		return nil, err
	}
	if has != 1 {
		return nil, nil
	}
	v, err := read(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
