package instruction

// Wire layout, per instruction, no outer framing:
//
//	[sign: 1 byte] [length: LengthSize bytes, big-endian] [content: length bytes]
//
// Remove carries no content bytes. The stream is self-delimiting because every
// instruction announces its own length.

func (r *Remove) WireLen() int { return 1 + LengthSize }
func (a *Add) WireLen() int    { return 1 + LengthSize + len(a.Content) }
func (c *Copy) WireLen() int   { return 1 + LengthSize + len(c.Content) }

func (r *Remove) AppendWire(dst []byte) []byte {
	dst = append(dst, RemoveSign)
	return appendLength(dst, r.Length)
}

func (a *Add) AppendWire(dst []byte) []byte {
	dst = append(dst, AddSign)
	dst = appendLength(dst, a.Len())
	return append(dst, a.Content...)
}

func (c *Copy) AppendWire(dst []byte) []byte {
	dst = append(dst, CopySign)
	dst = appendLength(dst, c.Len())
	return append(dst, c.Content...)
}

// Read decodes the next instruction from cur. It consumes exactly one
// instruction on success and never guesses missing fields.
func Read(cur *Cursor) (Instruction, error) {
	sign, ok := cur.Next()
	if !ok {
		return nil, ErrMissingSign
	}
	switch sign {
	case RemoveSign:
		length, err := readLength(cur)
		if err != nil {
			return nil, err
		}
		return &Remove{Length: length}, nil
	case AddSign:
		content, err := readContent(cur)
		if err != nil {
			return nil, err
		}
		return &Add{Content: content}, nil
	case CopySign:
		content, err := readContent(cur)
		if err != nil {
			return nil, err
		}
		return &Copy{Content: content}, nil
	default:
		return nil, ErrInvalidSign
	}
}

func appendLength(dst []byte, n Length) []byte {
	var buf [LengthSize]byte
	v := uint64(n)
	for i := LengthSize - 1; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	return append(dst, buf[:]...)
}

func readLength(cur *Cursor) (Length, error) {
	if cur.Len() == 0 {
		return 0, ErrMissingLength
	}
	raw, ok := cur.Take(LengthSize)
	if !ok {
		return 0, ErrInvalidLength
	}
	var v uint64
	for _, b := range raw {
		v = v<<8 | uint64(b)
	}
	return Length(v), nil
}

func readContent(cur *Cursor) ([]byte, error) {
	length, err := readLength(cur)
	if err != nil {
		return nil, err
	}
	content, ok := cur.Take(int(length))
	if !ok {
		return nil, ErrMissingContent
	}
	return content, nil
}
