// Package instruction owns the edit-script data model and its wire codec.
//
// Ownership boundary:
// - Remove/Add/Copy variants and their capacity rules
// - greedy fill over forward-only cursors
// - per-instruction replay
// - sign + big-endian length + content wire bytes
package instruction

import "bytes"

// Length is the run-length type for a single instruction. Its byte width fixes
// the wire format's length field; widening it (together with LengthSize) is a
// wire format version change.
type Length uint8

const (
	MinLength Length = 0
	MaxLength Length = ^Length(0)

	// LengthSize is the width in bytes of the wire length field.
	LengthSize = 1
)

// Wire sign bytes, one per variant.
const (
	RemoveSign byte = '-'
	AddSign    byte = '+'
	CopySign   byte = '|'
)

// Instruction is one sealed or in-progress edit-script operation. A stream of
// instructions applied to a source buffer reproduces the target buffer the
// stream was diffed against.
type Instruction interface {
	// Len reports the run length the instruction currently holds.
	Len() Length
	// Empty reports whether the instruction holds no run at all.
	Empty() bool
	// Full reports whether the instruction is at capacity and must be sealed.
	Full() bool

	// Push grows the run by one item. Remove counts the item without storing
	// it; Add and Copy append it to content. Fails with ErrContentOverflow at
	// capacity.
	Push(b byte) error
	// Fill greedily absorbs items from the cursors while the variant's fill
	// condition holds and capacity remains. Cursors are only ever advanced,
	// never rewound.
	Fill(lcs, source, target *Cursor)
	// Apply replays the instruction against the source cursor, appending any
	// produced bytes to out. verify enables the Copy content check.
	Apply(source *Cursor, out *bytes.Buffer, verify bool) error

	// Sign is the variant's wire tag byte.
	Sign() byte
	// WireLen is the encoded size in bytes.
	WireLen() int
	// AppendWire appends the encoded instruction to dst.
	AppendWire(dst []byte) []byte
}

// Remove skips a run of source bytes during replay. It carries no content.
type Remove struct {
	Length Length
}

// Add inserts bytes present in the target but absent from the aligned source.
type Add struct {
	Content []byte
}

// Copy carries bytes shared by source and target along the alignment backbone.
type Copy struct {
	Content []byte
}

func (r *Remove) Len() Length { return r.Length }
func (r *Remove) Empty() bool { return r.Length == MinLength }
func (r *Remove) Full() bool  { return r.Length == MaxLength }

func (a *Add) Len() Length { return Length(len(a.Content)) }
func (a *Add) Empty() bool { return len(a.Content) == int(MinLength) }
func (a *Add) Full() bool  { return len(a.Content) == int(MaxLength) }

func (c *Copy) Len() Length { return Length(len(c.Content)) }
func (c *Copy) Empty() bool { return len(c.Content) == int(MinLength) }
func (c *Copy) Full() bool  { return len(c.Content) == int(MaxLength) }

func (r *Remove) Push(_ byte) error {
	if r.Full() {
		return ErrContentOverflow
	}
	r.Length++
	return nil
}

func (a *Add) Push(b byte) error {
	if a.Full() {
		return ErrContentOverflow
	}
	a.Content = append(a.Content, b)
	return nil
}

func (c *Copy) Push(b byte) error {
	if c.Full() {
		return ErrContentOverflow
	}
	c.Content = append(c.Content, b)
	return nil
}

// Fill absorbs source bytes that are not the next backbone byte. An exhausted
// backbone never matches, so trailing source runs are absorbed too.
func (r *Remove) Fill(lcs, source, _ *Cursor) {
	for {
		b, ok := source.Peek()
		if !ok {
			return
		}
		if l, lok := lcs.Peek(); lok && l == b {
			return
		}
		if r.Push(b) != nil {
			return
		}
		source.Next()
	}
}

// Fill absorbs target bytes that are not the next backbone byte, symmetric to
// Remove over the target cursor.
func (a *Add) Fill(lcs, _, target *Cursor) {
	for {
		b, ok := target.Peek()
		if !ok {
			return
		}
		if l, lok := lcs.Peek(); lok && l == b {
			return
		}
		if a.Push(b) != nil {
			return
		}
		target.Next()
	}
}

// Fill absorbs bytes while backbone, source and target all agree, advancing
// all three cursors in lockstep.
func (c *Copy) Fill(lcs, source, target *Cursor) {
	for {
		l, lok := lcs.Peek()
		s, sok := source.Peek()
		t, tok := target.Peek()
		if !lok || !sok || !tok || l != s || l != t {
			return
		}
		if c.Push(l) != nil {
			return
		}
		lcs.Next()
		source.Next()
		target.Next()
	}
}

func (r *Remove) Apply(source *Cursor, _ *bytes.Buffer, _ bool) error {
	if !source.Skip(int(r.Length)) {
		return ErrSourceUnderrun
	}
	return nil
}

func (a *Add) Apply(_ *Cursor, out *bytes.Buffer, _ bool) error {
	out.Write(a.Content)
	return nil
}

func (c *Copy) Apply(source *Cursor, out *bytes.Buffer, verify bool) error {
	skipped, ok := source.Take(len(c.Content))
	if !ok {
		return ErrSourceUnderrun
	}
	if verify && !bytes.Equal(skipped, c.Content) {
		return ErrContentMismatch
	}
	out.Write(c.Content)
	return nil
}

func (r *Remove) Sign() byte { return RemoveSign }
func (a *Add) Sign() byte    { return AddSign }
func (c *Copy) Sign() byte   { return CopySign }
