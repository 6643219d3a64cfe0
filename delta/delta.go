// Package delta diffs and patches byte sequences with a compact binary edit
// script.
//
// Ownership boundary:
// - greedy diff construction over the LCS backbone
// - encode/decode of whole instruction streams
// - replay of a stream against a source buffer
//
// The per-instruction model and wire bytes live in delta/instruction; the
// alignment step lives in delta/lcs.
package delta

import (
	"bytes"
	"context"

	"github.com/deltakit/deltakit/delta/instruction"
	"github.com/deltakit/deltakit/delta/lcs"
)

// Patch is an ordered instruction stream. Applied to the source it was diffed
// from, it reproduces the target exactly.
type Patch []instruction.Instruction

// Diff computes the edit script turning source into target. Neither input is
// mutated; the returned patch owns independently copied content and outlives
// both buffers.
func Diff(source, target []byte) Patch {
	p, _ := DiffContext(context.Background(), source, target)
	return p
}

// DiffContext is Diff with cooperative cancellation during the LCS alignment,
// the dominant cost on large inputs.
func DiffContext(ctx context.Context, source, target []byte) (Patch, error) {
	backbone, err := lcs.BytesContext(ctx, source, target)
	if err != nil {
		return nil, err
	}

	lcsCur := instruction.NewCursor(backbone)
	srcCur := instruction.NewCursor(source)
	tgtCur := instruction.NewCursor(target)

	var p Patch
	for lcsCur.Len() > 0 || srcCur.Len() > 0 || tgtCur.Len() > 0 {
		p = drain(p, func() instruction.Instruction { return new(instruction.Remove) }, lcsCur, srcCur, tgtCur)
		p = drain(p, func() instruction.Instruction { return new(instruction.Add) }, lcsCur, srcCur, tgtCur)
		p = drain(p, func() instruction.Instruction { return new(instruction.Copy) }, lcsCur, srcCur, tgtCur)
	}
	return p, nil
}

// drain runs one variant's fill, sealing at capacity and reopening the same
// variant so runs longer than MaxLength split into consecutive instructions.
// Instructions that absorb nothing are discarded.
func drain(p Patch, open func() instruction.Instruction, lcsCur, srcCur, tgtCur *instruction.Cursor) Patch {
	for {
		ins := open()
		ins.Fill(lcsCur, srcCur, tgtCur)
		if ins.Empty() {
			return p
		}
		p = append(p, ins)
		if !ins.Full() {
			return p
		}
	}
}

// Encode serializes the patch to its wire bytes: each instruction's sign,
// big-endian length, and content concatenated in order, no outer framing.
func Encode(p Patch) []byte {
	out := make([]byte, 0, p.WireLen())
	for _, ins := range p {
		out = ins.AppendWire(out)
	}
	return out
}

// Decode parses wire bytes back into a patch. Errors are local to the first
// malformed instruction; empty input fails with ErrMissingSign.
func Decode(b []byte) (Patch, error) {
	cur := instruction.NewCursor(b)
	var p Patch
	for {
		ins, err := instruction.Read(cur)
		if err != nil {
			return nil, err
		}
		p = append(p, ins)
		if cur.Len() == 0 {
			return p, nil
		}
	}
}

// ApplyOptions configures replay behavior.
type ApplyOptions struct {
	// VerifyCopy checks that Copy content matches the skipped source bytes
	// and fails with ErrContentMismatch when it does not.
	VerifyCopy bool
}

func DefaultApplyOptions() ApplyOptions {
	return ApplyOptions{VerifyCopy: true}
}

// Apply replays the patch against source with default options and returns the
// reconstructed target.
func Apply(source []byte, p Patch) ([]byte, error) {
	return ApplyWith(source, p, DefaultApplyOptions())
}

// ApplyWith replays the patch against source. Replay stops at the first
// instruction inconsistent with the source rather than emitting partial
// output.
func ApplyWith(source []byte, p Patch, opts ApplyOptions) ([]byte, error) {
	cur := instruction.NewCursor(source)
	var out bytes.Buffer
	out.Grow(p.TargetLen())
	for _, ins := range p {
		if err := ins.Apply(cur, &out, opts.VerifyCopy); err != nil {
			return nil, err
		}
	}
	return out.Bytes(), nil
}

// SourceLen is the number of source bytes the patch consumes on replay
// (Remove skips plus Copy advances).
func (p Patch) SourceLen() int {
	n := 0
	for _, ins := range p {
		switch ins.(type) {
		case *instruction.Remove, *instruction.Copy:
			n += int(ins.Len())
		}
	}
	return n
}

// TargetLen is the number of bytes the patch produces on replay (Add plus
// Copy content).
func (p Patch) TargetLen() int {
	n := 0
	for _, ins := range p {
		switch ins.(type) {
		case *instruction.Add, *instruction.Copy:
			n += int(ins.Len())
		}
	}
	return n
}

// WireLen is the encoded size of the patch in bytes.
func (p Patch) WireLen() int {
	n := 0
	for _, ins := range p {
		n += ins.WireLen()
	}
	return n
}
