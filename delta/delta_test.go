package delta

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/deltakit/deltakit/delta/instruction"
)

func TestDiffApplyRoundTrip(t *testing.T) {
	cases := []struct {
		name           string
		source, target string
	}{
		{"replace middle", "the quick brown fox", "the slow brown fox"},
		{"prefix insert", "world", "hello world"},
		{"suffix delete", "hello world", "hello"},
		{"disjoint", "abcdef", "uvwxyz"},
		{"empty to content", "", "something"},
		{"content to empty", "something", ""},
		{"interleaved", "a1b2c3d4", "1x2y3z4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Diff([]byte(tc.source), []byte(tc.target))
			got, err := Apply([]byte(tc.source), p)
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if string(got) != tc.target {
				t.Fatalf("round trip: got %q want %q", got, tc.target)
			}
		})
	}
}

func TestDiffApplyRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		source := randomBytes(rng, rng.Intn(600))
		target := mutate(rng, source)
		p := Diff(source, target)
		got, err := Apply(source, p)
		if err != nil {
			t.Fatalf("case %d: apply: %v", i, err)
		}
		if !bytes.Equal(got, target) {
			t.Fatalf("case %d: round trip mismatch (%d vs %d bytes)", i, len(got), len(target))
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	source := []byte("a longer source buffer with some shared structure")
	target := []byte("a much longer target buffer with shared structure!")
	p := Diff(source, target)

	decoded, err := Decode(Encode(p))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, p) {
		t.Fatalf("codec round trip mismatch:\n got %#v\nwant %#v", decoded, p)
	}
}

func TestDiffIdenticalInputsIsAllCopy(t *testing.T) {
	source := bytes.Repeat([]byte{'s'}, 100)
	p := Diff(source, source)
	total := 0
	for _, ins := range p {
		if _, ok := ins.(*instruction.Copy); !ok {
			t.Fatalf("expected only copy instructions, got %T", ins)
		}
		total += int(ins.Len())
	}
	if total != len(source) {
		t.Fatalf("copies cover %d of %d bytes", total, len(source))
	}
}

func TestDiffEmptyInputsIsEmptyStream(t *testing.T) {
	if p := Diff(nil, nil); len(p) != 0 {
		t.Fatalf("expected empty patch, got %d instructions", len(p))
	}
}

func TestDiffSplitsRunsAtCapacity(t *testing.T) {
	long := bytes.Repeat([]byte{'x'}, int(instruction.MaxLength)+45)
	p := Diff(long, long)
	if len(p) != 2 {
		t.Fatalf("expected 2 copy instructions, got %d", len(p))
	}
	if p[0].Len() != instruction.MaxLength || int(p[1].Len()) != 45 {
		t.Fatalf("unexpected split: %d + %d", p[0].Len(), p[1].Len())
	}

	// Same splitting for a long removal run.
	p = Diff(long, nil)
	if len(p) != 2 {
		t.Fatalf("expected 2 remove instructions, got %d", len(p))
	}
	for _, ins := range p {
		if _, ok := ins.(*instruction.Remove); !ok {
			t.Fatalf("expected remove, got %T", ins)
		}
	}
	if int(p[0].Len())+int(p[1].Len()) != len(long) {
		t.Fatalf("split lengths do not sum: %d + %d", p[0].Len(), p[1].Len())
	}
}

func TestDiffConcreteScenarios(t *testing.T) {
	p := Diff([]byte("AAA"), nil)
	want := Patch{&instruction.Remove{Length: 3}}
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("diff(AAA, empty): %#v", p)
	}

	p = Diff([]byte("AAA"), []byte("B"))
	want = Patch{&instruction.Remove{Length: 3}, &instruction.Add{Content: []byte("B")}}
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("diff(AAA, B): %#v", p)
	}

	// Backbone "A": the opening remove is empty and discarded, the two Bs are
	// added, the A copied, and the two trailing source bytes removed.
	p = Diff([]byte("AAA"), []byte("BBA"))
	want = Patch{
		&instruction.Add{Content: []byte("BB")},
		&instruction.Copy{Content: []byte("A")},
		&instruction.Remove{Length: 2},
	}
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("diff(AAA, BBA): %#v", p)
	}
}

func TestDecodeErrorScenarios(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want error
	}{
		{"empty input", nil, instruction.ErrMissingSign},
		{"unknown sign", []byte{'X'}, instruction.ErrInvalidSign},
		{"sign only", []byte{instruction.AddSign}, instruction.ErrMissingLength},
		{"short content", []byte{instruction.AddSign, 5, 'a', 'b', 'c'}, instruction.ErrMissingContent},
		{"valid then truncated", append(Encode(Diff([]byte("a"), []byte("b"))), instruction.CopySign), instruction.ErrMissingLength},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("decode(%v): got %v want %v", tc.in, err, tc.want)
			}
		})
	}
}

func TestApplyFailsOnInconsistentSource(t *testing.T) {
	p := Patch{&instruction.Remove{Length: 10}}
	if _, err := Apply([]byte("short"), p); !errors.Is(err, instruction.ErrSourceUnderrun) {
		t.Fatalf("expected ErrSourceUnderrun, got %v", err)
	}

	p = Patch{&instruction.Copy{Content: []byte("abc")}}
	if _, err := Apply([]byte("abX"), p); !errors.Is(err, instruction.ErrContentMismatch) {
		t.Fatalf("expected ErrContentMismatch, got %v", err)
	}

	got, err := ApplyWith([]byte("abX"), p, ApplyOptions{VerifyCopy: false})
	if err != nil {
		t.Fatalf("unverified apply: %v", err)
	}
	if string(got) != "abc" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestDiffContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := DiffContext(ctx, bytes.Repeat([]byte{'a'}, 32), bytes.Repeat([]byte{'b'}, 32)); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestPatchLengthAccounting(t *testing.T) {
	source := []byte("shared-prefix SOURCE-ONLY shared-suffix")
	target := []byte("shared-prefix TARGET shared-suffix")
	p := Diff(source, target)

	if p.TargetLen() != len(target) {
		t.Fatalf("target len %d, want %d", p.TargetLen(), len(target))
	}
	if p.SourceLen() > len(source) {
		t.Fatalf("source len %d exceeds source size %d", p.SourceLen(), len(source))
	}
	if p.WireLen() != len(Encode(p)) {
		t.Fatalf("wire len %d, encoded %d", p.WireLen(), len(Encode(p)))
	}
}

func randomBytes(rng *rand.Rand, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		// Narrow alphabet to force shared subsequences.
		out[i] = byte('a' + rng.Intn(8))
	}
	return out
}

func mutate(rng *rand.Rand, in []byte) []byte {
	out := append([]byte(nil), in...)
	for i := 0; i < 1+rng.Intn(6); i++ {
		switch pos := rng.Intn(len(out) + 1); rng.Intn(3) {
		case 0:
			out = append(out[:pos], append(randomBytes(rng, rng.Intn(40)), out[pos:]...)...)
		case 1:
			end := pos + rng.Intn(len(out)-pos+1)
			out = append(out[:pos], out[end:]...)
		default:
			if pos < len(out) {
				out[pos] = byte('a' + rng.Intn(8))
			}
		}
	}
	return out
}
