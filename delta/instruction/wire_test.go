package instruction

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestAppendWireLayout(t *testing.T) {
	remove := &Remove{Length: 7}
	if got := remove.AppendWire(nil); !bytes.Equal(got, []byte{RemoveSign, 7}) {
		t.Fatalf("unexpected remove wire: %v", got)
	}

	add := &Add{Content: []byte("hi")}
	if got := add.AppendWire(nil); !bytes.Equal(got, []byte{AddSign, 2, 'h', 'i'}) {
		t.Fatalf("unexpected add wire: %v", got)
	}

	cp := &Copy{Content: []byte("ok")}
	if got := cp.AppendWire(nil); !bytes.Equal(got, []byte{CopySign, 2, 'o', 'k'}) {
		t.Fatalf("unexpected copy wire: %v", got)
	}
}

func TestWireLenMatchesAppendWire(t *testing.T) {
	for _, ins := range []Instruction{
		&Remove{Length: MaxLength},
		&Add{Content: []byte("abc")},
		&Copy{Content: make([]byte, int(MaxLength))},
	} {
		if got := len(ins.AppendWire(nil)); got != ins.WireLen() {
			t.Fatalf("%T: wire len %d, encoded %d", ins, ins.WireLen(), got)
		}
	}
}

func TestReadRoundTrip(t *testing.T) {
	for _, ins := range []Instruction{
		&Remove{Length: 0},
		&Remove{Length: MaxLength},
		&Add{Content: []byte("payload")},
		&Copy{Content: []byte{0x00, 0xFF}},
	} {
		cur := NewCursor(ins.AppendWire(nil))
		got, err := Read(cur)
		if err != nil {
			t.Fatalf("%T: read: %v", ins, err)
		}
		if !reflect.DeepEqual(got, ins) {
			t.Fatalf("round trip mismatch: got %#v want %#v", got, ins)
		}
		if cur.Len() != 0 {
			t.Fatalf("%T: trailing bytes after read: %d", ins, cur.Len())
		}
	}
}

func TestReadMissingSign(t *testing.T) {
	if _, err := Read(NewCursor(nil)); !errors.Is(err, ErrMissingSign) {
		t.Fatalf("expected ErrMissingSign, got %v", err)
	}
}

func TestReadInvalidSign(t *testing.T) {
	if _, err := Read(NewCursor([]byte{'X'})); !errors.Is(err, ErrInvalidSign) {
		t.Fatalf("expected ErrInvalidSign, got %v", err)
	}
}

func TestReadMissingLength(t *testing.T) {
	for _, sign := range []byte{RemoveSign, AddSign, CopySign} {
		if _, err := Read(NewCursor([]byte{sign})); !errors.Is(err, ErrMissingLength) {
			t.Fatalf("sign %q: expected ErrMissingLength, got %v", sign, err)
		}
	}
}

func TestReadMissingContent(t *testing.T) {
	// length announces 5, only 3 content bytes follow
	in := []byte{AddSign, 5, 'a', 'b', 'c'}
	if _, err := Read(NewCursor(in)); !errors.Is(err, ErrMissingContent) {
		t.Fatalf("expected ErrMissingContent, got %v", err)
	}
}
