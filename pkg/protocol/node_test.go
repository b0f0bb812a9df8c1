package protocol

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWireNodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		node *WireNode
	}{
		{"nil", nil},
		{"text", NewTextWire("hi")},
		{"empty element", NewElementWire("div", nil)},
		{"tree", NewElementWire("ul", map[string]string{"class": "list"},
			NewElementWire("li", nil, NewTextWire("a")),
			NewElementWire("li", map[string]string{"value": "typed"}, NewTextWire("b")),
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEncoder()
			EncodeWireNode(e, tt.node)
			got, err := DecodeWireNode(NewDecoder(e.Bytes()))
			if err != nil {
				t.Fatalf("DecodeWireNode() error = %v", err)
			}
			if diff := cmp.Diff(tt.node, got); diff != "" {
				t.Errorf("round trip (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWireNodeDeterministic(t *testing.T) {
	attrs := map[string]string{"a": "1", "b": "2", "c": "3", "d": "4", "e": "5"}
	first := NewEncoder()
	EncodeWireNode(first, NewElementWire("div", attrs))
	for i := 0; i < 20; i++ {
		e := NewEncoder()
		EncodeWireNode(e, NewElementWire("div", attrs))
		if !bytes.Equal(first.Bytes(), e.Bytes()) {
			t.Fatal("encoding depends on map order")
		}
	}
}

func TestWireNodeUnknownKind(t *testing.T) {
	if _, err := DecodeWireNode(NewDecoder([]byte{0x09})); err == nil {
		t.Error("DecodeWireNode() error = nil for unknown kind")
	}
}
