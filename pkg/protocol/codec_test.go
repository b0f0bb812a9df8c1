package protocol

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUvarintRoundTrip(t *testing.T) {
	tests := []struct {
		v    uint64
		size int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
		{1<<63 - 1, 9},
		{1<<64 - 1, 10},
	}

	for _, tt := range tests {
		e := NewEncoder()
		e.WriteUvarint(tt.v)
		if e.Len() != tt.size {
			t.Errorf("WriteUvarint(%d) wrote %d bytes, want %d", tt.v, e.Len(), tt.size)
		}
		got, err := NewDecoder(e.Bytes()).ReadUvarint()
		if err != nil || got != tt.v {
			t.Errorf("ReadUvarint() = %d, %v, want %d", got, err, tt.v)
		}
	}
}

func TestVarintOverflow(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}
	if _, err := NewDecoder(data).ReadUvarint(); !errors.Is(err, ErrVarintOverflow) {
		t.Errorf("ReadUvarint() error = %v, want ErrVarintOverflow", err)
	}
}

func TestReadIntOverflow(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(1 << 40)
	if _, err := NewDecoder(e.Bytes()).ReadInt(); !errors.Is(err, ErrIntOverflow) {
		t.Errorf("ReadInt() error = %v, want ErrIntOverflow", err)
	}
}

func TestPrimitivesRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.WriteString("héllo")
	e.WriteString("")
	e.WriteBool(true)
	e.WriteBool(false)
	e.WriteUint16(0xBEEF)
	e.WritePath([]int{0, 3, 200})
	e.WritePath(nil)

	d := NewDecoder(e.Bytes())
	s1, _ := d.ReadString()
	s2, _ := d.ReadString()
	b1, _ := d.ReadBool()
	b2, _ := d.ReadBool()
	u, _ := d.ReadUint16()
	p1, _ := d.ReadPath()
	p2, err := d.ReadPath()
	if err != nil {
		t.Fatal(err)
	}

	if s1 != "héllo" || s2 != "" || !b1 || b2 || u != 0xBEEF {
		t.Errorf("got %q %q %v %v %x", s1, s2, b1, b2, u)
	}
	if diff := cmp.Diff([]int{0, 3, 200}, p1); diff != "" {
		t.Errorf("path (-want +got):\n%s", diff)
	}
	if len(p2) != 0 {
		t.Errorf("empty path = %v", p2)
	}
	if !d.EOF() {
		t.Errorf("Remaining() = %d, want 0", d.Remaining())
	}
}

func TestTruncatedInput(t *testing.T) {
	tests := []struct {
		name string
		read func(*Decoder) error
		data []byte
	}{
		{"byte", func(d *Decoder) error { _, err := d.ReadByte(); return err }, nil},
		{"uvarint", func(d *Decoder) error { _, err := d.ReadUvarint(); return err }, []byte{0x80}},
		{"string", func(d *Decoder) error { _, err := d.ReadString(); return err }, []byte{0x05, 'a'}},
		{"uint16", func(d *Decoder) error { _, err := d.ReadUint16(); return err }, []byte{0x01}},
		{"path", func(d *Decoder) error { _, err := d.ReadPath(); return err }, []byte{0x03, 0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.read(NewDecoder(tt.data)); !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Errorf("error = %v, want io.ErrUnexpectedEOF", err)
			}
		})
	}
}

func TestEncoderReset(t *testing.T) {
	e := NewEncoder()
	e.WriteString("abc")
	e.Reset()
	if e.Len() != 0 {
		t.Errorf("Len() after Reset = %d", e.Len())
	}
	e.WriteByte(0x07)
	e.WriteBytes([]byte{0x08})
	if diff := cmp.Diff([]byte{0x07, 0x08}, e.Bytes()); diff != "" {
		t.Errorf("Bytes() (-want +got):\n%s", diff)
	}
}
