package protocol

import "fmt"

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchSetText    PatchOp = 0x01 // Update a text node
	PatchSetAttr    PatchOp = 0x02 // Set attribute
	PatchRemoveAttr PatchOp = 0x03 // Remove attribute
	PatchAppend     PatchOp = 0x04 // Append child node
	PatchInsert     PatchOp = 0x05 // Insert child node at index
	PatchReplace    PatchOp = 0x06 // Replace child at index
	PatchRemove     PatchOp = 0x07 // Remove child at index
	PatchMove       PatchOp = 0x08 // Move child from index to index
	PatchSetValue   PatchOp = 0x09 // Set live value property
)

// String returns the string representation of the patch operation.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchAppend:
		return "Append"
	case PatchInsert:
		return "Insert"
	case PatchReplace:
		return "Replace"
	case PatchRemove:
		return "Remove"
	case PatchMove:
		return "Move"
	case PatchSetValue:
		return "SetValue"
	default:
		return "Unknown"
	}
}

// Patch is a single path-addressed operation.
//
// For attribute, value and text operations Path names the target node. For
// child operations Path names the parent and Index the child.
type Patch struct {
	Op    PatchOp
	Path  []int
	Index int       // Insert, Replace, Remove, Move source
	To    int       // Move destination
	Key   string    // Attribute name
	Value string    // Attribute, value or text content
	Node  *WireNode // Append, Insert, Replace
}

// String implements fmt.Stringer.
func (p Patch) String() string {
	switch p.Op {
	case PatchSetAttr:
		return fmt.Sprintf("%s %v %s=%q", p.Op, p.Path, p.Key, p.Value)
	case PatchRemoveAttr:
		return fmt.Sprintf("%s %v %s", p.Op, p.Path, p.Key)
	case PatchSetText, PatchSetValue:
		return fmt.Sprintf("%s %v %q", p.Op, p.Path, p.Value)
	case PatchMove:
		return fmt.Sprintf("%s %v %d->%d", p.Op, p.Path, p.Index, p.To)
	case PatchAppend:
		return fmt.Sprintf("%s %v", p.Op, p.Path)
	default:
		return fmt.Sprintf("%s %v @%d", p.Op, p.Path, p.Index)
	}
}

// PatchesFrame is a batch of patches with a sequence number.
type PatchesFrame struct {
	Seq uint64

	// Reset tells the client to clear its root before applying Patches.
	Reset bool

	Patches []Patch
}

// EncodePatches encodes a patches frame to bytes.
func EncodePatches(pf *PatchesFrame) []byte {
	e := NewEncoder()
	EncodePatchesTo(e, pf)
	return e.Bytes()
}

// EncodePatchesTo encodes a patches frame using the provided encoder.
func EncodePatchesTo(e *Encoder, pf *PatchesFrame) {
	e.WriteUvarint(pf.Seq)
	e.WriteBool(pf.Reset)
	e.WriteUvarint(uint64(len(pf.Patches)))
	for i := range pf.Patches {
		encodePatch(e, &pf.Patches[i])
	}
}

func encodePatch(e *Encoder, p *Patch) {
	e.WriteByte(byte(p.Op))
	e.WritePath(p.Path)

	switch p.Op {
	case PatchSetText, PatchSetValue:
		e.WriteString(p.Value)
	case PatchSetAttr:
		e.WriteString(p.Key)
		e.WriteString(p.Value)
	case PatchRemoveAttr:
		e.WriteString(p.Key)
	case PatchAppend:
		EncodeWireNode(e, p.Node)
	case PatchInsert, PatchReplace:
		e.WriteInt(p.Index)
		EncodeWireNode(e, p.Node)
	case PatchRemove:
		e.WriteInt(p.Index)
	case PatchMove:
		e.WriteInt(p.Index)
		e.WriteInt(p.To)
	}
}

// DecodePatches decodes a patches frame payload.
func DecodePatches(data []byte) (*PatchesFrame, error) {
	d := NewDecoder(data)
	pf, err := DecodePatchesFrom(d)
	if err != nil {
		return nil, err
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return pf, nil
}

// DecodePatchesFrom decodes a patches frame from a decoder.
func DecodePatchesFrom(d *Decoder) (*PatchesFrame, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	reset, err := d.ReadBool()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}

	pf := &PatchesFrame{Seq: seq, Reset: reset, Patches: make([]Patch, count)}
	for i := range pf.Patches {
		if err := decodePatch(d, &pf.Patches[i]); err != nil {
			return nil, fmt.Errorf("protocol: patch %d: %w", i, err)
		}
	}
	return pf, nil
}

func decodePatch(d *Decoder, p *Patch) error {
	op, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Op = PatchOp(op)
	if p.Path, err = d.ReadPath(); err != nil {
		return err
	}

	switch p.Op {
	case PatchSetText, PatchSetValue:
		p.Value, err = d.ReadString()
	case PatchSetAttr:
		if p.Key, err = d.ReadString(); err != nil {
			return err
		}
		p.Value, err = d.ReadString()
	case PatchRemoveAttr:
		p.Key, err = d.ReadString()
	case PatchAppend:
		p.Node, err = DecodeWireNode(d)
	case PatchInsert, PatchReplace:
		if p.Index, err = d.ReadInt(); err != nil {
			return err
		}
		p.Node, err = DecodeWireNode(d)
	case PatchRemove:
		p.Index, err = d.ReadInt()
	case PatchMove:
		if p.Index, err = d.ReadInt(); err != nil {
			return err
		}
		p.To, err = d.ReadInt()
	default:
		return fmt.Errorf("protocol: unknown patch op 0x%02x", op)
	}
	return err
}

// PatchFrames splits pf into frames that each fit MaxPayloadSize. Every
// frame carries pf.Seq; only the first carries Reset and only the last
// has FlagFinal. A single patch too large for a frame fails with
// ErrFrameTooLarge.
func PatchFrames(pf *PatchesFrame) ([]*Frame, error) {
	var frames []*Frame
	chunk := &PatchesFrame{Seq: pf.Seq, Reset: pf.Reset}
	e := NewEncoder()

	flush := func() {
		EncodePatchesTo(e, chunk)
		payload := make([]byte, e.Len())
		copy(payload, e.Bytes())
		e.Reset()
		frames = append(frames, NewFrame(FramePatches, payload))
		chunk = &PatchesFrame{Seq: pf.Seq}
	}

	// Header overhead: seq varint, reset byte and a count varint.
	const overhead = 10 + 1 + 10
	size := overhead
	pe := NewEncoder()
	for i := range pf.Patches {
		pe.Reset()
		encodePatch(pe, &pf.Patches[i])
		if overhead+pe.Len() > MaxPayloadSize {
			return nil, fmt.Errorf("%w: patch %d is %d bytes", ErrFrameTooLarge, i, pe.Len())
		}
		if size+pe.Len() > MaxPayloadSize {
			flush()
			size = overhead
		}
		chunk.Patches = append(chunk.Patches, pf.Patches[i])
		size += pe.Len()
	}
	flush()

	frames[len(frames)-1].Flags |= FlagFinal
	return frames, nil
}
