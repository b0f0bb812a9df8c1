package protocol

// Event is a client interaction with the node at Path.
type Event struct {
	Seq  uint64
	Path []int
	Name string // Event name without the "on" prefix, e.g. "click"

	// HasValue reports whether the client read the target's live value.
	// Value is only encoded when it is set, so an emptied input is
	// distinct from an event that carries no value.
	HasValue bool
	Value    string
}

// EncodeEvent encodes an event to bytes.
func EncodeEvent(ev *Event) []byte {
	e := NewEncoder()
	EncodeEventTo(e, ev)
	return e.Bytes()
}

// EncodeEventTo encodes an event using the provided encoder.
func EncodeEventTo(e *Encoder, ev *Event) {
	e.WriteUvarint(ev.Seq)
	e.WritePath(ev.Path)
	e.WriteString(ev.Name)
	e.WriteBool(ev.HasValue)
	if ev.HasValue {
		e.WriteString(ev.Value)
	}
}

// DecodeEvent decodes an event payload.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)
	ev := &Event{}
	var err error

	if ev.Seq, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if ev.Path, err = d.ReadPath(); err != nil {
		return nil, err
	}
	if ev.Name, err = d.ReadString(); err != nil {
		return nil, err
	}
	if ev.HasValue, err = d.ReadBool(); err != nil {
		return nil, err
	}
	if ev.HasValue {
		if ev.Value, err = d.ReadString(); err != nil {
			return nil, err
		}
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return ev, nil
}
