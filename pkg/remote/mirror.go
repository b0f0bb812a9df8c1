package remote

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/protocol"
)

// ErrOutOfOrder is returned when a frame does not follow the last applied
// sequence number.
var ErrOutOfOrder = errors.New("remote: frame out of order")

// Mirror rebuilds a served tree from patch frames.
type Mirror struct {
	doc     *dom.Document
	seq     uint64
	started bool
}

// NewMirror creates an empty Mirror.
func NewMirror() *Mirror {
	return &Mirror{doc: dom.New()}
}

// Document returns the mirrored document.
func (m *Mirror) Document() *dom.Document {
	return m.doc
}

// HTML renders the mirrored tree.
func (m *Mirror) HTML() string {
	return m.doc.HTML()
}

// Seq returns the last applied sequence number.
func (m *Mirror) Seq() uint64 {
	return m.seq
}

// Apply applies pf. A Reset frame is accepted at any time and clears the
// tree first; any other frame must carry the sequence number after the
// last applied one, or repeat it for a continuation chunk.
func (m *Mirror) Apply(pf *protocol.PatchesFrame) error {
	if pf.Reset {
		m.doc = dom.New()
		m.started = true
	} else if !m.started || (pf.Seq != m.seq+1 && pf.Seq != m.seq) {
		return fmt.Errorf("%w: got %d after %d", ErrOutOfOrder, pf.Seq, m.seq)
	}
	m.seq = pf.Seq

	for i, p := range pf.Patches {
		if err := m.apply(p); err != nil {
			return fmt.Errorf("remote: patch %d (%s): %w", i, p, err)
		}
	}
	return nil
}

// ApplyFrame decodes and applies a FramePatches frame.
func (m *Mirror) ApplyFrame(f *protocol.Frame) error {
	if f.Type != protocol.FramePatches {
		return fmt.Errorf("%w: %s", protocol.ErrInvalidFrameType, f.Type)
	}
	pf, err := protocol.DecodePatches(f.Payload)
	if err != nil {
		return err
	}
	return m.Apply(pf)
}

func (m *Mirror) apply(p protocol.Patch) error {
	target, err := m.doc.NodeAt(p.Path)
	if err != nil {
		return err
	}

	switch p.Op {
	case protocol.PatchSetAttr:
		return m.doc.SetAttribute(target, p.Key, p.Value)
	case protocol.PatchRemoveAttr:
		return m.doc.RemoveAttribute(target, p.Key)
	case protocol.PatchSetValue:
		return m.doc.SetValue(target, p.Value)
	case protocol.PatchSetText:
		if target.Type != dom.TextNode || len(p.Path) == 0 {
			return fmt.Errorf("set text on %s at %v", target.Type, p.Path)
		}
		parent := target.Parent()
		text := m.doc.CreateTextNode(p.Value)
		return m.doc.ReplaceChild(parent, text, p.Path[len(p.Path)-1])
	case protocol.PatchAppend:
		n, err := m.build(p.Node)
		if err != nil {
			return err
		}
		return m.doc.AppendChild(target, n)
	case protocol.PatchInsert:
		n, err := m.build(p.Node)
		if err != nil {
			return err
		}
		return m.doc.InsertChild(target, n, p.Index)
	case protocol.PatchReplace:
		n, err := m.build(p.Node)
		if err != nil {
			return err
		}
		return m.doc.ReplaceChild(target, n, p.Index)
	case protocol.PatchRemove:
		return m.doc.RemoveChild(target, p.Index)
	case protocol.PatchMove:
		return m.doc.MoveChild(target, p.Index, p.To)
	default:
		return fmt.Errorf("unsupported op %s", p.Op)
	}
}

func (m *Mirror) build(w *protocol.WireNode) (*dom.Node, error) {
	if w == nil {
		return nil, dom.ErrNilNode
	}
	if w.Kind == protocol.NodeText {
		return m.doc.CreateTextNode(w.Text), nil
	}

	n, err := m.doc.CreateElement(w.Tag)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(w.Attrs))
	for k := range w.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := m.doc.SetAttribute(n, k, w.Attrs[k]); err != nil {
			return nil, err
		}
	}
	for _, c := range w.Children {
		child, err := m.build(c)
		if err != nil {
			return nil, err
		}
		if err := m.doc.AppendChild(n, child); err != nil {
			return nil, err
		}
	}
	return n, nil
}
