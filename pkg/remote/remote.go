// Package remote mirrors a journaling dom.Document over the wire protocol.
//
// A Streamer on the serving side turns the document's mutation journal into
// sequenced PatchesFrames. A Mirror on the receiving side applies those
// frames to its own Document, reproducing the served tree.
package remote

import (
	"context"
	"sync"

	"github.com/vango-dev/vtree/pkg/app"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/protocol"
)

// Streamer converts journaled mutations into patch frames.
//
// Its mutex is held across a whole cycle by Middleware, so a Snapshot never
// observes a half-applied cycle whose mutations are still to be flushed.
type Streamer struct {
	doc *dom.Document

	mu  sync.Mutex
	seq uint64
}

// NewStreamer creates a Streamer for doc. doc must journal mutations
// (dom.WithJournal).
func NewStreamer(doc *dom.Document) *Streamer {
	return &Streamer{doc: doc}
}

// Seq returns the sequence number of the last flushed frame.
func (s *Streamer) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Flush drains the journal into a frame with the next sequence number. It
// returns nil when nothing changed since the last flush.
func (s *Streamer) Flush() *protocol.PatchesFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *Streamer) flushLocked() *protocol.PatchesFrame {
	muts := s.doc.Drain()
	if len(muts) == 0 {
		return nil
	}
	s.seq++
	return &protocol.PatchesFrame{Seq: s.seq, Patches: Patches(muts)}
}

// Snapshot returns a Reset frame that rebuilds the whole tree, stamped with
// the last flushed sequence number. A client applying it and then every
// later Flush frame stays in sync.
func (s *Streamer) Snapshot() *protocol.PatchesFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Join calls fn with a Snapshot while no cycle can flush. Subscribers that
// register inside fn receive every later frame and nothing earlier.
func (s *Streamer) Join(fn func(*protocol.PatchesFrame)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.snapshotLocked())
}

func (s *Streamer) snapshotLocked() *protocol.PatchesFrame {
	nodes := s.doc.Snapshot()
	pf := &protocol.PatchesFrame{Seq: s.seq, Reset: true, Patches: make([]protocol.Patch, 0, len(nodes))}
	for _, n := range nodes {
		pf.Patches = append(pf.Patches, protocol.Patch{
			Op:   protocol.PatchAppend,
			Path: []int{},
			Node: WireNode(n),
		})
	}
	return pf
}

// Middleware returns cycle middleware that flushes the journal after every
// cycle, failed ones included, and hands the frame to send. send runs with
// the Streamer locked and must not block.
func (s *Streamer) Middleware(send func(*protocol.PatchesFrame)) app.Middleware {
	return func(ctx context.Context, c *app.Cycle, next func(context.Context) error) error {
		s.mu.Lock()
		defer s.mu.Unlock()

		err := next(ctx)
		if pf := s.flushLocked(); pf != nil {
			send(pf)
		}
		return err
	}
}

// Patches converts journal entries to wire patches, in order.
func Patches(muts []dom.Mutation) []protocol.Patch {
	out := make([]protocol.Patch, 0, len(muts))
	for _, m := range muts {
		p := protocol.Patch{Path: m.Path, Index: m.Index, To: m.To, Key: m.Name, Value: m.Value}
		switch m.Op {
		case dom.MutSetAttr:
			p.Op = protocol.PatchSetAttr
		case dom.MutRemoveAttr:
			p.Op = protocol.PatchRemoveAttr
		case dom.MutSetValue:
			p.Op = protocol.PatchSetValue
		case dom.MutAppend:
			p.Op = protocol.PatchAppend
			p.Index = 0
		case dom.MutInsert:
			p.Op = protocol.PatchInsert
		case dom.MutReplace:
			p.Op = protocol.PatchReplace
		case dom.MutRemove:
			p.Op = protocol.PatchRemove
		case dom.MutMove:
			p.Op = protocol.PatchMove
		default:
			continue
		}
		if m.Node != nil {
			p.Node = WireNode(m.Node)
		}
		out = append(out, p)
	}
	return out
}

// WireNode converts a detached live node to its wire form.
func WireNode(n *dom.Node) *protocol.WireNode {
	if n == nil {
		return nil
	}
	if n.Type == dom.TextNode {
		return protocol.NewTextWire(n.Text)
	}
	w := &protocol.WireNode{Kind: protocol.NodeElement, Tag: n.Tag}
	if attrs := n.RenderedAttrs(); len(attrs) > 0 {
		w.Attrs = attrs
	}
	for _, c := range n.Children() {
		w.Children = append(w.Children, WireNode(c))
	}
	return w
}
