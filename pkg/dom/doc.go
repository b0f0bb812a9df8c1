// Package dom provides an in-memory live display tree.
//
// Document implements reconcile.Host and reconcile.Reorderer for *Node, so
// it can be patched exactly like a browser DOM. It additionally keeps:
//
//   - a journal of every mutation made to the attached tree, addressed by
//     index path from the root, which the remote package streams to clients
//   - mutation counters, used to assert that a patch cycle was minimal
//   - listener dispatch, so events can be fired at live nodes
//   - HTML serialization of the live tree
//
// Nodes built but not yet attached to the root (for example a subtree being
// materialized) are not journaled; the journal records them as a whole when
// they are attached.
package dom
