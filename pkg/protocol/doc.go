// Package protocol implements the binary wire format used to mirror a live
// tree to remote clients.
//
// # Wire Format
//
// All messages are framed with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameEvent (0x01): Client → Server events
//   - FramePatches (0x02): Server → Client patches
//   - FrameError (0x05): Error message
//
// # Encoding
//
//   - Varint: Compact encoding for small integers (protobuf-style)
//   - Length-prefixed: Strings prefixed with varint length
//   - Paths: varint count followed by one varint per child index
//
// # Patches
//
// Patches address nodes by index path from the root container, so a client
// needs no node IDs. Child operations name the parent path and a child
// index:
//
//	[Op: 0x07][Path: 0x02 0x00 0x01][Index: 0x02]
//
// A PatchesFrame with Reset set replaces the client's whole tree; the
// server sends one on connect.
//
// # Events
//
// Events flow from client to server and name the target by path:
//
//	[Seq: varint][Path][Name: len-prefixed][HasValue: bool][Value: len-prefixed]
//
// Value is present only when HasValue is 0x01. An input the user cleared
// carries HasValue with an empty Value.
//
// # Limits
//
// Decoding rejects length prefixes over DefaultMaxAllocation, collections
// over MaxCollectionCount, and trees or paths deeper than MaxNodeDepth.
package protocol
