// Package protocol implements the Glint wire format.
//
// The server streams UI updates to the browser as binary frames over a
// WebSocket. Each frame carries a batch of element deltas: an element kind
// (e.g. "toast"), a sequence number, and an opaque element payload encoded
// by the element package.
//
// The format is a compact hand-rolled binary encoding (varints and
// length-prefixed strings) rather than JSON, keeping the thin client small
// and the per-delta overhead to a few bytes.
package protocol
