// Package element implements the element-construction layer of Glint.
//
// A host script receives a DeltaGenerator and calls element methods on it:
//
//	dg.Toast("Your edited image was saved!",
//	    element.WithIcon("😍"),
//	    element.WithToastType(element.ToastTypeSuccess))
//
// Each call validates its inputs, encodes an immutable element message, and
// enqueues it on the session's forward queue as a protocol.Delta tagged with
// the element kind. Validation failures return an invalid-argument error
// from the errs package and nothing is enqueued.
//
// Element construction is synchronous and stateless; the generator performs
// no I/O of its own. Delivery to the front end is owned by the server
// package, which drains the forward queue over the session's WebSocket.
package element
