package element

import (
	"context"
	"sync/atomic"

	"github.com/glint-dev/glint/pkg/errs"
	"github.com/glint-dev/glint/pkg/protocol"
)

// ForwardQueue receives encoded element deltas for delivery to the front
// end. The server package provides the real implementation backed by a
// session's WebSocket; tests substitute an in-memory queue.
type ForwardQueue interface {
	Push(d *protocol.Delta) error
}

// Handle is an opaque reference to an enqueued element.
type Handle struct {
	kind string
	seq  uint64
}

// Kind returns the element kind, e.g. "toast".
func (h *Handle) Kind() string { return h.kind }

// Seq returns the element's sequence number within its generator.
func (h *Handle) Seq() uint64 { return h.seq }

// Interceptor wraps element submission. Interceptors run in order around
// the encode-and-push step; next performs the remaining chain. Used for
// usage metrics and tracing.
type Interceptor func(ctx context.Context, kind string, next func() error) error

// DeltaGenerator constructs element deltas and submits them to a forward
// queue. Create one per script invocation with NewDeltaGenerator; it shares
// no mutable state with other generators.
type DeltaGenerator struct {
	queue        ForwardQueue
	interceptors []Interceptor
	ctx          context.Context
	seq          atomic.Uint64
}

// Option configures a DeltaGenerator.
type Option func(*DeltaGenerator)

// WithInterceptors appends interceptors to the submission chain.
func WithInterceptors(ics ...Interceptor) Option {
	return func(dg *DeltaGenerator) {
		dg.interceptors = append(dg.interceptors, ics...)
	}
}

// WithContext sets the context interceptors observe. Defaults to
// context.Background().
func WithContext(ctx context.Context) Option {
	return func(dg *DeltaGenerator) {
		dg.ctx = ctx
	}
}

// MaxElementPayload caps one element's encoded payload so that a delta and
// its envelope (kind, sequence, length prefixes) always fit in a single
// protocol frame.
const MaxElementPayload = protocol.MaxPayloadSize - 128

// NewDeltaGenerator creates a generator that submits elements to queue.
// The queue must not be nil.
func NewDeltaGenerator(queue ForwardQueue, opts ...Option) *DeltaGenerator {
	dg := &DeltaGenerator{
		queue: queue,
		ctx:   context.Background(),
	}
	for _, opt := range opts {
		opt(dg)
	}
	return dg
}

// enqueue encodes one element message and pushes it through the interceptor
// chain onto the forward queue. Called only after all validation passed.
func (dg *DeltaGenerator) enqueue(kind string, encode func(*protocol.Encoder)) (*Handle, error) {
	var seq uint64
	submit := func() error {
		e := protocol.NewEncoder()
		encode(e)
		if e.Len() > MaxElementPayload {
			return errs.InvalidArgument(
				"%s element payload is %d bytes; the limit is %d bytes", kind, e.Len(), MaxElementPayload)
		}
		payload := make([]byte, e.Len())
		copy(payload, e.Bytes())

		seq = dg.seq.Add(1)
		d := &protocol.Delta{
			Kind:    kind,
			Seq:     seq,
			Payload: payload,
		}
		if err := dg.queue.Push(d); err != nil {
			return errs.Newf(errs.CategoryRuntime, "enqueue %s element", kind).Wrap(err)
		}
		return nil
	}

	run := submit
	for i := len(dg.interceptors) - 1; i >= 0; i-- {
		ic := dg.interceptors[i]
		next := run
		run = func() error {
			return ic(dg.ctx, kind, next)
		}
	}

	if err := run(); err != nil {
		return nil, err
	}
	return &Handle{kind: kind, seq: seq}, nil
}
