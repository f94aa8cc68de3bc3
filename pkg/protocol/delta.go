package protocol

// Delta describes one element update for the front end.
//
// Kind identifies the element ("toast", "text", "markdown", ...). Seq is a
// per-session monotonic sequence number. Payload is the element's own
// encoding, opaque at this layer.
type Delta struct {
	Kind    string
	Seq     uint64
	Payload []byte
}

// EncodeTo encodes the delta using the provided encoder.
func (dl *Delta) EncodeTo(e *Encoder) {
	e.WriteString(dl.Kind)
	e.WriteUvarint(dl.Seq)
	e.WriteLenBytes(dl.Payload)
}

// DecodeDeltaFrom decodes a delta from a decoder.
func DecodeDeltaFrom(d *Decoder) (*Delta, error) {
	kind, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	payload, err := d.ReadLenBytes()
	if err != nil {
		return nil, err
	}
	return &Delta{Kind: kind, Seq: seq, Payload: payload}, nil
}

// DeltasFrame is the payload of a FrameDeltas frame: a batch of deltas
// flushed together.
type DeltasFrame struct {
	Deltas []*Delta
}

// EncodeDeltas encodes a DeltasFrame to bytes.
func EncodeDeltas(df *DeltasFrame) []byte {
	e := NewEncoder()
	e.WriteUvarint(uint64(len(df.Deltas)))
	for _, dl := range df.Deltas {
		dl.EncodeTo(e)
	}
	return e.Bytes()
}

// DecodeDeltas decodes a DeltasFrame from bytes.
func DecodeDeltas(data []byte) (*DeltasFrame, error) {
	d := NewDecoder(data)
	count, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if count > MaxCollectionCount {
		return nil, ErrCollectionTooLarge
	}
	deltas := make([]*Delta, 0, count)
	for i := uint64(0); i < count; i++ {
		dl, err := DecodeDeltaFrom(d)
		if err != nil {
			return nil, err
		}
		deltas = append(deltas, dl)
	}
	return &DeltasFrame{Deltas: deltas}, nil
}
