package protocol

import (
	"bytes"
	"testing"
)

func TestDeltasFrameRoundTrip(t *testing.T) {
	df := &DeltasFrame{
		Deltas: []*Delta{
			{Kind: "toast", Seq: 1, Payload: []byte{0x01, 0x02}},
			{Kind: "text", Seq: 2, Payload: nil},
			{Kind: "markdown", Seq: 3, Payload: []byte("## hi")},
		},
	}

	decoded, err := DecodeDeltas(EncodeDeltas(df))
	if err != nil {
		t.Fatalf("DecodeDeltas: %v", err)
	}
	if len(decoded.Deltas) != 3 {
		t.Fatalf("expected 3 deltas, got %d", len(decoded.Deltas))
	}
	for i, want := range df.Deltas {
		got := decoded.Deltas[i]
		if got.Kind != want.Kind || got.Seq != want.Seq || !bytes.Equal(got.Payload, want.Payload) {
			t.Errorf("delta %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestDecodeDeltasEmpty(t *testing.T) {
	df, err := DecodeDeltas(EncodeDeltas(&DeltasFrame{}))
	if err != nil {
		t.Fatalf("DecodeDeltas: %v", err)
	}
	if len(df.Deltas) != 0 {
		t.Errorf("expected no deltas, got %d", len(df.Deltas))
	}
}

func TestDecodeDeltasCountLimit(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxCollectionCount + 1)
	if _, err := DecodeDeltas(e.Bytes()); err != ErrCollectionTooLarge {
		t.Errorf("expected ErrCollectionTooLarge, got %v", err)
	}
}
