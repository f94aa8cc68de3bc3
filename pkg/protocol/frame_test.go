package protocol

import (
	"errors"
	"io"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	f := NewFrame(FrameDeltas, []byte{0xDE, 0xAD})
	decoded, err := DecodeFrame(f.Encode())
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if decoded.Type != FrameDeltas {
		t.Errorf("type = %v, want %v", decoded.Type, FrameDeltas)
	}
	if len(decoded.Payload) != 2 || decoded.Payload[0] != 0xDE {
		t.Errorf("payload = %v", decoded.Payload)
	}
}

func TestDecodeFrameShortHeader(t *testing.T) {
	if _, err := DecodeFrame([]byte{0x01, 0x00}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestDecodeFrameBadType(t *testing.T) {
	if _, err := DecodeFrame([]byte{0x7F, 0x00, 0x00, 0x00}); !errors.Is(err, ErrInvalidFrameType) {
		t.Errorf("expected ErrInvalidFrameType, got %v", err)
	}
}

func TestControlRoundTrip(t *testing.T) {
	data := EncodeControl(ControlPing, &PingPong{Timestamp: 12345})
	ct, pp, err := DecodeControl(data)
	if err != nil {
		t.Fatalf("DecodeControl: %v", err)
	}
	if ct != ControlPing || pp == nil || pp.Timestamp != 12345 {
		t.Errorf("got ct=%v pp=%+v", ct, pp)
	}

	ct, pp, err = DecodeControl(EncodeControl(ControlClose, nil))
	if err != nil || ct != ControlClose || pp != nil {
		t.Errorf("close: ct=%v pp=%v err=%v", ct, pp, err)
	}
}

func TestErrorMessageRoundTrip(t *testing.T) {
	em := NewFatalError(ErrInvalidArgument, "invalid toast type: info")
	decoded, err := DecodeErrorMessage(EncodeErrorMessage(em))
	if err != nil {
		t.Fatalf("DecodeErrorMessage: %v", err)
	}
	if decoded.Code != ErrInvalidArgument || !decoded.Fatal {
		t.Errorf("got %+v", decoded)
	}
	if decoded.Error() != "fatal: InvalidArgument: invalid toast type: info" {
		t.Errorf("Error() = %q", decoded.Error())
	}
}
