package protocol

import (
	"errors"
	"io"
)

// Frame constants.
const (
	// FrameHeaderSize is the size of the frame header in bytes.
	FrameHeaderSize = 4

	// MaxPayloadSize is the maximum payload size (2^16 - 1 bytes).
	MaxPayloadSize = 65535
)

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FrameHandshake FrameType = 0x00 // Connection setup
	FrameDeltas    FrameType = 0x01 // Server → Client element deltas
	FrameControl   FrameType = 0x02 // Control messages (ping, pong, close)
	FrameError     FrameType = 0x03 // Error message
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameHandshake:
		return "Handshake"
	case FrameDeltas:
		return "Deltas"
	case FrameControl:
		return "Control"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Frame errors.
var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
)

// Frame is a protocol frame with header and payload.
//
// Wire format: 1 byte type, 1 reserved byte, 2 bytes payload length
// (big-endian), then the payload.
type Frame struct {
	Type    FrameType
	Payload []byte
}

// NewFrame creates a frame of the given type.
func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// Encode encodes the frame to bytes including the header.
func (f *Frame) Encode() []byte {
	length := len(f.Payload)
	buf := make([]byte, FrameHeaderSize+length)
	buf[0] = byte(f.Type)
	buf[2] = byte(length >> 8)
	buf[3] = byte(length)
	copy(buf[FrameHeaderSize:], f.Payload)
	return buf
}

// DecodeFrame decodes a frame from bytes.
// The input must contain at least the header and the full payload.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, io.ErrUnexpectedEOF
	}

	ft := FrameType(data[0])
	if ft > FrameError {
		return nil, ErrInvalidFrameType
	}
	length := int(data[2])<<8 | int(data[3])

	if len(data) < FrameHeaderSize+length {
		return nil, io.ErrUnexpectedEOF
	}

	payload := make([]byte, length)
	copy(payload, data[FrameHeaderSize:FrameHeaderSize+length])

	return &Frame{Type: ft, Payload: payload}, nil
}

// ControlType identifies a control message.
type ControlType uint8

const (
	ControlPing  ControlType = 0x00
	ControlPong  ControlType = 0x01
	ControlClose ControlType = 0x02
)

// PingPong is the payload of ping and pong control messages.
type PingPong struct {
	Timestamp uint64 // Sender clock, milliseconds since epoch
}

// EncodeControl encodes a control message.
func EncodeControl(ct ControlType, pp *PingPong) []byte {
	e := NewEncoder()
	e.WriteByte(byte(ct))
	if pp != nil {
		e.WriteUint64(pp.Timestamp)
	}
	return e.Bytes()
}

// DecodeControl decodes a control message.
func DecodeControl(data []byte) (ControlType, *PingPong, error) {
	d := NewDecoder(data)
	b, err := d.ReadByte()
	if err != nil {
		return 0, nil, err
	}
	ct := ControlType(b)
	if ct == ControlClose || d.EOF() {
		return ct, nil, nil
	}
	ts, err := d.ReadUint64()
	if err != nil {
		return 0, nil, err
	}
	return ct, &PingPong{Timestamp: ts}, nil
}
