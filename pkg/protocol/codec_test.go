package protocol

import (
	"errors"
	"io"
	"testing"
)

func TestEncoderDecoderRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(300)
	e.WriteString("toast")
	e.WriteBool(true)
	e.WriteUint16(0xBEEF)
	e.WriteUint64(1<<40 + 7)

	d := NewDecoder(e.Bytes())

	if v, err := d.ReadUvarint(); err != nil || v != 300 {
		t.Errorf("ReadUvarint = %d, %v", v, err)
	}
	if s, err := d.ReadString(); err != nil || s != "toast" {
		t.Errorf("ReadString = %q, %v", s, err)
	}
	if b, err := d.ReadBool(); err != nil || !b {
		t.Errorf("ReadBool = %v, %v", b, err)
	}
	if v, err := d.ReadUint16(); err != nil || v != 0xBEEF {
		t.Errorf("ReadUint16 = %x, %v", v, err)
	}
	if v, err := d.ReadUint64(); err != nil || v != 1<<40+7 {
		t.Errorf("ReadUint64 = %d, %v", v, err)
	}
	if !d.EOF() {
		t.Errorf("expected EOF, %d bytes remaining", d.Remaining())
	}
}

func TestDecoderTruncated(t *testing.T) {
	e := NewEncoder()
	e.WriteString("hello world")

	d := NewDecoder(e.Bytes()[:4])
	if _, err := d.ReadString(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestDecoderInvalidBool(t *testing.T) {
	d := NewDecoder([]byte{0x07})
	if _, err := d.ReadBool(); !errors.Is(err, ErrInvalidBool) {
		t.Errorf("expected ErrInvalidBool, got %v", err)
	}
}

func TestDecoderHugeLengthPrefix(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxAllocation + 1)

	d := NewDecoder(e.Bytes())
	if _, err := d.ReadLenBytes(); !errors.Is(err, ErrAllocationTooLarge) {
		t.Errorf("expected ErrAllocationTooLarge, got %v", err)
	}
}

func TestVarintOverflow(t *testing.T) {
	// 10 continuation bytes push shift past 64 bits.
	data := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	d := NewDecoder(data)
	if _, err := d.ReadUvarint(); !errors.Is(err, ErrVarintOverflow) {
		t.Errorf("expected ErrVarintOverflow, got %v", err)
	}
}
