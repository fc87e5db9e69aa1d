// Package zfm speaks the wire protocol of ZFM/R30x optical fingerprint
// modules over a serial link: framed command/ack packets with a 16-bit
// additive checksum. It implements the sensor collaborator used by the
// capture pipeline.
package zfm

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Frame constants.
const (
	headerHigh = 0xEF
	headerLow  = 0x01

	pidCommand = 0x01
	pidAck     = 0x07

	// DefaultAddress is the module address as shipped.
	DefaultAddress uint32 = 0xFFFFFFFF
)

// Command codes.
const (
	cmdGenImg byte = 0x01
	cmdImg2Tz byte = 0x02
	cmdSearch byte = 0x04
)

// Confirmation codes (ack payload byte 0).
const (
	ackOK            byte = 0x00
	ackPacketErr     byte = 0x01
	ackNoFinger      byte = 0x02
	ackImagingFail   byte = 0x03
	ackImageTooMessy byte = 0x06
	ackTooFewPoints  byte = 0x07
	ackNoMatch       byte = 0x09
	ackNoValidImage  byte = 0x15
)

// buildCommand frames a command payload for the given module address.
// Layout: header(2) address(4) pid(1) length(2) payload checksum(2),
// where length covers payload plus checksum and the checksum sums pid,
// length, and payload bytes.
func buildCommand(addr uint32, payload []byte) []byte {
	length := uint16(len(payload) + 2)
	frame := make([]byte, 0, 9+len(payload)+2)
	frame = append(frame, headerHigh, headerLow)
	frame = binary.BigEndian.AppendUint32(frame, addr)
	frame = append(frame, pidCommand)
	frame = binary.BigEndian.AppendUint16(frame, length)
	frame = append(frame, payload...)

	var sum uint16 = uint16(pidCommand)
	sum += uint16(length >> 8)
	sum += uint16(length & 0xFF)
	for _, b := range payload {
		sum += uint16(b)
	}
	frame = binary.BigEndian.AppendUint16(frame, sum)
	return frame
}

// readAck reads one ack frame addressed from addr and returns its payload
// (confirmation code plus data, checksum stripped).
func readAck(r io.Reader, addr uint32) ([]byte, error) {
	head := make([]byte, 9)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("read ack header: %w", err)
	}
	if head[0] != headerHigh || head[1] != headerLow {
		return nil, fmt.Errorf("bad frame header % x", head[:2])
	}
	if got := binary.BigEndian.Uint32(head[2:6]); got != addr {
		return nil, fmt.Errorf("unexpected module address %08x", got)
	}
	if head[6] != pidAck {
		return nil, fmt.Errorf("unexpected packet id 0x%02x", head[6])
	}
	length := binary.BigEndian.Uint16(head[7:9])
	if length < 3 {
		return nil, fmt.Errorf("ack frame too short: %d", length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("read ack body: %w", err)
	}

	var sum uint16 = uint16(pidAck)
	sum += uint16(length >> 8)
	sum += uint16(length & 0xFF)
	payload := body[:length-2]
	for _, b := range payload {
		sum += uint16(b)
	}
	if got := binary.BigEndian.Uint16(body[length-2:]); got != sum {
		return nil, fmt.Errorf("ack checksum mismatch: got %04x want %04x", got, sum)
	}
	return payload, nil
}
