package zfm

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dmitrijs2005/autolock/internal/common"
)

// charBuffer1 is the template buffer the capture pipeline works in.
const charBuffer1 = 0x01

// searchAll covers the whole template library regardless of capacity.
const searchAll = 0xFFFF

// Device drives one fingerprint module over a serial port (any
// io.ReadWriter carrying the UART). Calls are synchronous; the module
// answers every command with a single ack frame.
//
// Protocol negatives (no finger, unusable image, no match) are returned
// as ordinary values; transport and framing problems wrap
// common.ErrSensorFault so callers can tell "refused" from "broken".
type Device struct {
	port io.ReadWriter
	addr uint32
}

// New returns a Device on the given port using the default module address.
func New(port io.ReadWriter) *Device {
	return &Device{port: port, addr: DefaultAddress}
}

// AwaitImage performs one GenImg poll. ready is true once a finger image
// is buffered in the module.
func (d *Device) AwaitImage(ctx context.Context) (bool, error) {
	code, _, err := d.roundTrip(ctx, []byte{cmdGenImg})
	if err != nil {
		return false, err
	}
	switch code {
	case ackOK:
		return true, nil
	case ackNoFinger, ackImagingFail:
		return false, nil
	default:
		return false, fmt.Errorf("%w: gen img confirmation 0x%02x", common.ErrSensorFault, code)
	}
}

// ExtractTemplate converts the buffered image into a template in buffer 1.
func (d *Device) ExtractTemplate(ctx context.Context) (bool, error) {
	code, _, err := d.roundTrip(ctx, []byte{cmdImg2Tz, charBuffer1})
	if err != nil {
		return false, err
	}
	switch code {
	case ackOK:
		return true, nil
	case ackImageTooMessy, ackTooFewPoints, ackNoValidImage:
		return false, nil
	default:
		return false, fmt.Errorf("%w: img2tz confirmation 0x%02x", common.ErrSensorFault, code)
	}
}

// SearchTemplate matches buffer 1 against the enrolled library. On a hit
// id is the matching template slot.
func (d *Device) SearchTemplate(ctx context.Context) (int, bool, error) {
	payload := []byte{cmdSearch, charBuffer1}
	payload = binary.BigEndian.AppendUint16(payload, 0)
	payload = binary.BigEndian.AppendUint16(payload, searchAll)

	code, data, err := d.roundTrip(ctx, payload)
	if err != nil {
		return 0, false, err
	}
	switch code {
	case ackOK:
		if len(data) < 2 {
			return 0, false, fmt.Errorf("%w: short search ack", common.ErrSensorFault)
		}
		return int(binary.BigEndian.Uint16(data[:2])), true, nil
	case ackNoMatch:
		return 0, false, nil
	default:
		return 0, false, fmt.Errorf("%w: search confirmation 0x%02x", common.ErrSensorFault, code)
	}
}

// roundTrip sends one command and reads its ack, returning the confirmation
// code and any trailing data. Serial I/O itself is not cancelable, so ctx
// is only checked up front; the port's own timeout bounds the read.
func (d *Device) roundTrip(ctx context.Context, payload []byte) (byte, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	if _, err := d.port.Write(buildCommand(d.addr, payload)); err != nil {
		return 0, nil, fmt.Errorf("%w: write command 0x%02x: %v", common.ErrSensorFault, payload[0], err)
	}
	ack, err := readAck(d.port, d.addr)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", common.ErrSensorFault, err)
	}
	return ack[0], ack[1:], nil
}
