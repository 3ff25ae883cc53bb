package pad

import "io"

const (
	// ReportIDStandardFull is the standard full input report pushed to the
	// bridge on every state change.
	ReportIDStandardFull = 0x30

	InputReportSize = 13
)

// DefaultBattery encodes a full battery with the charging flag set.
const DefaultBattery uint8 = 0x95

// NeutralStick is a centered analog stick (x=0x800, y=0x800) packed into the
// 3-byte 12-bit-per-axis stick encoding.
var NeutralStick = [3]byte{0x00, 0x08, 0x80}

// InputReport is the frame handed to the bridge stream. Bytes 3..5 carry the
// serialized button fields in fixed order.
type InputReport struct {
	Timer      uint8
	Battery    uint8
	Buttons    [3]byte
	LeftStick  [3]byte
	RightStick [3]byte
	Vibrator   uint8
}

func (r *InputReport) MarshalBinary() ([]byte, error) {
	b := make([]byte, InputReportSize)
	b[0] = ReportIDStandardFull
	b[1] = r.Timer
	b[2] = r.Battery
	b[3] = r.Buttons[0]
	b[4] = r.Buttons[1]
	b[5] = r.Buttons[2]
	copy(b[6:9], r.LeftStick[:])
	copy(b[9:12], r.RightStick[:])
	b[12] = r.Vibrator
	return b, nil
}

func (r *InputReport) UnmarshalBinary(data []byte) error {
	if len(data) < InputReportSize {
		return io.ErrUnexpectedEOF
	}
	r.Timer = data[1]
	r.Battery = data[2]
	r.Buttons[0] = data[3]
	r.Buttons[1] = data[4]
	r.Buttons[2] = data[5]
	copy(r.LeftStick[:], data[6:9])
	copy(r.RightStick[:], data[9:12])
	r.Vibrator = data[12]
	return nil
}
