package pad_test

import (
	"io"
	"testing"

	"github.com/joyterm/joyterm/pad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputReportMarshal(t *testing.T) {
	r := &pad.InputReport{
		Timer:      0x42,
		Battery:    pad.DefaultBattery,
		Buttons:    [3]byte{0x08, 0x02, 0x00},
		LeftStick:  pad.NeutralStick,
		RightStick: pad.NeutralStick,
	}
	data, err := r.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x30,
		0x42,
		0x95,
		0x08, 0x02, 0x00,
		0x00, 0x08, 0x80,
		0x00, 0x08, 0x80,
		0x00,
	}, data)
}

func TestInputReportUnmarshal(t *testing.T) {
	src := &pad.InputReport{
		Timer:      0xff,
		Battery:    0x45,
		Buttons:    [3]byte{0xcf, 0x3f, 0xcf},
		LeftStick:  [3]byte{0x11, 0x22, 0x33},
		RightStick: [3]byte{0x44, 0x55, 0x66},
		Vibrator:   0x70,
	}
	data, err := src.MarshalBinary()
	require.NoError(t, err)

	var got pad.InputReport
	require.NoError(t, got.UnmarshalBinary(data))
	assert.Equal(t, *src, got)
}

func TestInputReportUnmarshalShort(t *testing.T) {
	var r pad.InputReport
	err := r.UnmarshalBinary(make([]byte, pad.InputReportSize-1))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
