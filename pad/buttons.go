// Package pad implements the emulated controller core: the compact button
// bitmask, the action primitives that mutate it, and the cancellable mash
// engine that drives timed button patterns.
package pad

import "fmt"

// Button names a single controller input.
type Button string

// All named buttons. The wire layout (which bit encodes which button) is the
// one bit-exact contract of this package:
//
//	Byte  x01   x02   x04      x08      x10       x20       x40  x80
//	1     Y     X     B        A        SR(right) SL(right) R    ZR
//	2     Minus Plus  R Stick  L Stick  Home      Capture
//	3     Down  Up    Right    Left     SR(left)  SL(left)  L    ZL
const (
	ButtonY       Button = "y"
	ButtonX       Button = "x"
	ButtonB       Button = "b"
	ButtonA       Button = "a"
	ButtonRightSR Button = "right_sr"
	ButtonRightSL Button = "right_sl"
	ButtonR       Button = "r"
	ButtonZR      Button = "zr"

	ButtonMinus   Button = "minus"
	ButtonPlus    Button = "plus"
	ButtonRStick  Button = "r_stick"
	ButtonLStick  Button = "l_stick"
	ButtonHome    Button = "home"
	ButtonCapture Button = "capture"

	ButtonDown   Button = "down"
	ButtonUp     Button = "up"
	ButtonRight  Button = "right"
	ButtonLeft   Button = "left"
	ButtonLeftSR Button = "left_sr"
	ButtonLeftSL Button = "left_sl"
	ButtonL      Button = "l"
	ButtonZL     Button = "zl"
)

type buttonBit struct {
	field uint8 // 0, 1 or 2
	bit   uint8 // 0..7
}

// buttonBits assigns every button its (field, bit) pair. Fixed at compile
// time; no bit is shared between two buttons.
var buttonBits = map[Button]buttonBit{
	ButtonY:       {0, 0},
	ButtonX:       {0, 1},
	ButtonB:       {0, 2},
	ButtonA:       {0, 3},
	ButtonRightSR: {0, 4},
	ButtonRightSL: {0, 5},
	ButtonR:       {0, 6},
	ButtonZR:      {0, 7},

	ButtonMinus:   {1, 0},
	ButtonPlus:    {1, 1},
	ButtonRStick:  {1, 2},
	ButtonLStick:  {1, 3},
	ButtonHome:    {1, 4},
	ButtonCapture: {1, 5},

	ButtonDown:   {2, 0},
	ButtonUp:     {2, 1},
	ButtonRight:  {2, 2},
	ButtonLeft:   {2, 3},
	ButtonLeftSR: {2, 4},
	ButtonLeftSL: {2, 5},
	ButtonL:      {2, 6},
	ButtonZL:     {2, 7},
}

// ButtonState is the three-field bitmask holding every button as one bit.
// The only mutation primitive is Flip; callers compose press and release as
// paired flips. Nothing here prevents an imbalanced flip sequence from
// leaving a bit set.
type ButtonState struct {
	fields [3]uint8
}

// Flip toggles the bit owned by b. Unknown buttons are rejected; membership
// in the active controller variant is the caller's concern.
func (s *ButtonState) Flip(b Button) error {
	pos, ok := buttonBits[b]
	if !ok {
		return fmt.Errorf("unknown button %q", b)
	}
	s.fields[pos.field] ^= 1 << pos.bit
	return nil
}

// IsSet reports whether the bit owned by b is currently set. Unknown buttons
// read as false.
func (s *ButtonState) IsSet(b Button) bool {
	pos, ok := buttonBits[b]
	if !ok {
		return false
	}
	return s.fields[pos.field]&(1<<pos.bit) != 0
}

// Serialize exports the three fields in transmission order.
func (s *ButtonState) Serialize() (byte, byte, byte) {
	return s.fields[0], s.fields[1], s.fields[2]
}

// Clear zeroes all three fields.
func (s *ButtonState) Clear() {
	s.fields = [3]uint8{}
}
