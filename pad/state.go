package pad

import (
	"context"
	"encoding"
)

// Link is the transmit side of the bridge connection. bridge.Stream satisfies
// it; tests substitute a recorder.
type Link interface {
	// Ready blocks until the bridge session is fully established, or fails
	// if it cannot be.
	Ready(ctx context.Context) error
	// WriteReport transmits one input report to the bridge.
	WriteReport(r encoding.BinaryMarshaler) error
}

// ControllerState owns the live button bitmask for one controller session.
// It is exclusively owned by the active command handler; the command
// dispatcher serializes handler execution, so no locking happens here.
type ControllerState struct {
	variant Variant
	Buttons ButtonState

	link  Link
	timer uint8
	nfc   []byte
}

func NewControllerState(v Variant, link Link) *ControllerState {
	return &ControllerState{variant: v, link: link}
}

func (c *ControllerState) Variant() Variant { return c.variant }

// Connect waits until the bridge session is fully established.
func (c *ControllerState) Connect(ctx context.Context) error {
	return c.link.Ready(ctx)
}

// AvailableButtons returns the button set valid for this controller variant.
func (c *ControllerState) AvailableButtons() []Button {
	return AvailableButtons(c.variant)
}

// HasButton reports membership of b in the variant's button set.
func (c *ControllerState) HasButton(b Button) bool {
	for _, a := range AvailableButtons(c.variant) {
		if a == b {
			return true
		}
	}
	return false
}

// Send builds an input report from the current button fields and hands it to
// the bridge. The report timer wraps at 255 like the real controller's.
func (c *ControllerState) Send() error {
	b1, b2, b3 := c.Buttons.Serialize()
	r := &InputReport{
		Timer:      c.timer,
		Battery:    DefaultBattery,
		Buttons:    [3]byte{b1, b2, b3},
		LeftStick:  NeutralStick,
		RightStick: NeutralStick,
	}
	c.timer++
	return c.link.WriteReport(r)
}

// SetNFC stores the tag content presented by the controller; nil removes it.
func (c *ControllerState) SetNFC(data []byte) { c.nfc = data }

func (c *ControllerState) NFC() []byte { return c.nfc }

// Reset zeroes the button fields, used on disconnect or controller reset.
func (c *ControllerState) Reset() {
	c.Buttons.Clear()
}
