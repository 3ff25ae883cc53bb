package pad

import (
	"fmt"
	"strings"
)

// Variant identifies which controller model is being emulated.
type Variant int

const (
	JoyConL Variant = iota + 1
	JoyConR
	ProController
)

func (v Variant) String() string {
	switch v {
	case JoyConL:
		return "JOYCON_L"
	case JoyConR:
		return "JOYCON_R"
	case ProController:
		return "PRO_CONTROLLER"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant accepts the canonical variant names case-insensitively.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "JOYCON_L":
		return JoyConL, nil
	case "JOYCON_R":
		return JoyConR, nil
	case "PRO_CONTROLLER":
		return ProController, nil
	default:
		return 0, fmt.Errorf("unknown controller %q (expected JOYCON_L, JOYCON_R or PRO_CONTROLLER)", s)
	}
}

var (
	joyConRButtons = []Button{
		ButtonY, ButtonX, ButtonB, ButtonA, ButtonRightSR, ButtonRightSL,
		ButtonR, ButtonZR, ButtonPlus, ButtonRStick, ButtonHome,
	}
	joyConLButtons = []Button{
		ButtonDown, ButtonUp, ButtonRight, ButtonLeft, ButtonLeftSR,
		ButtonLeftSL, ButtonL, ButtonZL, ButtonMinus, ButtonLStick,
		ButtonCapture,
	}
	// The Pro Controller has no side SL/SR buttons.
	proControllerButtons = []Button{
		ButtonY, ButtonX, ButtonB, ButtonA, ButtonR, ButtonZR,
		ButtonMinus, ButtonPlus, ButtonRStick, ButtonLStick, ButtonHome, ButtonCapture,
		ButtonDown, ButtonUp, ButtonRight, ButtonLeft, ButtonL, ButtonZL,
	}
)

// AvailableButtons returns the fixed button set the given variant exposes.
// The returned slice is a copy and safe to modify.
func AvailableButtons(v Variant) []Button {
	var src []Button
	switch v {
	case JoyConL:
		src = joyConLButtons
	case JoyConR:
		src = joyConRButtons
	case ProController:
		src = proControllerButtons
	}
	out := make([]Button, len(src))
	copy(out, src)
	return out
}
