// Package bridge is the client for the external HID bridge daemon, which
// owns Bluetooth pairing and the controller protocol. The console only needs
// a narrow contract from it: attach a controller, push input reports, and a
// few control operations.
package bridge

import "fmt"

// Error is the canonical error envelope the bridge returns.
type Error struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("bridge: %d %s", e.Status, e.Title)
	}
	return fmt.Sprintf("bridge: %d %s: %s", e.Status, e.Title, e.Detail)
}

// AttachRequest asks the bridge to start emulating a controller.
type AttachRequest struct {
	// Type is the canonical variant name, e.g. "PRO_CONTROLLER".
	Type string `json:"type"`
	// Session is a client-chosen id correlating this console's operations.
	Session string `json:"session"`
	// Reconnect optionally names a previously paired console's Bluetooth
	// address so the bridge can skip the pairing menu.
	Reconnect string `json:"reconnect,omitempty"`
}

// AttachResponse identifies the emulated controller on the bridge.
type AttachResponse struct {
	ControllerID string `json:"controllerId"`
	Session      string `json:"session"`
}

// NFCRequest sets or removes the tag content presented by the controller.
// Data is base64 on the wire; empty means remove.
type NFCRequest struct {
	Data []byte `json:"data,omitempty"`
}
