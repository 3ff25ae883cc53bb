package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Client exposes the bridge's typed control operations.
type Client struct {
	transport *Transport
}

// New creates a client for the given bridge address.
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithConfig creates a client with explicit transport configuration.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// NewWithTransport wires an existing transport, mainly for tests.
func NewWithTransport(t *Transport) *Client { return &Client{transport: t} }

// Attach asks the bridge to start emulating a controller of the given
// variant. A fresh session id is minted per attach.
func (c *Client) Attach(ctx context.Context, variant string) (*AttachResponse, error) {
	req := AttachRequest{Type: variant, Session: uuid.NewString()}
	resp, err := c.transport.DoCtx(ctx, "ctl/attach", req)
	if err != nil {
		return nil, err
	}
	var out AttachResponse
	if err := json.Unmarshal([]byte(resp), &out); err != nil {
		return nil, fmt.Errorf("attach: bad response %q: %w", resp, err)
	}
	return &out, nil
}

// AttachReconnect is Attach for a console the controller already paired with.
func (c *Client) AttachReconnect(ctx context.Context, variant, btAddr string) (*AttachResponse, error) {
	req := AttachRequest{Type: variant, Session: uuid.NewString(), Reconnect: btAddr}
	resp, err := c.transport.DoCtx(ctx, "ctl/attach", req)
	if err != nil {
		return nil, err
	}
	var out AttachResponse
	if err := json.Unmarshal([]byte(resp), &out); err != nil {
		return nil, fmt.Errorf("attach: bad response %q: %w", resp, err)
	}
	return &out, nil
}

// Pause suspends the bridge's periodic input report push for the controller.
func (c *Client) Pause(ctx context.Context, controllerID string) error {
	_, err := c.transport.DoCtx(ctx, "ctl/"+controllerID+"/pause", nil)
	return err
}

// Resume reverts Pause.
func (c *Client) Resume(ctx context.Context, controllerID string) error {
	_, err := c.transport.DoCtx(ctx, "ctl/"+controllerID+"/resume", nil)
	return err
}

// SetNFC sets the tag content presented by the controller; nil removes it.
func (c *Client) SetNFC(ctx context.Context, controllerID string, data []byte) error {
	_, err := c.transport.DoCtx(ctx, "ctl/"+controllerID+"/nfc", NFCRequest{Data: data})
	return err
}

// Detach removes the emulated controller from the bridge.
func (c *Client) Detach(ctx context.Context, controllerID string) error {
	_, err := c.transport.DoCtx(ctx, "ctl/"+controllerID+"/detach", nil)
	return err
}
