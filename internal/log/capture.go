package log

import (
	"io"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Capture records the HID communication with the bridge.
type Capture interface {
	// Log records one report. in=true means console->bridge.
	Log(in bool, data []byte)
}

// CaptureRecord is one captured report. Records are written as a CBOR
// sequence so a capture file can be replayed or inspected offline.
type CaptureRecord struct {
	At   time.Time `cbor:"at"`
	Dir  string    `cbor:"dir"` // "c>b" or "b>c"
	Data []byte    `cbor:"data"`
}

type capture struct {
	enc *cbor.Encoder
	mu  sync.Mutex
}

// NewCapture creates a Capture writing CBOR records to w. A nil writer
// returns a no-op capture.
func NewCapture(w io.Writer) Capture {
	if w == nil {
		return &capture{}
	}
	return &capture{enc: cbor.NewEncoder(w)}
}

func (c *capture) Log(in bool, data []byte) {
	if c.enc == nil || len(data) == 0 {
		return
	}
	dir := "b>c"
	if in {
		dir = "c>b"
	}
	rec := CaptureRecord{At: time.Now(), Dir: dir, Data: data}

	c.mu.Lock()
	_ = c.enc.Encode(rec)
	c.mu.Unlock()
}
