package console

// pendingInput is the single awaitable cancellation signal handed to timed
// loops. It satisfies pad.CancelSignal.
type pendingInput struct {
	done chan struct{}
	err  error
}

func newPendingInput() *pendingInput {
	return &pendingInput{done: make(chan struct{})}
}

// complete resolves the signal with the outcome of the read.
func (p *pendingInput) complete(err error) {
	p.err = err
	close(p.done)
}

func (p *pendingInput) Done() <-chan struct{} { return p.done }

// Err is only meaningful once Done is closed.
func (p *pendingInput) Err() error { return p.err }
