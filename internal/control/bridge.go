package control

import (
	"context"
	"sync"
	"time"

	"github.com/lazymesh/lazymesh/internal/core"
)

// RequestKind distinguishes the two prompt flavors.
type RequestKind int

const (
	// KindConfirm asks a yes/no question.
	KindConfirm RequestKind = iota
	// KindPrompt requests a free-text value.
	KindPrompt
)

// Request is a pending question for the interactive user.
type Request struct {
	ID          string
	Kind        RequestKind
	Message     string
	Placeholder string
}

// Response carries the user's answer back to the blocked caller.
type Response struct {
	RequestID string
	Input     string
	Cancelled bool
}

// Bridge converts the engine's synchronous console prompts into UI events.
//
// A worker goroutine calls Ask and blocks on a one-shot response channel;
// the UI receives the request via RequestCh, collects a line from the input
// widget, and delivers it with Resolve. Teardown cancels the Ask context,
// so an abandoned prompt never hangs the process.
//
// At most one request may be outstanding. A second concurrent Ask is a
// logic error in the caller and is rejected with CodePromptPending.
type Bridge struct {
	mu         sync.Mutex
	requestCh  chan Request
	pendingID  string
	responseCh chan Response
}

// sendTimeout bounds handing a request to the UI. The request channel is
// buffered, so this only fires if the UI loop is gone.
const sendTimeout = 5 * time.Second

// NewBridge creates a bridge.
func NewBridge() *Bridge {
	return &Bridge{
		requestCh: make(chan Request, 1),
	}
}

// RequestCh returns the channel the UI listens on for prompt requests.
func (b *Bridge) RequestCh() <-chan Request {
	return b.requestCh
}

// Pending reports whether a prompt is currently awaiting an answer.
func (b *Bridge) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pendingID != ""
}

// Ask blocks the calling goroutine until the user answers, the context is
// cancelled, or the request cannot be delivered.
func (b *Bridge) Ask(ctx context.Context, req Request) (Response, error) {
	responseCh := make(chan Response, 1)

	b.mu.Lock()
	if b.pendingID != "" {
		b.mu.Unlock()
		return Response{}, core.ErrState(core.CodePromptPending,
			"a prompt is already awaiting a response")
	}
	b.pendingID = req.ID
	b.responseCh = responseCh
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		if b.pendingID == req.ID {
			b.pendingID = ""
			b.responseCh = nil
		}
		b.mu.Unlock()
	}()

	select {
	case b.requestCh <- req:
	case <-ctx.Done():
		return Response{RequestID: req.ID, Cancelled: true}, ctx.Err()
	case <-time.After(sendTimeout):
		return Response{}, core.ErrState(core.CodePromptClosed,
			"no listener for prompt request")
	}

	select {
	case <-ctx.Done():
		// The request may still sit undelivered in the buffer. Remove it so
		// the UI never opens a prompt that no Ask is waiting on. No newer
		// request can be queued here: pendingID is still ours.
		select {
		case <-b.requestCh:
		default:
		}
		return Response{RequestID: req.ID, Cancelled: true}, ctx.Err()
	case resp := <-responseCh:
		return resp, nil
	}
}

// Resolve delivers the user's answer to the blocked Ask. Exactly one Resolve
// satisfies exactly one Ask.
func (b *Bridge) Resolve(requestID, input string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pendingID != requestID {
		return core.ErrState(core.CodePromptClosed,
			"no pending prompt with id "+requestID)
	}

	b.responseCh <- Response{RequestID: requestID, Input: input}
	b.pendingID = ""
	b.responseCh = nil
	return nil
}

// CancelPending aborts the outstanding prompt, if any. The UI calls this on
// teardown and when the user dismisses a prompt with escape.
func (b *Bridge) CancelPending() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pendingID == "" {
		return
	}
	b.responseCh <- Response{RequestID: b.pendingID, Cancelled: true}
	b.pendingID = ""
	b.responseCh = nil
}
