package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazymesh/lazymesh/internal/control"
	"github.com/lazymesh/lazymesh/internal/logging"
)

// msgCollector records messages sent into the program.
type msgCollector struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (c *msgCollector) send(msg tea.Msg) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
}

func (c *msgCollector) logMessages() []LogMsg {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []LogMsg
	for _, m := range c.msgs {
		if lm, ok := m.(LogMsg); ok {
			out = append(out, lm)
		}
	}
	return out
}

// answer runs one scripted exchange: wait for the request, resolve it.
func answer(t *testing.T, bridge *control.Bridge, input string) {
	t.Helper()
	select {
	case req := <-bridge.RequestCh():
		if err := bridge.Resolve(req.ID, input); err != nil {
			t.Errorf("resolve: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("no prompt request arrived")
	}
}

func TestConfirm_YesAndNo(t *testing.T) {
	bridge := control.NewBridge()
	collector := &msgCollector{}
	console := NewTerminalConsole(context.Background(), bridge, collector.send, logging.NewNop())

	cases := []struct {
		input string
		want  bool
	}{
		{"y", true},
		{"yes", true},
		{"YES", true},
		{"n", false},
		{"no", false},
	}
	for _, tc := range cases {
		go answer(t, bridge, tc.input)
		if got := console.Confirm("Apply plan?"); got != tc.want {
			t.Errorf("Confirm(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestConfirm_InvalidResponseIsFalseAndLogged(t *testing.T) {
	bridge := control.NewBridge()
	collector := &msgCollector{}
	console := NewTerminalConsole(context.Background(), bridge, collector.send, logging.NewNop())

	go answer(t, bridge, "maybe")
	if console.Confirm("Apply plan?") {
		t.Error("invalid response must answer false")
	}

	var warned bool
	for _, lm := range collector.logMessages() {
		if lm.Level == "warn" {
			warned = true
		}
	}
	if !warned {
		t.Error("invalid response should log a warning")
	}
}

func TestConfirm_CancelledIsFalse(t *testing.T) {
	bridge := control.NewBridge()
	collector := &msgCollector{}
	console := NewTerminalConsole(context.Background(), bridge, collector.send, logging.NewNop())

	go func() {
		<-bridge.RequestCh()
		bridge.CancelPending()
	}()
	if console.Confirm("Apply plan?") {
		t.Error("cancelled prompt must answer false")
	}
}

func TestConfirm_TeardownUnblocks(t *testing.T) {
	bridge := control.NewBridge()
	collector := &msgCollector{}
	ctx, cancel := context.WithCancel(context.Background())
	console := NewTerminalConsole(ctx, bridge, collector.send, logging.NewNop())

	done := make(chan bool, 1)
	go func() {
		done <- console.Confirm("Apply plan?")
	}()
	<-bridge.RequestCh()
	cancel()

	select {
	case got := <-done:
		if got {
			t.Error("teardown must answer false")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Confirm hung after teardown")
	}
}

func TestPrompt_ReturnsVerbatim(t *testing.T) {
	bridge := control.NewBridge()
	collector := &msgCollector{}
	console := NewTerminalConsole(context.Background(), bridge, collector.send, logging.NewNop())

	go answer(t, bridge, "  staging env  ")
	if got := console.Prompt("Environment name"); got != "  staging env  " {
		t.Errorf("Prompt = %q", got)
	}
}

func TestPrint_AppendsToLog(t *testing.T) {
	bridge := control.NewBridge()
	collector := &msgCollector{}
	console := NewTerminalConsole(context.Background(), bridge, collector.send, logging.NewNop())

	console.Print("plan output")
	logs := collector.logMessages()
	if len(logs) != 1 || logs[0].Message != "plan output" {
		t.Errorf("logs = %+v", logs)
	}
}
