package engine

import "testing"

func TestEventInvokeOrder(t *testing.T) {
	var e Event
	var calls []int

	e.AddListener(func() { calls = append(calls, 1) })
	e.AddListener(nil)
	e.AddListener(func() { calls = append(calls, 2) })

	e.Invoke()
	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Errorf("Unexpected call order %v", calls)
	}

	e.Invoke()
	if len(calls) != 4 {
		t.Errorf("Expected listeners to fire on every Invoke, got %d calls", len(calls))
	}
}

func TestEventWithArg(t *testing.T) {
	var e EventWithArg[string]
	got := ""

	e.AddListener(nil)
	e.AddListener(func(s string) { got += s })
	e.Invoke("wake")
	e.Invoke("sleep")

	if got != "wakesleep" {
		t.Errorf("Expected 'wakesleep', got %q", got)
	}
}

func TestEventZeroValueInvoke(t *testing.T) {
	var e Event
	e.Invoke()

	var withArg EventWithArg[int]
	withArg.Invoke(1)
}
