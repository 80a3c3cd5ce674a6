package engine

import "testing"

func TestEventInvokeOrder(t *testing.T) {
	var ev EventWithArg[int]
	var got []int
	ev.AddListener(func(v int) { got = append(got, v) })
	ev.AddListener(func(v int) { got = append(got, v*10) })
	ev.AddListener(nil)

	ev.Invoke(2)

	if len(got) != 2 || got[0] != 2 || got[1] != 20 {
		t.Errorf("Expected [2 20], got %v", got)
	}
	if ev.GetListenerCount() != 2 {
		t.Errorf("Expected 2 listeners, got %d", ev.GetListenerCount())
	}
}

func TestEventRemoveListener(t *testing.T) {
	var ev EventWithArg[string]
	calls := 0
	id := ev.AddListener(func(string) { calls++ })

	if !ev.RemoveListener(id) {
		t.Fatal("RemoveListener should find the listener")
	}
	if ev.RemoveListener(id) {
		t.Error("RemoveListener should report false the second time")
	}

	ev.Invoke("x")
	if calls != 0 {
		t.Errorf("Removed listener was called %d times", calls)
	}
}

func TestEventListenerMayRegisterDuringInvoke(t *testing.T) {
	var ev EventWithArg[int]
	ev.AddListener(func(int) {
		ev.AddListener(func(int) {})
	})

	ev.Invoke(1) // must not deadlock

	if ev.GetListenerCount() != 2 {
		t.Errorf("Expected 2 listeners, got %d", ev.GetListenerCount())
	}
}
