package eventbus

import (
	"sync"
	"testing"
	"time"
)

func TestBusSyncPublish(t *testing.T) {
	bus := New(2)

	var got AuthEventData
	err := bus.Subscribe(EventAuthLogin, func(data AuthEventData) {
		got = data
	})
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	bus.Publish(EventAuthLogin, AuthEventData{UserID: "user-1", Email: "a@example.com"})

	if got.UserID != "user-1" {
		t.Fatalf("expected synchronous delivery, got %+v", got)
	}
}

func TestBusAsyncPublish(t *testing.T) {
	bus := New(2)
	bus.Start()
	t.Cleanup(bus.Stop)

	var mu sync.Mutex
	received := make([]PlanEventData, 0, 1)
	err := bus.Subscribe(EventPlanGenerated, func(data PlanEventData) {
		mu.Lock()
		received = append(received, data)
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	bus.PublishAsync(EventPlanGenerated, PlanEventData{UserID: "user-1", Model: "gpt-4o-mini"})

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := len(received)
		mu.Unlock()
		if n == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("async event was not delivered")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestBusPanicInSubscriberDoesNotKillWorker(t *testing.T) {
	bus := New(1)
	bus.Start()
	t.Cleanup(bus.Stop)

	_ = bus.Subscribe(EventSystemError, func(SystemEventData) {
		panic("subscriber bug")
	})

	done := make(chan struct{})
	_ = bus.Subscribe(EventAuthLogout, func(AuthEventData) {
		close(done)
	})

	bus.PublishAsync(EventSystemError, SystemEventData{Component: "test"})
	bus.PublishAsync(EventAuthLogout, AuthEventData{UserID: "user-1"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive subscriber panic")
	}
}
