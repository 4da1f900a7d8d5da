// Package eventbus carries auth and plan lifecycle events between
// components without coupling them. Publishing never affects request
// outcomes.
package eventbus

import (
	"sync"

	evbus "github.com/asaskevich/EventBus"
)

// Bus wraps EventBus with a bounded async worker pool so slow subscribers
// cannot stall request handling.
type Bus struct {
	bus       evbus.Bus
	workerNum int
	workChan  chan asyncEvent
	stopChan  chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

type asyncEvent struct {
	topic string
	args  []any
}

// New creates a bus with the given number of workers.
func New(workerNum int) *Bus {
	if workerNum <= 0 {
		workerNum = 4
	}
	return &Bus{
		bus:       evbus.New(),
		workerNum: workerNum,
		workChan:  make(chan asyncEvent, 256),
		stopChan:  make(chan struct{}),
	}
}

// Start launches the worker pool.
func (b *Bus) Start() {
	b.startOnce.Do(func() {
		for i := 0; i < b.workerNum; i++ {
			b.wg.Add(1)
			go b.worker()
		}
	})
}

// Stop drains the workers. Safe to call more than once.
func (b *Bus) Stop() {
	b.stopOnce.Do(func() {
		close(b.stopChan)
	})
	b.wg.Wait()
}

func (b *Bus) worker() {
	defer b.wg.Done()

	for {
		select {
		case <-b.stopChan:
			return
		case event := <-b.workChan:
			func() {
				defer func() {
					// A panicking subscriber must not take the worker down.
					_ = recover()
				}()
				b.bus.Publish(event.topic, event.args...)
			}()
		}
	}
}

// Publish delivers an event synchronously to all subscribers.
func (b *Bus) Publish(topic string, args ...any) {
	b.bus.Publish(topic, args...)
}

// PublishAsync queues an event for the worker pool. Events are dropped
// when the queue is full rather than blocking the publisher.
func (b *Bus) PublishAsync(topic string, args ...any) {
	select {
	case b.workChan <- asyncEvent{topic: topic, args: args}:
	default:
	}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic string, fn any) error {
	return b.bus.Subscribe(topic, fn)
}

// Unsubscribe removes a handler from a topic.
func (b *Bus) Unsubscribe(topic string, fn any) error {
	return b.bus.Unsubscribe(topic, fn)
}
