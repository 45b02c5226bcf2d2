package client

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Observer is the interface for event observers
type Observer interface {
	OnEvent(event Event)
}

// ObserverFunc is a function that implements the Observer interface
type ObserverFunc func(event Event)

// OnEvent calls the observer function
func (f ObserverFunc) OnEvent(event Event) {
	f(event)
}

// FilteredObserver is an observer that only receives events of a specific type
type FilteredObserver struct {
	EventType string
	Observer  Observer
}

// NewFilteredObserver creates a new filtered observer
func NewFilteredObserver(eventType string, observer Observer) *FilteredObserver {
	return &FilteredObserver{
		EventType: eventType,
		Observer:  observer,
	}
}

// OnEvent calls the underlying observer if the event type matches
func (f *FilteredObserver) OnEvent(event Event) {
	if event.GetType() == f.EventType {
		f.Observer.OnEvent(event)
	}
}

// Dispatcher delivers lifecycle events to observers in emission order.
// A single worker drains the queue so observers never see events concurrently.
type Dispatcher struct {
	observers     []Observer
	observersLock sync.RWMutex
	queue         chan Event
	logger        zerolog.Logger
}

// NewDispatcher creates a dispatcher with a queue of the given size
func NewDispatcher(logger zerolog.Logger, size int) *Dispatcher {
	return &Dispatcher{
		queue:  make(chan Event, size),
		logger: logger,
	}
}

// RegisterObserver registers an observer for every event
func (d *Dispatcher) RegisterObserver(observer Observer) {
	d.observersLock.Lock()
	defer d.observersLock.Unlock()
	d.observers = append(d.observers, observer)
}

// Dispatch queues an event. It blocks while the queue is full.
func (d *Dispatcher) Dispatch(event Event) {
	d.queue <- event
}

// Run delivers queued events until ctx is done
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.queue:
			d.deliver(event)
		}
	}
}

func (d *Dispatcher) deliver(event Event) {
	d.observersLock.RLock()
	observers := make([]Observer, len(d.observers))
	copy(observers, d.observers)
	d.observersLock.RUnlock()

	for _, observer := range observers {
		d.notify(observer, event)
	}
}

// notify isolates observer panics so one bad observer cannot stop dispatch
func (d *Dispatcher) notify(observer Observer, event Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Interface("panic", r).Str("event", event.GetType()).Msg("Observer panicked")
		}
	}()
	observer.OnEvent(event)
}
