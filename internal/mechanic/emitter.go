package mechanic

// Emitter is the per-step sink for domain events. Emit is infallible from
// the mechanic's perspective; backpressure is the emitter's concern.
type Emitter[E any] interface {
	Emit(E)
}

// Buffer is an ordered in-memory emitter. The host borrows it exclusively
// during a step and drains it between steps.
type Buffer[E any] struct {
	events []E
}

// NewBuffer creates an empty buffer.
func NewBuffer[E any]() *Buffer[E] {
	return &Buffer[E]{}
}

// Emit appends an event, preserving emission order.
func (b *Buffer[E]) Emit(evt E) {
	b.events = append(b.events, evt)
}

// Len reports the number of buffered events.
func (b *Buffer[E]) Len() int {
	return len(b.events)
}

// Drain returns all buffered events in emission order and resets the buffer.
func (b *Buffer[E]) Drain() []E {
	if len(b.events) == 0 {
		return nil
	}
	drained := b.events
	b.events = nil
	return drained
}

// Discard drops buffered events without observing them, for host shutdown.
func (b *Buffer[E]) Discard() {
	b.events = nil
}
