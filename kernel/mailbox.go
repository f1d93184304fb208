package kernel

import "sync"

// MailboxSlots is the capacity of a Mailbox.
const MailboxSlots = 16

// Mailbox is a fixed-size multi-producer, single-consumer queue.
//
// Producers are hardware backends running outside the scheduler; the consumer
// is a task. It never allocates after construction and never blocks. The
// zero value is ready to use; a Mailbox must not be copied after first use.
type Mailbox[T any] struct {
	mu      sync.Mutex
	head    uint32
	tail    uint32
	dropped uint32
	slots   [MailboxSlots]T
}

// TrySend attempts to enqueue v, returning false if the mailbox is full.
func (mb *Mailbox[T]) TrySend(v T) bool {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if mb.head-mb.tail >= MailboxSlots {
		mb.dropped++
		return false
	}
	mb.slots[mb.head%MailboxSlots] = v
	mb.head++
	return true
}

// TryRecv attempts to dequeue one value, returning false if empty.
func (mb *Mailbox[T]) TryRecv() (T, bool) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	var zero T
	if mb.tail == mb.head {
		return zero, false
	}
	v := mb.slots[mb.tail%MailboxSlots]
	mb.slots[mb.tail%MailboxSlots] = zero
	mb.tail++
	return v, true
}

// Len returns the number of queued values.
func (mb *Mailbox[T]) Len() int {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return int(mb.head - mb.tail)
}

// Dropped returns how many sends were rejected because the mailbox was full.
func (mb *Mailbox[T]) Dropped() uint32 {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return mb.dropped
}
