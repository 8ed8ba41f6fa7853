// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package arena

// ring is a bounded FIFO of freed blocks.
// The oldest freed block is handed out first.
type ring[T any] struct {
	buffer           []*T
	capacity, length uint16
	head, tail       uint16
}

func (ring *ring[T]) reset() {
	ring.length = 0
	ring.head = 0
	ring.tail = 0
	if ring.buffer == nil {
		ring.buffer = make([]*T, ring.capacity)
	}
	clear(ring.buffer)
}

func (ring *ring[T]) full() bool {
	return ring.length == ring.capacity
}

func (ring *ring[T]) empty() bool {
	return ring.length == 0
}

func (ring *ring[T]) shift() (block *T) {
	if ring.empty() {
		return
	}

	block = ring.buffer[ring.head]
	ring.buffer[ring.head] = nil
	ring.head = (ring.head + 1) % ring.capacity
	ring.length--
	return
}

func (ring *ring[T]) push(block *T) bool {
	if ring.full() {
		return false
	}

	ring.buffer[ring.tail] = block
	ring.tail = (ring.tail + 1) % ring.capacity
	ring.length++
	return true
}
