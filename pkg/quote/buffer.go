package quote

import (
	"strings"
)

// DefaultBufferCapacity is the number of description lines kept before a
// detached quantity line
const DefaultBufferCapacity = 4

// DescriptionBuffer is a bounded rolling window of the latest non-row lines.
// The oldest line is dropped on overflow.
type DescriptionBuffer struct {
	lines    []string
	capacity int
}

// NewDescriptionBuffer creates a buffer holding at most capacity lines. A
// capacity below one falls back to DefaultBufferCapacity.
func NewDescriptionBuffer(capacity int) *DescriptionBuffer {
	if capacity < 1 {
		capacity = DefaultBufferCapacity
	}
	return &DescriptionBuffer{
		lines:    make([]string, 0, capacity),
		capacity: capacity,
	}
}

// Push appends a line, evicting the oldest one when full
func (b *DescriptionBuffer) Push(line string) {
	if len(b.lines) == b.capacity {
		copy(b.lines, b.lines[1:])
		b.lines = b.lines[:len(b.lines)-1]
	}
	b.lines = append(b.lines, line)
}

func (b *DescriptionBuffer) Clear() {
	b.lines = b.lines[:0]
}

func (b *DescriptionBuffer) Len() int {
	return len(b.lines)
}

func (b *DescriptionBuffer) Capacity() int {
	return b.capacity
}

// Lines returns a copy of the buffered lines, oldest first
func (b *DescriptionBuffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Description joins the buffered lines into one whitespace-collapsed string
func (b *DescriptionBuffer) Description() string {
	return strings.Join(strings.Fields(strings.Join(b.lines, " ")), " ")
}
