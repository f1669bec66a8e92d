package widget

import (
	"fmt"
	"io"
	"sync"
)

// Container is the render target for results.
type Container interface {
	// Clear empties the container.
	Clear()
	// Render replaces the container content.
	Render(content string)
}

// Buffer is an in-memory Container that keeps the latest rendered content.
type Buffer struct {
	mu      sync.RWMutex
	content string
	renders int
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = ""
	b.renders++
}

func (b *Buffer) Render(content string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = content
	b.renders++
}

// HTML returns the current content.
func (b *Buffer) HTML() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content
}

// Renders returns how many times the content was replaced or cleared.
func (b *Buffer) Renders() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.renders
}

// WriterContainer streams every render to an io.Writer, one block per input.
type WriterContainer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterContainer returns a Container writing to w.
func NewWriterContainer(w io.Writer) *WriterContainer {
	return &WriterContainer{w: w}
}

func (c *WriterContainer) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w)
}

func (c *WriterContainer) Render(content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, content)
}
