package generator

import (
	"context"
	"sync"
)

// Counting records how often the wrapped generator is called.
type Counting struct {
	Inner Generator

	mu       sync.Mutex
	calls    int
	requests [][]string
}

// Name returns the wrapped generator's name.
func (c *Counting) Name() string { return NameOf(c.Inner) }

// BulkLookup forwards to Inner and records the call.
func (c *Counting) BulkLookup(ctx context.Context, analyses []string) (map[string][]string, error) {
	c.mu.Lock()
	c.calls++
	c.requests = append(c.requests, append([]string(nil), analyses...))
	c.mu.Unlock()
	return c.Inner.BulkLookup(ctx, analyses)
}

// Calls returns the number of BulkLookup calls so far.
func (c *Counting) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Requests returns the analyses of every call, in call order.
func (c *Counting) Requests() [][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]string(nil), c.requests...)
}
