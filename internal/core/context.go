package core

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Metadata keys maintained by the pipeline
const (
	MetaVisited  = "imports_visited"
	MetaReplaced = "imports_replaced"
)

// RewriteContext extends standard context with fields for one file rewrite
type RewriteContext struct {
	context.Context
	RunID     string
	File      string
	StartTime time.Time
	Log       *zap.Logger

	mu       sync.RWMutex
	metadata map[string]interface{}
}

// NewRewriteContext creates a new RewriteContext
func NewRewriteContext(ctx context.Context, logger *zap.Logger) *RewriteContext {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RewriteContext{
		Context:   ctx,
		StartTime: time.Now(),
		Log:       logger,
		metadata:  make(map[string]interface{}),
	}
}

// SetMetadata sets a metadata value (thread-safe)
func (c *RewriteContext) SetMetadata(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metadata[key] = value
}

// GetMetadata gets a metadata value (thread-safe)
func (c *RewriteContext) GetMetadata(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.metadata[key]
	return v, ok
}

// Incr adds delta to an integer metadata counter and returns the new value
func (c *RewriteContext) Incr(key string, delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := c.metadata[key].(int)
	n += delta
	c.metadata[key] = n
	return n
}

// Count reads an integer metadata counter, zero when unset
func (c *RewriteContext) Count(key string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, _ := c.metadata[key].(int)
	return n
}

// Metadata returns a copy of all metadata (thread-safe)
func (c *RewriteContext) Metadata() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	copy := make(map[string]interface{}, len(c.metadata))
	for k, v := range c.metadata {
		copy[k] = v
	}
	return copy
}
