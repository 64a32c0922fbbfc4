package tracking

import "sync"

// CollectorPool manages reusable collectors across concurrent runs
type CollectorPool struct {
	free []*Collector
	mu   sync.Mutex
}

// NewCollectorPool creates a pool with optional pre-allocation
func NewCollectorPool(prealloc int) *CollectorPool {
	p := &CollectorPool{
		free: make([]*Collector, 0, prealloc),
	}
	for i := 0; i < prealloc; i++ {
		p.free = append(p.free, NewCollector())
	}
	return p
}

// Acquire gets a reset collector or creates one
func (p *CollectorPool) Acquire() *Collector {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.free) > 0 {
		c := p.free[len(p.free)-1]
		p.free = p.free[:len(p.free)-1]
		c.Reset()
		return c
	}
	return NewCollector()
}

// Release returns a collector to the pool
func (p *CollectorPool) Release(c *Collector) {
	if c == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, c)
}
