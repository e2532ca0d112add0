package metrics

import (
	"time"
)

// StatsProvider reports a point-in-time view of the viewing session.
type StatsProvider interface {
	Stats() Stats
}

// Stats holds the sampled session values.
type Stats struct {
	Folders  int
	Keys     int
	Position int
	Stale    bool
}

// Collector periodically samples a StatsProvider into gauges.
type Collector struct {
	provider StatsProvider
	interval time.Duration
	stopChan chan struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		provider: provider,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the collection loop
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.provider == nil {
		return
	}

	stats := c.provider.Stats()

	SessionFolders.Set(float64(stats.Folders))
	IndexKeys.Set(float64(stats.Keys))
	SessionPosition.Set(float64(stats.Position))
	if stats.Stale {
		SessionStale.Set(1)
	} else {
		SessionStale.Set(0)
	}
}
