package directory

import (
	"log"
	"sync"
	"time"
)

const (
	// DefaultTTL is how long a room may sit idle before eviction.
	DefaultTTL = 30 * time.Minute

	// DefaultSweepInterval is how often the sweep runs.
	DefaultSweepInterval = time.Minute
)

// Sweeper periodically evicts idle rooms. It runs for the life of the
// process; Stop is only used at shutdown.
type Sweeper struct {
	dir      *Directory
	notifier Notifier
	ttl      time.Duration
	interval time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

// NewSweeper creates a sweeper over dir. Non-positive ttl or interval fall
// back to the defaults.
func NewSweeper(dir *Directory, notifier Notifier, ttl, interval time.Duration) *Sweeper {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		dir:      dir,
		notifier: notifier,
		ttl:      ttl,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Run ticks until Stop is called. Call in a goroutine.
func (s *Sweeper) Run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// Stop terminates the sweep loop.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

// sweep runs one eviction pass. However many rooms expire together, at most
// one directory-changed notification goes out. A panic in a pass must not
// kill the loop.
func (s *Sweeper) sweep() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in sweep: %v", r)
		}
	}()

	evicted := s.dir.EvictIdle(s.ttl, time.Now())
	if evicted == 0 {
		return
	}
	log.Printf("Sweep evicted %d idle room(s)", evicted)
	if s.notifier != nil {
		s.notifier.DirectoryChanged()
	}
}
