package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// Sink receives persisted tokens
type Sink func(token string) error

// Persister debounces snapshots: each Schedule cancels the pending write and restarts the
// window, so only the last snapshot inside a burst is delivered
type Persister struct {
	mu      sync.Mutex
	delay   time.Duration
	sink    Sink
	timer   *time.Timer
	pending string
	armed   bool
	gen     uint64 // identifies the timer allowed to deliver

	writes atomic.Int64
	errors atomic.Int64
}

// NewPersister creates a persister delivering to sink after delay of quiet
func NewPersister(delay time.Duration, sink Sink) *Persister {
	return &Persister{delay: delay, sink: sink}
}

// Schedule snapshots s now and (re)arms the debounce timer
func (p *Persister) Schedule(s *State) {
	token := Serialize(s)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending = token
	p.armed = true
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
	}
	gen := p.gen
	p.timer = time.AfterFunc(p.delay, func() { p.fire(gen) })
}

// fire delivers only if no newer Schedule superseded this timer
func (p *Persister) fire(gen uint64) {
	p.mu.Lock()
	if !p.armed || gen != p.gen {
		p.mu.Unlock()
		return
	}
	token := p.pending
	p.armed = false
	p.mu.Unlock()

	p.deliver(token)
}

func (p *Persister) deliver(token string) {
	if p.sink == nil {
		return
	}
	if err := p.sink(token); err != nil {
		p.errors.Add(1)
		return
	}
	p.writes.Add(1)
}

// Flush delivers a pending snapshot immediately
func (p *Persister) Flush() {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	if !p.armed {
		p.mu.Unlock()
		return
	}
	token := p.pending
	p.armed = false
	p.mu.Unlock()

	p.deliver(token)
}

// Stop cancels any pending snapshot without delivering it
func (p *Persister) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.armed = false
}

// Writes returns the number of successful deliveries
func (p *Persister) Writes() int64 {
	return p.writes.Load()
}

// Errors returns the number of failed deliveries
func (p *Persister) Errors() int64 {
	return p.errors.Load()
}

// FileSink writes each token to path, replacing the file atomically
func FileSink(path string) Sink {
	return func(token string) error {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("state dir: %w", err)
		}
		tmp, err := os.CreateTemp(dir, ".blobscape-state-*")
		if err != nil {
			return fmt.Errorf("state temp: %w", err)
		}
		if _, err := tmp.WriteString(token + "\n"); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return fmt.Errorf("state write: %w", err)
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmp.Name())
			return fmt.Errorf("state close: %w", err)
		}
		if err := os.Rename(tmp.Name(), path); err != nil {
			os.Remove(tmp.Name())
			return fmt.Errorf("state rename: %w", err)
		}
		return nil
	}
}

// ReadFile loads a token written by FileSink, empty when the file does not exist
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read state: %w", err)
	}
	return string(data), nil
}
