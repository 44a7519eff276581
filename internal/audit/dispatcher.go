// Package audit delivers audit entries asynchronously to one or more sinks.
package audit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dtroode/nox-iam/internal/ids"
	"github.com/dtroode/nox-iam/internal/model"
)

var _ model.AuditSink = (*Dispatcher)(nil)

// Sink consumes entries on the dispatcher goroutine.
type Sink interface {
	Emit(ctx context.Context, entry model.AuditEntry)
}

// Config controls dispatcher buffering.
type Config struct {
	BufferSize int
	DropIfFull bool
}

// Dispatcher forwards entries to sinks from a single background goroutine.
type Dispatcher struct {
	cfg       Config
	sinks     []Sink
	ch        chan model.AuditEntry
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
	now       func() time.Time
}

// NewDispatcher starts a dispatcher fanning out to sinks.
func NewDispatcher(cfg Config, sinks ...Sink) *Dispatcher {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}

	d := &Dispatcher{
		cfg:   cfg,
		sinks: sinks,
		ch:    make(chan model.AuditEntry, cfg.BufferSize),
		done:  make(chan struct{}),
		now:   time.Now,
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case entry := <-d.ch:
			d.emit(entry)
		case <-d.done:
			for {
				select {
				case entry := <-d.ch:
					d.emit(entry)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) emit(entry model.AuditEntry) {
	for _, s := range d.sinks {
		s.Emit(context.Background(), entry)
	}
}

// Record enqueues entry, filling in its id and timestamp when missing.
func (d *Dispatcher) Record(ctx context.Context, entry model.AuditEntry) {
	if d == nil || d.closed.Load() {
		return
	}
	if entry.At.IsZero() {
		entry.At = d.now().UTC()
	}
	if entry.ID == "" {
		entry.ID = ids.NewAt(entry.At)
	}

	if d.cfg.DropIfFull {
		select {
		case d.ch <- entry:
		case <-d.done:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.ch <- entry:
	case <-ctx.Done():
		d.dropped.Add(1)
	case <-d.done:
	}
}

// Close drains queued entries and stops the dispatcher.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

// Dropped returns the number of entries lost to a full buffer.
func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
