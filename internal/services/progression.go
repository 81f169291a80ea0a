package services

import (
	"context"
	"sync"
	"time"

	"shopmate/internal/domain"
	applog "shopmate/internal/log"
	"shopmate/internal/repos"
)

// Progression walks freshly placed orders through the fulfillment states
// on a fixed cadence. Each order gets one goroutine, registered under a
// cancellable handle so shutdown and tests can reach it. Cancelling an
// order is purely logical: the walker only notices by re-reading status
// before its next step, so a cancellation can land up to one interval
// before the walker actually stops. That latency is intended.
type Progression struct {
	Orders   *repos.OrderRepo
	Interval time.Duration

	mu       sync.Mutex
	inflight map[string]*progressHandle
}

type progressHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func NewProgression(orders *repos.OrderRepo, interval time.Duration) *Progression {
	return &Progression{
		Orders:   orders,
		Interval: interval,
		inflight: make(map[string]*progressHandle),
	}
}

// Spawn starts the walker for one order. Fire-and-forget: failures are
// logged and abandoned, never surfaced to the placing caller.
func (p *Progression) Spawn(orderID string) {
	ctx, cancel := context.WithCancel(context.Background())
	h := &progressHandle{cancel: cancel, done: make(chan struct{})}

	p.mu.Lock()
	p.inflight[orderID] = h
	p.mu.Unlock()

	go p.run(ctx, h, orderID)
}

func (p *Progression) run(ctx context.Context, h *progressHandle, orderID string) {
	defer func() {
		p.mu.Lock()
		delete(p.inflight, orderID)
		p.mu.Unlock()
		close(h.done)
	}()

	for _, next := range domain.ProgressSequence {
		// Re-read before every step: a concurrent cancellation must win.
		st, err := p.Orders.GetStatus(orderID)
		if err != nil {
			applog.Error(nil, "progress.read.fail", err, map[string]any{"order_id": orderID})
			return
		}
		if st.Terminal() {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(p.Interval):
		}

		changed, err := p.Orders.Advance(orderID, next)
		if err != nil {
			applog.Error(nil, "progress.advance.fail", err, map[string]any{"order_id": orderID})
			return
		}
		if !changed {
			// Lost to a cancellation (or delivery) in flight.
			return
		}
		applog.Info(nil, "progress.advance", map[string]any{"order_id": orderID, "status": string(next)})
	}
}

// Wait returns a channel closed when the order's walker exits. Unknown
// or already-finished orders get an immediately closed channel.
func (p *Progression) Wait(orderID string) <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	if h, ok := p.inflight[orderID]; ok {
		return h.done
	}
	ch := make(chan struct{})
	close(ch)
	return ch
}

// StopAll interrupts every in-flight walker. Order status is untouched;
// this only cuts the wall-clock waits, for shutdown.
func (p *Progression) StopAll() {
	p.mu.Lock()
	handles := make([]*progressHandle, 0, len(p.inflight))
	for _, h := range p.inflight {
		handles = append(handles, h)
	}
	p.mu.Unlock()

	for _, h := range handles {
		h.cancel()
		<-h.done
	}
}
