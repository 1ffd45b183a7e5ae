package relay

import (
	"context"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"mcpi/internal/domain"
)

// Publisher is an engine observer that publishes snapshots to a relay from a
// background goroutine, so engine ticks never wait on the network.
//
// Snapshots are coalesced per run: while a request is in flight only the
// latest snapshot of each run is kept, so a slow relay sees fewer updates but
// always the most recent one. Publishing is best effort: failures are logged
// and the run continues. Close delivers whatever is still pending.
type Publisher struct {
	client  domain.RelayClient
	timeout time.Duration
	log     logr.Logger

	mu      sync.Mutex
	pending map[string]domain.SimulationState
	order   []string // runs with a pending snapshot, oldest first
	closed  bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
	once sync.Once
}

// NewPublisher starts a Publisher with a per-request timeout.
func NewPublisher(client domain.RelayClient, timeout time.Duration, log logr.Logger) *Publisher {
	p := &Publisher{
		client:  client,
		timeout: timeout,
		log:     log,
		pending: make(map[string]domain.SimulationState),
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *Publisher) OnSample(domain.Point, domain.SampleCategory) {}
func (p *Publisher) OnStatisticsUpdated(domain.RunningStatistics) {}
func (p *Publisher) OnFinished() {}

// OnSnapshot queues s and returns immediately.
func (p *Publisher) OnSnapshot(s domain.SimulationState) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	if _, ok := p.pending[s.RunID]; !ok {
		p.order = append(p.order, s.RunID)
	}
	p.pending[s.RunID] = s
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Close stops accepting snapshots, publishes the pending ones and waits for
// the sender to exit. It is safe to call more than once.
func (p *Publisher) Close() error {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		close(p.quit)
	})
	<-p.done
	return nil
}

func (p *Publisher) loop() {
	defer close(p.done)
	for {
		select {
		case <-p.wake:
			p.drain()
		case <-p.quit:
			p.drain()
			return
		}
	}
}

func (p *Publisher) drain() {
	for {
		p.mu.Lock()
		if len(p.order) == 0 {
			p.mu.Unlock()
			return
		}
		id := p.order[0]
		p.order = p.order[1:]
		s := p.pending[id]
		delete(p.pending, id)
		p.mu.Unlock()

		p.publish(s)
	}
}

func (p *Publisher) publish(s domain.SimulationState) {
	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	if err := p.client.PublishSnapshot(ctx, s); err != nil {
		p.log.Error(err, "publish snapshot", "runID", s.RunID, "remaining", s.RemainingTicks)
	}
}

var _ domain.Observer = (*Publisher)(nil)
