package notify

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher fans notices out to all sinks from a fixed set of workers,
// sharded by session id so the notices of one session are delivered in the
// order they were published.
type Dispatcher struct {
	workers []chan Notice
	sinks   []Sink
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sinks []Sink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan Notice, numWorkers),
		sinks:   sinks,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan Notice, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish enqueues a notice on the worker owning its session. Non-blocking
// up to channelBuffer; a full worker drops the notice with a warning rather
// than stalling a credential operation.
func (d *Dispatcher) Publish(n Notice) {
	ch := d.workers[d.shardIndex(n.SID)]
	select {
	case ch <- n:
	default:
		d.log.Warn().Str("notice_id", n.ID).Msg("notice queue full, dropped")
	}
}

// shardIndex maps a session id deterministically to a worker index.
func (d *Dispatcher) shardIndex(sid string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sid))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan Notice) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			for _, sink := range d.sinks {
				if err := sink.Deliver(ctx, n); err != nil {
					d.log.Error().Err(err).
						Str("sink", sink.Name()).
						Str("notice_id", n.ID).
						Int("worker_id", id).
						Msg("notice delivery failed")
				}
			}
		}
	}
}
