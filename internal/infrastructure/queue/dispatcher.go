package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/frcparts/components-api/internal/api/metrics"
	"github.com/frcparts/components-api/internal/core/domain"
	"github.com/frcparts/components-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	recordTimeout  = 5 * time.Second
)

// Dispatcher routes inventory activity events to a fixed set of workers using
// consistent hashing on the team id, which keeps each team's events in order.
type Dispatcher struct {
	workers []chan domain.InventoryEvent
	service ports.ActivityService
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.InventoryEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.InventoryEvent, channelBuffer)
	}
	return d
}

// Start launches the worker goroutines. Workers exit once Close has been
// called and their channel is drained.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an event to the worker responsible for its team. It never
// blocks: when the worker's buffer is full, or the dispatcher is closed, the
// event is dropped and counted.
func (d *Dispatcher) Enqueue(event domain.InventoryEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.ActivityErrorsTotal.WithLabelValues("queue_closed").Inc()
		return
	}

	idx := d.shardIndex(event.TeamID)
	select {
	case d.workers[idx] <- event:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.ActivityErrorsTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().Str("team_id", event.TeamID).Int("worker_id", idx).Msg("activity queue full, event dropped")
	}
}

// Close stops accepting events and waits for the workers to drain, or for
// ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a team id deterministically to a worker index.
func (d *Dispatcher) shardIndex(teamID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(teamID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.InventoryEvent) {
	defer d.wg.Done()
	workerID := strconv.Itoa(id)
	for event := range ch {
		metrics.ActivityQueueDepth.WithLabelValues(workerID).Dec()
		d.process(ctx, id, event)
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, event domain.InventoryEvent) {
	// Detached from ctx cancellation so events queued before shutdown still land.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	start := time.Now()
	err := d.service.Record(recordCtx, event)
	result := "ok"
	if err != nil {
		result = "error"
		metrics.ActivityErrorsTotal.WithLabelValues("persist_failed").Inc()
		d.log.Error().Err(err).
			Str("team_id", event.TeamID).
			Int64("component_id", event.ComponentID).
			Int("worker_id", id).
			Msg("activity event persistence failed")
	}
	metrics.ActivityProcessingDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
