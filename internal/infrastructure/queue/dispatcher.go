package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Task is one mutation against the remote API.
type Task func(ctx context.Context) error

// Observer is told how long each task took and how it ended.
type Observer func(worker string, elapsed time.Duration, err error)

type job struct {
	key    string
	task   Task
	result chan error
}

// Dispatcher routes mutations to a fixed set of workers by hashing the entity
// key, so mutations of the same entity run one at a time in submission order
// while different entities proceed in parallel.
type Dispatcher struct {
	workers []chan job
	log     zerolog.Logger
	observe Observer
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan job, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan job, channelBuffer)
	}
	return d
}

// SetObserver installs fn. Call before Start.
func (d *Dispatcher) SetObserver(fn Observer) { d.observe = fn }

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands task to the worker owning key. The returned channel receives
// the task's error once it has run. Enqueue blocks only while the worker's
// buffer is full, and gives up when ctx ends.
func (d *Dispatcher) Enqueue(ctx context.Context, key string, task Task) (<-chan error, error) {
	j := job{key: key, task: task, result: make(chan error, 1)}
	select {
	case d.workers[d.shardIndex(key)] <- j:
		return j.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Do enqueues task and waits for its result.
func (d *Dispatcher) Do(ctx context.Context, key string, task Task) error {
	res, err := d.Enqueue(ctx, key, task)
	if err != nil {
		return err
	}
	select {
	case err := <-res:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending reports how many tasks wait in each worker buffer.
func (d *Dispatcher) Pending() []int {
	out := make([]int, len(d.workers))
	for i, ch := range d.workers {
		out[i] = len(ch)
	}
	return out
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan job) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			err := j.task(ctx)
			if d.observe != nil {
				d.observe(worker, time.Since(start), err)
			}
			if err != nil {
				d.log.Debug().Err(err).
					Str("key", j.key).
					Int("worker_id", id).
					Msg("mutation failed")
			}
			j.result <- err
		}
	}
}
