package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/egreat/storefront-api/internal/api/metrics"
	"github.com/egreat/storefront-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	deleteTimeout  = 30 * time.Second
)

// CleanupDispatcher deletes orphaned cloud images in the background. Tasks
// are routed to a fixed set of workers by hashing the image URL, so repeated
// deletions of the same image never race each other.
type CleanupDispatcher struct {
	workers []chan ports.ImageCleanupTask
	store   ports.ImageStore
	log     zerolog.Logger
}

// NewCleanupDispatcher creates a CleanupDispatcher with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewCleanupDispatcher(numWorkers int, store ports.ImageStore, log zerolog.Logger) *CleanupDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &CleanupDispatcher{
		workers: make([]chan ports.ImageCleanupTask, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ImageCleanupTask, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *CleanupDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules one remote image for deletion. The call is non-blocking
// up to channelBuffer capacity; deletion failures are logged, not returned.
func (d *CleanupDispatcher) Enqueue(task ports.ImageCleanupTask) {
	d.workers[d.shardIndex(task.URL)] <- task
}

// shardIndex maps an image URL deterministically to a worker index.
func (d *CleanupDispatcher) shardIndex(url string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(url))
	return int(h.Sum32()) % len(d.workers)
}

func (d *CleanupDispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ImageCleanupTask) {
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-ch:
			if !ok {
				return
			}
			deleteCtx, cancel := context.WithTimeout(ctx, deleteTimeout)
			err := d.store.Delete(deleteCtx, task.Folder, task.URL)
			cancel()
			if err != nil {
				metrics.ImageCleanupsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("url", task.URL).
					Str("folder", task.Folder).
					Int("worker_id", id).
					Msg("image cleanup failed")
				continue
			}
			metrics.ImageCleanupsTotal.WithLabelValues("success").Inc()
		}
	}
}
