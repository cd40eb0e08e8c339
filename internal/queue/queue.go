// Producer/single-consumer task queue. Inbound chat events enqueue without
// blocking and get an immediate ack elsewhere; the one consumer goroutine
// owns the whole search pipeline, so no two jobs ever touch the browser at
// the same time. Results leave through the push sink out-of-band.

package queue

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"go-eats-agent/internal/recommend"
)

var (
	// ErrQueueFull is returned to producers instead of blocking the
	// acknowledgment path.
	ErrQueueFull = errors.New("task queue is full")

	// ErrNoResults is the pipeline's explicit empty-result outcome.
	ErrNoResults = errors.New("no restaurants found")
)

// Job is one queued (user, text) unit of work. Consumed exactly once,
// never retried, never persisted.
type Job struct {
	UserID     string
	Text       string
	EnqueuedAt time.Time
}

// Result is a successful pipeline outcome.
type Result struct {
	Recommendations []recommend.Recommendation
	TotalFound      int
}

// Pipeline runs the full intent -> extraction -> scoring flow for one job.
type Pipeline func(ctx context.Context, text string) (*Result, error)

// Pusher delivers results (or failure text) to the originating user,
// decoupled from the acknowledgment channel.
type Pusher interface {
	PushRecommendations(userID string, recs []recommend.Recommendation, totalFound int) error
	PushText(userID, text string) error
}

const defaultBuffer = 64

// Worker is the queue plus its single consumer loop.
type Worker struct {
	jobs     chan Job
	pipeline Pipeline
	pusher   Pusher

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewWorker(pipeline Pipeline, pusher Pusher) *Worker {
	return &Worker{
		jobs:     make(chan Job, defaultBuffer),
		pipeline: pipeline,
		pusher:   pusher,
		done:     make(chan struct{}),
	}
}

// Enqueue adds a job without blocking. FIFO order of successful enqueues is
// the processing order.
func (w *Worker) Enqueue(job Job) error {
	if job.EnqueuedAt.IsZero() {
		job.EnqueuedAt = time.Now()
	}
	select {
	case w.jobs <- job:
		log.Printf("📥 Job queued for user %s (depth %d)", shortID(job.UserID), len(w.jobs))
		return nil
	default:
		return ErrQueueFull
	}
}

// Depth reports how many jobs are waiting. Read-only, no side effects.
func (w *Worker) Depth() int {
	return len(w.jobs)
}

// Start launches the consumer loop. Idempotent; later calls are no-ops.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.stopped {
		return
	}
	w.started = true

	ctx, w.cancel = context.WithCancel(ctx)
	go w.run(ctx)
	log.Println("👷 Background worker started")
}

// Stop cancels the consumer loop cooperatively and waits for the job in
// flight to finish. Idempotent and safe even if Start never ran.
func (w *Worker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	started := w.started
	w.mu.Unlock()

	if !started {
		return
	}
	w.cancel()
	<-w.done
	log.Println("👷 Background worker stopped")
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			return
		case job := <-w.jobs:
			w.process(ctx, job)
		}
	}
}

// process runs one job to completion. Any error or panic becomes a short
// user-visible message; nothing here may ever kill the loop.
func (w *Worker) process(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Panic while processing job for user %s: %v", shortID(job.UserID), r)
			w.pushText(job.UserID, "抱歉，處理時發生錯誤，請稍後再試")
		}
	}()

	log.Printf("👷 Processing job for user %s: %s", shortID(job.UserID), job.Text)

	result, err := w.pipeline(ctx, job.Text)
	if err != nil {
		if errors.Is(err, ErrNoResults) {
			w.pushText(job.UserID, "抱歉，找不到符合需求的餐廳 😢")
			return
		}
		log.Printf("❌ Job failed for user %s: %v", shortID(job.UserID), err)
		w.pushText(job.UserID, fmt.Sprintf("抱歉，處理時發生錯誤：%s", shortError(err)))
		return
	}

	if err := w.pusher.PushRecommendations(job.UserID, result.Recommendations, result.TotalFound); err != nil {
		log.Printf("⚠️ Failed to push result to user %s: %v", shortID(job.UserID), err)
	}
}

func (w *Worker) pushText(userID, text string) {
	if err := w.pusher.PushText(userID, text); err != nil {
		log.Printf("⚠️ Failed to push message to user %s: %v", shortID(userID), err)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// shortError keeps user-facing failures terse; the full error goes to logs.
func shortError(err error) string {
	msg := err.Error()
	if len(msg) > 100 {
		return msg[:100]
	}
	return msg
}
