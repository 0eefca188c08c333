package reward

import (
	"LinkRewards-Backend/internal/fraud"
	"LinkRewards-Backend/internal/repository"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Job identifies one click whose reward must be resolved. The shape is
// deliberately queue-like so the in-process channel can later be swapped for
// a durable broker without touching the resolution logic.
type Job struct {
	ClickID   int64
	LinkID    int64
	UserAgent string
	IPAddress string
}

// Config holds configuration for the reward processor.
type Config struct {
	WorkerCount     int           // Number of worker goroutines
	BufferSize      int           // Size of the job queue buffer
	OracleTimeout   time.Duration // Per-job deadline for the fraud check
	ShutdownTimeout time.Duration // Time to wait for graceful shutdown
	RewardCents     int64         // Fixed credit per valid click
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		WorkerCount:     3,
		BufferSize:      1000,
		OracleTimeout:   10 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		RewardCents:     10,
	}
}

// Processor resolves click rewards asynchronously. Resolution is
// fire-and-forget: the oracle verdict is applied at most once per click via
// the storage-level conditional update, and an oracle failure leaves the
// click unresolved without surfacing anywhere. A reward in flight during a
// crash is lost; that trade-off is accepted here instead of a durable queue.
type Processor struct {
	config   Config
	storage  repository.Storage
	oracle   fraud.Oracle
	log      *zap.Logger
	jobQueue chan *Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	started  bool
	mu       sync.RWMutex

	rewarded  atomic.Int64 // clicks credited by this process
	invalid   atomic.Int64 // clicks ruled invalid
	swallowed atomic.Int64 // oracle failures absorbed
	dropped   atomic.Int64 // jobs rejected because the queue was full
}

// NewProcessor creates a new reward processor.
func NewProcessor(storage repository.Storage, oracle fraud.Oracle, log *zap.Logger, config Config) *Processor {
	ctx, cancel := context.WithCancel(context.Background())

	return &Processor{
		config:   config,
		storage:  storage,
		oracle:   oracle,
		log:      log,
		jobQueue: make(chan *Job, config.BufferSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the worker goroutines.
func (p *Processor) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("processor already started")
	}

	p.log.Info("starting reward processor",
		zap.Int("workers", p.config.WorkerCount),
		zap.Int("buffer_size", p.config.BufferSize),
		zap.Int64("reward_cents", p.config.RewardCents),
	)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	p.started = true
	return nil
}

// Stop gracefully shuts down the processor.
func (p *Processor) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return fmt.Errorf("processor not started")
	}

	p.log.Info("stopping reward processor")

	// Closing the queue lets the workers drain what is already scheduled.
	close(p.jobQueue)
	p.started = false

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.log.Info("reward processor stopped gracefully")
	case <-time.After(p.config.ShutdownTimeout):
		p.cancel() // abort in-flight fraud checks
		p.log.Warn("reward processor shutdown timeout reached")
		return fmt.Errorf("shutdown timeout reached")
	}

	return nil
}

// Submit schedules reward resolution for a click without blocking the
// caller. A full queue drops the job: the click then simply stays
// unresolved, the same outcome as an oracle failure.
func (p *Processor) Submit(job *Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.started {
		return fmt.Errorf("processor not started")
	}

	select {
	case p.jobQueue <- job:
		return nil
	case <-p.ctx.Done():
		return fmt.Errorf("processor is shutting down")
	default:
		p.dropped.Add(1)
		p.log.Error("reward queue is full, dropping click",
			zap.Int64("click_id", job.ClickID),
			zap.Int("queue_size", len(p.jobQueue)),
		)
		return fmt.Errorf("reward queue is full")
	}
}

// worker drains the job queue until it is closed.
func (p *Processor) worker(workerID int) {
	defer p.wg.Done()

	log := p.log.With(zap.Int("worker_id", workerID))
	log.Info("reward worker started")

	for job := range p.jobQueue {
		ctx, cancel := context.WithTimeout(p.ctx, p.config.OracleTimeout)
		p.resolve(ctx, log, job)
		cancel()
	}

	log.Info("reward worker stopped")
}

// resolve runs the fraud check for one click and applies the verdict. It is
// safe to invoke more than once for the same click: the conditional update
// in RewardClick admits exactly one winner, and every other invocation skips
// the link credit.
func (p *Processor) resolve(ctx context.Context, log *zap.Logger, job *Job) {
	valid, err := p.oracle.Check(ctx, fraud.Signal{
		ClickID:   job.ClickID,
		LinkID:    job.LinkID,
		UserAgent: job.UserAgent,
		IPAddress: job.IPAddress,
	})
	if err != nil {
		// The click stays unresolved and unrewarded. Nothing retries it.
		p.swallowed.Add(1)
		log.Warn("fraud check failed, leaving click unresolved",
			zap.Int64("click_id", job.ClickID),
			zap.Error(err),
		)
		return
	}

	if !valid {
		if err := p.storage.MarkClickInvalid(ctx, job.ClickID); err != nil {
			log.Warn("failed to mark click invalid",
				zap.Int64("click_id", job.ClickID),
				zap.Error(err),
			)
			return
		}
		p.invalid.Add(1)
		log.Debug("click ruled invalid", zap.Int64("click_id", job.ClickID))
		return
	}

	matched, err := p.storage.RewardClick(ctx, job.ClickID, p.config.RewardCents)
	if err != nil {
		log.Warn("failed to reward click",
			zap.Int64("click_id", job.ClickID),
			zap.Error(err),
		)
		return
	}
	if !matched {
		// Lost the guard to an earlier resolution of the same click.
		log.Debug("click already rewarded, skipping link credit",
			zap.Int64("click_id", job.ClickID),
		)
		return
	}

	if err := p.storage.AddLinkReward(ctx, job.LinkID, p.config.RewardCents); err != nil {
		// The click is marked rewarded but the link counters missed the
		// credit. Log loudly: this is the one spot where the two records
		// can drift apart.
		log.Error("failed to credit link after rewarding click",
			zap.Int64("click_id", job.ClickID),
			zap.Int64("link_id", job.LinkID),
			zap.Error(err),
		)
		return
	}

	p.rewarded.Add(1)
	log.Debug("click rewarded",
		zap.Int64("click_id", job.ClickID),
		zap.Int64("link_id", job.LinkID),
		zap.Int64("reward_cents", p.config.RewardCents),
	)
}

// Stats returns processor counters for the health surface.
func (p *Processor) Stats() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return map[string]interface{}{
		"started":        p.started,
		"queue_length":   len(p.jobQueue),
		"queue_capacity": cap(p.jobQueue),
		"worker_count":   p.config.WorkerCount,
		"rewarded":       p.rewarded.Load(),
		"invalid":        p.invalid.Load(),
		"swallowed":      p.swallowed.Load(),
		"dropped":        p.dropped.Load(),
	}
}
