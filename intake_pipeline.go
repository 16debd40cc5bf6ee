package cryptoengine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// pipelinePollInterval is the dispatcher's poll timeout (spec §4.5, §5:
// "the dispatcher's poll(10 ms) suspends").
const pipelinePollInterval = 10 * time.Millisecond

// pipelineShutdownGrace is how long a torn-down pipeline waits for
// in-flight batches to finish before abandoning them (spec §4.5
// "apply-settings transition": "5-second soft shutdown followed by forced
// termination").
const pipelineShutdownGrace = 5 * time.Second

// batchJob is one entry handed from the dispatcher to the worker pool. run
// performs the batch's work and resolves whatever futures it owns; it
// never returns an error itself so a single batch's faults never cancel
// the shared errgroup context and stall the rest of the pool.
type batchJob struct {
	run func()
}

// batchPipeline is the bounded-queue-plus-dispatcher-plus-worker-pool unit
// described at spec §2/§4.5/§5 as component C5: a single long-running
// dispatcher goroutine polls a bounded channel and hands batches to a
// fixed-size worker pool. Grounded on the teacher's `node/p2p_runtime.go`
// bounded read-loop-with-deadline shape, with the worker pool itself
// supplied by `golang.org/x/sync/errgroup.SetLimit` (spec §4.5 "Worker
// pool").
type batchPipeline struct {
	name string

	queue  chan *batchJob
	group  *errgroup.Group
	cancel context.CancelFunc
	logger Logger
}

// newBatchPipeline builds a queue of the given capacity, a worker pool
// bounded to workerCount, and starts its dispatcher goroutine.
func newBatchPipeline(name string, queueSize, workerCount int, logger Logger) *batchPipeline {
	ctx, cancel := context.WithCancel(context.Background())
	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(workerCount)
	p := &batchPipeline{
		name:   name,
		queue:  make(chan *batchJob, queueSize),
		group:  group,
		cancel: cancel,
		logger: logger,
	}
	go p.dispatchLoop(ctx)
	return p
}

// enqueue submits job to the bounded queue, blocking the caller while the
// queue is full (spec §8 "Back-pressure: ... the Q+1-th enqueue blocks").
// A cancelled ctx aborts the enqueue cooperatively and the submission
// never happens (spec §5 "Cancellation & timeouts").
func (p *batchPipeline) enqueue(ctx context.Context, job *batchJob) error {
	select {
	case p.queue <- job:
		return nil
	case <-ctx.Done():
		return wrapErr(KindCancellation, "enqueue cancelled", ctx.Err())
	}
}

// dispatchLoop is the single dispatcher thread: it polls the queue with a
// short timeout so it can recheck ctx between batches and exit promptly on
// shutdown (spec §4.5 "Polling uses a timeout so the dispatcher checks its
// running flag and exits promptly on shutdown"). Handing a batch to the
// pool via group.Go blocks once every worker is busy, which is this
// pipeline's fixed-size-pool behavior.
func (p *batchPipeline) dispatchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.queue:
			p.group.Go(func() error {
				job.run()
				return nil
			})
		case <-time.After(pipelinePollInterval):
		}
	}
}

// drainInto stops this pipeline from accepting further dispatch and moves
// every batch still sitting in its queue onto dst's queue, so no
// already-enqueued work is lost across an apply-settings transition (spec
// §4.5 "queues are drained into fresh bounded queues of the new size").
func (p *batchPipeline) drainInto(dst *batchPipeline) {
	p.cancel()
	for {
		select {
		case job := <-p.queue:
			dst.queue <- job
		default:
			return
		}
	}
}

// shutdown stops the dispatcher and waits up to pipelineShutdownGrace for
// the worker pool to drain in-flight batches, then abandons the wait
// (spec §4.5 "worker pools shut down (5-second soft shutdown followed by
// forced termination)"). Go has no mechanism to forcibly kill a running
// goroutine, so "forced termination" here means the shutdown caller stops
// waiting on it rather than that the goroutine is killed outright.
func (p *batchPipeline) shutdown() {
	p.cancel()
	waitDone := make(chan struct{})
	go func() {
		_ = p.group.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-time.After(pipelineShutdownGrace):
		if p.logger != nil {
			p.logger.Warn("pipeline shutdown grace period elapsed, forcing termination", "pipeline", p.name)
		}
	}
}
