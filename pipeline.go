package cryptoengine

import "context"

// DigestBatchAsync enqueues items onto the digest pipeline's bounded
// queue and returns a Future resolved once a single pool worker has
// processed every item in submission order (spec §4.5, §5 "within a
// batch, items are processed in their submitted order by a single
// worker", §6 "digest_batch"). enqueue blocks while the queue is full and
// aborts cooperatively if ctx is cancelled first. A single item's fault
// is recovered and never stops the rest of the batch (spec §7); the batch
// future still resolves, carrying the aggregated per-item faults (nil if
// none).
func (e *Engine) DigestBatchAsync(ctx context.Context, items []*DigestWorkItem) *Future[[]error] {
	batch := NewFuture[[]error]()
	pipeline, faults := e.digestPipelineState()
	job := &batchJob{run: func() {
		errs := make([]error, len(items))
		for i, item := range items {
			item := item
			errs[i] = faults.recoverInto("digest batch item", func() error {
				h, err := e.DigestSync(item.Payload, item.Offset, item.Length, item.DigestType)
				item.Result = h
				item.Err = err
				item.future.Resolve(h, err)
				return err
			})
		}
		batch.Resolve(errs, aggregateFaults(errs))
	}}
	if err := pipeline.enqueue(ctx, job); err != nil {
		batch.Resolve(nil, err)
	}
	return batch
}

// VerifyBatchAsync mirrors DigestBatchAsync for signature verification
// work items (spec §4.5, §5, §6 "verify_batch").
func (e *Engine) VerifyBatchAsync(ctx context.Context, items []*SignatureWorkItem) *Future[[]error] {
	batch := NewFuture[[]error]()
	pipeline, faults := e.verifyPipelineState()
	job := &batchJob{run: func() {
		errs := make([]error, len(items))
		for i, item := range items {
			item := item
			errs[i] = faults.recoverInto("verify batch item", func() error {
				sig, err := NewSignature(item.SignatureType, item.signature())
				if err != nil {
					item.Status = VerificationError
					item.Err = err
					item.future.Resolve(false, err)
					return err
				}
				ok, err := e.VerifySync(item.message(), sig, item.publicKey())
				if err != nil {
					item.Status = VerificationError
					item.Err = err
					item.future.Resolve(false, err)
					return err
				}
				if ok {
					item.Status = VerificationValid
				} else {
					item.Status = VerificationInvalid
				}
				item.future.Resolve(ok, nil)
				return nil
			})
		}
		batch.Resolve(errs, aggregateFaults(errs))
	}}
	if err := pipeline.enqueue(ctx, job); err != nil {
		batch.Resolve(nil, err)
	}
	return batch
}

// DigestAsync is the single-item convenience entry point: it wraps payload
// in a one-item batch, submits it through the same bounded pipeline as
// DigestBatchAsync, and returns a wrapping future that awaits the batch
// future before reading the item's own result slot (spec §5
// "Backpressure": "the item is wrapped internally and the returned future
// is a wrapping future that, on get, first awaits the batch future and
// then reads the result slot"). A background context is used for the
// enqueue since this entry point offers no cancellation handle of its
// own; callers needing cooperative cancellation should build a
// DigestWorkItem and call DigestBatchAsync directly.
func (e *Engine) DigestAsync(payload []byte, offset, length int, digestType DigestType) *Future[Hash] {
	item := newDigestWorkItem(payload, offset, length, digestType)
	batch := e.DigestBatchAsync(context.Background(), []*DigestWorkItem{item})
	wrapped := NewFuture[Hash]()
	go func() {
		ctx := context.Background()
		if _, err := batch.Wait(ctx); err != nil {
			wrapped.Resolve(Hash{}, err)
			return
		}
		h, err := item.Future().Wait(ctx)
		wrapped.Resolve(h, err)
	}()
	return wrapped
}

// VerifyAsync is the single-item convenience entry point for signature
// verification, mirroring DigestAsync (spec §5 "async(data, sig, pk,
// type) convenience entry points").
func (e *Engine) VerifyAsync(data []byte, sigOff, sigLen, pubOff, pubLen, msgOff, msgLen int, sigType SignatureType) *Future[bool] {
	item := newSignatureWorkItem(data, sigOff, sigLen, pubOff, pubLen, msgOff, msgLen, sigType)
	batch := e.VerifyBatchAsync(context.Background(), []*SignatureWorkItem{item})
	wrapped := NewFuture[bool]()
	go func() {
		ctx := context.Background()
		if _, err := batch.Wait(ctx); err != nil {
			wrapped.Resolve(false, err)
			return
		}
		ok, err := item.Future().Wait(ctx)
		wrapped.Resolve(ok, err)
	}()
	return wrapped
}
