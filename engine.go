package cryptoengine

import (
	"hash"
	"sync"
)

// Engine is the facade over every cryptographic primitive the platform
// needs: message digests, self-serializable digests, Merkle-internal
// digests, running hashes, signature verification, and the batching/async
// pipelines layered on top of them (spec §1, §6). It owns the caching
// providers, the null-hash cache, and the worker-pool settings, and is
// safe for concurrent use.
type Engine struct {
	mu sync.RWMutex

	settings Settings
	logger   Logger

	digestProvider         *CachingProvider[digestInput, struct{}, Hash, hash.Hash, DigestType]
	selfHashProvider       *CachingProvider[SelfSerializable, struct{}, Hash, hash.Hash, DigestType]
	merkleInternalProvider *CachingProvider[merkleInternalInput, struct{}, Hash, hash.Hash, DigestType]
	runningHashProvider    *CachingProvider[runningHashInput, struct{}, Hash, hash.Hash, DigestType]
	verifier               *delegatingVerifier

	nullHashes nullHashCache

	digestFaults *faultHandler
	verifyFaults *faultHandler

	// digestPipeline and verifyPipeline are the two bounded-queue +
	// dispatcher + worker-pool pipelines described at spec §2/§4.5/§5
	// (component C5). They are rebuilt, not mutated, by ApplySettings.
	digestPipeline *batchPipeline
	verifyPipeline *batchPipeline
}

// New constructs an Engine from settings, validating it first (spec §6
// "new(settings)").
func New(settings Settings, logger Logger) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, wrapErr(KindIllegalArgument, "engine settings", err)
	}
	e := &Engine{
		settings:               settings,
		logger:                 logger,
		digestProvider:         newMessageDigestProvider(),
		selfHashProvider:       newSelfHashProvider(),
		merkleInternalProvider: newMerkleInternalProvider(),
		runningHashProvider:    newRunningHashProvider(),
		verifier:               newDelegatingVerifier(logger),
		nullHashes:             newNullHashCache(),
		digestFaults:           newFaultHandler(settings.FaultWindow, settings.FaultThreshold, logger),
		verifyFaults:           newFaultHandler(settings.FaultWindow, settings.FaultThreshold, logger),
	}
	e.digestPipeline = newBatchPipeline("digest", settings.CPUDigestQueueSize, settings.CPUDigestThreadCount, logger)
	e.verifyPipeline = newBatchPipeline("verify", settings.CPUVerifierQueueSize, settings.CPUVerifierThreadCount, logger)
	return e, nil
}

// digestPipelineState returns a consistent snapshot of the digest
// pipeline and its fault handler under the read lock, so a caller
// submitting a batch is insulated from a concurrent ApplySettings
// swapping either one out from under it (spec §5 "Thread safety per
// object": settings/queues/pools are monitor-protected during
// apply_settings).
func (e *Engine) digestPipelineState() (*batchPipeline, *faultHandler) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.digestPipeline, e.digestFaults
}

// verifyPipelineState is digestPipelineState's counterpart for the
// verification pipeline.
func (e *Engine) verifyPipelineState() (*batchPipeline, *faultHandler) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.verifyPipeline, e.verifyFaults
}

// Settings returns the engine's current settings.
func (e *Engine) Settings() Settings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.settings
}

// ApplySettings validates and swaps in new settings. Both pipelines are
// torn down and rebuilt atomically: fresh bounded queues and worker pools
// are built at the new sizes, whatever batches were still sitting in the
// old queues are drained into the new ones, and only then are the old
// pools given a 5-second soft-shutdown grace period before the swap is
// considered complete (spec §4.5 "Apply-settings transition"). Batches
// already handed to a worker keep running under the fault handler they
// were submitted with.
func (e *Engine) ApplySettings(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return wrapErr(KindIllegalArgument, "engine settings", err)
	}

	newDigestFaults := newFaultHandler(settings.FaultWindow, settings.FaultThreshold, e.logger)
	newVerifyFaults := newFaultHandler(settings.FaultWindow, settings.FaultThreshold, e.logger)
	newDigestPipeline := newBatchPipeline("digest", settings.CPUDigestQueueSize, settings.CPUDigestThreadCount, e.logger)
	newVerifyPipeline := newBatchPipeline("verify", settings.CPUVerifierQueueSize, settings.CPUVerifierThreadCount, e.logger)

	e.mu.Lock()
	oldDigestPipeline, oldVerifyPipeline := e.digestPipeline, e.verifyPipeline
	oldDigestPipeline.drainInto(newDigestPipeline)
	oldVerifyPipeline.drainInto(newVerifyPipeline)

	e.settings = settings
	e.digestFaults = newDigestFaults
	e.verifyFaults = newVerifyFaults
	e.digestPipeline = newDigestPipeline
	e.verifyPipeline = newVerifyPipeline
	e.mu.Unlock()

	oldDigestPipeline.shutdown()
	oldVerifyPipeline.shutdown()
	return nil
}
