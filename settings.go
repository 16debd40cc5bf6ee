package cryptoengine

import (
	"errors"
	"time"
)

// Settings configures the engine's async worker pools and queues (spec
// §4.5, §6 "apply_settings"). Grounded on the teacher's Config/
// DefaultConfig/ValidateConfig idiom in the now-adapted node/config.go.
type Settings struct {
	// CPUDigestThreadCount is the number of goroutines processing digest
	// batches.
	CPUDigestThreadCount int
	// CPUVerifierThreadCount is the number of goroutines processing
	// verification batches.
	CPUVerifierThreadCount int
	// CPUDigestQueueSize bounds the digest intake channel.
	CPUDigestQueueSize int
	// CPUVerifierQueueSize bounds the verification intake channel.
	CPUVerifierQueueSize int
	// ForceCPU is accepted and validated with the other settings, but the
	// engine has no non-CPU acceleration path, so it has no effect.
	ForceCPU bool
	// FaultWindow and FaultThreshold configure the worker pools' rolling
	// fault-rate monitor (spec §4.5 "continues processing subsequent
	// items" — degraded-state reporting rather than a hard stop).
	FaultWindow    time.Duration
	FaultThreshold int
}

// DefaultSettings returns the engine's out-of-the-box configuration.
func DefaultSettings() Settings {
	return Settings{
		CPUDigestThreadCount:   4,
		CPUVerifierThreadCount: 4,
		CPUDigestQueueSize:     256,
		CPUVerifierQueueSize:   256,
		ForceCPU:               false,
		FaultWindow:            time.Minute,
		FaultThreshold:         16,
	}
}

// Validate checks Settings for internal consistency, rejecting
// non-positive pool sizes and queue capacities (spec §4.5).
func (s Settings) Validate() error {
	if s.CPUDigestThreadCount <= 0 {
		return errors.New("cpu digest thread count must be > 0")
	}
	if s.CPUVerifierThreadCount <= 0 {
		return errors.New("cpu verifier thread count must be > 0")
	}
	if s.CPUDigestQueueSize <= 0 {
		return errors.New("cpu digest queue size must be > 0")
	}
	if s.CPUVerifierQueueSize <= 0 {
		return errors.New("cpu verifier queue size must be > 0")
	}
	if s.FaultWindow <= 0 {
		return errors.New("fault window must be > 0")
	}
	if s.FaultThreshold <= 0 {
		return errors.New("fault threshold must be > 0")
	}
	return nil
}
