package cryptoengine

import "testing"

func TestSettingsValidateRejectsNonPositiveFields(t *testing.T) {
	cases := []func(*Settings){
		func(s *Settings) { s.CPUDigestThreadCount = 0 },
		func(s *Settings) { s.CPUVerifierThreadCount = 0 },
		func(s *Settings) { s.CPUDigestQueueSize = 0 },
		func(s *Settings) { s.CPUVerifierQueueSize = 0 },
		func(s *Settings) { s.FaultWindow = 0 },
		func(s *Settings) { s.FaultThreshold = 0 },
	}
	for _, mutate := range cases {
		s := DefaultSettings()
		mutate(&s)
		if err := s.Validate(); err == nil {
			t.Fatalf("expected settings %+v to fail validation", s)
		}
	}
}

func TestDefaultSettingsValidates(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings must validate, got %v", err)
	}
}

func TestEngineApplySettingsRejectsInvalid(t *testing.T) {
	e, err := New(DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	bad := DefaultSettings()
	bad.CPUDigestThreadCount = 0
	if err := e.ApplySettings(bad); err == nil {
		t.Fatal("expected ApplySettings to reject invalid settings")
	}
	if err := e.ApplySettings(DefaultSettings()); err != nil {
		t.Fatalf("expected valid settings to apply, got %v", err)
	}
}
