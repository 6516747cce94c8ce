package app

import (
	core "keyenv/internal/core"
)

// ProviderStatus is one row of the status view.
type ProviderStatus struct {
	Descriptor core.Descriptor
	Value      string
	Source     core.Source
}

func (p ProviderStatus) Configured() bool { return p.Source != core.SourceNone }

// Key is the env key the value came from, or the canonical key when unset.
func (p ProviderStatus) Key() string {
	if p.Source == core.SourceAlias {
		return p.Descriptor.LegacyAliasKey
	}
	return p.Descriptor.CanonicalKey
}

// Status resolves every provider against the file.
func (s *Service) Status() ([]ProviderStatus, error) {
	m, err := s.Load()
	out := make([]ProviderStatus, 0, len(s.Descriptors))
	for _, d := range s.Descriptors {
		v, src := core.ResolveSource(m, d)
		out = append(out, ProviderStatus{Descriptor: d, Value: v, Source: src})
	}
	return out, err
}
