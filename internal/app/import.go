package app

import (
	"fmt"
	"log/slog"

	core "keyenv/internal/core"
	"keyenv/internal/providers"

	"github.com/joho/godotenv"
)

// ImportDotenv overlays the provider keys found in a dotenv file onto form.
// Canonical keys win over legacy aliases; unrelated keys are ignored.
// It returns the providers that were picked up.
func (s *Service) ImportDotenv(path string, form core.FormState) (core.FormState, []core.ProviderID, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return form, nil, fmt.Errorf("read dotenv %s: %w", path, err)
	}
	form = form.Clone()
	imported := core.FromMap(vars)
	ignored := 0
	for _, k := range imported.Keys() {
		if _, ok := providers.ByKey(k); !ok {
			ignored++
		}
	}
	slog.Debug("dotenv read", "path", path, "keys", imported.Len(), "ignored", ignored)
	var picked []core.ProviderID
	for _, d := range s.Descriptors {
		v := core.Resolve(imported, d)
		if v == "" {
			continue
		}
		form.Set(d.ID, v)
		picked = append(picked, d.ID)
	}
	return form, picked, nil
}
