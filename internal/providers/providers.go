package providers

import (
	"fmt"
	"strings"

	core "keyenv/internal/core"
)

const (
	canonicalSuffix = "_API_KEY_SECRET"
	legacySuffix    = "_API_KEY"
)

func descriptor(id core.ProviderID, name, env, placeholder, prefix string) core.Descriptor {
	return core.Descriptor{
		ID:             id,
		DisplayName:    name,
		CanonicalKey:   env + canonicalSuffix,
		LegacyAliasKey: env + legacySuffix,
		Placeholder:    placeholder,
		RequiredPrefix: prefix,
	}
}

var registry = []core.Descriptor{
	descriptor(core.ProviderAnthropic, "Anthropic Claude", "ANTHROPIC", "e.g. sk-ant-...", "sk-ant-"),
	descriptor(core.ProviderOpenAI, "OpenAI GPT", "OPENAI", "e.g. sk-...", "sk-"),
	descriptor(core.ProviderDeepSeek, "DeepSeek", "DEEPSEEK", "e.g. sk-...", "sk-"),
	descriptor(core.ProviderGemini, "Google Gemini", "GEMINI", "e.g. AIzaSy...", "AIza"),
	descriptor(core.ProviderSiliconFlow, "SiliconFlow", "SILICONFLOW", "e.g. sk-...", ""),
	descriptor(core.ProviderOpenRouter, "OpenRouter", "OPENROUTER", "e.g. sk-or-...", "sk-or-"),
	descriptor(core.ProviderSuanlema, "Suanlema", "SUANLEMA", "e.g. slm_...", ""),
}

// All returns the registry in display order.
func All() []core.Descriptor {
	out := make([]core.Descriptor, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a provider by id (case-insensitive).
func Lookup(id string) (core.Descriptor, error) {
	want := core.ProviderID(strings.ToLower(strings.TrimSpace(id)))
	for _, d := range registry {
		if d.ID == want {
			return d, nil
		}
	}
	return core.Descriptor{}, fmt.Errorf("unknown provider: %s", id)
}

// ByKey finds the provider owning an env key, canonical or legacy.
func ByKey(key string) (core.Descriptor, bool) {
	for _, d := range registry {
		if key == d.CanonicalKey || (d.LegacyAliasKey != "" && key == d.LegacyAliasKey) {
			return d, true
		}
	}
	return core.Descriptor{}, false
}

// IDs lists provider ids for usage strings.
func IDs() []string {
	out := make([]string, 0, len(registry))
	for _, d := range registry {
		out = append(out, string(d.ID))
	}
	return out
}
