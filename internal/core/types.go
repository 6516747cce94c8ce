package core

import "strings"

type ProviderID string

const (
	ProviderAnthropic   ProviderID = "anthropic"
	ProviderOpenAI      ProviderID = "openai"
	ProviderDeepSeek    ProviderID = "deepseek"
	ProviderGemini      ProviderID = "gemini"
	ProviderSiliconFlow ProviderID = "siliconflow"
	ProviderOpenRouter  ProviderID = "openrouter"
	ProviderSuanlema    ProviderID = "suanlema"
)

// Descriptor describes one provider field of the form.
type Descriptor struct {
	ID             ProviderID
	DisplayName    string
	CanonicalKey   string
	LegacyAliasKey string // optional, read-only
	Placeholder    string
	RequiredPrefix string // optional
}

// IsPlaceholder reports whether v is blank or the descriptor's placeholder text.
func (d Descriptor) IsPlaceholder(v string) bool {
	t := strings.TrimSpace(v)
	return t == "" || (d.Placeholder != "" && t == strings.TrimSpace(d.Placeholder))
}

// Effective returns the trimmed value, or "" when v means "not provided".
func (d Descriptor) Effective(v string) string {
	if d.IsPlaceholder(v) {
		return ""
	}
	return strings.TrimSpace(v)
}

// FormState holds what the user has typed per provider.
type FormState struct {
	values map[ProviderID]string
}

func NewFormState() FormState {
	return FormState{values: map[ProviderID]string{}}
}

// FormFromMapping pre-fills a form with the resolved value of every descriptor.
func FormFromMapping(m *Mapping, descriptors []Descriptor) FormState {
	f := NewFormState()
	for _, d := range descriptors {
		f.Set(d.ID, Resolve(m, d))
	}
	return f
}

func (f *FormState) Set(id ProviderID, v string) {
	if f.values == nil {
		f.values = map[ProviderID]string{}
	}
	f.values[id] = v
}

func (f FormState) Get(id ProviderID) string { return f.values[id] }

// IsPlaceholder reports whether the field for d is unfilled.
func (f FormState) IsPlaceholder(d Descriptor) bool { return d.IsPlaceholder(f.values[d.ID]) }

// Effective is the value that would be persisted for d.
func (f FormState) Effective(d Descriptor) string { return d.Effective(f.values[d.ID]) }

func (f FormState) Clone() FormState {
	out := NewFormState()
	for k, v := range f.values {
		out.values[k] = v
	}
	return out
}
