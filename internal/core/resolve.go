package core

type Source int

const (
	SourceNone Source = iota
	SourceCanonical
	SourceAlias
)

func (s Source) String() string {
	switch s {
	case SourceCanonical:
		return "canonical"
	case SourceAlias:
		return "alias"
	default:
		return "none"
	}
}

// Resolve returns the stored value for d: canonical key first, then the legacy alias.
func Resolve(m *Mapping, d Descriptor) string {
	v, _ := ResolveSource(m, d)
	return v
}

// ResolveSource is Resolve plus the key that supplied the value.
func ResolveSource(m *Mapping, d Descriptor) (string, Source) {
	if v, ok := m.Get(d.CanonicalKey); ok {
		if e := d.Effective(v); e != "" {
			return e, SourceCanonical
		}
	}
	if d.LegacyAliasKey != "" {
		if v, ok := m.Get(d.LegacyAliasKey); ok {
			if e := d.Effective(v); e != "" {
				return e, SourceAlias
			}
		}
	}
	return "", SourceNone
}
