package core

import (
	"strings"

	"keyenv/internal/util"
)

func mask(s string) string {
	if s == "" {
		return "(empty)"
	}
	return util.Mask(s)
}

// Diff renders the changes of a reconciliation with secrets masked.
func Diff(changes []Change) string {
	if len(changes) == 0 {
		return "Diff: (no change)\n"
	}
	var b strings.Builder
	b.WriteString("Diff:\n")
	for _, c := range changes {
		switch c.Kind {
		case ChangeAdd:
			b.WriteString("  + " + c.Key + "=" + mask(c.New) + "\n")
		case ChangeUpdate:
			b.WriteString("  ~ " + c.Key + ": " + mask(c.Old) + " -> " + mask(c.New) + "\n")
		case ChangeDelete:
			b.WriteString("  - " + c.Key + "\n")
		}
	}
	return b.String()
}
