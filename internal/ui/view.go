package ui

import (
	"fmt"
	"strings"

	"keyenv/internal/util"
	verinfo "keyenv/internal/version"
)

func (m model) View() string {
	return m.renderTop() + "\n" + m.renderTable() + m.renderDetail() + "\n" + m.help()
}

func (m model) renderTop() string {
	name := verinfo.Name
	if name == "" {
		name = "keyenv"
	}
	ver := verinfo.Version
	if ver == "" {
		ver = "dev"
	}
	leftRaw := name + " " + ver
	left := styleHeader.Render(name) + " " + styleMuted.Render(ver)
	st := m.status
	stStyled := styleStatusOK.Render(st)
	if m.statusErr {
		stStyled = styleStatusErr.Render(st)
	}
	rightRaw := "Status: " + st
	sep := " | "
	if m.width > 0 && runeLen(leftRaw+sep+rightRaw) > m.width {
		avail := m.width - runeLen("Status: ")
		if avail < 8 {
			avail = 8
		}
		short := styleStatusOK.Render(truncate(st, avail))
		if m.statusErr {
			short = styleStatusErr.Render(truncate(st, avail))
		}
		return left + "\n" + "Status: " + short
	}
	return left + sep + "Status: " + stStyled
}

func runeLen(s string) int { return len([]rune(s)) }

func (m model) computeWidths() (wName, wKey, wValue int) {
	wName, wKey = 22, 30
	minValue := 16
	// left bar+space (2) + 2 mids (" │ ", 6) + trailing space+right bar (2)
	overhead := 10
	target := int(float64(m.width) * 0.8)
	if floor := wName + wKey + overhead + minValue; target < floor {
		target = floor
	}
	wValue = target - wName - wKey - overhead
	return
}

func (m model) renderTable() string {
	wName, wKey, wValue := m.computeWidths()
	widths := []int{wName, wKey, wValue}
	seg := func(w int) string { return strings.Repeat("─", w+2) }
	border := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(left)
		for i, w := range widths {
			b.WriteString(seg(w))
			if i < len(widths)-1 {
				b.WriteString(mid)
			} else {
				b.WriteString(right)
			}
		}
		return b.String() + "\n"
	}

	var out strings.Builder
	out.WriteString(border("╭", "┬", "╮"))
	out.WriteString(fmt.Sprintf("│ %s │ %s │ %s │\n",
		styleGroupTitle.Render(fmt.Sprintf("%-*s", wName, "Provider")),
		fmt.Sprintf("%-*s", wKey, "Key"),
		fmt.Sprintf("%-*s", wValue, "Value")))
	out.WriteString(border("├", "┼", "┤"))
	for i, d := range m.descs {
		v := m.inputs[i].Value()
		nameCell := fmt.Sprintf("%-*s", wName, truncate(fmt.Sprintf("[%d] %s", i+1, d.DisplayName), wName))
		keyCell := fmt.Sprintf("%-*s", wKey, truncate(d.CanonicalKey, wKey))
		valRaw := "(not set)"
		if !d.IsPlaceholder(v) {
			valRaw = util.Mask(d.Effective(v))
			if m.reveal {
				valRaw = d.Effective(v)
			}
		}
		valCell := fmt.Sprintf("%-*s", wValue, truncate(valRaw, wValue))
		switch {
		case i == m.active:
			nameCell = styleSelected.Render(nameCell)
			keyCell = styleSelected.Render(keyCell)
			valCell = styleSelected.Render(valCell)
		case d.IsPlaceholder(v):
			valCell = styleMuted.Render(valCell)
		default:
			valCell = styleGreen.Render(valCell)
		}
		out.WriteString(fmt.Sprintf("│ %s │ %s │ %s │\n", nameCell, keyCell, valCell))
	}
	out.WriteString(border("╰", "┴", "╯"))
	return out.String()
}

func (m model) renderDetail() string {
	d := m.descs[m.active]
	var b strings.Builder
	b.WriteString(styleHeader.Render("\nEdit") + "\n")
	b.WriteString(fmt.Sprintf("Provider: %s  (%s)\n", d.DisplayName, d.CanonicalKey))
	if d.LegacyAliasKey != "" {
		b.WriteString(styleMuted.Render("also read from "+d.LegacyAliasKey) + "\n")
	}
	b.WriteString("Key: " + m.inputs[m.active].View() + "\n")
	b.WriteString(fmt.Sprintf("File: %s\n", m.svc.Path))
	if !m.svc.ScriptExists() {
		b.WriteString(styleMuted.Render("startup script missing: "+m.svc.Launcher.Script) + "\n")
	}
	if m.m == modeConfirmEmpty {
		b.WriteString("\nConfirm Save:\n")
		b.WriteString("No API keys are filled in. Saving will clear every key from the file.\n")
		b.WriteString("Press 'y' to save anyway, 'n' or 'Esc' to cancel.\n")
	}
	return b.String()
}

func (m model) help() string {
	var b strings.Builder
	key := func(k, label string) {
		b.WriteString(styleKey.Render(k))
		b.WriteString(" " + label + "  ")
	}
	switch m.m {
	case modeConfirmEmpty:
		b.WriteString("Save empty file: ")
		key("[y]", "Yes")
		key("[n/Esc]", "Cancel")
		return strings.TrimRight(b.String(), " ")
	case modeLaunching:
		b.WriteString(styleMuted.Render("closing..."))
		return b.String()
	}
	b.WriteString("Providers: ")
	key("[↑/↓/Tab]", "Move")
	key("[Ctrl+U]", "Clear")
	key("[Ctrl+E]", "Show/Hide")
	b.WriteString("\nActions: ")
	key("[Ctrl+S]", "Save")
	key("[Enter/Ctrl+L]", "Save & Launch")
	key("[Ctrl+R]", "Reload")
	key("[Esc]", "Quit")
	return strings.TrimRight(b.String(), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
