package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/dirtab/internal/config"
)

// Theme holds the colors used across the view.
type Theme struct {
	HeaderFG   color.Color
	HeaderBG   color.Color
	SelectedFG color.Color
	SelectedBG color.Color
	PinnedBG   color.Color
	Accent     color.Color
	Muted      color.Color
}

// ThemeFromConfig converts configured color strings. Empty entries stay nil
// so the components fall back to their own defaults.
func ThemeFromConfig(tc config.ThemeConfig) Theme {
	c := func(s string) color.Color {
		if s == "" {
			return nil
		}
		return lipgloss.Color(s)
	}
	return Theme{
		HeaderFG:   c(tc.HeaderFG),
		HeaderBG:   c(tc.HeaderBG),
		SelectedFG: c(tc.SelectedFG),
		SelectedBG: c(tc.SelectedBG),
		PinnedBG:   c(tc.PinnedBG),
		Accent:     c(tc.Accent),
		Muted:      c(tc.Muted),
	}
}

type viewStyles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
	accent  lipgloss.Style
	errText lipgloss.Style
	menuSel lipgloss.Style
}

func newViewStyles(t Theme, noColor bool) viewStyles {
	if noColor {
		p := lipgloss.NewStyle()
		return viewStyles{title: p, label: p, muted: p, accent: p, errText: p, menuSel: p}
	}
	or := func(c color.Color, def string) color.Color {
		if c != nil {
			return c
		}
		return lipgloss.Color(def)
	}
	accent := or(t.Accent, "214")
	muted := or(t.Muted, "244")
	return viewStyles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(or(t.HeaderFG, "12")),
		label:   lipgloss.NewStyle().Bold(true),
		muted:   lipgloss.NewStyle().Foreground(muted),
		accent:  lipgloss.NewStyle().Foreground(accent),
		errText: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		menuSel: lipgloss.NewStyle().Foreground(or(t.SelectedFG, "230")).Background(or(t.SelectedBG, "62")),
	}
}
