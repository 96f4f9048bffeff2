package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	crumbs   lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	warn     lipgloss.Style
	help     lipgloss.Style
	tile     lipgloss.Style
	selected lipgloss.Style
	expanded lipgloss.Style
	button   lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	tile := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(h)).Padding(0, 1)
	return &Palette{
		title:    NewBold(t),
		crumbs:   NewEm(h),
		ok:       NewBold(s),
		err:      NewBold(e),
		warn:     NewStyle(w),
		help:     NewEm(h),
		tile:     tile,
		selected: tile.BorderForeground(lipgloss.Color(t)).Bold(true),
		expanded: lipgloss.NewStyle().Foreground(lipgloss.Color(e)),
		button:   NewBold(t).Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(t)).Padding(0, 2),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
