package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/cloudvalet/valet/common"
)

// Theme is the color palette of the dashboard. Colors are ANSI
// 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	StatusRunning     lipgloss.Color
	StatusDeallocated lipgloss.Color
	StatusStopped     lipgloss.Color
	StatusUnknown     lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	ErrorForeground  lipgloss.Color
	BadgeBackground  lipgloss.Color
}

// DarkTheme is used when the dark mode preference is set
var DarkTheme = Theme{
	NormalText:         "252",
	FaintText:          "243",
	SelectedBackground: "236",
	SelectedForeground: "255",
	StatusRunning:      "78",
	StatusDeallocated:  "245",
	StatusStopped:      "214",
	StatusUnknown:      "141",
	HeaderForeground:   "75",
	BorderColor:        "238",
	HelpText:           "241",
	ErrorForeground:    "203",
	BadgeBackground:    "161",
}

// LightTheme is the default
var LightTheme = Theme{
	NormalText:         "235",
	FaintText:          "245",
	SelectedBackground: "253",
	SelectedForeground: "232",
	StatusRunning:      "28",
	StatusDeallocated:  "244",
	StatusStopped:      "166",
	StatusUnknown:      "55",
	HeaderForeground:   "25",
	BorderColor:        "250",
	HelpText:           "246",
	ErrorForeground:    "160",
	BadgeBackground:    "125",
}

// ThemeFor returns the theme matching the dark mode preference
func ThemeFor(darkMode bool) Theme {
	if darkMode {
		return DarkTheme
	}
	return LightTheme
}

// StateColor returns the color of a normalized VM state
func (theme Theme) StateColor(state common.VMState) lipgloss.Color {
	switch state {
	case common.VMStateRunning:
		return theme.StatusRunning
	case common.VMStateDeallocated:
		return theme.StatusDeallocated
	case common.VMStateStopped:
		return theme.StatusStopped
	}
	return theme.StatusUnknown
}
