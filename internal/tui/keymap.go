package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/bayanflow/bayan-flow/internal/i18n"
)

// keyMap defines global key bindings used across the TUI. Help text is
// localized, so the map is rebuilt when the language changes.
type keyMap struct {
	Quit         key.Binding
	Help         key.Binding
	Select       key.Binding
	Back         key.Binding
	StepForward  key.Binding
	StepBackward key.Binding
	Play         key.Binding
	Reset        key.Binding
	NewData      key.Binding
	Mode         key.Binding
	Speed        key.Binding
	Sound        key.Binding
	Language     key.Binding
	Flow         key.Binding
}

func newKeyMap(tr *i18n.Translator) keyMap {
	t := func(k string) string { return tr.T(k, nil) }
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", t("controls.quit")),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", t("controls.help")),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", t("settings.algorithm")),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", t("controls.back")),
		),
		StepForward: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", t("controls.stepForward")),
		),
		StepBackward: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", t("controls.stepBackward")),
		),
		Play: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", t("controls.play")+"/"+t("controls.pause")),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", t("controls.reset")),
		),
		NewData: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", t("controls.newArray")),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", t("settings.mode")),
		),
		Speed: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", t("settings.speed")),
		),
		Sound: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", t("settings.sound")),
		),
		Language: key.NewBinding(
			key.WithKeys("l", "L"),
			key.WithHelp("l", t("settings.language")),
		),
		Flow: key.NewBinding(
			key.WithKeys("f", "F"),
			key.WithHelp("f", t("flow.on")),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.StepBackward, k.StepForward, k.Play, k.Flow, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.StepBackward, k.StepForward, k.Play, k.Reset},
		{k.NewData, k.Mode, k.Speed, k.Sound},
		{k.Language, k.Flow, k.Back, k.Quit},
	}
}
