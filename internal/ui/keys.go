package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chrissbarr/pixelclock/internal/input"
)

// A terminal reports presses but not releases, so long presses and holds
// get keys of their own.
type keyMap struct {
	Mode       key.Binding
	Left       key.Binding
	Right      key.Binding
	Select     key.Binding
	Back       key.Binding
	LeftLong   key.Binding
	RightLong  key.Binding
	LeftHold   key.Binding
	RightHold  key.Binding
	ModeLong   key.Binding
	Pause      key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Help       key.Binding
	Quit       key.Binding
	buttonKeys []buttonKey
}

type buttonKey struct {
	binding *key.Binding
	button  input.Button
	event   input.Event
}

func defaultKeyMap() *keyMap {
	k := &keyMap{
		Mode: key.NewBinding(
			key.WithKeys("m", "tab"),
			key.WithHelp("m", "mode"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→", "left/right"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "back"),
		),
		LeftLong: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("shift+←/→", "long press"),
		),
		RightLong: key.NewBinding(
			key.WithKeys("shift+right", "L"),
		),
		LeftHold: key.NewBinding(
			key.WithKeys("alt+left"),
			key.WithHelp("alt+←/→", "hold"),
		),
		RightHold: key.NewBinding(
			key.WithKeys("alt+right"),
		),
		ModeLong: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "long mode"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause audio"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "volume"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	k.buttonKeys = []buttonKey{
		{&k.Mode, input.Mode, input.Tap},
		{&k.ModeLong, input.Mode, input.LongPress},
		{&k.Left, input.Left, input.Tap},
		{&k.Right, input.Right, input.Tap},
		{&k.Select, input.Select, input.Tap},
		{&k.Back, input.Select, input.LongPress},
		{&k.LeftLong, input.Left, input.LongPress},
		{&k.RightLong, input.Right, input.LongPress},
		{&k.LeftHold, input.Left, input.Hold},
		{&k.RightHold, input.Right, input.Hold},
	}
	return k
}

// button maps a key to the button event it stands for.
func (k *keyMap) button(msg tea.KeyMsg) (input.Button, input.Event, bool) {
	for _, bk := range k.buttonKeys {
		if key.Matches(msg, *bk.binding) {
			return bk.button, bk.event, true
		}
	}
	return 0, 0, false
}

func (k *keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Left, k.Select, k.Back, k.Help, k.Quit}
}

func (k *keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Mode, k.ModeLong, k.Left, k.Select, k.Back},
		{k.LeftLong, k.LeftHold, k.Pause, k.VolumeUp, k.Help, k.Quit},
	}
}
