package interactive

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the set of key bindings the driver matches incoming tea.KeyMsg
// events against. Navigation keys are arrows/home/end/page only — letters
// are reserved for typing into the search box, the same constraint
// sidecar's own content-search mode documents for itself.
type KeyMap struct {
	Quit             key.Binding
	Back             key.Binding
	EnterDetail      key.Binding
	EnterSession     key.Binding
	CycleRole        key.Binding
	ToggleTruncation key.Binding
	CopyContent      key.Binding
	CopyJSON         key.Binding
	Reload           key.Binding
	Help             key.Binding
	Up               key.Binding
	Down             key.Binding
	Home             key.Binding
	End              key.Binding
	PageUp           key.Binding
	PageDown         key.Binding
	HalfPageUp       key.Binding
	HalfPageDown     key.Binding
	Backspace        key.Binding
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:             key.NewBinding(key.WithKeys("ctrl+c")),
		Back:             key.NewBinding(key.WithKeys("esc")),
		EnterDetail:      key.NewBinding(key.WithKeys("enter")),
		EnterSession:     key.NewBinding(key.WithKeys("right")),
		CycleRole:        key.NewBinding(key.WithKeys("tab")),
		ToggleTruncation: key.NewBinding(key.WithKeys("ctrl+t")),
		CopyContent:      key.NewBinding(key.WithKeys("ctrl+y", "c")),
		CopyJSON:         key.NewBinding(key.WithKeys("j")),
		Reload:           key.NewBinding(key.WithKeys("r")),
		Help:             key.NewBinding(key.WithKeys("?")),
		Up:               key.NewBinding(key.WithKeys("up")),
		Down:             key.NewBinding(key.WithKeys("down")),
		Home:             key.NewBinding(key.WithKeys("home")),
		End:              key.NewBinding(key.WithKeys("end")),
		PageUp:           key.NewBinding(key.WithKeys("pgup")),
		PageDown:         key.NewBinding(key.WithKeys("pgdown")),
		HalfPageUp:       key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown:     key.NewBinding(key.WithKeys("ctrl+d")),
		Backspace:        key.NewBinding(key.WithKeys("backspace")),
	}
}

// ApplyOverrides rebinds named actions from a config-supplied map of
// action name -> key string, leaving unnamed actions at their default.
// Unknown action names are ignored: a typo in a hand-edited config file
// should not prevent the program from starting.
func (k *KeyMap) ApplyOverrides(overrides map[string]string) {
	fields := map[string]*key.Binding{
		"quit":              &k.Quit,
		"back":              &k.Back,
		"enterDetail":       &k.EnterDetail,
		"enterSession":      &k.EnterSession,
		"cycleRole":         &k.CycleRole,
		"toggleTruncation":  &k.ToggleTruncation,
		"copyContent":       &k.CopyContent,
		"copyJSON":          &k.CopyJSON,
		"reload":            &k.Reload,
		"help":              &k.Help,
		"up":                &k.Up,
		"down":              &k.Down,
		"home":              &k.Home,
		"end":               &k.End,
		"pageUp":            &k.PageUp,
		"pageDown":          &k.PageDown,
		"halfPageUp":        &k.HalfPageUp,
		"halfPageDown":      &k.HalfPageDown,
	}
	for name, value := range overrides {
		binding, ok := fields[name]
		if !ok || value == "" {
			continue
		}
		binding.SetKeys(value)
	}
}
