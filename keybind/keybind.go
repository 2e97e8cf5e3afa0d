// Package keybind describes key bindings and matches them against tcell key
// events. Keys are written like "j", "G", "ctrl+f", "shift+tab" or "pgdn".
package keybind

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Keybind is a set of equivalent keys with the help text describing them.
type Keybind struct {
	keys     []string
	help     Help
	disabled bool
}

type Help struct {
	Key  string
	Desc string
}

type Option func(*Keybind)

func NewKeybind(options ...Option) Keybind {
	var k Keybind
	for _, option := range options {
		option(&k)
	}
	return k
}

func WithKeys(keys ...string) Option {
	return func(k *Keybind) {
		k.SetKeys(keys...)
	}
}

func WithHelp(key, desc string) Option {
	return func(k *Keybind) {
		k.SetHelp(key, desc)
	}
}

// WithDisabled creates the keybind disabled.
func WithDisabled() Option {
	return func(k *Keybind) {
		k.disabled = true
	}
}

func (k Keybind) Keys() []string {
	return k.keys
}

// SetKeys replaces the keys. Keys that cannot be parsed are dropped.
func (k *Keybind) SetKeys(keys ...string) {
	k.keys = nil
	for _, key := range keys {
		if s := normalizeKey(key); s != "" {
			k.keys = append(k.keys, s)
		}
	}
}

func (k Keybind) Help() Help {
	return k.help
}

func (k *Keybind) SetHelp(key, desc string) {
	k.help = Help{Key: key, Desc: desc}
}

// Enabled reports whether the keybind matches events and shows up in help.
func (k Keybind) Enabled() bool {
	return !k.disabled && len(k.keys) > 0
}

func (k *Keybind) SetEnabled(enabled bool) {
	k.disabled = !enabled
}

// Matches reports whether event triggers any of the enabled keybinds.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	if event == nil {
		return false
	}
	key := eventChord(event).String()
	for _, k := range keybinds {
		if k.Enabled() && slices.Contains(k.keys, key) {
			return true
		}
	}
	return false
}

type modifiers uint8

const (
	modCtrl modifiers = 1 << iota
	modAlt
	modShift
	modMeta
)

// modifierNames is also the order modifiers are written in.
var modifierNames = []struct {
	mod  modifiers
	name string
}{
	{modCtrl, "ctrl"},
	{modAlt, "alt"},
	{modShift, "shift"},
	{modMeta, "meta"},
}

// chord is a key with its modifiers. Bindings and events are compared in
// their String form.
type chord struct {
	mods modifiers
	key  string
}

func (c chord) String() string {
	if c.key == "" {
		return ""
	}
	var b strings.Builder
	for _, m := range modifierNames {
		if c.mods&m.mod != 0 {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(c.key)
	return b.String()
}

func normalizeKey(key string) string {
	return parseChord(key).String()
}

func parseChord(s string) chord {
	var c chord
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "":
		case "ctrl", "control":
			c.mods |= modCtrl
		case "alt":
			c.mods |= modAlt
		case "shift":
			c.mods |= modShift
		case "meta":
			c.mods |= modMeta
		default:
			p := parseKey(part)
			c.mods |= p.mods
			c.key = p.key
		}
	}

	switch {
	case c.key == "":
		return chord{}
	case c.key == "backtab":
		c.mods |= modShift
		c.key = "tab"
	case c.mods != 0 && utf8.RuneCountInString(c.key) == 1:
		// With a modifier the case of a letter is carried by shift.
		c.key = strings.ToLower(c.key)
	}
	return c
}

var keyAliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"pageup":   "pgup",
	"pagedown": "pgdn",
}

// parseKey parses the key part of a chord, also accepting the forms tcell
// uses in key names ("Rune[j]", "Ctrl-X").
func parseKey(key string) chord {
	lower := strings.ToLower(key)
	switch {
	case strings.HasPrefix(key, "Rune[") && strings.HasSuffix(key, "]") && len(key) > len("Rune[]"):
		return chord{key: key[len("Rune[") : len(key)-1]}
	case keyAliases[lower] != "":
		return chord{key: keyAliases[lower]}
	case strings.HasPrefix(lower, "ctrl-") && len(lower) > len("ctrl-"):
		return chord{mods: modCtrl, key: lower[len("ctrl-"):]}
	case utf8.RuneCountInString(key) == 1:
		return chord{key: key}
	}
	return chord{key: lower}
}

// keyNames come before the control range because tab, enter and backspace
// share its codes.
var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "tab",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyDelete:     "delete",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyInsert:     "insert",
}

func eventChord(event *tcell.EventKey) chord {
	key := event.Key()
	c := chord{key: keyNames[key]}
	switch {
	case c.key != "":
	case key == tcell.KeyRune:
		c.key = string(event.Rune())
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		return chord{mods: modCtrl, key: string(rune('a' + (key - tcell.KeyCtrlA)))}
	default:
		return parseChord(event.Name())
	}

	mods := event.Modifiers()
	if mods&tcell.ModCtrl != 0 {
		c.mods |= modCtrl
	}
	if mods&tcell.ModAlt != 0 {
		c.mods |= modAlt
	}
	// The case of a rune already carries shift.
	if (mods&tcell.ModShift != 0 && key != tcell.KeyRune) || key == tcell.KeyBacktab {
		c.mods |= modShift
	}
	if mods&tcell.ModMeta != 0 {
		c.mods |= modMeta
	}
	return c
}
