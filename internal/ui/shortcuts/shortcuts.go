// Package shortcuts maps keyboard input to timer commands.
package shortcuts

import "strings"

// Action is a timer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionToggle
	ActionReset
)

// Commands is the subset of the driver that shortcuts control.
type Commands interface {
	Toggle()
	Reset()
}

// Resolve maps a key name to an action. Space toggles the countdown and R resets it.
func Resolve(key string) Action {
	switch strings.ToLower(key) {
	case " ", "space":
		return ActionToggle
	case "r":
		return ActionReset
	default:
		return ActionNone
	}
}

// Dispatch runs the action bound to key and reports whether one was found.
func Dispatch(key string, commands Commands) bool {
	switch Resolve(key) {
	case ActionToggle:
		commands.Toggle()
	case ActionReset:
		commands.Reset()
	default:
		return false
	}
	return true
}
