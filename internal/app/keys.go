package app

import "github.com/nhle/meeting-tracker/internal/keys"

// KeyMap is the key binding set shared by the shell and its panels.
type KeyMap = keys.KeyMap

// DefaultKeyMap delegates to keys.DefaultKeyMap.
func DefaultKeyMap() *KeyMap {
	return keys.DefaultKeyMap()
}
