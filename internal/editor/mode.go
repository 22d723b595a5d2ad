package editor

import (
	"fmt"
	"strings"
)

// Mode is the active tool.
type Mode int

const (
	ModeNumber Mode = iota
	ModeShape
	ModeText
	ModeEmoji
	ModeCrop
)

var modeNames = [...]string{"number", "shape", "text", "emoji", "crop"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode converts a tool name into a Mode.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == s {
			return Mode(i), nil
		}
	}
	return ModeNumber, fmt.Errorf("unknown mode %q", s)
}
