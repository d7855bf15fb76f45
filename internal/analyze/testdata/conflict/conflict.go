package conflict

import "strconv"

//enumcodec:casing kebab
type Level int

const (
	LevelLow Level = iota
	LevelHigh
)

func (l Level) String() string {
	return "Level(" + strconv.Itoa(int(l)) + ")"
}

//enumcodec:default_variant ModeA
type Mode string

const (
	ModeA Mode = "a"
	ModeB Mode = "b"
)

func ParseMode(s string) (Mode, error) {
	return Mode(s), nil
}

func DefaultMode() Mode {
	return ModeA
}

//enumcodec:serialization_hook
type Size uint8

const (
	SizeSmall Size = iota
	SizeLarge
)
