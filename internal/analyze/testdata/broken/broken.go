package broken

//enumcodec:casing kebab
type Color int

const (
	_ Color = iota
	Red
	//enumcodec:alias "unterminated
	Green
	Crimson = Red
)

//enumcodec:casing snake
type Shape struct{ Sides int }

//enumcodec:casing lower
type Empty uint8

type Plain int

const PlainOne Plain = 1
