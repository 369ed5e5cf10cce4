package header

// Break represents the line break used by a message.
type Break string

// Line breaks that may be used with a message. HTTP bodies normally use CRLF.
const (
	CRLF Break = "\x0d\x0a" // \r\n - network line break
	LF   Break = "\x0a"     // \n - Unix line break
	CR   Break = "\x0d"     // \r - old Mac line break
)

// String returns the break as a string.
func (b Break) String() string {
	return string(b)
}

// Bytes returns the break as a slice of bytes.
func (b Break) Bytes() []byte {
	return []byte(b)
}

// Name returns a short human readable name for the break.
func (b Break) Name() string {
	switch b {
	case CRLF:
		return "crlf"
	case LF:
		return "lf"
	case CR:
		return "cr"
	default:
		return "custom"
	}
}

// ParseBreak is the inverse of Name. It returns false for unknown names.
func ParseBreak(name string) (Break, bool) {
	switch name {
	case "crlf", "CRLF":
		return CRLF, true
	case "lf", "LF":
		return LF, true
	case "cr", "CR":
		return CR, true
	default:
		return "", false
	}
}
