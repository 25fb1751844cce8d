package protocol

import "strconv"

const (
	// MaxLineLen bounds every wire line, terminator included.
	MaxLineLen = 79

	// NotFoundMarker is the mapper's whole-line reply for an unknown name.
	NotFoundMarker = ";"

	// TerminalKeyword asks a tower to dump its visit log and hang up.
	TerminalKeyword = "log"

	// LogEndMarker closes a tower's visit-log dump.
	LogEndMarker = "."
)

// ValidMessage reports whether a raw received line, terminator included, may
// travel on the wire: newline-terminated, non-empty, within MaxLineLen, and
// free of carriage returns and colons.
func ValidMessage(line string) bool {
	if len(line) < 2 || len(line) > MaxLineLen {
		return false
	}
	if line[len(line)-1] != '\n' {
		return false
	}
	for i := 0; i < len(line)-1; i++ {
		switch line[i] {
		case '\n', '\r', ':':
			return false
		}
	}
	return true
}

// ValidIdentifier reports whether an id or info string supplied as process
// configuration may be embedded in protocol lines.
func ValidIdentifier(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n', '\r', ':':
			return false
		}
	}
	return true
}

// DigitString reports whether s is non-empty and all ASCII digits.
func DigitString(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ValidPort reports whether s is a decimal port number in 1..65535.
func ValidPort(s string) bool {
	if !DigitString(s) {
		return false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 65535
}
