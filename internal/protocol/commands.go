package protocol

import "strings"

const (
	// QueryMarker prefixes a mapper name-resolution request.
	QueryMarker = '?'

	// RegisterMarker prefixes a mapper registration request.
	RegisterMarker = '!'

	// ListCommand asks the mapper for its full table.
	ListCommand = "@"
)

// QueryLine builds the wire form of a name resolution request.
func QueryLine(name string) string {
	return string(QueryMarker) + name
}

// RegisterLine builds the wire form of a registration request.
func RegisterLine(name, port string) string {
	return string(RegisterMarker) + name + ":" + port
}

// EntryLine builds one mapper listing line.
func EntryLine(name, port string) string {
	return name + ":" + port
}

// ParseRegistration splits a registration body ("NAME:PORT", marker already
// stripped) into its parts. The split happens at the first colon only; a port
// carrying a second colon is invalid. Ports must be non-empty digit strings.
func ParseRegistration(body string) (name, port string, ok bool) {
	name, port, found := strings.Cut(body, ":")
	if !found || name == "" || !DigitString(port) {
		return "", "", false
	}
	return name, port, true
}
