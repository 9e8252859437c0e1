/* models.go
 * This file contain the interfaces, structs and helper functions that are shared between sub packages
 * Authors: Ahasuerus
 */

package shared

import (
	"fmt"
	"strings"
)

// Format identifies one of the three independent match formats. Each format has its own queue, map pool and
// rating axis.
type Format string

const (
	FormatSingles    Format = "1v1"
	FormatFlex       Format = "3v3 flex"
	FormatRegistered Format = "3v3 reg"
)

// Formats lists every supported format in display order
var Formats = []Format{FormatSingles, FormatFlex, FormatRegistered}

// ParseFormat converts user or record input into a Format. Besides the canonical names it accepts the short
// aliases used in bot commands (1s, flex, reg).
// Preconditions: Receives a format string
// Postconditions: Returns the matching Format, or an error wrapping ErrInvalidFormat
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1v1", "1s", "solo", "singles":
		return FormatSingles, nil
	case "3v3 flex", "flex", "3s flex":
		return FormatFlex, nil
	case "3v3 reg", "reg", "registered", "3s reg":
		return FormatRegistered, nil
	}
	return "", fmt.Errorf("%w: '%s'", ErrInvalidFormat, s)
}

// Valid reports whether f is one of the supported formats
func (f Format) Valid() bool {
	switch f {
	case FormatSingles, FormatFlex, FormatRegistered:
		return true
	}
	return false
}

// TeamBased reports whether the format is played 3v3
func (f Format) TeamBased() bool {
	return f == FormatFlex || f == FormatRegistered
}
