package engine

import (
	"strings"
	"unicode"
)

// ParseCommands converts a command string into commands. Letters are
// case-insensitive; any character other than L, R or M yields a *ParseError.
func ParseCommands(s string) ([]Command, error) {
	commands := make([]Command, 0, len(s))

	for i, ch := range s {
		switch unicode.ToUpper(ch) {
		case 'L':
			commands = append(commands, TurnLeft)
		case 'R':
			commands = append(commands, TurnRight)
		case 'M':
			commands = append(commands, Move)
		default:
			return nil, &ParseError{Char: ch, Index: i}
		}
	}

	return commands, nil
}

// ValidCommands reports whether s parses without error
func ValidCommands(s string) bool {
	_, err := ParseCommands(s)
	return err == nil
}

// FormatCommands renders commands back into their L/R/M form
func FormatCommands(commands []Command) string {
	var b strings.Builder
	b.Grow(len(commands))
	for _, c := range commands {
		b.WriteString(c.String())
	}
	return b.String()
}
