package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGridSize = errors.New("grid size must be at least 1")
	ErrInvalidCommand  = errors.New("invalid command character")
	ErrInvalidHeading  = errors.New("invalid heading")
)

// ParseError reports the first character of a command string that is not L, R or M
type ParseError struct {
	Char  rune
	Index int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %c", ErrInvalidCommand, e.Char)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidCommand
}

// InvalidCommandError is the panic value raised when a command outside
// {TurnLeft, TurnRight, Move} reaches the navigator. Parsing is expected to
// reject such input, so this indicates a programming error.
type InvalidCommandError struct {
	Command Command
	Index   int
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("engine: unknown command %d at index %d", int(e.Command), e.Index)
}
