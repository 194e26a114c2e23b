package tools

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingCredential = errors.New("NS API key required. Set NS_API_KEY environment variable")
	ErrUnknownTool       = errors.New("unknown tool")
)

// InvalidArgumentError is returned when tool arguments do not satisfy the
// tool's input schema.
type InvalidArgumentError struct {
	Tool string
	Err  error
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Tool, e.Err)
}

func (e *InvalidArgumentError) Unwrap() error {
	return e.Err
}

func NewInvalidArgumentError(tool string, err error) *InvalidArgumentError {
	return &InvalidArgumentError{Tool: tool, Err: err}
}

// UnresolvedStationError names the station inputs that could not be mapped to
// an NS station code.
type UnresolvedStationError struct {
	Inputs []string
}

func (e *UnresolvedStationError) Error() string {
	quoted := make([]string, len(e.Inputs))
	for i, input := range e.Inputs {
		quoted[i] = fmt.Sprintf("%q", input)
	}
	if len(e.Inputs) == 1 {
		return fmt.Sprintf("Could not resolve station code for %s. Please check station name.", quoted[0])
	}
	return fmt.Sprintf("Could not resolve station codes for %s. Please check station names.", strings.Join(quoted, ", "))
}

func NewUnresolvedStationError(inputs ...string) *UnresolvedStationError {
	return &UnresolvedStationError{Inputs: inputs}
}
