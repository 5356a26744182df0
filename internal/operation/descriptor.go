// Package operation declares the tools exposed to callers and turns a tool
// invocation into a call on the Eagle client.
package operation

import (
	"context"
	"errors"

	"eagle-mcp/internal/eagle"
)

var (
	// ErrValidation marks arguments rejected before any request is sent.
	ErrValidation = errors.New("validation error")

	// ErrUnknownOperation is returned when no operation has the requested name.
	ErrUnknownOperation = errors.New("unknown operation")
)

// Kind is the semantic type of a parameter.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindBoolean
	KindStringArray
	KindStringMap
	KindObjectArray
)

// Param declares one argument of an operation.
type Param struct {
	// Name is the argument name callers use.
	Name string
	// Field is the name sent to Eagle. Empty means the same as Name.
	Field       string
	Kind        Kind
	Required    bool
	Description string
	Min, Max    *float64
	Enum        []string
	MinItems    int
	// Items describes the elements of a KindObjectArray parameter.
	Items []Param
}

func (p Param) wireName() string {
	if p.Field != "" {
		return p.Field
	}
	return p.Name
}

// Hint classifies the side effects of an operation.
type Hint int

const (
	HintReadOnly Hint = iota
	HintIdempotentWrite
	HintWrite
	HintDestructive
)

// RunFunc implements operations that are not a single pass-through call.
type RunFunc func(ctx context.Context, c *eagle.Client, params *eagle.Params) eagle.Response

// Descriptor is the declarative definition of one operation. Descriptors are
// built once at startup and never modified.
type Descriptor struct {
	Name        string
	Title       string
	Description string
	Method      string
	Path        string
	Params      []Param
	Binary      bool
	Hint        Hint
	Run         RunFunc
}

// Annotations returns the MCP tool hints for the descriptor.
func (d Descriptor) Annotations() map[string]bool {
	a := map[string]bool{
		"readOnlyHint":    false,
		"destructiveHint": false,
		"idempotentHint":  false,
		"openWorldHint":   false,
	}
	switch d.Hint {
	case HintReadOnly:
		a["readOnlyHint"] = true
		a["idempotentHint"] = true
	case HintIdempotentWrite:
		a["idempotentHint"] = true
	case HintDestructive:
		a["destructiveHint"] = true
	}
	return a
}

func ptr(f float64) *float64 { return &f }
