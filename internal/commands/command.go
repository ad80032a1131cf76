package commands

import (
	"fmt"
)

// InputType represents the type of a command input parameter.
type InputType string

const (
	InputTypeString InputType = "string" // Text input (single word if rest=false, multi-word if rest=true)
	InputTypeNumber InputType = "number" // Integer
)

// InputSpec defines an input parameter that a command accepts from user input.
type InputSpec struct {
	Name     string    `json:"name"`
	Type     InputType `json:"type"`
	Required bool      `json:"required"`
	Rest     bool      `json:"rest"` // If true, captures all remaining input
}

// TargetSpec names an input that refers to another player. The input is
// resolved to a player record by id, then by case-insensitive name.
type TargetSpec struct {
	Name     string `json:"name"`               // Name to access in templates (e.g., "target" -> .Targets.target)
	Input    string `json:"input"`              // Which input provides the id or name to resolve
	Optional bool   `json:"optional,omitempty"` // If true, missing input -> nil (no error)
}

// Command defines a command loaded from JSON.
type Command struct {
	Handler string `json:"handler"`
	Help    string `json:"help"`
	// Anonymous commands run without a character (start, leaderboard, help).
	Anonymous bool           `json:"anonymous,omitempty"`
	Config    map[string]any `json:"config"`  // Config passed to handler, may contain templates
	Targets   []TargetSpec   `json:"targets"` // Players to resolve at runtime
	Inputs    []InputSpec    `json:"inputs"`  // User input parameters
}

func (c *Command) Validate() error {
	if c.Handler == "" {
		return fmt.Errorf("command handler not set")
	}

	for i, input := range c.Inputs {
		if input.Name == "" {
			return fmt.Errorf("input %d: name is required", i)
		}
		if input.Type == "" {
			return fmt.Errorf("input %q: type is required", input.Name)
		}
		switch input.Type {
		case InputTypeString, InputTypeNumber:
		default:
			return fmt.Errorf("input %q: unknown type %q", input.Name, input.Type)
		}
		// Only the last input can have rest=true
		if input.Rest && i != len(c.Inputs)-1 {
			return fmt.Errorf("input %q: only the last input can have rest=true", input.Name)
		}
	}

	validInputs := make(map[string]bool)
	for _, input := range c.Inputs {
		validInputs[input.Name] = true
	}

	for i, target := range c.Targets {
		if target.Name == "" {
			return fmt.Errorf("target %d: name is required", i)
		}
		if target.Input == "" {
			return fmt.Errorf("target %q: input is required", target.Name)
		}
		if !validInputs[target.Input] {
			return fmt.Errorf("target %q: input %q does not exist in inputs", target.Name, target.Input)
		}
	}

	return nil
}

// Usage renders the command's argument list, e.g. "buy <item> [qty]".
func (c *Command) Usage(name string) string {
	out := name
	for _, in := range c.Inputs {
		arg := in.Name
		if in.Rest {
			arg += "..."
		}
		if in.Required {
			out += " <" + arg + ">"
		} else {
			out += " [" + arg + "]"
		}
	}
	return out
}
