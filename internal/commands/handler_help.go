package commands

import (
	"context"
	"fmt"
	"strings"
)

// HelpHandlerFactory lists commands, or explains one.
// Inputs:
//   - command (optional): the command to explain
type HelpHandlerFactory struct {
	handler *Handler
}

func (f *HelpHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *HelpHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		res := cmdCtx.Result

		if name := strings.ToLower(cmdCtx.String("command")); name != "" {
			c, ok := f.handler.compiled[name]
			if !ok {
				return NewUserError(fmt.Sprintf("No help for %q.", name))
			}
			res.Say("%s", c.cmd.Usage(c.name))
			if c.cmd.Help != "" {
				res.Say("%s", c.cmd.Help)
			}
			return nil
		}

		for _, c := range f.handler.commands() {
			res.Say("%-28s %s", c.cmd.Usage(c.name), c.cmd.Help)
		}
		return nil
	}, nil
}
