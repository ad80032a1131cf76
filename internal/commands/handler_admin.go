package commands

import (
	"context"

	"github.com/pixil98/go-arcana/internal/game"
)

// BestowHandlerFactory creates the owner-only override command.
// Inputs:
//   - player (required): target player id or name
//   - action (required): setHP, setMana, setGold, addGold, setExp, setLevel, setElement, addSpell,
//     removeSpell, or setSpells (comma separated, "none" clears)
//   - value (required, rest): the argument for the action
type BestowHandlerFactory struct {
	engine *Engine
}

func (f *BestowHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *BestowHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		target := cmdCtx.Targets["target"]
		if target == nil {
			return NewUserError("Bestow upon whom?")
		}

		action := game.BestowAction(cmdCtx.String("action"))
		value := cmdCtx.String("value")
		if err := f.engine.Bestower.Bestow(cmdCtx.Request.ActorID, target, action, value); err != nil {
			return err
		}

		cmdCtx.Touch(target)
		return cmdCtx.Render("message", "Bestowed {{ .Inputs.action }} {{ .Value }} upon {{ .Target.Name }}.", target, value)
	}, nil
}
