package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-arcana/internal/combat"
	"github.com/pixil98/go-arcana/internal/game"
)

// DungeonHandlerFactory creates handlers for PvE encounters.
// Config:
//   - action (required): "enter", "cast", or "flee"
//
// Inputs:
//   - spell (optional, rest): the spell to cast, basic strike when omitted
type DungeonHandlerFactory struct {
	engine *Engine
}

func (f *DungeonHandlerFactory) ValidateConfig(config map[string]any) error {
	action, _ := config["action"].(string)
	switch action {
	case "enter", "cast", "flee":
		return nil
	default:
		return fmt.Errorf("action must be enter, cast, or flee")
	}
}

func (f *DungeonHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	action, _ := config["action"].(string)

	return func(ctx context.Context, cmdCtx *CommandContext) error {
		actor := cmdCtx.Actor
		handle := cmdCtx.Request.Handle

		var (
			r   *combat.EncounterReport
			err error
		)
		switch action {
		case "enter":
			if f.engine.Duels.InDuel(actor.ID) {
				return fmt.Errorf("%w: finish your duel first", game.ErrInvalidChoice)
			}
			r, err = f.engine.Dungeon.Enter(actor.ID)
		case "cast":
			r, err = f.engine.Dungeon.Cast(actor.ID, handle, spellInput(cmdCtx))
		case "flee":
			r, err = f.engine.Dungeon.Flee(actor.ID, handle)
		}
		if err != nil {
			return err
		}

		res := cmdCtx.Result
		res.Lines = append(res.Lines, r.Lines...)
		res.Outcome = string(r.Outcome)
		if !r.Outcome.Resolved() {
			res.Handle = r.Encounter.ID
		}

		if r.Outcome == combat.OutcomeVictory {
			cmdCtx.Progress(actor, game.QuestSlay, 1)
			cmdCtx.Progress(actor, game.QuestDescend, r.Encounter.Floor)
			cmdCtx.LeveledUp(actor, r.LevelUp)
		}
		return nil
	}, nil
}

// spellInput normalizes the spell input to a catalog id.
func spellInput(cmdCtx *CommandContext) string {
	name := cmdCtx.String("spell")
	if name == "" {
		return ""
	}
	return game.SpellID(name)
}
