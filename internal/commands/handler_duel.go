package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-arcana/internal/combat"
	"github.com/pixil98/go-arcana/internal/game"
)

// DuelHandlerFactory creates handlers for PvP duels. Duels live in the channel
// the challenge was issued in.
// Config:
//   - action (required): "challenge", "accept", "decline", "cast", "defend", or "forfeit"
//
// Targets:
//   - target (challenge only): the player to challenge
type DuelHandlerFactory struct {
	engine *Engine
}

func (f *DuelHandlerFactory) ValidateConfig(config map[string]any) error {
	action, _ := config["action"].(string)
	switch action {
	case "challenge", "accept", "decline", "cast", "defend", "forfeit":
		return nil
	default:
		return fmt.Errorf("action must be challenge, accept, decline, cast, defend, or forfeit")
	}
}

func (f *DuelHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	action, _ := config["action"].(string)

	return func(ctx context.Context, cmdCtx *CommandContext) error {
		actor := cmdCtx.Actor
		channel := cmdCtx.Request.ChannelID
		handle := cmdCtx.Request.Handle
		duels := f.engine.Duels

		var (
			r   *combat.DuelReport
			err error
		)
		switch action {
		case "challenge":
			target := cmdCtx.Targets["target"]
			if target == nil {
				return NewUserError("Challenge whom?")
			}
			if f.engine.Dungeon.InEncounter(actor.ID) || f.engine.Dungeon.InEncounter(target.ID) {
				return fmt.Errorf("%w: a dungeon fight is in progress", game.ErrInvalidChoice)
			}
			r, err = duels.Challenge(channel, actor.ID, target.ID)
		case "accept":
			if f.engine.Dungeon.InEncounter(actor.ID) {
				return fmt.Errorf("%w: finish your dungeon fight first", game.ErrInvalidChoice)
			}
			r, err = duels.Accept(channel, handle, actor.ID)
		case "decline":
			r, err = duels.Decline(channel, handle, actor.ID)
		case "cast":
			r, err = duels.Cast(channel, handle, actor.ID, spellInput(cmdCtx))
		case "defend":
			r, err = duels.Defend(channel, handle, actor.ID)
		case "forfeit":
			r, err = duels.Forfeit(channel, handle, actor.ID)
		}
		if err != nil {
			return err
		}

		res := cmdCtx.Result
		res.Lines = append(res.Lines, r.Lines...)
		res.Outcome = string(r.Outcome)
		if !r.Outcome.Resolved() {
			res.Handle = r.Duel.ID
			if r.Duel.State == combat.DuelActive {
				for _, id := range []string{r.Duel.ChallengerID, r.Duel.TargetID} {
					c := r.Duel.Sides[id]
					res.Say("%s: HP %d/%d  Mana %d/%d", c.Name, c.HP, c.MaxHP, c.Mana, c.MaxMana)
				}
			}
		}

		if r.Outcome == combat.OutcomeVictory {
			winner := f.engine.Players.Get(r.WinnerID)
			cmdCtx.Progress(winner, game.QuestDuel, 1)
			cmdCtx.LeveledUp(winner, r.LevelUp)
			cmdCtx.Touch(f.engine.Players.Get(r.LoserID))
		}
		return nil
	}, nil
}
