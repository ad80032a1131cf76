package commands

import (
	"context"
	"fmt"
	"time"
)

// QuestHandlerFactory creates handlers for daily quests.
// Config:
//   - action (required): "view" or "claim"
//
// Viewing hands out a new quest when the player has none.
type QuestHandlerFactory struct {
	engine *Engine
}

func (f *QuestHandlerFactory) ValidateConfig(config map[string]any) error {
	action, _ := config["action"].(string)
	switch action {
	case "view", "claim":
		return nil
	default:
		return fmt.Errorf("action must be view or claim")
	}
}

func (f *QuestHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	action, _ := config["action"].(string)

	return func(ctx context.Context, cmdCtx *CommandContext) error {
		actor := cmdCtx.Actor
		quests := f.engine.Quests
		res := cmdCtx.Result

		if action == "claim" {
			q, up, err := quests.Claim(actor, f.engine.Catalog.Items)
			if err != nil {
				return err
			}
			res.Say("Quest reward: %d gold and %d EXP.", q.RewardGold, q.RewardExp)
			cmdCtx.LeveledUp(actor, up)
			return nil
		}

		q := quests.Current(actor.ID)
		if q == nil {
			var err error
			q, err = quests.Assign(actor)
			if err != nil {
				return err
			}
			res.Say("New quest!")
		}

		left := q.ExpiresAt.Sub(f.engine.now()).Round(time.Minute)
		res.Say("%s: %d/%d (expires in %s)", q.Description, min(q.Progress, q.Goal), q.Goal, left)
		res.Say("Reward: %d gold, %d EXP", q.RewardGold, q.RewardExp)
		if q.Complete() {
			res.Say("Complete! Use quest-claim to collect.")
		}
		return nil
	}, nil
}
