package commands

import (
	"context"

	"github.com/pixil98/go-arcana/internal/game"
)

// LeaderboardHandlerFactory ranks players.
// Inputs:
//   - board (optional): overall, pvp, dungeon, or prestige
type LeaderboardHandlerFactory struct {
	engine *Engine
}

func (f *LeaderboardHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *LeaderboardHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		board, err := game.ParseBoard(cmdCtx.String("board"))
		if err != nil {
			return err
		}

		res := cmdCtx.Result
		standings := game.Leaderboard(f.engine.Players, board)
		if len(standings) == 0 {
			res.Say("No one has entered the rankings yet.")
			return nil
		}

		res.Say("Leaderboard: %s", board)
		for _, s := range standings {
			res.Say("%2d. %s (%d)", s.Rank, s.Name, s.Score)
		}
		return nil
	}, nil
}
