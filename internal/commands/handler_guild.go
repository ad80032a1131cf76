package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/go-arcana/internal/game"
)

// GuildHandlerFactory creates handlers for guild management.
// Config:
//   - action (required): "create", "view", "invite", "join", or "leave"
//
// Inputs:
//   - name (create, join): guild name
//
// Targets:
//   - target (invite): the player to invite
type GuildHandlerFactory struct {
	engine *Engine
}

func (f *GuildHandlerFactory) ValidateConfig(config map[string]any) error {
	action, _ := config["action"].(string)
	switch action {
	case "create", "view", "invite", "join", "leave":
		return nil
	default:
		return fmt.Errorf("action must be create, view, invite, join, or leave")
	}
}

func (f *GuildHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	action, _ := config["action"].(string)

	return func(ctx context.Context, cmdCtx *CommandContext) error {
		actor := cmdCtx.Actor
		guilds := f.engine.Guilds
		res := cmdCtx.Result

		switch action {
		case "create":
			g, err := guilds.Create(actor, cmdCtx.String("name"))
			if err != nil {
				return err
			}
			res.Say("You found the guild %s.", g.Name)

		case "view":
			g, err := guilds.Of(actor)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(g.Members))
			for _, id := range g.Members {
				if m := f.engine.Players.Get(id); m != nil {
					names = append(names, m.Name)
				}
			}
			leader := g.LeaderID
			if l := f.engine.Players.Get(g.LeaderID); l != nil {
				leader = l.Name
			}
			res.Say("%s (level %d), led by %s", g.Name, g.Level, leader)
			res.Say("Members (%d/%d): %s", len(g.Members), game.MaxGuildMembers, strings.Join(names, ", "))

		case "invite":
			target := cmdCtx.Targets["target"]
			if target == nil {
				return NewUserError("Invite whom?")
			}
			g, err := guilds.Invite(actor, target)
			if err != nil {
				return err
			}
			res.Say("%s is invited to %s.", target.Name, g.Name)

		case "join":
			g, err := guilds.Find(cmdCtx.String("name"))
			if err != nil {
				return err
			}
			if _, err := guilds.Join(actor, g.ID); err != nil {
				return err
			}
			res.Say("You join %s.", g.Name)

		case "leave":
			g, disbanded, err := guilds.Leave(actor)
			if err != nil {
				return err
			}
			if disbanded {
				res.Say("%s has been disbanded.", g.Name)
			} else {
				res.Say("You leave %s.", g.Name)
			}
		}
		return nil
	}, nil
}
