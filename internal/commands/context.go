package commands

import (
	"fmt"

	"github.com/pixil98/go-arcana/internal/game"
)

// Request is one inbound action from a chat user or a console session.
type Request struct {
	ActorID   string   `json:"actor_id"`
	ActorName string   `json:"actor_name,omitempty"`
	ChannelID string   `json:"channel_id,omitempty"`
	Command   string   `json:"command"`
	Args      []string `json:"args,omitempty"`
	// Handle is the duel or encounter id a button press refers to. Empty means
	// whatever is current.
	Handle string `json:"handle,omitempty"`
}

// Result describes what an action did. The engine never formats chat output
// beyond plain narration lines.
type Result struct {
	Command   string         `json:"command"`
	Lines     []string       `json:"lines,omitempty"`
	Player    *game.Snapshot `json:"player,omitempty"`
	Outcome   string         `json:"outcome,omitempty"`
	Handle    string         `json:"handle,omitempty"`
	Error     string         `json:"error,omitempty"`
	ErrorKind Kind           `json:"error_kind,omitempty"`
}

func (r *Result) Say(format string, args ...any) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

// progress is a quest event raised by a handler for a player.
type progress struct {
	playerID string
	kind     game.QuestKind
	value    int
}

// CommandContext is what a compiled command runs against.
type CommandContext struct {
	Request *Request
	// Actor is nil only for anonymous commands run by someone without a character.
	Actor   *game.Player
	Inputs  map[string]any
	Targets map[string]*game.Player
	Config  map[string]string
	Result  *Result

	progress []progress
	touched  []*game.Player
	levelUps []levelUp
}

type levelUp struct {
	player *game.Player
	up     game.LevelUp
}

// String returns a string input, or "" when it was not given.
func (c *CommandContext) String(name string) string {
	s, _ := c.Inputs[name].(string)
	return s
}

// Number returns a number input, or def when it was not given.
func (c *CommandContext) Number(name string, def int) int {
	n, ok := c.Inputs[name].(int)
	if !ok {
		return def
	}
	return n
}

// Progress records a quest event for the player; the handler applies it after
// the command succeeds.
func (c *CommandContext) Progress(p *game.Player, kind game.QuestKind, value int) {
	if p == nil {
		return
	}
	c.progress = append(c.progress, progress{playerID: p.ID, kind: kind, value: value})
	c.Touch(p)
}

// LeveledUp records a level gain for narration after the command.
func (c *CommandContext) LeveledUp(p *game.Player, up game.LevelUp) {
	if p == nil || up.Levels == 0 {
		return
	}
	c.levelUps = append(c.levelUps, levelUp{player: p, up: up})
	c.Touch(p)
}

// Render expands the command's config template key against the actor, target
// and value, falling back to def when the command does not configure one.
func (c *CommandContext) Render(key, def string, target *game.Player, value any) error {
	src := c.Config[key]
	if src == "" {
		src = def
	}

	data := &RuntimeContext{Inputs: c.Inputs, Value: value, Request: c.Request}
	if c.Actor != nil {
		data.Actor = c.Actor.Snapshot()
	}
	if target != nil {
		data.Target = target.Snapshot()
	}

	line, err := ExpandTemplate(src, data)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", key, err)
	}
	if line != "" {
		c.Result.Lines = append(c.Result.Lines, line)
	}
	return nil
}

// Touch marks a player whose achievements should be checked after the command.
func (c *CommandContext) Touch(p *game.Player) {
	if p == nil {
		return
	}
	for _, t := range c.touched {
		if t.ID == p.ID {
			return
		}
	}
	c.touched = append(c.touched, p)
}
