package listener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/pixil98/go-arcana/internal"
	"github.com/pixil98/go-arcana/internal/commands"
	"github.com/pixil98/go-arcana/internal/display"
)

// ConsoleChannel is the channel every console session shares, so duels can be
// fought between two terminals.
const ConsoleChannel = "console"

const maxNameTries = 3

// Executor runs one action to completion.
type Executor interface {
	Exec(ctx context.Context, req *commands.Request) (*commands.Result, error)
}

// Console turns a raw terminal connection into a stream of actions. It is the
// operator's way into the engine without a chat front end.
type Console struct {
	exec Executor
}

func NewConsole(exec Executor) *Console {
	return &Console{exec: exec}
}

// SessionOpt adjusts a single console session.
type SessionOpt func(*session)

type session struct {
	name string
}

// WithName offers a character name, from an ssh login for example. A valid
// name skips the name prompt; anything else is ignored.
func WithName(name string) SessionOpt {
	return func(s *session) { s.name = name }
}

func (c *Console) AcceptConnection(ctx context.Context, conn io.ReadWriter, opts ...SessionOpt) {
	if err := c.RunSession(ctx, conn, opts...); err != nil && !errors.Is(err, io.EOF) {
		slog.WarnContext(ctx, "console session", "error", err)
	}
}

// RunSession asks for a name, then reads one command per line until the
// connection closes or the player quits.
func (c *Console) RunSession(ctx context.Context, conn io.ReadWriter, opts ...SessionOpt) error {
	var s session
	for _, opt := range opts {
		opt(&s)
	}

	p := internal.NewPrompter(conn)
	if err := p.Write("Welcome to Arcana!\n"); err != nil {
		return err
	}

	name, ok := normalName(s.name)
	if !ok {
		var err error
		if name, err = c.login(p); err != nil {
			return err
		}
	}
	slog.InfoContext(ctx, "console session started", "actor", actorID(name))

	if err := p.Write(fmt.Sprintf("Greetings, %s. Type help for a list of commands.\n", name)); err != nil {
		return err
	}

	status := ""
	for ctx.Err() == nil {
		line, err := p.Prompt(status + "> ")
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if strings.EqualFold(fields[0], "quit") {
			return p.Write("Farewell.\n")
		}

		res, err := c.run(ctx, name, fields)
		if err := p.Write(render(res, err)); err != nil {
			return err
		}
		if err == nil && res.Player != nil {
			status = display.Status(res.Player.HP, res.Player.MaxHP, res.Player.Mana, res.Player.MaxMana)
		}
	}
	return nil
}

// RunLine executes one command line as name and writes the result to w. A
// failed action is reported as an error after its message is written.
func (c *Console) RunLine(ctx context.Context, w io.Writer, name, line string) error {
	name, ok := normalName(name)
	if !ok {
		_, err := io.WriteString(w, "A character name of letters only is required.\n")
		return errors.Join(errors.New("invalid console name"), err)
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return errors.New("no command given")
	}

	res, err := c.run(ctx, name, fields)
	if _, werr := io.WriteString(w, render(res, err)); werr != nil {
		return werr
	}
	if err != nil {
		return err
	}
	if res.Error != "" {
		return fmt.Errorf("%s: %s", res.ErrorKind, res.Error)
	}
	return nil
}

func (c *Console) run(ctx context.Context, name string, fields []string) (*commands.Result, error) {
	return c.exec.Exec(ctx, &commands.Request{
		ActorID:   actorID(name),
		ActorName: name,
		ChannelID: ConsoleChannel,
		Command:   fields[0],
		Args:      fields[1:],
	})
}

func actorID(name string) string {
	return "console-" + strings.ToLower(name)
}

// normalName validates and capitalizes a character name.
func normalName(s string) (string, bool) {
	if ok, _ := validName(s); !ok {
		return "", false
	}
	return display.Capitalize(strings.ToLower(s)), true
}

func (c *Console) login(p *internal.Prompter) (string, error) {
	for {
		name, err := p.Prompt("By what name do you wish to be known? ",
			internal.WithMaxTries(maxNameTries),
			internal.WithValidator(validName),
		)
		if err != nil {
			return "", err
		}
		name, _ = normalName(name)

		ok, err := p.PromptYN(fmt.Sprintf("Did I get that right, %s (Y/N)? ", name))
		if err != nil {
			return "", err
		}
		if ok {
			return name, nil
		}
	}
}

func validName(s string) (bool, string) {
	if s == "" || len(s) > 20 {
		return false, "Names are 1 to 20 letters.\n"
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false, "Names may only contain letters.\n"
		}
	}
	return true, ""
}

// render formats a result for a terminal.
func render(res *commands.Result, err error) string {
	switch {
	case err != nil:
		return "Something went wrong. Try again.\n"
	case res.Error != "":
		return display.Wrap(res.Error) + "\n"
	}
	return display.Lines(res.Lines)
}
