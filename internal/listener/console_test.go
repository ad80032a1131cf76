package listener

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/pixil98/go-arcana/internal/commands"
	"github.com/pixil98/go-arcana/internal/game"
	"github.com/pixil98/go-testutil"
)

type fakeConn struct {
	in  io.Reader
	out bytes.Buffer
}

func (c *fakeConn) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c *fakeConn) Write(p []byte) (int, error) { return c.out.Write(p) }

type scriptedExecutor struct {
	reqs    []*commands.Request
	results map[string]*commands.Result
	err     error
}

func (e *scriptedExecutor) Exec(_ context.Context, req *commands.Request) (*commands.Result, error) {
	e.reqs = append(e.reqs, req)
	if e.err != nil {
		return nil, e.err
	}
	if res, ok := e.results[req.Command]; ok {
		return res, nil
	}
	return &commands.Result{Command: req.Command}, nil
}

func TestConsole_RunSession(t *testing.T) {
	exec := &scriptedExecutor{results: map[string]*commands.Result{
		"start": {
			Lines:  []string{"Alice awakens as a wielder of Fire."},
			Player: &game.Snapshot{HP: 110, MaxHP: 110, Mana: 110, MaxMana: 110},
		},
		"buy": {Error: "Iron Sword costs 500 gold, you have 0.", ErrorKind: commands.KindInsufficientResource},
	}}
	conn := &fakeConn{in: strings.NewReader("al1ce\nALICE\nno\nAlice\ny\n\nstart fire\nbuy eq_sword 1\nquit\nprofile\n")}

	err := NewConsole(exec).RunSession(context.Background(), conn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "requests", len(exec.reqs), 2)
	start := exec.reqs[0]
	testutil.AssertEqual(t, "actor", start.ActorID, "console-alice")
	testutil.AssertEqual(t, "name", start.ActorName, "Alice")
	testutil.AssertEqual(t, "channel", start.ChannelID, ConsoleChannel)
	testutil.AssertEqual(t, "command", start.Command, "start")
	testutil.AssertEqual(t, "args", strings.Join(start.Args, " "), "fire")
	testutil.AssertEqual(t, "buy args", strings.Join(exec.reqs[1].Args, " "), "eq_sword 1")

	out := conn.out.String()
	for _, want := range []string{
		"Names may only contain letters.",
		"Did I get that right, Alice (Y/N)?",
		"Alice awakens as a wielder of Fire.",
		"[HP 110/110 Mana 110/110] > ",
		"Iron Sword costs 500 gold, you have 0.",
		"Farewell.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConsole_RunSessionEOF(t *testing.T) {
	exec := &scriptedExecutor{}
	conn := &fakeConn{in: strings.NewReader("Bob\nyes\nhelp\n")}

	err := NewConsole(exec).RunSession(context.Background(), conn)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
	testutil.AssertEqual(t, "requests", len(exec.reqs), 1)
}

func TestRender(t *testing.T) {
	tests := map[string]struct {
		res *commands.Result
		err error
		exp string
	}{
		"lines": {
			res: &commands.Result{Lines: []string{"one", "two"}},
			exp: "one\ntwo\n",
		},
		"user error": {
			res: &commands.Result{Error: "Not your turn."},
			exp: "Not your turn.\n",
		},
		"internal error": {
			err: errors.New("boom"),
			exp: "Something went wrong. Try again.\n",
		},
		"nothing to say": {
			res: &commands.Result{},
			exp: "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "output", render(tt.res, tt.err), tt.exp)
		})
	}
}

func TestCRLFReadWriter(t *testing.T) {
	conn := &fakeConn{in: strings.NewReader("look\r\nhere\r\x00there\r")}
	rw := newCRLFReadWriter(conn)

	buf := make([]byte, 64)
	n, err := rw.Read(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "read", string(buf[:n]), "look\nhere\nthere\n")

	n, err = rw.Write([]byte("a\nb\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "written length", n, 4)
	testutil.AssertEqual(t, "written", conn.out.String(), "a\r\nb\r\n")
}

func TestConsole_RunSessionWithName(t *testing.T) {
	tests := map[string]struct {
		offered   string
		input     string
		expActor  string
		expPrompt bool
	}{
		"valid ssh user skips the prompt": {
			offered:  "carol",
			input:    "profile\nquit\n",
			expActor: "console-carol",
		},
		"invalid ssh user falls back to the prompt": {
			offered:   "root123",
			input:     "Dave\ny\nprofile\nquit\n",
			expActor:  "console-dave",
			expPrompt: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			exec := &scriptedExecutor{}
			conn := &fakeConn{in: strings.NewReader(tt.input)}

			err := NewConsole(exec).RunSession(context.Background(), conn, WithName(tt.offered))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "requests", len(exec.reqs), 1)
			testutil.AssertEqual(t, "actor", exec.reqs[0].ActorID, tt.expActor)
			testutil.AssertEqual(t, "prompted", strings.Contains(conn.out.String(), "By what name"), tt.expPrompt)
		})
	}
}

func TestConsole_RunLine(t *testing.T) {
	exec := &scriptedExecutor{results: map[string]*commands.Result{
		"profile": {Lines: []string{"Erin, level 3 Water mage"}},
		"flee":    {Error: "You are not in the dungeon.", ErrorKind: commands.KindInvalidChoice},
	}}
	console := NewConsole(exec)

	var out bytes.Buffer
	if err := console.RunLine(context.Background(), &out, "erin", "profile"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "output", out.String(), "Erin, level 3 Water mage\n")
	testutil.AssertEqual(t, "actor", exec.reqs[0].ActorID, "console-erin")

	out.Reset()
	err := console.RunLine(context.Background(), &out, "erin", "flee")
	testutil.AssertErrorContains(t, err, "invalid_choice")
	testutil.AssertEqual(t, "error output", out.String(), "You are not in the dungeon.\n")

	err = console.RunLine(context.Background(), &out, "x1", "profile")
	testutil.AssertErrorContains(t, err, "invalid console name")

	err = console.RunLine(context.Background(), &out, "erin", "  ")
	testutil.AssertErrorContains(t, err, "no command given")
}

func TestExecCommand(t *testing.T) {
	tests := map[string]struct {
		payload []byte
		exp     string
		expOK   bool
	}{
		"command": {
			payload: append([]byte{0, 0, 0, 7}, "profile"...),
			exp:     "profile",
			expOK:   true,
		},
		"short header": {
			payload: []byte{0, 0},
		},
		"truncated": {
			payload: append([]byte{0, 0, 0, 9}, "profile"...),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cmd, ok := execCommand(tt.payload)
			testutil.AssertEqual(t, "ok", ok, tt.expOK)
			testutil.AssertEqual(t, "command", cmd, tt.exp)
		})
	}
}
