package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-arcana/internal/commands"
)

// Executor runs one action to completion.
type Executor interface {
	Exec(ctx context.Context, req *commands.Request) (*commands.Result, error)
}

// ActionBus answers JSON action requests published on ActionSubject. A chat
// front end sends a commands.Request and receives the commands.Result.
type ActionBus struct {
	server *NatsServer
	exec   Executor
}

func NewActionBus(server *NatsServer, exec Executor) *ActionBus {
	return &ActionBus{server: server, exec: exec}
}

func (b *ActionBus) Start(ctx context.Context) error {
	select {
	case <-b.server.Ready():
	case <-ctx.Done():
		return nil
	}

	unsubscribe, err := b.server.Reply(ActionSubject, ActionQueue, func(data []byte) []byte {
		return b.handle(ctx, data)
	})
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", ActionSubject, err)
	}
	defer unsubscribe()

	slog.InfoContext(ctx, "action bus subscribed", "subject", ActionSubject)
	<-ctx.Done()
	return nil
}

func (b *ActionBus) handle(ctx context.Context, data []byte) []byte {
	res := b.result(ctx, data)
	out, err := json.Marshal(res)
	if err != nil {
		slog.Error("encoding action result", "error", err)
		return []byte(`{"error":"internal error","error_kind":"internal"}`)
	}
	return out
}

func (b *ActionBus) result(ctx context.Context, data []byte) *commands.Result {
	var req commands.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return &commands.Result{Error: "Malformed request.", ErrorKind: commands.KindUsage}
	}
	if req.ActorID == "" || req.Command == "" {
		return &commands.Result{Command: req.Command, Error: "actor_id and command are required.", ErrorKind: commands.KindUsage}
	}

	res, err := b.exec.Exec(ctx, &req)
	if err != nil {
		return &commands.Result{Command: req.Command, Error: "Something went wrong.", ErrorKind: commands.KindInternal}
	}
	return res
}
