package commands

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/pixil98/go-arcana/internal/game"
	"github.com/pixil98/go-arcana/internal/storage"
	"golang.org/x/sync/errgroup"
)

// CommandFunc is the signature for compiled command functions.
type CommandFunc func(ctx context.Context, cmdCtx *CommandContext) error

// HandlerFactory creates CommandFuncs from command configurations.
type HandlerFactory interface {
	// ValidateConfig validates that the config contains required fields.
	ValidateConfig(config map[string]any) error
	// Create creates a CommandFunc for a validated config.
	Create(config map[string]any) (CommandFunc, error)
}

// Publisher fans narration out to the channel an action came from.
type Publisher interface {
	PublishToChannel(channelID string, data []byte) error
}

// Document is a persisted record set the handler loads at startup and
// snapshots on flush.
type Document interface {
	Name() string
	Load(ctx context.Context) error
	Snapshot() ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// compiledCommand holds a command that's been validated and compiled.
type compiledCommand struct {
	name    string
	cmd     *Command
	cmdFunc CommandFunc
}

type HandlerOpt func(*Handler)

func WithPublisher(pub Publisher) HandlerOpt {
	return func(h *Handler) { h.publisher = pub }
}

func WithDocuments(docs ...Document) HandlerOpt {
	return func(h *Handler) { h.docs = append(h.docs, docs...) }
}

func WithNarrator(n *Narrator) HandlerOpt {
	return func(h *Handler) { h.narrator = n }
}

// Handler is the single entry point for actions. It serializes every action so
// at most one turn is ever in flight across all players and battles.
type Handler struct {
	mu sync.Mutex

	store     storage.Reader[*Command]
	engine    *Engine
	factories map[string]HandlerFactory
	compiled  map[string]*compiledCommand
	publisher Publisher
	narrator  *Narrator
	docs      []Document
}

func NewHandler(cmds storage.Reader[*Command], engine *Engine, opts ...HandlerOpt) *Handler {
	h := &Handler{
		store:     cmds,
		engine:    engine,
		factories: make(map[string]HandlerFactory),
		compiled:  make(map[string]*compiledCommand),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.narrator == nil {
		h.narrator = DefaultNarrator()
	}

	// Register built-in handlers
	h.factories["start"] = &StartHandlerFactory{engine: engine}
	h.factories["profile"] = &ProfileHandlerFactory{engine: engine}
	h.factories["prestige"] = &PrestigeHandlerFactory{engine: engine}
	h.factories["dungeon"] = &DungeonHandlerFactory{engine: engine}
	h.factories["duel"] = &DuelHandlerFactory{engine: engine}
	h.factories["shop"] = &ShopHandlerFactory{engine: engine}
	h.factories["equipment"] = &EquipmentHandlerFactory{engine: engine}
	h.factories["use"] = &UseHandlerFactory{engine: engine}
	h.factories["guild"] = &GuildHandlerFactory{engine: engine}
	h.factories["quest"] = &QuestHandlerFactory{engine: engine}
	h.factories["leaderboard"] = &LeaderboardHandlerFactory{engine: engine}
	h.factories["bestow"] = &BestowHandlerFactory{engine: engine}
	h.factories["help"] = &HelpHandlerFactory{handler: h}
	return h
}

// RegisterFactory registers a handler factory by name.
// The name must match the "handler" field in command JSON definitions.
func (h *Handler) RegisterFactory(name string, factory HandlerFactory) error {
	if name == "" {
		return fmt.Errorf("handler name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("handler factory cannot be nil")
	}
	if _, exists := h.factories[name]; exists {
		return fmt.Errorf("handler factory %q already registered", name)
	}
	h.factories[name] = factory
	return nil
}

// CompileAll compiles all commands from the store.
// Call this after all handler factories have been registered.
func (h *Handler) CompileAll() error {
	for id, cmd := range h.store.GetAll() {
		err := h.compile(id, cmd)
		if err != nil {
			return fmt.Errorf("compiling command %q: %w", id, err)
		}
	}
	return nil
}

func (h *Handler) compile(id string, cmd *Command) error {
	factory, ok := h.factories[cmd.Handler]
	if !ok {
		return fmt.Errorf("unknown handler %q", cmd.Handler)
	}

	if err := factory.ValidateConfig(cmd.Config); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	cmdFunc, err := factory.Create(cmd.Config)
	if err != nil {
		return fmt.Errorf("creating handler: %w", err)
	}

	h.compiled[id] = &compiledCommand{
		name:    id,
		cmd:     cmd,
		cmdFunc: cmdFunc,
	}
	return nil
}

// Exec runs one action to completion. Rule violations come back on the Result
// with the action's state untouched; the error return is reserved for internal
// failures.
func (h *Handler) Exec(ctx context.Context, req *Request) (*Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	res := &Result{Command: strings.ToLower(req.Command)}
	err := h.exec(ctx, req, res)
	if err != nil {
		ue := toUserError(err)
		if ue == nil {
			slog.Error("command failed", "command", req.Command, "actor", req.ActorID, "error", err)
			return nil, err
		}
		slog.Debug("command rejected", "command", req.Command, "actor", req.ActorID, "kind", ue.Kind, "error", ue.Message)
		return &Result{Command: res.Command, Error: ue.Message, ErrorKind: ue.Kind}, nil
	}

	h.publish(req, res)
	return res, nil
}

func (h *Handler) exec(ctx context.Context, req *Request, res *Result) error {
	compiled, ok := h.compiled[res.Command]
	if !ok {
		return &UserError{Message: fmt.Sprintf("Unknown command: %s", req.Command), Kind: KindInvalidChoice}
	}

	inputs, err := h.parseInputs(compiled.cmd.Inputs, req.Args)
	if err != nil {
		return err
	}

	actor := h.engine.Players.Get(req.ActorID)
	if actor == nil && !compiled.cmd.Anonymous {
		return fmt.Errorf("%w: use start to create a character", game.ErrNotStarted)
	}

	targets, err := h.resolveTargets(compiled.cmd.Targets, inputs)
	if err != nil {
		return err
	}

	cmdCtx := &CommandContext{
		Request: req,
		Actor:   actor,
		Inputs:  inputs,
		Targets: targets,
		Config:  configStrings(compiled.cmd.Config),
		Result:  res,
	}

	if err := compiled.cmdFunc(ctx, cmdCtx); err != nil {
		return err
	}

	h.afterAction(cmdCtx)
	if cmdCtx.Actor != nil {
		res.Player = cmdCtx.Actor.Snapshot()
	}
	return nil
}

// afterAction applies the quest and achievement hooks the command raised.
func (h *Handler) afterAction(cmdCtx *CommandContext) {
	res := cmdCtx.Result

	for _, lu := range cmdCtx.levelUps {
		h.narrate(res, "level_up", map[string]any{"Name": lu.player.Name, "Level": lu.player.Level, "Learned": lu.up.Learned})
	}

	for _, pr := range cmdCtx.progress {
		q := h.engine.Quests.Advance(pr.playerID, pr.kind, pr.value)
		if q == nil {
			continue
		}
		key := "quest_progress"
		if q.Complete() {
			key = "quest_complete"
		}
		h.narrate(res, key, q)
	}

	if cmdCtx.Actor != nil {
		cmdCtx.Touch(cmdCtx.Actor)
	}
	for _, p := range cmdCtx.touched {
		for _, a := range p.CheckAchievements() {
			h.narrate(res, "achievement", map[string]any{"Name": p.Name, "Achievement": game.AchievementName(a)})
		}
	}
}

func (h *Handler) narrate(res *Result, key string, data any) {
	line, err := h.narrator.Line(key, data)
	if err != nil {
		slog.Warn("narration failed", "key", key, "error", err)
		return
	}
	if line != "" {
		res.Lines = append(res.Lines, line)
	}
}

func (h *Handler) publish(req *Request, res *Result) {
	if h.publisher == nil || req.ChannelID == "" || len(res.Lines) == 0 {
		return
	}
	err := h.publisher.PublishToChannel(req.ChannelID, []byte(strings.Join(res.Lines, "\n")))
	if err != nil {
		slog.Warn("publishing narration", "channel", req.ChannelID, "error", err)
	}
}

func (h *Handler) resolveTargets(specs []TargetSpec, inputs map[string]any) (map[string]*game.Player, error) {
	targets := make(map[string]*game.Player, len(specs))
	for _, spec := range specs {
		key, _ := inputs[spec.Input].(string)
		if key == "" {
			if spec.Optional {
				continue
			}
			return nil, NewUserError(fmt.Sprintf("Missing required parameter: %s", spec.Input))
		}

		p := h.engine.FindPlayer(key)
		if p == nil {
			return nil, fmt.Errorf("%w: no player named %q", game.ErrNotFound, key)
		}
		targets[spec.Name] = p
	}
	return targets, nil
}

// parseInputs validates raw string arguments against input specs.
func (h *Handler) parseInputs(specs []InputSpec, rawArgs []string) (map[string]any, error) {
	requiredCount := 0
	for _, spec := range specs {
		if spec.Required {
			requiredCount++
		}
	}

	if len(rawArgs) < requiredCount {
		return nil, NewUserError(fmt.Sprintf("Expected at least %d argument(s), got %d.", requiredCount, len(rawArgs)))
	}

	// If no rest param, check we don't have too many args
	hasRest := len(specs) > 0 && specs[len(specs)-1].Rest
	if !hasRest && len(rawArgs) > len(specs) {
		return nil, NewUserError(fmt.Sprintf("Expected at most %d argument(s), got %d.", len(specs), len(rawArgs)))
	}

	inputs := make(map[string]any, len(specs))
	argIndex := 0

	for _, spec := range specs {
		if argIndex >= len(rawArgs) {
			if spec.Required {
				return nil, NewUserError(fmt.Sprintf("Missing required parameter: %s", spec.Name))
			}
			continue
		}

		var raw string
		if spec.Rest {
			raw = strings.Join(rawArgs[argIndex:], " ")
			argIndex = len(rawArgs)
		} else {
			raw = rawArgs[argIndex]
			argIndex++
		}

		value, err := h.parseValue(spec.Type, raw)
		if err != nil {
			return nil, err
		}
		inputs[spec.Name] = value
	}

	return inputs, nil
}

// parseValue parses a raw string into the appropriate type.
func (h *Handler) parseValue(inputType InputType, raw string) (any, error) {
	switch inputType {
	case InputTypeString:
		return raw, nil

	case InputTypeNumber:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, NewUserError(fmt.Sprintf("%q is not a valid number.", raw))
		}
		return n, nil

	default:
		return nil, fmt.Errorf("unknown parameter type %q", inputType)
	}
}

// Load reads every document and brings the loaded players up to date.
func (h *Handler) Load(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, d := range h.docs {
		if err := d.Load(ctx); err != nil {
			return fmt.Errorf("loading %s: %w", d.Name(), err)
		}
	}
	h.engine.Restore()
	return nil
}

// Flush snapshots every document under the action lock, then writes the
// snapshots concurrently once the lock is released.
func (h *Handler) Flush(ctx context.Context) error {
	h.mu.Lock()
	snaps := make([][]byte, len(h.docs))
	for i, d := range h.docs {
		data, err := d.Snapshot()
		if err != nil {
			h.mu.Unlock()
			return fmt.Errorf("snapshotting %s: %w", d.Name(), err)
		}
		snaps[i] = data
	}
	h.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for i, d := range h.docs {
		g.Go(func() error {
			return d.Write(gctx, snaps[i])
		})
	}
	return g.Wait()
}

// Sweep removes finished and expired quests.
func (h *Handler) Sweep() (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.Quests.Sweep()
}

// Tick is the periodic upkeep run by the driver: stale quests are swept, then
// every document is flushed.
func (h *Handler) Tick(ctx context.Context) error {
	removed, err := h.Sweep()
	if err != nil {
		return fmt.Errorf("sweeping quests: %w", err)
	}
	if removed > 0 {
		slog.Debug("swept quests", "removed", removed)
	}
	return h.Flush(ctx)
}

// commands lists the compiled commands in name order.
func (h *Handler) commands() []*compiledCommand {
	out := make([]*compiledCommand, 0, len(h.compiled))
	for _, c := range h.compiled {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *compiledCommand) int { return strings.Compare(a.name, b.name) })
	return out
}
