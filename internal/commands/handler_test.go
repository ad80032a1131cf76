package commands

import (
	"context"
	"reflect"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pixil98/go-arcana/internal/game"
	"github.com/pixil98/go-arcana/internal/storage"
	"github.com/pixil98/go-testutil"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// fixedRoller never lands a proc and always picks the first candidate.
type fixedRoller struct{}

func (fixedRoller) Float64() float64 { return 0.99 }
func (fixedRoller) IntN(int) int     { return 0 }

type memSink struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func (s *memSink) Read(_ context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[name], nil
}

func (s *memSink) Write(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs == nil {
		s.docs = map[string][]byte{}
	}
	s.docs[name] = slices.Clone(data)
	return nil
}

type recordingPublisher struct {
	channels []string
	messages []string
}

func (p *recordingPublisher) PublishToChannel(channelID string, data []byte) error {
	p.channels = append(p.channels, channelID)
	p.messages = append(p.messages, string(data))
	return nil
}

func testCatalog() *game.Catalog {
	return &game.Catalog{
		Items: storage.NewCatalogStoreFromMap(map[string]*game.Item{
			"potion_hp": {Name: "Small HP Potion", Category: game.CategoryConsumable, Cost: 100, RestoreHP: 50},
			"eq_sword":  {Name: "Iron Sword", Category: game.CategoryWeapon, Cost: 500, Attack: 15},
		}),
		Spells: storage.NewCatalogStoreFromMap(game.DefaultSpells()),
		Monsters: storage.NewCatalogStoreFromMap(map[string]*game.Monster{
			"slime": {Name: "Slime", HP: 1, Attack: 1, Exp: 20, Gold: 5},
		}),
	}
}

type fixture struct {
	handler *Handler
	engine  *Engine
	players storage.Storer[*game.Player]
}

// newFixture builds a handler over the embedded commands. Stores left nil are
// backed by memory.
func newFixture(t *testing.T, st Stores, opts ...HandlerOpt) *fixture {
	t.Helper()

	if st.Players == nil {
		st.Players = storage.NewMemoryStore[*game.Player]()
	}
	if st.Guilds == nil {
		st.Guilds = storage.NewMemoryStore[*game.Guild]()
	}
	if st.Quests == nil {
		st.Quests = storage.NewMemoryStore[*game.Quest]()
	}
	engine := NewEngine(testCatalog(), st, "owner",
		WithRoller(fixedRoller{}),
		WithClock(func() time.Time { return testNow }),
		WithQuestRoll(func(int) int { return 0 }),
	)

	cmds, err := LoadCommands("")
	if err != nil {
		t.Fatalf("loading commands: %v", err)
	}
	h := NewHandler(cmds, engine, opts...)
	if err := h.CompileAll(); err != nil {
		t.Fatalf("compiling commands: %v", err)
	}
	return &fixture{handler: h, engine: engine, players: st.Players}
}

// run executes a command line for actor in channel c1 and fails on internal errors.
func (f *fixture) run(t *testing.T, actor, line string) *Result {
	t.Helper()
	return f.runIn(t, actor, "c1", "", line)
}

func (f *fixture) runIn(t *testing.T, actor, channel, handle, line string) *Result {
	t.Helper()
	fields := strings.Fields(line)
	res, err := f.handler.Exec(context.Background(), &Request{
		ActorID:   actor,
		ChannelID: channel,
		Command:   fields[0],
		Args:      fields[1:],
		Handle:    handle,
	})
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", line, err)
	}
	return res
}

func (f *fixture) mustRun(t *testing.T, actor, line string) *Result {
	t.Helper()
	res := f.run(t, actor, line)
	if res.Error != "" {
		t.Fatalf("%s: rejected: %s (%s)", line, res.Error, res.ErrorKind)
	}
	return res
}

func hasLine(lines []string, sub string) bool {
	return slices.ContainsFunc(lines, func(l string) bool { return strings.Contains(l, sub) })
}

func TestHandler_parseValue(t *testing.T) {
	h := &Handler{}

	tests := map[string]struct {
		inputType InputType
		raw       string
		exp       any
		expErr    string
	}{
		"string type": {
			inputType: InputTypeString,
			raw:       "fire bolt",
			exp:       "fire bolt",
		},
		"number type valid": {
			inputType: InputTypeNumber,
			raw:       "3",
			exp:       3,
		},
		"number type invalid": {
			inputType: InputTypeNumber,
			raw:       "many",
			expErr:    `"many" is not a valid number.`,
		},
		"unknown type": {
			inputType: InputType("bogus"),
			raw:       "test",
			expErr:    `unknown parameter type "bogus"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := h.parseValue(tt.inputType, tt.raw)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "value", got, tt.exp)
		})
	}
}

func TestHandler_parseInputs(t *testing.T) {
	h := &Handler{}

	tests := map[string]struct {
		specs   []InputSpec
		rawArgs []string
		exp     map[string]any
		expErr  string
	}{
		"no inputs no args": {
			exp: map[string]any{},
		},
		"no inputs with args rejected": {
			rawArgs: []string{"extra"},
			expErr:  "Expected at most 0 argument(s), got 1.",
		},
		"required input missing": {
			specs:  []InputSpec{{Name: "item", Type: InputTypeString, Required: true}},
			expErr: "Expected at least 1 argument(s), got 0.",
		},
		"optional input omitted": {
			specs: []InputSpec{
				{Name: "item", Type: InputTypeString, Required: true},
				{Name: "qty", Type: InputTypeNumber},
			},
			rawArgs: []string{"potion_hp"},
			exp:     map[string]any{"item": "potion_hp"},
		},
		"optional number parsed": {
			specs: []InputSpec{
				{Name: "item", Type: InputTypeString, Required: true},
				{Name: "qty", Type: InputTypeNumber},
			},
			rawArgs: []string{"potion_hp", "4"},
			exp:     map[string]any{"item": "potion_hp", "qty": 4},
		},
		"rest input joins remaining": {
			specs: []InputSpec{
				{Name: "element", Type: InputTypeString, Required: true},
				{Name: "name", Type: InputTypeString, Rest: true},
			},
			rawArgs: []string{"fire", "Sir", "Burns", "A", "Lot"},
			exp:     map[string]any{"element": "fire", "name": "Sir Burns A Lot"},
		},
		"bad number rejected": {
			specs:   []InputSpec{{Name: "qty", Type: InputTypeNumber}},
			rawArgs: []string{"lots"},
			expErr:  `"lots" is not a valid number.`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := h.parseInputs(tt.specs, tt.rawArgs)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.exp) {
				t.Errorf("inputs = %v, expected %v", got, tt.exp)
			}
		})
	}
}

func TestHandler_RegisterFactory(t *testing.T) {
	h := NewHandler(storage.NewCatalogStoreFromMap(map[string]*Command{}), nil)

	tests := map[string]struct {
		name    string
		factory HandlerFactory
		expErr  string
	}{
		"empty name": {
			factory: &HelpHandlerFactory{},
			expErr:  "handler name cannot be empty",
		},
		"nil factory": {
			name:   "custom",
			expErr: "handler factory cannot be nil",
		},
		"duplicate": {
			name:    "help",
			factory: &HelpHandlerFactory{},
			expErr:  `handler factory "help" already registered`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := h.RegisterFactory(tt.name, tt.factory)
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestHandler_compile(t *testing.T) {
	h := NewHandler(storage.NewCatalogStoreFromMap(map[string]*Command{}), nil)

	tests := map[string]struct {
		cmd    *Command
		expErr string
	}{
		"unknown handler": {
			cmd:    &Command{Handler: "teleport"},
			expErr: `unknown handler "teleport"`,
		},
		"bad dungeon action": {
			cmd:    &Command{Handler: "dungeon", Config: map[string]any{"action": "dance"}},
			expErr: "action must be enter, cast, or flee",
		},
		"bad duel action": {
			cmd:    &Command{Handler: "duel"},
			expErr: "action must be challenge",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := h.compile("test", tt.cmd)
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestHandler_Rejections(t *testing.T) {
	tests := map[string]struct {
		actor   string
		line    string
		expKind Kind
		expMsg  string
	}{
		"unknown command": {
			actor:   "alice",
			line:    "dance",
			expKind: KindInvalidChoice,
			expMsg:  "Unknown command: dance",
		},
		"no character": {
			actor:   "nobody",
			line:    "profile",
			expKind: KindNotStarted,
			expMsg:  "Use start to create a character.",
		},
		"start twice": {
			actor:   "alice",
			line:    "start water",
			expKind: KindAlreadyStarted,
		},
		"unknown element": {
			actor:   "carol",
			line:    "start plasma",
			expKind: KindInvalidChoice,
		},
		"divine is owner only": {
			actor:   "carol",
			line:    "start divine",
			expKind: KindPermissionDenied,
		},
		"too many arguments": {
			actor:   "alice",
			line:    "prestige now please",
			expKind: KindUsage,
			expMsg:  "Expected at most 0 argument(s), got 2.",
		},
		"unknown target": {
			actor:   "alice",
			line:    "challenge ghost",
			expKind: KindNotFound,
		},
		"self challenge": {
			actor:   "alice",
			line:    "challenge alice",
			expKind: KindInvalidChoice,
		},
		"cast outside the dungeon": {
			actor:   "alice",
			line:    "cast",
			expKind: KindNotFound,
		},
		"prestige below level 50": {
			actor:   "alice",
			line:    "prestige",
			expKind: KindInvalidChoice,
		},
		"bestow is owner only": {
			actor:   "alice",
			line:    "bestow alice addGold 100",
			expKind: KindPermissionDenied,
		},
		"unknown leaderboard": {
			actor:   "nobody",
			line:    "leaderboard richest",
			expKind: KindInvalidChoice,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, Stores{})
			f.mustRun(t, "alice", "start fire Alice")

			res := f.run(t, tt.actor, tt.line)
			testutil.AssertEqual(t, "kind", res.ErrorKind, tt.expKind)
			if tt.expMsg != "" {
				testutil.AssertEqual(t, "message", res.Error, tt.expMsg)
			}
			testutil.AssertEqual(t, "lines", len(res.Lines), 0)
		})
	}
}

func TestHandler_Start(t *testing.T) {
	f := newFixture(t, Stores{})

	res := f.mustRun(t, "alice", "start EARTH Alice the Stone")
	if res.Player == nil {
		t.Fatalf("expected player snapshot")
	}
	testutil.AssertEqual(t, "name", res.Player.Name, "Alice the Stone")
	testutil.AssertEqual(t, "element", res.Player.Element, game.Earth)
	testutil.AssertEqual(t, "level", res.Player.Level, 1)
	testutil.AssertEqual(t, "hp", res.Player.HP, 160)
	testutil.AssertEqual(t, "narration", hasLine(res.Lines, "Alice the Stone awakens as a wielder of Earth."), true)

	res = f.run(t, "bob", "start water ALICE THE STONE")
	testutil.AssertEqual(t, "duplicate name", res.ErrorKind, KindInvalidChoice)
	testutil.AssertEqual(t, "duplicate not saved", f.players.Get("bob") == nil, true)

	res = f.run(t, "bob", "start water alice")
	testutil.AssertEqual(t, "name equal to an id", res.ErrorKind, KindInvalidChoice)

	f.mustRun(t, "bob", "start water Bob")
	testutil.AssertEqual(t, "lookup by name", f.engine.FindPlayer("bob").ID, "bob")

	owner := f.mustRun(t, "owner", "start divine")
	testutil.AssertEqual(t, "owner element", owner.Player.Element, game.Divine)
	testutil.AssertEqual(t, "owner name defaults to id", owner.Player.Name, "owner")
}

func TestHandler_RejectionLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t, Stores{})
	f.mustRun(t, "alice", "start fire Alice")
	before := *f.players.Get("alice").Snapshot()

	res := f.run(t, "alice", "buy eq_sword")
	testutil.AssertEqual(t, "kind", res.ErrorKind, KindInsufficientResource)

	alice := f.players.Get("alice")
	testutil.AssertEqual(t, "snapshot", *alice.Snapshot(), before)
	testutil.AssertEqual(t, "inventory", len(alice.Inventory), 0)
}

func TestHandler_DungeonVictory(t *testing.T) {
	f := newFixture(t, Stores{})
	f.mustRun(t, "alice", "start fire Alice")

	quest := f.mustRun(t, "alice", "quest")
	testutil.AssertEqual(t, "assigned", hasLine(quest.Lines, "Slay 3 monsters in the dungeon: 0/3"), true)

	enter := f.mustRun(t, "alice", "dungeon")
	testutil.AssertEqual(t, "outcome", enter.Outcome, "")
	if enter.Handle == "" {
		t.Fatalf("expected an encounter handle")
	}
	testutil.AssertEqual(t, "busy", f.engine.Busy("alice"), true)

	again := f.run(t, "alice", "dungeon")
	testutil.AssertEqual(t, "enter twice", again.ErrorKind, KindAlreadyStarted)

	cast := f.runIn(t, "alice", "c1", enter.Handle, "cast")
	testutil.AssertEqual(t, "error", cast.Error, "")
	testutil.AssertEqual(t, "outcome", cast.Outcome, "victory")
	testutil.AssertEqual(t, "handle", cast.Handle, "")
	testutil.AssertEqual(t, "floor", cast.Player.Floor, 2)
	testutil.AssertEqual(t, "gold", cast.Player.Gold, 5)
	testutil.AssertEqual(t, "exp", cast.Player.Exp, 20)
	testutil.AssertEqual(t, "quest narration", hasLine(cast.Lines, "Quest: Slay 3 monsters in the dungeon (1/3)"), true)
	testutil.AssertEqual(t, "achievement narration", hasLine(cast.Lines, "Achievement unlocked for Alice: First Blood!"), true)
	testutil.AssertEqual(t, "busy", f.engine.Busy("alice"), false)

	stale := f.runIn(t, "alice", "c1", enter.Handle, "cast")
	testutil.AssertEqual(t, "stale handle", stale.ErrorKind, KindNotFound)

	alice := f.players.Get("alice")
	testutil.AssertEqual(t, "slain", alice.MonstersSlain, 1)
	testutil.AssertEqual(t, "achievements", len(alice.Achievements), 1)
}

func TestHandler_StaleEncounterHandle(t *testing.T) {
	f := newFixture(t, Stores{})
	f.mustRun(t, "alice", "start water Alice")
	f.mustRun(t, "alice", "dungeon")

	res := f.runIn(t, "alice", "c1", "not-this-fight", "flee")
	testutil.AssertEqual(t, "kind", res.ErrorKind, KindStateExpired)
	testutil.AssertEqual(t, "still fighting", f.engine.Busy("alice"), true)

	res = f.mustRun(t, "alice", "flee")
	testutil.AssertEqual(t, "outcome", res.Outcome, "fled")
	testutil.AssertEqual(t, "busy", f.engine.Busy("alice"), false)
}

func TestHandler_Duel(t *testing.T) {
	f := newFixture(t, Stores{})
	f.mustRun(t, "alice", "start fire Alice")
	f.mustRun(t, "bob", "start water Bob")

	challenge := f.mustRun(t, "alice", "challenge bob")
	testutil.AssertEqual(t, "challenge line", hasLine(challenge.Lines, "Alice challenges Bob to a duel!"), true)

	elsewhere := f.runIn(t, "bob", "c2", "", "accept")
	testutil.AssertEqual(t, "other channel", elsewhere.ErrorKind, KindNotFound)

	notYours := f.run(t, "alice", "accept")
	testutil.AssertEqual(t, "challenger accepting", notYours.ErrorKind, KindPermissionDenied)

	accept := f.mustRun(t, "bob", "accept")
	testutil.AssertEqual(t, "first move", hasLine(accept.Lines, "Alice moves first."), true)
	testutil.AssertEqual(t, "hp line", hasLine(accept.Lines, "Bob: HP"), true)

	early := f.run(t, "bob", "duel-cast")
	testutil.AssertEqual(t, "out of turn", early.ErrorKind, KindTurnViolation)

	dungeon := f.run(t, "alice", "dungeon")
	testutil.AssertEqual(t, "dungeon mid duel", dungeon.ErrorKind, KindInvalidChoice)

	forfeit := f.mustRun(t, "alice", "forfeit")
	testutil.AssertEqual(t, "outcome", forfeit.Outcome, "victory")
	testutil.AssertEqual(t, "duelist", hasLine(forfeit.Lines, "Achievement unlocked for Bob: Duelist!"), true)

	bob := f.players.Get("bob")
	testutil.AssertEqual(t, "wins", bob.PvPWins, 1)
	testutil.AssertEqual(t, "points", bob.PvPPoints, 25)
	testutil.AssertEqual(t, "gold", bob.Gold, 50)
	testutil.AssertEqual(t, "exp", bob.Experience, 0)
	testutil.AssertEqual(t, "level", bob.Level, 2)
	testutil.AssertEqual(t, "losses", f.players.Get("alice").PvPLosses, 1)
	testutil.AssertEqual(t, "channel free", f.engine.Duels.Get("c1") == nil, true)
}

func TestHandler_Bestow(t *testing.T) {
	f := newFixture(t, Stores{})
	f.mustRun(t, "owner", "start light Owner")
	f.mustRun(t, "alice", "start fire Alice")

	res := f.mustRun(t, "owner", "bestow Alice addGold 250")
	testutil.AssertEqual(t, "line", hasLine(res.Lines, `Bestowed addGold "250" upon Alice.`), true)
	testutil.AssertEqual(t, "gold", f.players.Get("alice").Gold, 250)

	res = f.run(t, "owner", "bestow Alice setElement plasma")
	testutil.AssertEqual(t, "bad element", res.ErrorKind, KindInvalidChoice)
	testutil.AssertEqual(t, "element kept", f.players.Get("alice").Element, game.Fire)
}

func TestHandler_ShopAndEquipment(t *testing.T) {
	f := newFixture(t, Stores{})
	f.mustRun(t, "alice", "start fire Alice")
	f.players.Get("alice").Gold = 700

	list := f.mustRun(t, "alice", "shop")
	testutil.AssertEqual(t, "listing", len(list.Lines) >= 2, true)

	res := f.run(t, "alice", "buy potion_hp 184467440737095516")
	testutil.AssertEqual(t, "huge quantity", res.ErrorKind, KindInvalidChoice)
	testutil.AssertEqual(t, "gold untouched", f.players.Get("alice").Gold, 700)

	f.mustRun(t, "alice", "buy eq_sword")
	bought := f.mustRun(t, "alice", "buy potion_hp 2")
	testutil.AssertEqual(t, "receipt", hasLine(bought.Lines, "You buy 2 x Small HP Potion for 200 gold."), true)
	alice := f.players.Get("alice")
	testutil.AssertEqual(t, "gold", alice.Gold, 0)
	testutil.AssertEqual(t, "potions", alice.Inventory["potion_hp"], 2)

	atk := alice.Attack
	f.mustRun(t, "alice", "equip eq_sword")
	testutil.AssertEqual(t, "attack", alice.Attack, atk+15)
	testutil.AssertEqual(t, "slot", alice.Equipment.Get(game.SlotWeapon), "eq_sword")

	f.mustRun(t, "alice", "dungeon")
	res = f.run(t, "alice", "use potion_hp")
	testutil.AssertEqual(t, "use mid fight", res.ErrorKind, KindInvalidChoice)
	res = f.run(t, "alice", "unequip weapon")
	testutil.AssertEqual(t, "unequip mid fight", res.ErrorKind, KindInvalidChoice)
	testutil.AssertEqual(t, "potions kept", alice.Inventory["potion_hp"], 2)
}

func TestHandler_Guild(t *testing.T) {
	f := newFixture(t, Stores{})
	f.mustRun(t, "alice", "start fire Alice")
	f.mustRun(t, "bob", "start water Bob")

	f.mustRun(t, "alice", "guild-create The Embers")
	res := f.run(t, "bob", "guild-join the embers")
	testutil.AssertEqual(t, "uninvited", res.ErrorKind, KindPermissionDenied)

	res = f.run(t, "bob", "guild-invite alice")
	testutil.AssertEqual(t, "not in a guild", res.ErrorKind, KindNotFound)

	f.mustRun(t, "alice", "guild-invite bob")
	f.mustRun(t, "bob", "guild-join the embers")
	testutil.AssertEqual(t, "same guild", f.players.Get("bob").GuildID, f.players.Get("alice").GuildID)

	view := f.mustRun(t, "bob", "guild")
	testutil.AssertEqual(t, "view", hasLine(view.Lines, "The Embers"), true)

	f.mustRun(t, "alice", "guild-leave")
	testutil.AssertEqual(t, "disbanded", f.players.Get("bob").GuildID, "")
}

func TestHandler_LeaderboardAnonymous(t *testing.T) {
	f := newFixture(t, Stores{})
	f.mustRun(t, "alice", "start fire Alice")
	f.mustRun(t, "bob", "start water Bob")
	f.players.Get("bob").PvPPoints = 50

	res := f.mustRun(t, "nobody", "leaderboard pvp")
	if res.Player != nil {
		t.Errorf("anonymous caller should get no player snapshot")
	}
	if len(res.Lines) < 2 {
		t.Fatalf("expected standings, got %v", res.Lines)
	}
	testutil.AssertEqual(t, "leader", strings.Contains(strings.Join(res.Lines, "\n"), "Bob"), true)
	testutil.AssertEqual(t, "bob ranked first", strings.Index(strings.Join(res.Lines, "\n"), "Bob") < strings.Index(strings.Join(res.Lines, "\n"), "Alice"), true)
}

func TestHandler_Help(t *testing.T) {
	f := newFixture(t, Stores{})

	res := f.mustRun(t, "nobody", "help buy")
	testutil.AssertEqual(t, "usage", hasLine(res.Lines, "buy <item> [qty]"), true)

	res = f.mustRun(t, "nobody", "help")
	testutil.AssertEqual(t, "lists start", hasLine(res.Lines, "start"), true)
	testutil.AssertEqual(t, "lists leaderboard", hasLine(res.Lines, "leaderboard"), true)
}

func TestHandler_Publish(t *testing.T) {
	pub := &recordingPublisher{}
	f := newFixture(t, Stores{}, WithPublisher(pub))

	f.mustRun(t, "alice", "start fire Alice")
	f.run(t, "alice", "start fire Alice")
	f.runIn(t, "bob", "", "", "leaderboard")

	testutil.AssertEqual(t, "published", len(pub.channels), 1)
	testutil.AssertEqual(t, "channel", pub.channels[0], "c1")
	testutil.AssertEqual(t, "message", strings.Contains(pub.messages[0], "Alice awakens"), true)
}

func TestHandler_FlushAndLoad(t *testing.T) {
	sink := &memSink{}
	ctx := context.Background()

	players := storage.NewDocumentStore[*game.Player]("players", sink)
	f := newFixture(t, Stores{Players: players}, WithDocuments(players))
	f.mustRun(t, "alice", "start fire Alice")
	f.mustRun(t, "alice", "dungeon")
	f.mustRun(t, "alice", "cast")

	if err := f.handler.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	reloaded := storage.NewDocumentStore[*game.Player]("players", sink)
	g := newFixture(t, Stores{Players: reloaded}, WithDocuments(reloaded))
	if err := g.handler.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	alice := g.engine.FindPlayer("ALICE")
	if alice == nil {
		t.Fatalf("expected alice to survive a reload")
	}
	testutil.AssertEqual(t, "floor", alice.DungeonFloor, 2)
	testutil.AssertEqual(t, "slain", alice.MonstersSlain, 1)
	testutil.AssertEqual(t, "busy after reload", g.engine.Busy("alice"), false)

	res := g.mustRun(t, "alice", "profile")
	testutil.AssertEqual(t, "profile", hasLine(res.Lines, "Alice, Fire mage"), true)
}

func TestEngine_RestoreDropsEmptyRecords(t *testing.T) {
	f := newFixture(t, Stores{})
	f.mustRun(t, "alice", "start fire Alice")
	if err := f.players.Save("ghost", nil); err != nil {
		t.Fatalf("saving: %v", err)
	}

	f.engine.Restore()

	testutil.AssertEqual(t, "ghost dropped", len(f.players.GetAll()), 1)
	testutil.AssertEqual(t, "alice kept", f.players.Get("alice").Name, "Alice")
	testutil.AssertEqual(t, "lookup skips nothing", f.engine.FindPlayer("Alice").ID, "alice")
}

func TestHandler_Sweep(t *testing.T) {
	f := newFixture(t, Stores{})
	f.mustRun(t, "alice", "start fire Alice")
	f.mustRun(t, "alice", "quest")

	removed, err := f.handler.Sweep()
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	testutil.AssertEqual(t, "fresh quest kept", removed, 0)

	res := f.run(t, "alice", "quest-claim")
	testutil.AssertEqual(t, "incomplete", res.ErrorKind, KindInvalidChoice)
}

func TestHandler_Tick(t *testing.T) {
	sink := &memSink{}
	quests := storage.NewDocumentStore[*game.Quest]("quests", sink)
	f := newFixture(t, Stores{Quests: quests}, WithDocuments(quests))
	f.mustRun(t, "alice", "start fire Alice")

	_ = quests.Save("old", &game.Quest{ID: "old", PlayerID: "alice", Goal: 1, ExpiresAt: testNow.Add(-time.Hour)})

	if err := f.handler.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if sink.docs["quests"] == nil {
		t.Fatalf("expected quests to be flushed")
	}
	testutil.AssertEqual(t, "swept", strings.Contains(string(sink.docs["quests"]), `"old"`), false)
}
