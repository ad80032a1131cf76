package combat

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-arcana/internal/game"
	"github.com/pixil98/go-arcana/internal/storage"
)

const (
	DuelRewardPoints = 25
	DuelRewardGold   = 50
	DuelRewardExp    = 100
)

type DuelState string

const (
	DuelChallenged DuelState = "challenged"
	DuelActive     DuelState = "active"
)

// Duel is a PvP battle, keyed by the channel it was issued in. Sides holds each
// participant's live stats; they are copies and never written back to the players.
type Duel struct {
	ID            string                `json:"id"`
	ChannelID     string                `json:"channel_id"`
	ChallengerID  string                `json:"challenger_id"`
	TargetID      string                `json:"target_id"`
	State         DuelState             `json:"state"`
	CurrentTurnID string                `json:"current_turn_id,omitempty"`
	Sides         map[string]*Combatant `json:"sides,omitempty"`
	Defending     map[string]bool       `json:"defending,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

func (d *Duel) Participant(id string) bool {
	return id == d.ChallengerID || id == d.TargetID
}

// Opponent returns the other participant's id.
func (d *Duel) Opponent(id string) string {
	if id == d.ChallengerID {
		return d.TargetID
	}
	return d.ChallengerID
}

// DuelReport describes what one duel action did.
type DuelReport struct {
	Duel     *Duel
	Lines    []string
	Cast     *CastResult
	Skipped  bool
	Outcome  Outcome
	WinnerID string
	LoserID  string
	LevelUp  game.LevelUp
}

type DuelManagerOpt func(*DuelManager)

func WithDuelRoller(r Roller) DuelManagerOpt {
	return func(m *DuelManager) { m.roll = r }
}

func WithDuelClock(now func() time.Time) DuelManagerOpt {
	return func(m *DuelManager) { m.now = now }
}

// DuelManager runs the PvP state machine. It holds no locks: callers serialize
// every action that touches duels or players.
type DuelManager struct {
	duels   storage.Storer[*Duel]
	players storage.Storer[*game.Player]
	catalog *game.Catalog
	roll    Roller
	now     func() time.Time
}

func NewDuelManager(duels storage.Storer[*Duel], players storage.Storer[*game.Player], catalog *game.Catalog, opts ...DuelManagerOpt) *DuelManager {
	m := &DuelManager{
		duels:   duels,
		players: players,
		catalog: catalog,
		roll:    DefaultRoller,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the duel in a channel, or nil.
func (m *DuelManager) Get(channelID string) *Duel {
	return m.duels.Get(channelID)
}

// InDuel reports whether the player takes part in any duel.
func (m *DuelManager) InDuel(playerID string) bool {
	for _, d := range m.duels.GetAll() {
		if d.Participant(playerID) {
			return true
		}
	}
	return false
}

// Challenge issues a challenge in a channel.
func (m *DuelManager) Challenge(channelID, challengerID, targetID string) (*DuelReport, error) {
	challenger := m.players.Get(challengerID)
	if challenger == nil {
		return nil, fmt.Errorf("%w: use start first", game.ErrNotStarted)
	}
	target := m.players.Get(targetID)
	if target == nil {
		return nil, fmt.Errorf("%w: player %q has no character", game.ErrNotFound, targetID)
	}
	if challengerID == targetID {
		return nil, fmt.Errorf("%w: you cannot duel yourself", game.ErrInvalidChoice)
	}
	if m.duels.Get(channelID) != nil {
		return nil, fmt.Errorf("%w: a duel is already underway in this channel", game.ErrInvalidChoice)
	}
	if m.InDuel(challengerID) || m.InDuel(targetID) {
		return nil, fmt.Errorf("%w: one of you is already dueling", game.ErrInvalidChoice)
	}

	d := &Duel{
		ID:           uuid.NewString(),
		ChannelID:    channelID,
		ChallengerID: challengerID,
		TargetID:     targetID,
		State:        DuelChallenged,
		CreatedAt:    m.now(),
	}
	if err := m.duels.Save(channelID, d); err != nil {
		return nil, err
	}

	return &DuelReport{
		Duel:  d,
		Lines: []string{fmt.Sprintf("%s challenges %s to a duel!", challenger.Name, target.Name)},
	}, nil
}

// pending returns the duel in a channel after checking the handle.
func (m *DuelManager) pending(channelID, handle string) (*Duel, error) {
	d := m.duels.Get(channelID)
	if d == nil {
		return nil, fmt.Errorf("%w: no duel in this channel", game.ErrNotFound)
	}
	if handle != "" && handle != d.ID {
		return nil, fmt.Errorf("%w: that duel is over", game.ErrStateExpired)
	}
	return d, nil
}

// Accept starts the duel. Only the challenged player may accept. The challenger
// moves first unless the target is Light aligned and the challenger is not.
func (m *DuelManager) Accept(channelID, handle, actorID string) (*DuelReport, error) {
	d, err := m.pending(channelID, handle)
	if err != nil {
		return nil, err
	}
	if actorID != d.TargetID {
		return nil, fmt.Errorf("%w: only the challenged player can accept", game.ErrPermissionDenied)
	}
	if d.State != DuelChallenged {
		return nil, fmt.Errorf("%w: the duel has already begun", game.ErrInvalidChoice)
	}

	challenger := m.players.Get(d.ChallengerID)
	target := m.players.Get(d.TargetID)
	if challenger == nil || target == nil {
		return nil, fmt.Errorf("%w: duelist no longer exists", game.ErrNotFound)
	}

	d.State = DuelActive
	d.Sides = map[string]*Combatant{
		challenger.ID: DuelCombatant(challenger),
		target.ID:     DuelCombatant(target),
	}
	d.Defending = map[string]bool{}
	d.CurrentTurnID = challenger.ID

	lines := []string{fmt.Sprintf("%s accepts the duel!", target.Name)}
	if target.Element == game.Light && challenger.Element != game.Light {
		d.CurrentTurnID = target.ID
		lines = append(lines, fmt.Sprintf("%s's light grants the first strike.", target.Name))
	}
	lines = append(lines, fmt.Sprintf("%s moves first.", d.Sides[d.CurrentTurnID].Name))

	return &DuelReport{Duel: d, Lines: lines}, nil
}

// Decline cancels a pending challenge. Only the challenged player may decline.
func (m *DuelManager) Decline(channelID, handle, actorID string) (*DuelReport, error) {
	d, err := m.pending(channelID, handle)
	if err != nil {
		return nil, err
	}
	if actorID != d.TargetID {
		return nil, fmt.Errorf("%w: only the challenged player can decline", game.ErrPermissionDenied)
	}
	if d.State != DuelChallenged {
		return nil, fmt.Errorf("%w: the duel has already begun", game.ErrInvalidChoice)
	}

	if err := m.duels.Delete(channelID); err != nil {
		return nil, err
	}
	return &DuelReport{
		Duel:    d,
		Lines:   []string{"The challenge was declined."},
		Outcome: OutcomeDeclined,
	}, nil
}

// active returns a running duel after checking the handle and the turn.
func (m *DuelManager) active(channelID, handle, actorID string) (*Duel, error) {
	d, err := m.pending(channelID, handle)
	if err != nil {
		return nil, err
	}
	if d.State != DuelActive {
		return nil, fmt.Errorf("%w: the challenge has not been accepted", game.ErrInvalidChoice)
	}
	if actorID != d.CurrentTurnID {
		return nil, fmt.Errorf("%w: waiting on %s", game.ErrTurnViolation, d.Sides[d.CurrentTurnID].Name)
	}
	return d, nil
}

// Cast resolves a spell on the current turn. An empty spell id casts the basic strike.
func (m *DuelManager) Cast(channelID, handle, actorID, spellID string) (*DuelReport, error) {
	d, err := m.active(channelID, handle, actorID)
	if err != nil {
		return nil, err
	}
	if spellID != "" {
		p := m.players.Get(actorID)
		if p == nil {
			return nil, fmt.Errorf("%w: use start first", game.ErrNotStarted)
		}
		if !p.Knows(spellID) {
			return nil, fmt.Errorf("%w: you do not know %q", game.ErrInvalidChoice, spellID)
		}
	}

	return m.takeTurn(d, actorID, func(r *DuelReport, me, opp *Combatant) {
		spell := m.catalog.Spell(spellID)
		res := Resolve(me, spell, m.roll)
		res.Magnitude = PayMana(me, spell.Cost, res.Magnitude)
		r.Cast = &res

		if res.Healing() {
			healed := me.Heal(-res.Magnitude)
			r.Lines = append(r.Lines, fmt.Sprintf("%s casts %s and recovers %d HP.", me.Name, spell.Name, healed))
			return
		}

		dmg := Mitigate(res.Magnitude, opp.Defense)
		if d.Defending[opp.ID] {
			dmg = max(dmg/2, 1)
			delete(d.Defending, opp.ID)
			r.Lines = append(r.Lines, fmt.Sprintf("%s braces against the blow.", opp.Name))
		}
		dealt := opp.TakeDamage(dmg)
		r.Lines = append(r.Lines, fmt.Sprintf("%s's %s %s %s for %d damage.", me.Name, spell.Name, DamageVerb(dealt), opp.Name, dealt))
		if res.Crit {
			r.Lines = append(r.Lines, "Critical hit!")
		}
		if res.Status != "" {
			opp.Afflict(res.Status, res.StatusTurns)
			r.Lines = append(r.Lines, fmt.Sprintf("%s is afflicted with %s.", opp.Name, res.Status))
		}
		if healed := me.Heal(LifeSteal(me.Element, dealt)); healed > 0 {
			r.Lines = append(r.Lines, fmt.Sprintf("%s drains %d HP.", me.Name, healed))
		}
	})
}

// Defend halves the next hit the actor takes.
func (m *DuelManager) Defend(channelID, handle, actorID string) (*DuelReport, error) {
	d, err := m.active(channelID, handle, actorID)
	if err != nil {
		return nil, err
	}

	return m.takeTurn(d, actorID, func(r *DuelReport, me, _ *Combatant) {
		d.Defending[me.ID] = true
		r.Lines = append(r.Lines, fmt.Sprintf("%s takes a defensive stance.", me.Name))
	})
}

// Forfeit withdraws from a duel. A pending challenge is simply withdrawn; a
// running duel is lost.
func (m *DuelManager) Forfeit(channelID, handle, actorID string) (*DuelReport, error) {
	d, err := m.pending(channelID, handle)
	if err != nil {
		return nil, err
	}
	if !d.Participant(actorID) {
		return nil, fmt.Errorf("%w: you are not in this duel", game.ErrPermissionDenied)
	}

	r := &DuelReport{Duel: d}
	if d.State == DuelChallenged {
		if err := m.duels.Delete(channelID); err != nil {
			return nil, err
		}
		r.Lines = []string{"The challenge was withdrawn."}
		r.Outcome = OutcomeFled
		return r, nil
	}

	r.Lines = []string{fmt.Sprintf("%s yields.", d.Sides[actorID].Name)}
	err = m.finish(r, d.Opponent(actorID), actorID, false)
	return r, err
}

// takeTurn runs the shared turn sequence: a skipped action becomes a no-op,
// otherwise act runs; then both sides tick, the duel resolves or the turn passes.
func (m *DuelManager) takeTurn(d *Duel, actorID string, act func(*DuelReport, *Combatant, *Combatant)) (*DuelReport, error) {
	oppID := d.Opponent(actorID)
	me, opp := d.Sides[actorID], d.Sides[oppID]
	r := &DuelReport{Duel: d}

	// A stance lasts until its owner acts again.
	delete(d.Defending, actorID)

	if SkipsTurn(me) {
		r.Skipped = true
		r.Lines = append(r.Lines, fmt.Sprintf("%s cannot act this turn.", me.Name))
	} else {
		act(r, me, opp)
	}

	r.Lines = append(r.Lines, TickEffects(me)...)
	r.Lines = append(r.Lines, TickEffects(opp)...)

	switch {
	case !me.Alive() && !opp.Alive():
		return r, m.finish(r, "", "", true)
	case !opp.Alive():
		return r, m.finish(r, actorID, oppID, false)
	case !me.Alive():
		return r, m.finish(r, oppID, actorID, false)
	}

	d.CurrentTurnID = oppID
	return r, nil
}

// finish records the result on both players and deletes the duel. A draw
// happens when both sides fall in the same turn; nobody is rewarded.
func (m *DuelManager) finish(r *DuelReport, winnerID, loserID string, draw bool) error {
	d := r.Duel

	if draw {
		r.Outcome = OutcomeDraw
		r.Lines = append(r.Lines, "Both duelists fall. The duel is a draw.")
		for _, id := range []string{d.ChallengerID, d.TargetID} {
			if p := m.players.Get(id); p != nil {
				p.PvPDraws++
			}
		}
	} else {
		r.Outcome = OutcomeVictory
		r.WinnerID = winnerID
		r.LoserID = loserID
		if w := m.players.Get(winnerID); w != nil {
			w.PvPWins++
			w.PvPPoints += DuelRewardPoints
			w.Gold += DuelRewardGold
			r.LevelUp = w.GainExperience(DuelRewardExp, m.catalog.Items)
			r.Lines = append(r.Lines, fmt.Sprintf("%s wins the duel and earns %d points, %d gold and %d EXP!", w.Name, DuelRewardPoints, DuelRewardGold, DuelRewardExp))
		}
		if l := m.players.Get(loserID); l != nil {
			l.PvPLosses++
		}
	}

	slog.Info("duel resolved", "channel", d.ChannelID, "duel", d.ID, "outcome", r.Outcome, "winner", winnerID)
	return m.duels.Delete(d.ChannelID)
}
