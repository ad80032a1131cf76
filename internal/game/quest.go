package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-arcana/internal/storage"
)

// QuestDuration is how long a quest stays claimable.
const QuestDuration = 24 * time.Hour

// QuestKind is the progress source a quest listens to.
type QuestKind string

const (
	QuestSlay    QuestKind = "slay"
	QuestDescend QuestKind = "descend"
	QuestDuel    QuestKind = "duel"
)

type Quest struct {
	ID          string    `json:"id"`
	PlayerID    string    `json:"player_id"`
	Kind        QuestKind `json:"kind"`
	Description string    `json:"description"`
	Progress    int       `json:"progress"`
	Goal        int       `json:"goal"`
	RewardGold  int       `json:"reward_gold"`
	RewardExp   int       `json:"reward_exp"`
	ExpiresAt   time.Time `json:"expires_at"`
	Claimed     bool      `json:"claimed"`
}

func (q *Quest) Expired(now time.Time) bool {
	return !now.Before(q.ExpiresAt)
}

func (q *Quest) Complete() bool {
	return q.Progress >= q.Goal
}

type questTemplate struct {
	kind QuestKind
	goal func(p *Player, roll int) int
	desc string
	gold int
	exp  int
}

var questTemplates = []questTemplate{
	{QuestSlay, func(_ *Player, roll int) int { return 3 + roll }, "Slay %d monsters in the dungeon", 100, 60},
	{QuestDescend, func(p *Player, roll int) int { return max(p.DeepestFloor, p.DungeonFloor-1) + 2 + roll }, "Reach dungeon floor %d", 150, 80},
	{QuestDuel, func(_ *Player, roll int) int { return 1 + roll/2 }, "Win %d duels", 200, 100},
}

// QuestBook hands out daily quests and tracks their progress.
type QuestBook struct {
	quests storage.Storer[*Quest]
	now    func() time.Time
	intN   func(int) int
}

type QuestBookOpt func(*QuestBook)

// WithClock overrides the time source.
func WithClock(now func() time.Time) QuestBookOpt {
	return func(b *QuestBook) { b.now = now }
}

// WithQuestRoll overrides the random source used to pick templates and goals.
func WithQuestRoll(intN func(int) int) QuestBookOpt {
	return func(b *QuestBook) { b.intN = intN }
}

func NewQuestBook(quests storage.Storer[*Quest], opts ...QuestBookOpt) *QuestBook {
	b := &QuestBook{
		quests: quests,
		now:    time.Now,
		intN:   rand.IntN,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Current returns the player's unclaimed, unexpired quest, or nil.
func (b *QuestBook) Current(playerID string) *Quest {
	now := b.now()
	for _, q := range b.quests.GetAll() {
		if q.PlayerID == playerID && !q.Claimed && !q.Expired(now) {
			return q
		}
	}
	return nil
}

// Assign gives the player a new quest unless one is already active.
func (b *QuestBook) Assign(p *Player) (*Quest, error) {
	if q := b.Current(p.ID); q != nil {
		return q, fmt.Errorf("%w: you already have a quest", ErrAlreadyStarted)
	}

	t := questTemplates[b.intN(len(questTemplates))]
	goal := t.goal(p, b.intN(4))
	q := &Quest{
		ID:          uuid.NewString(),
		PlayerID:    p.ID,
		Kind:        t.kind,
		Description: fmt.Sprintf(t.desc, goal),
		Goal:        goal,
		RewardGold:  t.gold,
		RewardExp:   t.exp,
		ExpiresAt:   b.now().Add(QuestDuration),
	}
	if t.kind == QuestDescend {
		q.Progress = p.DeepestFloor
	}

	if err := b.quests.Save(q.ID, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Advance feeds progress to the player's active quest of the given kind.
// Descend quests track the deepest floor reached; the others count events.
func (b *QuestBook) Advance(playerID string, kind QuestKind, value int) *Quest {
	q := b.Current(playerID)
	if q == nil || q.Kind != kind {
		return nil
	}

	if kind == QuestDescend {
		q.Progress = max(q.Progress, value)
	} else {
		q.Progress += value
	}
	return q
}

// Claim pays out a completed quest once.
func (b *QuestBook) Claim(p *Player, items storage.Reader[*Item]) (*Quest, LevelUp, error) {
	var latest *Quest
	for _, q := range b.quests.GetAll() {
		if q.PlayerID != p.ID || q.Claimed {
			continue
		}
		if latest == nil || q.ExpiresAt.After(latest.ExpiresAt) {
			latest = q
		}
	}

	if latest == nil {
		return nil, LevelUp{}, fmt.Errorf("%w: no quest to claim", ErrNotFound)
	}
	if latest.Expired(b.now()) {
		return latest, LevelUp{}, fmt.Errorf("%w: quest expired", ErrStateExpired)
	}
	if !latest.Complete() {
		return latest, LevelUp{}, fmt.Errorf("%w: quest progress %d/%d", ErrInvalidChoice, latest.Progress, latest.Goal)
	}

	latest.Claimed = true
	p.Gold += latest.RewardGold
	up := p.GainExperience(latest.RewardExp, items)
	return latest, up, nil
}

// Sweep deletes claimed and expired quests and reports how many were removed.
func (b *QuestBook) Sweep() (int, error) {
	now := b.now()
	removed := 0
	for id, q := range b.quests.GetAll() {
		if !q.Claimed && !q.Expired(now) {
			continue
		}
		if err := b.quests.Delete(id); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
