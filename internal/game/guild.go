package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/pixil98/go-arcana/internal/storage"
)

// MaxGuildMembers caps guild size, leader included.
const MaxGuildMembers = 50

type Guild struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	LeaderID string   `json:"leader_id"`
	Members  []string `json:"members"`
	Invites  []string `json:"invites,omitempty"`
	Level    int      `json:"level"`
	Exp      int      `json:"exp"`
	Gold     int      `json:"gold"`
}

func (g *Guild) IsMember(id string) bool {
	return slices.Contains(g.Members, id)
}

func (g *Guild) IsInvited(id string) bool {
	return slices.Contains(g.Invites, id)
}

// Guilds applies guild rules over the guild and player stores.
type Guilds struct {
	guilds  storage.Storer[*Guild]
	players storage.Storer[*Player]
}

func NewGuilds(guilds storage.Storer[*Guild], players storage.Storer[*Player]) *Guilds {
	return &Guilds{guilds: guilds, players: players}
}

// Get returns the guild or ErrNotFound.
func (gs *Guilds) Get(id string) (*Guild, error) {
	g := gs.guilds.Get(id)
	if g == nil {
		return nil, fmt.Errorf("%w: guild %q", ErrNotFound, id)
	}
	return g, nil
}

// Find looks a guild up by id, then by case-insensitive name.
func (gs *Guilds) Find(key string) (*Guild, error) {
	if g := gs.guilds.Get(key); g != nil {
		return g, nil
	}
	for _, g := range gs.guilds.GetAll() {
		if strings.EqualFold(g.Name, strings.TrimSpace(key)) {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%w: no guild %q", ErrNotFound, key)
}

// Of returns the guild the player belongs to.
func (gs *Guilds) Of(p *Player) (*Guild, error) {
	if p.GuildID == "" {
		return nil, fmt.Errorf("%w: you are not in a guild", ErrNotFound)
	}
	return gs.Get(p.GuildID)
}

// Create founds a guild led by p. Names are unique ignoring case.
func (gs *Guilds) Create(p *Player, name string) (*Guild, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: guild name is required", ErrInvalidChoice)
	}
	if p.GuildID != "" {
		return nil, fmt.Errorf("%w: leave your guild first", ErrInvalidChoice)
	}
	for _, g := range gs.guilds.GetAll() {
		if strings.EqualFold(g.Name, name) {
			return nil, fmt.Errorf("%w: guild %q already exists", ErrInvalidChoice, name)
		}
	}

	g := &Guild{
		ID:       uuid.NewString(),
		Name:     name,
		LeaderID: p.ID,
		Members:  []string{p.ID},
		Level:    1,
	}
	if err := gs.guilds.Save(g.ID, g); err != nil {
		return nil, err
	}
	p.GuildID = g.ID
	return g, nil
}

// Invite lets the guild leader invite target.
func (gs *Guilds) Invite(leader, target *Player) (*Guild, error) {
	g, err := gs.Of(leader)
	if err != nil {
		return nil, err
	}
	if g.LeaderID != leader.ID {
		return nil, fmt.Errorf("%w: only the guild leader can invite", ErrPermissionDenied)
	}
	if target.GuildID != "" {
		return nil, fmt.Errorf("%w: %s is already in a guild", ErrInvalidChoice, target.Name)
	}
	if !g.IsInvited(target.ID) {
		g.Invites = append(g.Invites, target.ID)
	}
	return g, nil
}

// Join adds p to a guild that invited them.
func (gs *Guilds) Join(p *Player, guildID string) (*Guild, error) {
	g, err := gs.Get(guildID)
	if err != nil {
		return nil, err
	}
	if p.GuildID != "" {
		return nil, fmt.Errorf("%w: leave your guild first", ErrInvalidChoice)
	}
	if !g.IsInvited(p.ID) {
		return nil, fmt.Errorf("%w: you have not been invited to %s", ErrPermissionDenied, g.Name)
	}
	if len(g.Members) >= MaxGuildMembers {
		return nil, fmt.Errorf("%w: %s is full", ErrInsufficientResource, g.Name)
	}

	g.Invites = slices.DeleteFunc(g.Invites, func(id string) bool { return id == p.ID })
	g.Members = append(g.Members, p.ID)
	p.GuildID = g.ID
	return g, nil
}

// Leave removes p from their guild. A leader leaving disbands the guild. Returns
// true when the guild was disbanded.
func (gs *Guilds) Leave(p *Player) (*Guild, bool, error) {
	g, err := gs.Of(p)
	if err != nil {
		return nil, false, err
	}

	if g.LeaderID != p.ID {
		g.Members = slices.DeleteFunc(g.Members, func(id string) bool { return id == p.ID })
		p.GuildID = ""
		return g, false, nil
	}

	for _, id := range g.Members {
		if m := gs.players.Get(id); m != nil {
			m.GuildID = ""
		}
	}
	p.GuildID = ""
	if err := gs.guilds.Delete(g.ID); err != nil {
		return nil, false, err
	}
	return g, true, nil
}
