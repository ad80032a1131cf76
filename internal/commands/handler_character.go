package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/go-arcana/internal/game"
)

// StartHandlerFactory creates handlers for character creation.
// Inputs:
//   - element (required): the element to align with
//   - name (optional, rest): display name, defaults to the chat name
//
// Config:
//   - message (optional): template rendered after creation
type StartHandlerFactory struct {
	engine *Engine
}

func (f *StartHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *StartHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if cmdCtx.Actor != nil {
			return fmt.Errorf("%w: you already have a character", game.ErrAlreadyStarted)
		}

		e, err := game.ParseElement(cmdCtx.String("element"))
		if err != nil {
			return err
		}
		if e.OwnerOnly() && cmdCtx.Request.ActorID != f.engine.Bestower.OwnerID {
			return fmt.Errorf("%w: %s is reserved for the owner", game.ErrPermissionDenied, e)
		}

		name := strings.TrimSpace(cmdCtx.String("name"))
		if name == "" {
			name = cmdCtx.Request.ActorName
		}
		if name == "" {
			name = cmdCtx.Request.ActorID
		}
		if f.engine.NameTaken(name) {
			return fmt.Errorf("%w: the name %s is already taken", game.ErrInvalidChoice, name)
		}

		p := game.NewPlayer(cmdCtx.Request.ActorID, name, e, f.engine.Catalog.Items, f.engine.now())
		if err := f.engine.Players.Save(p.ID, p); err != nil {
			return err
		}
		cmdCtx.Actor = p

		return cmdCtx.Render("message", "{{ .Actor.Name }} awakens as a wielder of {{ .Actor.Element }}.", nil, nil)
	}, nil
}

// ProfileHandlerFactory shows a character sheet.
// Targets:
//   - target (optional): whose profile to show, defaults to the actor
type ProfileHandlerFactory struct {
	engine *Engine
}

func (f *ProfileHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *ProfileHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		p := cmdCtx.Actor
		if t := cmdCtx.Targets["target"]; t != nil {
			p = t
		}

		r := cmdCtx.Result
		r.Say("%s, %s mage (prestige %d)", p.Name, p.Element, p.Prestige)
		r.Say("Level %d  EXP %d/%d  Gold %d", p.Level, p.Experience, game.ExpToLevel(p.Level), p.Gold)
		r.Say("HP %d/%d  Mana %d/%d  ATK %d  DEF %d", p.HP, p.MaxHP, p.Mana, p.MaxMana, p.Attack, p.Defense)
		r.Say("Passive: %s", p.Passive)
		r.Say("Spells: %s", f.spellNames(p))

		var worn []string
		for _, slot := range game.Slots {
			id := p.Equipment.Get(slot)
			if id == "" {
				continue
			}
			name := id
			if it := f.engine.Catalog.Items.Get(id); it != nil {
				name = it.Name
			}
			worn = append(worn, fmt.Sprintf("%s: %s", slot, name))
		}
		if len(worn) > 0 {
			r.Say("Equipment: %s", strings.Join(worn, ", "))
		}

		r.Say("Dungeon floor %d (deepest %d)  PvP %d pts, %d-%d-%d", p.DungeonFloor, p.DeepestFloor, p.PvPPoints, p.PvPWins, p.PvPLosses, p.PvPDraws)
		if g, err := f.engine.Guilds.Of(p); err == nil && g != nil {
			r.Say("Guild: %s", g.Name)
		}
		if len(p.Achievements) > 0 {
			names := make([]string, len(p.Achievements))
			for i, a := range p.Achievements {
				names[i] = game.AchievementName(a)
			}
			r.Say("Achievements: %s", strings.Join(names, ", "))
		}
		return nil
	}, nil
}

func (f *ProfileHandlerFactory) spellNames(p *game.Player) string {
	if len(p.Spells) == 0 {
		return "none"
	}
	names := make([]string, len(p.Spells))
	for i, id := range p.Spells {
		names[i] = f.engine.Catalog.Spell(id).Name
	}
	return strings.Join(names, ", ")
}

// PrestigeHandlerFactory trades levels for a permanent bonus.
type PrestigeHandlerFactory struct {
	engine *Engine
}

func (f *PrestigeHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *PrestigeHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if f.engine.Busy(cmdCtx.Actor.ID) {
			return fmt.Errorf("%w: finish your fight first", game.ErrInvalidChoice)
		}
		if err := cmdCtx.Actor.PrestigeReset(f.engine.Catalog.Items); err != nil {
			return err
		}
		return cmdCtx.Render("message", "{{ .Actor.Name }} is reborn. Prestige rises!", nil, nil)
	}, nil
}
