package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pixil98/go-arcana/internal/game"
	"github.com/pixil98/go-arcana/internal/storage"
)

// itemInput resolves an item input given either as an id or as a shop number.
func itemInput(e *Engine, raw string) string {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return raw
	}
	if id := storage.NewListing[*game.Item](e.Catalog.Items).Select(n); id != "" {
		return id
	}
	return raw
}

// ShopHandlerFactory creates handlers for the item shop.
// Config:
//   - action (required): "list" or "buy"
//
// Inputs (buy):
//   - item (required): item id or shop number
//   - qty (optional): how many to buy, default 1
type ShopHandlerFactory struct {
	engine *Engine
}

func (f *ShopHandlerFactory) ValidateConfig(config map[string]any) error {
	action, _ := config["action"].(string)
	switch action {
	case "list", "buy":
		return nil
	default:
		return fmt.Errorf("action must be list or buy")
	}
}

func (f *ShopHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	action, _ := config["action"].(string)

	return func(ctx context.Context, cmdCtx *CommandContext) error {
		res := cmdCtx.Result

		if action == "list" {
			listing := storage.NewListing[*game.Item](f.engine.Catalog.Items)
			res.Say("The shop offers:")
			res.Lines = append(res.Lines, listing.Lines(func(it *game.Item) string { return it.Summary() })...)
			return nil
		}

		qty := cmdCtx.Number("qty", 1)
		it, spent, err := f.engine.Catalog.Buy(cmdCtx.Actor, itemInput(f.engine, cmdCtx.String("item")), qty)
		if err != nil {
			return err
		}
		res.Say("You buy %d x %s for %d gold.", qty, it.Name, spent)
		return nil
	}, nil
}

// EquipmentHandlerFactory creates handlers that wear and remove gear.
// Config:
//   - action (required): "equip" or "unequip"
//
// Inputs:
//   - item (equip): item id or shop number
//   - slot (unequip): weapon, armor, or accessory
type EquipmentHandlerFactory struct {
	engine *Engine
}

func (f *EquipmentHandlerFactory) ValidateConfig(config map[string]any) error {
	action, _ := config["action"].(string)
	switch action {
	case "equip", "unequip":
		return nil
	default:
		return fmt.Errorf("action must be equip or unequip")
	}
}

func (f *EquipmentHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	action, _ := config["action"].(string)

	return func(ctx context.Context, cmdCtx *CommandContext) error {
		actor := cmdCtx.Actor
		if f.engine.Busy(actor.ID) {
			return fmt.Errorf("%w: you cannot change gear mid-fight", game.ErrInvalidChoice)
		}

		if action == "equip" {
			it, err := f.engine.Catalog.Equip(actor, itemInput(f.engine, cmdCtx.String("item")))
			if err != nil {
				return err
			}
			cmdCtx.Result.Say("You equip %s.", it.Name)
			return nil
		}

		slot := game.Slot(cmdCtx.String("slot"))
		id, err := f.engine.Catalog.Unequip(actor, slot)
		if err != nil {
			return err
		}
		name := id
		if it := f.engine.Catalog.Items.Get(id); it != nil {
			name = it.Name
		}
		cmdCtx.Result.Say("You remove %s.", name)
		return nil
	}, nil
}

// UseHandlerFactory creates handlers that consume potions outside combat.
// Inputs:
//   - item (required): item id or shop number
type UseHandlerFactory struct {
	engine *Engine
}

func (f *UseHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *UseHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		actor := cmdCtx.Actor
		if f.engine.Dungeon.InEncounter(actor.ID) {
			return fmt.Errorf("%w: you cannot drink potions mid-fight", game.ErrInvalidChoice)
		}

		hp, mana, err := f.engine.Catalog.UseItem(actor, itemInput(f.engine, cmdCtx.String("item")))
		if err != nil {
			return err
		}
		cmdCtx.Result.Say("You recover %d HP and %d Mana.", hp, mana)
		return nil
	}, nil
}
