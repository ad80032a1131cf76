package game

import (
	"fmt"
)

// AddItem adds count of an item to the inventory.
func (p *Player) AddItem(id string, count int) {
	if count <= 0 {
		return
	}
	if p.Inventory == nil {
		p.Inventory = map[string]int{}
	}
	p.Inventory[id] += count
}

// RemoveItem takes count of an item out of the inventory, dropping empty entries.
func (p *Player) RemoveItem(id string, count int) error {
	have := p.Inventory[id]
	if have < count {
		return fmt.Errorf("%w: you have %d of %q", ErrNotFound, have, id)
	}
	if have == count {
		delete(p.Inventory, id)
		return nil
	}
	p.Inventory[id] = have - count
	return nil
}

// MaxPurchase caps the quantity of a single purchase.
const MaxPurchase = 99

// Buy purchases qty of an item and returns the gold spent.
func (c *Catalog) Buy(p *Player, id string, qty int) (*Item, int, error) {
	if qty < 1 || qty > MaxPurchase {
		return nil, 0, fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidChoice, MaxPurchase)
	}
	it, err := c.Item(id)
	if err != nil {
		return nil, 0, err
	}

	// Compared by division so a large cost cannot wrap the total.
	if it.Cost > 0 && qty > p.Gold/it.Cost {
		return nil, 0, fmt.Errorf("%w: %d x %s costs %d gold each, you have %d", ErrInsufficientResource, qty, it.Name, it.Cost, p.Gold)
	}

	total := it.Cost * qty
	p.Gold -= total
	p.AddItem(id, qty)
	return it, total, nil
}

// Equip moves an owned item into its slot. Whatever the slot held goes back to
// the inventory.
func (c *Catalog) Equip(p *Player, id string) (*Item, error) {
	it, err := c.Item(id)
	if err != nil {
		return nil, err
	}
	slot, ok := SlotFor(it.Category)
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot be equipped", ErrInvalidChoice, it.Name)
	}
	if err := p.RemoveItem(id, 1); err != nil {
		return nil, err
	}

	if prev := p.Equipment.Get(slot); prev != "" {
		p.AddItem(prev, 1)
	}
	p.Equipment.Set(slot, id)
	Recalculate(p, c.Items)
	return it, nil
}

// Unequip returns the item in slot to the inventory.
func (c *Catalog) Unequip(p *Player, slot Slot) (string, error) {
	id := p.Equipment.Get(slot)
	if id == "" {
		return "", fmt.Errorf("%w: nothing equipped in %s slot", ErrNotFound, slot)
	}

	p.Equipment.Set(slot, "")
	p.AddItem(id, 1)
	Recalculate(p, c.Items)
	return id, nil
}

// UseItem consumes one potion, restoring HP and Mana up to the maxima.
// Returns the amounts actually restored.
func (c *Catalog) UseItem(p *Player, id string) (hp, mana int, err error) {
	it, err := c.Item(id)
	if err != nil {
		return 0, 0, err
	}
	if it.Category != CategoryConsumable {
		return 0, 0, fmt.Errorf("%w: %s is not consumable", ErrInvalidChoice, it.Name)
	}
	if err := p.RemoveItem(id, 1); err != nil {
		return 0, 0, err
	}

	hp = min(it.RestoreHP, p.MaxHP-p.HP)
	mana = min(it.RestoreMana, p.MaxMana-p.Mana)
	p.HP += hp
	p.Mana += mana
	return hp, mana, nil
}
